package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-routechoice/batched"
	"github.com/ttpr0/go-routechoice/graph"
	"github.com/ttpr0/go-routechoice/pathchoice"
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
	"golang.org/x/exp/slog"
)

const testConfig = `
network:
  source: csv
  nodes: nodes.csv
  edges: edges.csv
  delimiter: ","
routing:
  algorithm: array
  parallel: fork-join
  max-cost: 30
  intrazonal: true
pathchoice:
  max-distance: 10
  seed: 3
  random-scales: [0, 0.5, 1.0]
  distance-breaks: [1, 3]
  path-sizes: [2, 3, 4]
  count-min: [2, 3, 4]
  count-max: [10, 15, 20]
  trace-origins: [1, 2]
server:
  port: 8080
`

func TestParseConfig(t *testing.T) {
	config, err := ParseConfig([]byte(testConfig))
	require.NoError(t, err)

	assert.Equal(t, SOURCE_CSV, config.Network.Source)
	assert.Equal(t, ',', config.Network.DelimiterRune())
	assert.Equal(t, ARRAY, config.Routing.Algorithm)
	assert.Equal(t, batched.FORK_JOIN, config.Routing.Parallel.Value())
	assert.Equal(t, 30.0, config.Routing.MaxCost)
	assert.Equal(t, 8080, config.Server.Port)
	// defaults survive
	assert.True(t, config.Pathchoice.RandomSeeded)
	assert.Equal(t, 0.5, config.Pathchoice.IntrazonalEstimate.Factor)

	gen := config.GeneratorConfig()
	assert.Equal(t, []float64{1, 3}, gen.DistanceBreaks)
	assert.Equal(t, []int{10, 15, 20}, gen.MaxCounts)
	assert.Equal(t, []int32{1, 2}, gen.TraceOrigins)
	assert.Equal(t, uint64(3), gen.Seed)
	assert.True(t, gen.Intrazonal)
	assert.Equal(t, 30.0, gen.MaxCost)
}

func TestParseConfigErrors(t *testing.T) {
	cases := []struct {
		name    string
		replace [2]string
	}{
		{"unknown algorithm", [2]string{"algorithm: array", "algorithm: astar"}},
		{"unknown parallel method", [2]string{"parallel: fork-join", "parallel: threads"}},
		{"unknown source", [2]string{"source: csv", "source: shapefile"}},
		{"path sizes", [2]string{"path-sizes: [2, 3, 4]", "path-sizes: [2, 3]"}},
		{"counts", [2]string{"count-min: [2, 3, 4]", "count-min: [2, 30, 4]"}},
		{"max cost", [2]string{"max-cost: 30", "max-cost: 0"}},
		{"delimiter", [2]string{`delimiter: ","`, `delimiter: ",;"`}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(strings.Replace(testConfig, c.replace[0], c.replace[1], 1)))
			assert.Error(t, err)
		})
	}

	_, err := ParseConfig([]byte(strings.Replace(testConfig, "path-sizes: [2, 3, 4]", "path-sizes: [2]", 1)))
	assert.True(t, errors.Is(err, ErrConfig))

	_, err = ParseConfig([]byte(strings.Replace(testConfig, "trace-origins: [1, 2]", "trace-origins: [1, 2]\n  intrazonal-estimate:\n    count: -1", 1)))
	assert.True(t, errors.Is(err, ErrConfig))
	// zero disables the estimate
	_, err = ParseConfig([]byte(strings.Replace(testConfig, "trace-origins: [1, 2]", "trace-origins: [1, 2]\n  intrazonal-estimate:\n    count: 0", 1)))
	assert.NoError(t, err)
}

func TestEnumStrings(t *testing.T) {
	for _, alg := range []AlgorithmType{DIJKSTRA, ARRAY, REPEATED} {
		parsed, err := AlgorithmTypeFromString(alg.String())
		require.NoError(t, err)
		assert.Equal(t, alg, parsed)
	}
	for _, src := range []NetworkSource{SOURCE_CSV, SOURCE_OSM} {
		parsed, err := NetworkSourceFromString(src.String())
		require.NoError(t, err)
		assert.Equal(t, src, parsed)
	}
	assert.Equal(t, "queue", ParallelMethod(batched.QUEUE).String())
}

func TestParseNodeList(t *testing.T) {
	fallback := Array[int32]{1, 2}
	ids, err := ParseNodeList("all", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, ids)

	ids, err = ParseNodeList(" 4, 7,9 ", fallback)
	require.NoError(t, err)
	assert.Equal(t, Array[int32]{4, 7, 9}, ids)

	_, err = ParseNodeList("4,x", fallback)
	assert.Error(t, err)
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewLogHandler(&buf, nil)).With("origin", 4).WithGroup("search")
	logger.Info("settled", "pairs", 12)

	line := buf.String()
	assert.Contains(t, line, "INFO settled origin=4 search.pairs=12")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func testManager(t *testing.T) *RoutingManager {
	network, err := graph.BuildGridNetwork(5, 5, 11)
	require.NoError(t, err)
	config, err := ParseConfig([]byte(testConfig))
	require.NoError(t, err)
	config.Routing.MaxCost = 1000
	config.Pathchoice.TraceOrigins = nil
	config.Pathchoice.Output = t.TempDir()
	return NewRoutingManagerFromNetwork(network, config)
}

func TestManagerAlgorithmsAgree(t *testing.T) {
	manager := testManager(t)
	zones := manager.Zones()
	expected, err := manager.GetShortestPaths(DIJKSTRA, zones, zones)
	require.NoError(t, err)
	for _, alg := range []AlgorithmType{ARRAY, REPEATED} {
		results, err := manager.GetShortestPaths(alg, zones, zones)
		require.NoError(t, err)
		for result := range expected.All() {
			if result.Pair.From == result.Pair.To {
				continue
			}
			other, ok := results.Get(result.Pair)
			require.True(t, ok, "%s %s", alg, result.Pair)
			assert.InDelta(t, result.Cost, other.Cost, 1e-9, "%s %s", alg, result.Pair)
		}
	}
}

func TestCheckZones(t *testing.T) {
	manager := testManager(t)
	assert.NoError(t, manager.CheckZones(Array[int32]{1, 2, 25}))
	// interior node
	assert.Error(t, manager.CheckZones(Array[int32]{7}))
	assert.Error(t, manager.CheckZones(Array[int32]{100}))
}

func TestNetworkEndpoint(t *testing.T) {
	manager := testManager(t)
	rec := httptest.NewRecorder()
	NewServeMux(manager).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v0/network", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp NetworkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 25, resp.Nodes)
	assert.Len(t, resp.Zones, 16)
}

func TestShortestPathEndpoint(t *testing.T) {
	manager := testManager(t)
	app := NewServeMux(manager)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v0/shortest-path?origin=1&destination=25&algorithm=dijkstra", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ShortestPathResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Reached)
	require.NotEmpty(t, resp.Nodes)
	assert.Equal(t, int32(1), resp.Nodes[0])
	assert.Equal(t, int32(25), resp.Nodes[len(resp.Nodes)-1])

	results, err := manager.GetShortestPaths(ARRAY, Array[int32]{1}, Array[int32]{25})
	require.NoError(t, err)
	result, ok := results.Get(structs.MakeNodePair(1, 25))
	require.True(t, ok)
	assert.InDelta(t, result.Cost, resp.Cost, 1e-9)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v0/shortest-path?origin=1&destination=25&algorithm=astar", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v0/shortest-path?origin=1&destination=99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v0/shortest-path?origin=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlternativesEndpoint(t *testing.T) {
	manager := testManager(t)
	app := NewServeMux(manager)

	body := `{"origin": 2, "destinations": [1, 3], "geometry": true}`
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v0/alternatives", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AlternativesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int32(2), resp.Origin)
	require.Len(t, resp.Sets, 2)
	assert.Equal(t, int32(1), resp.Sets[0].Destination)
	assert.Equal(t, int32(3), resp.Sets[1].Destination)
	for _, set := range resp.Sets {
		require.NotEmpty(t, set.Paths)
		total := 0.0
		for _, path := range set.Paths {
			assert.Equal(t, int32(2), path.Nodes[0])
			assert.Equal(t, set.Destination, path.Nodes[len(path.Nodes)-1])
			total += path.Size
		}
		assert.InDelta(t, set.SizeTotal, total, 1e-9)
	}
	require.NotNil(t, resp.Geometry)
	assert.NotEmpty(t, resp.Geometry.Features)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v0/alternatives", strings.NewReader(`{"origin": 7}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v0/alternatives", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRunShortestPaths(t *testing.T) {
	manager := testManager(t)
	require.NoError(t, RunShortestPaths(manager, Array[int32]{1, 2}))

	rows, err := ReadCSVFromFile[ShortestPathRow](filepath.Join(manager.config.Pathchoice.Output, "shortest_paths.csv"), ',')
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, int32(1), rows[0].Origin)
	assert.Equal(t, int32(2), rows[rows.Length()-1].Origin)
	for _, row := range rows {
		assert.True(t, strings.HasPrefix(row.Path, "["))
	}
}

func TestRunAlternatives(t *testing.T) {
	manager := testManager(t)
	require.NoError(t, RunAlternatives(manager, Array[int32]{2, 3}))

	dir := manager.config.Pathchoice.Output
	paths, err := ReadCSVFromFile[pathchoice.PathRow](filepath.Join(dir, "paths.csv"), ',')
	require.NoError(t, err)
	assert.NotEmpty(t, paths)
	_, err = ReadCSVFromFile[pathchoice.LinkRow](filepath.Join(dir, "links.csv"), ',')
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "summary.json"))
	require.NoError(t, err)
	var summary GenerationSummary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 2, summary.Origins)
	assert.Equal(t, paths.Length(), summary.Paths)
}

func TestMatrixEndpoint(t *testing.T) {
	manager := testManager(t)
	app := NewServeMux(manager)

	body := `{"origins": [1, 5, 1], "destinations": [25, 1], "algorithm": "array"}`
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v0/matrix", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp MatrixResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Costs, 3)
	assert.Equal(t, resp.Costs[0], resp.Costs[2])
	assert.Equal(t, 0.0, resp.Costs[0][1])
	assert.Greater(t, resp.Costs[1][0], 0.0)

	expected, err := manager.GetShortestPaths(DIJKSTRA, Array[int32]{5}, Array[int32]{1})
	require.NoError(t, err)
	result, _ := expected.Get(structs.MakeNodePair(5, 1))
	assert.InDelta(t, result.Cost, resp.Costs[1][1], 1e-9)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v0/matrix", strings.NewReader(`{"origins": [1], "destinations": [77]}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
