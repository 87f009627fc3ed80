package parser

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-routechoice/attr"
	"github.com/ttpr0/go-routechoice/routing"
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
)

func TestParseCSVAllTraversals(t *testing.T) {
	network, err := ParseCSV("testdata/nodes.csv", "testdata/edges.csv", "", ';')
	require.NoError(t, err)

	assert.Equal(t, 4, network.NodeCount())
	assert.Equal(t, 6, network.EdgeCount())
	assert.True(t, network.HasGeometry())

	edge, ok := network.GetEdgeHandle(2, 3)
	require.True(t, ok)
	edge_attr := network.GetEdgeAttribs(edge)
	assert.Equal(t, attr.CYCLEWAY, edge_attr.Type)
	assert.Equal(t, byte(BIKE_CLASS_PATH), edge_attr.BikeClass)
	assert.Equal(t, 2.5, edge_attr.Gain)
	// missing cost falls back to the length based cost
	assert.InDelta(t, 0.8, edge_attr.Cost, 1e-12)

	node := network.GetNode(3)
	require.True(t, node.HasValue())
	assert.True(t, node.Value.Attribs.Centroid)
}

func TestParseCSVTraversals(t *testing.T) {
	network, err := ParseCSV("testdata/nodes.csv", "testdata/edges.csv", "testdata/traversals.csv", ';')
	require.NoError(t, err)
	assert.Equal(t, 4, network.TraversalCount())

	a, _ := network.GetEdgeHandle(1, 2)
	b, _ := network.GetEdgeHandle(2, 3)
	trav, ok := network.GetTraversalHandle(a, b)
	require.True(t, ok)
	trav_attr := network.GetTraversalAttribs(trav)
	assert.Equal(t, attr.TURN_LEFT, trav_attr.Turn)
	assert.True(t, trav_attr.Signal)
	assert.False(t, trav_attr.ThruCentroid)

	a, _ = network.GetEdgeHandle(2, 3)
	b, _ = network.GetEdgeHandle(3, 2)
	trav, ok = network.GetTraversalHandle(a, b)
	require.True(t, ok)
	assert.True(t, network.GetTraversalAttribs(trav).ThruCentroid)

	// turns missing from the table are not allowed
	a, _ = network.GetEdgeHandle(2, 1)
	b, _ = network.GetEdgeHandle(1, 4)
	_, ok = network.GetTraversalHandle(a, b)
	assert.False(t, ok)
}

func TestParsedNetworkShortestPath(t *testing.T) {
	network, err := ParseCSV("testdata/nodes.csv", "testdata/edges.csv", "testdata/traversals.csv", ';')
	require.NoError(t, err)

	sp := routing.NewDijkstra(network, weighting.NewEdgeAttributeCost(network), weighting.NewTraversalAttributeCost(network))
	results, err := routing.GetShortestPaths(sp, Array[int32]{1}, Array[int32]{3}, 100)
	require.NoError(t, err)

	result, ok := results.Get(structs.MakeNodePair(1, 3))
	require.True(t, ok)
	assert.Equal(t, "[1,2,3]", result.Path.String())
	assert.InDelta(t, 2.0, result.Cost, 1e-9)
}

func TestParseCSVErrors(t *testing.T) {
	_, err := ParseCSV("testdata/nodes.csv", "testdata/edges.csv", "testdata/bad_traversals.csv", ';')
	assert.True(t, errors.Is(err, ErrUnknownTurn))

	_, err = ParseCSV("testdata/missing.csv", "testdata/edges.csv", "", ';')
	assert.Error(t, err)
}

func TestBikeDecoder(t *testing.T) {
	decoder := &BikeDecoder{}
	cases := []struct {
		name  string
		tags  Dict[string, string]
		valid bool
		class byte
	}{
		{"residential", Dict[string, string]{"highway": "residential"}, true, BIKE_CLASS_NONE},
		{"cycleway", Dict[string, string]{"highway": "cycleway"}, true, BIKE_CLASS_PATH},
		{"lane", Dict[string, string]{"highway": "secondary", "cycleway:right": "lane"}, true, BIKE_CLASS_LANE},
		{"route", Dict[string, string]{"highway": "tertiary", "bicycle": "designated"}, true, BIKE_CLASS_ROUTE},
		{"motorway", Dict[string, string]{"highway": "motorway"}, false, 0},
		{"forbidden", Dict[string, string]{"highway": "residential", "bicycle": "no"}, false, 0},
		{"footway", Dict[string, string]{"highway": "footway"}, false, 0},
		{"shared footway", Dict[string, string]{"highway": "footway", "bicycle": "yes"}, true, BIKE_CLASS_PATH},
		{"no highway", Dict[string, string]{"building": "yes"}, false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.valid, decoder.IsValidHighway(c.tags))
			if c.valid {
				assert.Equal(t, c.class, decoder.DecodeEdge(c.tags).BikeClass)
			}
		})
	}
}

func TestDecodeEdgeOneway(t *testing.T) {
	decoder := &BikeDecoder{}
	assert.True(t, decoder.DecodeEdge(Dict[string, string]{"highway": "residential", "oneway": "yes"}).Oneway)
	assert.False(t, decoder.DecodeEdge(Dict[string, string]{"highway": "residential", "oneway": "yes", "oneway:bicycle": "no"}).Oneway)
	assert.False(t, decoder.DecodeEdge(Dict[string, string]{"highway": "residential"}).Oneway)
}

func TestTrafficSpeed(t *testing.T) {
	assert.Equal(t, int32(50), _GetTrafficSpeed(attr.RESIDENTIAL, "50", "", ""))
	assert.Equal(t, int32(30), _GetTrafficSpeed(attr.RESIDENTIAL, "", "", ""))
	assert.Equal(t, int32(30), _GetTrafficSpeed(attr.RESIDENTIAL, "fast", "", ""))
	assert.Equal(t, int32(20), _GetTrafficSpeed(attr.TRACK, "", "grade3", ""))
	assert.Equal(t, int32(15), _GetTrafficSpeed(attr.TRACK, "", "", ""))
	assert.Equal(t, int32(10), _GetTrafficSpeed(attr.PRIMARY, "", "", "mud"))
	assert.Equal(t, int32(20), _GetTrafficSpeed(attr.CYCLEWAY, "", "", ""))
	assert.Equal(t, int32(10), _GetTrafficSpeed(attr.SECONDARY, "walk", "", "paving_stones"))
}
