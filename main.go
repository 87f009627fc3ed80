package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/pathchoice"
	. "github.com/ttpr0/go-routechoice/util"
	"golang.org/x/exp/slog"
)

type ShortestPathRow struct {
	Origin      int32   `csv:"origin"`
	Destination int32   `csv:"destination"`
	Cost        float64 `csv:"cost"`
	Path        string  `csv:"path"`
}

func main() {
	config_file := flag.String("config", "./config.yaml", "config file")
	mode := flag.String("mode", "serve", "paths, alternatives or serve")
	origins_flag := flag.String("origins", "all", "comma separated origin zones")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(NewLogHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	config := ReadConfig(*config_file)
	manager, err := NewRoutingManager(config)
	if err != nil {
		slog.Error("failed to load network: " + err.Error())
		os.Exit(1)
	}
	origins, err := ParseNodeList(*origins_flag, manager.Zones())
	if err == nil {
		err = manager.CheckZones(origins)
	}
	if err != nil {
		slog.Error("invalid origins: " + err.Error())
		os.Exit(1)
	}

	switch *mode {
	case "paths":
		err = RunShortestPaths(manager, origins)
	case "alternatives":
		err = RunAlternatives(manager, origins)
	case "serve":
		addr := fmt.Sprintf(":%d", config.Server.Port)
		slog.Info("listening on " + addr)
		err = http.ListenAndServe(addr, NewServeMux(manager))
	default:
		err = errors.Errorf("unknown mode '%s'", *mode)
	}
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// Writes the shortest paths from the origins to all zones.
func RunShortestPaths(manager *RoutingManager, origins Array[int32]) error {
	t1 := time.Now()
	results, err := manager.GetShortestPaths(manager.config.Routing.Algorithm, origins, manager.Zones())
	if err != nil {
		return err
	}
	slog.Info("calculated shortest paths", "pairs", results.Length(), "time", time.Since(t1).String())

	rows := NewList[ShortestPathRow](results.Length())
	for result := range results.All() {
		if !result.IsReached() {
			continue
		}
		rows.Add(ShortestPathRow{
			Origin:      result.Pair.From,
			Destination: result.Pair.To,
			Cost:        result.Cost,
			Path:        result.Path.String(),
		})
	}
	slices.SortFunc(rows, func(a, b ShortestPathRow) int {
		if a.Origin != b.Origin {
			return int(a.Origin) - int(b.Origin)
		}
		return int(a.Destination) - int(b.Destination)
	})
	return _WriteOutput(manager, "shortest_paths.csv", rows)
}

// Generates the alternatives of all origins and writes paths and links.
func RunAlternatives(manager *RoutingManager, origins Array[int32]) error {
	generator, err := manager.GetGenerator()
	if err != nil {
		return err
	}
	result, err := generator.Generate(origins)
	if err != nil {
		return err
	}
	lists := result.Lists.Values()
	paths, links := pathchoice.TraceRows(manager.Network(), lists)
	slog.Info("generated alternatives", "pairs", lists.Length(), "paths", paths.Length(), "insufficient", result.InsufficientSamples.Length())
	if err := _WriteOutput(manager, "paths.csv", paths); err != nil {
		return err
	}
	if err := _WriteOutput(manager, "links.csv", links); err != nil {
		return err
	}
	summary := GenerationSummary{
		Origins:      origins.Length(),
		Pairs:        lists.Length(),
		Paths:        paths.Length(),
		Insufficient: make([][2]int32, 0, result.InsufficientSamples.Length()),
	}
	for _, pair := range result.InsufficientSamples {
		summary.Insufficient = append(summary.Insufficient, [2]int32{pair.From, pair.To})
	}
	return WriteJSONToFile(summary, filepath.Join(manager.config.Pathchoice.Output, "summary.json"))
}

type GenerationSummary struct {
	Origins int `json:"origins"`
	Pairs   int `json:"pairs"`
	Paths   int `json:"paths"`
	// pairs stopped before reaching their path size
	Insufficient [][2]int32 `json:"insufficient"`
}

func _WriteOutput[T any](manager *RoutingManager, name string, rows List[T]) error {
	dir := manager.config.Pathchoice.Output
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "Can't create directory '%s'", dir)
	}
	filename := filepath.Join(dir, name)
	if err := WriteCSVToFile(rows, filename, ','); err != nil {
		return err
	}
	slog.Info("wrote " + filename)
	return nil
}
