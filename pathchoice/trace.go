package pathchoice

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/graph"
	. "github.com/ttpr0/go-routechoice/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// trace output
//*******************************************

type PathRow struct {
	Origin      int32   `csv:"origin"`
	Destination int32   `csv:"destination"`
	PathID      int     `csv:"path"`
	Length      float64 `csv:"length"`
	Size        float64 `csv:"size"`
}

type LinkRow struct {
	Origin      int32 `csv:"origin"`
	Destination int32 `csv:"destination"`
	PathID      int   `csv:"path"`
	LinkID      int   `csv:"link"`
	From        int32 `csv:"from"`
	To          int32 `csv:"to"`
}

// Flattens the lists into path and link rows, path ids start at 1.
func TraceRows(network *graph.Network, lists List[*PathAlternativeList]) (List[PathRow], List[LinkRow]) {
	sorted := slices.Clone(lists)
	slices.SortFunc(sorted, func(a, b *PathAlternativeList) int {
		if a.Pair().From != b.Pair().From {
			return int(a.Pair().From) - int(b.Pair().From)
		}
		return int(a.Pair().To) - int(b.Pair().To)
	})
	paths := NewList[PathRow](16)
	links := NewList[LinkRow](64)
	for _, list := range sorted {
		pair := list.Pair()
		sizes := list.SizeMeasures()
		lengths := list.Lengths()
		for i := 0; i < list.Count(); i++ {
			paths.Add(PathRow{
				Origin:      pair.From,
				Destination: pair.To,
				PathID:      i + 1,
				Length:      lengths[i],
				Size:        sizes[i],
			})
			for j, edge := range list.GetEdges(i) {
				nodes := network.GetEdgeNodes(edge)
				links.Add(LinkRow{
					Origin:      pair.From,
					Destination: pair.To,
					PathID:      i + 1,
					LinkID:      j + 1,
					From:        nodes.From,
					To:          nodes.To,
				})
			}
		}
	}
	return paths, links
}

// Writes paths_<origin>.csv and links_<origin>.csv into dir.
//
// paths_<origin>.geojson is added if the network has node coordinates.
func WriteTrace(network *graph.Network, dir string, origin int32, lists List[*PathAlternativeList]) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "Can't create directory '%s'", dir)
	}
	paths, links := TraceRows(network, lists)
	if err := WriteCSVToFile(paths, filepath.Join(dir, fmt.Sprintf("paths_%d.csv", origin)), ','); err != nil {
		return err
	}
	if err := WriteCSVToFile(links, filepath.Join(dir, fmt.Sprintf("links_%d.csv", origin)), ','); err != nil {
		return err
	}
	if network.HasGeometry() {
		data, err := TraceGeoJSON(network, lists).MarshalJSON()
		if err != nil {
			return errors.Wrap(err, "Can't marshal trace geojson")
		}
		filename := filepath.Join(dir, fmt.Sprintf("paths_%d.geojson", origin))
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return errors.Wrapf(err, "Can't write file '%s'", filename)
		}
	}
	slog.Info("wrote trace", "origin", origin, "paths", paths.Length(), "links", links.Length())
	return nil
}

// One line string feature per path.
func TraceGeoJSON(network *graph.Network, lists List[*PathAlternativeList]) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()
	for _, list := range lists {
		pair := list.Pair()
		sizes := list.SizeMeasures()
		for i, path := range list.Paths() {
			coords := make([][]float64, 0, path.Length())
			for _, id := range path.Nodes() {
				handle, _ := network.GetNodeHandle(id)
				point := network.GetNodeGeom(handle)
				coords = append(coords, []float64{point.Lon(), point.Lat()})
			}
			feature := geojson.NewLineStringFeature(coords)
			feature.SetProperty("origin", pair.From)
			feature.SetProperty("destination", pair.To)
			feature.SetProperty("path", i+1)
			feature.SetProperty("size", sizes[i])
			collection.AddFeature(feature)
		}
	}
	return collection
}
