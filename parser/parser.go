package parser

import (
	"context"
	"os"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/attr"
	"github.com/ttpr0/go-routechoice/graph"
	. "github.com/ttpr0/go-routechoice/util"
	"golang.org/x/exp/slog"
)

// Builds a network from the ways of an osm pbf file accepted by the decoder.
//
// Ways are split at junctions, node ids are assigned in scan order starting at 1.
// Edge lengths are haversine lengths in kilometers.
func ParseOSM(pbf_file string, decoder IOSMDecoder) (*graph.Network, error) {
	nodes := NewList[OSMNode](10000)
	edges := NewList[OSMEdge](10000)
	index_mapping := NewDict[int64, int](10000)
	if err := _ParseOsm(pbf_file, decoder, &nodes, &edges, &index_mapping); err != nil {
		return nil, err
	}
	slog.Info("parsed osm", "nodes", nodes.Length(), "edges", edges.Length())
	return _CreateNetwork(nodes, edges)
}

func _ParseOsm(filename string, decoder IOSMDecoder, nodes *List[OSMNode], edges *List[OSMEdge], index_mapping *Dict[int64, int]) error {
	osm_nodes := NewDict[int64, TempNode](1000)

	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "Can't open file '%s'", filename)
	}
	defer file.Close()

	passes := []func(*osmpbf.Scanner){
		func(scanner *osmpbf.Scanner) { _InitWayHandler(scanner, decoder, &osm_nodes) },
		func(scanner *osmpbf.Scanner) { _NodeHandler(scanner, decoder, &osm_nodes, nodes, index_mapping) },
		func(scanner *osmpbf.Scanner) { _WayHandler(scanner, decoder, edges, &osm_nodes, index_mapping) },
	}
	for _, pass := range passes {
		if _, err := file.Seek(0, 0); err != nil {
			return errors.Wrap(err, "Can't rewind osm file")
		}
		scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
		pass(scanner)
		err := scanner.Err()
		scanner.Close()
		if err != nil {
			return errors.Wrapf(err, "Can't scan osm file '%s'", filename)
		}
	}
	return nil
}

func _CreateNetwork(osmnodes List[OSMNode], osmedges List[OSMEdge]) (*graph.Network, error) {
	nodes := make([]graph.NodeData, 0, osmnodes.Length())
	for i, osmnode := range osmnodes {
		node_attr := osmnode.Attr
		node_attr.Loc = osmnode.Point
		nodes = append(nodes, graph.NodeData{
			ID:      int32(i + 1),
			Attribs: node_attr,
		})
	}

	edges := make([]graph.EdgeData, 0, osmedges.Length()*2)
	seen := NewDict[[2]int, bool](osmedges.Length() * 2)
	add := func(a, b int, edge_attr attr.EdgeAttribs) {
		// parallel ways between the same junctions keep the first one
		if a == b || seen.ContainsKey([2]int{a, b}) {
			return
		}
		seen[[2]int{a, b}] = true
		edges = append(edges, graph.EdgeData{
			From:    int32(a + 1),
			To:      int32(b + 1),
			Attribs: edge_attr,
		})
	}
	for _, osmedge := range osmedges {
		edge_attr := osmedge.Attr
		edge_attr.Length = geo.LengthHaversine(osmedge.Nodes) / 1000
		edge_attr.Cost = edge_attr.Length * _CostFactor(edge_attr)
		add(osmedge.NodeA, osmedge.NodeB, edge_attr)
		if !osmedge.Attr.Oneway {
			add(osmedge.NodeB, osmedge.NodeA, edge_attr)
		}
	}
	return graph.BuildNetworkWithAllTraversals(nodes, edges)
}

//*******************************************
// osm handler methods
//*******************************************

func _InitWayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes *Dict[int64, TempNode]) {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			if l < 2 {
				continue
			}
			for i := 0; i < l; i++ {
				ndref := nodes[i].FeatureID().Ref()
				node := (*osm_nodes)[ndref]
				node.Count += 1
				(*osm_nodes)[ndref] = node
			}
			// way ends are always junctions
			for _, end := range [2]int64{nodes[0].FeatureID().Ref(), nodes[l-1].FeatureID().Ref()} {
				node := (*osm_nodes)[end]
				node.Count += 1
				(*osm_nodes)[end] = node
			}
		default:
			continue
		}
	}
}

func _NodeHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes *Dict[int64, TempNode], nodes *List[OSMNode], index_mapping *Dict[int64, int]) {
	c := 0
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			id := object.FeatureID().Ref()
			if !osm_nodes.ContainsKey(id) {
				continue
			}
			c += 1
			if c%100000 == 0 {
				slog.Debug("scanned osm nodes", "count", c)
			}
			on := osm_nodes.Get(id)
			on.Point = orb.Point{object.Lon, object.Lat}
			if on.Count > 1 {
				tags := Dict[string, string](object.TagMap())
				nodes.Add(OSMNode{
					Point: on.Point,
					Attr:  decoder.DecodeNode(tags),
				})
				index_mapping.Set(id, nodes.Length()-1)
			}
			osm_nodes.Set(id, on)
		default:
			continue
		}
	}
}

func _WayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, edges *List[OSMEdge], osm_nodes *Dict[int64, TempNode], index_mapping *Dict[int64, int]) {
	c := 0
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			if l < 2 {
				continue
			}
			c += 1
			if c%10000 == 0 {
				slog.Debug("scanned osm ways", "count", c)
			}

			edge_attr := decoder.DecodeEdge(tags)
			start := nodes[0].FeatureID().Ref()
			e := OSMEdge{}
			for i := 0; i < l; i++ {
				curr := nodes[i].FeatureID().Ref()
				on := osm_nodes.Get(curr)
				e.Nodes = append(e.Nodes, on.Point)
				if on.Count > 1 && curr != start {
					e.NodeA = index_mapping.Get(start)
					e.NodeB = index_mapping.Get(curr)
					e.Attr = edge_attr
					edges.Add(e)
					start = curr
					e = OSMEdge{}
					e.Nodes = append(e.Nodes, on.Point)
				}
			}
		default:
			continue
		}
	}
}

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
	DecodeNode(tags Dict[string, string]) attr.NodeAttribs
	DecodeEdge(tags Dict[string, string]) attr.EdgeAttribs
}
