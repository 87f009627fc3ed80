package pathchoice

import (
	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/attr"
	"github.com/ttpr0/go-routechoice/graph"
	. "github.com/ttpr0/go-routechoice/util"
)

//*******************************************
// path attributes
//*******************************************

// Aggregated attributes of one path as seen by a choice model.
type PathAttributes struct {
	Distance float64
	Cost     float64
	Gain     float64
	Size     float64
	// counts by traversal
	LeftTurns    int
	RightTurns   int
	Signals      int
	UnsigLefts   int
	UnsigCrosses int
	// distance by road type
	TypeDistance Dict[attr.RoadType, float64]
}

// Derives the attributes of every path in the list.
func GetPathAttributes(network *graph.Network, list *PathAlternativeList) (List[PathAttributes], error) {
	sizes := list.SizeMeasures()
	attributes := NewList[PathAttributes](list.Count())
	for i := 0; i < list.Count(); i++ {
		attribs, err := _PathAttributes(network, list.GetEdges(i))
		if err != nil {
			return nil, errors.Wrapf(err, "path %d of %s", i+1, list.Pair())
		}
		attribs.Size = sizes[i]
		attributes.Add(attribs)
	}
	return attributes, nil
}

func _PathAttributes(network *graph.Network, edges List[int32]) (PathAttributes, error) {
	attribs := PathAttributes{
		TypeDistance: NewDict[attr.RoadType, float64](4),
	}
	for i, edge := range edges {
		edge_attr := network.GetEdgeAttribs(edge)
		attribs.Distance += edge_attr.Length
		attribs.Cost += edge_attr.Cost
		attribs.Gain += edge_attr.Gain
		attribs.TypeDistance[edge_attr.Type] += edge_attr.Length
		if i == 0 {
			continue
		}
		traversal, ok := network.GetTraversalHandle(edges[i-1], edge)
		if !ok {
			return attribs, errors.Wrapf(graph.ErrUnknownEdge, "no traversal between edges %d and %d", edges[i-1], edge)
		}
		trav_attr := network.GetTraversalAttribs(traversal)
		attribs.Cost += trav_attr.Cost
		switch trav_attr.Turn {
		case attr.TURN_LEFT:
			attribs.LeftTurns += 1
		case attr.TURN_RIGHT:
			attribs.RightTurns += 1
		}
		if trav_attr.Signal {
			attribs.Signals += 1
		}
		if trav_attr.UnsigLeft {
			attribs.UnsigLefts += 1
		}
		if trav_attr.UnsigCross {
			attribs.UnsigCrosses += 1
		}
	}
	return attribs, nil
}
