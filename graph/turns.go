package graph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/ttpr0/go-routechoice/attr"
)

// Turns sharper than this angle (degrees) are left or right turns.
const STRAIGHT_ANGLE = 45

// Classifies the turn at the node from a -> via -> b by the change in bearing.
func ClassifyTurn(a, via, b orb.Point) attr.TurnType {
	delta := geo.Bearing(via, b) - geo.Bearing(a, via)
	for delta > 180 {
		delta -= 360
	}
	for delta <= -180 {
		delta += 360
	}
	switch {
	case delta >= 170 || delta <= -170:
		return attr.TURN_REVERSAL
	case delta > STRAIGHT_ANGLE:
		return attr.TURN_RIGHT
	case delta < -STRAIGHT_ANGLE:
		return attr.TURN_LEFT
	default:
		return attr.TURN_NONE
	}
}

func _DeriveTraversalAttribs(network *Network, edge_a, edge_b int32) attr.TraversalAttribs {
	e_a := network.edges[edge_a]
	e_b := network.edges[edge_b]
	via := e_a.NodeB

	var turn attr.TurnType
	if e_b.NodeB == e_a.NodeA {
		turn = attr.TURN_REVERSAL
	} else if network.attributes.HasGeometry() {
		turn = ClassifyTurn(network.GetNodeGeom(e_a.NodeA), network.GetNodeGeom(via), network.GetNodeGeom(e_b.NodeB))
	} else {
		turn = attr.TURN_NONE
	}
	return attr.TraversalAttribs{
		Turn:         turn,
		ThruCentroid: network.GetNodeAttribs(via).Centroid,
	}
}
