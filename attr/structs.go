package attr

import (
	"github.com/paulmach/orb"
)

//*******************************************
// graph attributes
//*******************************************

type NodeAttribs struct {
	// Zone centroid, searches may start and end here but never pass through.
	Centroid bool
	Loc      orb.Point
}

type EdgeAttribs struct {
	Type   RoadType
	Length float64
	// Generalized cost, values above 998 mark the edge as inaccessible.
	Cost      float64
	Gain      float64
	BikeClass byte
	Maxspeed  byte
	Oneway    bool
}

type TraversalAttribs struct {
	Turn         TurnType
	Signal       bool
	UnsigLeft    bool
	UnsigCross   bool
	ThruCentroid bool
	Cost         float64
}

// Inaccessible edges carry a cost above this threshold.
const INACCESSIBLE_COST = 998
