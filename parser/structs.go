package parser

import (
	"github.com/paulmach/orb"
	"github.com/ttpr0/go-routechoice/attr"
)

//*******************************************
// parser structs
//*******************************************

type TempNode struct {
	Point orb.Point
	Count int32
}
type OSMNode struct {
	Point orb.Point
	Attr  attr.NodeAttribs
}
type OSMEdge struct {
	NodeA int
	NodeB int
	Attr  attr.EdgeAttribs
	Nodes orb.LineString
}

//*******************************************
// csv tables
//*******************************************

type NodeRow struct {
	ID       int32   `csv:"id"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Centroid bool    `csv:"centroid"`
}

type EdgeRow struct {
	From      int32   `csv:"from"`
	To        int32   `csv:"to"`
	Length    float64 `csv:"length"`
	Cost      float64 `csv:"cost"`
	Gain      float64 `csv:"gain"`
	Type      string  `csv:"type"`
	BikeClass int     `csv:"bike_class"`
	Maxspeed  int     `csv:"maxspeed"`
}

// Turn from edge (from,via) onto edge (via,to).
type TraversalRow struct {
	From       int32   `csv:"from"`
	Via        int32   `csv:"via"`
	To         int32   `csv:"to"`
	Turn       string  `csv:"turn"`
	Signal     bool    `csv:"signal"`
	UnsigLeft  bool    `csv:"unsig_left"`
	UnsigCross bool    `csv:"unsig_cross"`
	Cost       float64 `csv:"cost"`
}
