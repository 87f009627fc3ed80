package parser

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/attr"
	"github.com/ttpr0/go-routechoice/graph"
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
	"golang.org/x/exp/slog"
)

var ErrUnknownTurn = errors.New("unknown turn type")

//*******************************************
// csv network tables
//*******************************************

// Builds a network from node, edge and traversal tables.
//
// Without a traversal table every turn is allowed and turn types are
// derived from node coordinates.
func ParseCSV(nodes_file, edges_file, traversals_file string, delimiter rune) (*graph.Network, error) {
	node_rows, err := ReadCSVFromFile[NodeRow](nodes_file, delimiter)
	if err != nil {
		return nil, err
	}
	edge_rows, err := ReadCSVFromFile[EdgeRow](edges_file, delimiter)
	if err != nil {
		return nil, err
	}
	nodes := make([]graph.NodeData, 0, len(node_rows))
	centroids := NewDict[int32, bool](len(node_rows))
	for _, row := range node_rows {
		nodes = append(nodes, NodeRowToData(row))
		if row.Centroid {
			centroids[row.ID] = true
		}
	}
	edges := make([]graph.EdgeData, 0, len(edge_rows))
	for _, row := range edge_rows {
		edges = append(edges, EdgeRowToData(row))
	}

	var network *graph.Network
	if traversals_file == "" {
		network, err = graph.BuildNetworkWithAllTraversals(nodes, edges)
	} else {
		trav_rows, terr := ReadCSVFromFile[TraversalRow](traversals_file, delimiter)
		if terr != nil {
			return nil, terr
		}
		traversals := make([]graph.TraversalData, 0, len(trav_rows))
		for _, row := range trav_rows {
			data, terr := TraversalRowToData(row)
			if terr != nil {
				return nil, terr
			}
			data.Attribs.ThruCentroid = centroids[row.Via]
			traversals = append(traversals, data)
		}
		network, err = graph.BuildNetwork(nodes, edges, traversals)
	}
	if err != nil {
		return nil, err
	}
	slog.Info("parsed csv network", "nodes", network.NodeCount(), "edges", network.EdgeCount(), "traversals", network.TraversalCount())
	return network, nil
}

func NodeRowToData(row NodeRow) graph.NodeData {
	return graph.NodeData{
		ID: row.ID,
		Attribs: attr.NodeAttribs{
			Centroid: row.Centroid,
			Loc:      orb.Point{row.X, row.Y},
		},
	}
}

func EdgeRowToData(row EdgeRow) graph.EdgeData {
	edge_attr := attr.EdgeAttribs{
		Type:      attr.RoadTypeFromString(row.Type),
		Length:    row.Length,
		Cost:      row.Cost,
		Gain:      row.Gain,
		BikeClass: byte(row.BikeClass),
		Maxspeed:  byte(row.Maxspeed),
	}
	if edge_attr.Cost == 0 {
		edge_attr.Cost = edge_attr.Length * _CostFactor(edge_attr)
	}
	return graph.EdgeData{
		From:    row.From,
		To:      row.To,
		Attribs: edge_attr,
	}
}

func TraversalRowToData(row TraversalRow) (graph.TraversalData, error) {
	turn := attr.TURN_NONE
	if row.Turn != "" {
		var ok bool
		turn, ok = attr.TurnTypeFromString(row.Turn)
		if !ok {
			return graph.TraversalData{}, errors.Wrapf(ErrUnknownTurn, "'%s' at (%d,%d,%d)", row.Turn, row.From, row.Via, row.To)
		}
	}
	return graph.TraversalData{
		FromEdge: structs.MakeNodePair(row.From, row.Via),
		ToEdge:   structs.MakeNodePair(row.Via, row.To),
		Attribs: attr.TraversalAttribs{
			Turn:       turn,
			Signal:     row.Signal,
			UnsigLeft:  row.UnsigLeft,
			UnsigCross: row.UnsigCross,
			Cost:       row.Cost,
		},
	}, nil
}
