package graph

import (
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/ttpr0/go-routechoice/attr"
)

// Builds a rows x cols grid with edges in both directions between neighbouring nodes.
//
// Node ids are row*cols+col+1, nodes on the border are centroids. Edge
// lengths are drawn uniformly from [1,2) so shortest paths are unique.
func BuildGridNetwork(rows, cols int, seed int64) (*Network, error) {
	rng := rand.New(rand.NewSource(seed))
	id := func(r, c int) int32 {
		return int32(r*cols + c + 1)
	}

	nodes := make([]NodeData, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			nodes = append(nodes, NodeData{
				ID: id(r, c),
				Attribs: attr.NodeAttribs{
					Centroid: r == 0 || c == 0 || r == rows-1 || c == cols-1,
					Loc:      orb.Point{8.0 + float64(c)*0.001, 49.0 + float64(r)*0.001},
				},
			})
		}
	}
	edges := make([]EdgeData, 0, 4*rows*cols)
	add := func(a, b int32) {
		length := 1 + rng.Float64()
		edges = append(edges, EdgeData{
			From:    a,
			To:      b,
			Attribs: attr.EdgeAttribs{Length: length, Cost: length},
		})
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				add(id(r, c), id(r, c+1))
				add(id(r, c+1), id(r, c))
			}
			if r+1 < rows {
				add(id(r, c), id(r+1, c))
				add(id(r+1, c), id(r, c))
			}
		}
	}
	return BuildNetworkWithAllTraversals(nodes, edges)
}
