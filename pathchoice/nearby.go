package pathchoice

import (
	"slices"

	"github.com/ttpr0/go-routechoice/batched"
	"github.com/ttpr0/go-routechoice/graph"
	"github.com/ttpr0/go-routechoice/routing"
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
	"golang.org/x/exp/slog"
)

//*******************************************
// nearby zones
//*******************************************

// origin -> destination -> distance
type NearbyDistances = Dict[int32, Dict[int32, float64]]

// Returns the ids of all centroid nodes in ascending order.
func CentroidNodes(network *graph.Network) Array[int32] {
	centroids := NewList[int32](16)
	for _, id := range network.NodeIDs() {
		node := network.GetNode(id)
		if node.HasValue() && node.Value.Attribs.Centroid {
			centroids.Add(id)
		}
	}
	slices.Sort(centroids)
	return Array[int32](centroids)
}

// Computes the accessible distance between all zones within max_distance.
//
// Paths through other centroids are penalized. With intrazonal set the
// distance of a zone to itself is the shortest loop leaving the zone.
func ComputeNearbyDistances(network *graph.Network, zones Array[int32], max_distance float64, method batched.ParallelMethod, workers int, intrazonal bool) (NearbyDistances, error) {
	mode := routing.INTRAZONAL_TRIVIAL
	if intrazonal {
		mode = routing.INTRAZONAL_LOOP
	}
	sp := routing.NewRepeatedDijkstra(
		network,
		weighting.NewAccessibleDistance(network),
		weighting.NewThruCentroidPenalty(network),
		routing.WithIntrazonal(mode),
	)
	slog.Info("calculating nearby zone distances", "zones", zones.Length(), "max-distance", max_distance)
	results, err := batched.NewParallelShortestPath(sp, method, batched.WithWorkers(workers)).GetShortestPaths(zones, zones, max_distance)
	if err != nil {
		return nil, err
	}
	distances := NewDict[int32, Dict[int32, float64]](zones.Length())
	for result := range results.All() {
		if !result.IsReached() {
			continue
		}
		dests, ok := distances[result.Pair.From]
		if !ok {
			dests = NewDict[int32, float64](16)
			distances[result.Pair.From] = dests
		}
		dests[result.Pair.To] = result.Cost
	}
	return distances, nil
}
