package main

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/ttpr0/go-routechoice/batched"
	"github.com/ttpr0/go-routechoice/graph"
	"github.com/ttpr0/go-routechoice/intrazonal"
	"github.com/ttpr0/go-routechoice/parser"
	"github.com/ttpr0/go-routechoice/pathchoice"
	"github.com/ttpr0/go-routechoice/routing"
	. "github.com/ttpr0/go-routechoice/util"
	"github.com/ttpr0/go-routechoice/weighting"
	"golang.org/x/exp/slog"
)

// Loads the network described by the config.
func LoadNetwork(options NetworkOptions) (*graph.Network, error) {
	switch options.Source {
	case SOURCE_CSV:
		return parser.ParseCSV(options.Nodes, options.Edges, options.Traversals, options.DelimiterRune())
	case SOURCE_OSM:
		return parser.ParseOSM(options.OSM, &parser.BikeDecoder{})
	default:
		return nil, errors.Wrapf(ErrConfig, "unknown network source %d", options.Source)
	}
}

func NewRoutingManager(config Config) (*RoutingManager, error) {
	network, err := LoadNetwork(config.Network)
	if err != nil {
		return nil, err
	}
	return NewRoutingManagerFromNetwork(network, config), nil
}

func NewRoutingManagerFromNetwork(network *graph.Network, config Config) *RoutingManager {
	zones := pathchoice.CentroidNodes(network)
	slog.Info("created routing manager", "nodes", network.NodeCount(), "zones", zones.Length(), "algorithm", config.Routing.Algorithm.String())
	return &RoutingManager{
		config:    config,
		network:   network,
		zones:     zones,
		edge_cost: weighting.NewEdgeAttributeCost(network),
		trav_cost: weighting.NewTraversalAttributeCost(network),
		encodings: routing.NewEncodingCache(),
	}
}

// Owns the network and everything derived from it.
type RoutingManager struct {
	config    Config
	network   *graph.Network
	zones     Array[int32]
	edge_cost weighting.IEdgeEvaluator
	trav_cost weighting.ITraversalEvaluator
	encodings *routing.EncodingCache

	nearby_once sync.Once
	nearby      pathchoice.NearbyDistances
	nearby_err  error
}

func (self *RoutingManager) Network() *graph.Network {
	return self.network
}

func (self *RoutingManager) Zones() Array[int32] {
	return self.zones
}

func (self *RoutingManager) GetShortestPath(algorithm AlgorithmType) (routing.IShortestPath, error) {
	switch algorithm {
	case DIJKSTRA:
		return routing.NewDijkstra(self.network, self.edge_cost, self.trav_cost), nil
	case ARRAY:
		encoding, err := self.encodings.Get("cost", self.network, self.edge_cost, self.trav_cost)
		if err != nil {
			return nil, err
		}
		return routing.NewDijkstraArray(encoding), nil
	case REPEATED:
		mode := routing.INTRAZONAL_TRIVIAL
		if self.config.Routing.Intrazonal {
			mode = routing.INTRAZONAL_LOOP
		}
		return routing.NewRepeatedDijkstra(self.network, self.edge_cost, self.trav_cost, routing.WithIntrazonal(mode), routing.WithTraversalCache()), nil
	default:
		return nil, errors.Wrapf(ErrConfig, "unknown algorithm %d", algorithm)
	}
}

// Runs the configured algorithm for all origins in parallel.
func (self *RoutingManager) GetShortestPaths(algorithm AlgorithmType, origins, destinations Array[int32]) (*routing.ShortestPathResults, error) {
	sp, err := self.GetShortestPath(algorithm)
	if err != nil {
		return nil, err
	}
	parallel := batched.NewParallelShortestPath(sp, self.config.Routing.Parallel.Value(), batched.WithWorkers(self.config.Routing.Workers))
	return parallel.GetShortestPaths(origins, destinations, self.config.Routing.MaxCost)
}

// Distances between nearby zones, computed on first use.
//
// With intrazonal routing the distance of a zone to itself is replaced by the
// estimate from its nearest zones.
func (self *RoutingManager) GetNearby() (pathchoice.NearbyDistances, error) {
	self.nearby_once.Do(func() {
		opts := self.config.Pathchoice
		nearby, err := pathchoice.ComputeNearbyDistances(self.network, self.zones, opts.MaxDistance, self.config.Routing.Parallel.Value(), self.config.Routing.Workers, self.config.Routing.Intrazonal)
		if err != nil {
			self.nearby_err = err
			return
		}
		if self.config.Routing.Intrazonal && opts.IntrazonalEstimate.Count > 0 {
			calc := intrazonal.NewMinFactorCalculation(intrazonal.NewSimpleFactorizer(opts.IntrazonalEstimate.Factor, 0), opts.IntrazonalEstimate.Count)
			intrazonal.ApplyIntrazonals(nearby, calc)
		}
		self.nearby = nearby
	})
	return self.nearby, self.nearby_err
}

func (self *RoutingManager) GetGenerator() (*pathchoice.Generator, error) {
	nearby, err := self.GetNearby()
	if err != nil {
		return nil, err
	}
	return pathchoice.NewGenerator(self.network, self.edge_cost, self.trav_cost, nearby, self.config.GeneratorConfig())
}

// Validates origins against the zones of the network.
func (self *RoutingManager) CheckZones(ids Array[int32]) error {
	for _, id := range ids {
		node := self.network.GetNode(id)
		if !node.HasValue() {
			return errors.Errorf("unknown node %d", id)
		}
		if !node.Value.Attribs.Centroid {
			return errors.Errorf("node %d is not a zone", id)
		}
	}
	return nil
}
