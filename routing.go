package main

import (
	"net/http"
	"slices"

	"github.com/ttpr0/go-routechoice/metrics"
	"github.com/ttpr0/go-routechoice/pathchoice"
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
)

//**********************************************************
// http handlers
//**********************************************************

func NewServeMux(manager *RoutingManager) *http.ServeMux {
	app := http.NewServeMux()
	MapGet(app, "/v0/network", func(none) Result {
		return HandleNetworkRequest(manager)
	})
	MapGet(app, "/v0/shortest-path", func(req ShortestPathRequest) Result {
		return HandleShortestPathRequest(manager, req)
	})
	MapPost(app, "/v0/matrix", func(req MatrixRequest) Result {
		return HandleMatrixRequest(manager, req)
	})
	MapPost(app, "/v0/alternatives", func(req AlternativesRequest) Result {
		return HandleAlternativesRequest(manager, req)
	})
	app.Handle("/metrics", metrics.Handler())
	return app
}

func HandleNetworkRequest(manager *RoutingManager) Result {
	network := manager.Network()
	return OK(NetworkResponse{
		Nodes:      network.NodeCount(),
		Edges:      network.EdgeCount(),
		Traversals: network.TraversalCount(),
		Zones:      manager.Zones(),
	})
}

func HandleShortestPathRequest(manager *RoutingManager, req ShortestPathRequest) Result {
	algorithm := manager.config.Routing.Algorithm
	if req.Algorithm != "" {
		alg, err := AlgorithmTypeFromString(req.Algorithm)
		if err != nil {
			return BadRequest(err.Error())
		}
		algorithm = alg
	}
	network := manager.Network()
	if !network.ContainsNode(req.Origin) || !network.ContainsNode(req.Destination) {
		return NotFound("unknown origin or destination")
	}
	results, err := manager.GetShortestPaths(algorithm, Array[int32]{req.Origin}, Array[int32]{req.Destination})
	if err != nil {
		return InternalError(err)
	}
	resp := ShortestPathResponse{
		Origin:      req.Origin,
		Destination: req.Destination,
	}
	result, ok := results.Get(structs.MakeNodePair(req.Origin, req.Destination))
	if ok && result.IsReached() {
		resp.Reached = true
		resp.Cost = result.Cost
		resp.Nodes = result.Path.Nodes()
	}
	return OK(resp)
}

func HandleAlternativesRequest(manager *RoutingManager, req AlternativesRequest) Result {
	if err := manager.CheckZones(Array[int32]{req.Origin}); err != nil {
		return BadRequest(err.Error())
	}
	generator, err := manager.GetGenerator()
	if err != nil {
		return InternalError(err)
	}
	generated, err := generator.Generate(Array[int32]{req.Origin})
	if err != nil {
		return InternalError(err)
	}

	lists := NewList[*pathchoice.PathAlternativeList](generated.Lists.Length())
	for pair, list := range generated.Lists {
		if len(req.Destinations) > 0 && !slices.Contains(req.Destinations, pair.To) {
			continue
		}
		lists.Add(list)
	}
	slices.SortFunc(lists, func(a, b *pathchoice.PathAlternativeList) int {
		return int(a.Pair().To) - int(b.Pair().To)
	})

	resp := AlternativesResponse{
		Origin: req.Origin,
		Sets:   make([]AlternativeSet, 0, lists.Length()),
	}
	for _, list := range lists {
		attributes, err := pathchoice.GetPathAttributes(manager.Network(), list)
		if err != nil {
			return InternalError(err)
		}
		sufficient := !slices.Contains(generated.InsufficientSamples, list.Pair())
		resp.Sets = append(resp.Sets, NewAlternativeSet(list, attributes, sufficient))
	}
	if req.Geometry && manager.Network().HasGeometry() {
		resp.Geometry = pathchoice.TraceGeoJSON(manager.Network(), lists)
	}
	return OK(resp)
}
