package main

import (
	"github.com/ttpr0/go-routechoice/structs"
	. "github.com/ttpr0/go-routechoice/util"
	"golang.org/x/exp/slog"
)

//**********************************************************
// matrix request and response
//**********************************************************

type MatrixRequest struct {
	Origins      []int32 `json:"origins"`
	Destinations []int32 `json:"destinations"`
	Algorithm    string  `json:"algorithm"`
}

type MatrixResponse struct {
	// cost by origin and destination, -1 if unreachable
	Costs [][]float64 `json:"costs"`
}

//**********************************************************
// matrix handler
//**********************************************************

func HandleMatrixRequest(manager *RoutingManager, req MatrixRequest) Result {
	slog.Info("Run Matrix Request", "origins", len(req.Origins), "destinations", len(req.Destinations))

	algorithm := manager.config.Routing.Algorithm
	if req.Algorithm != "" {
		alg, err := AlgorithmTypeFromString(req.Algorithm)
		if err != nil {
			return BadRequest(err.Error())
		}
		algorithm = alg
	}
	network := manager.Network()
	for _, ids := range [2][]int32{req.Origins, req.Destinations} {
		for _, id := range ids {
			if !network.ContainsNode(id) {
				return NotFound("unknown node")
			}
		}
	}
	// duplicates would be reported twice by the search
	origins := _Unique(req.Origins)
	destinations := _Unique(req.Destinations)

	results, err := manager.GetShortestPaths(algorithm, origins, destinations)
	if err != nil {
		return InternalError(err)
	}
	costs := make([][]float64, len(req.Origins))
	for i, o := range req.Origins {
		costs[i] = make([]float64, len(req.Destinations))
		for j, d := range req.Destinations {
			result, ok := results.Get(structs.MakeNodePair(o, d))
			if !ok || !result.IsReached() {
				costs[i][j] = -1
				continue
			}
			costs[i][j] = result.Cost
		}
	}
	slog.Info("Matrix reponse build")
	return OK(MatrixResponse{Costs: costs})
}

func _Unique(ids []int32) Array[int32] {
	seen := NewDict[int32, bool](len(ids))
	unique := NewList[int32](len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique.Add(id)
	}
	return Array[int32](unique)
}
