package main

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/ttpr0/go-routechoice/pathchoice"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

type NetworkResponse struct {
	Nodes      int     `json:"nodes"`
	Edges      int     `json:"edges"`
	Traversals int     `json:"traversals"`
	Zones      []int32 `json:"zones"`
}

type ShortestPathResponse struct {
	Origin      int32   `json:"origin"`
	Destination int32   `json:"destination"`
	Reached     bool    `json:"reached"`
	Cost        float64 `json:"cost"`
	Nodes       []int32 `json:"nodes"`
}

type AlternativePath struct {
	Nodes      []int32 `json:"nodes"`
	Length     float64 `json:"length"`
	Cost       float64 `json:"cost"`
	Size       float64 `json:"size"`
	LeftTurns  int     `json:"left_turns"`
	RightTurns int     `json:"right_turns"`
	Signals    int     `json:"signals"`
}

type AlternativeSet struct {
	Destination int32             `json:"destination"`
	SizeTotal   float64           `json:"size_total"`
	Sufficient  bool              `json:"sufficient"`
	Paths       []AlternativePath `json:"paths"`
}

type AlternativesResponse struct {
	Origin   int32                      `json:"origin"`
	Sets     []AlternativeSet           `json:"sets"`
	Geometry *geojson.FeatureCollection `json:"geometry,omitempty"`
}

func NewAlternativeSet(list *pathchoice.PathAlternativeList, attributes []pathchoice.PathAttributes, sufficient bool) AlternativeSet {
	set := AlternativeSet{
		Destination: list.Pair().To,
		SizeTotal:   list.SizeMeasureTotal(),
		Sufficient:  sufficient,
		Paths:       make([]AlternativePath, 0, list.Count()),
	}
	lengths := list.Lengths()
	for i, path := range list.Paths() {
		set.Paths = append(set.Paths, AlternativePath{
			Nodes:      path.Nodes(),
			Length:     lengths[i],
			Cost:       attributes[i].Cost,
			Size:       attributes[i].Size,
			LeftTurns:  attributes[i].LeftTurns,
			RightTurns: attributes[i].RightTurns,
			Signals:    attributes[i].Signals,
		})
	}
	return set
}
