package main

type ShortestPathRequest struct {
	Origin      int32  `json:"origin"`
	Destination int32  `json:"destination"`
	Algorithm   string `json:"algorithm"`
}

type AlternativesRequest struct {
	Origin int32 `json:"origin"`
	// empty for all nearby zones
	Destinations []int32 `json:"destinations"`
	Geometry     bool    `json:"geometry"`
}
