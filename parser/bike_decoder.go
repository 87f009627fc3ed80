package parser

import (
	"github.com/ttpr0/go-routechoice/attr"
	. "github.com/ttpr0/go-routechoice/util"
)

// Bike classes of edges, 0 is mixed traffic.
const (
	BIKE_CLASS_NONE  = 0
	BIKE_CLASS_PATH  = 1
	BIKE_CLASS_LANE  = 2
	BIKE_CLASS_ROUTE = 3
)

type BikeDecoder struct {
}

var bike_types = Dict[string, bool]{"primary": true, "primary_link": true, "secondary": true, "secondary_link": true,
	"tertiary": true, "tertiary_link": true, "residential": true, "living_street": true, "service": true, "track": true,
	"unclassified": true, "road": true, "cycleway": true, "path": true, "footway": true}

func (self *BikeDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if !bike_types.ContainsKey(tags.Get("highway")) {
		return false
	}
	if tags.Get("bicycle") == "no" || tags.Get("access") == "no" {
		return false
	}
	if tags.Get("highway") == "footway" && tags.Get("bicycle") != "yes" && tags.Get("bicycle") != "designated" {
		return false
	}
	return true
}
func (self *BikeDecoder) DecodeNode(tags Dict[string, string]) attr.NodeAttribs {
	return attr.NodeAttribs{}
}
func (self *BikeDecoder) DecodeEdge(tags Dict[string, string]) attr.EdgeAttribs {
	e := attr.EdgeAttribs{}
	e.Type = attr.RoadTypeFromString(tags.Get("highway"))
	e.Maxspeed = byte(_GetTrafficSpeed(e.Type, tags.Get("maxspeed"), tags.Get("tracktype"), tags.Get("surface")))
	e.Oneway = _IsOneway(tags.Get("oneway"), tags.Get("oneway:bicycle"))
	e.BikeClass = _GetBikeClass(e.Type, tags)
	return e
}
