package parser

import (
	"strconv"

	"github.com/ttpr0/go-routechoice/attr"
	. "github.com/ttpr0/go-routechoice/util"
)

//*******************************************
// utility methods
//*******************************************

func _IsOneway(oneway string, oneway_bicycle string) bool {
	if oneway_bicycle != "" {
		return oneway_bicycle == "yes"
	}
	return oneway == "yes" || oneway == "1" || oneway == "true"
}

func _GetBikeClass(typ attr.RoadType, tags Dict[string, string]) byte {
	switch {
	case typ == attr.CYCLEWAY || typ == attr.PATH || typ == attr.FOOTWAY:
		return BIKE_CLASS_PATH
	case tags.ContainsKey("cycleway") && tags.Get("cycleway") != "no",
		tags.ContainsKey("cycleway:right") && tags.Get("cycleway:right") != "no",
		tags.ContainsKey("cycleway:left") && tags.Get("cycleway:left") != "no":
		return BIKE_CLASS_LANE
	case tags.Get("bicycle") == "designated":
		return BIKE_CLASS_ROUTE
	}
	return BIKE_CLASS_NONE
}

// Multiplier of the edge length giving its generalized cost.
func _CostFactor(edge attr.EdgeAttribs) float64 {
	factor := 1.0
	switch edge.BikeClass {
	case BIKE_CLASS_PATH:
		factor = 0.8
	case BIKE_CLASS_LANE:
		factor = 0.9
	case BIKE_CLASS_ROUTE:
		factor = 0.95
	default:
		switch edge.Type {
		case attr.PRIMARY, attr.PRIMARY_LINK:
			factor = 1.6
		case attr.SECONDARY, attr.SECONDARY_LINK:
			factor = 1.3
		case attr.TRACK:
			factor = 1.2
		}
	}
	return factor
}

var _DEFAULT_SPEEDS = map[attr.RoadType]int32{
	attr.MOTORWAY:       100,
	attr.TRUNK:          85,
	attr.MOTORWAY_LINK:  60,
	attr.TRUNK_LINK:     60,
	attr.PRIMARY:        65,
	attr.SECONDARY:      60,
	attr.TERTIARY:       50,
	attr.PRIMARY_LINK:   50,
	attr.SECONDARY_LINK: 50,
	attr.TERTIARY_LINK:  40,
	attr.UNCLASSIFIED:   30,
	attr.RESIDENTIAL:    30,
	attr.LIVING_STREET:  10,
	attr.FOOTWAY:        10,
}

var _TRACK_SPEEDS = map[string]int32{
	"grade1": 40,
	"grade2": 30,
	"grade3": 20,
	"grade4": 15,
	"grade5": 10,
}

var _SURFACE_LIMITS = map[string]int32{
	"cement": 80, "compacted": 80,
	"fine_gravel":   60,
	"paving_stones": 40, "metal": 40, "bricks": 40,
	"grass": 30, "wood": 30, "sett": 30, "grass_paver": 30, "gravel": 30, "unpaved": 30, "ground": 30, "dirt": 30, "pebblestone": 30, "tartan": 30,
	"cobblestone": 20, "clay": 20,
	"earth": 15, "stone": 15, "rocky": 15, "sand": 15,
	"mud": 10,
}

// Speed of motorized traffic next to the cyclist in km/h.
//
// An explicit maxspeed tag wins over the road type default, the surface caps
// the result.
func _GetTrafficSpeed(typ attr.RoadType, maxspeed string, tracktype string, surface string) int32 {
	speed, ok := _DEFAULT_SPEEDS[typ]
	if !ok {
		speed = 20
	}
	if typ == attr.TRACK {
		speed = 15
		if s, ok := _TRACK_SPEEDS[tracktype]; ok {
			speed = s
		}
	}
	switch maxspeed {
	case "":
	case "walk":
		speed = 10
	case "none":
		speed = 110
	default:
		if s, err := strconv.Atoi(maxspeed); err == nil && s > 0 {
			speed = int32(s)
		}
	}
	if limit, ok := _SURFACE_LIMITS[surface]; ok && speed > limit {
		speed = limit
	}
	return speed
}
