package attr

import (
	"encoding/json"
	"errors"
)

//*******************************************
// enums
//*******************************************

type RoadType int8

const (
	MOTORWAY       RoadType = 1
	MOTORWAY_LINK  RoadType = 2
	TRUNK          RoadType = 3
	TRUNK_LINK     RoadType = 4
	PRIMARY        RoadType = 5
	PRIMARY_LINK   RoadType = 6
	SECONDARY      RoadType = 7
	SECONDARY_LINK RoadType = 8
	TERTIARY       RoadType = 9
	TERTIARY_LINK  RoadType = 10
	RESIDENTIAL    RoadType = 11
	LIVING_STREET  RoadType = 12
	UNCLASSIFIED   RoadType = 13
	ROAD           RoadType = 14
	TRACK          RoadType = 15
	SERVICE        RoadType = 16
	CYCLEWAY       RoadType = 17
	PATH           RoadType = 18
	FOOTWAY        RoadType = 19
)

func (self RoadType) String() string {
	switch self {
	case MOTORWAY:
		return "motorway"
	case MOTORWAY_LINK:
		return "motorway_link"
	case TRUNK:
		return "trunk"
	case TRUNK_LINK:
		return "trunk_link"
	case PRIMARY:
		return "primary"
	case PRIMARY_LINK:
		return "primary_link"
	case SECONDARY:
		return "secondary"
	case SECONDARY_LINK:
		return "secondary_link"
	case TERTIARY:
		return "tertiary"
	case TERTIARY_LINK:
		return "tertiary_link"
	case RESIDENTIAL:
		return "residential"
	case LIVING_STREET:
		return "living_street"
	case UNCLASSIFIED:
		return "unclassified"
	case ROAD:
		return "road"
	case TRACK:
		return "track"
	case SERVICE:
		return "service"
	case CYCLEWAY:
		return "cycleway"
	case PATH:
		return "path"
	case FOOTWAY:
		return "footway"
	}
	return ""
}

func RoadTypeFromString(typ string) RoadType {
	switch typ {
	case "motorway":
		return MOTORWAY
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk":
		return TRUNK
	case "trunk_link":
		return TRUNK_LINK
	case "primary":
		return PRIMARY
	case "primary_link":
		return PRIMARY_LINK
	case "secondary":
		return SECONDARY
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary":
		return TERTIARY
	case "tertiary_link":
		return TERTIARY_LINK
	case "residential":
		return RESIDENTIAL
	case "living_street":
		return LIVING_STREET
	case "unclassified":
		return UNCLASSIFIED
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "service":
		return SERVICE
	case "cycleway":
		return CYCLEWAY
	case "path":
		return PATH
	case "footway":
		return FOOTWAY
	}
	return 0
}

func (self RoadType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *RoadType) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	prof_typ := RoadTypeFromString(typ)
	if prof_typ == 0 {
		return errors.New("invalid road type")
	}
	*self = prof_typ
	return nil
}

type TurnType int8

const (
	TURN_NONE     TurnType = 0
	TURN_LEFT     TurnType = 1
	TURN_RIGHT    TurnType = 2
	TURN_REVERSAL TurnType = 3
)

func (self TurnType) String() string {
	switch self {
	case TURN_NONE:
		return "none"
	case TURN_LEFT:
		return "left"
	case TURN_RIGHT:
		return "right"
	case TURN_REVERSAL:
		return "reversal"
	}
	return ""
}

func TurnTypeFromString(typ string) (TurnType, bool) {
	switch typ {
	case "none", "":
		return TURN_NONE, true
	case "left":
		return TURN_LEFT, true
	case "right":
		return TURN_RIGHT, true
	case "reversal":
		return TURN_REVERSAL, true
	}
	return TURN_NONE, false
}

func (self TurnType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *TurnType) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	turn, ok := TurnTypeFromString(typ)
	if !ok {
		return errors.New("invalid turn type")
	}
	*self = turn
	return nil
}
