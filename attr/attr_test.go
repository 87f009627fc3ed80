package attr

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/ttpr0/go-routechoice/util"
)

func TestRoadTypeStrings(t *testing.T) {
	for typ := MOTORWAY; typ <= FOOTWAY; typ++ {
		assert.Equal(t, typ, RoadTypeFromString(typ.String()), typ.String())
	}
	assert.Equal(t, RoadType(0), RoadTypeFromString("runway"))
}

func TestRoadTypeJSON(t *testing.T) {
	data, err := json.Marshal([]RoadType{CYCLEWAY, PRIMARY})
	require.NoError(t, err)

	var types []RoadType
	require.NoError(t, json.Unmarshal(data, &types))
	assert.Equal(t, []RoadType{CYCLEWAY, PRIMARY}, types)

	var typ RoadType
	assert.Error(t, json.Unmarshal([]byte(`"runway"`), &typ))
}

func TestTurnTypeStrings(t *testing.T) {
	for _, turn := range []TurnType{TURN_NONE, TURN_LEFT, TURN_RIGHT, TURN_REVERSAL} {
		parsed, ok := TurnTypeFromString(turn.String())
		require.True(t, ok)
		assert.Equal(t, turn, parsed)
	}
	parsed, ok := TurnTypeFromString("")
	assert.True(t, ok)
	assert.Equal(t, TURN_NONE, parsed)

	var turn TurnType
	assert.Error(t, json.Unmarshal([]byte(`"uturn"`), &turn))
}

func TestGraphAttributes(t *testing.T) {
	att := New(
		Array[NodeAttribs]{{Loc: orb.Point{8, 49}}, {Loc: orb.Point{8.01, 49}, Centroid: true}},
		Array[EdgeAttribs]{{Type: CYCLEWAY, Length: 0.7}},
		Array[TraversalAttribs]{},
		Array[[2]int32]{{0, 1}},
	)
	assert.True(t, att.HasGeometry())
	assert.Equal(t, CYCLEWAY, att.GetEdgeAttribs(0).Type)
	assert.Equal(t, orb.LineString{{8, 49}, {8.01, 49}}, att.GetEdgeGeom(0))

	att.SetTraversalAttribs(Array[TraversalAttribs]{{Turn: TURN_LEFT}})
	assert.Equal(t, TURN_LEFT, att.GetTraversalAttribs(0).Turn)

	empty := New(Array[NodeAttribs]{{}}, nil, nil, nil)
	assert.False(t, empty.HasGeometry())
}
