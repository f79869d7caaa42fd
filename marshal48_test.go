// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package marshal48

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgsskit/marshal48/rbval"
	"github.com/rgsskit/marshal48/rgss"
	"github.com/rgsskit/marshal48/rpg"
)

func strp(s string) *string {
	return &s
}

func TestDocumentHeader(t *testing.T) {
	data, err := Encode(rbval.Nil())
	require.NoError(t, err)
	assert.Equal(t, []byte{VersionMajor, VersionMinor, '0'}, data)
}

func TestDecodeVersionGate(t *testing.T) {
	_, err := Decode([]byte{4, 9, '0'})
	require.Error(t, err)
	assert.ErrorIs(t, err, rbval.ErrIncompatibleVersion)

	var verr rbval.VersionError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, byte(4), verr.Major)
	assert.Equal(t, byte(9), verr.Minor)

	_, err = Decode([]byte{4})
	assert.ErrorIs(t, err, rbval.ErrUnexpectedEnd)
}

func TestDecodeTrailingData(t *testing.T) {
	_, err := Decode([]byte{4, 8, '0', '0'})
	assert.ErrorIs(t, err, rbval.ErrTrailingData)
}

// A subtree written twice must come back as one shared node, not two
// copies.
func TestDecodePreservesAliasing(t *testing.T) {
	inner := rbval.Array(rbval.Int(1), rbval.Str("shared"))
	root := rbval.Array(inner, inner, rbval.Symbol("tail"))

	data, err := Encode(root)
	require.NoError(t, err)

	back, err := Decode(data)
	require.NoError(t, err)
	require.True(t, root.Equal(back), "tree should survive the round trip")

	elems := back.Elems()
	require.Len(t, elems, 3)
	assert.Same(t, elems[0], elems[1], "linked subtree should decode to one node")
}

func TestMapRoundTrip(t *testing.T) {
	m := rpg.NewMap(20, 15)
	m.TilesetID = 1
	m.BGM = rpg.AudioFile{Name: strp("theme"), Volume: 80, Pitch: 100}
	m.AutoplayBGM = true
	m.EncounterList = []int{1, 3}
	m.Data.Set(0, 0, 0, 48)
	m.Data.Set(19, 14, 2, 384)

	ev := rpg.NewEvent(5, 7, 1)
	page := &ev.Pages[0]
	page.Graphic.CharacterName = strp("hero")
	page.MoveRoute = rpg.MoveRoute{
		Repeat: true,
		List: []rpg.MoveCommand{
			rpg.NewMoveCommand(1),
			rpg.NewMoveCommand(0),
		},
	}
	page.List = []rpg.EventCommand{
		rpg.NewEventCommand(101, 0, rpg.TextParameter("Welcome!")),
		rpg.NewEventCommand(223, 0,
			rpg.ToneParameter(rgss.NewTone(-32, -32, -32, 0)),
			rpg.IntParameter(20)),
		rpg.NewEventCommand(0, 0),
	}
	m.Events[1] = ev

	data, err := Marshal(m)
	require.NoError(t, err)

	var back rpg.Map
	require.NoError(t, Unmarshal(data, &back))
	if diff := cmp.Diff(m, &back); diff != "" {
		t.Errorf("map changed across round trip (-want +got):\n%s", diff)
	}
}

// Pointing Unmarshal at a *rbval.Value captures the raw tree, classed or
// not.
func TestUnmarshalRawTree(t *testing.T) {
	data, err := Marshal(map[string]int{"a": 1, "b": 2})
	require.NoError(t, err)

	var v *rbval.Value
	require.NoError(t, Unmarshal(data, &v))
	require.Equal(t, rbval.KindHash, v.Kind())
	assert.Equal(t, 2, v.Len())
}

func TestNewRegistryIsIndependent(t *testing.T) {
	type Bookmark struct {
		Title string `marshal:"title"`
		Page  int    `marshal:"page"`
	}

	reg := NewRegistry()
	reg.Register("Bookmark", Bookmark{})

	data, err := reg.Marshal(&Bookmark{Title: "prologue", Page: 3})
	require.NoError(t, err)

	var back Bookmark
	require.NoError(t, reg.Unmarshal(data, &back))
	assert.Equal(t, Bookmark{Title: "prologue", Page: 3}, back)

	// The default class set has no Bookmark: the raw tree still decodes,
	// and materializing it hands the tree back untouched.
	var v *rbval.Value
	require.NoError(t, Unmarshal(data, &v))
	rec, err := rpg.Classes().Materialize(v)
	require.NoError(t, err)
	assert.Same(t, v, rec)
}
