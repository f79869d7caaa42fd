// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

import "github.com/rgsskit/marshal48/rgss"

// mapLayers is the number of tile layers every map grid carries.
const mapLayers = 3

// Map is one playable area: a three-layer tile grid plus the events placed
// on it. Events are keyed by their id, which is also where each event's own
// ID field points back.
type Map struct {
	TilesetID     int            `marshal:"tileset_id,idshift" json:"tileset_id"`
	Width         int            `marshal:"width" json:"width"`
	Height        int            `marshal:"height" json:"height"`
	AutoplayBGM   bool           `marshal:"autoplay_bgm" json:"autoplay_bgm"`
	BGM           AudioFile      `marshal:"bgm" json:"bgm"`
	AutoplayBGS   bool           `marshal:"autoplay_bgs" json:"autoplay_bgs"`
	BGS           AudioFile      `marshal:"bgs" json:"bgs"`
	EncounterList []int          `marshal:"encounter_list" json:"encounter_list"`
	EncounterStep int            `marshal:"encounter_step" json:"encounter_step"`
	Data          *rgss.Table    `marshal:"data,grid" json:"data"`
	Events        map[int]*Event `marshal:"events" json:"events"`
}

// NewMap returns an empty map of the given size with the engine's
// defaults: no encounters every 30 steps, unassigned audio, no events.
func NewMap(width, height int) *Map {
	return &Map{
		Width:         width,
		Height:        height,
		BGM:           AudioFile{Volume: 100, Pitch: 100},
		BGS:           AudioFile{Volume: 100, Pitch: 100},
		EncounterList: []int{},
		EncounterStep: 30,
		Data:          rgss.NewTable(width, height, mapLayers),
		Events:        map[int]*Event{},
	}
}

// MapInfo is one row of the map tree: display name, tree placement, and
// the editor's remembered scroll position. The map id itself is the key of
// the hash these records live in, not a field.
type MapInfo struct {
	Name     string `marshal:"name" json:"name"`
	ParentID int    `marshal:"parent_id" json:"parent_id"`
	Order    int    `marshal:"order" json:"order"`
	Expanded bool   `marshal:"expanded" json:"expanded"`
	ScrollX  int    `marshal:"scroll_x" json:"scroll_x"`
	ScrollY  int    `marshal:"scroll_y" json:"scroll_y"`
}
