// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

import "fmt"

// BlendMode selects how a sprite's pixels combine with the scene.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendAdd
	BlendSubtract
)

// Event is one interactive entity placed on a map. Its id is the slot it
// occupies in the map's event table, so unlike database records it is not
// shifted on the wire.
type Event struct {
	ID    int         `marshal:"id" json:"id"`
	Name  string      `marshal:"name" json:"name"`
	X     int         `marshal:"x" json:"x"`
	Y     int         `marshal:"y" json:"y"`
	Pages []EventPage `marshal:"pages" json:"pages"`
}

// NewEvent returns an event at the given map position with one blank page,
// named the way the engine names fresh events.
func NewEvent(x, y, id int) *Event {
	return &Event{
		ID:    id,
		Name:  fmt.Sprintf("EV%03d", id),
		X:     x,
		Y:     y,
		Pages: []EventPage{NewEventPage()},
	}
}

// EventPage is one behavior variant of an event. The active page is the
// last one whose condition holds.
type EventPage struct {
	Condition    EventCondition `marshal:"condition" json:"condition"`
	Graphic      EventGraphic   `marshal:"graphic" json:"graphic"`
	MoveType     int            `marshal:"move_type" json:"move_type"`
	MoveSpeed    int            `marshal:"move_speed" json:"move_speed"`
	MoveFreq     int            `marshal:"move_frequency" json:"move_frequency"`
	MoveRoute    MoveRoute      `marshal:"move_route" json:"move_route"`
	WalkAnime    bool           `marshal:"walk_anime" json:"walk_anime"`
	StepAnime    bool           `marshal:"step_anime" json:"step_anime"`
	DirectionFix bool           `marshal:"direction_fix" json:"direction_fix"`
	Through      bool           `marshal:"through" json:"through"`
	AlwaysOnTop  bool           `marshal:"always_on_top" json:"always_on_top"`
	Trigger      int            `marshal:"trigger" json:"trigger"`
	List         []EventCommand `marshal:"list" json:"list"`
}

// NewEventPage returns a page with the engine's defaults.
func NewEventPage() EventPage {
	return EventPage{
		Condition: NewEventCondition(),
		Graphic:   NewEventGraphic(),
		MoveSpeed: 3,
		MoveFreq:  3,
		WalkAnime: true,
		List:      []EventCommand{},
	}
}

// EventCondition gates an event page. The two switch ids reference the
// global switch table and are shifted; the variable id is kept as the
// engine stores it.
type EventCondition struct {
	Switch1Valid    bool   `marshal:"switch1_valid" json:"switch1_valid"`
	Switch2Valid    bool   `marshal:"switch2_valid" json:"switch2_valid"`
	VariableValid   bool   `marshal:"variable_valid" json:"variable_valid"`
	SelfSwitchValid bool   `marshal:"self_switch_valid" json:"self_switch_valid"`
	Switch1ID       int    `marshal:"switch1_id,idshift" json:"switch1_id"`
	Switch2ID       int    `marshal:"switch2_id,idshift" json:"switch2_id"`
	VariableID      int    `marshal:"variable_id" json:"variable_id"`
	VariableValue   int    `marshal:"variable_value" json:"variable_value"`
	SelfSwitchCh    string `marshal:"self_switch_ch" json:"self_switch_ch"`
}

// NewEventCondition returns a condition with nothing required and the
// self switch pointing at "A".
func NewEventCondition() EventCondition {
	return EventCondition{SelfSwitchCh: "A"}
}

// EventGraphic describes how an event page draws itself. A nil TileID
// means the page shows a character sprite instead of a tile.
type EventGraphic struct {
	TileID        *int      `marshal:"tile_id,optid" json:"tile_id"`
	CharacterName *string   `marshal:"character_name,opttext" json:"character_name"`
	CharacterHue  int       `marshal:"character_hue" json:"character_hue"`
	Direction     int       `marshal:"direction" json:"direction"`
	Pattern       int       `marshal:"pattern" json:"pattern"`
	Opacity       int       `marshal:"opacity" json:"opacity"`
	BlendType     BlendMode `marshal:"blend_type" json:"blend_type"`
}

// NewEventGraphic returns a blank graphic facing down at full opacity.
func NewEventGraphic() EventGraphic {
	return EventGraphic{Direction: 2, Opacity: 255}
}

// CommonEvent is a map-independent command list, triggered manually or by
// a switch.
type CommonEvent struct {
	ID       int            `marshal:"id,idshift" json:"id"`
	Name     string         `marshal:"name" json:"name"`
	Trigger  int            `marshal:"trigger" json:"trigger"`
	SwitchID int            `marshal:"switch_id" json:"switch_id"`
	List     []EventCommand `marshal:"list" json:"list"`
}
