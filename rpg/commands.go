// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

import "github.com/google/uuid"

// EventCommand is one line of an event script. Code selects the operation,
// Indent the nesting level, and Parameters carries the operands.
//
// GUID identifies the command within an editing session, keeping selection
// stable while lists are reordered. It never touches the wire; constructors
// assign a fresh one and decoded commands come back with the zero GUID.
type EventCommand struct {
	Code       int         `marshal:"code" json:"code"`
	Indent     int         `marshal:"indent" json:"indent"`
	Parameters []Parameter `marshal:"parameters" json:"parameters"`

	GUID uuid.UUID `marshal:"-" json:"-"`
}

// NewEventCommand returns a command with a fresh GUID.
func NewEventCommand(code, indent int, params ...Parameter) EventCommand {
	return EventCommand{
		Code:       code,
		Indent:     indent,
		Parameters: params,
		GUID:       uuid.New(),
	}
}

// Equal compares code, indent and operands, ignoring the session GUID.
func (c EventCommand) Equal(o EventCommand) bool {
	if c.Code != o.Code || c.Indent != o.Indent || len(c.Parameters) != len(o.Parameters) {
		return false
	}
	for i := range c.Parameters {
		if !c.Parameters[i].Equal(o.Parameters[i]) {
			return false
		}
	}
	return true
}

// MoveCommand is one step of a move route.
type MoveCommand struct {
	Code       int         `marshal:"code" json:"code"`
	Parameters []Parameter `marshal:"parameters" json:"parameters"`

	GUID uuid.UUID `marshal:"-" json:"-"`
}

// NewMoveCommand returns a move step with a fresh GUID.
func NewMoveCommand(code int, params ...Parameter) MoveCommand {
	return MoveCommand{
		Code:       code,
		Parameters: params,
		GUID:       uuid.New(),
	}
}

// Equal compares code and operands, ignoring the session GUID.
func (m MoveCommand) Equal(o MoveCommand) bool {
	if m.Code != o.Code || len(m.Parameters) != len(o.Parameters) {
		return false
	}
	for i := range m.Parameters {
		if !m.Parameters[i].Equal(o.Parameters[i]) {
			return false
		}
	}
	return true
}

// MoveRoute is a scripted movement path.
type MoveRoute struct {
	Repeat    bool          `marshal:"repeat" json:"repeat"`
	Skippable bool          `marshal:"skippable" json:"skippable"`
	List      []MoveCommand `marshal:"list" json:"list"`
}

// Equal compares flags and steps, ignoring session GUIDs.
func (r MoveRoute) Equal(o MoveRoute) bool {
	if r.Repeat != o.Repeat || r.Skippable != o.Skippable || len(r.List) != len(o.List) {
		return false
	}
	for i := range r.List {
		if !r.List[i].Equal(o.List[i]) {
			return false
		}
	}
	return true
}
