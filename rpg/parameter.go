// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/rgsskit/marshal48/internal/codec"
	"github.com/rgsskit/marshal48/rbval"
	"github.com/rgsskit/marshal48/rgss"
)

// ParameterKind identifies which variant a Parameter holds.
type ParameterKind uint8

const (
	ParamNone ParameterKind = iota
	ParamInt
	ParamFloat
	ParamText
	ParamBool
	ParamArray
	ParamColor
	ParamTone
	ParamAudio
	ParamRoute
	ParamMoveCommand
	ParamRaw
)

// String returns the kind name.
func (k ParameterKind) String() string {
	switch k {
	case ParamNone:
		return "none"
	case ParamInt:
		return "integer"
	case ParamFloat:
		return "float"
	case ParamText:
		return "text"
	case ParamBool:
		return "bool"
	case ParamArray:
		return "array"
	case ParamColor:
		return "color"
	case ParamTone:
		return "tone"
	case ParamAudio:
		return "audio file"
	case ParamRoute:
		return "move route"
	case ParamMoveCommand:
		return "move command"
	case ParamRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Parameter is one operand of an event or move command. The command code
// decides the shape, so operands are a closed union over the value kinds
// command interpreters actually use: scalars, nested arrays, the packed
// color types, and the three record classes that ride along inside command
// lists.
//
// Values outside that set (symbols, hashes, objects of other classes)
// survive as raw wire trees instead of failing the whole document, and
// re-encode exactly as they arrived.
//
// The zero Parameter is the none variant.
type Parameter struct {
	kind ParameterKind

	n     int64
	f     float64
	s     string
	b     bool
	elems []Parameter

	color *rgss.Color
	tone  *rgss.Tone
	audio *AudioFile
	route *MoveRoute
	move  *MoveCommand
	raw   *rbval.Value
}

// NilParameter returns the none variant. It is the zero value; the
// constructor exists for symmetry at call sites building operand lists.
func NilParameter() Parameter {
	return Parameter{}
}

// IntParameter returns an integer operand.
func IntParameter(n int) Parameter {
	return Parameter{kind: ParamInt, n: int64(n)}
}

// FloatParameter returns a float operand.
func FloatParameter(f float64) Parameter {
	return Parameter{kind: ParamFloat, f: f}
}

// TextParameter returns a text operand.
func TextParameter(s string) Parameter {
	return Parameter{kind: ParamText, s: s}
}

// BoolParameter returns a boolean operand.
func BoolParameter(b bool) Parameter {
	return Parameter{kind: ParamBool, b: b}
}

// ArrayParameter returns a nested operand list.
func ArrayParameter(elems ...Parameter) Parameter {
	return Parameter{kind: ParamArray, elems: elems}
}

// ColorParameter returns a color operand.
func ColorParameter(c rgss.Color) Parameter {
	return Parameter{kind: ParamColor, color: &c}
}

// ToneParameter returns a tone operand.
func ToneParameter(t rgss.Tone) Parameter {
	return Parameter{kind: ParamTone, tone: &t}
}

// AudioParameter returns an audio file operand.
func AudioParameter(a AudioFile) Parameter {
	return Parameter{kind: ParamAudio, audio: &a}
}

// RouteParameter returns a move route operand.
func RouteParameter(r MoveRoute) Parameter {
	return Parameter{kind: ParamRoute, route: &r}
}

// MoveCommandParameter returns a single move step operand.
func MoveCommandParameter(m MoveCommand) Parameter {
	return Parameter{kind: ParamMoveCommand, move: &m}
}

// RawParameter returns an operand carrying an arbitrary wire tree.
func RawParameter(v *rbval.Value) Parameter {
	if v == nil || v.IsNil() {
		return Parameter{}
	}
	return Parameter{kind: ParamRaw, raw: v}
}

// Kind returns the variant held.
func (p Parameter) Kind() ParameterKind { return p.kind }

// IsNone reports whether this is the none variant.
func (p Parameter) IsNone() bool { return p.kind == ParamNone }

// Truthy reports how a command interpreter tests the operand: everything is
// truthy except none, false and integer zero.
func (p Parameter) Truthy() bool {
	switch p.kind {
	case ParamNone:
		return false
	case ParamBool:
		return p.b
	case ParamInt:
		return p.n != 0
	default:
		return true
	}
}

// Int returns the integer payload.
func (p Parameter) Int() (int, bool) {
	return int(p.n), p.kind == ParamInt
}

// Float returns the float payload.
func (p Parameter) Float() (float64, bool) {
	return p.f, p.kind == ParamFloat
}

// Text returns the text payload.
func (p Parameter) Text() (string, bool) {
	return p.s, p.kind == ParamText
}

// Bool returns the boolean payload.
func (p Parameter) Bool() (bool, bool) {
	return p.b, p.kind == ParamBool
}

// Array returns the nested operand list. The slice is the parameter's own
// backing store.
func (p Parameter) Array() ([]Parameter, bool) {
	return p.elems, p.kind == ParamArray
}

// Color returns the color payload.
func (p Parameter) Color() (rgss.Color, bool) {
	if p.kind != ParamColor {
		return rgss.Color{}, false
	}
	return *p.color, true
}

// Tone returns the tone payload.
func (p Parameter) Tone() (rgss.Tone, bool) {
	if p.kind != ParamTone {
		return rgss.Tone{}, false
	}
	return *p.tone, true
}

// Audio returns the audio file payload. The pointer aliases the parameter,
// so editing through it edits the operand.
func (p Parameter) Audio() (*AudioFile, bool) {
	return p.audio, p.kind == ParamAudio
}

// Route returns the move route payload, aliased like Audio.
func (p Parameter) Route() (*MoveRoute, bool) {
	return p.route, p.kind == ParamRoute
}

// MoveCommand returns the move step payload, aliased like Audio.
func (p Parameter) MoveCommand() (*MoveCommand, bool) {
	return p.move, p.kind == ParamMoveCommand
}

// Raw returns the wire tree of a raw operand.
func (p Parameter) Raw() (*rbval.Value, bool) {
	return p.raw, p.kind == ParamRaw
}

// Equal reports whether two operands hold the same content. Command GUIDs
// are session identity, not content, and are ignored.
func (p Parameter) Equal(o Parameter) bool {
	if p.kind != o.kind {
		return false
	}
	switch p.kind {
	case ParamNone:
		return true
	case ParamInt:
		return p.n == o.n
	case ParamFloat:
		return p.f == o.f
	case ParamText:
		return p.s == o.s
	case ParamBool:
		return p.b == o.b
	case ParamArray:
		if len(p.elems) != len(o.elems) {
			return false
		}
		for i := range p.elems {
			if !p.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	case ParamColor:
		return *p.color == *o.color
	case ParamTone:
		return *p.tone == *o.tone
	case ParamAudio:
		return p.audio.Equal(*o.audio)
	case ParamRoute:
		return p.route.Equal(*o.route)
	case ParamMoveCommand:
		return p.move.Equal(*o.move)
	case ParamRaw:
		return p.raw.Equal(o.raw)
	default:
		return false
	}
}

// MarshalValue emits the operand in its wire shape.
func (p Parameter) MarshalValue() (*rbval.Value, error) {
	switch p.kind {
	case ParamNone:
		return rbval.Nil(), nil
	case ParamInt:
		return rbval.Int(p.n), nil
	case ParamFloat:
		return rbval.Float(p.f), nil
	case ParamText:
		return rbval.Str(p.s), nil
	case ParamBool:
		return rbval.Bool(p.b), nil
	case ParamArray:
		arr := rbval.Array()
		for i, e := range p.elems {
			ev, err := e.MarshalValue()
			if err != nil {
				return nil, rbval.WithFieldPath(err, fmt.Sprintf("[%d]", i))
			}
			arr.Append(ev)
		}
		return arr, nil
	case ParamColor:
		return p.color.MarshalValue()
	case ParamTone:
		return p.tone.MarshalValue()
	case ParamAudio:
		return Classes().Produce(p.audio)
	case ParamRoute:
		return Classes().Produce(p.route)
	case ParamMoveCommand:
		return Classes().Produce(p.move)
	case ParamRaw:
		return p.raw, nil
	default:
		return nil, rbval.SchemaError{Reason: fmt.Sprintf("parameter kind %d has no wire form", p.kind)}
	}
}

// UnmarshalValue classifies a wire value into an operand variant. Wrapped
// values (text with an encoding variable, most commonly) classify by their
// inner value; whatever does not fit a variant becomes a raw operand.
func (p *Parameter) UnmarshalValue(v *rbval.Value) error {
	u := v.Unwrap()
	switch u.Kind() {
	case rbval.KindNil:
		*p = Parameter{}
		return nil

	case rbval.KindBool:
		b, _ := u.AsBool()
		*p = BoolParameter(b)
		return nil

	case rbval.KindInt:
		n, _ := u.AsInt()
		*p = Parameter{kind: ParamInt, n: n}
		return nil

	case rbval.KindFloat:
		f, _ := u.AsFloat()
		*p = FloatParameter(f)
		return nil

	case rbval.KindString:
		s, _ := u.AsString()
		*p = TextParameter(s)
		return nil

	case rbval.KindArray:
		elems := u.Elems()
		out := make([]Parameter, len(elems))
		for i, e := range elems {
			if err := out[i].UnmarshalValue(e); err != nil {
				return rbval.WithFieldPath(err, fmt.Sprintf("[%d]", i))
			}
		}
		*p = ArrayParameter(out...)
		return nil

	case rbval.KindUserdata:
		switch u.Class() {
		case "Color":
			var c rgss.Color
			if err := c.UnmarshalValue(u); err != nil {
				return err
			}
			*p = ColorParameter(c)
			return nil
		case "Tone":
			var t rgss.Tone
			if err := t.UnmarshalValue(u); err != nil {
				return err
			}
			*p = ToneParameter(t)
			return nil
		}
		*p = RawParameter(v)
		return nil

	case rbval.KindObject:
		switch u.Class() {
		case "RPG::AudioFile", "RPG::MoveRoute", "RPG::MoveCommand":
			rec, err := Classes().Materialize(u)
			if err != nil {
				return err
			}
			switch rec := rec.(type) {
			case *AudioFile:
				*p = Parameter{kind: ParamAudio, audio: rec}
			case *MoveRoute:
				*p = Parameter{kind: ParamRoute, route: rec}
			case *MoveCommand:
				*p = Parameter{kind: ParamMoveCommand, move: rec}
			}
			return nil
		}
		*p = RawParameter(v)
		return nil

	default:
		*p = RawParameter(v)
		return nil
	}
}

// tagged returns the operand as a single-key document for the text formats:
// the variant tag plus a payload the format's own reflection rules handle.
// The none variant returns an empty tag and serializes as null.
func (p Parameter) tagged() (string, interface{}, error) {
	switch p.kind {
	case ParamNone:
		return "", nil, nil
	case ParamInt:
		return "integer", p.n, nil
	case ParamFloat:
		return "float", p.f, nil
	case ParamText:
		return "text", p.s, nil
	case ParamBool:
		return "bool", p.b, nil
	case ParamArray:
		return "array", p.elems, nil
	case ParamColor:
		return "color", p.color, nil
	case ParamTone:
		return "tone", p.tone, nil
	case ParamAudio:
		return "audio_file", p.audio, nil
	case ParamRoute:
		return "move_route", p.route, nil
	case ParamMoveCommand:
		return "move_command", p.move, nil
	case ParamRaw:
		// Raw trees can hold anything the wire can, so they travel as
		// their own serialized document.
		blob, err := codec.Encode(p.raw)
		if err != nil {
			return "", nil, err
		}
		return "raw", blob, nil
	default:
		return "", nil, rbval.SchemaError{Reason: fmt.Sprintf("parameter kind %d has no tagged form", p.kind)}
	}
}

// fromTagged rebuilds the operand from its tag and payload. dec is the
// format's unmarshal function, so nested parameters recurse through the
// same format.
func (p *Parameter) fromTagged(tag string, body []byte, dec func([]byte, interface{}) error) error {
	switch tag {
	case "integer":
		var n int64
		if err := dec(body, &n); err != nil {
			return err
		}
		*p = Parameter{kind: ParamInt, n: n}
	case "float":
		var f float64
		if err := dec(body, &f); err != nil {
			return err
		}
		*p = FloatParameter(f)
	case "text":
		var s string
		if err := dec(body, &s); err != nil {
			return err
		}
		*p = TextParameter(s)
	case "bool":
		var b bool
		if err := dec(body, &b); err != nil {
			return err
		}
		*p = BoolParameter(b)
	case "array":
		var elems []Parameter
		if err := dec(body, &elems); err != nil {
			return err
		}
		*p = ArrayParameter(elems...)
	case "color":
		var c rgss.Color
		if err := dec(body, &c); err != nil {
			return err
		}
		*p = ColorParameter(c)
	case "tone":
		var t rgss.Tone
		if err := dec(body, &t); err != nil {
			return err
		}
		*p = ToneParameter(t)
	case "audio_file":
		var a AudioFile
		if err := dec(body, &a); err != nil {
			return err
		}
		*p = AudioParameter(a)
	case "move_route":
		var r MoveRoute
		if err := dec(body, &r); err != nil {
			return err
		}
		*p = RouteParameter(r)
	case "move_command":
		var m MoveCommand
		if err := dec(body, &m); err != nil {
			return err
		}
		*p = MoveCommandParameter(m)
	case "raw":
		var blob []byte
		if err := dec(body, &blob); err != nil {
			return err
		}
		v, err := codec.Decode(blob)
		if err != nil {
			return err
		}
		*p = RawParameter(v)
	default:
		return rbval.SchemaError{Reason: fmt.Sprintf("unknown parameter tag %q", tag)}
	}
	return nil
}

// MarshalJSON emits null for the none variant and a single-key object
// keyed by the variant tag for everything else.
func (p Parameter) MarshalJSON() ([]byte, error) {
	tag, payload, err := p.tagged()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]interface{}{tag: payload})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc) == 0 {
		*p = Parameter{}
		return nil
	}
	if len(doc) != 1 {
		return rbval.SchemaError{Reason: fmt.Sprintf("parameter must hold one tag, holds %d", len(doc))}
	}
	for tag, body := range doc {
		return p.fromTagged(tag, body, json.Unmarshal)
	}
	return nil
}

// MarshalCBOR mirrors MarshalJSON in CBOR.
func (p Parameter) MarshalCBOR() ([]byte, error) {
	tag, payload, err := p.tagged()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return cbor.Marshal(nil)
	}
	return cbor.Marshal(map[string]interface{}{tag: payload})
}

// UnmarshalCBOR is the inverse of MarshalCBOR.
func (p *Parameter) UnmarshalCBOR(data []byte) error {
	var doc map[string]cbor.RawMessage
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc) == 0 {
		*p = Parameter{}
		return nil
	}
	if len(doc) != 1 {
		return rbval.SchemaError{Reason: fmt.Sprintf("parameter must hold one tag, holds %d", len(doc))}
	}
	for tag, body := range doc {
		return p.fromTagged(tag, body, cbor.Unmarshal)
	}
	return nil
}
