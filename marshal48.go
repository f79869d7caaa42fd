// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package marshal48 implements encoding and decoding of the version 4.8
// object-graph serialization format used by the RGSS family of game
// engines for their data files.
//
// A document is a two-byte version header {4, 8} followed by one tagged
// value. The tag grammar is:
//
//	0 T F   | nil, true, false
//	i       | integer (variable-length, ±2^30 native range)
//	l       | big integer: sign byte, 16-bit word count, magnitude
//	f       | float: length-prefixed decimal text
//	" :     | string, symbol (length-prefixed bytes)
//	; @     | symbol link, object link (back-references)
//	[ {  }  | array, hash, hash with a default value
//	o       | object: class symbol plus instance variables
//	S       | struct: class symbol plus members
//	u U     | userdata blob, user-marshaled value
//	c m     | class reference, module reference
//	I e     | instance decoration, module-extended value
//
// Symbols and composite values enter per-document reference tables in the
// order they are written; writing one a second time emits a link to its
// table index instead of a copy. Decoding rebuilds the same tables, so an
// aliased subtree comes back as one shared *Value reachable from several
// places, and cyclic graphs decode without recursing forever. Both tables
// live exactly as long as one Decode or Encode call.
//
// The package works in two layers. Decode and Encode convert between
// bytes and the generic value tree of package rbval. Marshal and
// Unmarshal go one layer higher, mapping classed wire objects onto the
// record structs of package rpg; callers with their own class set build a
// schema.Registry instead and use its methods.
package marshal48

import (
	"github.com/rgsskit/marshal48/internal/codec"
	"github.com/rgsskit/marshal48/internal/wire"
	"github.com/rgsskit/marshal48/rbval"
	"github.com/rgsskit/marshal48/rpg"
	"github.com/rgsskit/marshal48/schema"
)

// The only version pair the codec accepts or produces.
const (
	VersionMajor = wire.VersionMajor
	VersionMinor = wire.VersionMinor
)

// Aliases for the value tree types, so simple callers need only this
// package in their signatures.
type (
	Value       = rbval.Value
	Kind        = rbval.Kind
	Pair        = rbval.Pair
	IVar        = rbval.IVar
	Marshaler   = rbval.Marshaler
	Unmarshaler = rbval.Unmarshaler
)

// Decode parses one complete document into a value tree. The buffer must
// hold exactly one document: leftover bytes are ErrTrailingData, a short
// buffer is ErrUnexpectedEnd.
func Decode(data []byte) (*Value, error) {
	return codec.Decode(data)
}

// Encode serializes a value tree into a document.
func Encode(v *Value) ([]byte, error) {
	return codec.Encode(v)
}

// Unmarshal parses a document and fills out, resolving classed objects
// through rpg.Classes(). out follows the rules of
// (*schema.Registry).Unmarshal: a non-nil pointer to a registered record,
// a slice or map of them, or a **rbval.Value for the raw tree.
func Unmarshal(data []byte, out interface{}) error {
	return rpg.Classes().Unmarshal(data, out)
}

// Marshal serializes a record (or any value the schema layer handles)
// into a document, resolving classed records through rpg.Classes().
func Marshal(in interface{}) ([]byte, error) {
	return rpg.Classes().Marshal(in)
}

// NewRegistry returns an empty schema registry for callers mapping their
// own class names.
func NewRegistry() *schema.Registry {
	return schema.NewRegistry()
}
