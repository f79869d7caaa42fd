// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package wire holds the tag bytes of the 4.8 serialization format and a
// bounds-checked cursor over in-memory documents.
package wire

// The two header bytes every document starts with.
const (
	VersionMajor byte = 4
	VersionMinor byte = 8
)

// Tag bytes. Each serialized value is introduced by exactly one of these.
const (
	TagNil         byte = '0'
	TagTrue        byte = 'T'
	TagFalse       byte = 'F'
	TagFixnum      byte = 'i'
	TagFloat       byte = 'f'
	TagBignum      byte = 'l'
	TagString      byte = '"'
	TagSymbol      byte = ':'
	TagSymlink     byte = ';'
	TagArray       byte = '['
	TagHash        byte = '{'
	TagHashDefault byte = '}'
	TagObject      byte = 'o'
	TagLink        byte = '@'
	TagUserdata    byte = 'u'
	TagUserMarshal byte = 'U'
	TagStruct      byte = 'S'
	TagClass       byte = 'c'
	TagModule      byte = 'm'
	TagInstance    byte = 'I'
	TagExtended    byte = 'e'
)

// Integers inside this range serialize under TagFixnum; anything wider
// becomes a TagBignum. The range is the 31-bit immediate-integer range of
// the format's original producer.
const (
	FixnumMin = -(1 << 30)
	FixnumMax = 1<<30 - 1
)

// Bignum sign bytes.
const (
	BignumPositive byte = '+'
	BignumNegative byte = '-'
)
