// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rbval

import (
	"fmt"
	"strings"
)

type codecError string

func (e codecError) Error() string {
	return string(e)
}

const (
	// Version header does not match the supported 4.8 pair
	ErrIncompatibleVersion = codecError("marshal48: incompatible format version")

	// A read ran past the end of the input buffer
	ErrUnexpectedEnd = codecError("marshal48: unexpected end of input")

	// Bytes remained after a complete top-level value
	ErrTrailingData = codecError("marshal48: trailing data after document")

	// A symbol or object link referenced a table slot that does not exist yet
	//
	// Links may only point backwards: the referenced entry must have been
	// decoded (or emitted) earlier in the same document.
	ErrBadReference = codecError("marshal48: link index out of range")

	// A tag byte (or a malformed payload following one) does not denote a
	// value this codec understands
	ErrUnknownTag = codecError("marshal48: unknown tag")

	// A wire value does not fit the registered field list of its class:
	// a required field is missing, a field holds the wrong kind of value,
	// or the class itself is not registered where a registered one is needed
	ErrSchemaMismatch = codecError("marshal48: schema mismatch")

	// A grid blob's element count disagrees with its dimensions
	ErrGridShapeMismatch = codecError("marshal48: grid shape mismatch")

	// Nesting depth exceeded the decoder's safety bound. Well-formed data
	// never comes close to the bound; hitting it means the input is corrupt
	// or hostile.
	ErrTooDeep = codecError("marshal48: nesting too deep")
)

// VersionError reports the version pair found in the header.
type VersionError struct {
	Major, Minor byte
}

func (e VersionError) Is(target error) bool {
	return target == ErrIncompatibleVersion
}

func (e VersionError) Error() string {
	return fmt.Sprintf("%s (got %d.%d, support 4.8)", ErrIncompatibleVersion, e.Major, e.Minor)
}

// TruncatedError reports a read that would run past the end of the input.
type TruncatedError struct {
	Offset int
	Want   int
	Have   int
}

func (e TruncatedError) Is(target error) bool {
	return target == ErrUnexpectedEnd
}

func (e TruncatedError) Error() string {
	return fmt.Sprintf("%s (need %d bytes at offset %d, %d remain)",
		ErrUnexpectedEnd, e.Want, e.Offset, e.Have)
}

// CountError reports a length prefix which cannot be satisfied: either
// negative, or larger than the input that remains.
type CountError struct {
	Offset int
	Count  int64
}

func (e CountError) Is(target error) bool {
	return target == ErrUnexpectedEnd
}

func (e CountError) Error() string {
	if e.Count < 0 {
		return fmt.Sprintf("%s (negative count %d at offset %d)", ErrUnexpectedEnd, e.Count, e.Offset)
	}
	return fmt.Sprintf("%s (count %d at offset %d exceeds input)", ErrUnexpectedEnd, e.Count, e.Offset)
}

// TrailingError reports leftover input after a complete top-level value.
type TrailingError struct {
	Remaining int
}

func (e TrailingError) Is(target error) bool {
	return target == ErrTrailingData
}

func (e TrailingError) Error() string {
	return fmt.Sprintf("%s (%d bytes remain)", ErrTrailingData, e.Remaining)
}

// ReferenceError reports an out-of-range symbol or object link.
type ReferenceError struct {
	// "symbol" or "object"
	Table string
	Index int64
	Len   int
}

func (e ReferenceError) Is(target error) bool {
	return target == ErrBadReference
}

func (e ReferenceError) Error() string {
	return fmt.Sprintf("%s (%s link %d, table holds %d)", ErrBadReference, e.Table, e.Index, e.Len)
}

// TagError reports an unsupported tag byte, or a payload (float text,
// bignum sign) that no supported producer emits.
type TagError struct {
	Tag    byte
	Offset int
}

func (e TagError) Is(target error) bool {
	return target == ErrUnknownTag
}

func (e TagError) Error() string {
	return fmt.Sprintf("%s (0x%02x at offset %d)", ErrUnknownTag, e.Tag, e.Offset)
}

// SchemaError reports a value that does not fit its class's field list.
type SchemaError struct {
	Class  string
	Field  string
	Reason string
}

func (e SchemaError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

func (e SchemaError) Error() string {
	switch {
	case e.Class == "":
		return fmt.Sprintf("%s (%s)", ErrSchemaMismatch, e.Reason)
	case e.Field == "":
		return fmt.Sprintf("%s (%s: %s)", ErrSchemaMismatch, e.Class, e.Reason)
	default:
		return fmt.Sprintf("%s (%s.%s: %s)", ErrSchemaMismatch, e.Class, e.Field, e.Reason)
	}
}

// GridError reports a grid blob whose element count does not equal the
// product of its dimensions.
type GridError struct {
	Width, Height, Depth uint32
	Count                uint32
}

func (e GridError) Is(target error) bool {
	return target == ErrGridShapeMismatch
}

func (e GridError) Error() string {
	return fmt.Sprintf("%s (%dx%dx%d needs %d elements, blob holds %d)",
		ErrGridShapeMismatch, e.Width, e.Height, e.Depth,
		e.Width*e.Height*e.Depth, e.Count)
}

// DepthError reports that decoding recursed past the safety bound.
type DepthError struct {
	Depth int
}

func (e DepthError) Is(target error) bool {
	return target == ErrTooDeep
}

func (e DepthError) Error() string {
	return fmt.Sprintf("%s (%d levels)", ErrTooDeep, e.Depth)
}

// FieldError locates an underlying error within the object graph.
type FieldError struct {
	Underlying error
	Path       string
}

func (e FieldError) Unwrap() error {
	return e.Underlying
}

func (e FieldError) Error() string {
	uerr := strings.TrimPrefix(e.Underlying.Error(), "marshal48: ")
	return fmt.Sprintf("marshal48: %s (at %s)", uerr, e.Path)
}

// WithFieldPath wraps err with a path component. Nested wraps accumulate
// outermost-first, so the final message reads root to leaf.
func WithFieldPath(err error, parts ...string) error {
	if err == nil {
		return nil
	}

	combined := strings.Join(parts, ".")

	switch err := err.(type) {
	case FieldError:
		err.Path = fmt.Sprintf("%s %s", combined, err.Path)
		return err
	default:
		return FieldError{err, combined}
	}
}
