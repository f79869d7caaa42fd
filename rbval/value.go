// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package rbval defines the value tree the codec decodes into and encodes
// from, together with the error kinds the codec surfaces.
//
// (This package is separated out so that the engine, the schema layer and
// record packages can all share the tree without import cycles.)
//
// Values are handled through pointers. Pointer identity is what the codec's
// reference tables key on: two fields holding the same *Value encode as one
// table entry plus a link, and a link on the wire decodes back into the same
// shared *Value. Plain scalar kinds can be shared too, but sharing carries
// no meaning for them beyond smaller output.
package rbval

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindBigInt
	KindFloat
	KindString
	KindSymbol
	KindArray
	KindHash
	KindObject
	KindStruct
	KindUserdata
	KindUserMarshal
	KindClass
	KindModule
	KindInstance
	KindExtended
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindBigInt:
		return "big integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindArray:
		return "array"
	case KindHash:
		return "hash"
	case KindObject:
		return "object"
	case KindStruct:
		return "struct"
	case KindUserdata:
		return "userdata"
	case KindUserMarshal:
		return "user marshal"
	case KindClass:
		return "class"
	case KindModule:
		return "module"
	case KindInstance:
		return "instance"
	case KindExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// Pair is one hash entry. Keys are full values, not just text.
type Pair struct {
	Key, Value *Value
}

// IVar is one named slot of an object, struct or instance wrapper. Name
// holds the exact wire symbol text: object variables carry their leading
// "@", struct members and encoding flags ("E") do not.
type IVar struct {
	Name  string
	Value *Value
}

// Value is one node of a decoded or to-be-encoded document.
type Value struct {
	kind Kind

	b   bool
	i   int64
	f   float64
	big *big.Int

	// string payload, symbol text, or class/module reference name
	s string

	elems []*Value
	pairs []Pair
	dflt  *Value

	// class symbol of object/struct/userdata/user-marshal nodes,
	// module symbol of extended wrappers
	class string
	ivars []IVar
	data  []byte
	inner *Value
}

// Marshaler is implemented by types which know their own wire shape.
// The schema layer consults it before applying its reflection rules.
type Marshaler interface {
	MarshalValue() (*Value, error)
}

// Unmarshaler is the decode-side counterpart of Marshaler.
type Unmarshaler interface {
	UnmarshalValue(v *Value) error
}

// Nil returns a nil value.
func Nil() *Value {
	return &Value{kind: KindNil}
}

// Bool returns a boolean value.
func Bool(b bool) *Value {
	return &Value{kind: KindBool, b: b}
}

// Int returns an integer value.
func Int(i int64) *Value {
	return &Value{kind: KindInt, i: i}
}

// BigInt returns an arbitrary-precision integer value. The *big.Int is
// retained, not copied.
func BigInt(b *big.Int) *Value {
	return &Value{kind: KindBigInt, big: b}
}

// Float returns a float value.
func Float(f float64) *Value {
	return &Value{kind: KindFloat, f: f}
}

// Str returns a string value.
func Str(s string) *Value {
	return &Value{kind: KindString, s: s}
}

// Symbol returns a symbol value.
func Symbol(s string) *Value {
	return &Value{kind: KindSymbol, s: s}
}

// Array returns an array value holding elems.
func Array(elems ...*Value) *Value {
	return &Value{kind: KindArray, elems: elems}
}

// Hash returns a hash value holding pairs, in order, with no default.
func Hash(pairs ...Pair) *Value {
	return &Value{kind: KindHash, pairs: pairs}
}

// Object returns a composite tagged with a class symbol.
func Object(class string, ivars ...IVar) *Value {
	return &Value{kind: KindObject, class: class, ivars: ivars}
}

// Struct returns a struct composite. It behaves like an object but
// round-trips under the distinct struct tag.
func Struct(class string, members ...IVar) *Value {
	return &Value{kind: KindStruct, class: class, ivars: members}
}

// Userdata returns opaque class-tagged bytes. Decoded userdata aliases the
// input buffer; callers that outlive the buffer must copy.
func Userdata(class string, data []byte) *Value {
	return &Value{kind: KindUserdata, class: class, data: data}
}

// UserMarshal returns a class-tagged wrapper around an inner value.
func UserMarshal(class string, inner *Value) *Value {
	return &Value{kind: KindUserMarshal, class: class, inner: inner}
}

// ClassRef returns a reference to a class by name.
func ClassRef(name string) *Value {
	return &Value{kind: KindClass, s: name}
}

// ModuleRef returns a reference to a module by name.
func ModuleRef(name string) *Value {
	return &Value{kind: KindModule, s: name}
}

// Instance returns inner decorated with extra instance variables.
func Instance(inner *Value, ivars ...IVar) *Value {
	return &Value{kind: KindInstance, inner: inner, ivars: ivars}
}

// Extended returns inner marked as extended by the named module.
func Extended(module string, inner *Value) *Value {
	return &Value{kind: KindExtended, class: module, inner: inner}
}

// Kind returns the variant held. A nil *Value reads as KindNil.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNil
	}
	return v.kind
}

// IsNil reports whether this is the nil value.
func (v *Value) IsNil() bool {
	return v == nil || v.kind == KindNil
}

func (v *Value) kindErr(want Kind) error {
	return SchemaError{Reason: fmt.Sprintf("expected %s, have %s", want, v.Kind())}
}

// AsBool returns the boolean payload.
func (v *Value) AsBool() (bool, error) {
	if v.Kind() != KindBool {
		return false, v.kindErr(KindBool)
	}
	return v.b, nil
}

// AsInt returns the integer payload.
func (v *Value) AsInt() (int64, error) {
	if v.Kind() != KindInt {
		return 0, v.kindErr(KindInt)
	}
	return v.i, nil
}

// AsBigInt returns the big integer payload.
func (v *Value) AsBigInt() (*big.Int, error) {
	if v.Kind() != KindBigInt {
		return nil, v.kindErr(KindBigInt)
	}
	return v.big, nil
}

// AsFloat returns the float payload.
func (v *Value) AsFloat() (float64, error) {
	if v.Kind() != KindFloat {
		return 0, v.kindErr(KindFloat)
	}
	return v.f, nil
}

// AsString returns the string payload.
func (v *Value) AsString() (string, error) {
	if v.Kind() != KindString {
		return "", v.kindErr(KindString)
	}
	return v.s, nil
}

// AsSymbol returns the symbol text.
func (v *Value) AsSymbol() (string, error) {
	if v.Kind() != KindSymbol {
		return "", v.kindErr(KindSymbol)
	}
	return v.s, nil
}

// Elems returns the elements of an array. The slice is the array's own
// backing store; mutating it mutates the value.
func (v *Value) Elems() []*Value {
	if v.Kind() != KindArray {
		return nil
	}
	return v.elems
}

// Pairs returns the entries of a hash in insertion order.
func (v *Value) Pairs() []Pair {
	if v.Kind() != KindHash {
		return nil
	}
	return v.pairs
}

// Default returns a hash's default value, or nil when it has none.
func (v *Value) Default() *Value {
	if v.Kind() != KindHash {
		return nil
	}
	return v.dflt
}

// Class returns the class symbol of a composite, the name of a class or
// module reference, or the module symbol of an extended wrapper.
func (v *Value) Class() string {
	switch v.Kind() {
	case KindObject, KindStruct, KindUserdata, KindUserMarshal, KindExtended:
		return v.class
	case KindClass, KindModule:
		return v.s
	default:
		return ""
	}
}

// IVars returns the named slots of an object, struct or instance wrapper,
// in wire order.
func (v *Value) IVars() []IVar {
	switch v.Kind() {
	case KindObject, KindStruct, KindInstance:
		return v.ivars
	default:
		return nil
	}
}

// IVar looks up a named slot by exact wire name.
func (v *Value) IVar(name string) (*Value, bool) {
	for _, iv := range v.IVars() {
		if iv.Name == name {
			return iv.Value, true
		}
	}
	return nil, false
}

// Data returns the opaque bytes of a userdata value.
func (v *Value) Data() []byte {
	if v.Kind() != KindUserdata {
		return nil
	}
	return v.data
}

// Inner returns the wrapped value of a user-marshal, instance or extended
// node.
func (v *Value) Inner() *Value {
	switch v.Kind() {
	case KindUserMarshal, KindInstance, KindExtended:
		return v.inner
	default:
		return nil
	}
}

// Unwrap strips instance and extended decoration, returning the innermost
// undecorated value. Other kinds return themselves.
func (v *Value) Unwrap() *Value {
	for v.Kind() == KindInstance || v.Kind() == KindExtended {
		v = v.inner
	}
	return v
}

// Len returns the element, pair or slot count of a container, and 0 for
// every other kind.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.elems)
	case KindHash:
		return len(v.pairs)
	case KindObject, KindStruct, KindInstance:
		return len(v.ivars)
	case KindUserdata:
		return len(v.data)
	default:
		return 0
	}
}

func (v *Value) mustKind(op string, kinds ...Kind) {
	for _, k := range kinds {
		if v.Kind() == k {
			return
		}
	}
	panic(fmt.Sprintf("marshal48: %s called on %s value", op, v.Kind()))
}

// Append adds elements to the end of an array. Panics on other kinds.
func (v *Value) Append(elems ...*Value) {
	v.mustKind("Append", KindArray)
	v.elems = append(v.elems, elems...)
}

// SetIndex replaces an array element. Panics on other kinds or when i is
// out of range.
func (v *Value) SetIndex(i int, e *Value) {
	v.mustKind("SetIndex", KindArray)
	v.elems[i] = e
}

// AppendPair adds an entry to the end of a hash. Panics on other kinds.
func (v *Value) AppendPair(key, val *Value) {
	v.mustKind("AppendPair", KindHash)
	v.pairs = append(v.pairs, Pair{key, val})
}

// SetDefault sets a hash's default value. Panics on other kinds.
func (v *Value) SetDefault(d *Value) {
	v.mustKind("SetDefault", KindHash)
	v.dflt = d
}

// SetIVar replaces the named slot of an object, struct or instance
// wrapper, appending it when absent. Panics on other kinds.
func (v *Value) SetIVar(name string, val *Value) {
	v.mustKind("SetIVar", KindObject, KindStruct, KindInstance)
	for i := range v.ivars {
		if v.ivars[i].Name == name {
			v.ivars[i].Value = val
			return
		}
	}
	v.ivars = append(v.ivars, IVar{name, val})
}

// SetInner replaces the wrapped value of a user-marshal, instance or
// extended node. Panics on other kinds.
func (v *Value) SetInner(inner *Value) {
	v.mustKind("SetInner", KindUserMarshal, KindInstance, KindExtended)
	v.inner = inner
}

// String renders scalars in full and containers shallowly, so it stays
// safe on cyclic graphs.
func (v *Value) String() string {
	switch v.Kind() {
	case KindNil:
		return "nil"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindBigInt:
		return v.big.String()
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindSymbol:
		return ":" + v.s
	case KindArray:
		return fmt.Sprintf("array(len=%d)", len(v.elems))
	case KindHash:
		return fmt.Sprintf("hash(len=%d)", len(v.pairs))
	case KindObject:
		return fmt.Sprintf("object(%s, %d vars)", v.class, len(v.ivars))
	case KindStruct:
		return fmt.Sprintf("struct(%s, %d members)", v.class, len(v.ivars))
	case KindUserdata:
		return fmt.Sprintf("userdata(%s, %d bytes)", v.class, len(v.data))
	case KindUserMarshal:
		return fmt.Sprintf("user marshal(%s)", v.class)
	case KindClass:
		return "class " + v.s
	case KindModule:
		return "module " + v.s
	case KindInstance:
		return fmt.Sprintf("instance(%d vars)", len(v.ivars))
	case KindExtended:
		return fmt.Sprintf("extended(%s)", v.class)
	default:
		return "unknown"
	}
}

// Equal reports deep structural equality. Hash comparison ignores entry
// order. Floats compare with ==, so NaN never equals NaN. Equal does not
// terminate on cyclic graphs.
func (v *Value) Equal(o *Value) bool {
	if v == o {
		return true
	}
	if v.Kind() != o.Kind() {
		return false
	}

	switch v.Kind() {
	case KindNil:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindBigInt:
		return v.big.Cmp(o.big) == 0
	case KindFloat:
		return v.f == o.f
	case KindString, KindSymbol, KindClass, KindModule:
		return v.s == o.s
	case KindArray:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	case KindHash:
		return v.hashEqual(o)
	case KindObject, KindStruct:
		return v.class == o.class && ivarsEqual(v.ivars, o.ivars)
	case KindUserdata:
		return v.class == o.class && bytes.Equal(v.data, o.data)
	case KindUserMarshal:
		return v.class == o.class && v.inner.Equal(o.inner)
	case KindInstance:
		return v.inner.Equal(o.inner) && ivarsEqual(v.ivars, o.ivars)
	case KindExtended:
		return v.class == o.class && v.inner.Equal(o.inner)
	default:
		return false
	}
}

func (v *Value) hashEqual(o *Value) bool {
	if len(v.pairs) != len(o.pairs) {
		return false
	}
	if (v.dflt == nil) != (o.dflt == nil) {
		return false
	}
	if v.dflt != nil && !v.dflt.Equal(o.dflt) {
		return false
	}
	for _, p := range v.pairs {
		found := false
		for _, q := range o.pairs {
			if p.Key.Equal(q.Key) {
				found = p.Value.Equal(q.Value)
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func ivarsEqual(a, b []IVar) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !a[i].Value.Equal(b[i].Value) {
			return false
		}
	}
	return true
}
