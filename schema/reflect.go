// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package schema

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"

	"github.com/rgsskit/marshal48/rbval"
)

var (
	valueType       = reflect.TypeOf((*rbval.Value)(nil))
	marshalerType   = reflect.TypeOf((*rbval.Marshaler)(nil)).Elem()
	unmarshalerType = reflect.TypeOf((*rbval.Unmarshaler)(nil)).Elem()
)

// decodeInto fills the settable dst from the wire value v. It is the
// workhorse behind the identity transform and Unmarshal.
func (r *Registry) decodeInto(v *rbval.Value, dst reflect.Value) error {
	t := dst.Type()

	// Raw capture comes first: these targets take the tree as is.
	if t == valueType {
		dst.Set(reflect.ValueOf(v))
		return nil
	}
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		dst.Set(reflect.ValueOf(v))
		return nil
	}

	// Types with their own wire form handle the value themselves.
	if t.Kind() != reflect.Ptr && reflect.PtrTo(t).Implements(unmarshalerType) {
		return dst.Addr().Interface().(rbval.Unmarshaler).UnmarshalValue(v)
	}

	u := v.Unwrap()

	switch t.Kind() {
	case reflect.Bool:
		b, err := u.AsBool()
		if err != nil {
			return err
		}
		dst.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := u.AsInt()
		if err != nil {
			return err
		}
		if dst.OverflowInt(n) {
			return rbval.SchemaError{Reason: fmt.Sprintf("%d overflows %s", n, t)}
		}
		dst.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := u.AsInt()
		if err != nil {
			return err
		}
		if n < 0 || dst.OverflowUint(uint64(n)) {
			return rbval.SchemaError{Reason: fmt.Sprintf("%d overflows %s", n, t)}
		}
		dst.SetUint(uint64(n))
		return nil

	case reflect.Float32, reflect.Float64:
		// Engine data stores whole floats as plain integers, so both
		// arrive here.
		var f float64
		switch u.Kind() {
		case rbval.KindInt:
			n, _ := u.AsInt()
			f = float64(n)
		default:
			var err error
			f, err = u.AsFloat()
			if err != nil {
				return err
			}
		}
		if dst.OverflowFloat(f) {
			return rbval.SchemaError{Reason: fmt.Sprintf("%g overflows %s", f, t)}
		}
		dst.SetFloat(f)
		return nil

	case reflect.String:
		s, err := stringText(u)
		if err != nil {
			return err
		}
		dst.SetString(s)
		return nil

	case reflect.Slice:
		if u.IsNil() {
			dst.Set(reflect.Zero(t))
			return nil
		}
		if t.Elem().Kind() == reflect.Uint8 {
			s, err := u.AsString()
			if err != nil {
				return err
			}
			dst.SetBytes([]byte(s))
			return nil
		}
		if u.Kind() != rbval.KindArray {
			return rbval.SchemaError{Reason: "expected array, have " + u.Kind().String()}
		}
		elems := u.Elems()
		out := reflect.MakeSlice(t, len(elems), len(elems))
		for i, e := range elems {
			if err := r.decodeInto(e, out.Index(i)); err != nil {
				return rbval.WithFieldPath(err, fmt.Sprintf("[%d]", i))
			}
		}
		dst.Set(out)
		return nil

	case reflect.Map:
		if u.IsNil() {
			dst.Set(reflect.Zero(t))
			return nil
		}
		if u.Kind() != rbval.KindHash {
			return rbval.SchemaError{Reason: "expected hash, have " + u.Kind().String()}
		}
		out := reflect.MakeMapWithSize(t, u.Len())
		for _, p := range u.Pairs() {
			key := reflect.New(t.Key()).Elem()
			if err := r.decodeInto(p.Key, key); err != nil {
				return err
			}
			val := reflect.New(t.Elem()).Elem()
			if err := r.decodeInto(p.Value, val); err != nil {
				return rbval.WithFieldPath(err, fmt.Sprintf("[%v]", key.Interface()))
			}
			out.SetMapIndex(key, val)
		}
		dst.Set(out)
		return nil

	case reflect.Ptr:
		if v.IsNil() {
			dst.Set(reflect.Zero(t))
			return nil
		}
		p := reflect.New(t.Elem())
		if err := r.decodeInto(v, p.Elem()); err != nil {
			return err
		}
		dst.Set(p)
		return nil

	case reflect.Struct:
		return r.materializeInto(v, dst)

	default:
		return rbval.SchemaError{Reason: fmt.Sprintf("unsupported target type %s", t)}
	}
}

// stringText accepts both strings and symbols; engine data uses them
// interchangeably for names.
func stringText(u *rbval.Value) (string, error) {
	if u.Kind() == rbval.KindSymbol {
		return u.AsSymbol()
	}
	return u.AsString()
}

// encodeFrom converts a Go value into its wire value tree.
func (r *Registry) encodeFrom(src reflect.Value) (*rbval.Value, error) {
	t := src.Type()

	if t == valueType {
		if src.IsNil() {
			return rbval.Nil(), nil
		}
		return src.Interface().(*rbval.Value), nil
	}
	if t.Kind() == reflect.Interface {
		if src.IsNil() {
			return rbval.Nil(), nil
		}
		return r.encodeFrom(src.Elem())
	}

	if t.Kind() == reflect.Ptr {
		if src.IsNil() {
			return rbval.Nil(), nil
		}
		if t.Implements(marshalerType) {
			return src.Interface().(rbval.Marshaler).MarshalValue()
		}
		return r.encodeFrom(src.Elem())
	}
	if m, ok := asMarshaler(src); ok {
		return m.MarshalValue()
	}

	switch t.Kind() {
	case reflect.Bool:
		return rbval.Bool(src.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rbval.Int(src.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := src.Uint()
		if n > math.MaxInt64 {
			return rbval.BigInt(new(big.Int).SetUint64(n)), nil
		}
		return rbval.Int(int64(n)), nil

	case reflect.Float32, reflect.Float64:
		return rbval.Float(src.Float()), nil

	case reflect.String:
		return rbval.Str(src.String()), nil

	case reflect.Slice:
		if src.IsNil() {
			return rbval.Nil(), nil
		}
		if t.Elem().Kind() == reflect.Uint8 {
			return rbval.Str(string(src.Bytes())), nil
		}
		arr := rbval.Array()
		for i := 0; i < src.Len(); i++ {
			e, err := r.encodeFrom(src.Index(i))
			if err != nil {
				return nil, rbval.WithFieldPath(err, fmt.Sprintf("[%d]", i))
			}
			arr.Append(e)
		}
		return arr, nil

	case reflect.Map:
		if src.IsNil() {
			return rbval.Nil(), nil
		}
		return r.encodeMap(src)

	case reflect.Struct:
		return r.produceFrom(src)

	default:
		return nil, rbval.SchemaError{Reason: fmt.Sprintf("unsupported source type %s", t)}
	}
}

// encodeMap emits hash entries in sorted key order so that serialization is
// deterministic.
func (r *Registry) encodeMap(src reflect.Value) (*rbval.Value, error) {
	keys := src.MapKeys()
	switch src.Type().Key().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sort.Slice(keys, func(i, j int) bool { return keys[i].Int() < keys[j].Int() })
	case reflect.String:
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	default:
		return nil, rbval.SchemaError{Reason: fmt.Sprintf("unsupported map key type %s", src.Type().Key())}
	}

	h := rbval.Hash()
	for _, k := range keys {
		kv, err := r.encodeFrom(k)
		if err != nil {
			return nil, err
		}
		vv, err := r.encodeFrom(src.MapIndex(k))
		if err != nil {
			return nil, rbval.WithFieldPath(err, fmt.Sprintf("[%v]", k.Interface()))
		}
		h.AppendPair(kv, vv)
	}
	return h, nil
}

// asMarshaler reports whether src serializes itself, copying it into a
// fresh pointer when the method needs one.
func asMarshaler(src reflect.Value) (rbval.Marshaler, bool) {
	t := src.Type()
	if t.Implements(marshalerType) {
		return src.Interface().(rbval.Marshaler), true
	}
	if reflect.PtrTo(t).Implements(marshalerType) {
		p := reflect.New(t)
		p.Elem().Set(src)
		return p.Interface().(rbval.Marshaler), true
	}
	return nil, false
}

// materializeInto fills a registered struct from a wire object.
func (r *Registry) materializeInto(v *rbval.Value, dst reflect.Value) error {
	cs := r.schemaForType(dst.Type())
	if cs == nil {
		return rbval.SchemaError{Class: dst.Type().String(), Reason: "type not registered"}
	}

	u := v.Unwrap()
	if u.Kind() != rbval.KindObject {
		return rbval.SchemaError{Class: cs.class, Reason: "expected object, have " + u.Kind().String()}
	}
	if u.Class() != cs.class {
		return rbval.SchemaError{Class: cs.class, Reason: fmt.Sprintf("wire object has class %s", u.Class())}
	}

	for _, f := range cs.fields {
		fv, ok := u.IVar(f.wireName)
		if !ok {
			if f.lax {
				continue
			}
			return rbval.SchemaError{Class: cs.class, Field: f.name, Reason: "missing on wire"}
		}
		if err := f.xf.decode(r, fv, dst.Field(f.index)); err != nil {
			return rbval.WithFieldPath(err, cs.class, f.name)
		}
	}
	return nil
}

// produceFrom converts a registered struct into a wire object, emitting
// fields in registration order.
func (r *Registry) produceFrom(src reflect.Value) (*rbval.Value, error) {
	cs := r.schemaForType(src.Type())
	if cs == nil {
		return nil, rbval.SchemaError{Class: src.Type().String(), Reason: "type not registered"}
	}

	obj := rbval.Object(cs.class)
	for _, f := range cs.fields {
		fv, err := f.xf.encode(r, src.Field(f.index))
		if err != nil {
			return nil, rbval.WithFieldPath(err, cs.class, f.name)
		}
		obj.SetIVar(f.wireName, fv)
	}
	return obj, nil
}
