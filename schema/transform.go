// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package schema

import (
	"fmt"
	"reflect"

	"github.com/rgsskit/marshal48/rbval"
)

// transform converts one field between its wire form and its Go form.
// validate runs at registration time and returns a reason string when the
// field's type cannot carry the transform; decode and encode run per value.
type transform interface {
	validate(t reflect.Type) string
	decode(r *Registry, v *rbval.Value, dst reflect.Value) error
	encode(r *Registry, src reflect.Value) (*rbval.Value, error)
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

// identityTransform defers entirely to the reflection driver.
type identityTransform struct{}

func (identityTransform) validate(reflect.Type) string {
	return ""
}

func (identityTransform) decode(r *Registry, v *rbval.Value, dst reflect.Value) error {
	return r.decodeInto(v, dst)
}

func (identityTransform) encode(r *Registry, src reflect.Value) (*rbval.Value, error) {
	return r.encodeFrom(src)
}

// idShiftTransform converts between one-based wire ids and zero-based Go
// ids, elementwise when the field is a slice.
type idShiftTransform struct{}

func (idShiftTransform) validate(t reflect.Type) string {
	if isIntKind(t.Kind()) {
		return ""
	}
	if t.Kind() == reflect.Slice && isIntKind(t.Elem().Kind()) {
		return ""
	}
	return fmt.Sprintf("idshift needs an integer or integer slice field, have %s", t)
}

func shiftDown(v *rbval.Value) (int64, error) {
	n, err := v.Unwrap().AsInt()
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, rbval.SchemaError{Reason: fmt.Sprintf("one-based id %d has no zero-based form", n)}
	}
	return n - 1, nil
}

func (idShiftTransform) decode(r *Registry, v *rbval.Value, dst reflect.Value) error {
	if dst.Kind() == reflect.Slice {
		u := v.Unwrap()
		if u.Kind() != rbval.KindArray {
			return rbval.SchemaError{Reason: "expected array of ids, have " + u.Kind().String()}
		}
		elems := u.Elems()
		out := reflect.MakeSlice(dst.Type(), len(elems), len(elems))
		for i, e := range elems {
			n, err := shiftDown(e)
			if err != nil {
				return rbval.WithFieldPath(err, fmt.Sprintf("[%d]", i))
			}
			out.Index(i).SetInt(n)
		}
		dst.Set(out)
		return nil
	}

	n, err := shiftDown(v)
	if err != nil {
		return err
	}
	if dst.OverflowInt(n) {
		return rbval.SchemaError{Reason: fmt.Sprintf("%d overflows %s", n, dst.Type())}
	}
	dst.SetInt(n)
	return nil
}

func (idShiftTransform) encode(_ *Registry, src reflect.Value) (*rbval.Value, error) {
	if src.Kind() == reflect.Slice {
		arr := rbval.Array()
		for i := 0; i < src.Len(); i++ {
			arr.Append(rbval.Int(src.Index(i).Int() + 1))
		}
		return arr, nil
	}
	return rbval.Int(src.Int() + 1), nil
}

// optIDTransform maps wire id 0 to a nil pointer and id n to a pointer at
// n-1.
type optIDTransform struct{}

func (optIDTransform) validate(t reflect.Type) string {
	if t.Kind() == reflect.Ptr && isIntKind(t.Elem().Kind()) {
		return ""
	}
	return fmt.Sprintf("optid needs a pointer-to-integer field, have %s", t)
}

func (optIDTransform) decode(_ *Registry, v *rbval.Value, dst reflect.Value) error {
	n, err := v.Unwrap().AsInt()
	if err != nil {
		return err
	}
	switch {
	case n == 0:
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	case n < 0:
		return rbval.SchemaError{Reason: fmt.Sprintf("one-based id %d has no zero-based form", n)}
	default:
		p := reflect.New(dst.Type().Elem())
		p.Elem().SetInt(n - 1)
		dst.Set(p)
		return nil
	}
}

func (optIDTransform) encode(_ *Registry, src reflect.Value) (*rbval.Value, error) {
	if src.IsNil() {
		return rbval.Int(0), nil
	}
	return rbval.Int(src.Elem().Int() + 1), nil
}

// nilPadTransform handles one-based arrays whose slot 0 holds a padding
// nil.
type nilPadTransform struct{}

func (nilPadTransform) validate(t reflect.Type) string {
	if t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8 {
		return ""
	}
	return fmt.Sprintf("nilpad needs a slice field, have %s", t)
}

func (nilPadTransform) decode(r *Registry, v *rbval.Value, dst reflect.Value) error {
	u := v.Unwrap()
	if u.Kind() != rbval.KindArray {
		return rbval.SchemaError{Reason: "expected array, have " + u.Kind().String()}
	}

	elems := u.Elems()
	if len(elems) == 0 {
		dst.Set(reflect.MakeSlice(dst.Type(), 0, 0))
		return nil
	}
	if !elems[0].IsNil() {
		return rbval.SchemaError{Reason: "slot 0 of a one-based array must hold nil"}
	}

	rest := elems[1:]
	out := reflect.MakeSlice(dst.Type(), len(rest), len(rest))
	for i, e := range rest {
		if err := r.decodeInto(e, out.Index(i)); err != nil {
			return rbval.WithFieldPath(err, fmt.Sprintf("[%d]", i+1))
		}
	}
	dst.Set(out)
	return nil
}

func (nilPadTransform) encode(r *Registry, src reflect.Value) (*rbval.Value, error) {
	arr := rbval.Array(rbval.Nil())
	for i := 0; i < src.Len(); i++ {
		e, err := r.encodeFrom(src.Index(i))
		if err != nil {
			return nil, rbval.WithFieldPath(err, fmt.Sprintf("[%d]", i+1))
		}
		arr.Append(e)
	}
	return arr, nil
}

// optTextTransform maps the empty wire string to a nil pointer.
type optTextTransform struct{}

func (optTextTransform) validate(t reflect.Type) string {
	if t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.String {
		return ""
	}
	return fmt.Sprintf("opttext needs a pointer-to-string field, have %s", t)
}

func (optTextTransform) decode(_ *Registry, v *rbval.Value, dst reflect.Value) error {
	s, err := stringText(v.Unwrap())
	if err != nil {
		return err
	}
	if s == "" {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	p := reflect.New(dst.Type().Elem())
	p.Elem().SetString(s)
	dst.Set(p)
	return nil
}

func (optTextTransform) encode(_ *Registry, src reflect.Value) (*rbval.Value, error) {
	if src.IsNil() {
		return rbval.Str(""), nil
	}
	return rbval.Str(src.Elem().String()), nil
}

// gridTransform delegates to the field's own marshaling and pins the wire
// form to a userdata blob.
type gridTransform struct{}

func (gridTransform) validate(t reflect.Type) string {
	pt := t
	if pt.Kind() != reflect.Ptr {
		pt = reflect.PtrTo(t)
	}
	if pt.Implements(marshalerType) && pt.Implements(unmarshalerType) {
		return ""
	}
	return fmt.Sprintf("grid needs a field implementing rbval.Marshaler and rbval.Unmarshaler, have %s", t)
}

func (gridTransform) decode(_ *Registry, v *rbval.Value, dst reflect.Value) error {
	if k := v.Unwrap().Kind(); k != rbval.KindUserdata {
		return rbval.SchemaError{Reason: "grid needs userdata, have " + k.String()}
	}

	if dst.Kind() == reflect.Ptr {
		p := reflect.New(dst.Type().Elem())
		if err := p.Interface().(rbval.Unmarshaler).UnmarshalValue(v); err != nil {
			return err
		}
		dst.Set(p)
		return nil
	}
	return dst.Addr().Interface().(rbval.Unmarshaler).UnmarshalValue(v)
}

func (gridTransform) encode(_ *Registry, src reflect.Value) (*rbval.Value, error) {
	if src.Kind() == reflect.Ptr && src.IsNil() {
		return nil, rbval.SchemaError{Reason: "grid field must not be nil"}
	}
	m, _ := asMarshaler(src)
	out, err := m.MarshalValue()
	if err != nil {
		return nil, err
	}
	if k := out.Unwrap().Kind(); k != rbval.KindUserdata {
		return nil, rbval.SchemaError{Reason: "grid marshaler must produce userdata, produced " + k.String()}
	}
	return out, nil
}
