// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package schema maps classed wire objects onto plain Go structs.
//
// A Registry associates a class name with a struct template. Each exported
// field carries a `marshal` tag naming its instance variable (without the
// "@" prefix) plus optional transform directives:
//
//	Field int       `marshal:"id"`                 plain value
//	Field int       `marshal:"actor_id,idshift"`   one-based id on the wire
//	Field *int      `marshal:"troop_id,optid"`     zero means absent
//	Field []T       `marshal:"members,nilpad"`     slot 0 holds a padding nil
//	Field *string   `marshal:"name,opttext"`       empty string means absent
//	Field rgss-like `marshal:"data,grid"`          dense grid userdata blob
//	Field any       `marshal:"flags,default"`      zero value when missing
//	Field T         `marshal:"-"`                  not serialized
//
// Registration happens during package initialization and panics on misuse;
// afterwards a Registry is safe for concurrent use.
package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/rgsskit/marshal48/internal/codec"
	"github.com/rgsskit/marshal48/rbval"
)

const tagKey = "marshal"

// Registry holds the known class schemas.
type Registry struct {
	mu      sync.RWMutex
	byClass map[string]*classSchema
	byType  map[reflect.Type]*classSchema
}

func NewRegistry() *Registry {
	return &Registry{
		byClass: make(map[string]*classSchema),
		byType:  make(map[reflect.Type]*classSchema),
	}
}

// Option adjusts a class registration.
type Option func(*classSchema)

// WithLaxFields makes every field of the class tolerate absence on the
// wire, taking its zero value instead of failing. Data written by older
// releases of a game engine commonly lacks fields added later.
func WithLaxFields() Option {
	return func(cs *classSchema) {
		cs.lax = true
	}
}

type classSchema struct {
	class  string
	typ    reflect.Type
	fields []fieldSchema
	lax    bool
}

type fieldSchema struct {
	index    int
	name     string
	wireName string
	xf       transform
	lax      bool
}

// Register associates a wire class name with a struct template. The
// template may be a struct value or a pointer to one. Register panics when
// the template is not a struct, when the class or type is already
// registered, when an exported field lacks a marshal tag, or when a
// transform directive does not fit the field's type. These are all
// programming errors, not data errors.
func (r *Registry) Register(class string, template interface{}, opts ...Option) {
	if class == "" {
		panic("schema: class name must not be empty")
	}

	t := reflect.TypeOf(template)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("schema: template for '%s' must be a struct, have %v", class, t))
	}

	cs := &classSchema{class: class, typ: t}
	for _, o := range opts {
		o(cs)
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			// Unexported fields never serialize
			continue
		}

		tag, ok := f.Tag.Lookup(tagKey)
		if !ok {
			panic(fmt.Sprintf("schema: field %s of %s has no %s tag (use \"-\" to exclude it)",
				f.Name, t, tagKey))
		}
		if tag == "-" {
			continue
		}

		cs.fields = append(cs.fields, buildField(cs, i, f, tag))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byClass[class]; dup {
		panic(fmt.Sprintf("schema: class '%s' registered twice", class))
	}
	if prev, dup := r.byType[t]; dup {
		panic(fmt.Sprintf("schema: type %s already registered as '%s'", t, prev.class))
	}
	r.byClass[class] = cs
	r.byType[t] = cs
}

func buildField(cs *classSchema, index int, f reflect.StructField, tag string) fieldSchema {
	parts := strings.Split(tag, ",")
	if parts[0] == "" {
		panic(fmt.Sprintf("schema: field %s of %s has an empty name in its %s tag",
			f.Name, cs.typ, tagKey))
	}

	fs := fieldSchema{
		index:    index,
		name:     parts[0],
		wireName: "@" + parts[0],
		xf:       identityTransform{},
		lax:      cs.lax,
	}

	explicit := false
	setXf := func(xf transform) {
		if explicit {
			panic(fmt.Sprintf("schema: field %s of %s names more than one transform",
				f.Name, cs.typ))
		}
		fs.xf = xf
		explicit = true
	}

	for _, opt := range parts[1:] {
		switch opt {
		case "idshift":
			setXf(idShiftTransform{})
		case "optid":
			setXf(optIDTransform{})
		case "nilpad":
			setXf(nilPadTransform{})
		case "opttext":
			setXf(optTextTransform{})
		case "grid":
			setXf(gridTransform{})
		case "default":
			fs.lax = true
		default:
			panic(fmt.Sprintf("schema: field %s of %s has unknown %s option '%s'",
				f.Name, cs.typ, tagKey, opt))
		}
	}

	if reason := fs.xf.validate(f.Type); reason != "" {
		panic(fmt.Sprintf("schema: field %s of %s: %s", f.Name, cs.typ, reason))
	}
	return fs
}

func (r *Registry) schemaForClass(class string) *classSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byClass[class]
}

func (r *Registry) schemaForType(t reflect.Type) *classSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byType[t]
}

// Unmarshal parses a document and fills out, which must be a non-nil
// pointer. Pointing it at a registered struct gives typed access; pointing
// it at a *rbval.Value captures the raw tree.
func (r *Registry) Unmarshal(data []byte, out interface{}) error {
	v, err := codec.Decode(data)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return rbval.SchemaError{Reason: "unmarshal target must be a non-nil pointer"}
	}
	return r.decodeInto(v, rv.Elem())
}

// Marshal serializes in, which may be a registered struct (or pointer to
// one), a *rbval.Value, or any type the field driver handles.
func (r *Registry) Marshal(in interface{}) ([]byte, error) {
	v, err := r.Produce(in)
	if err != nil {
		return nil, err
	}
	return codec.Encode(v)
}

// Materialize converts a decoded value into its registered Go form. Objects
// of unregistered classes, and values that are not objects at all, come
// back unchanged as the *rbval.Value itself; callers that need uniform
// handling of partially registered data rely on this.
func (r *Registry) Materialize(v *rbval.Value) (interface{}, error) {
	u := v.Unwrap()
	if u.Kind() == rbval.KindObject {
		if cs := r.schemaForClass(u.Class()); cs != nil {
			p := reflect.New(cs.typ)
			if err := r.materializeInto(v, p.Elem()); err != nil {
				return nil, err
			}
			return p.Interface(), nil
		}
	}
	return v, nil
}

// Produce converts a Go value into its wire value tree without serializing
// it.
func (r *Registry) Produce(in interface{}) (*rbval.Value, error) {
	if v, ok := in.(*rbval.Value); ok {
		return v, nil
	}
	if in == nil {
		return rbval.Nil(), nil
	}
	return r.encodeFrom(reflect.ValueOf(in))
}
