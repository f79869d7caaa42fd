// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package codec

import (
	"math"
	"math/big"
	"strconv"

	"github.com/rgsskit/marshal48/internal/wire"
	"github.com/rgsskit/marshal48/rbval"
)

type encoder struct {
	w       *wire.Writer
	symbols map[string]int64
	objects map[*rbval.Value]int64
	next    int64
}

// Encode serializes one complete document: version header followed by the
// value graph rooted at v. Shared subtrees serialize once and link after.
func Encode(v *rbval.Value) ([]byte, error) {
	e := &encoder{
		w:       &wire.Writer{},
		symbols: make(map[string]int64),
		objects: make(map[*rbval.Value]int64),
	}
	e.w.WriteByte(wire.VersionMajor)
	e.w.WriteByte(wire.VersionMinor)

	if err := e.value(v); err != nil {
		return nil, err
	}
	return e.w.Bytes(), nil
}

// register claims the next object table index for v. Every table-eligible
// value claims its index the moment emission starts, matching the order the
// decoder rebuilds the table in.
func (e *encoder) register(v *rbval.Value) {
	e.objects[v] = e.next
	e.next++
}

func (e *encoder) value(v *rbval.Value) error {
	if v == nil {
		e.w.WriteByte(wire.TagNil)
		return nil
	}

	// A value already in the table serializes as a link to its first
	// appearance. Decorated values link through their payload: the slot
	// belongs to the inner value, not the wrapper.
	if idx, ok := e.objects[v]; ok {
		e.w.WriteByte(wire.TagLink)
		e.w.WriteLong(idx)
		return nil
	}
	switch v.Kind() {
	case rbval.KindInstance, rbval.KindExtended:
		if idx, ok := e.objects[v.Unwrap()]; ok {
			e.w.WriteByte(wire.TagLink)
			e.w.WriteLong(idx)
			return nil
		}
	}

	switch v.Kind() {
	case rbval.KindNil:
		e.w.WriteByte(wire.TagNil)
		return nil

	case rbval.KindBool:
		b, _ := v.AsBool()
		if b {
			e.w.WriteByte(wire.TagTrue)
		} else {
			e.w.WriteByte(wire.TagFalse)
		}
		return nil

	case rbval.KindInt:
		n, _ := v.AsInt()
		if n < wire.FixnumMin || n > wire.FixnumMax {
			return e.bignum(v, big.NewInt(n))
		}
		e.w.WriteByte(wire.TagFixnum)
		e.w.WriteLong(n)
		return nil

	case rbval.KindBigInt:
		n, _ := v.AsBigInt()
		return e.bignum(v, n)

	case rbval.KindFloat:
		return e.float(v)

	case rbval.KindString:
		s, _ := v.AsString()
		e.register(v)
		e.w.WriteByte(wire.TagString)
		e.w.WriteString(s)
		return nil

	case rbval.KindSymbol:
		s, _ := v.AsSymbol()
		e.symbol(s)
		return nil

	case rbval.KindArray:
		return e.array(v)

	case rbval.KindHash:
		return e.hash(v)

	case rbval.KindObject:
		return e.object(v, wire.TagObject)

	case rbval.KindStruct:
		return e.object(v, wire.TagStruct)

	case rbval.KindUserdata:
		e.register(v)
		e.w.WriteByte(wire.TagUserdata)
		e.symbol(v.Class())
		e.w.WriteBytes(v.Data())
		return nil

	case rbval.KindUserMarshal:
		e.register(v)
		e.w.WriteByte(wire.TagUserMarshal)
		e.symbol(v.Class())
		return e.value(v.Inner())

	case rbval.KindClass:
		e.register(v)
		e.w.WriteByte(wire.TagClass)
		e.w.WriteString(v.Class())
		return nil

	case rbval.KindModule:
		e.register(v)
		e.w.WriteByte(wire.TagModule)
		e.w.WriteString(v.Class())
		return nil

	case rbval.KindInstance:
		e.w.WriteByte(wire.TagInstance)
		if err := e.value(v.Inner()); err != nil {
			return err
		}
		return e.ivars(v)

	case rbval.KindExtended:
		e.w.WriteByte(wire.TagExtended)
		e.symbol(v.Class())
		return e.value(v.Inner())

	default:
		return rbval.SchemaError{Reason: "unencodable kind " + v.Kind().String()}
	}
}

func (e *encoder) symbol(s string) {
	if idx, ok := e.symbols[s]; ok {
		e.w.WriteByte(wire.TagSymlink)
		e.w.WriteLong(idx)
		return
	}
	e.symbols[s] = int64(len(e.symbols))
	e.w.WriteByte(wire.TagSymbol)
	e.w.WriteString(s)
}

func (e *encoder) float(v *rbval.Value) error {
	f, _ := v.AsFloat()
	e.register(v)
	e.w.WriteByte(wire.TagFloat)

	var text string
	switch {
	case math.IsInf(f, 1):
		text = "inf"
	case math.IsInf(f, -1):
		text = "-inf"
	case math.IsNaN(f):
		text = "nan"
	default:
		// Shortest text that parses back to the same float64.
		text = strconv.FormatFloat(f, 'g', -1, 64)
	}
	e.w.WriteString(text)
	return nil
}

func (e *encoder) bignum(v *rbval.Value, n *big.Int) error {
	e.register(v)
	e.w.WriteByte(wire.TagBignum)
	if n.Sign() < 0 {
		e.w.WriteByte(wire.BignumNegative)
	} else {
		e.w.WriteByte(wire.BignumPositive)
	}

	// Magnitude goes out little-endian, padded to a whole number of
	// 16-bit words.
	mag := n.Bytes()
	words := (len(mag) + 1) / 2
	payload := make([]byte, words*2)
	for i, b := range mag {
		payload[len(mag)-1-i] = b
	}
	e.w.WriteLong(int64(words))
	e.w.Write(payload)
	return nil
}

func (e *encoder) array(v *rbval.Value) error {
	e.register(v)
	e.w.WriteByte(wire.TagArray)

	elems := v.Elems()
	e.w.WriteLong(int64(len(elems)))
	for _, el := range elems {
		if err := e.value(el); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) hash(v *rbval.Value) error {
	e.register(v)
	if v.Default() != nil {
		e.w.WriteByte(wire.TagHashDefault)
	} else {
		e.w.WriteByte(wire.TagHash)
	}

	pairs := v.Pairs()
	e.w.WriteLong(int64(len(pairs)))
	for _, p := range pairs {
		if err := e.value(p.Key); err != nil {
			return err
		}
		if err := e.value(p.Value); err != nil {
			return err
		}
	}

	if dflt := v.Default(); dflt != nil {
		return e.value(dflt)
	}
	return nil
}

func (e *encoder) object(v *rbval.Value, tag byte) error {
	e.register(v)
	e.w.WriteByte(tag)
	e.symbol(v.Class())
	return e.ivars(v)
}

func (e *encoder) ivars(v *rbval.Value) error {
	ivars := v.IVars()
	e.w.WriteLong(int64(len(ivars)))
	for _, iv := range ivars {
		e.symbol(iv.Name)
		if err := e.value(iv.Value); err != nil {
			return err
		}
	}
	return nil
}
