// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package codec implements the document engine: the recursive-descent
// decoder and the mirroring encoder, each owning a symbol table and an
// object table for the duration of one call.
package codec

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/rgsskit/marshal48/internal/wire"
	"github.com/rgsskit/marshal48/rbval"
)

// maxDepth bounds decode recursion. Each nesting level costs at least two
// input bytes, so real documents sit orders of magnitude below this; only
// corrupt or hostile input can reach it.
const maxDepth = 100000

type decoder struct {
	r       *wire.Reader
	symbols []string
	objects []*rbval.Value
	depth   int
}

// Decode parses one complete document: version header, a single value,
// and nothing after it.
func Decode(buf []byte) (*rbval.Value, error) {
	r := wire.NewReader(buf)

	hdr, err := r.ReadExact(2)
	if err != nil {
		return nil, err
	}
	if hdr[0] != wire.VersionMajor || hdr[1] != wire.VersionMinor {
		return nil, rbval.VersionError{Major: hdr[0], Minor: hdr[1]}
	}

	d := &decoder{r: r}
	v, err := d.value()
	if err != nil {
		return nil, err
	}
	if n := r.Remaining(); n != 0 {
		return nil, rbval.TrailingError{Remaining: n}
	}
	return v, nil
}

// remember appends v to the object table and returns it. Composite kinds
// call this before decoding their contents, so links inside the contents
// can resolve to the partially built value; leaf kinds call it after.
func (d *decoder) remember(v *rbval.Value) *rbval.Value {
	d.objects = append(d.objects, v)
	return v
}

func (d *decoder) value() (*rbval.Value, error) {
	d.depth++
	if d.depth > maxDepth {
		return nil, rbval.DepthError{Depth: d.depth}
	}
	v, err := d.taggedValue()
	d.depth--
	return v, err
}

func (d *decoder) taggedValue() (*rbval.Value, error) {
	at := d.r.Position()
	tag, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}

	switch tag {
	case wire.TagNil:
		return rbval.Nil(), nil
	case wire.TagTrue:
		return rbval.Bool(true), nil
	case wire.TagFalse:
		return rbval.Bool(false), nil
	case wire.TagFixnum:
		n, err := d.r.ReadLong()
		if err != nil {
			return nil, err
		}
		return rbval.Int(n), nil
	case wire.TagFloat:
		return d.float()
	case wire.TagBignum:
		return d.bignum()
	case wire.TagString:
		return d.str()
	case wire.TagSymbol:
		return d.symbol()
	case wire.TagSymlink:
		return d.symlink()
	case wire.TagArray:
		return d.array()
	case wire.TagHash:
		return d.hash(false)
	case wire.TagHashDefault:
		return d.hash(true)
	case wire.TagObject:
		return d.object()
	case wire.TagLink:
		return d.link()
	case wire.TagUserdata:
		return d.userdata()
	case wire.TagUserMarshal:
		return d.userMarshal()
	case wire.TagStruct:
		return d.structValue()
	case wire.TagClass:
		return d.classRef(rbval.ClassRef)
	case wire.TagModule:
		return d.classRef(rbval.ModuleRef)
	case wire.TagInstance:
		return d.instance()
	case wire.TagExtended:
		return d.extended()
	default:
		return nil, rbval.TagError{Tag: tag, Offset: at}
	}
}

// symbolText reads a symbol or symbol link and returns its text. Class
// names and instance variable names arrive this way.
func (d *decoder) symbolText() (string, error) {
	at := d.r.Position()
	tag, err := d.r.ReadByte()
	if err != nil {
		return "", err
	}

	switch tag {
	case wire.TagSymbol:
		b, err := d.r.ReadBytes()
		if err != nil {
			return "", err
		}
		s := string(b)
		d.symbols = append(d.symbols, s)
		return s, nil

	case wire.TagSymlink:
		idx, err := d.r.ReadLong()
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= int64(len(d.symbols)) {
			return "", rbval.ReferenceError{Table: "symbol", Index: idx, Len: len(d.symbols)}
		}
		return d.symbols[idx], nil

	default:
		return "", rbval.TagError{Tag: tag, Offset: at}
	}
}

func (d *decoder) symbol() (*rbval.Value, error) {
	b, err := d.r.ReadBytes()
	if err != nil {
		return nil, err
	}
	s := string(b)
	d.symbols = append(d.symbols, s)
	return rbval.Symbol(s), nil
}

func (d *decoder) symlink() (*rbval.Value, error) {
	idx, err := d.r.ReadLong()
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= int64(len(d.symbols)) {
		return nil, rbval.ReferenceError{Table: "symbol", Index: idx, Len: len(d.symbols)}
	}
	return rbval.Symbol(d.symbols[idx]), nil
}

func (d *decoder) link() (*rbval.Value, error) {
	idx, err := d.r.ReadLong()
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= int64(len(d.objects)) {
		return nil, rbval.ReferenceError{Table: "object", Index: idx, Len: len(d.objects)}
	}
	// The table holds the live value, so a link shares identity with
	// every other path to it.
	return d.objects[idx], nil
}

func (d *decoder) str() (*rbval.Value, error) {
	b, err := d.r.ReadBytes()
	if err != nil {
		return nil, err
	}
	return d.remember(rbval.Str(string(b))), nil
}

func (d *decoder) float() (*rbval.Value, error) {
	at := d.r.Position()
	b, err := d.r.ReadBytes()
	if err != nil {
		return nil, err
	}

	text := string(b)
	// Historic producers padded the text with a NUL and raw mantissa
	// bytes; everything from the NUL on carries no extra precision worth
	// honoring.
	if i := strings.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}

	var f float64
	switch text {
	case "inf":
		f = math.Inf(1)
	case "-inf":
		f = math.Inf(-1)
	case "nan":
		f = math.NaN()
	default:
		f, err = strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, rbval.TagError{Tag: wire.TagFloat, Offset: at}
		}
	}
	return d.remember(rbval.Float(f)), nil
}

func (d *decoder) bignum() (*rbval.Value, error) {
	at := d.r.Position()
	sign, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if sign != wire.BignumPositive && sign != wire.BignumNegative {
		return nil, rbval.TagError{Tag: sign, Offset: at}
	}

	words, err := d.r.ReadCount()
	if err != nil {
		return nil, err
	}
	payload, err := d.r.ReadExact(words * 2)
	if err != nil {
		return nil, err
	}

	// The magnitude is little-endian; big.Int wants big-endian.
	mag := make([]byte, len(payload))
	for i, b := range payload {
		mag[len(payload)-1-i] = b
	}
	n := new(big.Int).SetBytes(mag)
	if sign == wire.BignumNegative {
		n.Neg(n)
	}

	// Values that fit a plain integer normalize to one, the way the
	// original runtime folds small big integers back into immediates.
	if n.IsInt64() {
		return d.remember(rbval.Int(n.Int64())), nil
	}
	return d.remember(rbval.BigInt(n)), nil
}

func (d *decoder) array() (*rbval.Value, error) {
	n, err := d.r.ReadCount()
	if err != nil {
		return nil, err
	}

	v := d.remember(rbval.Array())
	for i := 0; i < n; i++ {
		e, err := d.value()
		if err != nil {
			return nil, err
		}
		v.Append(e)
	}
	return v, nil
}

func (d *decoder) hash(hasDefault bool) (*rbval.Value, error) {
	n, err := d.r.ReadCount()
	if err != nil {
		return nil, err
	}

	v := d.remember(rbval.Hash())
	for i := 0; i < n; i++ {
		key, err := d.value()
		if err != nil {
			return nil, err
		}
		val, err := d.value()
		if err != nil {
			return nil, err
		}
		v.AppendPair(key, val)
	}

	if hasDefault {
		dflt, err := d.value()
		if err != nil {
			return nil, err
		}
		v.SetDefault(dflt)
	}
	return v, nil
}

func (d *decoder) object() (*rbval.Value, error) {
	class, err := d.symbolText()
	if err != nil {
		return nil, err
	}

	v := d.remember(rbval.Object(class))
	if err := d.ivarsInto(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (d *decoder) structValue() (*rbval.Value, error) {
	class, err := d.symbolText()
	if err != nil {
		return nil, err
	}

	v := d.remember(rbval.Struct(class))
	if err := d.ivarsInto(v); err != nil {
		return nil, err
	}
	return v, nil
}

// ivarsInto reads a count-prefixed run of (symbol, value) slots into v.
func (d *decoder) ivarsInto(v *rbval.Value) error {
	n, err := d.r.ReadCount()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		name, err := d.symbolText()
		if err != nil {
			return err
		}
		val, err := d.value()
		if err != nil {
			return err
		}
		v.SetIVar(name, val)
	}
	return nil
}

func (d *decoder) userdata() (*rbval.Value, error) {
	class, err := d.symbolText()
	if err != nil {
		return nil, err
	}
	data, err := d.r.ReadBytes()
	if err != nil {
		return nil, err
	}
	return d.remember(rbval.Userdata(class, data)), nil
}

func (d *decoder) userMarshal() (*rbval.Value, error) {
	class, err := d.symbolText()
	if err != nil {
		return nil, err
	}

	v := d.remember(rbval.UserMarshal(class, nil))
	inner, err := d.value()
	if err != nil {
		return nil, err
	}
	v.SetInner(inner)
	return v, nil
}

func (d *decoder) classRef(mk func(string) *rbval.Value) (*rbval.Value, error) {
	name, err := d.r.ReadBytes()
	if err != nil {
		return nil, err
	}
	return d.remember(mk(string(name))), nil
}

// instance decorates the value it wraps. The wrapped value owns the object
// table slot; the decoration exists only at the point of use.
func (d *decoder) instance() (*rbval.Value, error) {
	inner, err := d.value()
	if err != nil {
		return nil, err
	}

	v := rbval.Instance(inner)
	if err := d.ivarsInto(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (d *decoder) extended() (*rbval.Value, error) {
	module, err := d.symbolText()
	if err != nil {
		return nil, err
	}
	inner, err := d.value()
	if err != nil {
		return nil, err
	}
	return rbval.Extended(module, inner), nil
}
