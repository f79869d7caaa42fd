// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package codec

import (
	"bytes"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgsskit/marshal48/rbval"
)

func TestScalars(t *testing.T) {
	runTestcases(t, []testcase{
		{Name: "Nil", Object: rbval.Nil(), Bytes: doc('0')},
		{Name: "True", Object: rbval.Bool(true), Bytes: doc('T')},
		{Name: "False", Object: rbval.Bool(false), Bytes: doc('F')},

		{Name: "Zero", Object: rbval.Int(0), Bytes: doc('i', 0x00)},
		{Name: "One", Object: rbval.Int(1), Bytes: doc('i', 0x06)},
		{Name: "MinusOne", Object: rbval.Int(-1), Bytes: doc('i', 0xfa)},
		{Name: "ImmediateMax", Object: rbval.Int(122), Bytes: doc('i', 0x7f)},
		{Name: "ImmediateMax+1", Object: rbval.Int(123), Bytes: doc('i', 0x01, 0x7b)},
		{Name: "ImmediateMin", Object: rbval.Int(-123), Bytes: doc('i', 0x80)},
		{Name: "ImmediateMin-1", Object: rbval.Int(-124), Bytes: doc('i', 0xff, 0x84)},
		{Name: "TwoBytes", Object: rbval.Int(256), Bytes: doc('i', 0x02, 0x00, 0x01)},
		{Name: "TwoBytesNegative", Object: rbval.Int(-257), Bytes: doc('i', 0xfe, 0xff, 0xfe)},
		{Name: "FixnumMax", Object: rbval.Int(1<<30 - 1), Bytes: doc('i', 0x04, 0xff, 0xff, 0xff, 0x3f)},
		{Name: "FixnumMin", Object: rbval.Int(-(1 << 30)), Bytes: doc('i', 0xfc, 0x00, 0x00, 0x00, 0xc0)},

		// One past the fixnum range spills into the big integer form, and
		// parsing folds it back to a plain integer.
		{
			Name:   "FixnumMax+1",
			Object: rbval.Int(1 << 30),
			Bytes:  doc('l', '+', 0x07, 0x00, 0x00, 0x00, 0x40),
		},
		{
			Name:   "BignumNegative",
			Object: rbval.Int(-(1 << 40)),
			Bytes:  doc('l', '-', 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01),
		},
		{
			Name:   "BignumHuge",
			Object: rbval.BigInt(new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))),
			Bytes:  doc('l', '+', 0x0a, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00),
		},

		{Name: "Float", Object: rbval.Float(0.25), Bytes: doc('f', 0x09, '0', '.', '2', '5')},
		{Name: "FloatNegative", Object: rbval.Float(-1.5), Bytes: doc('f', 0x09, '-', '1', '.', '5')},
		{Name: "FloatInf", Object: rbval.Float(math.Inf(1)), Bytes: doc('f', 0x08, 'i', 'n', 'f')},
		{Name: "FloatNegInf", Object: rbval.Float(math.Inf(-1)), Bytes: doc('f', 0x09, '-', 'i', 'n', 'f')},
		{
			Name:      "FloatNaN",
			Direction: decodeTest,
			Object:    rbval.Float(math.NaN()),
			Bytes:     doc('f', 0x08, 'n', 'a', 'n'),
			DecodeComparator: func(t *testing.T, _, actual *rbval.Value) {
				f, err := actual.AsFloat()
				require.NoError(t, err)
				assert.True(t, math.IsNaN(f), "expected NaN, got %v", f)
			},
		},
		{
			// Some producers pad the text with a NUL and raw mantissa bytes.
			Name:      "FloatNulPadded",
			Direction: decodeTest,
			Object:    rbval.Float(0.5),
			Bytes:     doc('f', 0x0b, '0', '.', '5', 0x00, 0x12, 0x34),
		},

		{Name: "String", Object: rbval.Str("hello"), Bytes: doc('"', 0x0a, 'h', 'e', 'l', 'l', 'o')},
		{Name: "StringEmpty", Object: rbval.Str(""), Bytes: doc('"', 0x00)},
		{Name: "Symbol", Object: rbval.Symbol("foo"), Bytes: doc(':', 0x08, 'f', 'o', 'o')},
	})
}

func TestContainers(t *testing.T) {
	sharedString := rbval.Str("hi")

	hashWithDefault := rbval.Hash(rbval.Pair{Key: rbval.Symbol("k"), Value: rbval.Int(1)})
	hashWithDefault.SetDefault(rbval.Int(0))

	runTestcases(t, []testcase{
		{Name: "ArrayEmpty", Object: rbval.Array(), Bytes: doc('[', 0x00)},
		{
			Name:   "Array",
			Object: rbval.Array(rbval.Int(1), rbval.Int(2)),
			Bytes:  doc('[', 0x07, 'i', 0x06, 'i', 0x07),
		},
		{
			Name:   "ArrayNested",
			Object: rbval.Array(rbval.Array(rbval.Nil())),
			Bytes:  doc('[', 0x06, '[', 0x06, '0'),
		},

		{Name: "HashEmpty", Object: rbval.Hash(), Bytes: doc('{', 0x00)},
		{
			Name:   "Hash",
			Object: rbval.Hash(rbval.Pair{Key: rbval.Symbol("a"), Value: rbval.Int(1)}),
			Bytes:  doc('{', 0x06, ':', 0x06, 'a', 'i', 0x06),
		},
		{
			Name:   "HashWithDefault",
			Object: hashWithDefault,
			Bytes:  doc('}', 0x06, ':', 0x06, 'k', 'i', 0x06, 'i', 0x00),
		},

		// The second occurrence of a symbol becomes a link into the symbol
		// table; the second occurrence of a string links into the object
		// table. The array claims slot 0, the string slot 1.
		{
			Name:   "SymbolReuse",
			Object: rbval.Array(rbval.Symbol("foo"), rbval.Symbol("foo")),
			Bytes:  doc('[', 0x07, ':', 0x08, 'f', 'o', 'o', ';', 0x00),
		},
		{
			Name:   "ObjectReuse",
			Object: rbval.Array(sharedString, sharedString),
			Bytes:  doc('[', 0x07, '"', 0x07, 'h', 'i', '@', 0x06),
		},
	})
}

func TestClassedValues(t *testing.T) {
	runTestcases(t, []testcase{
		{
			Name: "Object",
			Object: rbval.Object("Point",
				rbval.IVar{Name: "@x", Value: rbval.Int(1)},
				rbval.IVar{Name: "@y", Value: rbval.Int(2)},
			),
			Bytes: doc('o',
				':', 0x0a, 'P', 'o', 'i', 'n', 't', 0x07,
				':', 0x07, '@', 'x', 'i', 0x06,
				':', 0x07, '@', 'y', 'i', 0x07,
			),
		},
		{
			Name:   "ObjectEmpty",
			Object: rbval.Object("Blank"),
			Bytes:  doc('o', ':', 0x0a, 'B', 'l', 'a', 'n', 'k', 0x00),
		},
		{
			Name:   "Struct",
			Object: rbval.Struct("Pt", rbval.IVar{Name: "x", Value: rbval.Int(1)}),
			Bytes:  doc('S', ':', 0x07, 'P', 't', 0x06, ':', 0x06, 'x', 'i', 0x06),
		},
		{
			Name:   "Userdata",
			Object: rbval.Userdata("Color", []byte{0xde, 0xad, 0xbe, 0xef}),
			Bytes:  doc('u', ':', 0x0a, 'C', 'o', 'l', 'o', 'r', 0x09, 0xde, 0xad, 0xbe, 0xef),
		},
		{
			Name:   "UserMarshal",
			Object: rbval.UserMarshal("Pnt", rbval.Array(rbval.Int(1), rbval.Int(2))),
			Bytes:  doc('U', ':', 0x08, 'P', 'n', 't', '[', 0x07, 'i', 0x06, 'i', 0x07),
		},
		{
			Name:   "ClassRef",
			Object: rbval.ClassRef("Foo"),
			Bytes:  doc('c', 0x08, 'F', 'o', 'o'),
		},
		{
			Name:   "ModuleRef",
			Object: rbval.ModuleRef("Bar"),
			Bytes:  doc('m', 0x08, 'B', 'a', 'r'),
		},
		{
			Name:   "InstanceString",
			Object: rbval.Instance(rbval.Str("x"), rbval.IVar{Name: "E", Value: rbval.Bool(true)}),
			Bytes:  doc('I', '"', 0x06, 'x', 0x06, ':', 0x06, 'E', 'T'),
		},
		{
			Name:   "Extended",
			Object: rbval.Extended("Mod", rbval.Str("x")),
			Bytes:  doc('e', ':', 0x08, 'M', 'o', 'd', '"', 0x06, 'x'),
		},
	})
}

func TestMalformedInput(t *testing.T) {
	runTestcases(t, []testcase{
		{
			Name:       "EmptyInput",
			Direction:  decodeTest,
			Bytes:      []byte{},
			DecErrorIs: rbval.ErrUnexpectedEnd,
		},
		{
			Name:       "HeaderOnly",
			Direction:  decodeTest,
			Bytes:      []byte{4},
			DecErrorIs: rbval.ErrUnexpectedEnd,
		},
		{
			Name:       "WrongVersion",
			Direction:  decodeTest,
			Bytes:      []byte{4, 9, '0'},
			DecErrorIs: rbval.ErrIncompatibleVersion,
		},
		{
			Name:       "TrailingData",
			Direction:  decodeTest,
			Bytes:      doc('0', '0'),
			DecErrorIs: rbval.ErrTrailingData,
		},
		{
			Name:       "UnknownTag",
			Direction:  decodeTest,
			Bytes:      doc('d'),
			DecErrorIs: rbval.ErrUnknownTag,
		},
		{
			Name:       "UnknownTagRegexp",
			Direction:  decodeTest,
			Bytes:      doc('/', 0x06, 'a', 0x00),
			DecErrorIs: rbval.ErrUnknownTag,
		},
		{
			Name:       "MissingValue",
			Direction:  decodeTest,
			Bytes:      doc(),
			DecErrorIs: rbval.ErrUnexpectedEnd,
		},
		{
			Name:       "TruncatedString",
			Direction:  decodeTest,
			Bytes:      doc('"', 0x0a, 'h', 'e'),
			DecErrorIs: rbval.ErrUnexpectedEnd,
		},
		{
			Name:       "TruncatedLong",
			Direction:  decodeTest,
			Bytes:      doc('i', 0x02, 0x01),
			DecErrorIs: rbval.ErrUnexpectedEnd,
		},
		{
			Name:       "NegativeCount",
			Direction:  decodeTest,
			Bytes:      doc('[', 0xfa),
			DecErrorIs: rbval.ErrUnexpectedEnd,
		},
		{
			Name:       "OversizedCount",
			Direction:  decodeTest,
			Bytes:      doc('"', 0x04, 0xff, 0xff, 0xff, 0x3f),
			DecErrorIs: rbval.ErrUnexpectedEnd,
		},
		{
			Name:       "SymlinkOutOfBounds",
			Direction:  decodeTest,
			Bytes:      doc(';', 0x00),
			DecErrorIs: rbval.ErrBadReference,
		},
		{
			Name:       "LinkOutOfBounds",
			Direction:  decodeTest,
			Bytes:      doc('@', 0x00),
			DecErrorIs: rbval.ErrBadReference,
		},
		{
			Name:       "LinkForward",
			Direction:  decodeTest,
			Bytes:      doc('[', 0x06, '@', 0x06),
			DecErrorIs: rbval.ErrBadReference,
		},
		{
			Name:       "BignumBadSign",
			Direction:  decodeTest,
			Bytes:      doc('l', 'x', 0x06, 0x01, 0x00),
			DecErrorIs: rbval.ErrUnknownTag,
		},
		{
			Name:       "FloatGarbageText",
			Direction:  decodeTest,
			Bytes:      doc('f', 0x08, 'x', 'y', 'z'),
			DecErrorIs: rbval.ErrUnknownTag,
		},
		{
			Name:       "ObjectBadClassTag",
			Direction:  decodeTest,
			Bytes:      doc('o', 'i', 0x06, 0x00),
			DecErrorIs: rbval.ErrUnknownTag,
		},
	})
}

// A link resolves to the same *Value the first occurrence produced, so
// mutations through one path are visible through the other.
func TestDecodeSharingPreservesIdentity(t *testing.T) {
	v, err := Decode(doc('[', 0x07, '"', 0x07, 'h', 'i', '@', 0x06))
	require.NoError(t, err)

	elems := v.Elems()
	require.Len(t, elems, 2)
	assert.Same(t, elems[0], elems[1], "both slots should hold the same value")
}

func TestSelfReferentialArray(t *testing.T) {
	wire := doc('[', 0x06, '@', 0x00)

	v, err := Decode(wire)
	require.NoError(t, err)
	require.Len(t, v.Elems(), 1)
	assert.Same(t, v, v.Elems()[0], "element should be the array itself")

	// The cycle serializes right back: the array claims its table slot
	// before its elements are visited.
	out, err := Encode(v)
	require.NoError(t, err)
	assert.Equal(t, wire, out)
}

func TestEncodeCycleTerminates(t *testing.T) {
	a := rbval.Array()
	a.Append(a)

	out, err := Encode(a)
	require.NoError(t, err)
	assert.Equal(t, doc('[', 0x06, '@', 0x00), out)
}

// Sixteen levels of nesting is fine; a pathological document that nests
// deeper than the recursion bound is rejected rather than exhausting the
// stack.
func TestDepthLimit(t *testing.T) {
	nest := func(levels int) []byte {
		var buf bytes.Buffer
		buf.Write([]byte{4, 8})
		for i := 0; i < levels; i++ {
			buf.Write([]byte{'[', 0x06})
		}
		buf.WriteByte('0')
		return buf.Bytes()
	}

	v, err := Decode(nest(16))
	require.NoError(t, err)
	assert.Equal(t, 1, v.Len())

	_, err = Decode(nest(maxDepth + 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, rbval.ErrTooDeep)
}

// Re-serializing a parsed document reproduces it byte for byte. Table
// indices survive because both passes assign them in the same order.
func TestRoundTripBytes(t *testing.T) {
	t.Parallel()

	docs := [][]byte{
		doc('[', 0x08, '"', 0x06, 'a', '@', 0x06, '"', 0x06, 'b'),
		doc('{', 0x06, '"', 0x06, 'k', '[', 0x06, '@', 0x06),
		doc('o', ':', 0x08, 'F', 'o', 'o', 0x06, ':', 0x0b, '@', 'i', 'n', 'n', 'e', 'r', 'o', ';', 0x00, 0x00),
		doc('U', ':', 0x08, 'P', 'n', 't', '[', 0x07, 'f', 0x06, '1', '@', 0x07),
	}

	for _, in := range docs {
		v, err := Decode(in)
		require.NoError(t, err)

		out, err := Encode(v)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}
