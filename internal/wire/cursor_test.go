// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgsskit/marshal48/rbval"
)

// Every boundary of the packed integer form: the zero byte, the one byte
// immediates at both ends, and the multi-byte forms either side of them.
func TestLongRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		Value int64
		Bytes []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x06}},
		{-1, []byte{0xfa}},
		{122, []byte{0x7f}},
		{123, []byte{0x01, 0x7b}},
		{-123, []byte{0x80}},
		{-124, []byte{0xff, 0x84}},
		{255, []byte{0x01, 0xff}},
		{256, []byte{0x02, 0x00, 0x01}},
		{-256, []byte{0xff, 0x00}},
		{-257, []byte{0xfe, 0xff, 0xfe}},
		{0x7fff, []byte{0x02, 0xff, 0x7f}},
		{0x8000, []byte{0x02, 0x00, 0x80}},
		{-0x8000, []byte{0xfe, 0x00, 0x80}},
		{-0x8001, []byte{0xfe, 0xff, 0x7f}},
		{FixnumMax, []byte{0x04, 0xff, 0xff, 0xff, 0x3f}},
		{FixnumMin, []byte{0xfc, 0x00, 0x00, 0x00, 0xc0}},
	}

	for _, c := range cases {
		var w Writer
		w.WriteLong(c.Value)
		assert.Equalf(t, c.Bytes, w.Bytes(), "serialized form of %d", c.Value)

		r := NewReader(c.Bytes)
		got, err := r.ReadLong()
		require.NoErrorf(t, err, "parsing %x", c.Bytes)
		assert.Equalf(t, c.Value, got, "parsed value of %x", c.Bytes)
		assert.Equal(t, 0, r.Remaining(), "should consume the whole form")
	}
}

func TestLongTruncated(t *testing.T) {
	t.Parallel()

	for _, in := range [][]byte{
		{},
		{0x02},
		{0x02, 0x00},
		{0xfc, 0x00, 0x00, 0x00},
	} {
		r := NewReader(in)
		_, err := r.ReadLong()
		require.Errorf(t, err, "input %x", in)
		assert.ErrorIs(t, err, rbval.ErrUnexpectedEnd)
	}
}

func TestReadCount(t *testing.T) {
	t.Parallel()

	t.Run("Valid", func(t *testing.T) {
		r := NewReader([]byte{0x08, 'a', 'b', 'c'})
		n, err := r.ReadCount()
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("Negative", func(t *testing.T) {
		r := NewReader([]byte{0xfa})
		_, err := r.ReadCount()
		require.Error(t, err)
		assert.ErrorIs(t, err, rbval.ErrUnexpectedEnd)
	})

	t.Run("ExceedsInput", func(t *testing.T) {
		// Claims 2^30-1 bytes follow; nothing does. Rejected before any
		// allocation happens.
		r := NewReader([]byte{0x04, 0xff, 0xff, 0xff, 0x3f})
		_, err := r.ReadCount()
		require.Error(t, err)
		assert.ErrorIs(t, err, rbval.ErrUnexpectedEnd)
	})
}

func TestReadBytesViews(t *testing.T) {
	t.Parallel()

	buf := []byte{0x08, 'a', 'b', 'c', 0x06, 'd'}
	r := NewReader(buf)

	first, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), first)

	second, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("d"), second)
	assert.Equal(t, 0, r.Remaining())

	// The returned slices alias the input.
	buf[1] = 'z'
	assert.Equal(t, []byte("zbc"), first)
}

func TestFixedWidthWords(t *testing.T) {
	t.Parallel()

	var w Writer
	w.WriteU32LE(0x00010203)
	w.WriteU16LE(0xbeef)
	assert.Equal(t, []byte{0x03, 0x02, 0x01, 0x00, 0xef, 0xbe}, w.Bytes())

	r := NewReader(w.Bytes())
	u32, err := r.ReadU32LE()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00010203), u32)

	u16, err := r.ReadU16LE()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xbeef), u16)
	assert.Equal(t, 0, r.Remaining())

	_, err = r.ReadU16LE()
	assert.ErrorIs(t, err, rbval.ErrUnexpectedEnd)
}

func TestReadExactTruncated(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{1, 2})
	_, err := r.ReadExact(3)
	require.Error(t, err)
	assert.ErrorIs(t, err, rbval.ErrUnexpectedEnd)

	var te rbval.TruncatedError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 0, te.Offset)
	assert.Equal(t, 3, te.Want)
	assert.Equal(t, 2, te.Have)
}

func TestWriterComposition(t *testing.T) {
	t.Parallel()

	var w Writer
	w.WriteByte('"')
	w.WriteString("hi")
	w.WriteBytes([]byte{0xff})

	assert.Equal(t, []byte{'"', 0x07, 'h', 'i', 0x06, 0xff}, w.Bytes())
}
