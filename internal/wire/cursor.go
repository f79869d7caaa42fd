// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package wire

import (
	"encoding/binary"

	"github.com/rgsskit/marshal48/rbval"
)

// Reader is a forward-only cursor over one in-memory document. Reads hand
// out subslices of the backing buffer, never copies.
type Reader struct {
	buf []byte
	off int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Position returns the number of bytes consumed so far.
func (r *Reader) Position() int {
	return r.off
}

// Remaining returns the number of bytes left.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) ReadByte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, rbval.TruncatedError{Offset: r.off, Want: 1, Have: 0}
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// ReadExact returns the next n bytes as a view into the backing buffer.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if n > r.Remaining() {
		return nil, rbval.TruncatedError{Offset: r.off, Want: n, Have: r.Remaining()}
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// ReadU16LE reads one little-endian 16-bit word. Fixed-width words appear
// inside embedded binary blobs, never in the document grammar itself.
func (r *Reader) ReadU16LE() (uint16, error) {
	b, err := r.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32LE reads one little-endian 32-bit word.
func (r *Reader) ReadU32LE() (uint32, error) {
	b, err := r.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadLong reads one variable-length integer.
//
// The encoding: 0x00 is zero; bytes 6..127 encode 1..122 and 0x80..0xfa
// encode -123..-1 directly; otherwise the byte is a signed count of the
// little-endian payload bytes which follow, sign-filled when negative.
func (r *Reader) ReadLong() (int64, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	c := int64(int8(b))
	switch {
	case c == 0:
		return 0, nil
	case c > 4:
		return c - 5, nil
	case c < -4:
		return c + 5, nil
	}

	n := int(c)
	neg := false
	if n < 0 {
		n = -n
		neg = true
	}

	payload, err := r.ReadExact(n)
	if err != nil {
		return 0, err
	}

	var x int64
	if neg {
		x = -1
	}
	for i, pb := range payload {
		x &^= 0xff << (8 * i)
		x |= int64(pb) << (8 * i)
	}
	return x, nil
}

// ReadCount reads a long and validates it as an element or byte count: it
// must be non-negative and satisfiable by the remaining input (every
// counted item occupies at least one byte).
func (r *Reader) ReadCount() (int, error) {
	at := r.off
	n, err := r.ReadLong()
	if err != nil {
		return 0, err
	}
	if n < 0 || n > int64(r.Remaining()) {
		return 0, rbval.CountError{Offset: at, Count: n}
	}
	return int(n), nil
}

// ReadBytes reads a count-prefixed byte run as a view into the backing
// buffer.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadCount()
	if err != nil {
		return nil, err
	}
	return r.ReadExact(n)
}

// Writer accumulates one document. The zero value is ready to use.
type Writer struct {
	buf []byte
}

// Bytes returns the accumulated document. The slice is the writer's own
// buffer; callers must not write through the Writer afterwards.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) WriteByte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *Writer) Write(p []byte) {
	w.buf = append(w.buf, p...)
}

func (w *Writer) WriteU16LE(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) WriteU32LE(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// WriteLong emits one variable-length integer (see Reader.ReadLong).
func (w *Writer) WriteLong(v int64) {
	switch {
	case v == 0:
		w.buf = append(w.buf, 0)
		return
	case 0 < v && v < 123:
		w.buf = append(w.buf, byte(v+5))
		return
	case -124 < v && v < 0:
		w.buf = append(w.buf, byte(v-5))
		return
	}

	// Emit little-endian bytes until the residue is pure sign fill. The
	// count byte's sign tells the reader which fill to start from, so the
	// payload itself never carries sign bytes.
	var payload [8]byte
	n := 0
	for {
		payload[n] = byte(v)
		v >>= 8
		n++
		if v == 0 {
			w.buf = append(w.buf, byte(n))
			break
		}
		if v == -1 {
			w.buf = append(w.buf, byte(-n))
			break
		}
	}
	w.buf = append(w.buf, payload[:n]...)
}

// WriteBytes emits a count-prefixed byte run.
func (w *Writer) WriteBytes(p []byte) {
	w.WriteLong(int64(len(p)))
	w.buf = append(w.buf, p...)
}

// WriteString emits a count-prefixed byte run without copying the string
// into a byte slice first.
func (w *Writer) WriteString(s string) {
	w.WriteLong(int64(len(s)))
	w.buf = append(w.buf, s...)
}
