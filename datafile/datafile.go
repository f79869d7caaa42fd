// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package datafile reads and writes a project's Data directory in three
// interchangeable representations: the engine's native binary documents,
// JSON for diff-friendly version control, and CBOR for compact interchange.
//
// A Handler pairs one format with the schema registry describing the
// records, so the call sites never branch on format themselves. Database
// files whose top-level array reserves slot 0 as a padding nil go through
// ReadList/WriteList, which keep that convention in every format.
package datafile

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"go.uber.org/zap"

	"github.com/rgsskit/marshal48/rbval"
	"github.com/rgsskit/marshal48/schema"
)

// Format selects the on-disk representation.
type Format int

const (
	FormatMarshal Format = iota
	FormatJSON
	FormatCBOR
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatMarshal:
		return "marshal"
	case FormatJSON:
		return "json"
	case FormatCBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// Extension returns the file extension the format stores under, without
// the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarshal:
		return "rxdata"
	case FormatJSON:
		return "json"
	case FormatCBOR:
		return "cbor"
	default:
		panic(fmt.Sprintf("datafile: unknown format %d", f))
	}
}

// cborEnc sorts map keys so CBOR documents are deterministic, matching
// the sorted-hash behavior of the binary encoder.
var cborEnc = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.EncOptions{Sort: cbor.SortCanonical}.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// Handler converts between typed records and one on-disk format. It holds
// no per-call state, so one Handler serves any number of goroutines.
type Handler struct {
	format Format
	reg    *schema.Registry
	log    *zap.Logger
	pretty bool
}

// Option adjusts a Handler.
type Option func(*Handler)

// WithLogger attaches a logger. Handlers are silent by default.
func WithLogger(log *zap.Logger) Option {
	return func(h *Handler) { h.log = log }
}

// WithPrettyJSON switches the JSON format to indented output. The other
// formats ignore it.
func WithPrettyJSON() Option {
	return func(h *Handler) { h.pretty = true }
}

// NewHandler returns a Handler for the format, resolving classed records
// through reg. It panics on an unknown format or a nil registry; both are
// programming errors.
func NewHandler(format Format, reg *schema.Registry, opts ...Option) *Handler {
	if format < FormatMarshal || format > FormatCBOR {
		panic(fmt.Sprintf("datafile: unknown format %d", format))
	}
	if reg == nil {
		panic("datafile: registry must not be nil")
	}

	h := &Handler{format: format, reg: reg, log: zap.NewNop()}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Format returns the format the Handler serves.
func (h *Handler) Format() Format {
	return h.format
}

// PathFor returns where a record file named base lives, for example
// "Data/Actors.rxdata".
func (h *Handler) PathFor(base string) string {
	return path.Join("Data", base) + "." + h.format.Extension()
}

func (h *Handler) decode(data []byte, out interface{}) error {
	switch h.format {
	case FormatMarshal:
		return h.reg.Unmarshal(data, out)
	case FormatJSON:
		return json.Unmarshal(data, out)
	case FormatCBOR:
		return cbor.Unmarshal(data, out)
	default:
		panic(fmt.Sprintf("datafile: unknown format %d", h.format))
	}
}

func (h *Handler) encode(in interface{}) ([]byte, error) {
	switch h.format {
	case FormatMarshal:
		return h.reg.Marshal(in)
	case FormatJSON:
		if h.pretty {
			return json.MarshalIndent(in, "", "  ")
		}
		return json.Marshal(in)
	case FormatCBOR:
		return cborEnc.Marshal(in)
	default:
		panic(fmt.Sprintf("datafile: unknown format %d", h.format))
	}
}

// Read parses one document into out, which must be a non-nil pointer: a
// registered record for classed files, a map for keyed files, a slice for
// plain list files.
func (h *Handler) Read(data []byte, out interface{}) error {
	if err := h.decode(data, out); err != nil {
		return err
	}
	h.log.Debug("read data file",
		zap.Stringer("format", h.format),
		zap.Int("bytes", len(data)))
	return nil
}

// Write serializes in as one document.
func (h *Handler) Write(w io.Writer, in interface{}) error {
	blob, err := h.encode(in)
	if err != nil {
		return err
	}
	if _, err := w.Write(blob); err != nil {
		return err
	}
	h.log.Debug("wrote data file",
		zap.Stringer("format", h.format),
		zap.Int("bytes", len(blob)))
	return nil
}

// ReadList parses a database file whose top-level array is one-based:
// slot 0 holds a padding nil and records start at slot 1. out must be a
// pointer to a slice; the padding is checked and stripped, so out[0] is
// record id 1.
func (h *Handler) ReadList(data []byte, out interface{}) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Slice {
		return rbval.SchemaError{Reason: "list target must be a non-nil pointer to a slice"}
	}
	slot := rv.Elem()

	// Decode into []*T first: the padding slot and any absent record
	// arrive as nil pointers in every format.
	padded := reflect.New(reflect.SliceOf(reflect.PtrTo(slot.Type().Elem())))
	if err := h.decode(data, padded.Interface()); err != nil {
		return err
	}

	ps := padded.Elem()
	if ps.Len() == 0 {
		slot.Set(reflect.MakeSlice(slot.Type(), 0, 0))
		return nil
	}
	if !ps.Index(0).IsNil() {
		return rbval.SchemaError{Reason: "slot 0 of a one-based record list must hold nil"}
	}

	list := reflect.MakeSlice(slot.Type(), ps.Len()-1, ps.Len()-1)
	for i := 1; i < ps.Len(); i++ {
		p := ps.Index(i)
		if p.IsNil() {
			return rbval.SchemaError{Reason: fmt.Sprintf("record %d of a one-based list is nil", i)}
		}
		list.Index(i - 1).Set(p.Elem())
	}
	slot.Set(list)

	h.log.Debug("read record list",
		zap.Stringer("format", h.format),
		zap.Int("records", list.Len()),
		zap.Int("bytes", len(data)))
	return nil
}

// WriteList is the inverse of ReadList: it prepends the padding nil and
// serializes the records one-based. in must be a slice or a pointer to
// one.
func (h *Handler) WriteList(w io.Writer, in interface{}) error {
	rv := reflect.ValueOf(in)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice {
		return rbval.SchemaError{Reason: "list source must be a slice"}
	}

	padded := reflect.MakeSlice(reflect.SliceOf(reflect.PtrTo(rv.Type().Elem())), rv.Len()+1, rv.Len()+1)
	for i := 0; i < rv.Len(); i++ {
		p := reflect.New(rv.Type().Elem())
		p.Elem().Set(rv.Index(i))
		padded.Index(i + 1).Set(p)
	}

	blob, err := h.encode(padded.Interface())
	if err != nil {
		return err
	}
	if _, err := w.Write(blob); err != nil {
		return err
	}
	h.log.Debug("wrote record list",
		zap.Stringer("format", h.format),
		zap.Int("records", rv.Len()),
		zap.Int("bytes", len(blob)))
	return nil
}
