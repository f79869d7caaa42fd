// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package rgss models the engine's built-in binary classes: the dense grid
// type backing map layers and the packed color types used by animations.
// Each serializes itself into the userdata blob form the engine reads.
package rgss

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/rgsskit/marshal48/internal/wire"
	"github.com/rgsskit/marshal48/rbval"
)

// Table is a dense grid of 16-bit cells, up to three dimensions. Unused
// trailing dimensions have extent 1, so a 5-element row is 5x1x1. The x
// coordinate varies fastest in memory.
type Table struct {
	width, height, depth int
	cells                []uint16
}

// NewTable allocates a zeroed grid. Dimensions must not be negative.
func NewTable(width, height, depth int) *Table {
	if width < 0 || height < 0 || depth < 0 {
		panic(fmt.Sprintf("rgss: NewTable(%d, %d, %d) with negative dimension", width, height, depth))
	}
	return &Table{
		width:  width,
		height: height,
		depth:  depth,
		cells:  make([]uint16, width*height*depth),
	}
}

func (t *Table) Width() int  { return t.width }
func (t *Table) Height() int { return t.height }
func (t *Table) Depth() int  { return t.depth }

// Len returns the total cell count.
func (t *Table) Len() int {
	return len(t.cells)
}

func (t *Table) index(x, y, z int) int {
	if x < 0 || x >= t.width || y < 0 || y >= t.height || z < 0 || z >= t.depth {
		panic(fmt.Sprintf("rgss: cell (%d, %d, %d) out of range %dx%dx%d",
			x, y, z, t.width, t.height, t.depth))
	}
	return x + y*t.width + z*t.width*t.height
}

// At returns the cell at (x, y, z). Panics when out of range.
func (t *Table) At(x, y, z int) uint16 {
	return t.cells[t.index(x, y, z)]
}

// Set stores a cell at (x, y, z). Panics when out of range.
func (t *Table) Set(x, y, z int, v uint16) {
	t.cells[t.index(x, y, z)] = v
}

// Resize reshapes the grid in place, keeping the cells in the overlapping
// region and zeroing the rest.
func (t *Table) Resize(width, height, depth int) {
	if width < 0 || height < 0 || depth < 0 {
		panic(fmt.Sprintf("rgss: Resize(%d, %d, %d) with negative dimension", width, height, depth))
	}

	cells := make([]uint16, width*height*depth)
	mw, mh, md := min(width, t.width), min(height, t.height), min(depth, t.depth)
	for z := 0; z < md; z++ {
		for y := 0; y < mh; y++ {
			for x := 0; x < mw; x++ {
				cells[x+y*width+z*width*height] = t.cells[t.index(x, y, z)]
			}
		}
	}

	t.width, t.height, t.depth = width, height, depth
	t.cells = cells
}

// MarshalValue packs the grid into its userdata blob: three little-endian
// 32-bit dimensions, a 32-bit cell count, then the cells as little-endian
// 16-bit words.
func (t *Table) MarshalValue() (*rbval.Value, error) {
	var w wire.Writer
	w.WriteU32LE(uint32(t.width))
	w.WriteU32LE(uint32(t.height))
	w.WriteU32LE(uint32(t.depth))
	w.WriteU32LE(uint32(len(t.cells)))
	for _, c := range t.cells {
		w.WriteU16LE(c)
	}
	return rbval.Userdata("Table", w.Bytes()), nil
}

// UnmarshalValue unpacks a userdata blob produced by MarshalValue (or by
// the engine itself). The count word must agree with both the dimensions
// and the bytes actually present.
func (t *Table) UnmarshalValue(v *rbval.Value) error {
	u := v.Unwrap()
	if u.Kind() != rbval.KindUserdata {
		return rbval.SchemaError{Class: "Table", Reason: "expected userdata, have " + u.Kind().String()}
	}
	if u.Class() != "Table" {
		return rbval.SchemaError{Class: "Table", Reason: "blob is tagged " + u.Class()}
	}

	r := wire.NewReader(u.Data())
	width, err := r.ReadU32LE()
	if err != nil {
		return err
	}
	height, err := r.ReadU32LE()
	if err != nil {
		return err
	}
	depth, err := r.ReadU32LE()
	if err != nil {
		return err
	}
	count, err := r.ReadU32LE()
	if err != nil {
		return err
	}

	if uint64(count) != uint64(width)*uint64(height)*uint64(depth) {
		return rbval.GridError{Width: width, Height: height, Depth: depth, Count: count}
	}
	if r.Remaining() != 2*int(count) {
		return rbval.GridError{Width: width, Height: height, Depth: depth, Count: uint32(r.Remaining() / 2)}
	}

	cells := make([]uint16, count)
	for i := range cells {
		c, err := r.ReadU16LE()
		if err != nil {
			return err
		}
		cells[i] = c
	}

	t.width, t.height, t.depth = int(width), int(height), int(depth)
	t.cells = cells
	return nil
}

// Equal reports whether two grids have the same shape and cells.
func (t *Table) Equal(o *Table) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	if t.width != o.width || t.height != o.height || t.depth != o.depth {
		return false
	}
	for i, c := range t.cells {
		if o.cells[i] != c {
			return false
		}
	}
	return true
}

// tableDoc is the grid's shape in the text formats: explicit dimensions
// plus the flat cell sequence, validated against each other on decode just
// like the binary blob.
type tableDoc struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Depth  int      `json:"depth"`
	Cells  []uint16 `json:"cells"`
}

func (t *Table) toDoc() tableDoc {
	return tableDoc{Width: t.width, Height: t.height, Depth: t.depth, Cells: t.cells}
}

func (t *Table) fromDoc(d tableDoc) error {
	if d.Width < 0 || d.Height < 0 || d.Depth < 0 {
		return rbval.SchemaError{Class: "Table",
			Reason: fmt.Sprintf("negative dimension in %dx%dx%d", d.Width, d.Height, d.Depth)}
	}
	if len(d.Cells) != d.Width*d.Height*d.Depth {
		return rbval.GridError{
			Width:  uint32(d.Width),
			Height: uint32(d.Height),
			Depth:  uint32(d.Depth),
			Count:  uint32(len(d.Cells)),
		}
	}
	t.width, t.height, t.depth = d.Width, d.Height, d.Depth
	t.cells = d.Cells
	return nil
}

func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.toDoc())
}

func (t *Table) UnmarshalJSON(data []byte) error {
	var d tableDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	return t.fromDoc(d)
}

func (t *Table) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(t.toDoc())
}

func (t *Table) UnmarshalCBOR(data []byte) error {
	var d tableDoc
	if err := cbor.Unmarshal(data, &d); err != nil {
		return err
	}
	return t.fromDoc(d)
}
