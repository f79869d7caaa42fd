// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rgss

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/rgsskit/marshal48/rbval"
)

// colorBlobSize holds four packed float64 channels.
const colorBlobSize = 32

// Color is an RGBA color with float64 channels in 0..255.
type Color struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
	Alpha float64 `json:"alpha"`
}

// NewColor clamps each channel into 0..255.
func NewColor(red, green, blue, alpha float64) Color {
	return Color{
		Red:   clamp(red, 0, 255),
		Green: clamp(green, 0, 255),
		Blue:  clamp(blue, 0, 255),
		Alpha: clamp(alpha, 0, 255),
	}
}

// Tone is a screen tone adjustment: color shifts in -255..255 and a gray
// saturation component in 0..255.
type Tone struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
	Gray  float64 `json:"gray"`
}

// NewTone clamps the color shifts into -255..255 and gray into 0..255.
func NewTone(red, green, blue, gray float64) Tone {
	return Tone{
		Red:   clamp(red, -255, 255),
		Green: clamp(green, -255, 255),
		Blue:  clamp(blue, -255, 255),
		Gray:  clamp(gray, 0, 255),
	}
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

func packChannels(class string, a, b, c, d float64) *rbval.Value {
	blob := make([]byte, colorBlobSize)
	binary.LittleEndian.PutUint64(blob[0:], math.Float64bits(a))
	binary.LittleEndian.PutUint64(blob[8:], math.Float64bits(b))
	binary.LittleEndian.PutUint64(blob[16:], math.Float64bits(c))
	binary.LittleEndian.PutUint64(blob[24:], math.Float64bits(d))
	return rbval.Userdata(class, blob)
}

func unpackChannels(class string, v *rbval.Value) (a, b, c, d float64, err error) {
	u := v.Unwrap()
	if u.Kind() != rbval.KindUserdata {
		return 0, 0, 0, 0, rbval.SchemaError{Class: class, Reason: "expected userdata, have " + u.Kind().String()}
	}
	if u.Class() != class {
		return 0, 0, 0, 0, rbval.SchemaError{Class: class, Reason: "blob is tagged " + u.Class()}
	}
	blob := u.Data()
	if len(blob) != colorBlobSize {
		return 0, 0, 0, 0, rbval.SchemaError{Class: class,
			Reason: fmt.Sprintf("blob holds %d bytes, need %d", len(blob), colorBlobSize)}
	}

	a = math.Float64frombits(binary.LittleEndian.Uint64(blob[0:]))
	b = math.Float64frombits(binary.LittleEndian.Uint64(blob[8:]))
	c = math.Float64frombits(binary.LittleEndian.Uint64(blob[16:]))
	d = math.Float64frombits(binary.LittleEndian.Uint64(blob[24:]))
	return a, b, c, d, nil
}

func (c Color) MarshalValue() (*rbval.Value, error) {
	return packChannels("Color", c.Red, c.Green, c.Blue, c.Alpha), nil
}

func (c *Color) UnmarshalValue(v *rbval.Value) error {
	r, g, b, a, err := unpackChannels("Color", v)
	if err != nil {
		return err
	}
	c.Red, c.Green, c.Blue, c.Alpha = r, g, b, a
	return nil
}

func (t Tone) MarshalValue() (*rbval.Value, error) {
	return packChannels("Tone", t.Red, t.Green, t.Blue, t.Gray), nil
}

func (t *Tone) UnmarshalValue(v *rbval.Value) error {
	r, g, b, gray, err := unpackChannels("Tone", v)
	if err != nil {
		return err
	}
	t.Red, t.Green, t.Blue, t.Gray = r, g, b, gray
	return nil
}
