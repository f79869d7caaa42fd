// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/rgsskit/marshal48/rbval"
)

// Script is one entry of the project's script list. On the wire it is not
// a classed object but a bare three-element array of magic number, name
// and deflate-compressed source text; the text is held inflated here.
//
// The magic number slot is engine noise: it is ignored on read and written
// back as zero.
type Script struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// MarshalValue deflates the source text into the engine's triplet form.
func (s Script) MarshalValue() (*rbval.Value, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := io.WriteString(zw, s.Text); err != nil {
		zw.Close()
		return nil, scriptErr("deflate", err)
	}
	if err := zw.Close(); err != nil {
		return nil, scriptErr("deflate", err)
	}
	return rbval.Array(rbval.Int(0), rbval.Str(s.Name), rbval.Str(buf.String())), nil
}

// UnmarshalValue accepts the triplet form and inflates the source text.
func (s *Script) UnmarshalValue(v *rbval.Value) error {
	u := v.Unwrap()
	if u.Kind() != rbval.KindArray {
		return rbval.SchemaError{Class: "Script", Reason: "expected array, have " + u.Kind().String()}
	}
	elems := u.Elems()
	if len(elems) != 3 {
		return rbval.SchemaError{Class: "Script",
			Reason: fmt.Sprintf("expected 3 elements, have %d", len(elems))}
	}

	name, err := elems[1].Unwrap().AsString()
	if err != nil {
		return rbval.WithFieldPath(err, "Script", "name")
	}
	body, err := elems[2].Unwrap().AsString()
	if err != nil {
		return rbval.WithFieldPath(err, "Script", "text")
	}

	zr, err := zlib.NewReader(strings.NewReader(body))
	if err != nil {
		return scriptErr("inflate", err)
	}
	defer zr.Close()
	text, err := io.ReadAll(zr)
	if err != nil {
		return scriptErr("inflate", err)
	}

	s.Name = name
	s.Text = string(text)
	return nil
}

func scriptErr(op string, err error) error {
	return rbval.SchemaError{Class: "Script", Reason: fmt.Sprintf("%s: %v", op, err)}
}
