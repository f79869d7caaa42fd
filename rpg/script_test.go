// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package rpg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgsskit/marshal48/rbval"
)

func TestScriptRoundTrip(t *testing.T) {
	s := Script{
		Name: "Scene_Title",
		Text: "class Scene_Title\n  def main\n  end\nend\n",
	}

	v, err := s.MarshalValue()
	require.NoError(t, err)
	require.Equal(t, rbval.KindArray, v.Kind())
	elems := v.Elems()
	require.Len(t, elems, 3)

	// The stored body is deflate-compressed, not the source text.
	body, err := elems[2].AsString()
	require.NoError(t, err)
	require.NotEmpty(t, body)
	assert.Equal(t, byte(0x78), body[0], "body should start with a deflate stream header")

	var back Script
	require.NoError(t, back.UnmarshalValue(v))
	assert.Equal(t, s, back)
}

func TestScriptEmptyText(t *testing.T) {
	v, err := Script{Name: "Main"}.MarshalValue()
	require.NoError(t, err)

	var back Script
	require.NoError(t, back.UnmarshalValue(v))
	assert.Equal(t, Script{Name: "Main"}, back)
}

// The magic number slot is ignored on read and rewritten as zero.
func TestScriptMagicNumberIgnored(t *testing.T) {
	v, err := Script{Name: "Main", Text: "main_loop"}.MarshalValue()
	require.NoError(t, err)

	magic, err := v.Elems()[0].AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(0), magic)

	v.Elems()[0] = rbval.Int(58127891)
	var back Script
	require.NoError(t, back.UnmarshalValue(v))
	assert.Equal(t, "main_loop", back.Text)
}

func TestScriptMalformed(t *testing.T) {
	deflated, err := Script{Text: "x"}.MarshalValue()
	require.NoError(t, err)
	body := deflated.Elems()[2]

	testcases := []struct {
		name string
		wire *rbval.Value
	}{
		{"not an array", rbval.Str("nope")},
		{"wrong element count", rbval.Array(rbval.Int(0), rbval.Str("Main"))},
		{"name not a string", rbval.Array(rbval.Int(0), rbval.Int(1), body)},
		{"body not a string", rbval.Array(rbval.Int(0), rbval.Str("Main"), rbval.Int(1))},
		{"body not a deflate stream", rbval.Array(rbval.Int(0), rbval.Str("Main"), rbval.Str("plain"))},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			var s Script
			err := s.UnmarshalValue(tc.wire)
			assert.ErrorIs(t, err, rbval.ErrSchemaMismatch)
		})
	}
}
