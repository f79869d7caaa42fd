// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgsskit/marshal48/rbval"
)

type testDirection int

const (
	bothTest testDirection = iota
	encodeTest
	decodeTest
)

type testcase struct {
	// Name of this test case
	Name string

	// Which directions to run this test in (defaults to both)
	Direction testDirection

	// The value to serialize, or to compare against after parsing
	Object *rbval.Value

	// The encoded representation of the value, version header included
	Bytes []byte

	// Error expected on decode
	DecErrorIs error

	// Comparator to use (instead of default) after successful decoding.
	// The NaN tests use this because NaN != NaN, so normal comparisons
	// won't work
	DecodeComparator func(t *testing.T, expt, actual *rbval.Value)
}

func runTestcases(t *testing.T, tcs []testcase) {
	t.Parallel()

	for _, tc := range tcs {
		tc := tc
		if tc.DecodeComparator == nil {
			tc.DecodeComparator = func(t *testing.T, expt, actual *rbval.Value) {
				t.Helper()
				assert.Truef(t, expt.Equal(actual), "parse output should match: want %s, got %s", expt, actual)
			}
		}

		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			if tc.Direction != decodeTest {
				t.Run("Encode", func(t *testing.T) {
					t.Parallel()

					buf, err := Encode(tc.Object)
					require.NoError(t, err, "Encode should succeed")
					assert.Equal(t, tc.Bytes, buf, "Expected serialized data to match")
				})
			}

			if tc.Direction != encodeTest {
				t.Run("Decode", func(t *testing.T) {
					t.Parallel()

					v, err := Decode(tc.Bytes)
					if tc.DecErrorIs != nil {
						if assert.Error(t, err, "Decoding should have returned an error") {
							assert.Truef(t, errors.Is(err, tc.DecErrorIs), "Error expected to be %s, but was %s", tc.DecErrorIs, err)
						} else {
							t.Logf("Returned %s", v)
						}
					} else {
						require.NoError(t, err, "Decode should succeed")
						tc.DecodeComparator(t, tc.Object, v)
					}
				})
			}
		})
	}
}

// doc prefixes a payload with the version header.
func doc(payload ...byte) []byte {
	return append([]byte{4, 8}, payload...)
}
