// Copyright 2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIntTree(t *testing.T, fanout int, vals []int) Tree[int] {
	t.Helper()
	tr, err := Build(Config{Fanout: fanout}, vals, intCmp, false)
	require.NoError(t, err)
	return tr
}

func TestCursorEmptyTreeIsInvalid(t *testing.T) {
	c := SliceAll(Empty[int](), true)
	assert.False(t, c.Valid())
}

func TestCursorForwardFull(t *testing.T) {
	vals := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tr := buildIntTree(t, 4, vals)
	assert.Equal(t, vals, collectForward(tr))
}

func TestCursorBackwardFull(t *testing.T) {
	vals := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tr := buildIntTree(t, 4, vals)
	want := make([]int, len(vals))
	for i, v := range vals {
		want[len(vals)-1-i] = v
	}
	assert.Equal(t, want, collectBackward(tr))
}

func TestCursorRangeExclusive(t *testing.T) {
	vals := make([]int, 50)
	for i := range vals {
		vals[i] = i
	}
	tr := buildIntTree(t, 4, vals)

	c := NewCursorRange(tr, intCmp, 10, true, false, 20, true, false, true)
	var got []int
	for c.Valid() {
		got = append(got, c.Value())
		c.Advance()
	}
	assert.Equal(t, []int{11, 12, 13, 14, 15, 16, 17, 18, 19}, got)
}

func TestCursorRangeBothExclusiveAdjacent(t *testing.T) {
	vals := []int{1, 2, 3, 4, 5}
	tr := buildIntTree(t, 4, vals)
	// lo == hi, exclusive on both ends -> empty range
	c := NewCursorRange(tr, intCmp, 3, true, false, 3, true, false, true)
	assert.False(t, c.Valid())
}

func TestCursorRangeInclusiveSingleton(t *testing.T) {
	vals := []int{1, 2, 3, 4, 5}
	tr := buildIntTree(t, 4, vals)
	c := Slice(tr, intCmp, 3, 3, true)
	require.True(t, c.Valid())
	assert.Equal(t, 3, c.Value())
	c.Advance()
	assert.False(t, c.Valid())
}

func TestCursorUnboundedLowOrHigh(t *testing.T) {
	vals := make([]int, 30)
	for i := range vals {
		vals[i] = i
	}
	tr := buildIntTree(t, 4, vals)

	lowOnly := NewCursorRange(tr, intCmp, 25, true, true, 0, false, true, true)
	var got []int
	for lowOnly.Valid() {
		got = append(got, lowOnly.Value())
		lowOnly.Advance()
	}
	assert.Equal(t, []int{25, 26, 27, 28, 29}, got)

	highOnly := NewCursorRange(tr, intCmp, 0, false, true, 4, true, true, true)
	got = nil
	for highOnly.Valid() {
		got = append(got, highOnly.Value())
		highOnly.Advance()
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestCursorRangeOutsideTreeIsEmpty(t *testing.T) {
	tr := buildIntTree(t, 4, []int{1, 2, 3})
	c := Slice(tr, intCmp, 100, 200, true)
	assert.False(t, c.Valid())
}

func TestOrdinalForward(t *testing.T) {
	vals := make([]int, 100)
	for i := range vals {
		vals[i] = i
	}
	tr := buildIntTree(t, 4, vals)

	c := SliceAll(tr, true)
	for i := 0; i < len(vals); i++ {
		require.True(t, c.Valid())
		assert.Equal(t, i, Ordinal(c))
		c.Advance()
	}
	assert.False(t, c.Valid())
	assert.Equal(t, len(vals), Ordinal(c))
}

func TestOrdinalBackward(t *testing.T) {
	vals := make([]int, 40)
	for i := range vals {
		vals[i] = i
	}
	tr := buildIntTree(t, 4, vals)

	c := SliceAll(tr, false)
	for i := len(vals) - 1; i >= 0; i-- {
		require.True(t, c.Valid())
		assert.Equal(t, i, Ordinal(c))
		c.Advance()
	}
}
