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
)

func intCmp(a, b int) int { return a - b }

func TestSearchExactMatch(t *testing.T) {
	values := []int{10, 20, 30, 40, 50}
	for i, v := range values {
		assert.Equal(t, i, search(intCmp, v, values, 0, len(values)))
	}
}

func TestSearchInsertionPoint(t *testing.T) {
	values := []int{10, 20, 30, 40, 50}
	cases := []struct {
		key  int
		want int
	}{
		{5, -1},
		{15, -2},
		{25, -3},
		{35, -4},
		{45, -5},
		{55, -6},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, search(intCmp, c.key, values, 0, len(values)))
	}
}

func TestSearchEmptyRange(t *testing.T) {
	assert.Equal(t, -1, search(intCmp, 5, nil, 0, 0))
}

func TestSearchWindowed(t *testing.T) {
	values := []int{1, 2, 10, 20, 30, 99}
	// search within [2,5) only, i.e. {10,20,30}
	assert.Equal(t, 3, search(intCmp, 20, values, 2, 5))
	assert.Equal(t, -4, search(intCmp, 15, values, 2, 5))
	assert.Equal(t, -(2+1), search(intCmp, 0, values, 2, 5))
}

func TestSearchFirstSlotFastPath(t *testing.T) {
	values := []int{100, 200, 300}
	assert.Equal(t, -1, search(intCmp, 50, values, 0, 3))
	assert.Equal(t, 0, search(intCmp, 100, values, 0, 3))
}
