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

// search locates key within values[from:to]. It returns the index of an
// exact match (>= 0), or -(insertionPoint+1) when key is absent, where
// insertionPoint is where key would need to be inserted to keep the slice
// sorted.
//
// The first slot is checked before falling into the general binary search:
// incoming update streams are usually sorted the same way the tree already
// is, so the common case is that the new key falls before (or at) the
// node's current minimum.
func search[V any](cmp Comparator[V], key V, values []V, from, to int) int {
	if from >= to {
		return -(from + 1)
	}
	if c := cmp(key, values[from]); c <= 0 {
		if c == 0 {
			return from
		}
		return -(from + 1)
	}
	lo, hi := from+1, to
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch c := cmp(key, values[mid]); {
		case c == 0:
			return mid
		case c < 0:
			hi = mid
		default:
			lo = mid + 1
		}
	}
	return -(lo + 1)
}
