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

// Package tree implements an immutable, persistent B-tree: every Build or
// Update produces a new Tree value that shares unchanged subtrees with its
// predecessor by reference rather than copying them, so older Tree values
// remain valid and independently readable after newer ones are derived from
// them.
package tree

// Tree is an immutable handle to a B-tree snapshot. The zero value is not a
// valid Tree; use Empty to obtain one.
type Tree[V any] struct {
	root *node[V]
}

// Empty returns the tree with no values.
func Empty[V any]() Tree[V] {
	return Tree[V]{root: emptyNode[V]()}
}

// Size returns the number of values stored in t, in O(depth) rather than
// O(n) by reading the node.count caches built alongside each node.
func Size[V any](t Tree[V]) int {
	return t.root.size()
}

// SliceAll returns a cursor over every value in t, ascending if forward,
// descending otherwise.
func SliceAll[V any](t Tree[V], forward bool) *Cursor[V] {
	return NewCursorAll(t, forward)
}

// Ordinal returns the rank (0-based count of values strictly less than the
// cursor's current position) of c within the tree it was built over,
// grounded on the teacher's getOrdinalOfCursor helper. If c has run past
// its forward end, Ordinal returns the tree's total size, matching the
// convention that an end cursor's ordinal is the count of all values.
//
// Ordinal walks c's path top-down rather than needing parent pointers:
// each frame's local contribution is entirely determined by its node and
// index, using the same count caches Size relies on, so the whole
// computation stays O(depth).
func Ordinal[V any](c *Cursor[V]) int {
	if !c.Valid() {
		return c.total
	}

	total := 0
	for i, f := range c.path {
		if f.n.isLeaf() {
			if c.forward {
				total += f.idx
			} else {
				total += f.idx - 1
			}
			continue
		}

		for j := 0; j < f.idx; j++ {
			total += f.n.children[j].count
		}
		last := i == len(c.path)-1
		if c.forward {
			total += f.idx
			if last {
				// No deeper frame exists to account for children[idx]
				// (every value in it precedes values[idx]), so it must
				// be added here instead.
				total += f.n.children[f.idx].count
			}
		} else if last {
			// The current value is values[idx-1] itself: only the
			// idx-1 values before it in this node are counted here;
			// children[idx-1] is already folded into the loop above.
			total += f.idx - 1
		} else {
			// A deeper frame is inside children[idx], which sits to
			// the right of all idx separators in this node — all of
			// them precede the current value.
			total += f.idx
		}
	}
	return total
}
