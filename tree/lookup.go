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

// Find descends from root to leaf using binary search at each level,
// returning the stored value equal to key under cmp, or false if absent.
// Bounded by tree depth; it allocates nothing.
func Find[V any](t Tree[V], cmp Comparator[V], key V) (V, bool) {
	n := t.root
	for {
		i := search(cmp, key, n.values, 0, n.keyEnd())
		if i >= 0 {
			return n.values[i], true
		}
		if n.isLeaf() {
			var zero V
			return zero, false
		}
		n = n.children[-(i + 1)]
	}
}
