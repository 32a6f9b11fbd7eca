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

// node is one B-tree node, tagged as leaf or branch by whether children is
// nil rather than by packing both into one contiguous buffer keyed on
// length parity; the tag is a representation choice orthogonal to
// correctness.
//
// A branch holds k values and k+1 children; values[i] is the separator
// above children[i] and below children[i+1] (I5). count caches the total
// number of values reachable from this node so Size is O(depth) instead of
// O(n), mirroring the Node.count field in the teacher's node_test.go.
type node[V any] struct {
	values   []V
	children []*node[V]
	count    int
}

func newLeaf[V any](values []V) *node[V] {
	return &node[V]{values: values, count: len(values)}
}

func newBranch[V any](values []V, children []*node[V]) *node[V] {
	total := len(values)
	for _, c := range children {
		total += c.count
	}
	return &node[V]{values: values, children: children, count: total}
}

func emptyNode[V any]() *node[V] {
	return newLeaf[V](nil)
}

func (n *node[V]) isLeaf() bool {
	return n.children == nil
}

// keyEnd is the count of populated value slots.
func (n *node[V]) keyEnd() int {
	return len(n.values)
}

func (n *node[V]) size() int {
	return n.count
}
