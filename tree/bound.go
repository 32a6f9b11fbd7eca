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

// Comparator imposes the strict total order callers must supply: negative
// if a < b, zero if equal, positive if a > b. It must be stable across the
// lifetime of any tree built or updated with it; mixing comparators
// between build and update on the same tree is undefined.
type Comparator[V any] func(a, b V) int

// bound is a ±∞-aware range endpoint: a sum type of {Value(V), PlusInf} for
// upper bounds and {Value(V), MinusInf} for lower bounds, used only in
// bound registers and never stored in a node. A nil val is the infinite
// case, so no sentinel singleton of V ever needs to be boxed or compared
// against a real value.
type bound[V any] struct {
	val *V
}

func noBound[V any]() bound[V] {
	return bound[V]{}
}

func valueBound[V any](v V) bound[V] {
	return bound[V]{val: &v}
}

func (b bound[V]) isInfinite() bool {
	return b.val == nil
}

// below reports whether v lies strictly below this bound. An infinite
// bound (the +∞ sentinel) is strictly above every value.
func (b bound[V]) below(cmp Comparator[V], v V) bool {
	if b.val == nil {
		return true
	}
	return cmp(v, *b.val) < 0
}
