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
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// IsWellFormed checks invariants I1-I6: every leaf at the
// same depth, every node's values strictly ascending under cmp, every
// node's own values bounded between the separators that reach it from
// above, every node holding between 1 and F values (the root excepted,
// which may hold as few as 0), and count caches matching their subtrees.
func IsWellFormed[V any](t Tree[V], cmp Comparator[V], fanout int) bool {
	depth, ok := wellFormedDepth(t.root, cmp, fanout, noBound[V](), noBound[V](), true)
	return ok && depth >= 0
}

// wellFormedDepth returns (leaf depth below n, ok). lo/hi bound every value
// in n's subtree (exclusive of infinities). isRoot relaxes the minimum
// value-count invariant, which only applies to non-root nodes.
func wellFormedDepth[V any](n *node[V], cmp Comparator[V], fanout int, lo, hi bound[V], isRoot bool) (int, bool) {
	if n == nil {
		return -1, false
	}
	k := n.keyEnd()
	if !isRoot && (k < 1 || k > fanout) {
		return -1, false
	}
	if isRoot && k > fanout {
		return -1, false
	}

	for i := 0; i < k; i++ {
		if i > 0 && cmp(n.values[i-1], n.values[i]) >= 0 {
			return -1, false
		}
		if !lo.isInfinite() && cmp(*lo.val, n.values[i]) >= 0 {
			return -1, false
		}
		if !hi.isInfinite() && cmp(n.values[i], *hi.val) >= 0 {
			return -1, false
		}
	}

	if n.isLeaf() {
		want := k
		if n.count != want {
			return -1, false
		}
		return 0, true
	}

	if len(n.children) != k+1 {
		return -1, false
	}

	total := k
	depth := -2
	for i, child := range n.children {
		childLo := lo
		if i > 0 {
			childLo = valueBound(n.values[i-1])
		}
		childHi := hi
		if i < k {
			childHi = valueBound(n.values[i])
		}
		d, ok := wellFormedDepth(child, cmp, fanout, childLo, childHi, false)
		if !ok {
			return -1, false
		}
		if depth == -2 {
			depth = d
		} else if d != depth {
			return -1, false
		}
		total += child.count
	}
	if n.count != total {
		return -1, false
	}
	return depth + 1, true
}

// IsWellFormedConcurrent is IsWellFormed with the root's immediate
// children checked concurrently, bounded by GOMAXPROCS via
// errgroup.Group.SetLimit. Each child is walked sequentially by its own
// goroutine: the fan-out is one level deep only, which avoids the
// deadlock a fully recursive fan-out risks once SetLimit is smaller than
// the tree's branching factor (a goroutine blocked in Wait for its
// children can starve the pool a sibling needs). Useful for the large
// trees property tests build, where a sequential walk of every node
// dominates test wall time.
func IsWellFormedConcurrent[V any](ctx context.Context, t Tree[V], cmp Comparator[V], fanout int) (bool, error) {
	root := t.root
	k := root.keyEnd()
	if k > fanout {
		return false, nil
	}
	for i := 1; i < k; i++ {
		if cmp(root.values[i-1], root.values[i]) >= 0 {
			return false, nil
		}
	}
	if root.isLeaf() {
		return root.count == k, nil
	}
	if len(root.children) != k+1 {
		return false, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	results := make([]bool, len(root.children))
	depths := make([]int, len(root.children))
	for idx, child := range root.children {
		idx, child := idx, child
		lo, hi := noBound[V](), noBound[V]()
		if idx > 0 {
			lo = valueBound(root.values[idx-1])
		}
		if idx < k {
			hi = valueBound(root.values[idx])
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}
		g.Go(func() error {
			d, ok := wellFormedDepth(child, cmp, fanout, lo, hi, false)
			results[idx], depths[idx] = ok, d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	total := k
	for i, ok := range results {
		if !ok {
			return false, nil
		}
		if depths[i] != depths[0] {
			return false, nil
		}
		total += root.children[i].count
	}
	return root.count == total, nil
}
