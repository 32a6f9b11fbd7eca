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
	"sort"

	"github.com/sirupsen/logrus"
)

// log is the package-wide logger: a logrus logger at Warn level until a
// caller replaces it via SetLogger. Only depth-overflow aborts and quick-merge/general-path
// selection are ever logged; the hot paths (search, cursor advance) never
// touch it.
var log = logrus.New()

func init() {
	log.SetLevel(logrus.WarnLevel)
}

// SetLogger replaces the package logger, e.g. to route ptree's handful of
// log lines into an application's existing logrus instance.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log = l
	}
}

func sortedCopy[V any](in []V, cmp Comparator[V], sorted bool) []V {
	if sorted {
		return in
	}
	out := append([]V(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return cmp(out[i], out[j]) < 0 })
	return out
}

// collapseAdjacentDuplicates folds runs of equal keys within an already
// sorted incoming stream into one entry via rf, left to right (so for a run
// of three equal keys a,b,c it computes onMatch(onMatch(a,b),c)). Without
// an rf, duplicates within incoming are left alone and reach the tree as
// distinct entries, same as a plain insert. With a nil rf or fewer than two
// keys it returns keys itself; otherwise it returns a fresh slice.
func collapseAdjacentDuplicates[V any](keys []V, cmp Comparator[V], rf *ReplaceFunc[V]) []V {
	if rf == nil || len(keys) < 2 {
		return keys
	}
	out := make([]V, 0, len(keys))
	out = append(out, keys[0])
	for _, k := range keys[1:] {
		if cmp(out[len(out)-1], k) == 0 {
			out[len(out)-1] = rf.onMatch(out[len(out)-1], k)
			continue
		}
		out = append(out, k)
	}
	return out
}

// buildFromSortedStream is the general path shared by Build (large inputs)
// and Update: it inserts a sorted key stream into root (which may be the
// synthetic empty root Build uses) by walking the tree in key order,
// dispatching each key to the level owning its range.
func buildFromSortedStream[V any](cfg Config, root *node[V], cmp Comparator[V], keys []V, rf *ReplaceFunc[V], earlyTerminate func() bool) (*node[V], error) {
	cur := newRootLevel(root, cfg.Fanout)

	for _, key := range keys {
		if earlyTerminate != nil && earlyTerminate() {
			break
		}
		for {
			next, state, err := cur.update(key, rf, cmp)
			if err != nil {
				return nil, err
			}
			if state == consumed {
				break
			}
			cur = next
		}
	}

	root2, err := finalizeRoot(cur)
	if err != nil {
		return nil, err
	}
	return root2.toNode(), nil
}

// Build constructs a tree from any finite collection.
func Build[V any](cfg Config, source []V, cmp Comparator[V], sorted bool) (Tree[V], error) {
	keys := sortedCopy(source, cmp, sorted)

	if len(keys) < cfg.Fanout {
		return Tree[V]{root: newLeaf(append([]V(nil), keys...))}, nil
	}

	log.Debug("ptree: build via general path")
	root, err := buildFromSortedStream(cfg, emptyNode[V](), cmp, keys, nil, nil)
	if err != nil {
		return Tree[V]{}, err
	}
	return Tree[V]{root: root}, nil
}

// quickMergeThreshold is Q = min(F, 16) * 2: the combined existing+incoming
// size below which a linear merge beats the level-builder machinery.
func quickMergeThreshold(fanout int) int {
	q := fanout
	if q > 16 {
		q = 16
	}
	return q * 2
}

// quickMerge is the single-leaf fast path: a linear merge of the sorted
// incoming keys into the root leaf's values, bypassing the level machinery
// entirely.
func quickMerge[V any](cfg Config, root *node[V], cmp Comparator[V], keys []V, rf *ReplaceFunc[V]) *node[V] {
	existing := root.values
	merged := make([]V, 0, len(existing)+len(keys))
	ei := 0
	for _, key := range keys {
		j := search(cmp, key, existing, ei, len(existing))
		if j >= 0 {
			merged = append(merged, existing[ei:j]...)
			merged = append(merged, rf.onMatch(existing[j], key))
			ei = j + 1
		} else {
			ip := -(j + 1)
			merged = append(merged, existing[ei:ip]...)
			merged = append(merged, rf.onInsert(key))
			ei = ip
		}
	}
	merged = append(merged, existing[ei:]...)

	if len(merged) <= cfg.Fanout {
		return newLeaf(merged)
	}

	// Reachable only when F <= 16: then Q = 2F, and |root|+|incoming| < 2F
	// allows a merged result of up to 2F-1 > F values. For F >= 32 (the
	// default included), Q = 32 <= F and the merged leaf always fits.
	mid := len(merged) / 2
	left := newLeaf(append([]V(nil), merged[:mid]...))
	right := newLeaf(append([]V(nil), merged[mid+1:]...))
	return newBranch([]V{merged[mid]}, []*node[V]{left, right})
}

// Update merges a sorted or unsorted input stream of replacement/insertion
// keys into t in a single descending traversal. Unchanged subtrees are
// shared by reference with t.
func Update[V any](cfg Config, t Tree[V], cmp Comparator[V], incoming []V, sorted bool, rf *ReplaceFunc[V], earlyTerminate func() bool) (Tree[V], error) {
	if len(incoming) == 0 {
		return t, nil
	}

	keys := collapseAdjacentDuplicates(sortedCopy(incoming, cmp, sorted), cmp, rf)

	// An empty root still goes through buildFromSortedStream rather than
	// Build: Build has no earlyTerminate parameter, but Update does, and
	// must honor it even when starting from nothing.
	if t.root.keyEnd() == 0 && t.root.isLeaf() {
		log.Debug("ptree: update via general path (empty root)")
		root, err := buildFromSortedStream(cfg, t.root, cmp, keys, rf, earlyTerminate)
		if err != nil {
			return Tree[V]{}, err
		}
		return Tree[V]{root: root}, nil
	}

	if t.root.isLeaf() && t.root.keyEnd()+len(keys) < quickMergeThreshold(cfg.Fanout) {
		log.Debug("ptree: update via quick-merge")
		return Tree[V]{root: quickMerge(cfg, t.root, cmp, keys, rf)}, nil
	}

	log.Debug("ptree: update via general path")
	root, err := buildFromSortedStream(cfg, t.root, cmp, keys, rf, earlyTerminate)
	if err != nil {
		return Tree[V]{}, err
	}
	return Tree[V]{root: root}, nil
}
