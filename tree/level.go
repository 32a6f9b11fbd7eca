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

import "github.com/pkg/errors"

// updateState is the tri-state result of level.update: the incoming key was
// consumed here, or ownership moves to a child (descend), or ownership
// moves to the parent (ascend).
type updateState int

const (
	consumed updateState = iota
	descend
	ascend
)

// ReplaceFunc is the caller-supplied hook invoked on a key match
// (OnMatch) or a pure insertion (OnInsert). Both must be pure
// with respect to the comparator: the kept value must still compare equal
// to existing and to incoming. A nil ReplaceFunc (or a nil field) defaults
// to "incoming wins, unconditionally" for both forms, which gives ordinary
// upsert-into-a-set semantics.
type ReplaceFunc[V any] struct {
	OnMatch  func(existing, incoming V) V
	OnInsert func(incoming V) V
}

func (f *ReplaceFunc[V]) onMatch(existing, incoming V) V {
	if f == nil || f.OnMatch == nil {
		return incoming
	}
	return f.OnMatch(existing, incoming)
}

func (f *ReplaceFunc[V]) onInsert(incoming V) V {
	if f == nil || f.OnInsert == nil {
		return incoming
	}
	return f.OnInsert(incoming)
}

// level is one level of an in-progress build. Levels form a
// doubly-linked list (parent/child) that is lazily extended as the tree
// grows deeper and reused across the whole incoming-key stream: a level is
// only reset (rather than recreated) when the driver crosses into a new
// child subtree at that level.
type level[V any] struct {
	fanout int

	buildValues   []V
	buildChildren []*node[V]

	copyFrom     *node[V]
	copyValPos   int
	copyChildPos int

	leafLevel  bool
	upperBound bound[V]

	// synthetic marks a level created purely to hold an overflowed root
	// (or an overflowed synthetic level): it has no original node to
	// mirror, only children arriving via addExtraChild/finishChild.
	synthetic bool

	depth  int
	parent *level[V]
	child  *level[V]
}

func newRootLevel[V any](root *node[V], fanout int) *level[V] {
	l := &level[V]{fanout: fanout}
	l.reset(root, noBound[V](), 0)
	return l
}

// reset reinitializes a level to mirror a (possibly new) source node. It is
// called both when a level is first created and every time the driver
// descends into a new child range at that level.
func (l *level[V]) reset(copyFrom *node[V], upperBound bound[V], depth int) {
	l.buildValues = l.buildValues[:0]
	l.buildChildren = l.buildChildren[:0]
	l.copyFrom = copyFrom
	l.copyValPos = 0
	l.copyChildPos = 0
	l.leafLevel = copyFrom.isLeaf()
	l.upperBound = upperBound
	l.depth = depth
}

func (l *level[V]) parentLevel() (*level[V], error) {
	if l.parent == nil {
		if l.depth+1 > maxDepth(l.fanout) {
			log.Warnf("ptree: depth overflow at depth %d (fanout %d)", l.depth+1, l.fanout)
			return nil, errors.WithStack(ErrDepthOverflow)
		}
		l.parent = &level[V]{fanout: l.fanout, child: l}
		l.parent.reset(emptyNode[V](), noBound[V](), l.depth+1)
		// A freshly synthesized parent always holds children (it exists
		// only because a child level overflowed or ascended into it), even
		// though the empty placeholder node.isLeaf() reports true.
		l.parent.leafLevel = false
		l.parent.synthetic = true
	}
	return l.parent, nil
}

// descendChild hands ownership of the key down to the child owning range
// ip, WITHOUT yet advancing copyChildPos past it: the original child
// reference at copyChildPos is only considered consumed once the child
// level ascends and calls finishChild back on l (see finishChild).
func (l *level[V]) descendChild(ip int, cmp Comparator[V]) (*level[V], error) {
	if l.depth+1 > maxDepth(l.fanout) {
		log.Warnf("ptree: depth overflow at depth %d (fanout %d)", l.depth+1, l.fanout)
		return nil, errors.WithStack(ErrDepthOverflow)
	}
	childNode := l.copyFrom.children[l.copyChildPos]

	var ub bound[V]
	if ip < l.copyFrom.keyEnd() {
		ub = valueBound(l.copyFrom.values[ip])
	} else {
		ub = l.upperBound
	}

	if l.child == nil {
		l.child = &level[V]{fanout: l.fanout, parent: l}
	}
	l.child.reset(childNode, ub, l.depth+1)
	return l.child, nil
}

// ensureRoom flushes this level to its parent before an append would push
// it past the 1+2F scratch ceiling.
func (l *level[V]) ensureRoom() error {
	if len(l.buildValues) >= 1+2*l.fanout {
		return l.flush()
	}
	return nil
}

// flush is the "spill up" mechanism: the first F values (and, for a branch
// level, F+1 children) become a node handed to the parent via
// addExtraChild, and the remaining scratch shifts down by F+1 slots.
func (l *level[V]) flush() error {
	F := l.fanout
	child := l.buildFromRange(0, F)
	keyAbove := l.buildValues[F]

	parent, err := l.parentLevel()
	if err != nil {
		return err
	}
	if err := parent.addExtraChild(child, keyAbove); err != nil {
		return err
	}

	l.buildValues = append(l.buildValues[:0], l.buildValues[F+1:]...)
	if !l.leafLevel {
		l.buildChildren = append(l.buildChildren[:0], l.buildChildren[F+1:]...)
	}
	return nil
}

func (l *level[V]) copyValues(to int) error {
	for ; l.copyValPos < to; l.copyValPos++ {
		if err := l.ensureRoom(); err != nil {
			return err
		}
		l.buildValues = append(l.buildValues, l.copyFrom.values[l.copyValPos])
	}
	return nil
}

func (l *level[V]) copyChildren(to int) {
	l.buildChildren = append(l.buildChildren, l.copyFrom.children[l.copyChildPos:to]...)
	l.copyChildPos = to
}

func (l *level[V]) replaceNextValue(key V, rf *ReplaceFunc[V]) error {
	if err := l.ensureRoom(); err != nil {
		return err
	}
	existing := l.copyFrom.values[l.copyValPos]
	l.buildValues = append(l.buildValues, rf.onMatch(existing, key))
	l.copyValPos++
	return nil
}

func (l *level[V]) addNewValue(key V, rf *ReplaceFunc[V]) error {
	if err := l.ensureRoom(); err != nil {
		return err
	}
	l.buildValues = append(l.buildValues, rf.onInsert(key))
	return nil
}

func (l *level[V]) addExtraChild(child *node[V], keyAbove V) error {
	if err := l.ensureRoom(); err != nil {
		return err
	}
	l.buildValues = append(l.buildValues, keyAbove)
	l.buildChildren = append(l.buildChildren, child)
	return nil
}

func (l *level[V]) finishChild(child *node[V]) {
	l.buildChildren = append(l.buildChildren, child)
	l.copyChildPos++
}

// buildFromRange materializes an immutable node from a window of the
// scratch arrays: values[from:to], plus children[from:to+1] for a branch
// level.
func (l *level[V]) buildFromRange(from, to int) *node[V] {
	values := append([]V(nil), l.buildValues[from:to]...)
	if l.leafLevel {
		return newLeaf(values)
	}
	children := append([]*node[V](nil), l.buildChildren[from:to+1]...)
	return newBranch(values, children)
}

// ascend finalizes this level: kpos <= F yields a single node passed to the
// parent via finishChild; F < kpos <= 2F splits at the midpoint, the left
// half going up via addExtraChild and the right half via finishChild.
func (l *level[V]) ascend() (*level[V], error) {
	n := len(l.buildValues)
	parent, err := l.parentLevel()
	if err != nil {
		return nil, err
	}
	if n <= l.fanout {
		parent.finishChild(l.buildFromRange(0, n))
		return parent, nil
	}
	mid := n / 2
	left := l.buildFromRange(0, mid)
	right := l.buildFromRange(mid+1, n)
	if err := parent.addExtraChild(left, l.buildValues[mid]); err != nil {
		return nil, err
	}
	parent.finishChild(right)
	return parent, nil
}

// update dispatches the incoming key at this level: consumed as a value
// here, descended into an owned child, or ascended to the parent when the
// key falls outside this level's mirrored range.
func (l *level[V]) update(key V, rf *ReplaceFunc[V], cmp Comparator[V]) (*level[V], updateState, error) {
	keyEnd := l.copyFrom.keyEnd()
	i := search(cmp, key, l.copyFrom.values, l.copyValPos, keyEnd)

	owned := true
	if i == -(keyEnd+1) && !l.upperBound.below(cmp, key) {
		owned = false
	}

	if l.leafLevel {
		if !owned {
			if err := l.copyValues(keyEnd); err != nil {
				return nil, ascend, err
			}
			parent, err := l.ascend()
			return parent, ascend, err
		}
		if i >= 0 {
			if err := l.copyValues(i); err != nil {
				return nil, consumed, err
			}
			if err := l.replaceNextValue(key, rf); err != nil {
				return nil, consumed, err
			}
			return nil, consumed, nil
		}
		ip := -(i + 1)
		if err := l.copyValues(ip); err != nil {
			return nil, consumed, err
		}
		if err := l.addNewValue(key, rf); err != nil {
			return nil, consumed, err
		}
		return nil, consumed, nil
	}

	// branch
	if i >= 0 {
		if err := l.copyValues(i); err != nil {
			return nil, consumed, err
		}
		if err := l.replaceNextValue(key, rf); err != nil {
			return nil, consumed, err
		}
		l.copyChildren(i + 1)
		return nil, consumed, nil
	}

	ip := -(i + 1)
	if owned {
		if err := l.copyValues(ip); err != nil {
			return nil, descend, err
		}
		l.copyChildren(ip)
		child, err := l.descendChild(ip, cmp)
		return child, descend, err
	}

	if err := l.copyValues(keyEnd); err != nil {
		return nil, ascend, err
	}
	l.copyChildren(keyEnd + 1)
	parent, err := l.ascend()
	return parent, ascend, err
}

// flushRemainder copies whatever this level hasn't yet mirrored from its
// source node, without consuming any incoming key — used once, after the
// last incoming key, to close out the spine. This stands in for threading
// a +∞ sentinel key through update: since V has no universal +∞
// representation, the remainder is copied directly instead.
func (l *level[V]) flushRemainder() error {
	keyEnd := l.copyFrom.keyEnd()
	if err := l.copyValues(keyEnd); err != nil {
		return err
	}
	if !l.leafLevel {
		l.copyChildren(keyEnd + 1)
	}
	return nil
}

// finalizeRoot flushes the untouched
// remainder of every level still mirroring a real source node (closing out
// the spine cur sits on, level by level, up to the original root), then
// ascends further only if the result is still oversized — which may
// synthesize a brand new root wrapper above the original one.
func finalizeRoot[V any](cur *level[V]) (*level[V], error) {
	for {
		if err := cur.flushRemainder(); err != nil {
			return nil, err
		}
		if cur.parent == nil || cur.parent.synthetic {
			break
		}
		next, err := cur.ascend()
		if err != nil {
			return nil, err
		}
		cur = next
	}
	for len(cur.buildValues) > cur.fanout {
		next, err := cur.ascend()
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (l *level[V]) toNode() *node[V] {
	return l.buildFromRange(0, len(l.buildValues))
}
