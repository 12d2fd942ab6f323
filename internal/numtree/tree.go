// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package numtree

import (
	"sync"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
	"github.com/RediSearch/RediSearch-sub004/internal/invindex"
)

// Defaults mirror typical posting-block thresholds elsewhere in this
// module (invindex's DefaultBlockEntryThreshold): small enough to exercise
// splitting in tests, large enough not to split on every insert.
const (
	DefaultSplitThreshold     = 128
	DefaultSplitCardinality   = 32
	DefaultRebalanceThreshold = 1
)

// Options configures a NumericRangeTree at construction.
type Options struct {
	Flags              invindex.Flags
	MultiValue         bool
	SplitThreshold     int
	SplitCardinality   float64
	RebalanceThreshold int
}

func (o Options) withDefaults() Options {
	if o.SplitThreshold <= 0 {
		o.SplitThreshold = DefaultSplitThreshold
	}
	if o.SplitCardinality <= 0 {
		o.SplitCardinality = DefaultSplitCardinality
	}
	if o.RebalanceThreshold <= 0 {
		o.RebalanceThreshold = DefaultRebalanceThreshold
	}
	if o.Flags == 0 {
		o.Flags = invindex.StoreNumeric
	}
	if o.MultiValue {
		o.Flags |= invindex.MultiValue
	}
	return o
}

// AddResult reports the effect of one Insert call (§4.4 step 6).
type AddResult struct {
	SizeDelta      int64
	NumRecords     int
	Changed        bool
	NumRangesDelta int
	NumLeavesDelta int
}

// NumericRangeTree is a split-on-cardinality binary tree over (doc_id,
// value) pairs (§4.4), arena-backed per the teacher's index-over-pointer
// preference (§9).
type NumericRangeTree struct {
	mu sync.RWMutex

	opts Options

	arena []node
	free  []NodeIndex
	root  NodeIndex

	lastDocID base.DocId
	haveAny   bool
	revision  uint64
	numLeaves int
	memUsage  int64
}

// New constructs an empty tree.
func New(opts Options) (*NumericRangeTree, error) {
	opts = opts.withDefaults()
	t := &NumericRangeTree{opts: opts, root: nilNode}
	rootNode, err := newLeafNode(nilNode, opts.Flags)
	if err != nil {
		return nil, err
	}
	t.root = t.alloc(rootNode)
	t.numLeaves = 1
	return t, nil
}

func (t *NumericRangeTree) alloc(n node) NodeIndex {
	if len(t.free) > 0 {
		idx := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.arena[idx] = n
		return idx
	}
	t.arena = append(t.arena, n)
	return NodeIndex(len(t.arena) - 1)
}

func (t *NumericRangeTree) at(i NodeIndex) *node { return &t.arena[i] }

// Revision returns the tree's mutation counter, bumped on every successful
// Insert (§4.4 step 6).
func (t *NumericRangeTree) Revision() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.revision
}

// NumLeaves returns the number of leaf ranges currently in the tree.
func (t *NumericRangeTree) NumLeaves() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.numLeaves
}

// MemUsage returns the tree's running memory-usage estimate, monotonic
// across inserts per §8's testable property.
func (t *NumericRangeTree) MemUsage() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.memUsage
}

// descendPath walks from root to the leaf that should hold value,
// returning every node index visited (root first, leaf last).
func (t *NumericRangeTree) descendPath(value float64) []NodeIndex {
	path := make([]NodeIndex, 0, 8)
	cur := t.root
	for {
		path = append(path, cur)
		n := t.at(cur)
		if n.isLeaf() {
			return path
		}
		if value <= n.splitValue {
			cur = n.left
		} else {
			cur = n.right
		}
	}
}

// recordSizeEstimate is a rough per-entry byte-cost estimate, enough to
// keep MemUsage strictly monotonic without modelling the codec's exact
// variable-width encoding.
func recordSizeEstimate() int64 { return 24 }

// Insert adds (docID, value) to the tree (§4.4 Insert steps 1-6).
func (t *NumericRangeTree) Insert(docID base.DocId, value float64) (AddResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.haveAny && docID <= t.lastDocID && !t.opts.MultiValue {
		return AddResult{Changed: false}, nil
	}

	path := t.descendPath(value)
	leafIdx := path[len(path)-1]
	leaf := t.at(leafIdx)
	rng := leaf.rangeData

	if _, err := rng.InvIdx.AddRecord(invindex.Record{DocID: docID, Value: value}, 0, value); err != nil {
		return AddResult{}, err
	}
	if rng.Count == 0 || value < rng.Min {
		rng.Min = value
	}
	if rng.Count == 0 || value > rng.Max {
		rng.Max = value
	}
	rng.Count++
	rng.hll.Add(value)

	t.lastDocID = docID
	t.haveAny = true
	t.revision++
	t.memUsage += recordSizeEstimate()

	result := AddResult{SizeDelta: recordSizeEstimate(), NumRecords: 1, Changed: true}

	if int(rng.Count) > t.opts.SplitThreshold && rng.hll.Estimate() > t.opts.SplitCardinality {
		if err := t.splitLeaf(leafIdx); err != nil {
			return AddResult{}, err
		}
		result.NumRangesDelta = 1
		result.NumLeavesDelta = 1
		t.rebalanceAlongPath(path[:len(path)-1])
	}

	return result, nil
}

// splitLeaf converts the leaf at idx into an internal node with two fresh
// leaf children, redistributing its entries by value around the midpoint
// of its observed [Min, Max] window (§4.4 step 4's "split value (median
// estimate from HLL)" — see DESIGN.md's Open Question decision: an HLL
// sketch cannot itself answer order-statistic queries, so this module uses
// the leaf's min/max midpoint, a deterministic stand-in with the same
// role).
func (t *NumericRangeTree) splitLeaf(idx NodeIndex) error {
	leaf := t.at(idx)
	rng := leaf.rangeData
	mid := rng.Min + (rng.Max-rng.Min)/2

	leftNode, err := newLeafNode(idx, t.opts.Flags)
	if err != nil {
		return err
	}
	rightNode, err := newLeafNode(idx, t.opts.Flags)
	if err != nil {
		return err
	}
	leftIdx := t.alloc(leftNode)
	rightIdx := t.alloc(rightNode)

	r := invindex.NewReader(rng.InvIdx)
	var rec invindex.Record
	for {
		ok, err := r.NextRecord(&rec)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		dest := t.at(rightIdx).rangeData
		if rec.Value <= mid {
			dest = t.at(leftIdx).rangeData
		}
		if _, err := dest.InvIdx.AddRecord(rec, 0, rec.Value); err != nil {
			return err
		}
		dest.Count++
		dest.hll.Add(rec.Value)
		if dest.Count == 1 || rec.Value < dest.Min {
			dest.Min = rec.Value
		}
		if dest.Count == 1 || rec.Value > dest.Max {
			dest.Max = rec.Value
		}
	}

	*leaf = node{
		kind:       internalKind,
		parent:     leaf.parent,
		depth:      2,
		splitValue: mid,
		left:       leftIdx,
		right:      rightIdx,
	}
	t.numLeaves++ // one leaf became two: net +1
	return nil
}

// depthOf returns 0 for nilNode, the node's cached depth otherwise.
func (t *NumericRangeTree) depthOf(i NodeIndex) int {
	if i == nilNode {
		return 0
	}
	return t.at(i).depth
}

// rebalanceAlongPath walks path (root-first, nearest-to-the-split-leaf
// last) from the end backwards, recomputing depths and rotating any node
// whose children's depths differ by more than RebalanceThreshold (§4.4
// step 5).
func (t *NumericRangeTree) rebalanceAlongPath(path []NodeIndex) {
	for i := len(path) - 1; i >= 0; i-- {
		idx := path[i]
		n := t.at(idx)
		if n.isLeaf() {
			continue
		}
		n.depth = 1 + maxInt(t.depthOf(n.left), t.depthOf(n.right))

		balance := t.depthOf(n.left) - t.depthOf(n.right)
		if balance > t.opts.RebalanceThreshold {
			leftChild := t.at(n.left)
			if t.depthOf(leftChild.right) > t.depthOf(leftChild.left) {
				t.rotateLeft(n.left)
			}
			t.rotateRight(idx)
		} else if -balance > t.opts.RebalanceThreshold {
			rightChild := t.at(n.right)
			if t.depthOf(rightChild.left) > t.depthOf(rightChild.right) {
				t.rotateRight(n.right)
			}
			t.rotateLeft(idx)
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// setChild rewrites parent's pointer to oldChild so it points at
// newChild, or updates t.root when parent is nilNode.
func (t *NumericRangeTree) setChild(parent, oldChild, newChild NodeIndex) {
	if parent == nilNode {
		t.root = newChild
		return
	}
	p := t.at(parent)
	if p.left == oldChild {
		p.left = newChild
	} else {
		p.right = newChild
	}
}

// rotateLeft performs a standard AVL left rotation around idx: idx's right
// child becomes idx's parent, idx becomes that child's left child.
func (t *NumericRangeTree) rotateLeft(idx NodeIndex) {
	n := t.at(idx)
	pivot := t.at(n.right)
	pivotIdx := n.right

	n.right = pivot.left
	if pivot.left != nilNode {
		t.at(pivot.left).parent = idx
	}

	pivot.parent = n.parent
	t.setChild(n.parent, idx, pivotIdx)

	pivot.left = idx
	n.parent = pivotIdx

	n.depth = 1 + maxInt(t.depthOf(n.left), t.depthOf(n.right))
	pivot.depth = 1 + maxInt(t.depthOf(pivot.left), t.depthOf(pivot.right))
}

// rotateRight performs a standard AVL right rotation around idx: idx's
// left child becomes idx's parent, idx becomes that child's right child.
func (t *NumericRangeTree) rotateRight(idx NodeIndex) {
	n := t.at(idx)
	pivot := t.at(n.left)
	pivotIdx := n.left

	n.left = pivot.right
	if pivot.right != nilNode {
		t.at(pivot.right).parent = idx
	}

	pivot.parent = n.parent
	t.setChild(n.parent, idx, pivotIdx)

	pivot.right = idx
	n.parent = pivotIdx

	n.depth = 1 + maxInt(t.depthOf(n.left), t.depthOf(n.right))
	pivot.depth = 1 + maxInt(t.depthOf(pivot.left), t.depthOf(pivot.right))
}

// Find returns every leaf NumericRange overlapping [min, max], pruning
// subtrees whose split_value excludes the window entirely (§4.4 Find).
func (t *NumericRangeTree) Find(min, max float64, minIncl, maxIncl bool) []*NumericRange {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []*NumericRange
	if t.root == nilNode {
		return out
	}
	stack := []NodeIndex{t.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.at(idx)
		if n.isLeaf() {
			rng := n.rangeData
			if rng.Count == 0 {
				continue
			}
			if rangesOverlap(rng.Min, rng.Max, min, max, minIncl, maxIncl) {
				out = append(out, rng)
			}
			continue
		}
		// Left holds values <= splitValue, right holds values > splitValue.
		// Over-inclusion is harmless here: every candidate leaf is checked
		// exactly against the window via rangesOverlap above, so pruning
		// only needs to never skip a subtree that could contain a match.
		if min <= n.splitValue {
			stack = append(stack, n.left)
		}
		if max > n.splitValue {
			stack = append(stack, n.right)
		}
	}
	return out
}

// rangesOverlap reports whether [rMin, rMax] intersects the query window
// [qMin, qMax] under the given inclusivity flags.
func rangesOverlap(rMin, rMax, qMin, qMax float64, qMinIncl, qMaxIncl bool) bool {
	if qMaxIncl {
		if rMin > qMax {
			return false
		}
	} else if rMin >= qMax {
		return false
	}
	if qMinIncl {
		if rMax < qMin {
			return false
		}
	} else if rMax <= qMin {
		return false
	}
	return true
}

// TrimEmptyLeaves removes leaves whose inverted index is empty (post-GC,
// §4.4), collapsing any internal node left with a single child into that
// child. Returns the number of leaves removed.
func (t *NumericRangeTree) TrimEmptyLeaves() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for {
		idx, ok := t.findEmptyLeaf(t.root)
		if !ok {
			break
		}
		t.removeLeaf(idx)
		removed++
	}
	return removed
}

func (t *NumericRangeTree) findEmptyLeaf(idx NodeIndex) (NodeIndex, bool) {
	if idx == nilNode {
		return nilNode, false
	}
	n := t.at(idx)
	if n.isLeaf() {
		if n.rangeData.InvIdx.UniqueDocs() == 0 && t.numLeaves > 1 {
			return idx, true
		}
		return nilNode, false
	}
	if found, ok := t.findEmptyLeaf(n.left); ok {
		return found, ok
	}
	return t.findEmptyLeaf(n.right)
}

// removeLeaf deletes the leaf at idx and collapses its parent (which then
// has exactly one remaining child) into that sibling.
func (t *NumericRangeTree) removeLeaf(idx NodeIndex) {
	n := t.at(idx)
	parentIdx := n.parent

	if parentIdx == nilNode {
		// Sole node in the tree; leave it as an empty leaf rather than
		// removing the root entirely. findEmptyLeaf never returns this
		// case (it requires numLeaves > 1), so this is unreachable in
		// practice; kept as a defensive no-op.
		return
	}
	t.free = append(t.free, idx)
	t.numLeaves--
	parent := t.at(parentIdx)
	var sibling NodeIndex
	if parent.left == idx {
		sibling = parent.right
	} else {
		sibling = parent.left
	}
	grandparent := parent.parent
	t.at(sibling).parent = grandparent
	t.setChild(grandparent, parentIdx, sibling)
	t.free = append(t.free, parentIdx)

	// Recompute depths from the sibling's new parent upward.
	cur := grandparent
	for cur != nilNode {
		cn := t.at(cur)
		cn.depth = 1 + maxInt(t.depthOf(cn.left), t.depthOf(cn.right))
		cur = cn.parent
	}
}
