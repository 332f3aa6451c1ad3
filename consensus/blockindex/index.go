// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockindex

import (
	"sync"

	"github.com/hashkernel/posd/common/hash"
)

// Index is the arena/slab of known block entries, indexed by hash, plus
// a sparse vector recording which of them sit on the active chain. The
// index never holds an owning pointer from a node back to the active
// chain; membership is looked up, not stored on the node.
type Index struct {
	mtx sync.RWMutex

	nodes map[hash.Hash]*Node

	// active is the active chain's node list by height; active[0] is
	// genesis. It is replaced wholesale on reorg, never mutated in
	// place, so a reader holding a snapshot never observes a torn read.
	active []*Node
}

// NewIndex returns an empty block index.
func NewIndex() *Index {
	return &Index{
		nodes: make(map[hash.Hash]*Node),
	}
}

// AddNode inserts n into the arena. It does not affect active-chain
// membership; call SetActiveChain to do that.
func (idx *Index) AddNode(n *Node) {
	idx.mtx.Lock()
	defer idx.mtx.Unlock()
	idx.nodes[n.Hash] = n
}

// Get looks up a node by hash. The bool result is false if h is unknown.
func (idx *Index) Get(h hash.Hash) (*Node, bool) {
	idx.mtx.RLock()
	defer idx.mtx.RUnlock()
	n, ok := idx.nodes[h]
	return n, ok
}

// HaveBlock reports whether h is present in the index.
func (idx *Index) HaveBlock(h hash.Hash) bool {
	_, ok := idx.Get(h)
	return ok
}

// ActiveTip returns the current active chain's tip, or nil if the chain
// is empty (no genesis accepted yet).
func (idx *Index) ActiveTip() *Node {
	idx.mtx.RLock()
	defer idx.mtx.RUnlock()
	if len(idx.active) == 0 {
		return nil
	}
	return idx.active[len(idx.active)-1]
}

// ActiveHeight returns the height of the active tip, or -1 if empty.
func (idx *Index) ActiveHeight() int64 {
	idx.mtx.RLock()
	defer idx.mtx.RUnlock()
	if len(idx.active) == 0 {
		return -1
	}
	return idx.active[len(idx.active)-1].Height
}

// ActiveAt returns the active-chain node at height, or nil if height is
// out of range.
func (idx *Index) ActiveAt(height int64) *Node {
	idx.mtx.RLock()
	defer idx.mtx.RUnlock()
	if height < 0 || height >= int64(len(idx.active)) {
		return nil
	}
	return idx.active[height]
}

// ActiveContains reports whether n sits on the active chain at its own
// height, i.e. is not on an orphaned side branch.
func (idx *Index) ActiveContains(n *Node) bool {
	if n == nil {
		return false
	}
	idx.mtx.RLock()
	defer idx.mtx.RUnlock()
	if n.Height < 0 || n.Height >= int64(len(idx.active)) {
		return false
	}
	return idx.active[n.Height].Hash.IsEqual(&n.Hash)
}

// ActiveNext returns the active-chain node immediately following n, or
// nil if n is the tip or not on the active chain.
func (idx *Index) ActiveNext(n *Node) *Node {
	if !idx.ActiveContains(n) {
		return nil
	}
	return idx.ActiveAt(n.Height + 1)
}

// SetActiveChain replaces the active chain wholesale, as happens after a
// reorg resolves the block with the greatest cumulative work. tip must
// already be present in the index.
func (idx *Index) SetActiveChain(tip *Node) {
	chain := make([]*Node, tip.Height+1)
	for n := tip; n != nil; n = n.Parent {
		chain[n.Height] = n
	}

	idx.mtx.Lock()
	defer idx.mtx.Unlock()
	idx.active = chain
}

// BestCandidate returns the node with the greatest cumulative WorkSum
// seen so far, the reorg target per the block-index's job of tracking
// every competing branch, not just the active one.
func (idx *Index) BestCandidate() *Node {
	idx.mtx.RLock()
	defer idx.mtx.RUnlock()

	var best *Node
	for _, n := range idx.nodes {
		if best == nil || n.WorkSum.Cmp(best.WorkSum) > 0 {
			best = n
		}
	}
	return best
}
