// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"sync"
	"time"

	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/core/types"
)

// MemPool is a minimal in-memory TxSource: a flat map of pending
// transactions plus the ancestor/descendant edges the package-selection
// algorithm needs. It does not itself validate transactions; callers
// add only transactions that have already passed policy/consensus checks.
type MemPool struct {
	mtx sync.RWMutex

	txs         map[hash.Hash]*types.TxDesc
	ancestors   map[hash.Hash]map[hash.Hash]struct{}
	descendants map[hash.Hash]map[hash.Hash]struct{}
	lastUpdated time.Time
}

// NewMemPool returns an empty pool.
func NewMemPool() *MemPool {
	return &MemPool{
		txs:         make(map[hash.Hash]*types.TxDesc),
		ancestors:   make(map[hash.Hash]map[hash.Hash]struct{}),
		descendants: make(map[hash.Hash]map[hash.Hash]struct{}),
	}
}

// Add inserts desc into the pool, wiring it to any already-known parents
// referenced by its inputs.
func (mp *MemPool) Add(desc *types.TxDesc) {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	h := *desc.Tx.Hash()
	mp.txs[h] = desc
	mp.lastUpdated = time.Now()

	ancestorSet := make(map[hash.Hash]struct{})
	for _, in := range desc.Tx.Tx.TxIn {
		parent := in.PreviousOut.Hash
		if _, ok := mp.txs[parent]; !ok {
			continue
		}
		ancestorSet[parent] = struct{}{}
		for a := range mp.ancestors[parent] {
			ancestorSet[a] = struct{}{}
		}
		if mp.descendants[parent] == nil {
			mp.descendants[parent] = make(map[hash.Hash]struct{})
		}
		mp.descendants[parent][h] = struct{}{}
	}
	mp.ancestors[h] = ancestorSet
}

// Remove drops a transaction from the pool, e.g. once it has been mined.
func (mp *MemPool) Remove(h hash.Hash) {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()
	delete(mp.txs, h)
	delete(mp.ancestors, h)
	delete(mp.descendants, h)
	mp.lastUpdated = time.Now()
}

func (mp *MemPool) LastUpdated() time.Time {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	return mp.lastUpdated
}

func (mp *MemPool) MiningDescs() []*types.TxDesc {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	out := make([]*types.TxDesc, 0, len(mp.txs))
	for _, d := range mp.txs {
		out = append(out, d)
	}
	return out
}

func (mp *MemPool) HaveTransaction(h *hash.Hash) bool {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	_, ok := mp.txs[*h]
	return ok
}

func (mp *MemPool) Ancestors(h *hash.Hash) []hash.Hash {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	set := mp.ancestors[*h]
	out := make([]hash.Hash, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	return out
}

func (mp *MemPool) Descendants(h *hash.Hash) []hash.Hash {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	set := mp.descendants[*h]
	out := make([]hash.Hash, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	return out
}
