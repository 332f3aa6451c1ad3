// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hashkernel/posd/core/types"
)

func descWithFee(lockTime uint32, fee int64) *types.TxDesc {
	tx := types.NewTransaction()
	tx.LockTime = lockTime
	return &types.TxDesc{
		Tx:    types.NewTx(tx),
		Added: time.Unix(0, 0),
		Fee:   fee,
	}
}

func TestSelectPackagesOrdersByFeeRate(t *testing.T) {
	pool := NewMemPool()
	low := descWithFee(1, 100)
	high := descWithFee(2, 10000)
	pool.Add(low)
	pool.Add(high)

	policy := &Policy{MaxBlockWeight: 4000000, MaxSigOps: 80000}
	selected := SelectPackages(pool, policy)

	assert.Len(t, selected.Txs, 2)
	// the higher-feerate transaction must be picked first.
	assert.Equal(t, *high.Tx.Hash(), *selected.Txs[0].Hash())
	assert.Equal(t, low.Fee+high.Fee, selected.TotalFees)
}

func TestSelectPackagesRespectsWeightLimit(t *testing.T) {
	pool := NewMemPool()
	for i := uint32(0); i < 5; i++ {
		pool.Add(descWithFee(i+1, int64(1000+i)))
	}

	txWeight := descWithFee(0, 0).Tx.Tx.SerializeSize() * 4
	policy := &Policy{MaxBlockWeight: uint32(txWeight*2 + 10), MaxSigOps: 80000}
	selected := SelectPackages(pool, policy)

	assert.True(t, int(selected.Weight) <= int(policy.MaxBlockWeight))
	assert.True(t, len(selected.Txs) <= 2)
}

func TestSelectPackagesDropsBelowMinFeeRate(t *testing.T) {
	pool := NewMemPool()
	pool.Add(descWithFee(1, 0))

	policy := &Policy{MaxBlockWeight: 4000000, MaxSigOps: 80000, BlockMinFeeRate: 1000000}
	selected := SelectPackages(pool, policy)
	assert.Len(t, selected.Txs, 0)
}

func TestSelectPackagesIncludesAncestorBeforeChild(t *testing.T) {
	pool := NewMemPool()
	parentTx := types.NewTransaction()
	parentTx.LockTime = 1
	parentDesc := &types.TxDesc{Tx: types.NewTx(parentTx), Fee: 500}
	pool.Add(parentDesc)

	childTx := types.NewTransaction()
	childTx.LockTime = 2
	childTx.TxIn = append(childTx.TxIn, &types.TxInput{
		PreviousOut: types.TxOutPoint{Hash: *parentDesc.Tx.Hash(), OutIndex: 0},
	})
	childDesc := &types.TxDesc{Tx: types.NewTx(childTx), Fee: 5000}
	pool.Add(childDesc)

	policy := &Policy{MaxBlockWeight: 4000000, MaxSigOps: 80000}
	selected := SelectPackages(pool, policy)

	assert.Len(t, selected.Txs, 2)
	assert.Equal(t, *parentDesc.Tx.Hash(), *selected.Txs[0].Hash())
	assert.Equal(t, *childDesc.Tx.Hash(), *selected.Txs[1].Hash())
}
