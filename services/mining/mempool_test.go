// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hashkernel/posd/core/types"
)

func TestMemPoolAddAndHave(t *testing.T) {
	pool := NewMemPool()
	tx := types.NewTransaction()
	tx.LockTime = 7
	desc := &types.TxDesc{Tx: types.NewTx(tx), Fee: 10}
	pool.Add(desc)

	assert.True(t, pool.HaveTransaction(desc.Tx.Hash()))
	assert.Len(t, pool.MiningDescs(), 1)
}

func TestMemPoolRemove(t *testing.T) {
	pool := NewMemPool()
	tx := types.NewTransaction()
	tx.LockTime = 1
	desc := &types.TxDesc{Tx: types.NewTx(tx), Fee: 10}
	pool.Add(desc)
	pool.Remove(*desc.Tx.Hash())

	assert.False(t, pool.HaveTransaction(desc.Tx.Hash()))
	assert.Len(t, pool.MiningDescs(), 0)
}

func TestMemPoolTracksAncestorsAndDescendants(t *testing.T) {
	pool := NewMemPool()

	parentTx := types.NewTransaction()
	parentTx.LockTime = 1
	parent := &types.TxDesc{Tx: types.NewTx(parentTx), Fee: 1}
	pool.Add(parent)

	childTx := types.NewTransaction()
	childTx.LockTime = 2
	childTx.TxIn = append(childTx.TxIn, &types.TxInput{
		PreviousOut: types.TxOutPoint{Hash: *parent.Tx.Hash(), OutIndex: 0},
	})
	child := &types.TxDesc{Tx: types.NewTx(childTx), Fee: 2}
	pool.Add(child)

	ancestors := pool.Ancestors(child.Tx.Hash())
	assert.Contains(t, ancestors, *parent.Tx.Hash())

	descendants := pool.Descendants(parent.Tx.Hash())
	assert.Contains(t, descendants, *child.Tx.Hash())
}
