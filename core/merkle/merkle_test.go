// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/core/types"
)

func tx(lockTime uint32) *types.Transaction {
	t := types.NewTransaction()
	t.LockTime = lockTime
	return t
}

func TestRootEmpty(t *testing.T) {
	assert.Equal(t, hash.Hash{}, Root(nil))
}

func TestRootSingleTxEqualsItsHash(t *testing.T) {
	txs := []*types.Transaction{tx(1)}
	assert.Equal(t, txs[0].TxHash(), Root(txs))
}

func TestRootDeterministicAndOrderSensitive(t *testing.T) {
	a, b, c := tx(1), tx(2), tx(3)
	root1 := Root([]*types.Transaction{a, b, c})
	root2 := Root([]*types.Transaction{a, b, c})
	assert.Equal(t, root1, root2)

	rootReordered := Root([]*types.Transaction{a, c, b})
	assert.NotEqual(t, root1, rootReordered)
}

func TestRootOddCountDuplicatesLastNode(t *testing.T) {
	a, b, c := tx(1), tx(2), tx(3)
	root3 := Root([]*types.Transaction{a, b, c})
	root4 := Root([]*types.Transaction{a, b, c, c})
	assert.Equal(t, root3, root4)
}

func TestBuildTreeSize(t *testing.T) {
	txs := []*types.Transaction{tx(1), tx(2), tx(3), tx(4), tx(5)}
	tree := BuildTree(txs)
	// 5 leaves round up to 8, tree has 8*2-1 = 15 slots.
	assert.Len(t, tree, 15)
}
