// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/consensus/blockindex"
	"github.com/hashkernel/posd/consensus/params"
	"github.com/hashkernel/posd/core/types"
)

func testAssemblerParams(t *testing.T) *params.Params {
	p, err := params.Select(params.MainNet)
	assert.NoError(t, err)
	pCopy := *p
	return &pCopy
}

func TestCreateNewBlockGenesisPoW(t *testing.T) {
	p := testAssemblerParams(t)
	idx := blockindex.NewIndex()
	pool := NewMemPool()
	subsidy := params.NewSubsidyCache(p)
	policy := &Policy{MaxBlockWeight: 4000000, MaxSigOps: 80000}

	a := NewAssembler(p, idx, pool, policy, subsidy, nil, []byte{0x01})
	tmpl, err := a.CreateNewBlock()
	assert.NoError(t, err)
	assert.NotNil(t, tmpl)
	assert.Equal(t, int64(0), tmpl.Height)
	assert.False(t, tmpl.PoSCancelled)
	assert.Len(t, tmpl.Block.Transactions, 1)
	assert.True(t, int64(tmpl.Block.Transactions[0].TxOut[0].Amount) > 0)
}

func TestCreateNewBlockWithoutWalletNeverGoesPoS(t *testing.T) {
	p := testAssemblerParams(t)
	idx := blockindex.NewIndex()
	pool := NewMemPool()
	subsidy := params.NewSubsidyCache(p)
	policy := &Policy{MaxBlockWeight: 4000000, MaxSigOps: 80000}

	// a nil wallet must never produce a coinstake, regardless of network.
	a := NewAssembler(p, idx, pool, policy, subsidy, nil, nil)
	tmpl, err := a.CreateNewBlock()
	assert.NoError(t, err)
	assert.False(t, tmpl.PoSCancelled)
	assert.Len(t, tmpl.Block.Transactions, 1)
}

func TestAppendCScriptIntRoundTripsHeight(t *testing.T) {
	for _, h := range []int64{0, 1, 127, 128, 255, 256, 70000} {
		buf := appendCScriptInt(nil, h)
		assert.True(t, len(buf) > 0, "height %d", h)

		// buf is a length byte followed by that many little-endian bytes.
		n := int(buf[0])
		assert.Len(t, buf, 1+n, "height %d", h)
		var got int64
		for i := n - 1; i >= 0; i-- {
			got = got<<8 | int64(buf[1+i])
		}
		assert.Equal(t, h, got, "height %d", h)
	}
}

func TestCanonicalSortIsDeterministic(t *testing.T) {
	a := types.NewTx(types.NewTransaction())
	bTx := types.NewTransaction()
	bTx.LockTime = 1
	b := types.NewTx(bTx)

	first := canonicalSort([]*types.Tx{a, b})
	second := canonicalSort([]*types.Tx{b, a})
	assert.Equal(t, *first[0].Hash(), *second[0].Hash())
	assert.Equal(t, *first[1].Hash(), *second[1].Hash())
}

// TestCanonicalSortKeepsAncestorsBeforeDescendants builds many independent
// parent/child pairs, feeds them in shuffled (child-first) order, and
// checks every parent still lands before its child: a pure hash sort would
// invert whichever pair happens to have a lower-hash child, which is what
// this guards against.
func TestCanonicalSortKeepsAncestorsBeforeDescendants(t *testing.T) {
	const pairs = 20
	var txs []*types.Tx
	var parents, children []*types.Tx

	for i := uint32(0); i < pairs; i++ {
		parentTx := types.NewTransaction()
		parentTx.LockTime = i*2 + 1
		parent := types.NewTx(parentTx)

		childTx := types.NewTransaction()
		childTx.LockTime = i*2 + 2
		childTx.TxIn = append(childTx.TxIn, &types.TxInput{
			PreviousOut: types.TxOutPoint{Hash: *parent.Hash(), OutIndex: 0},
		})
		child := types.NewTx(childTx)

		parents = append(parents, parent)
		children = append(children, child)
		// child pushed ahead of its parent in the input slice, the
		// ordering a hash-only sort would be most likely to preserve.
		txs = append(txs, child, parent)
	}

	out := canonicalSort(txs)
	assert.Len(t, out, pairs*2)

	pos := make(map[hash.Hash]int, len(out))
	for i, tx := range out {
		pos[*tx.Hash()] = i
	}
	for i := range parents {
		assert.True(t, pos[*parents[i].Hash()] < pos[*children[i].Hash()],
			"pair %d: parent must appear before child", i)
	}
}
