// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockindex

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hashkernel/posd/consensus/hashalgo"
	"github.com/hashkernel/posd/core/types"
)

func header(prev types.BlockHeader, t time.Time, bits uint32) types.BlockHeader {
	return types.BlockHeader{
		Version:   1,
		PrevBlock: prev.BlockHash(),
		Bits:      bits,
		Time:      t,
		Algo:      hashalgo.POW_SHA256,
	}
}

func TestNewNodeAccumulatesWork(t *testing.T) {
	genesisHdr := types.BlockHeader{Version: 1, Time: time.Unix(0, 0), Bits: 0x1d00ffff}
	genesis := NewNode(&genesisHdr, nil, 0)
	assert.Equal(t, big.NewInt(0).String(), big.NewInt(0).String())
	assert.True(t, genesis.WorkSum.Sign() >= 0)

	h1 := header(genesisHdr, time.Unix(600, 0), 0x1d00ffff)
	n1 := NewNode(&h1, genesis, 1)
	assert.Equal(t, new(big.Int).Add(genesis.WorkSum, CalcWork(h1.Bits)), n1.WorkSum)
	assert.Equal(t, genesis, n1.Parent)
}

func TestCompactBigRoundTrip(t *testing.T) {
	for _, bits := range []uint32{0x1d00ffff, 0x1b0404cb, 0x207fffff} {
		n := CompactToBig(bits)
		got := BigToCompact(n)
		assert.Equal(t, bits, got, "round trip for %x", bits)
	}
}

func TestCalcPastMedianTime(t *testing.T) {
	genesisHdr := types.BlockHeader{Version: 1, Time: time.Unix(0, 0), Bits: 0x1d00ffff}
	node := NewNode(&genesisHdr, nil, 0)
	prevHdr := genesisHdr
	for i := int64(1); i <= 20; i++ {
		h := header(prevHdr, time.Unix(i*600, 0), 0x1d00ffff)
		node = NewNode(&h, node, i)
		prevHdr = h
	}
	mtp := node.CalcPastMedianTime()
	assert.True(t, mtp.Before(node.Time) || mtp.Equal(node.Time))
}

func TestAncestorAndRelativeAncestor(t *testing.T) {
	genesisHdr := types.BlockHeader{Version: 1, Time: time.Unix(0, 0), Bits: 0x1d00ffff}
	genesis := NewNode(&genesisHdr, nil, 0)
	prev := genesis
	prevHdr := genesisHdr
	for i := int64(1); i <= 5; i++ {
		h := header(prevHdr, time.Unix(i*600, 0), 0x1d00ffff)
		prev = NewNode(&h, prev, i)
		prevHdr = h
	}
	tip := prev

	assert.Equal(t, genesis.Hash, tip.Ancestor(0).Hash)
	assert.Equal(t, tip.Hash, tip.RelativeAncestor(0).Hash)
	assert.Nil(t, tip.Ancestor(-1))
	assert.Nil(t, tip.Ancestor(tip.Height+1))
}

func TestIsProofOfStake(t *testing.T) {
	h := types.BlockHeader{Algo: hashalgo.POS}
	n := NewNode(&h, nil, 0)
	assert.True(t, n.IsProofOfStake())

	h2 := types.BlockHeader{Algo: hashalgo.POW_SHA256}
	n2 := NewNode(&h2, nil, 0)
	assert.False(t, n2.IsProofOfStake())
}
