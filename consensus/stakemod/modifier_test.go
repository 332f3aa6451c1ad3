// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stakemod

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/consensus/blockindex"
	"github.com/hashkernel/posd/consensus/hashalgo"
	"github.com/hashkernel/posd/consensus/params"
	"github.com/hashkernel/posd/core/types"
)

func testParams(t *testing.T) *params.Params {
	p, err := params.Select(params.MainNet)
	assert.NoError(t, err)
	pCopy := *p
	return &pCopy
}

func TestSelectionIntervalIsPositive(t *testing.T) {
	p := testParams(t)
	assert.True(t, SelectionInterval(p) > 0)
}

func TestSectionMonotonic(t *testing.T) {
	// section(s) grows with s: later selection rounds get a wider time
	// window, matching the geometric weighting in the spec's formula.
	var prev int64
	for s := 0; s <= 63; s++ {
		v := section(100000, 3, s)
		assert.True(t, v >= prev, "section must be non-decreasing at s=%d", s)
		prev = v
	}
}

func buildChain(n int, algo hashalgo.Algo) []*blockindex.Node {
	genesisHdr := types.BlockHeader{Version: 1, Time: time.Unix(0, 0), Bits: 0x1d00ffff, Algo: algo}
	genesis := blockindex.NewNode(&genesisHdr, nil, 0)
	genesis.GeneratedStakeModifier = true
	genesis.StakeModifier = SentinelModifier
	nodes := []*blockindex.Node{genesis}
	prev := genesis
	prevHdr := genesisHdr
	for i := 1; i < n; i++ {
		h := types.BlockHeader{
			Version:   1,
			PrevBlock: prevHdr.BlockHash(),
			Time:      time.Unix(int64(i)*600, 0),
			Bits:      0x1d00ffff,
			Algo:      algo,
		}
		node := blockindex.NewNode(&h, prev, int64(i))
		nodes = append(nodes, node)
		prev = node
		prevHdr = h
	}
	return nodes
}

func TestNextSentinelAtGenesisSuccessor(t *testing.T) {
	p := testParams(t)
	nodes := buildChain(1, hashalgo.POW_SHA256)
	modifier, generated, err := Next(p, nil, nodes[0], 600)
	assert.NoError(t, err)
	assert.True(t, generated)
	assert.Equal(t, SentinelModifier, modifier)
}

func TestNextSentinelOnRegtest(t *testing.T) {
	p := testParams(t)
	p.Net = params.RegNet
	nodes := buildChain(2, hashalgo.POW_SHA256)
	modifier, generated, err := Next(p, nil, nodes[1], 1200)
	assert.NoError(t, err)
	assert.True(t, generated)
	assert.Equal(t, SentinelModifier, modifier)
}

func TestEntropyBitPostUpgradeUsesBlockHash(t *testing.T) {
	p := testParams(t)
	blockHash := hash.Hash{}
	blockHash[0] = 0x01
	bit := EntropyBit(p, p.UpgradeBlockVersion[1], blockHash, nil)
	assert.Equal(t, uint8(1), bit)

	blockHash[0] = 0x02
	bit = EntropyBit(p, p.UpgradeBlockVersion[1], blockHash, nil)
	assert.Equal(t, uint8(0), bit)
}

func TestEntropyBitPreUpgradeUsesSignatureHash160(t *testing.T) {
	p := testParams(t)
	sig := []byte("a test coinstake signature, long enough to hash")
	bit := EntropyBit(p, p.UpgradeBlockVersion[0], hash.Hash{}, sig)
	assert.True(t, bit == 0 || bit == 1)
}

func TestCheckCheckpointNoOpWithoutRegisteredCheckpoint(t *testing.T) {
	p := testParams(t)
	nodes := buildChain(1, hashalgo.POW_SHA256)
	sum, err := CheckCheckpoint(p, nodes[0], 0, 0)
	assert.NoError(t, err)
	assert.NotZero(t, sum)
}

func TestCheckCheckpointDetectsMismatch(t *testing.T) {
	p := testParams(t)
	nodes := buildChain(1, hashalgo.POW_SHA256)
	p.ModifierCheckpoints = []params.ModifierCheckpoint{
		{Height: 0, Checksum: 0xdeadbeef},
	}
	_, err := CheckCheckpoint(p, nodes[0], 0, 0)
	assert.Equal(t, ErrCheckpointMismatch, err)
}

func TestCheckCheckpointAcceptsMatchingChecksum(t *testing.T) {
	p := testParams(t)
	nodes := buildChain(1, hashalgo.POW_SHA256)
	want, err := CheckCheckpoint(p, nodes[0], 0, 0)
	assert.NoError(t, err)

	p.ModifierCheckpoints = []params.ModifierCheckpoint{
		{Height: 0, Checksum: want},
	}
	got, err := CheckCheckpoint(p, nodes[0], 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}
