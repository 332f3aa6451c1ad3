// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockindex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hashkernel/posd/consensus/hashalgo"
	"github.com/hashkernel/posd/core/types"
)

func chain(n int) []*Node {
	genesisHdr := types.BlockHeader{Version: 1, Time: time.Unix(0, 0), Bits: 0x1d00ffff, Algo: hashalgo.POW_SHA256}
	genesis := NewNode(&genesisHdr, nil, 0)
	nodes := []*Node{genesis}
	prevHdr := genesisHdr
	prev := genesis
	for i := 1; i < n; i++ {
		h := header(prevHdr, time.Unix(int64(i)*600, 0), 0x1d00ffff)
		node := NewNode(&h, prev, int64(i))
		nodes = append(nodes, node)
		prev = node
		prevHdr = h
	}
	return nodes
}

func TestIndexActiveChain(t *testing.T) {
	idx := NewIndex()
	nodes := chain(5)
	for _, n := range nodes {
		idx.AddNode(n)
	}
	tip := nodes[len(nodes)-1]
	idx.SetActiveChain(tip)

	assert.Equal(t, tip.Hash, idx.ActiveTip().Hash)
	assert.Equal(t, tip.Height, idx.ActiveHeight())
	for _, n := range nodes {
		assert.True(t, idx.ActiveContains(n))
		assert.Equal(t, n.Hash, idx.ActiveAt(n.Height).Hash)
	}
	assert.Nil(t, idx.ActiveNext(tip))
	assert.Equal(t, nodes[1].Hash, idx.ActiveNext(nodes[0]).Hash)
}

func TestIndexHaveBlockAndGet(t *testing.T) {
	idx := NewIndex()
	nodes := chain(3)
	for _, n := range nodes {
		idx.AddNode(n)
	}
	assert.True(t, idx.HaveBlock(nodes[1].Hash))
	got, ok := idx.Get(nodes[1].Hash)
	assert.True(t, ok)
	assert.Equal(t, nodes[1].Height, got.Height)
}

func TestBestCandidatePicksGreatestWork(t *testing.T) {
	idx := NewIndex()
	main := chain(4)
	for _, n := range main {
		idx.AddNode(n)
	}
	// a shorter, lower-work fork off genesis
	fork1Hdr := header(types.BlockHeader{Version: 1, Time: time.Unix(0, 0), Bits: 0x1d00ffff}, time.Unix(1000, 0), 0x1d00ffff)
	fork1 := NewNode(&fork1Hdr, main[0], 1)
	idx.AddNode(fork1)

	best := idx.BestCandidate()
	assert.Equal(t, main[len(main)-1].Hash, best.Hash)
}
