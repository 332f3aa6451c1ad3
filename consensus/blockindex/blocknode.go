// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockindex is the Block Index: an arena of block entries
// joined by single-parent back-pointers, plus a sparse active-chain
// vector maintained by an external chain manager. The kernel only reads
// active-chain membership; it never writes it.
package blockindex

import (
	"math/big"
	"time"

	"github.com/hashkernel/posd/common"
	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/consensus/hashalgo"
	"github.com/hashkernel/posd/core/types"
)

// Node is one entry of the block index: the header contents plus the
// cached stake-modifier fields the consensus engine derives for it.
// Every node except genesis has a Parent present in the index.
type Node struct {
	Parent *Node

	Hash     hash.Hash
	Height   int64
	Version  uint32
	Bits     uint32
	Time     time.Time
	Nonce    uint64
	Algo     hashalgo.Algo
	PrevHash hash.Hash

	WorkSum *big.Int

	// StakeModifier, GeneratedStakeModifier and StakeEntropyBit are
	// written once by the validator and read many times thereafter;
	// see the Stake Modifier Engine's Next-Modifier Computation.
	StakeModifier          uint64
	GeneratedStakeModifier bool
	StakeEntropyBit        uint8

	// ProofHash is the stake-hash (PoS) or PoW hash verified against
	// Bits when this block was accepted.
	ProofHash hash.Hash

	// Signature carries the coinstake signature bytes for a PoS node;
	// the entropy-bit v0.3 fallback hashes this field.
	Signature []byte
}

// NewNode builds an index entry for header, linking it to parent. parent
// may be nil only for genesis.
func NewNode(header *types.BlockHeader, parent *Node, height int64) *Node {
	n := &Node{
		Parent:   parent,
		Hash:     header.BlockHash(),
		Height:   height,
		Version:  header.Version,
		Bits:     header.Bits,
		Time:     header.Time,
		Nonce:    header.Nonce,
		Algo:     header.Algo,
		PrevHash: header.PrevBlock,
		WorkSum:  big.NewInt(0),
		Signature: header.Signature,
	}
	if parent != nil {
		n.WorkSum = new(big.Int).Add(parent.WorkSum, CalcWork(header.Bits))
	}
	return n
}

// Header reconstructs a BlockHeader from the node's cached fields.
func (n *Node) Header() types.BlockHeader {
	return types.BlockHeader{
		Version:    n.Version,
		PrevBlock:  n.PrevHash,
		MerkleRoot: hash.Hash{},
		Bits:       n.Bits,
		Time:       n.Time,
		Nonce:      n.Nonce,
		Algo:       n.Algo,
		Signature:  n.Signature,
	}
}

// IsProofOfStake reports whether this node was produced via a coinstake.
func (n *Node) IsProofOfStake() bool {
	return n.Algo.IsProofOfStake()
}

// Ancestor returns the node's ancestor at the given height, or nil if
// height is out of range. It walks Parent pointers, so it is linear in
// the distance climbed; callers resolving far-back ancestors repeatedly
// should cache the result.
func (n *Node) Ancestor(height int64) *Node {
	if height < 0 || height > n.Height {
		return nil
	}
	node := n
	for node != nil && node.Height > height {
		node = node.Parent
	}
	return node
}

// RelativeAncestor returns the ancestor distance blocks back from n.
func (n *Node) RelativeAncestor(distance int64) *Node {
	return n.Ancestor(n.Height - distance)
}

// CalcPastMedianTime returns the median time of the past medianTimeBlocks
// blocks ending at (and including) n, the timestamp a new block's time
// must exceed.
const medianTimeBlocks = 11

func (n *Node) CalcPastMedianTime() time.Time {
	timestamps := make([]time.Time, 0, medianTimeBlocks)
	node := n
	for i := 0; i < medianTimeBlocks && node != nil; i++ {
		timestamps = append(timestamps, node.Time)
		node = node.Parent
	}

	for i := 1; i < len(timestamps); i++ {
		for j := i; j > 0 && timestamps[j].Before(timestamps[j-1]); j-- {
			timestamps[j], timestamps[j-1] = timestamps[j-1], timestamps[j]
		}
	}
	return timestamps[len(timestamps)/2]
}

// CalcWork returns the work value of a block with the given compact
// target bits, used to accumulate WorkSum along a chain.
func CalcWork(bits uint32) *big.Int {
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		return big.NewInt(0)
	}
	// work = 2^256 / (target+1)
	denom := new(big.Int).Add(target, common.Big1)
	oneLsh256 := new(big.Int).Add(common.MaxBig256, common.Big1)
	return new(big.Int).Div(oneLsh256, denom)
}

// CompactToBig expands a compact-encoded target (the "bits" field) into
// a big.Int, using the same mantissa+exponent layout bitcoin-derived
// chains use for the nBits field.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	exponent := uint(compact >> 24)

	var result *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		result = big.NewInt(int64(mantissa))
	} else {
		result = big.NewInt(int64(mantissa))
		result.Lsh(result, 8*(exponent-3))
	}

	if compact&0x00800000 != 0 {
		result = result.Neg(result)
	}
	return result
}

// BigToCompact converts a big.Int target into its compact representation.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(new(big.Int).Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}
