// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle builds the binary transaction-merkle-root a block
// header commits to, duplicating the final node on an odd level the
// same way bitcoin-derived chains do.
package merkle

import (
	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/core/types"
)

// BuildTree returns the full tree as a flat array: leaves first, then
// each internal level, with the root last. A tree of n leaves occupies
// nextPowerOfTwo(n)*2 - 1 slots; unused slots are left nil, and a node
// whose right child is nil is hashed from its left child twice by
// hashMerkleBranches.
func BuildTree(transactions []*types.Transaction) []*hash.Hash {
	if len(transactions) == 0 {
		return nil
	}

	nextPoT := nextPowerOfTwo(len(transactions))
	arraySize := nextPoT*2 - 1
	merkles := make([]*hash.Hash, arraySize)

	for i, tx := range transactions {
		txHash := tx.TxHash()
		merkles[i] = &txHash
	}

	offset := nextPoT
	for i := 0; i < nextPoT-len(transactions); i++ {
		merkles[len(transactions)+i] = nil
	}

	for i := 0; i < arraySize-1; i += 2 {
		switch {
		case merkles[i] == nil:
			merkles[offset] = nil
		case merkles[i+1] == nil:
			newHash := hashMerkleBranches(merkles[i], merkles[i])
			merkles[offset] = &newHash
		default:
			newHash := hashMerkleBranches(merkles[i], merkles[i+1])
			merkles[offset] = &newHash
		}
		offset++
	}

	for offset < len(merkles)-1 {
		for i := offset - ((offset - (nextPoT - 1)) * 2); i < offset; i += 2 {
			switch {
			case merkles[i] == nil:
				merkles[offset] = nil
			case merkles[i+1] == nil:
				newHash := hashMerkleBranches(merkles[i], merkles[i])
				merkles[offset] = &newHash
			default:
				newHash := hashMerkleBranches(merkles[i], merkles[i+1])
				merkles[offset] = &newHash
			}
			offset++
		}
	}

	return merkles
}

// Root returns the merkle root over transactions, or the zero hash for
// an empty slice.
func Root(transactions []*types.Transaction) hash.Hash {
	if len(transactions) == 0 {
		return hash.Hash{}
	}
	tree := BuildTree(transactions)
	root := tree[len(tree)-1]
	if root == nil {
		return hash.Hash{}
	}
	return *root
}

func hashMerkleBranches(left, right *hash.Hash) hash.Hash {
	buf := make([]byte, hash.HashSize*2)
	copy(buf[:hash.HashSize], left.Bytes())
	copy(buf[hash.HashSize:], right.Bytes())
	return hash.DoubleHashH(buf)
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}
	if n&(n-1) == 0 {
		return n
	}
	exponent := 0
	for n > 0 {
		n >>= 1
		exponent++
	}
	return 1 << uint(exponent)
}
