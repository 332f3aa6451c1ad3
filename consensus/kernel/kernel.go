// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package kernel implements the proof-of-stake kernel hash protocol: the
// stake hash, its target test, and the verify/search entry points the
// validator and the block assembler both drive through.
package kernel

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/consensus/blockindex"
	"github.com/hashkernel/posd/consensus/hashalgo"
	"github.com/hashkernel/posd/consensus/params"
	"github.com/hashkernel/posd/consensus/stakemod"
)

// ErrBadTarget is returned by the target test when the supplied target
// is non-positive or exceeds the network's PoS proof limit.
var ErrBadTarget = errors.New("kernel: negative/overflow/zero target")

// Kernel is the input material the stake hash is computed over.
type Kernel struct {
	Modifier      uint64
	TimeBlockFrom int64
	PrevoutHash   hash.Hash
	PrevoutN      uint32
	TimeTx        int64
}

// StakeHash computes H(modifier || time_block_from || prevout_n ||
// prevout_hash || time_tx), little-endian concatenated exactly as the
// block-protocol serializer would lay these fields out.
func StakeHash(k Kernel) hash.Hash {
	buf := make([]byte, 8+4+4+hash.HashSize+4)
	off := 0
	binary.LittleEndian.PutUint64(buf[off:], k.Modifier)
	off += 8
	binary.LittleEndian.PutUint32(buf[off:], uint32(k.TimeBlockFrom))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], k.PrevoutN)
	off += 4
	copy(buf[off:], k.PrevoutHash.Bytes())
	off += hash.HashSize
	binary.LittleEndian.PutUint32(buf[off:], uint32(k.TimeTx))

	return hash.HashH(buf)
}

// asU256 reinterprets a stake hash as an unsigned 256-bit integer.
func asU256(h hash.Hash) *big.Int {
	b := h.Bytes()
	rev := make([]byte, len(b))
	for i, v := range b {
		rev[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(rev)
}

// TargetTest reports whether stakeHash hits the weighted target for a
// coin worth amount (atoms) at bits difficulty at the given height.
func TargetTest(p *params.Params, height int64, amount int64, bits uint32, stakeHash hash.Hash) (bool, error) {
	target := blockindex.CompactToBig(bits)
	if target.Sign() <= 0 {
		return false, ErrBadTarget
	}
	if limit, ok := p.PowLimit[hashalgo.POS]; ok && target.Cmp(limit) > 0 {
		return false, ErrBadTarget
	}

	weight := amount
	if height < p.MandatoryUpgradeBlock[1] {
		weight = amount / 100
	}

	product := new(big.Int).Mul(big.NewInt(weight), target)
	hit := asU256(stakeHash).Cmp(product) <= 0
	return hit, nil
}

// Coin identifies the spendable output a coinstake candidate references.
type Coin struct {
	PrevoutHash   hash.Hash
	PrevoutN      uint32
	Amount        int64
	TimeBlockFrom int64
	HeightFrom    int64
}

// VerifyParams bundles the context Verify needs beyond the coin and
// candidate timestamp.
type VerifyParams struct {
	HeightCur     int64
	Bits          uint32
	ContainingTip *blockindex.Node
	Tip           *blockindex.Node
	Index         *blockindex.Index
}

// Verify runs the fCheck=true path: precondition checks, one stake-hash
// computation, and the target test, with the historic mainnet-genesis
// exception folded in.
func Verify(p *params.Params, idx *blockindex.Index, coin Coin, timeTx int64, vp VerifyParams) (bool, error) {
	era := p.EraFor(vp.HeightCur)

	if timeTx < coin.TimeBlockFrom {
		return false, errors.New("kernel: stake transaction time precedes the coin's block time")
	}
	if coin.TimeBlockFrom+p.StakeMinAge[era] > timeTx {
		return false, errors.New("kernel: coin does not meet stake-min-age")
	}
	if vp.HeightCur-coin.HeightFrom < p.StakeMinDepth[era] {
		return false, errors.New("kernel: coin does not meet stake-min-depth")
	}

	if vp.HeightCur < p.MandatoryUpgradeBlock[0] && p.IsGenesisBlock(&vp.ContainingTip.Hash) {
		return true, nil
	}

	modifier, _, _, err := stakemod.Resolve(p, idx, vp.Tip, vp.ContainingTip, timeTx)
	if err != nil {
		return false, err
	}

	sh := StakeHash(Kernel{
		Modifier:      modifier,
		TimeBlockFrom: coin.TimeBlockFrom,
		PrevoutHash:   coin.PrevoutHash,
		PrevoutN:      coin.PrevoutN,
		TimeTx:        timeTx,
	})
	return TargetTest(p, vp.HeightCur, coin.Amount, vp.Bits, sh)
}

// SearchResult carries the timestamp a hit was found at.
type SearchResult struct {
	Hit    bool
	TimeTx int64
}

// TipHeightFunc reports the active tip's current height, used by Search
// to detect that a new block has arrived and abort voluntarily.
type TipHeightFunc func() int64

// Search iterates candidate timestamps from timeTx+hashDrift down to
// timeTx, masked by the post-upgrade stride, stopping at the first hit
// or aborting if the active tip height changes underneath it.
func Search(p *params.Params, idx *blockindex.Index, coin Coin, timeTx int64, hashDrift int64, vp VerifyParams, startHeight int64, currentTip TipHeightFunc) (SearchResult, error) {
	era := p.EraFor(vp.HeightCur)

	iteration := int64(1)
	if era == params.EraV05 {
		iteration = int64(p.StakeTimestampMask) + 1
	}

	if vp.HeightCur < p.MandatoryUpgradeBlock[0] && vp.ContainingTip != nil && p.IsGenesisBlock(&vp.ContainingTip.Hash) {
		return SearchResult{Hit: true, TimeTx: timeTx}, nil
	}

	modifier, _, _, err := stakemod.Resolve(p, idx, vp.Tip, vp.ContainingTip, timeTx+hashDrift)
	if err != nil {
		return SearchResult{}, err
	}

	for i := hashDrift; i >= 0; i -= iteration {
		if currentTip() != startHeight {
			return SearchResult{}, nil
		}

		candidateTime := timeTx + i
		if candidateTime < coin.TimeBlockFrom+p.StakeMinAge[era] {
			continue
		}

		sh := StakeHash(Kernel{
			Modifier:      modifier,
			TimeBlockFrom: coin.TimeBlockFrom,
			PrevoutHash:   coin.PrevoutHash,
			PrevoutN:      coin.PrevoutN,
			TimeTx:        candidateTime,
		})
		hit, err := TargetTest(p, vp.HeightCur, coin.Amount, vp.Bits, sh)
		if err != nil {
			return SearchResult{}, err
		}
		if hit {
			return SearchResult{Hit: true, TimeTx: candidateTime}, nil
		}
	}
	return SearchResult{}, nil
}

// CheckCoinstakeTimestamp enforces block.time == coinstake.time and
// block.time & stake_timestamp_mask == 0.
func CheckCoinstakeTimestamp(p *params.Params, blockTime, coinstakeTime int64) error {
	if blockTime != coinstakeTime {
		return errors.New("kernel: block time does not match coinstake time")
	}
	if uint32(blockTime)&p.StakeTimestampMask != 0 {
		return errors.New("kernel: block time violates the stake timestamp mask")
	}
	return nil
}
