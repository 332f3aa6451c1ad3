// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kernel

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/consensus/blockindex"
	"github.com/hashkernel/posd/consensus/hashalgo"
	"github.com/hashkernel/posd/consensus/params"
)

func testParams(t *testing.T) *params.Params {
	p, err := params.Select(params.MainNet)
	assert.NoError(t, err)
	pCopy := *p
	return &pCopy
}

func TestStakeHashDeterministic(t *testing.T) {
	k := Kernel{
		Modifier:      0x1122334455667788,
		TimeBlockFrom: 1000,
		PrevoutHash:   hash.HashH([]byte("coin")),
		PrevoutN:      2,
		TimeTx:        1100,
	}
	h1 := StakeHash(k)
	h2 := StakeHash(k)
	assert.Equal(t, h1, h2)

	k2 := k
	k2.TimeTx++
	assert.NotEqual(t, h1, StakeHash(k2))
}

func TestTargetTestRejectsOverLimit(t *testing.T) {
	p := testParams(t)
	// a target above the PoS proof limit must always fail, regardless of
	// the stake hash.
	limit := p.PowLimit[hashalgo.POS]
	over := new(big.Int).Lsh(limit, 8)
	badBits := blockindex.BigToCompact(over)
	_, err := TargetTest(p, 0, 1, badBits, hash.Hash{})
	assert.Error(t, err)
}

func TestTargetTestWeightReducedPreUpgrade(t *testing.T) {
	p := testParams(t)
	p.MandatoryUpgradeBlock = [2]int64{0, 1000}
	bits := blockindex.BigToCompact(p.PowLimit[hashalgo.POS])

	sh := hash.Hash{}
	sh[0] = 0x01 // stake hash value 1 (bytes are read little-endian)

	hitPre, err := TargetTest(p, 500, 10000, bits, sh)
	assert.NoError(t, err)
	hitPost, err := TargetTest(p, 1500, 10000, bits, sh)
	assert.NoError(t, err)
	// both hit against the loosest allowed target.
	assert.True(t, hitPre)
	assert.True(t, hitPost)

	// A stake hash of 1000*target lies between the pre-upgrade weighted
	// target (10000/100 = 100 times target) and the post-upgrade one
	// (10000 times target).
	be := new(big.Int).Mul(blockindex.CompactToBig(bits), big.NewInt(1000)).Bytes()
	var boundary hash.Hash
	for i, b := range be {
		boundary[len(be)-1-i] = b
	}
	hitPre, err = TargetTest(p, 500, 10000, bits, boundary)
	assert.NoError(t, err)
	hitPost, err = TargetTest(p, 1500, 10000, bits, boundary)
	assert.NoError(t, err)
	assert.False(t, hitPre)
	assert.True(t, hitPost)
}

func TestVerifyRejectsStaleTimeTx(t *testing.T) {
	p := testParams(t)
	coin := Coin{TimeBlockFrom: 1000, HeightFrom: 10}
	vp := VerifyParams{HeightCur: 20, Bits: 0x207fffff}
	_, err := Verify(p, nil, coin, 999, vp)
	assert.Error(t, err)
}

func TestCheckCoinstakeTimestamp(t *testing.T) {
	p := testParams(t)
	p.StakeTimestampMask = 0xf

	assert.NoError(t, CheckCoinstakeTimestamp(p, 160, 160))
	assert.Error(t, CheckCoinstakeTimestamp(p, 160, 161))
	assert.Error(t, CheckCoinstakeTimestamp(p, 161, 161))
}
