// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSubsidyParams(t *testing.T) *Params {
	p, err := Select(MainNet)
	assert.NoError(t, err)
	pCopy := *p
	return &pCopy
}

func TestCalcBlockSubsidyDecreasesAfterInterval(t *testing.T) {
	p := testSubsidyParams(t)
	sc := NewSubsidyCache(p)

	first := sc.CalcBlockSubsidy(0)
	assert.Equal(t, p.BaseSubsidy, first)

	afterOneHalving := sc.CalcBlockSubsidy(p.SubsidyHalvingInterval)
	assert.True(t, afterOneHalving < first)
	assert.True(t, afterOneHalving > 0)
}

func TestCalcBlockSubsidyIsMemoized(t *testing.T) {
	p := testSubsidyParams(t)
	sc := NewSubsidyCache(p)

	height := p.SubsidyHalvingInterval * 3
	first := sc.CalcBlockSubsidy(height)
	second := sc.CalcBlockSubsidy(height)
	assert.Equal(t, first, second)
}

func TestSubsidyPoSAddsCoinAgeInterest(t *testing.T) {
	p := testSubsidyParams(t)
	sc := NewSubsidyCache(p)

	base := sc.Subsidy(100, false, 0)
	withAge := sc.Subsidy(100, true, 30)
	assert.True(t, withAge > base)
}

func TestSubsidyPoSCapsAtStakeMaxAge(t *testing.T) {
	p := testSubsidyParams(t)
	p.StakeMaxAge = [2]int64{86400 * 10, 0} // 10-day cap in era v0.3
	sc := NewSubsidyCache(p)

	capped := sc.Subsidy(0, true, 100)
	atCap := sc.Subsidy(0, true, 10)
	assert.Equal(t, atCap, capped)
}

func TestTreasuryAmountZeroBeforeStartHeight(t *testing.T) {
	p := testSubsidyParams(t)
	p.TreasuryStartHeight = 1000
	p.TreasuryPayees = []TreasuryPayee{{Pct: 10}}
	sc := NewSubsidyCache(p)

	assert.Equal(t, int64(0), sc.TreasuryAmount(500))
	assert.True(t, sc.TreasuryAmount(1000) >= 0)
}

func TestTreasuryPayeeAmountsNoPayeesIsZero(t *testing.T) {
	p := testSubsidyParams(t)
	p.TreasuryPayees = nil
	sc := NewSubsidyCache(p)

	amounts := sc.TreasuryPayeeAmounts(5000)
	assert.Len(t, amounts, 0)
}

func TestTreasuryPayeeAmountsSplitProportionally(t *testing.T) {
	p := testSubsidyParams(t)
	p.TreasuryStartHeight = 0
	p.TreasuryPayees = []TreasuryPayee{
		{Pct: 8},
		{Pct: 2},
	}
	sc := NewSubsidyCache(p)

	amounts := sc.TreasuryPayeeAmounts(0)
	assert.Len(t, amounts, 2)
	assert.True(t, amounts[0] > amounts[1])
	total := sc.TreasuryAmount(0)
	assert.InDelta(t, total, amounts[0]+amounts[1], 1)
}
