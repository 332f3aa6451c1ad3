// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package params

import "sync"

// SubsidyCache memoizes the per-halving-interval block subsidy so
// repeated lookups at nearby heights don't recompute the exponential
// reduction from height 0 every time.
type SubsidyCache struct {
	mtx   sync.RWMutex
	cache map[int64]int64

	params *Params
}

// NewSubsidyCache returns an empty subsidy cache for p.
func NewSubsidyCache(p *Params) *SubsidyCache {
	return &SubsidyCache{
		cache:  make(map[int64]int64),
		params: p,
	}
}

// CalcBlockSubsidy returns the base subsidy for a block at height, before
// any PoW/PoS/treasury split is applied.
func (s *SubsidyCache) CalcBlockSubsidy(height int64) int64 {
	iteration := height / s.params.SubsidyHalvingInterval
	if iteration == 0 {
		return s.params.BaseSubsidy
	}

	s.mtx.RLock()
	if v, ok := s.cache[iteration]; ok {
		s.mtx.RUnlock()
		return v
	}
	s.mtx.RUnlock()

	subsidy := s.params.BaseSubsidy
	for i := int64(0); i < iteration; i++ {
		subsidy *= s.params.MulSubsidy
		subsidy /= s.params.DivSubsidy
	}

	s.mtx.Lock()
	s.cache[iteration] = subsidy
	s.mtx.Unlock()
	return subsidy
}

// Subsidy returns the reward a block at height should carry. PoS blocks
// additionally receive coinAge-weighted interest on top of the base
// subsidy, the coinstake's "credit" in the coinstake-creation procedure;
// PoW blocks receive the base subsidy unmodified. In both cases the
// treasury's cut is carved out separately via TreasuryAmount.
func (s *SubsidyCache) Subsidy(height int64, isPoS bool, coinAgeDays float64) int64 {
	base := s.CalcBlockSubsidy(height)
	if !isPoS {
		return base
	}
	// Stake reward scales with the coin's time held, capped by the
	// era's StakeMaxAge when one is in force (zero means uncapped).
	era := s.params.EraFor(height)
	maxAge := s.params.StakeMaxAge[era]
	days := coinAgeDays
	if maxAge > 0 {
		maxDays := float64(maxAge) / 86400
		if days > maxDays {
			days = maxDays
		}
	}
	interest := int64(float64(base) * days * 0.01)
	return base + interest
}

// TreasuryAmount returns the total value the treasury payees should
// split at height, the CTxOut(treasury(H) x pct / 100, script) sum
// in the template-construction procedure. Zero before TreasuryStartHeight.
func (s *SubsidyCache) TreasuryAmount(height int64) int64 {
	if height < s.params.TreasuryStartHeight {
		return 0
	}
	base := s.CalcBlockSubsidy(height)
	return int64(float64(base) * float64(s.params.TotalTreasuryPct()) / 100)
}

// TreasuryPayeeAmounts splits TreasuryAmount(height) across the
// configured payees in their registered order.
func (s *SubsidyCache) TreasuryPayeeAmounts(height int64) []int64 {
	amounts := make([]int64, len(s.params.TreasuryPayees))
	totalPct := s.params.TotalTreasuryPct()
	if totalPct == 0 {
		return amounts
	}
	total := s.TreasuryAmount(height)
	for i, payee := range s.params.TreasuryPayees {
		amounts[i] = int64(float64(total) * float64(payee.Pct) / float64(totalPct))
	}
	return amounts
}
