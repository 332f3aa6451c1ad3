// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockindex

import (
	"math/big"
	"time"

	"github.com/hashkernel/posd/consensus/hashalgo"
	"github.com/hashkernel/posd/consensus/params"
)

// NextWorkRequired computes the compact target the next block mined on
// top of prev at newBlockTime must satisfy for algo. It retargets every
// block rather than at a fixed-height boundary, clamping the adjustment
// to a factor of 4 either way of the previous target.
func NextWorkRequired(p *params.Params, prev *Node, newBlockTime time.Time, algo hashalgo.Algo) uint32 {
	limit, ok := p.PowLimit[algo]
	if !ok {
		limit = p.PowLimit[hashalgo.POW_SHA256]
	}

	if prev == nil {
		return BigToCompact(limit)
	}
	if p.PowNoRetargeting {
		return prev.Bits
	}

	target := p.PowTargetSpacing
	if p.PowAllowMinDifficulty && newBlockTime.Sub(prev.Time) > 2*target {
		return BigToCompact(limit)
	}

	actual := newBlockTime.Unix() - prev.Time.Unix()
	targetSecs := int64(target / time.Second)
	if targetSecs <= 0 {
		targetSecs = 1
	}

	minSpan := targetSecs / 4
	maxSpan := targetSecs * 4
	if actual < minSpan {
		actual = minSpan
	}
	if actual > maxSpan {
		actual = maxSpan
	}

	prevTarget := CompactToBig(prev.Bits)
	newTarget := new(big.Int).Mul(prevTarget, big.NewInt(actual))
	newTarget.Div(newTarget, big.NewInt(targetSecs))
	if newTarget.Cmp(limit) > 0 {
		newTarget = limit
	}
	return BigToCompact(newTarget)
}
