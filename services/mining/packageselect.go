// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"sort"

	mapset "github.com/deckarep/golang-set"

	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/core/types"
)

// maxConsecutiveFailures bounds how many losing candidates in a row the
// selector tolerates once it is within nearFullWeight of max weight.
const maxConsecutiveFailures = 1000

// nearFullWeight is how close to MaxBlockWeight the loop must be before
// the consecutive-failure abort kicks in.
const nearFullWeight = 4000

// candidate is one mempool entry tracked during package selection.
type candidate struct {
	desc *types.TxDesc

	weight int64
	sigOps uint32

	ancestorFee    int64
	ancestorWeight int64

	inBlock bool
}

func (c *candidate) ownFeeRate() float64 {
	if c.weight == 0 {
		return 0
	}
	return float64(c.desc.Fee) / float64(c.weight)
}

func (c *candidate) ancestorFeeRate() float64 {
	if c.ancestorWeight == 0 {
		return c.ownFeeRate()
	}
	return float64(c.ancestorFee) / float64(c.ancestorWeight)
}

// score is the max of the candidate's own feerate and its ancestor
// cumulative feerate, the ordering key the package-selection loop sorts
// the mempool by.
func (c *candidate) score() float64 {
	own := c.ownFeeRate()
	anc := c.ancestorFeeRate()
	if anc > own {
		return anc
	}
	return own
}

// Selected is the outcome of package selection: the chosen transactions
// in ancestor-count (dependency-respecting) order, and their summed
// weight/sigops/fees.
type Selected struct {
	Txs       []*types.Tx
	Weight    int64
	SigOps    uint32
	TotalFees int64
}

// SelectPackages runs the ancestor-feerate package-selection algorithm
// over source, bounded by policy's weight/sigop/fee-rate limits.
func SelectPackages(source TxSource, policy *Policy) Selected {
	descs := source.MiningDescs()

	byHash := make(map[hash.Hash]*candidate, len(descs))
	queue := make([]*candidate, 0, len(descs))
	for _, d := range descs {
		c := &candidate{
			desc:   d,
			weight: int64(d.Tx.Tx.SerializeSize()) * 4,
		}
		byHash[*d.Tx.Hash()] = c
		queue = append(queue, c)
	}

	// Seed ancestor cumulative fee/weight by walking each entry's
	// unconfirmed ancestor set once, up front; once a package is placed
	// in-block, the selected transaction's descendants get their totals
	// recomputed over their remaining ancestors and enter modifiedSet.
	for _, c := range queue {
		ancestors := source.Ancestors(d2hash(c.desc))
		c.ancestorFee = c.desc.Fee
		c.ancestorWeight = c.weight
		for _, ah := range ancestors {
			if ac, ok := byHash[ah]; ok {
				c.ancestorFee += ac.desc.Fee
				c.ancestorWeight += ac.weight
			}
		}
	}

	sort.SliceStable(queue, func(i, j int) bool { return queue[i].score() > queue[j].score() })

	modifiedSet := mapset.NewSet()
	var result Selected
	consecutiveFailures := 0
	pos := 0

	for pos < len(queue) || modifiedSet.Cardinality() > 0 {
		var next *candidate

		var bestModified *candidate
		modifiedSet.Each(func(v interface{}) bool {
			c := v.(*candidate)
			if bestModified == nil || c.score() > bestModified.score() {
				bestModified = c
			}
			return false
		})

		var queueHead *candidate
		for pos < len(queue) {
			if queue[pos].inBlock {
				pos++
				continue
			}
			queueHead = queue[pos]
			break
		}

		switch {
		case queueHead == nil && bestModified == nil:
			return result
		case queueHead == nil:
			next = bestModified
			modifiedSet.Remove(bestModified)
		case bestModified == nil:
			next = queueHead
			pos++
		case bestModified.score() > queueHead.score():
			next = bestModified
			modifiedSet.Remove(bestModified)
		default:
			next = queueHead
			pos++
		}

		if next == nil || next.inBlock {
			continue
		}

		if float64(next.desc.Fee) < float64(policy.BlockMinFeeRate)*float64(next.weight)/4000 {
			return result
		}

		if result.Weight+next.weight > int64(policy.MaxBlockWeight) ||
			result.SigOps+next.sigOps > policy.MaxSigOps {
			consecutiveFailures++
			if int64(policy.MaxBlockWeight)-result.Weight < nearFullWeight &&
				consecutiveFailures > maxConsecutiveFailures {
				return result
			}
			continue
		}

		ancestors := ancestorChainFor(source, byHash, next)
		for _, anc := range ancestors {
			if anc.inBlock {
				continue
			}
			result.Txs = append(result.Txs, anc.desc.Tx)
			result.Weight += anc.weight
			result.SigOps += anc.sigOps
			result.TotalFees += anc.desc.Fee
			anc.inBlock = true
		}

		for _, dh := range source.Descendants(d2hash(next.desc)) {
			if dc, ok := byHash[dh]; ok && !dc.inBlock {
				dc.ancestorFee = dc.desc.Fee
				dc.ancestorWeight = dc.weight
				for _, ah := range source.Ancestors(d2hash(dc.desc)) {
					if ac, ok := byHash[ah]; ok && !ac.inBlock {
						dc.ancestorFee += ac.desc.Fee
						dc.ancestorWeight += ac.weight
					}
				}
				modifiedSet.Add(dc)
			}
		}

		consecutiveFailures = 0
	}

	return result
}

// ancestorChainFor returns next's unconfirmed ancestors (excluding those
// already in-block) followed by next itself, in ancestor-count order so
// every dependency of a selected tx is emitted before it.
func ancestorChainFor(source TxSource, byHash map[hash.Hash]*candidate, next *candidate) []*candidate {
	ancestorHashes := source.Ancestors(d2hash(next.desc))

	var ancestors []*candidate
	for _, ah := range ancestorHashes {
		if ac, ok := byHash[ah]; ok && !ac.inBlock {
			ancestors = append(ancestors, ac)
		}
	}
	sort.SliceStable(ancestors, func(i, j int) bool {
		return len(source.Ancestors(d2hash(ancestors[i].desc))) < len(source.Ancestors(d2hash(ancestors[j].desc)))
	})
	ancestors = append(ancestors, next)
	return ancestors
}

func d2hash(d *types.TxDesc) *hash.Hash {
	return d.Tx.Hash()
}
