// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2016-2018 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mining builds candidate blocks: the coinbase/coinstake
// skeleton, mempool package selection, and (for proof-of-stake blocks)
// the kernel search that turns a template into a mintable block.
package mining

import (
	"errors"
	"sort"
	"time"

	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/consensus/blockindex"
	"github.com/hashkernel/posd/consensus/hashalgo"
	"github.com/hashkernel/posd/consensus/kernel"
	"github.com/hashkernel/posd/consensus/params"
	"github.com/hashkernel/posd/core/merkle"
	"github.com/hashkernel/posd/core/types"
)

// coinbaseFlags is extra data appended to the coinbase script sig.
const coinbaseFlags = "/posd/"

// Template is a candidate block together with the bookkeeping the
// minter loop and submission path need.
type Template struct {
	Block        *types.Block
	Height       int64
	Fees         int64
	PoSCancelled bool
}

// Assembler builds Templates against a given chain/mempool/wallet.
type Assembler struct {
	params   *params.Params
	index    *blockindex.Index
	source   TxSource
	policy   *Policy
	subsidy  *params.SubsidyCache
	wallet   Wallet
	payScript []byte
}

// NewAssembler returns an Assembler. payScript pays the PoW coinbase
// output when the template being built is not a PoS block.
func NewAssembler(p *params.Params, idx *blockindex.Index, source TxSource, policy *Policy, subsidy *params.SubsidyCache, wallet Wallet, payScript []byte) *Assembler {
	return &Assembler{
		params:    p,
		index:     idx,
		source:    source,
		policy:    policy,
		subsidy:   subsidy,
		wallet:    wallet,
		payScript: payScript,
	}
}

// CreateNewBlock builds a new template on top of the active tip. A
// template with PoSCancelled set, a nil Block and a nil error means
// coinstake creation failed to find a kernel hit this round; the caller
// should back off and retry.
func (a *Assembler) CreateNewBlock() (*Template, error) {
	tip := a.index.ActiveTip()
	height := int64(0)
	if tip != nil {
		height = tip.Height + 1
	}

	isPoS := a.params.Net != params.RegNet && a.wallet != nil && !a.wallet.Locked()

	selected := SelectPackages(a.source, a.policy)

	coinbaseTx, err := a.createCoinbase(height, isPoS)
	if err != nil {
		return nil, err
	}

	blockTime := a.nextBlockTime(tip)
	bits := uint32(0)
	algo := hashalgo.POW_SHA256
	if isPoS {
		algo = hashalgo.POS
	}
	if tip != nil {
		bits = blockindex.NextWorkRequired(a.params, tip, blockTime, algo)
	}

	txs := make([]*types.Transaction, 0, len(selected.Txs)+2)
	txs = append(txs, coinbaseTx)

	canonical := canonicalSort(selected.Txs)

	var coinstakeTx *types.Transaction
	if isPoS {
		coinstakeTx, err = a.createCoinstake(tip, height, blockTime, bits)
		if err != nil || coinstakeTx == nil {
			return &Template{PoSCancelled: true}, nil
		}
		// The block carries the coinstake's mask-aligned time.
		blockTime = coinstakeTx.Timestamp
		// Zero the coinbase's own output once a coinstake pays the
		// reward instead, and install the coinstake at index 1.
		coinbaseTx.TxOut[0].Amount = 0
		txs = append(txs, coinstakeTx)
	}
	for _, tx := range canonical {
		txs = append(txs, tx.Tx)
	}

	block := &types.Block{
		Header: types.BlockHeader{
			Version:   1,
			PrevBlock: prevHash(tip),
			Bits:      bits,
			Time:      blockTime,
			Algo:      algo,
		},
		Transactions: txs,
	}
	block.Header.MerkleRoot = merkle.Root(txs)

	return &Template{Block: block, Height: height, Fees: selected.TotalFees}, nil
}

func prevHash(tip *blockindex.Node) hash.Hash {
	if tip == nil {
		return hash.Hash{}
	}
	return tip.Hash
}

// nextBlockTime is max(median_time_past(P)+1, now), the template
// construction procedure's block.time rule.
func (a *Assembler) nextBlockTime(tip *blockindex.Node) time.Time {
	now := time.Now()
	if tip == nil {
		return now
	}
	floor := tip.CalcPastMedianTime().Add(time.Second)
	if now.Before(floor) {
		return floor
	}
	return now
}

func (a *Assembler) createCoinbase(height int64, isPoS bool) (*types.Transaction, error) {
	tx := types.NewTransaction()
	sigScript, err := standardCoinbaseScript(height)
	if err != nil {
		return nil, err
	}
	tx.AddTxIn(&types.TxInput{
		PreviousOut: types.TxOutPoint{OutIndex: 0xffffffff},
		Sequence:    types.MaxTxInSequenceNum,
		SignScript:  sigScript,
	})

	amount := int64(0)
	if !isPoS {
		amount = a.subsidy.Subsidy(height, false, 0)
	}
	tx.AddTxOut(&types.TxOutput{Amount: types.Amount(amount), PkScript: a.payScript})

	if !isPoS {
		for i, pct := range a.subsidy.TreasuryPayeeAmounts(height) {
			tx.AddTxOut(&types.TxOutput{
				Amount:   types.Amount(pct),
				PkScript: a.params.TreasuryPayees[i].Script,
			})
		}
	}
	return tx, nil
}

func standardCoinbaseScript(height int64) ([]byte, error) {
	buf := make([]byte, 0, 16+len(coinbaseFlags))
	buf = appendCScriptInt(buf, height)
	buf = append(buf, byte(len(coinbaseFlags)))
	buf = append(buf, []byte(coinbaseFlags)...)
	return buf, nil
}

// appendCScriptInt appends n as a minimally-encoded script push, the
// <height> OP_0-style coinbase commitment the template patches in.
func appendCScriptInt(buf []byte, n int64) []byte {
	if n == 0 {
		return append(buf, 0x00)
	}
	negative := n < 0
	if negative {
		n = -n
	}
	var v []byte
	for n > 0 {
		v = append(v, byte(n&0xff))
		n >>= 8
	}
	if v[len(v)-1]&0x80 != 0 {
		if negative {
			v = append(v, 0x80)
		} else {
			v = append(v, 0x00)
		}
	} else if negative {
		v[len(v)-1] |= 0x80
	}
	buf = append(buf, byte(len(v)))
	return append(buf, v...)
}

// canonicalSort orders non-coinbase/non-coinstake entries so that a < b
// iff no input of a references b's hash and txid(a) < txid(b). The
// comparator is a partial order, so this is a Kahn's-algorithm
// topological sort using txid order to break ties among transactions
// with no dependency between them: every input an entry spends from
// another entry in txs must appear earlier in the result, regardless of
// what SelectPackages' ancestor-count ordering already produced.
func canonicalSort(txs []*types.Tx) []*types.Tx {
	byHash := make(map[hash.Hash]*types.Tx, len(txs))
	indegree := make(map[hash.Hash]int, len(txs))
	dependents := make(map[hash.Hash][]hash.Hash, len(txs))

	for _, tx := range txs {
		byHash[*tx.Hash()] = tx
	}
	for _, tx := range txs {
		h := *tx.Hash()
		seen := make(map[hash.Hash]bool)
		for _, in := range tx.Tx.TxIn {
			ph := in.PreviousOut.Hash
			if _, ok := byHash[ph]; !ok || seen[ph] {
				continue
			}
			seen[ph] = true
			dependents[ph] = append(dependents[ph], h)
			indegree[h]++
		}
	}

	ready := make([]hash.Hash, 0, len(txs))
	for _, tx := range txs {
		h := *tx.Hash()
		if indegree[h] == 0 {
			ready = append(ready, h)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return hashLess(ready[i], ready[j]) })

	out := make([]*types.Tx, 0, len(txs))
	for len(ready) > 0 {
		h := ready[0]
		ready = ready[1:]
		out = append(out, byHash[h])

		var grew bool
		for _, d := range dependents[h] {
			indegree[d]--
			if indegree[d] == 0 {
				ready = append(ready, d)
				grew = true
			}
		}
		if grew {
			sort.Slice(ready, func(i, j int) bool { return hashLess(ready[i], ready[j]) })
		}
	}

	// Every entry came from SelectPackages, which only ever emits a tx
	// after its unconfirmed ancestors, so the graph above is acyclic and
	// out always accounts for all of txs; this guards that invariant
	// rather than silently dropping anything if it is ever violated.
	if len(out) != len(txs) {
		placed := make(map[hash.Hash]bool, len(out))
		for _, tx := range out {
			placed[*tx.Hash()] = true
		}
		for _, tx := range txs {
			if !placed[*tx.Hash()] {
				out = append(out, tx)
			}
		}
	}
	return out
}

func hashLess(a, b hash.Hash) bool {
	for i := 0; i < hash.HashSize; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// createCoinstake implements coinstake creation: align the block time to
// the stake timestamp mask, search owned coins for a kernel hit, and lay
// out the resulting transaction.
func (a *Assembler) createCoinstake(tip *blockindex.Node, height int64, blockTime time.Time, bits uint32) (*types.Transaction, error) {
	if a.wallet == nil || tip == nil {
		return nil, errors.New("mining: no wallet configured for staking")
	}

	mask := int64(a.params.StakeTimestampMask)
	t := blockTime.Unix()
	if mask != 0 {
		t = (t + mask) &^ mask
	}

	era := a.params.EraFor(height)
	coins := a.wallet.SpendableCoins(a.params.StakeMinAge[era], a.params.StakeMinDepth[era], height, nil)

	for _, coin := range coins {
		vp := kernel.VerifyParams{
			HeightCur:     height,
			Bits:          bits,
			ContainingTip: tip,
			Tip:           tip,
			Index:         a.index,
		}
		kc := kernel.Coin{
			PrevoutHash:   coin.Outpoint.Hash,
			PrevoutN:      coin.Outpoint.OutIndex,
			Amount:        coin.Amount,
			TimeBlockFrom: coin.BlockTime,
			HeightFrom:    coin.Height,
		}

		result, err := kernel.Search(a.params, a.index, kc, t, 0, vp, tip.Height, func() int64 {
			if cur := a.index.ActiveTip(); cur != nil {
				return cur.Height
			}
			return -1
		})
		if err != nil || !result.Hit {
			continue
		}

		outScript, err := a.wallet.OutputScriptFor(coin)
		if err != nil {
			continue
		}

		coinAge := a.wallet.CoinAgeDays(coin, height)
		credit := coin.Amount + a.subsidy.Subsidy(height, true, coinAge)

		tx := types.NewTransaction()
		tx.Timestamp = time.Unix(result.TimeTx, 0)
		tx.AddTxIn(types.NewTxInput(&coin.Outpoint, nil))
		tx.AddTxOut(&types.TxOutput{})
		tx.AddTxOut(&types.TxOutput{Amount: types.Amount(credit), PkScript: outScript})
		for i, amt := range a.subsidy.TreasuryPayeeAmounts(height) {
			tx.AddTxOut(&types.TxOutput{Amount: types.Amount(amt), PkScript: a.params.TreasuryPayees[i].Script})
		}

		if err := a.wallet.SignCoinstakeInput(tx, coin.PkScript); err != nil {
			continue
		}
		return tx, nil
	}

	return nil, nil
}
