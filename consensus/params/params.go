// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2013-2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package params is the process-wide, read-only Parameters Oracle: a
// single frozen structure selected once at startup by network name and
// threaded through every other consensus component thereafter. Nothing
// in this package may be mutated after Select returns.
package params

import (
	"fmt"
	"math/big"
	"time"

	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/consensus/hashalgo"
	"github.com/hashkernel/posd/core/types"
)

// Network identifies one of the recognized chains.
type Network uint32

const (
	MainNet Network = iota
	TestNet
	SigNet
	RegNet
)

func (n Network) String() string {
	switch n {
	case MainNet:
		return "mainnet"
	case TestNet:
		return "testnet"
	case SigNet:
		return "signet"
	case RegNet:
		return "regtest"
	default:
		return fmt.Sprintf("unknown network %d", uint32(n))
	}
}

// Era distinguishes the two live stake-age/kernel-modifier protocol
// generations. Only v0.3 (pre-upgrade) and v0.5+ (post-upgrade) are
// modeled: EraFor maps every height to one of the two, no network's
// parameters define a v0.2/v0.4 window, and no caller in the kernel or
// stake modifier packages checks for one.
type Era int

const (
	EraV03 Era = iota
	EraV05
)

// ConsensusDeployment describes a version-bit soft-fork window.
type ConsensusDeployment struct {
	BitNumber   uint8
	StartTime   int64
	ExpireTime  int64
	PerformTime int64
}

// ModifierCheckpoint hard-codes the checksum a correctly computed stake
// modifier must reduce to at a given height, see §4.3.4.
type ModifierCheckpoint struct {
	Height   int64
	Checksum uint32
}

// TreasuryPayee is one entry of the treasury split; Pct is a whole
// percentage point and the payees in a Params must sum to at most 100.
type TreasuryPayee struct {
	Script []byte
	Pct    uint32
}

// Params is the frozen set of network parameters affecting consensus
// math. It is built once per network by the functions in this package
// and must never be mutated after Select.
type Params struct {
	Name        string
	Net         Network
	GenesisHash hash.Hash
	GenesisTime time.Time

	SubsidyHalvingInterval int64
	PowTargetSpacing       time.Duration
	PowTargetTimespan      time.Duration
	PowAllowMinDifficulty  bool
	PowNoRetargeting       bool
	PowLimit               map[hashalgo.Algo]*big.Int

	// StakeTimestampMask granularises valid stake timestamps: a
	// timestamp is only valid when timestamp & StakeTimestampMask == 0.
	StakeTimestampMask uint32

	// StakeMinAge, StakeMinDepth, StakeMaxAge are indexed by Era.
	StakeMinAge   [2]int64
	StakeMinDepth [2]int64
	StakeMaxAge   [2]int64

	// ModifierInterval (M, seconds) drives the modifier re-roll
	// cadence; ModifierIntervalRatio is the tie-breaking constant used
	// to weight the 64 geometric selection sections.
	ModifierInterval      int64
	ModifierIntervalRatio int64

	TreasuryPayees      []TreasuryPayee
	TreasuryStartHeight int64

	// MandatoryUpgradeBlock/UpgradeBlockVersion are indexed the same
	// way as the stake-age triples: index 1 is the switch to the v0.5
	// era and the block-hash-aware entropy-bit rule.
	MandatoryUpgradeBlock  [2]int64
	UpgradeBlockVersion    [2]uint32

	ModifierCheckpoints []ModifierCheckpoint
	Deployments         []ConsensusDeployment

	CoinbaseMaturity uint16
	BaseSubsidy      int64
	MulSubsidy       int64
	DivSubsidy       int64

	DataDirSuffix string
}

// EraFor returns the live protocol era in force at height, chosen per
// §4.3.2: height(next_block) >= mandatory_upgrade_block[1] selects v0.5.
func (p *Params) EraFor(height int64) Era {
	if height >= p.MandatoryUpgradeBlock[1] {
		return EraV05
	}
	return EraV03
}

// TotalTreasuryPct sums the configured payee percentages.
func (p *Params) TotalTreasuryPct() uint32 {
	var total uint32
	for _, payee := range p.TreasuryPayees {
		total += payee.Pct
	}
	return total
}

// IsGenesisBlock reports whether h is this network's genesis block hash,
// the literal the historic mainnet pre-upgrade exception in §4.4.3 gates
// on so the quirk never propagates to other networks.
func (p *Params) IsGenesisBlock(h *hash.Hash) bool {
	return p.GenesisHash.IsEqual(h)
}

var registered = make(map[Network]*Params)

// Register adds p to the set of recognized networks. It must be called
// exactly once per network, before any call to Select.
func Register(p *Params) error {
	if _, ok := registered[p.Net]; ok {
		return fmt.Errorf("params: duplicate registration for network %s", p.Net)
	}
	registered[p.Net] = p
	return nil
}

func mustRegister(p *Params) {
	if err := Register(p); err != nil {
		panic(err)
	}
}

func init() {
	mustRegister(&MainNetParams)
	mustRegister(&TestNetParams)
	mustRegister(&RegNetParams)
}

// Select returns the frozen Params for network. The returned pointer is
// shared and must be treated as read-only.
func Select(net Network) (*Params, error) {
	p, ok := registered[net]
	if !ok {
		return nil, fmt.Errorf("params: unrecognized network %s", net)
	}
	return p, nil
}

// BuildGenesisBlock assembles the single-coinbase genesis block for p.
// It is factored out of the Params literal because the coinbase commits
// to the network's merkle root, which in turn depends on the payout
// script the caller wants the premine (if any) attributed to.
func BuildGenesisBlock(p *Params, coinbase *types.Transaction) *types.Block {
	block := &types.Block{
		Header: types.BlockHeader{
			Version:    1,
			PrevBlock:  hash.Hash{},
			MerkleRoot: coinbase.TxHash(),
			Bits:       0,
			Time:       p.GenesisTime,
			Nonce:      0,
			Algo:       hashalgo.POW_SHA256,
		},
		Transactions: []*types.Transaction{coinbase},
	}
	return block
}
