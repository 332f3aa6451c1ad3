// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package params

import (
	"math/big"
	"time"

	"github.com/hashkernel/posd/consensus/hashalgo"
)

func powLimit(bits uint) *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))
}

// MainNetParams are the consensus parameters for the production network.
var MainNetParams = Params{
	Name: "mainnet",
	Net:  MainNet,

	GenesisTime: time.Unix(1500000000, 0),

	SubsidyHalvingInterval: 262800, // roughly one MulSubsidy/DivSubsidy reduction step per year at 2-minute blocks
	PowTargetSpacing:       2 * time.Minute,
	PowTargetTimespan:      2 * time.Minute,
	PowAllowMinDifficulty:  false,
	PowNoRetargeting:       false,
	PowLimit: map[hashalgo.Algo]*big.Int{
		hashalgo.POW_SHA256:  powLimit(224),
		hashalgo.POW_SHA1D:   powLimit(224),
		hashalgo.POW_QUARK:   powLimit(216),
		hashalgo.POW_SCRYPT2: powLimit(216),
		hashalgo.POW_ARGON2D: powLimit(216),
		hashalgo.POS:         powLimit(232),
	},

	StakeTimestampMask: 0x0000000f, // 16-second granularity

	StakeMinAge:   [2]int64{60 * 60, 60 * 60},       // 1 hour, both eras
	StakeMinDepth: [2]int64{0, 500},                 // v0.3 required no confirmations; v0.5 requires 500
	StakeMaxAge:   [2]int64{60 * 60 * 24 * 90, 0},    // 90 days pre-upgrade; unbounded post-upgrade

	ModifierInterval:      60,
	ModifierIntervalRatio: 3,

	TreasuryPayees:      nil,
	TreasuryStartHeight: 0,

	MandatoryUpgradeBlock: [2]int64{0, 180000},
	UpgradeBlockVersion:   [2]uint32{1, 4},

	ModifierCheckpoints: nil,
	Deployments:         nil,

	CoinbaseMaturity: 100,
	BaseSubsidy:      50 * 1e8,
	MulSubsidy:        100,
	DivSubsidy:        101,
}

// TestNetParams relax the stake-age and difficulty requirements for
// public testing while keeping the same upgrade-era structure.
var TestNetParams = Params{
	Name: "testnet",
	Net:  TestNet,

	GenesisTime: time.Unix(1500000000, 0),

	SubsidyHalvingInterval: 262800,
	PowTargetSpacing:       2 * time.Minute,
	PowTargetTimespan:      2 * time.Minute,
	PowAllowMinDifficulty:  true,
	PowNoRetargeting:       false,
	PowLimit: map[hashalgo.Algo]*big.Int{
		hashalgo.POW_SHA256:  powLimit(232),
		hashalgo.POW_SHA1D:   powLimit(232),
		hashalgo.POW_QUARK:   powLimit(224),
		hashalgo.POW_SCRYPT2: powLimit(224),
		hashalgo.POW_ARGON2D: powLimit(224),
		hashalgo.POS:         powLimit(236),
	},

	StakeTimestampMask: 0x0000000f,

	StakeMinAge:   [2]int64{60, 60},
	StakeMinDepth: [2]int64{0, 6},
	StakeMaxAge:   [2]int64{60 * 60 * 24 * 30, 0},

	ModifierInterval:      60,
	ModifierIntervalRatio: 3,

	TreasuryPayees:      nil,
	TreasuryStartHeight: 0,

	MandatoryUpgradeBlock: [2]int64{0, 1000},
	UpgradeBlockVersion:   [2]uint32{1, 4},

	ModifierCheckpoints: nil,
	Deployments:         nil,

	CoinbaseMaturity: 16,
	BaseSubsidy:      50 * 1e8,
	MulSubsidy:        100,
	DivSubsidy:        101,
}

// RegNetParams drive the deterministic, fast-iteration regression-test
// network. Per §4.3.1(2), every non-genesis block on this network uses
// the fixed sentinel stake modifier rather than computing one.
var RegNetParams = Params{
	Name: "regtest",
	Net:  RegNet,

	GenesisTime: time.Unix(1500000000, 0),

	SubsidyHalvingInterval: 150,
	PowTargetSpacing:       1 * time.Second,
	PowTargetTimespan:      1 * time.Second,
	PowAllowMinDifficulty:  true,
	PowNoRetargeting:       true,
	PowLimit: map[hashalgo.Algo]*big.Int{
		hashalgo.POW_SHA256:  powLimit(255),
		hashalgo.POW_SHA1D:   powLimit(255),
		hashalgo.POW_QUARK:   powLimit(255),
		hashalgo.POW_SCRYPT2: powLimit(255),
		hashalgo.POW_ARGON2D: powLimit(255),
		hashalgo.POS:         powLimit(255),
	},

	StakeTimestampMask: 0x0000000f,

	StakeMinAge:   [2]int64{1, 1},
	StakeMinDepth: [2]int64{0, 0},
	StakeMaxAge:   [2]int64{0, 0},

	ModifierInterval:      60,
	ModifierIntervalRatio: 3,

	TreasuryPayees:      nil,
	TreasuryStartHeight: 0,

	MandatoryUpgradeBlock: [2]int64{0, 0},
	UpgradeBlockVersion:   [2]uint32{1, 4},

	ModifierCheckpoints: nil,
	Deployments:         nil,

	CoinbaseMaturity: 1,
	BaseSubsidy:      50 * 1e8,
	MulSubsidy:        100,
	DivSubsidy:        101,
}
