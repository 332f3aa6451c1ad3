// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2013-2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"runtime"
	"runtime/debug"

	flags "github.com/jessevdk/go-flags"

	"github.com/hashkernel/posd/config"
	"github.com/hashkernel/posd/consensus/blockindex"
	"github.com/hashkernel/posd/consensus/params"
	"github.com/hashkernel/posd/core/types"
	"github.com/hashkernel/posd/log"
	"github.com/hashkernel/posd/services/mining"
	"github.com/hashkernel/posd/services/miner"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	debug.SetGCPercent(20)

	if err := run(); err != nil {
		log.Root().Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg := &config.Config{}
	parser := flags.NewParser(cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		return err
	}

	net := networkFor(cfg)
	p, err := params.Select(net)
	if err != nil {
		return err
	}

	interrupt := interruptListener()
	logger := log.New("module", "posd")
	logger.Info("starting node", "network", p.Name)

	idx := blockindex.NewIndex()
	genesisCoinbase := types.NewTransaction()
	genesis := params.BuildGenesisBlock(p, genesisCoinbase)
	genesisNode := blockindex.NewNode(&genesis.Header, nil, 0)
	genesisNode.GeneratedStakeModifier = true
	idx.AddNode(genesisNode)
	idx.SetActiveChain(genesisNode)

	pool := mining.NewMemPool()
	subsidy := params.NewSubsidyCache(p)

	policy := &mining.Policy{
		MaxBlockWeight:    cfg.BlockMaxWeight,
		BlockMinFeeRate:   cfg.BlockMinTxFee,
		BlockPrioritySize: cfg.BlockPrioritySize,
		MaxSigOps:         80000,
	}
	if policy.MaxBlockWeight == 0 {
		policy.MaxBlockWeight = 4000000
	}

	assembler := mining.NewAssembler(p, idx, pool, policy, subsidy, nil, nil)
	chainState := &staticChainState{net: net}
	m := miner.New(cfg, p, chainState, assembler, func(tmpl *mining.Template) error {
		logger.Info("would submit block", "height", tmpl.Height)
		return nil
	})
	m.Start()
	defer m.Stop()

	<-interrupt
	logger.Info("shutdown complete")
	return nil
}

func networkFor(cfg *config.Config) params.Network {
	switch {
	case cfg.TestNet:
		return params.TestNet
	case cfg.RegNet:
		return params.RegNet
	default:
		return params.MainNet
	}
}

// staticChainState is a placeholder ChainState for the standalone node
// binary; a full peer/wallet layer would replace this.
type staticChainState struct {
	net params.Network
}

func (s *staticChainState) PeerCount() int            { return 1 }
func (s *staticChainState) SyncProgress() float64     { return 1.0 }
func (s *staticChainState) WalletLocked() bool        { return true }
func (s *staticChainState) SpendableUTXOCount() int   { return 0 }
