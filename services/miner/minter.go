// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package miner runs the background minter loop: a single soft-cancelable
// goroutine that repeatedly asks the block assembler for a proof-of-stake
// template, hands it to the submit callback on a kernel hit, and backs off
// on a miss. The minter does not sign the block header; the assembler
// signs only the coinstake input, through the Wallet.
package miner

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/config"
	"github.com/hashkernel/posd/consensus/params"
	"github.com/hashkernel/posd/log"
	"github.com/hashkernel/posd/services/mining"
)

var logger = log.New("module", "miner")

// ChainState is the subset of chain/peer state the minter loop polls
// during its warm-up wait.
type ChainState interface {
	// PeerCount returns the current number of connected peers.
	PeerCount() int
	// SyncProgress returns initial-sync completion in [0,1].
	SyncProgress() float64
	// WalletLocked reports whether the signing wallet is presently locked.
	WalletLocked() bool
	// SpendableUTXOCount estimates |UTXOs| for the backoff formula.
	SpendableUTXOCount() int
}

// Minter drives the single background minting goroutine.
type Minter struct {
	mtx sync.Mutex

	cfg    *config.Config
	params *params.Params
	chain  ChainState

	assembler *mining.Assembler
	submit    func(*mining.Template) error

	started bool
	quit    chan struct{}
	wg      sync.WaitGroup
}

// New returns a Minter ready to Start.
func New(cfg *config.Config, p *params.Params, chain ChainState, assembler *mining.Assembler, submit func(*mining.Template) error) *Minter {
	return &Minter{
		cfg:       cfg,
		params:    p,
		chain:     chain,
		assembler: assembler,
		submit:    submit,
	}
}

// Start launches the minter loop. It is a no-op if already started or if
// minting is disabled in config.
func (m *Minter) Start() {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.started || !m.cfg.Minting {
		return
	}
	m.quit = make(chan struct{})
	m.started = true
	m.wg.Add(1)
	go m.loop()
	logger.Info("minter loop started")
}

// Stop signals the minter loop to exit and waits for it to do so. Safe to
// call when not started.
func (m *Minter) Stop() {
	m.mtx.Lock()
	if !m.started {
		m.mtx.Unlock()
		return
	}
	close(m.quit)
	m.started = false
	m.mtx.Unlock()

	m.wg.Wait()
	logger.Info("minter loop stopped")
}

// interruptibleSleep sleeps for d or returns early (false) if quit fires.
func (m *Minter) interruptibleSleep(d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-m.quit:
		return false
	}
}

func (m *Minter) loop() {
	defer m.wg.Done()

	for {
		for m.chain.WalletLocked() {
			if !m.interruptibleSleep(3 * time.Second) {
				return
			}
		}
		for (m.params.Net != params.RegNet && m.chain.PeerCount() == 0) || m.chain.SyncProgress() < 0.996 {
			if !m.interruptibleSleep(10 * time.Second) {
				return
			}
		}

		select {
		case <-m.quit:
			return
		default:
		}

		tmpl, err := m.assembler.CreateNewBlock()
		if err != nil || tmpl == nil || tmpl.PoSCancelled {
			if err != nil {
				logger.Debug("block assembly failed", "err", err)
			}
			if !m.interruptibleSleep(m.backoff()) {
				return
			}
			continue
		}
		logger.Trace("assembled template", "tmpl", log.NewLogClosure(func() string {
			return spew.Sdump(tmpl)
		}))

		if err := m.submit(tmpl); err != nil {
			logger.Warn("block submission failed", "err", err)
			if !m.interruptibleSleep(m.backoff()) {
				return
			}
			continue
		}

		logger.Info("submitted block", "hash", blockHashOf(tmpl))
		jitter := 60 + rand.Intn(4)
		if !m.interruptibleSleep(time.Duration(jitter) * time.Second) {
			return
		}
	}
}

// backoff computes pos_timeout_ms = staketimio + 30*sqrt(|UTXOs|).
func (m *Minter) backoff() time.Duration {
	staketimio := m.cfg.StakeTimeIO
	if staketimio <= 0 {
		staketimio = 500
	}
	n := m.chain.SpendableUTXOCount()
	ms := float64(staketimio) + 30*math.Sqrt(float64(n))
	return time.Duration(ms) * time.Millisecond
}

func blockHashOf(tmpl *mining.Template) hash.Hash {
	if tmpl == nil || tmpl.Block == nil {
		return hash.Hash{}
	}
	return tmpl.Block.BlockHash()
}
