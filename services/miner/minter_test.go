// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hashkernel/posd/config"
	"github.com/hashkernel/posd/consensus/params"
	"github.com/hashkernel/posd/services/mining"
)

type fakeChainState struct {
	peerCount    int
	syncProgress float64
	locked       bool
	utxos        int
}

func (f *fakeChainState) PeerCount() int          { return f.peerCount }
func (f *fakeChainState) SyncProgress() float64    { return f.syncProgress }
func (f *fakeChainState) WalletLocked() bool       { return f.locked }
func (f *fakeChainState) SpendableUTXOCount() int  { return f.utxos }

func testMinterParams(t *testing.T) *params.Params {
	p, err := params.Select(params.MainNet)
	assert.NoError(t, err)
	pCopy := *p
	return &pCopy
}

func TestStartStopWhenMintingDisabled(t *testing.T) {
	cfg := &config.Config{Minting: false}
	chain := &fakeChainState{}
	m := New(cfg, testMinterParams(t), chain, &mining.Assembler{}, func(*mining.Template) error { return nil })

	m.Start()
	// Start is a no-op when Minting is disabled, so Stop must also be a
	// no-op rather than blocking on a goroutine that was never launched.
	m.Stop()
}

func TestBackoffUsesConfiguredBaseAndUTXOCount(t *testing.T) {
	cfg := &config.Config{StakeTimeIO: 500}
	chain := &fakeChainState{utxos: 100}
	m := New(cfg, testMinterParams(t), chain, &mining.Assembler{}, nil)

	d := m.backoff()
	assert.True(t, d >= 500*time.Millisecond)
}

func TestBackoffDefaultsWhenStakeTimeIOUnset(t *testing.T) {
	cfg := &config.Config{StakeTimeIO: 0}
	chain := &fakeChainState{utxos: 0}
	m := New(cfg, testMinterParams(t), chain, &mining.Assembler{}, nil)

	d := m.backoff()
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestInterruptibleSleepReturnsFalseOnQuit(t *testing.T) {
	cfg := &config.Config{}
	m := New(cfg, testMinterParams(t), &fakeChainState{}, &mining.Assembler{}, nil)
	m.quit = make(chan struct{})
	close(m.quit)

	assert.False(t, m.interruptibleSleep(time.Minute))
}
