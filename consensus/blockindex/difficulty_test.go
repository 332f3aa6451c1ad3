// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockindex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hashkernel/posd/consensus/hashalgo"
	"github.com/hashkernel/posd/consensus/params"
	"github.com/hashkernel/posd/core/types"
)

func TestNextWorkRequiredGenesisUsesLimit(t *testing.T) {
	p, err := params.Select(params.MainNet)
	assert.NoError(t, err)

	bits := NextWorkRequired(p, nil, time.Unix(0, 0), hashalgo.POW_SHA256)
	assert.Equal(t, BigToCompact(p.PowLimit[hashalgo.POW_SHA256]), bits)
}

func TestNextWorkRequiredNoRetargetingKeepsBits(t *testing.T) {
	shared, err := params.Select(params.MainNet)
	assert.NoError(t, err)
	pCopy := *shared
	p := &pCopy
	p.PowNoRetargeting = true

	genesisHdr := types.BlockHeader{Bits: 0x1d00ffff, Time: time.Unix(0, 0)}
	hdr := NewNode(&genesisHdr, nil, 0)
	bits := NextWorkRequired(p, hdr, time.Unix(120, 0), hashalgo.POW_SHA256)
	assert.Equal(t, hdr.Bits, bits)
}

func TestNextWorkRequiredClampsSlowBlocks(t *testing.T) {
	p, err := params.Select(params.MainNet)
	assert.NoError(t, err)

	genesisHdr := types.BlockHeader{Bits: 0x1d00ffff, Time: time.Unix(0, 0)}
	prev := NewNode(&genesisHdr, nil, 0)
	targetSecs := int64(p.PowTargetSpacing / time.Second)

	// a block that came in at 100x the target spacing must clamp to 4x,
	// easing the target rather than tracking the full gap.
	newTime := time.Unix(targetSecs*100, 0)
	bits := NextWorkRequired(p, prev, newTime, hashalgo.POW_SHA256)

	clampedBits := NextWorkRequired(p, prev, time.Unix(targetSecs*4, 0), hashalgo.POW_SHA256)
	assert.Equal(t, clampedBits, bits)
}
