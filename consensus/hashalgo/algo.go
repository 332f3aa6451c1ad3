// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashalgo models the block header's algorithm tag as a small
// tagged variant and dispatches the proof hash computation for it in one
// place instead of scattering per-algorithm switches through the caller.
package hashalgo

import (
	"fmt"

	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/common/hash/btc"
)

// Algo identifies which proof a block header carries. A PoS block's
// proof-hash is computed by the kernel package instead of ComputeHash
// below; Algo still tags the header so block (de)serialization and
// target-limit lookups have one dispatch point.
type Algo byte

const (
	POS Algo = iota
	POW_SHA256
	POW_SHA1D
	POW_QUARK
	POW_SCRYPT2
	POW_ARGON2D
)

var names = map[Algo]string{
	POS:         "pos",
	POW_SHA256:  "sha256d",
	POW_SHA1D:   "sha1d",
	POW_QUARK:   "quark",
	POW_SCRYPT2: "scrypt2",
	POW_ARGON2D: "argon2d",
}

func (a Algo) String() string {
	if n, ok := names[a]; ok {
		return n
	}
	return fmt.Sprintf("algo(%d)", byte(a))
}

func (a Algo) IsProofOfStake() bool {
	return a == POS
}

// HeaderHasher computes the algorithm-specific proof hash of a serialized
// block header. Implementations are assumed-available pure functions per
// the node's hash-primitive layer; this package only composes the
// dispatch, it does not reimplement SHA1/Quark/Scrypt2/Argon2d.
type HeaderHasher func(headerBytes []byte) hash.Hash

var registry = map[Algo]HeaderHasher{
	POW_SHA256: func(b []byte) hash.Hash { return btc.DoubleHashH(b) },
}

// Register installs the proof hash function for a PoW algorithm tag. The
// five PoW algorithms share this one registration point; POS is excluded
// because stake proof is validated through the kernel package's target
// test, never through ComputeHash.
func Register(a Algo, h HeaderHasher) {
	if a == POS {
		panic("hashalgo: cannot register a header hasher for POS")
	}
	registry[a] = h
}

// ComputeHash returns the proof hash for a PoW header using the hasher
// registered for its algorithm tag. Callers must not invoke this for a PoS
// header; use the kernel package's stake hash / target test instead.
func ComputeHash(a Algo, headerBytes []byte) (hash.Hash, error) {
	if a == POS {
		return hash.Hash{}, fmt.Errorf("hashalgo: ComputeHash called with POS tag")
	}
	h, ok := registry[a]
	if !ok {
		return hash.Hash{}, fmt.Errorf("hashalgo: no header hasher registered for %s", a)
	}
	return h(headerBytes), nil
}
