// Copyright 2017-2018 The nox developers
// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import "github.com/hashkernel/posd/common/hash"

// Amount represents a quantity of atoms, the smallest unit a transaction
// output can hold.
type Amount int64

const (
	// AtomsPerCent is the number of atomic units in one coin cent.
	AtomsPerCent = 1e6

	// AtomsPerCoin is the number of atomic units in one coin.
	AtomsPerCoin = 1e8

	// MaxAmount is the maximum transaction amount allowed in atoms.
	MaxAmount = 21e6 * AtomsPerCoin
)

// ZeroHash is the zero value of a hash.Hash, used as the previous-outpoint
// hash of a coinbase input.
var ZeroHash = hash.ZeroHash
