// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"time"

	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/core/types"
)

// TxSource represents a source of transactions to consider for inclusion
// in new blocks.
//
// The interface contract requires that all of these methods are safe for
// concurrent access with respect to the source.
type TxSource interface {
	// LastUpdated returns the last time a transaction was added to or
	// removed from the source pool.
	LastUpdated() time.Time

	// MiningDescs returns a slice of mining descriptors for all the
	// transactions in the source pool.
	MiningDescs() []*types.TxDesc

	// HaveTransaction returns whether the passed transaction hash exists
	// in the source pool.
	HaveTransaction(hash *hash.Hash) bool

	// Ancestors returns the set of unconfirmed ancestor transaction
	// hashes of txHash still in the source pool, used by the
	// ancestor-feerate package-selection algorithm.
	Ancestors(txHash *hash.Hash) []hash.Hash

	// Descendants returns the set of unconfirmed descendant transaction
	// hashes of txHash still in the source pool.
	Descendants(txHash *hash.Hash) []hash.Hash
}
