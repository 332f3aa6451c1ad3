// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"github.com/hashkernel/posd/core/types"
)

// SpendableCoin is one UTXO the wallet offers as kernel-search material
// for coinstake creation.
type SpendableCoin struct {
	Outpoint  types.TxOutPoint
	Amount    int64
	PkScript  []byte
	BlockTime int64
	Height    int64
}

// Wallet is the signing and coin-selection surface the assembler needs
// to build and sign a coinstake transaction. It is intentionally narrow:
// everything about key management and coin storage lives behind it.
type Wallet interface {
	// Locked reports whether the wallet is presently unable to sign.
	Locked() bool

	// SpendableCoins returns owned outputs meeting minAge/minDepth at
	// height, optionally restricted to addrs (nil/empty means all).
	SpendableCoins(minAge, minDepth, height int64, addrs []string) []SpendableCoin

	// CoinAgeDays returns how many days a coin has sat unspent as of
	// height, the coin_age subsidy computes interest from.
	CoinAgeDays(coin SpendableCoin, height int64) float64

	// OutputScriptFor converts a coin's P2PKH/P2WKH/P2PK paying script
	// into the P2PK output script the coinstake credit should pay, or
	// an error if the coin's script type is unsupported.
	OutputScriptFor(coin SpendableCoin) ([]byte, error)

	// SignCoinstakeInput signs input 0 of tx (the kernel outpoint) with
	// SIGHASH_ALL against prevPkScript.
	SignCoinstakeInput(tx *types.Transaction, prevPkScript []byte) error

	// Count reports the number of spendable coins. The minter loop's
	// backoff takes its |UTXOs| term from ChainState.SpendableUTXOCount,
	// not from this method.
	Count() int
}
