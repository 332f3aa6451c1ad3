// Copyright (c) 2021 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package types

import (
	"math"
)

// TxType indicates the type of a transaction: regular, coinbase, or coinstake.
type TxType int

const (
	TxTypeRegular TxType = iota
	TxTypeCoinbase
	TxTypeCoinstake
)

// DetermineTxType determines the type of transaction.
func DetermineTxType(tx *Transaction) TxType {
	if IsCoinBaseTx(tx) {
		return TxTypeCoinbase
	}
	if IsCoinStakeTx(tx) {
		return TxTypeCoinstake
	}
	return TxTypeRegular
}

// IsCoinBaseTx determines whether or not a transaction is a coinbase.  A
// coinbase is a special transaction created by a block assembler that has
// no real input.  This is represented by a transaction with a single input
// whose previous output index is set to the maximum value along with a
// zero hash.
func IsCoinBaseTx(tx *Transaction) bool {
	// A coin base must only have one transaction input.
	if len(tx.TxIn) != 1 {
		return false
	}
	// The previous output of a coin base must have a max value index and a
	// zero hash.
	prevOut := &tx.TxIn[0].PreviousOut
	return prevOut.OutIndex == math.MaxUint32 && prevOut.Hash.IsEqual(&ZeroHash)
}

// IsCoinStakeTx determines whether or not a transaction is a coinstake.
// A coinstake transaction spends the kernel outpoint and carries an empty
// marker output at index 0 (zero value, empty script) followed by one or
// more payout outputs, the same convention the original kernel protocol
// uses to tell a stake-reward transaction apart from a regular spend.
func IsCoinStakeTx(tx *Transaction) bool {
	if len(tx.TxIn) < 1 || len(tx.TxOut) < 2 {
		return false
	}
	marker := tx.TxOut[0]
	return marker.Amount == 0 && len(marker.PkScript) == 0
}

// MakeCoinstakeMarker builds the empty marker output that must occupy
// index 0 of every coinstake transaction.
func MakeCoinstakeMarker() *TxOutput {
	return &TxOutput{Amount: 0, PkScript: nil}
}
