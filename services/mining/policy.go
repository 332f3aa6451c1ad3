// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

// Policy houses the policy (configuration parameters) which is used to
// control the block template generation.
type Policy struct {
	// BlockMinFeeRate is the minimum fee rate, in atoms per kilobyte, a
	// transaction must pay to be considered for inclusion. SelectPackages
	// applies it to every candidate.
	BlockMinFeeRate int64

	// MaxBlockWeight is the maximum block weight the assembler will
	// build a template up to.
	MaxBlockWeight uint32

	// BlockPrioritySize is the size in bytes for high priority/low fee
	// transactions. SelectPackages does not read it, so no space is
	// reserved for such transactions.
	BlockPrioritySize uint32

	// MaxSigOps is the maximum signature operations a template may
	// carry, separate from weight.
	MaxSigOps uint32
}
