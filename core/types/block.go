// Copyright 2017-2018 The nox developers

package types

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/consensus/hashalgo"
	s "github.com/hashkernel/posd/core/serialization"
)

// MaxBlockHeaderPayload is the maximum number of bytes a block header can be.
// Version 4 bytes + PrevBlock 32 bytes + MerkleRoot 32 bytes + Bits 4 bytes
// + Time 4 bytes + Nonce 8 bytes + Algo 1 byte + Signature length-prefixed.
const MaxBlockHeaderPayload = 4 + (hash.HashSize * 2) + 4 + 4 + 8 + 1 + maxHeaderSignatureSize + 9

// maxHeaderSignatureSize bounds the coinstake signature carried by a
// proof-of-stake header; ECDSA signatures over secp256k1 are well under
// this in practice.
const maxHeaderSignatureSize = 80

// MaxBlockPayload is the maximum bytes a block message can be in bytes.
const MaxBlockPayload = 4000000

// maxTxPerBlock is the maximum number of transactions that could
// possibly fit into a block.
const maxTxPerBlock = (MaxBlockPayload / minTxPayload) + 1

// BlockHeader holds metadata identifying a block and linking it to its
// single predecessor. The header commits to a proof: either a coinstake
// kernel hash (Algo.IsProofOfStake()) verified via Signature, or a
// proof-of-work solution verified via Nonce against Bits.
type BlockHeader struct {
	// Version is the block format version.
	Version uint32

	// PrevBlock is the hash of the previous block in the chain.
	PrevBlock hash.Hash

	// MerkleRoot is the merkle root of the transaction tree for this block.
	MerkleRoot hash.Hash

	// Bits is the compact-encoded proof-of-work/stake target for the
	// header's Algo.
	Bits uint32

	// Time is the block's timestamp.
	Time time.Time

	// Nonce is varied by proof-of-work miners while searching for a
	// hash below Bits. Unused (left zero) for proof-of-stake headers.
	Nonce uint64

	// Algo selects which hashing algorithm secures this header, and in
	// particular whether the block is a proof-of-stake block.
	Algo hashalgo.Algo

	// Signature is the coinstake signature over the header hash, present
	// only when Algo.IsProofOfStake(). It is produced with the private
	// key controlling the kernel input's output script.
	Signature []byte
}

// BlockHash computes the block identifier hash for the given block header.
func (h *BlockHeader) BlockHash() hash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, MaxBlockHeaderPayload))
	_ = writeBlockHeader(buf, 0, h)
	return hash.DoubleHashH(buf.Bytes())
}

// SigningHash returns the hash a coinstake signature is computed over: the
// header with Signature cleared, so the signature cannot cover itself.
func (h *BlockHeader) SigningHash() hash.Hash {
	stripped := *h
	stripped.Signature = nil
	return stripped.BlockHash()
}

// readBlockHeader reads a block header from io reader.
func readBlockHeader(r io.Reader, pver uint32, bh *BlockHeader) error {
	var algo uint8
	err := s.ReadElements(r, &bh.Version, &bh.PrevBlock, &bh.MerkleRoot,
		&bh.Bits, (*s.Uint32Time)(&bh.Time), &bh.Nonce, &algo)
	if err != nil {
		return err
	}
	bh.Algo = hashalgo.Algo(algo)

	sig, err := s.ReadVarBytesMax(r, pver, maxHeaderSignatureSize, "BlockHeader.Signature")
	if err != nil {
		return err
	}
	bh.Signature = sig
	return nil
}

// writeBlockHeader writes a block header to w.
func writeBlockHeader(w io.Writer, pver uint32, bh *BlockHeader) error {
	sec := uint32(bh.Time.Unix())
	err := s.WriteElements(w, bh.Version, &bh.PrevBlock, &bh.MerkleRoot,
		bh.Bits, sec, bh.Nonce, uint8(bh.Algo))
	if err != nil {
		return err
	}
	return s.WriteVarBytes(w, pver, bh.Signature)
}

// Serialize encodes a block header from r into the receiver using a format
// suitable for long-term storage.
func (h *BlockHeader) Serialize(w io.Writer) error {
	return writeBlockHeader(w, 0, h)
}

// Deserialize decodes a block header from r into the receiver.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	return readBlockHeader(r, 0, h)
}

// Block couples a header with the transaction list it commits to via
// MerkleRoot. The first transaction is always the coinbase (or, on a
// proof-of-stake block, the coinbase is immediately followed by the
// coinstake transaction at index 1).
type Block struct {
	Header       BlockHeader
	Transactions []*Transaction
}

// BlockHash computes the block identifier hash for this block.
func (block *Block) BlockHash() hash.Hash {
	return block.Header.BlockHash()
}

// IsProofOfStake reports whether this block's reward is claimed through a
// coinstake transaction rather than mining a coinbase alone.
func (block *Block) IsProofOfStake() bool {
	return block.Header.Algo.IsProofOfStake()
}

// SerializeSize returns the number of bytes it would take to serialize
// the block.
func (block *Block) SerializeSize() int {
	n := MaxBlockHeaderPayload + s.VarIntSerializeSize(uint64(len(block.Transactions)))

	for _, tx := range block.Transactions {
		n += tx.SerializeSize()
	}

	return n
}

// Serialize encodes the block to w using a format suitable for long-term
// storage.
func (block *Block) Serialize(w io.Writer) error {
	return block.Encode(w, 0)
}

// Encode encodes the receiver to w.
func (block *Block) Encode(w io.Writer, pver uint32) error {
	err := writeBlockHeader(w, pver, &block.Header)
	if err != nil {
		return err
	}

	err = s.WriteVarInt(w, pver, uint64(len(block.Transactions)))
	if err != nil {
		return err
	}

	for _, tx := range block.Transactions {
		err = tx.Encode(w, pver, TxSerializeFull)
		if err != nil {
			return err
		}
	}
	return nil
}

// Deserialize decodes a block from r into the receiver.
func (b *Block) Deserialize(r io.Reader) error {
	return b.Decode(r, 0)
}

// Decode decodes r into the receiver.
func (b *Block) Decode(r io.Reader, pver uint32) error {
	err := readBlockHeader(r, pver, &b.Header)
	if err != nil {
		return err
	}

	txCount, err := s.ReadVarInt(r, pver)
	if err != nil {
		return err
	}
	if txCount > maxTxPerBlock {
		return fmt.Errorf("block.Decode: too many transactions to fit into a block "+
			"[count %d, max %d]", txCount, maxTxPerBlock)
	}

	b.Transactions = make([]*Transaction, 0, txCount)
	for i := uint64(0); i < txCount; i++ {
		var tx Transaction
		err := tx.Deserialize(r)
		if err != nil {
			return err
		}
		b.Transactions = append(b.Transactions, &tx)
	}

	return nil
}

// DeserializeTxLoc decodes r in the same manner Deserialize does, but it
// returns a slice containing the start and length of each transaction
// within the raw data being deserialized.
func (b *Block) DeserializeTxLoc(r *bytes.Buffer) ([]TxLoc, error) {
	fullLen := r.Len()

	err := readBlockHeader(r, 0, &b.Header)
	if err != nil {
		return nil, err
	}

	txCount, err := s.ReadVarInt(r, 0)
	if err != nil {
		return nil, err
	}
	if txCount > maxTxPerBlock {
		return nil, fmt.Errorf("block.DeserializeTxLoc: too many transactions to fit into a block "+
			"[count %d, max %d]", txCount, maxTxPerBlock)
	}

	b.Transactions = make([]*Transaction, 0, txCount)
	txLocs := make([]TxLoc, txCount)
	for i := uint64(0); i < txCount; i++ {
		txLocs[i].TxStart = fullLen - r.Len()
		var tx Transaction
		err := tx.Deserialize(r)
		if err != nil {
			return nil, err
		}
		b.Transactions = append(b.Transactions, &tx)
		txLocs[i].TxLen = (fullLen - r.Len()) - txLocs[i].TxStart
	}
	return txLocs, nil
}

// AddTransaction adds a transaction to the block.
func (b *Block) AddTransaction(tx *Transaction) error {
	b.Transactions = append(b.Transactions, tx)
	return nil
}

// SerializedBlock provides easier and more efficient manipulation of raw
// blocks. It also memorizes hashes for the block and its transactions on
// their first access so subsequent accesses don't repeat the relatively
// expensive hashing operations.
type SerializedBlock struct {
	block           *Block    // Underlying Block
	hash            hash.Hash // Cached block hash
	serializedBytes []byte    // Serialized bytes for the block
	transactions    []*Tx     // Transactions
	txnsGenerated   bool      // ALL wrapped transactions generated
	height          int64     // height is the position in the chain
}

// NewBlock returns a new instance of the serialized block given an
// underlying Block. The block hash is calculated and cached.
func NewBlock(block *Block) *SerializedBlock {
	return &SerializedBlock{
		hash:  block.BlockHash(),
		block: block,
	}
}

// NewBlockDeepCopyCoinbase returns a new instance of a block given an
// underlying Block, but makes a deep copy of the coinbase transaction
// since it's sometimes mutable.
func NewBlockDeepCopyCoinbase(msgBlock *Block) *SerializedBlock {
	msgBlockCopy := new(Block)

	lenTxs := len(msgBlock.Transactions)
	mtxsCopy := make([]*Transaction, lenTxs)
	copy(mtxsCopy, msgBlock.Transactions)

	msgBlockCopy.Transactions = mtxsCopy
	msgBlockCopy.Header = msgBlock.Header

	// Deep copy the first transaction. Also change the coinbase pointer.
	msgBlockCopy.Transactions[0] =
		NewTxDeep(msgBlockCopy.Transactions[0]).Transaction()

	bl := &SerializedBlock{
		block: msgBlockCopy,
	}
	bl.hash = msgBlock.BlockHash()

	return bl
}

// Hash returns the block identifier hash for the Block. This is
// equivalent to calling BlockHash on the underlying Block, but caches the
// result so subsequent calls are more efficient.
func (sb *SerializedBlock) Hash() *hash.Hash {
	return &sb.hash
}

func (sb *SerializedBlock) Block() *Block {
	return sb.block
}

// NewBlockFromBytes returns a new instance of a block given the
// serialized bytes.
func NewBlockFromBytes(serializedBytes []byte) (*SerializedBlock, error) {
	br := bytes.NewReader(serializedBytes)
	b, err := NewBlockFromReader(br)
	if err != nil {
		return nil, err
	}
	b.serializedBytes = serializedBytes

	return b, nil
}

// NewBlockFromReader returns a new instance of a block given a Reader to
// deserialize the block.
func NewBlockFromReader(r io.Reader) (*SerializedBlock, error) {
	var block Block
	err := block.Deserialize(r)
	if err != nil {
		return nil, err
	}
	sb := NewBlock(&block)
	return sb, nil
}

// Bytes returns the serialized bytes for the Block. This is equivalent to
// calling Serialize on the underlying Block, but caches the result so
// subsequent calls are more efficient.
func (sb *SerializedBlock) Bytes() ([]byte, error) {
	if len(sb.serializedBytes) != 0 {
		return sb.serializedBytes, nil
	}

	var w bytes.Buffer
	w.Grow(sb.block.SerializeSize())
	err := sb.block.Serialize(&w)
	if err != nil {
		return nil, err
	}
	serialized := w.Bytes()

	sb.serializedBytes = serialized
	return serialized, nil
}

// TxLoc returns the offsets and lengths of each transaction in a raw
// block. It is used to allow fast indexing into transactions within the
// raw byte stream.
func (sb *SerializedBlock) TxLoc() ([]TxLoc, error) {
	rawMsg, err := sb.Bytes()
	if err != nil {
		return nil, err
	}
	rbuf := bytes.NewBuffer(rawMsg)

	var mblock Block
	txLocs, err := mblock.DeserializeTxLoc(rbuf)
	if err != nil {
		return nil, err
	}
	return txLocs, err
}

// Height returns the chain height recorded against this serialized block.
func (sb *SerializedBlock) Height() int64 {
	return sb.height
}

func (sb *SerializedBlock) SetHeight(height int64) {
	sb.height = height
}

// Transactions returns a slice of wrapped transactions for all
// transactions in the Block. This is nearly equivalent to accessing the
// raw transactions (types.Transaction) in the underlying types.Block, but
// provides easy access to wrapped versions of them.
func (sb *SerializedBlock) Transactions() []*Tx {
	if sb.txnsGenerated {
		return sb.transactions
	}

	if len(sb.transactions) == 0 {
		sb.transactions = make([]*Tx, len(sb.block.Transactions))
	}

	for i, tx := range sb.transactions {
		if tx == nil {
			newTx := NewTx(sb.block.Transactions[i])
			newTx.SetIndex(i)
			sb.transactions[i] = newTx
		}
	}

	sb.txnsGenerated = true
	return sb.transactions
}
