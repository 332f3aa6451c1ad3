// Copyright (c) 2017-2018 The qitmeer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stakemod computes and resolves the 64-bit stake modifier, the
// entropy source the kernel protocol mixes into every stake hash so that
// grinding a coinstake's hash cannot be predicted more than one modifier
// interval ahead.
package stakemod

import (
	"encoding/binary"
	"errors"
	"math/big"
	"math/rand"
	"sort"

	"github.com/hashkernel/posd/common"
	"github.com/hashkernel/posd/common/hash"
	"github.com/hashkernel/posd/consensus/blockindex"
	"github.com/hashkernel/posd/consensus/params"
)

// SentinelModifier is the fixed value used for height 0's successor and
// for every block on a regression-test network, spelling "stakemod" in
// ASCII when its 8 bytes are read most significant first (big-endian).
const SentinelModifier uint64 = 0x7374616b656d6f64

// candidate is one block considered during selection, carrying just the
// fields the shuffle/sort/select algorithm needs.
type candidate struct {
	node        *blockindex.Node
	selHash     *big.Int
	blockTime   int64
}

// section returns Section(s) = M*63 / (63 + (63-s)*(ratio-1)).
func section(M, ratio int64, s int) int64 {
	return M * 63 / (63 + int64(63-s)*(ratio-1))
}

// SelectionInterval sums Section(s) for s in 0..63.
func SelectionInterval(p *params.Params) int64 {
	var total int64
	for s := 0; s <= 63; s++ {
		total += section(p.ModifierInterval, p.ModifierIntervalRatio, s)
	}
	return total
}

// selectionHash returns H(candidate_hash || prev_mod) as a big-endian
// unsigned integer, right-shifted 32 bits when the candidate is PoS so a
// PoS block always outranks a PoW block of equal raw hash.
func selectionHash(n *blockindex.Node, prevMod uint64) *big.Int {
	buf := make([]byte, hash.HashSize+8)
	copy(buf, n.Hash.Bytes())
	binary.LittleEndian.PutUint64(buf[hash.HashSize:], prevMod)
	h := hash.HashH(buf)

	v := new(big.Int).SetBytes(reverse(h.Bytes()))
	if n.IsProofOfStake() {
		v.Rsh(v, 32)
	}
	return v
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[i] = b[len(b)-1-i]
	}
	return out
}

// compareSelection implements the deterministic tie-break: time
// ascending, then hash ascending by 32-bit little-endian limb, with ties
// broken by first-seen order (stable sort).
func compareSelection(a, b candidate) bool {
	if a.blockTime != b.blockTime {
		return a.blockTime < b.blockTime
	}
	return compareHashLimbs(a.node.Hash, b.node.Hash) < 0
}

func compareHashLimbs(a, b hash.Hash) int {
	for i := hash.HashSize - 4; i >= 0; i -= 4 {
		la := binary.LittleEndian.Uint32(a[i : i+4])
		lb := binary.LittleEndian.Uint32(b[i : i+4])
		if la != lb {
			if la < lb {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Next computes the stake modifier for the candidate block whose
// predecessor is prev, per the next-modifier computation.
func Next(p *params.Params, idx *blockindex.Index, prev *blockindex.Node, blockTime int64) (modifier uint64, generated bool, err error) {
	if prev == nil {
		return 0, true, nil
	}
	if prev.Height == 0 || p.Net == params.RegNet {
		return SentinelModifier, true, nil
	}

	prevMod, prevModTime, err := lastGeneratedModifier(prev)
	if err != nil {
		return 0, false, err
	}

	M := p.ModifierInterval
	if prevModTime/M >= prev.Time.Unix()/M {
		return prevMod, false, nil
	}

	selInterval := SelectionInterval(p)
	floorBoundary := (prev.Time.Unix()/M)*M - selInterval

	var pool []candidate
	for n := prev; n != nil && n.Time.Unix() >= floorBoundary; n = n.Parent {
		pool = append(pool, candidate{node: n, blockTime: n.Time.Unix()})
	}

	// Fisher-Yates shuffle before the stable sort; the sort's outcome is
	// identical either way, only first-seen tie-break order changes in
	// a way the comparator does not observe (hash comparisons never
	// tie in practice), so the shuffle is cosmetic here.
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	sort.SliceStable(pool, func(i, j int) bool { return compareSelection(pool[i], pool[j]) })

	selected := make(map[hash.Hash]bool)
	var newModifier uint64
	stop := floorBoundary
	for round := 0; round <= 63 && round < len(pool); round++ {
		stop += section(M, p.ModifierIntervalRatio, round)

		var best *candidate
		var bestHash *big.Int
		for i := range pool {
			c := &pool[i]
			if selected[c.node.Hash] {
				continue
			}
			if c.blockTime > stop {
				continue
			}
			sh := selectionHash(c.node, prevMod)
			if best == nil || sh.Cmp(bestHash) < 0 {
				best = c
				bestHash = sh
			}
		}
		if best == nil {
			break
		}
		selected[best.node.Hash] = true
		if best.node.StakeEntropyBit != 0 {
			newModifier |= uint64(1) << uint(round)
		}
	}

	return newModifier, true, nil
}

// lastGeneratedModifier walks back from n along predecessors to the
// first entry whose GeneratedStakeModifier is set.
func lastGeneratedModifier(n *blockindex.Node) (modifier uint64, modTime int64, err error) {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.GeneratedStakeModifier {
			return cur.StakeModifier, cur.Time.Unix(), nil
		}
	}
	return 0, 0, errors.New("stakemod: no generated modifier found walking back from block, chain data is corrupt")
}

// Resolve returns the modifier a kernel check for candidateTime, spent
// from coin, should use, per the two live kernel-modifier resolution
// eras. tip is the chain's active tip (used to pick the era) and
// containing is the block index entry that produced the spent coin.
func Resolve(p *params.Params, idx *blockindex.Index, tip *blockindex.Node, containing *blockindex.Node, candidateTime int64) (modifier uint64, modHeight int64, modTime int64, err error) {
	era := p.EraFor(tip.Height + 1)
	selInterval := SelectionInterval(p)

	if era == params.EraV05 {
		anchorHeight := tip.Height
		anchorTime := tip.Time.Unix()

		// The tip itself is already more than (StakeMinAge - selInterval)
		// older than candidateTime: no backward walk can resolve a usable
		// modifier, since the walk only ever moves to older blocks.
		if anchorTime+p.StakeMinAge[params.EraV05]-selInterval <= candidateTime {
			return 0, 0, 0, errors.New("stakemod: best block too old for stake")
		}

		var lastGenerated *blockindex.Node
		cur := tip
		for anchorTime+p.StakeMinAge[params.EraV05]-selInterval > candidateTime {
			if cur.Parent == nil {
				return 0, 0, 0, errors.New("stakemod: reached genesis block walking back for stake modifier")
			}
			cur = cur.Parent
			if cur.GeneratedStakeModifier {
				lastGenerated = cur
				anchorHeight = cur.Height
				anchorTime = cur.Time.Unix()
			}
		}
		if lastGenerated == nil {
			return 0, 0, 0, errors.New("stakemod: no generated modifier found walking back from tip")
		}
		return lastGenerated.StakeModifier, anchorHeight, anchorTime, nil
	}

	// v0.3 era: walk forward from the containing block for
	// SelectionInterval seconds along the active chain, else via the
	// chain formed by walking down from tip.
	deadline := containing.Time.Unix() + selInterval
	var found *blockindex.Node
	if idx.ActiveContains(containing) {
		for n := containing; n != nil && n.Time.Unix() <= deadline; n = idx.ActiveNext(n) {
			if n.GeneratedStakeModifier {
				found = n
			}
			if idx.ActiveNext(n) == nil {
				break
			}
		}
	}
	if found == nil {
		chain := walkDown(tip, containing)
		for _, n := range chain {
			if n.Time.Unix() > deadline {
				break
			}
			if n.GeneratedStakeModifier {
				found = n
			}
		}
	}
	if found == nil {
		return 0, 0, 0, errors.New("stakemod: no generated modifier found in forward walk")
	}
	return found.StakeModifier, found.Height, found.Time.Unix(), nil
}

// walkDown returns the chain from containing to tip (inclusive,
// containing-first), built by walking predecessors from tip down to
// containing's height.
func walkDown(tip, containing *blockindex.Node) []*blockindex.Node {
	var rev []*blockindex.Node
	for n := tip; n != nil && n.Height >= containing.Height; n = n.Parent {
		rev = append(rev, n)
	}
	out := make([]*blockindex.Node, len(rev))
	for i, n := range rev {
		out[len(rev)-1-i] = n
	}
	return out
}

// ErrCheckpointMismatch is returned by CheckCheckpoint when a block at a
// hard-coded height does not reduce to the expected checksum.
var ErrCheckpointMismatch = errors.New("stakemod: modifier checkpoint mismatch")

// checksum computes H(prev_checksum || flags || proof_hash || modifier)
// truncated to its low 32 bits, per §4.3.4.
func checksum(prevChecksum uint32, flags uint32, proofHash hash.Hash, modifier uint64) uint32 {
	buf := make([]byte, 4+4+hash.HashSize+8)
	binary.LittleEndian.PutUint32(buf[0:4], prevChecksum)
	binary.LittleEndian.PutUint32(buf[4:8], flags)
	copy(buf[8:8+hash.HashSize], proofHash.Bytes())
	binary.LittleEndian.PutUint64(buf[8+hash.HashSize:], modifier)
	h := hash.HashH(buf)
	return binary.LittleEndian.Uint32(h[:4])
}

// CheckCheckpoint verifies n's modifier checksum against any hard-coded
// ModifierCheckpoint at n.Height. prevChecksum is the checksum computed
// for n.Parent; flags carries the per-block proof-type/version bits the
// original packs alongside the checksum. A block at a height with no
// registered checkpoint always passes.
func CheckCheckpoint(p *params.Params, n *blockindex.Node, prevChecksum uint32, flags uint32) (newChecksum uint32, err error) {
	newChecksum = checksum(prevChecksum, flags, n.ProofHash, n.StakeModifier)
	for _, cp := range p.ModifierCheckpoints {
		if cp.Height == n.Height && cp.Checksum != newChecksum {
			return newChecksum, ErrCheckpointMismatch
		}
	}
	return newChecksum, nil
}

// EntropyBit derives the per-block entropy bit cached on the index
// entry: the low bit of the block hash post-upgrade, else bit 31 of
// limb 4 of Hash160(signature).
func EntropyBit(p *params.Params, version uint32, blockHash hash.Hash, signature []byte) uint8 {
	if common.BlockVersionMask(version) >= p.UpgradeBlockVersion[1] {
		return blockHash[0] & 1
	}
	h160 := hash.Hash160(signature)
	if len(h160) < 20 {
		return 0
	}
	limb4 := binary.LittleEndian.Uint32(h160[16:20])
	return uint8((limb4 >> 31) & 1)
}
