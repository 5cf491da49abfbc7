package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// ErrEmptyChain is returned from ValidateChain when there are no blocks
// to validate.
var ErrEmptyChain = errors.New("chain has no blocks")

// =============================================================================

// Block represents a group of transactions batched together.
//
// The fields are declared in the sorted order of their json keys. The hash of
// a block is calculated over its json encoding, so this order is the
// canonical form every node hashes.
type Block struct {
	Index        uint64  `json:"index"`         // Position of the block in the chain starting at 1.
	PrevHash     string  `json:"previous_hash"` // Hash of the previous block in the chain.
	Proof        uint64  `json:"proof"`         // Value that solves the POW puzzle for the previous proof.
	TimeStamp    float64 `json:"timestamp"`     // Unix time in seconds the block was forged.
	Transactions []Tx    `json:"transactions"`  // Transactions that were pending when the block was forged.
}

// NewBlock constructs a block stamped with the current time. A nil set of
// transactions is stored as an empty set.
func NewBlock(index uint64, proof uint64, prevHash string, trans []Tx) Block {
	if trans == nil {
		trans = []Tx{}
	}

	return Block{
		Index:        index,
		PrevHash:     prevHash,
		Proof:        proof,
		TimeStamp:    float64(time.Now().UTC().UnixNano()) / float64(time.Second),
		Transactions: trans,
	}
}

// Hash returns the unique hash for the Block.
func (b Block) Hash() string {
	return signature.Hash(b)
}

// ValidateNext takes the block that precedes this one in a chain and validates
// the two are properly linked.
func (b Block) ValidateNext(previousBlock Block, difficulty uint, evHandler func(v string, args ...any)) error {
	evHandler("database: ValidateNext: validate: blk[%d]: check: parent hash does match parent block", b.Index)

	if hash := previousBlock.Hash(); b.PrevHash != hash {
		return fmt.Errorf("parent block hash doesn't match our known parent, got %s, exp %s", b.PrevHash, hash)
	}

	evHandler("database: ValidateNext: validate: blk[%d]: check: proof solves the parent proof", b.Index)

	if !pow.Valid(previousBlock.Proof, b.Proof, difficulty) {
		return fmt.Errorf("proof %d does not solve parent proof %d", b.Proof, previousBlock.Proof)
	}

	return nil
}

// =============================================================================

// ValidateChain walks the chain from the second block onward and validates
// that every block is properly linked to the one before it. A chain with a
// single block has nothing to compare and is valid. The blocks are never
// modified, so a chain that came from another node can be checked safely.
func ValidateChain(blocks []Block, difficulty uint, evHandler func(v string, args ...any)) error {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}

	if len(blocks) == 0 {
		return ErrEmptyChain
	}

	for i := 1; i < len(blocks); i++ {
		if err := blocks[i].ValidateNext(blocks[i-1], difficulty, evHandler); err != nil {
			return fmt.Errorf("block at position %d: %w", i, err)
		}
	}

	return nil
}

// =============================================================================

// ChainData represents the chain as it's exchanged between nodes.
type ChainData struct {
	Chain  []Block `json:"chain"`
	Length int     `json:"length"`
}

// NewChainData constructs the value to send to other nodes.
func NewChainData(blocks []Block) ChainData {
	return ChainData{
		Chain:  blocks,
		Length: len(blocks),
	}
}
