// Package database handles all the lower level support for maintaining the
// blockchain in memory.
package database

import (
	"errors"
	"sync"
)

// ErrBlockNotFound is returned when a block is requested by an index that
// doesn't exist in the chain.
var ErrBlockNotFound = errors.New("block does not exist")

// =============================================================================

// Database manages the ordered set of blocks that make up the chain.
// Readers always see a complete chain. Appending and replacing happen
// under the write lock.
type Database struct {
	mu     sync.RWMutex
	blocks []Block
}

// New constructs a new database with the specified genesis block as the
// first block in the chain.
func New(genesis Block) *Database {
	return &Database{
		blocks: []Block{genesis},
	}
}

// Append adds a new block to the end of the chain.
func (db *Database) Append(block Block) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.blocks = append(db.blocks, block)
}

// Replace swaps the entire chain for the specified set of blocks.
func (db *Database) Replace(blocks []Block) {
	cpy := make([]Block, len(blocks))
	copy(cpy, blocks)

	db.mu.Lock()
	defer db.mu.Unlock()

	db.blocks = cpy
}

// LatestBlock returns the latest block.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.blocks[len(db.blocks)-1]
}

// Length returns the number of blocks in the chain.
func (db *Database) Length() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}

// Copy returns a copy of the blocks in the chain.
func (db *Database) Copy() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	cpy := make([]Block, len(db.blocks))
	copy(cpy, db.blocks)

	return cpy
}

// GetBlock returns the block at the specified index. Indexes start at 1.
func (db *Database) GetBlock(index uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if index == 0 || index > uint64(len(db.blocks)) {
		return Block{}, ErrBlockNotFound
	}

	return db.blocks[index-1], nil
}
