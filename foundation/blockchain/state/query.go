package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// QueryChainLength returns the current length of the chain.
func (s *State) QueryChainLength() int {
	return s.db.Length()
}

// QueryBlockByIndex returns the block at the specified position in the chain.
func (s *State) QueryBlockByIndex(index uint64) (database.Block, error) {
	return s.db.GetBlock(index)
}
