package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/metrics"
)

// SubmitTransaction accepts a transaction for inclusion and returns the index
// of the block it is expected to land in. The transaction fields are not
// validated here.
func (s *State) SubmitTransaction(tx database.Tx) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.mempool.Add(tx)
	metrics.PendingTransactions.Set(float64(n))

	index := s.db.LatestBlock().Index + 1

	s.evHandler("state: SubmitTransaction: tx[%s]: blk[%d]: pending[%d]", tx, index, n)

	return index
}
