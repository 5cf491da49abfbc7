package state

import (
	"context"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/metrics"
)

// ResolveConflicts is the consensus algorithm. It asks every known peer for
// its chain and replaces the local chain with the longest valid chain found.
// Only a chain strictly longer than the local chain is considered, so the
// local chain wins a tie. Peers that fail to respond or send a malformed or
// invalid chain are skipped. It reports true if the local chain was replaced.
// When the context ends the remaining peers are not asked, and the best chain
// found so far is still adopted. The context error is only returned when no
// chain was adopted.
//
// The lock is only held for the final replacement, so the chain can be read
// and extended while peers are being queried.
func (s *State) ResolveConflicts(ctx context.Context) (bool, error) {
	s.evHandler("state: ResolveConflicts: started")
	defer s.evHandler("state: ResolveConflicts: completed")

	maxLength := s.db.Length()
	var newChain []database.Block

	// Grab and verify the chains from all the nodes in our network.
	for _, pr := range s.RetrieveKnownPeers() {
		if ctx.Err() != nil {
			s.evHandler("state: ResolveConflicts: STOPPED: peer[%s] not asked: %s", pr, ctx.Err())
			break
		}

		chainData, err := s.fetcher.FetchChain(ctx, pr)
		if err != nil {
			s.evHandler("state: ResolveConflicts: peer[%s]: SKIP: %s", pr, err)
			metrics.PeerFetchFailures.WithLabelValues("unreachable").Inc()
			continue
		}

		if chainData.Length != len(chainData.Chain) {
			s.evHandler("state: ResolveConflicts: peer[%s]: SKIP: reported length[%d] holds blocks[%d]", pr, chainData.Length, len(chainData.Chain))
			metrics.PeerFetchFailures.WithLabelValues("malformed").Inc()
			continue
		}

		s.evHandler("state: ResolveConflicts: peer[%s]: length[%d]: best[%d]", pr, chainData.Length, maxLength)

		// Check if the length is longer and the chain is valid.
		if chainData.Length <= maxLength {
			continue
		}

		if !s.IsValidChain(chainData.Chain) {
			s.evHandler("state: ResolveConflicts: peer[%s]: REJECTED: invalid chain", pr)
			metrics.PeerFetchFailures.WithLabelValues("invalid").Inc()
			continue
		}

		maxLength = chainData.Length
		newChain = chainData.Chain
	}

	// A chain that was accepted before the context ended is still adopted.
	if newChain == nil {
		if err := ctx.Err(); err != nil {
			metrics.Resolutions.WithLabelValues("failed").Inc()
			return false, err
		}

		metrics.Resolutions.WithLabelValues("authoritative").Inc()
		return false, nil
	}

	if !s.replaceChain(newChain) {
		metrics.Resolutions.WithLabelValues("authoritative").Inc()
		return false, nil
	}

	// Any search in progress is working on a block that is gone.
	if s.Worker != nil {
		s.Worker.SignalCancelMining()
	}

	metrics.Resolutions.WithLabelValues("replaced").Inc()

	return true, nil
}

// replaceChain swaps the local chain for the specified chain as long as it is
// still longer than the local chain. The local chain may have grown while
// peers were being queried.
func (s *State) replaceChain(chain []database.Block) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if length := s.db.Length(); len(chain) <= length {
		s.evHandler("state: replaceChain: KEEP: local chain grew to length[%d]: candidate[%d]", length, len(chain))
		return false
	}

	s.db.Replace(chain)
	metrics.ChainLength.Set(float64(len(chain)))

	s.evHandler("state: replaceChain: REPLACED: length[%d]: latest[%s]", len(chain), chain[len(chain)-1].Hash())

	return true
}
