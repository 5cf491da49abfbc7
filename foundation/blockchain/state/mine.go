package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
	"github.com/ardanlabs/ledger/foundation/metrics"
)

// ErrChainChanged is returned when a proof was found for a block that is no
// longer the latest block in the chain.
var ErrChainChanged = errors.New("chain changed while mining")

// RewardSender is the sender recorded on the transaction that rewards
// the node for mining a block.
const RewardSender = "0"

// =============================================================================

// ForgeBlock takes every pending transaction and places them in a new block
// with the specified proof and previous hash. The block is added to the chain
// and returned. No validation of the proof or hash is performed.
func (s *State) ForgeBlock(proof uint64, prevHash string) database.Block {
	s.mu.Lock()
	block := s.forgeBlock(proof, prevHash)
	s.mu.Unlock()

	s.blockEvent(block)

	return block
}

// MineNewBlock solves the POW puzzle for the latest block, rewards this node
// and forges a new block with the pending transactions. The search can be
// cancelled through the context.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	prevBlock := s.db.LatestBlock()

	s.evHandler("state: MineNewBlock: MINING: perform POW: prevBlk[%d]", prevBlock.Index)

	t := time.Now()
	proof, err := pow.Search(ctx, prevBlock.Proof, s.genesis.Difficulty, s.evHandler)
	if err != nil {
		metrics.MiningDuration.WithLabelValues("cancelled").Observe(time.Since(t).Seconds())
		return database.Block{}, err
	}
	metrics.MiningDuration.WithLabelValues("solved").Observe(time.Since(t).Seconds())

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	prevHash := prevBlock.Hash()

	s.mu.Lock()

	// The chain may have been replaced while the search was running. The
	// proof only means something on top of the block it was found for.
	if latest := s.db.LatestBlock(); latest.Hash() != prevHash {
		s.mu.Unlock()
		s.evHandler("state: MineNewBlock: MINING: chain changed: searched[%d]: latest[%d]", prevBlock.Index, latest.Index)
		return database.Block{}, ErrChainChanged
	}

	s.evHandler("state: MineNewBlock: MINING: reward node[%s]", s.nodeID)

	s.mempool.Add(database.NewTx(RewardSender, s.nodeID, s.genesis.MiningReward))
	block := s.forgeBlock(proof, prevHash)

	s.mu.Unlock()

	s.blockEvent(block)

	return block, nil
}

// =============================================================================

// forgeBlock does the work of ForgeBlock. The caller must hold the lock.
func (s *State) forgeBlock(proof uint64, prevHash string) database.Block {
	trans := s.mempool.Drain()

	block := database.NewBlock(s.db.LatestBlock().Index+1, proof, prevHash, trans)
	s.db.Append(block)

	metrics.BlocksForged.Inc()
	metrics.ChainLength.Set(float64(s.db.Length()))
	metrics.PendingTransactions.Set(0)

	s.evHandler("state: forgeBlock: blk[%d]: proof[%d]: trans[%d]", block.Index, block.Proof, len(block.Transactions))

	return block
}

// blockEvent provides a specific event about a new block in the chain for
// application specific support.
func (s *State) blockEvent(block database.Block) {
	blockJSON, err := json.Marshal(block)
	if err != nil {
		blockJSON = []byte(fmt.Sprintf("%q", err.Error()))
	}

	s.evHandler(`viewer: block: {"hash":%q,"block":%s}`, block.Hash(), string(blockJSON))
}
