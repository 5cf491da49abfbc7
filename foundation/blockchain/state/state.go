// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/ardanlabs/ledger/foundation/metrics"
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the blockchain.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for mining and background conflict resolution.
type Worker interface {
	Shutdown()
	Mine(ctx context.Context) (database.Block, error)
	SignalCancelMining()
}

// Fetcher interface represents the behavior required to retrieve the chain
// held by a peer. Implementations return an error for any peer that can't be
// reached or doesn't respond with a chain.
type Fetcher interface {
	FetchChain(ctx context.Context, pr peer.Peer) (database.ChainData, error)
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	NodeID     string
	Host       string
	Genesis    genesis.Genesis
	KnownPeers *peer.PeerSet
	Fetcher    Fetcher
	EvHandler  EventHandler
}

// State manages the blockchain database.
type State struct {
	nodeID    string
	host      string
	evHandler EventHandler

	// mu serializes every change to the chain and the mempool. Submitting a
	// transaction and forging a block can never interleave.
	mu sync.Mutex

	knownPeers *peer.PeerSet
	fetcher    Fetcher
	genesis    genesis.Genesis
	mempool    *mempool.Mempool
	db         *database.Database

	Worker Worker
}

// New constructs a new blockchain for data management. The chain starts
// with the genesis block.
func New(cfg Config) (*State, error) {
	if cfg.NodeID == "" {
		return nil, errors.New("node id is required")
	}

	if cfg.Fetcher == nil {
		return nil, errors.New("peer chain fetcher is required")
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	gen := cfg.Genesis
	if gen.PrevHash == "" {
		gen = genesis.Default()
	}

	// Create the genesis block. This is the only block that doesn't link
	// to a previous block.
	genesisBlock := database.NewBlock(1, gen.Proof, gen.PrevHash, nil)

	state := State{
		nodeID:    cfg.NodeID,
		host:      cfg.Host,
		evHandler: ev,

		knownPeers: knownPeers,
		fetcher:    cfg.Fetcher,
		genesis:    gen,
		mempool:    mempool.New(),
		db:         database.New(genesisBlock),
	}

	metrics.ChainLength.Set(1)
	ev("state: New: genesis: blk[%d]: proof[%d]: difficulty[%d]", genesisBlock.Index, genesisBlock.Proof, gen.Difficulty)

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all blockchain writing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// IsValidChain determines if the specified chain is properly linked and
// every proof is solved. The chain is not modified.
func (s *State) IsValidChain(chain []database.Block) bool {
	if err := database.ValidateChain(chain, s.genesis.Difficulty, s.evHandler); err != nil {
		s.evHandler("state: IsValidChain: INVALID: %s", err)
		return false
	}

	return true
}
