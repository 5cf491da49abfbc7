// Package worker implements mining and the periodic resolution of conflicts
// with peers for the blockchain.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
)

// ErrShutdown is returned when work is requested from a worker that is
// shutting down.
var ErrShutdown = errors.New("worker is shutting down")

// ErrMiningCancelled is returned when a mining operation is cancelled because
// the chain was replaced or the worker is shutting down.
var ErrMiningCancelled = errors.New("mining cancelled")

// resolveTimeout bounds a single round of conflict resolution.
const resolveTimeout = 30 * time.Second

// =============================================================================

// mineRequest is a request to the mining goroutine to mine a block.
type mineRequest struct {
	ctx    context.Context
	result chan mineResult
}

// mineResult is the outcome of a mining request.
type mineResult struct {
	block database.Block
	err   error
}

// Worker manages the POW workflows for the blockchain.
type Worker struct {
	state           *state.State
	wg              sync.WaitGroup
	resolveInterval time.Duration
	shut            chan struct{}
	mineRequests    chan mineRequest
	cancelMining    chan bool
	evHandler       state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up all the background processes. The chain is resolved with peers
// every resolveInterval. An interval of zero turns periodic resolution off.
func Run(st *state.State, evHandler state.EventHandler, resolveInterval time.Duration) *Worker {
	if evHandler == nil {
		evHandler = func(v string, args ...any) {}
	}

	w := Worker{
		state:           st,
		resolveInterval: resolveInterval,
		shut:            make(chan struct{}),
		mineRequests:    make(chan mineRequest),
		cancelMining:    make(chan bool, 1),
		evHandler:       evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	// Update this node before starting any support G's.
	w.Sync()

	// Load the set of operations we need to run.
	operations := []func(){
		w.miningOperations,
	}
	if resolveInterval > 0 {
		operations = append(operations, w.resolveOperations)
	}

	// Set waitgroup to match the number of G's we need for the set
	// of operations we have.
	g := len(operations)
	w.wg.Add(g)

	// We don't want to return until we know all the G's are up and running.
	hasStarted := make(chan bool)

	// Start all the operational G's.
	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	// Wait for the G's to report they are running.
	for range g {
		<-hasStarted
	}

	return &w
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutine performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.evHandler("worker: shutdown: signal cancel mining")
	w.SignalCancelMining()

	w.evHandler("worker: shutdown: terminate goroutines")
	close(w.shut)
	w.wg.Wait()
}

// Mine asks the mining goroutine to mine a new block and waits for the
// result. Only one block is mined at a time, so concurrent calls queue up
// behind each other.
func (w *Worker) Mine(ctx context.Context) (database.Block, error) {
	req := mineRequest{
		ctx:    ctx,
		result: make(chan mineResult, 1),
	}

	select {
	case w.mineRequests <- req:
	case <-ctx.Done():
		return database.Block{}, ctx.Err()
	case <-w.shut:
		return database.Block{}, ErrShutdown
	}

	// The mining G always answers a request it accepted.
	res := <-req.result

	return res.block, res.err
}

// SignalCancelMining signals the G executing the runMiningOperation function
// to stop immediately.
func (w *Worker) SignalCancelMining() {
	select {
	case w.cancelMining <- true:
	default:
	}
	w.evHandler("worker: SignalCancelMining: MINING: CANCEL: signaled")
}

// =============================================================================

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
