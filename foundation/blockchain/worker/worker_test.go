package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type fetcher struct {
	mu     sync.Mutex
	chains map[string]database.ChainData
}

func (f *fetcher) set(host string, chain []database.Block) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.chains == nil {
		f.chains = make(map[string]database.ChainData)
	}
	f.chains[host] = database.NewChainData(chain)
}

func (f *fetcher) FetchChain(ctx context.Context, pr peer.Peer) (database.ChainData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cd, exists := f.chains[pr.Host]
	if !exists {
		return database.ChainData{}, fmt.Errorf("peer %s unreachable", pr.Host)
	}

	return cd, nil
}

func newState(t *testing.T, difficulty uint, f state.Fetcher) *state.State {
	if f == nil {
		f = &fetcher{}
	}

	st, err := state.New(state.Config{
		NodeID: "node",
		Host:   "localhost:8080",
		Genesis: genesis.Genesis{
			PrevHash:     "1",
			Proof:        100,
			Difficulty:   difficulty,
			MiningReward: 1,
		},
		Fetcher: f,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %s", failed, err)
	}

	return st
}

func mineChain(t *testing.T, length int) []database.Block {
	st := newState(t, 2, nil)

	for st.QueryChainLength() < length {
		if _, err := st.MineNewBlock(context.Background()); err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %s", failed, err)
		}
	}

	return st.RetrieveChain()
}

// =============================================================================

func Test_Mine(t *testing.T) {
	t.Log("Given the need to mine blocks through the worker.")
	{
		st := newState(t, 2, nil)
		w := worker.Run(st, nil, 0)

		if st.Worker == nil {
			t.Fatalf("\t%s\tShould register with the state.", failed)
		}
		t.Logf("\t%s\tShould register with the state.", success)

		st.SubmitTransaction(database.NewTx("bill", "ale", 4))

		block, err := w.Mine(context.Background())
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %s", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine a block.", success)

		if block.Index != 2 || len(block.Transactions) != 2 {
			t.Fatalf("\t%s\tShould get block 2 with 2 transactions: got %d / %d", failed, block.Index, len(block.Transactions))
		}
		t.Logf("\t%s\tShould get block 2 with 2 transactions.", success)

		const n = 3
		var wg sync.WaitGroup
		wg.Add(n)

		errs := make(chan error, n)
		for range n {
			go func() {
				defer wg.Done()
				_, err := w.Mine(context.Background())
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			if err != nil {
				t.Fatalf("\t%s\tShould mine concurrent requests one at a time: %s", failed, err)
			}
		}
		t.Logf("\t%s\tShould mine concurrent requests one at a time.", success)

		if length := st.QueryChainLength(); length != 2+n {
			t.Fatalf("\t%s\tShould have a chain of length %d: got %d", failed, 2+n, length)
		}
		t.Logf("\t%s\tShould have a chain of length %d.", success, 2+n)

		if !st.IsValidChain(st.RetrieveChain()) {
			t.Fatalf("\t%s\tShould have a valid chain.", failed)
		}
		t.Logf("\t%s\tShould have a valid chain.", success)

		st.Shutdown()

		if _, err := w.Mine(context.Background()); !errors.Is(err, worker.ErrShutdown) {
			t.Fatalf("\t%s\tShould refuse to mine after shutdown: got %v", failed, err)
		}
		t.Logf("\t%s\tShould refuse to mine after shutdown.", success)
	}
}

func Test_CancelMining(t *testing.T) {
	t.Log("Given the need to cancel a mining operation.")
	{
		// No proof can ever solve this difficulty.
		st := newState(t, 65, nil)
		w := worker.Run(st, nil, 0)
		defer st.Shutdown()

		done := make(chan error, 1)
		go func() {
			_, err := w.Mine(context.Background())
			done <- err
		}()

		var err error
		timeout := time.After(5 * time.Second)

	loop:
		for {
			select {
			case err = <-done:
				break loop
			case <-time.After(10 * time.Millisecond):
				w.SignalCancelMining()
			case <-timeout:
				t.Fatalf("\t%s\tShould stop mining when cancelled.", failed)
			}
		}

		if !errors.Is(err, worker.ErrMiningCancelled) {
			t.Fatalf("\t%s\tShould get a mining cancelled error: got %v", failed, err)
		}
		t.Logf("\t%s\tShould get a mining cancelled error.", success)

		if st.QueryChainLength() != 1 {
			t.Fatalf("\t%s\tShould not change the chain.", failed)
		}
		t.Logf("\t%s\tShould not change the chain.", success)
	}

	t.Log("Given the need to stop mining when the caller goes away.")
	{
		st := newState(t, 65, nil)
		w := worker.Run(st, nil, 0)
		defer st.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		if _, err := w.Mine(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("\t%s\tShould get a deadline error: got %v", failed, err)
		}
		t.Logf("\t%s\tShould get a deadline error.", success)
	}
}

func Test_Sync(t *testing.T) {
	chain := mineChain(t, 4)

	t.Log("Given the need to sync with peers on startup.")
	{
		f := fetcher{}
		f.set("peer1:8080", chain)

		st := newState(t, 2, &f)
		if _, err := st.RegisterPeer("peer1:8080"); err != nil {
			t.Fatalf("\t%s\tShould be able to register a peer: %s", failed, err)
		}

		worker.Run(st, nil, 0)
		defer st.Shutdown()

		if length := st.QueryChainLength(); length != 4 {
			t.Fatalf("\t%s\tShould adopt the peer chain: got %d", failed, length)
		}
		t.Logf("\t%s\tShould adopt the peer chain.", success)
	}

	t.Log("Given the need to resolve conflicts on an interval.")
	{
		f := fetcher{}
		st := newState(t, 2, &f)

		worker.Run(st, nil, 10*time.Millisecond)
		defer st.Shutdown()

		f.set("peer1:8080", chain)
		if _, err := st.RegisterPeer("peer1:8080"); err != nil {
			t.Fatalf("\t%s\tShould be able to register a peer: %s", failed, err)
		}

		deadline := time.Now().Add(5 * time.Second)
		for st.QueryChainLength() != 4 {
			if time.Now().After(deadline) {
				t.Fatalf("\t%s\tShould adopt the peer chain: got %d", failed, st.QueryChainLength())
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Logf("\t%s\tShould adopt the peer chain.", success)
	}
}
