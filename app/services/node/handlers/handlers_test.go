package handlers_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ardanlabs/ledger/app/services/node/handlers"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/network"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/worker"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type node struct {
	state   *state.State
	public  string
	private string
	debug   string
}

func newNode(t *testing.T, nodeID string) node {
	log := zap.NewNop().Sugar()
	evts := events.New()

	st, err := state.New(state.Config{
		NodeID: nodeID,
		Genesis: genesis.Genesis{
			PrevHash:     "1",
			Proof:        100,
			Difficulty:   2,
			MiningReward: 1,
		},
		Fetcher:   network.NewClient(time.Second),
		EvHandler: func(v string, args ...any) {},
	})
	require.NoError(t, err)

	w := worker.Run(st, nil, 0)

	cfg := handlers.MuxConfig{
		Shutdown:    make(chan os.Signal, 1),
		Log:         log,
		State:       st,
		Worker:      w,
		Evts:        evts,
		MineTimeout: 10 * time.Second,
	}

	pub := httptest.NewServer(handlers.PublicMux(cfg))
	prv := httptest.NewServer(handlers.PrivateMux(cfg))
	dbg := httptest.NewServer(handlers.DebugMux("test", log, st))

	t.Cleanup(func() {
		evts.Shutdown()
		pub.Close()
		prv.Close()
		dbg.Close()
		st.Shutdown()
	})

	return node{
		state:   st,
		public:  strings.TrimPrefix(pub.URL, "http://"),
		private: strings.TrimPrefix(prv.URL, "http://"),
		debug:   dbg.URL,
	}
}

func amount(v float64) *float64 {
	return &v
}

// =============================================================================

func TestTransactionsAndMining(t *testing.T) {
	ctx := context.Background()
	client := network.NewClient(5 * time.Second)
	a := newNode(t, "node-a")

	resp, err := client.SubmitTransaction(ctx, a.public, network.NewTx{Sender: "bill", Recipient: "ale", Amount: amount(5)})
	require.NoError(t, err)
	assert.Equal(t, "Transaction will be added to Block 2", resp.Message)

	_, err = client.SubmitTransaction(ctx, a.public, network.NewTx{Sender: "bill", Amount: amount(5)})
	var re *network.ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusBadRequest, re.Status)
	assert.Equal(t, "recipient is a required field", re.Fields["recipient"])

	pending, err := client.Pending(ctx, a.public)
	require.NoError(t, err)
	assert.Equal(t, 1, pending.Length)

	mined, err := client.Mine(ctx, a.public)
	require.NoError(t, err)
	assert.Equal(t, network.MessageForged, mined.Message)
	assert.Equal(t, uint64(2), mined.Index)
	require.Len(t, mined.Transactions, 2)
	assert.Equal(t, state.RewardSender, mined.Transactions[1].Sender)
	assert.Equal(t, "node-a", mined.Transactions[1].Recipient)

	chain, err := client.Chain(ctx, a.public)
	require.NoError(t, err)
	assert.Equal(t, 2, chain.Length)
	assert.Equal(t, chain.Chain[0].Hash(), mined.PrevHash)
	assert.True(t, a.state.IsValidChain(chain.Chain))

	block, err := client.Block(ctx, a.public, 2)
	require.NoError(t, err)
	assert.Equal(t, mined.Proof, block.Proof)

	_, err = client.Block(ctx, a.public, 99)
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusNotFound, re.Status)

	pending, err = client.Pending(ctx, a.public)
	require.NoError(t, err)
	assert.Equal(t, 0, pending.Length)
	assert.NotNil(t, pending.Transactions)
}

func TestConsensus(t *testing.T) {
	ctx := context.Background()
	client := network.NewClient(5 * time.Second)
	a := newNode(t, "node-a")
	b := newNode(t, "node-b")

	_, err := client.Mine(ctx, a.public)
	require.NoError(t, err)

	for range 3 {
		_, err := client.Mine(ctx, b.public)
		require.NoError(t, err)
	}

	reg, err := client.RegisterPeers(ctx, a.private, []string{"http://" + b.public + "/v1/chain"})
	require.NoError(t, err)
	assert.Equal(t, network.MessageAdded, reg.Message)
	assert.Equal(t, []string{b.public}, reg.TotalNodes)

	res, err := client.Resolve(ctx, a.private)
	require.NoError(t, err)
	assert.Equal(t, network.MessageReplaced, res.Message)
	assert.Len(t, res.NewChain, 4)
	assert.Equal(t, 4, a.state.QueryChainLength())

	_, err = client.RegisterPeers(ctx, b.private, []string{a.public})
	require.NoError(t, err)

	res, err = client.Resolve(ctx, b.private)
	require.NoError(t, err)
	assert.Equal(t, network.MessageAuthority, res.Message)
	assert.Len(t, res.Chain, 4)

	peers, err := client.ListPeers(ctx, b.private)
	require.NoError(t, err)
	assert.Equal(t, []string{a.public}, peers.Nodes)

	_, err = client.RegisterPeers(ctx, a.private, []string{"localhost:9999", ""})
	var re *network.ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusBadRequest, re.Status)

	peers, err = client.ListPeers(ctx, a.private)
	require.NoError(t, err)
	assert.Equal(t, []string{b.public}, peers.Nodes, "nothing is registered when an address is invalid")
}

func TestDebug(t *testing.T) {
	a := newNode(t, "node-a")

	resp, err := http.Get(a.debug + "/debug/readiness")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(a.debug + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ledger_chain_length")
}
