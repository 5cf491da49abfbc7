// Package private maintains the group of handlers for node to node access.
package private

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/blockchain/network"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of node management endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// RegisterNodes adds the specified node addresses to the set of known peers.
// Nothing is registered if any address is invalid.
func (h Handlers) RegisterNodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req network.RegisterRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(req); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	for _, address := range req.Nodes {
		if _, err := peer.Parse(address); err != nil {
			return errs.NewTrusted(fmt.Errorf("node %q: %w", address, err), http.StatusBadRequest)
		}
	}

	for _, address := range req.Nodes {
		pr, err := h.State.RegisterPeer(address)
		if err != nil {
			return fmt.Errorf("register node %q: %w", address, err)
		}

		h.Log.Infow("register node", "traceid", v.TraceID, "host", pr.Host)
	}

	resp := network.RegisterResponse{
		Message:    network.MessageAdded,
		TotalNodes: hosts(h.State.RetrieveKnownPeers()),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Resolve runs the consensus algorithm against every known peer.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	replaced, err := h.State.ResolveConflicts(ctx)
	if err != nil {
		return errs.NewTrusted(err, http.StatusServiceUnavailable)
	}

	chain := h.State.RetrieveChain()

	resp := network.ResolveResponse{
		Message: network.MessageAuthority,
		Chain:   chain,
	}

	if replaced {
		resp = network.ResolveResponse{
			Message:  network.MessageReplaced,
			NewChain: chain,
		}
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// ListPeers returns the set of known peers.
func (h Handlers) ListPeers(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := network.PeersResponse{
		Nodes: hosts(h.State.RetrieveKnownPeers()),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

func hosts(peers []peer.Peer) []string {
	hosts := make([]string, len(peers))
	for i, pr := range peers {
		hosts[i] = pr.Host
	}
	return hosts
}
