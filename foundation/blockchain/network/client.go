package network

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/go-resty/resty/v2"
)

// DefaultTimeout is used when a client is constructed without a timeout.
const DefaultTimeout = 10 * time.Second

// Client makes calls to the public and private APIs of a node.
type Client struct {
	client *resty.Client
}

// NewClient constructs a client whose requests give up after the
// specified timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// FetchChain retrieves the full chain held by the specified peer. It
// implements the state.Fetcher interface.
func (c *Client) FetchChain(ctx context.Context, pr peer.Peer) (database.ChainData, error) {
	return c.Chain(ctx, pr.Host)
}

// Chain retrieves the full chain held by the node at host.
func (c *Client) Chain(ctx context.Context, host string) (database.ChainData, error) {
	var chainData database.ChainData
	if err := c.get(ctx, host, RouteChain, &chainData); err != nil {
		return database.ChainData{}, err
	}

	return chainData, nil
}

// Block retrieves a single block by its index.
func (c *Client) Block(ctx context.Context, host string, index uint64) (database.Block, error) {
	var block database.Block
	if err := c.get(ctx, host, fmt.Sprintf("%s/%d", RouteBlock, index), &block); err != nil {
		return database.Block{}, err
	}

	return block, nil
}

// Mine asks the node at host to mine a new block.
func (c *Client) Mine(ctx context.Context, host string) (MineResponse, error) {
	var resp MineResponse
	if err := c.get(ctx, host, RouteMine, &resp); err != nil {
		return MineResponse{}, err
	}

	return resp, nil
}

// SubmitTransaction sends a transaction to the node at host.
func (c *Client) SubmitTransaction(ctx context.Context, host string, tx NewTx) (NewTxResponse, error) {
	var resp NewTxResponse
	if err := c.post(ctx, host, RouteNewTx, tx, &resp); err != nil {
		return NewTxResponse{}, err
	}

	return resp, nil
}

// Pending retrieves the transactions waiting for the next block.
func (c *Client) Pending(ctx context.Context, host string) (PendingResponse, error) {
	var resp PendingResponse
	if err := c.get(ctx, host, RoutePending, &resp); err != nil {
		return PendingResponse{}, err
	}

	return resp, nil
}

// RegisterPeers registers the specified node addresses with the private API
// of the node at host.
func (c *Client) RegisterPeers(ctx context.Context, host string, nodes []string) (RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.post(ctx, host, RouteRegister, RegisterRequest{Nodes: nodes}, &resp); err != nil {
		return RegisterResponse{}, err
	}

	return resp, nil
}

// Resolve asks the node at host to resolve conflicts with its peers.
func (c *Client) Resolve(ctx context.Context, host string) (ResolveResponse, error) {
	var resp ResolveResponse
	if err := c.get(ctx, host, RouteResolve, &resp); err != nil {
		return ResolveResponse{}, err
	}

	return resp, nil
}

// ListPeers retrieves the peers known by the node at host.
func (c *Client) ListPeers(ctx context.Context, host string) (PeersResponse, error) {
	var resp PeersResponse
	if err := c.get(ctx, host, RouteListPeers, &resp); err != nil {
		return PeersResponse{}, err
	}

	return resp, nil
}

// =============================================================================

func (c *Client) get(ctx context.Context, host string, path string, result any) error {
	var errResp ErrorResponse

	url := baseURL(host) + path

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&errResp).
		Get(url)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}

	return checkResponse(resp, http.MethodGet, url, errResp)
}

func (c *Client) post(ctx context.Context, host string, path string, body any, result any) error {
	var errResp ErrorResponse

	url := baseURL(host) + path

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(&errResp).
		Post(url)
	if err != nil {
		return fmt.Errorf("POST %s: %w", url, err)
	}

	return checkResponse(resp, http.MethodPost, url, errResp)
}

func checkResponse(resp *resty.Response, method string, url string, errResp ErrorResponse) error {
	if !resp.IsError() && resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	if errResp.Error == "" {
		errResp.Error = strings.TrimSpace(resp.String())
	}

	return &ResponseError{
		Method:  method,
		URL:     url,
		Status:  resp.StatusCode(),
		Message: errResp.Error,
		Fields:  errResp.Fields,
	}
}

// baseURL accepts a host:port or a full url and returns the url without a
// trailing slash.
func baseURL(host string) string {
	host = strings.TrimSuffix(strings.TrimSpace(host), "/")
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}

	return host
}
