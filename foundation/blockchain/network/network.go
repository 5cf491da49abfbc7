// Package network provides the payloads exchanged between nodes and clients
// and an HTTP client for calling a node.
package network

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Route paths served by a node. Public routes live on the public host and
// node management routes live on the private host.
const (
	RouteMine      = "/v1/mine"
	RouteNewTx     = "/v1/transactions/new"
	RoutePending   = "/v1/transactions/pending"
	RouteChain     = "/v1/chain"
	RouteBlock     = "/v1/blocks"
	RouteEvents    = "/v1/events"
	RouteRegister  = "/v1/nodes/register"
	RouteResolve   = "/v1/nodes/resolve"
	RouteListPeers = "/v1/nodes/list"
)

// Messages returned by a node.
const (
	MessageForged    = "New Block Forged"
	MessageAdded     = "New nodes have been added"
	MessageReplaced  = "Our chain was replaced"
	MessageAuthority = "Our chain is authoritative"
)

// NewTx is what a client sends to submit a transaction. Amount is a pointer
// so a missing amount can be told apart from zero.
type NewTx struct {
	Sender    string   `json:"sender" validate:"required"`
	Recipient string   `json:"recipient" validate:"required"`
	Amount    *float64 `json:"amount" validate:"required"`
}

// ToTx converts the submission into a transaction.
func (ntx NewTx) ToTx() database.Tx {
	var amount float64
	if ntx.Amount != nil {
		amount = *ntx.Amount
	}

	return database.NewTx(ntx.Sender, ntx.Recipient, amount)
}

// NewTxResponse reports the block a submitted transaction is expected in.
type NewTxResponse struct {
	Message string `json:"message"`
}

// NewTxMessage builds the message returned for a submitted transaction.
func NewTxMessage(index uint64) string {
	return fmt.Sprintf("Transaction will be added to Block %d", index)
}

// MineResponse describes a freshly mined block.
type MineResponse struct {
	Message      string        `json:"message"`
	Index        uint64        `json:"index"`
	Transactions []database.Tx `json:"transactions"`
	Proof        uint64        `json:"proof"`
	PrevHash     string        `json:"previous_hash"`
}

// NewMineResponse constructs the response for a mined block.
func NewMineResponse(block database.Block) MineResponse {
	return MineResponse{
		Message:      MessageForged,
		Index:        block.Index,
		Transactions: block.Transactions,
		Proof:        block.Proof,
		PrevHash:     block.PrevHash,
	}
}

// PendingResponse lists the transactions waiting for the next block.
type PendingResponse struct {
	Transactions []database.Tx `json:"transactions"`
	Length       int           `json:"length"`
}

// RegisterRequest carries the addresses of the nodes to register.
type RegisterRequest struct {
	Nodes []string `json:"nodes" validate:"required,min=1,dive,required"`
}

// RegisterResponse reports every peer known after a registration.
type RegisterResponse struct {
	Message    string   `json:"message"`
	TotalNodes []string `json:"total_nodes"`
}

// ResolveResponse reports the outcome of a conflict resolution. NewChain is
// set when the chain was replaced, Chain otherwise.
type ResolveResponse struct {
	Message  string           `json:"message"`
	NewChain []database.Block `json:"new_chain,omitempty"`
	Chain    []database.Block `json:"chain,omitempty"`
}

// PeersResponse lists the known peers.
type PeersResponse struct {
	Nodes []string `json:"nodes"`
}

// ErrorResponse is the form used for API responses from failures in the API.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// =============================================================================

// ResponseError is returned by the client when a node answers with a
// failure status.
type ResponseError struct {
	Method  string
	URL     string
	Status  int
	Message string
	Fields  map[string]string
}

// Error implements the error interface.
func (re *ResponseError) Error() string {
	msg := re.Message
	if msg == "" {
		msg = "no error message"
	}

	if len(re.Fields) == 0 {
		return fmt.Sprintf("%s %s: status %d: %s", re.Method, re.URL, re.Status, msg)
	}

	fields := make([]string, 0, len(re.Fields))
	for k, v := range re.Fields {
		fields = append(fields, k+": "+v)
	}
	sort.Strings(fields)

	return fmt.Sprintf("%s %s: status %d: %s: %s", re.Method, re.URL, re.Status, msg, strings.Join(fields, ", "))
}
