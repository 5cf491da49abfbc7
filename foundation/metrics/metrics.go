// Package metrics holds the prometheus collectors for the node and the
// registry they are exposed through.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registry every node collector is registered with.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		Requests, Errors, Panics,
		BlocksForged, ChainLength, PendingTransactions,
		MiningDuration, Resolutions, PeerFetchFailures,
	)
}

// =============================================================================
// Web

// Requests counts the requests handled by route.
var Requests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_requests_total",
		Help: "Requests handled by route.",
	},
	[]string{"route"},
)

// Errors counts the requests that ended in an error.
var Errors = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "ledger_errors_total",
		Help: "Requests that ended in an error.",
	},
)

// Panics counts the requests that panicked.
var Panics = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "ledger_panics_total",
		Help: "Requests that panicked.",
	},
)

// =============================================================================
// Ledger

// BlocksForged counts the blocks this node appended to its chain.
var BlocksForged = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "ledger_blocks_forged_total",
		Help: "Blocks forged by this node.",
	},
)

// ChainLength is the number of blocks in the local chain.
var ChainLength = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "ledger_chain_length",
		Help: "Number of blocks in the local chain.",
	},
)

// PendingTransactions is the number of transactions waiting for a block.
var PendingTransactions = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "ledger_pending_transactions",
		Help: "Transactions waiting to be forged into a block.",
	},
)

// MiningDuration observes how long proof searches take in seconds.
var MiningDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "ledger_mining_duration_seconds",
		Help:    "Time spent searching for a proof.",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	},
	[]string{"status"}, // solved | cancelled
)

// Resolutions counts conflict resolutions by outcome.
var Resolutions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_resolutions_total",
		Help: "Conflict resolutions by outcome.",
	},
	[]string{"result"}, // replaced | authoritative | failed
)

// PeerFetchFailures counts peers skipped during conflict resolution.
var PeerFetchFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_peer_fetch_failures_total",
		Help: "Peers skipped during conflict resolution by reason.",
	},
	[]string{"reason"}, // unreachable | malformed | invalid
)

// =============================================================================

// Handler returns the http handler that exposes the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
