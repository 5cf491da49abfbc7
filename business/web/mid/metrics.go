package mid

import (
	"context"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/metrics"
	"github.com/ardanlabs/ledger/foundation/web"
)

// Metrics updates program counters.
func Metrics() web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			// Call the next handler.
			err := handler(ctx, w, r)

			route := "unknown"
			if v, verr := web.GetValues(ctx); verr == nil {
				route = v.Route
			}

			// Increment the request counter.
			metrics.Requests.WithLabelValues(route).Inc()

			// Increment if there is an error flowing through the request.
			if err != nil {
				metrics.Errors.Inc()
			}

			// Return the error so it can be handled further up the chain.
			return err
		}

		return h
	}

	return m
}
