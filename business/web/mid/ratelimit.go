package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/web"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a request arrives faster than the
// configured limit allows.
var ErrRateLimited = errors.New("too many requests, try again later")

// RateLimit rejects requests beyond rps requests per second with bursts of up
// to burst requests. A rate of zero or less turns limiting off.
func RateLimit(rps float64, burst int) web.Middleware {
	if rps <= 0 {
		return nil
	}

	if burst < 1 {
		burst = 1
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !limiter.Allow() {
				return errs.NewTrusted(ErrRateLimited, http.StatusTooManyRequests)
			}

			// Call the next handler.
			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
