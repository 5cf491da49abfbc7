package worker

import (
	"context"
	"time"
)

// resolveOperations handles resolving conflicts with peers on an interval.
func (w *Worker) resolveOperations() {
	w.evHandler("worker: resolveOperations: G started")
	defer w.evHandler("worker: resolveOperations: G completed")

	ticker := time.NewTicker(w.resolveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !w.isShutdown() {
				w.Sync()
			}
		case <-w.shut:
			w.evHandler("worker: resolveOperations: received shut signal")
			return
		}
	}
}

// Sync brings this node up to date with the longest valid chain held by its
// peers.
func (w *Worker) Sync() {
	w.evHandler("worker: sync: started")
	defer w.evHandler("worker: sync: completed")

	if len(w.state.RetrieveKnownPeers()) == 0 {
		w.evHandler("worker: sync: no known peers")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	// Stop waiting on slow peers when the node is shutting down.
	go func() {
		select {
		case <-w.shut:
			cancel()
		case <-ctx.Done():
		}
	}()

	replaced, err := w.state.ResolveConflicts(ctx)
	if err != nil {
		w.evHandler("worker: sync: resolveConflicts: ERROR: %s", err)
		return
	}

	w.evHandler("worker: sync: resolveConflicts: replaced[%t]: length[%d]", replaced, w.state.QueryChainLength())
}
