package reward

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store persists reward grants.
type Store interface {
	RecordGrant(ctx context.Context, agentID string, experience int64, itemID string) error
}

// Ledger dispatches reward grants to a store. Grants are fire-and-forget:
// the claim path never blocks on persistence, and a failed write is logged
// and lost rather than retried. The object is already destroyed when Grant
// runs, so a retry could not duplicate the gather itself.
type Ledger struct {
	store        Store
	writeTimeout time.Duration
	wg           sync.WaitGroup
}

// NewLedger creates a ledger. writeTimeout <= 0 selects 5s.
func NewLedger(store Store, writeTimeout time.Duration) *Ledger {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &Ledger{
		store:        store,
		writeTimeout: writeTimeout,
	}
}

// Grant records a reward grant asynchronously.
func (l *Ledger) Grant(ctx context.Context, agentID string, experience int64, itemID string) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		// Detached from the caller's context: the grant should not be
		// dropped because the triggering interaction finished.
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.writeTimeout)
		defer cancel()

		if err := l.store.RecordGrant(writeCtx, agentID, experience, itemID); err != nil {
			slog.Error("recording reward grant",
				"agent", agentID,
				"experience", experience,
				"item", itemID,
				"error", err)
		}
	}()
}

// Flush waits for all in-flight grant writes. Called on shutdown.
func (l *Ledger) Flush() {
	l.wg.Wait()
}
