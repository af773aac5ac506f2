package reward

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore записывает все гранты; может имитировать отказ хранилища.
type mockStore struct {
	mu     sync.Mutex
	grants []storedGrant
	fail   bool
}

type storedGrant struct {
	agentID    string
	experience int64
	itemID     string
}

func (m *mockStore) RecordGrant(_ context.Context, agentID string, experience int64, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("store unavailable")
	}
	m.grants = append(m.grants, storedGrant{agentID, experience, itemID})
	return nil
}

func (m *mockStore) all() []storedGrant {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]storedGrant(nil), m.grants...)
}

func TestLedger_Grant(t *testing.T) {
	store := &mockStore{}
	ledger := NewLedger(store, time.Second)

	ledger.Grant(context.Background(), "agent_1", 250, "iron_ore")
	ledger.Flush()

	grants := store.all()
	require.Len(t, grants, 1)
	assert.Equal(t, storedGrant{"agent_1", 250, "iron_ore"}, grants[0])
}

func TestLedger_GrantDoesNotBlockOnCanceledContext(t *testing.T) {
	store := &mockStore{}
	ledger := NewLedger(store, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A grant issued from an already-finished interaction still lands.
	ledger.Grant(ctx, "agent_1", 10, "herb")
	ledger.Flush()

	assert.Len(t, store.all(), 1)
}

func TestLedger_StoreFailureIsSwallowed(t *testing.T) {
	store := &mockStore{fail: true}
	ledger := NewLedger(store, time.Second)

	// Fire-and-forget: a failed write is logged, not surfaced.
	ledger.Grant(context.Background(), "agent_1", 10, "herb")
	ledger.Flush()

	assert.Empty(t, store.all())
}

func TestLedger_FlushWaitsForInFlight(t *testing.T) {
	store := &mockStore{}
	ledger := NewLedger(store, time.Second)

	for range 20 {
		ledger.Grant(context.Background(), "agent_1", 1, "herb")
	}
	ledger.Flush()

	assert.Len(t, store.all(), 20)
}
