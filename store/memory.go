// Package store provides catalog.Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/geantfroid/sav-engine/catalog"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps the snapshot and ticket ledger in process memory. It mirrors
// the workbook store's contract: LoadAll returns ErrStoreMissing until the
// first SaveAll, and callers always receive clones.
type Memory struct {
	mu      sync.RWMutex
	snap    *catalog.Snapshot
	tickets []catalog.Ticket
}

func NewMemory() *Memory {
	return &Memory{}
}

// Seeded returns a memory store pre-loaded with a snapshot, as if it had
// been saved already.
func Seeded(snap *catalog.Snapshot) *Memory {
	return &Memory{snap: snap.Clone()}
}

func (m *Memory) LoadAll(_ context.Context) (*catalog.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return nil, catalog.ErrStoreMissing
	}
	return m.snap.Clone(), nil
}

func (m *Memory) SaveAll(_ context.Context, snap *catalog.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap.Clone()
	return nil
}

// AppendTicket assigns the next display number and appends.
func (m *Memory) AppendTicket(_ context.Context, t catalog.Ticket) (catalog.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.Number = len(m.tickets) + 1
	m.tickets = append(m.tickets, t)
	return t, nil
}

func (m *Memory) ListTickets(_ context.Context) ([]catalog.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]catalog.Ticket, len(m.tickets))
	copy(out, m.tickets)
	return out, nil
}
