// Package collection implements the optimistic list pattern shared by the
// admin and organizer management screens: apply a mutation locally before
// the network call, commit on success, restore the exact prior state on
// failure.
package collection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ticketly-gateway/internal/logger"
)

var (
	// ErrRowBusy rejects a second mutation on a row whose previous attempt
	// has not settled. Distinct rows may be busy simultaneously.
	ErrRowBusy = errors.New("row operation already in progress")

	ErrRowNotFound = errors.New("row not found")
)

// Manager holds one screen's collection. T is the row type; rows are
// identified by IDOf. All mutations go through Delete/UpdateStatus so the
// snapshot-apply-commit-or-revert discipline cannot be bypassed.
type Manager[T any] struct {
	fetch  func(context.Context) ([]T, error)
	idOf   func(T) string
	logger *logger.Logger

	mu    sync.Mutex
	items []T
	busy  map[string]bool
}

func NewManager[T any](fetch func(context.Context) ([]T, error), idOf func(T) string, log *logger.Logger) *Manager[T] {
	return &Manager[T]{
		fetch:  fetch,
		idOf:   idOf,
		logger: log,
		busy:   make(map[string]bool),
	}
}

// Load replaces the collection with a fresh fetch.
func (m *Manager[T]) Load(ctx context.Context) error {
	items, err := m.fetch(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	return nil
}

// Items returns a copy of the current rows in display order.
func (m *Manager[T]) Items() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

// Busy reports whether the row's buttons should be disabled.
func (m *Manager[T]) Busy(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy[id]
}

func (m *Manager[T]) snapshotLocked() []T {
	snapshot := make([]T, len(m.items))
	copy(snapshot, m.items)
	return snapshot
}

func (m *Manager[T]) indexLocked(id string) int {
	for i, item := range m.items {
		if m.idOf(item) == id {
			return i
		}
	}
	return -1
}

// Delete removes the row optimistically, then issues the delete call. On
// failure the prior rows are restored element-for-element, original order
// included. On success local state already reflects the removal; no
// refetch happens.
func (m *Manager[T]) Delete(ctx context.Context, id string, del func(context.Context, string) error) error {
	m.mu.Lock()
	if m.busy[id] {
		m.mu.Unlock()
		return ErrRowBusy
	}
	idx := m.indexLocked(id)
	if idx < 0 {
		m.mu.Unlock()
		return ErrRowNotFound
	}

	snapshot := m.snapshotLocked()
	m.items = append(m.items[:idx:idx], m.items[idx+1:]...)
	m.busy[id] = true
	m.mu.Unlock()

	err := del(ctx, id)

	m.mu.Lock()
	delete(m.busy, id)
	if err != nil {
		m.items = snapshot
	}
	m.mu.Unlock()

	if err != nil {
		m.logger.Warn("LIST", fmt.Sprintf("Delete of %s failed, rolled back: %v", id, err))
		return err
	}
	return nil
}

// UpdateStatus patches one row's status optimistically, then issues the
// patch call. Success triggers an unconditional refetch to reconcile
// derived counts; failure rolls back to the pre-optimistic rows.
func (m *Manager[T]) UpdateStatus(ctx context.Context, id, status string, patch func(ctx context.Context, id, status string) error, setStatus func(*T, string)) error {
	m.mu.Lock()
	if m.busy[id] {
		m.mu.Unlock()
		return ErrRowBusy
	}
	idx := m.indexLocked(id)
	if idx < 0 {
		m.mu.Unlock()
		return ErrRowNotFound
	}

	snapshot := m.snapshotLocked()
	setStatus(&m.items[idx], status)
	m.busy[id] = true
	m.mu.Unlock()

	err := patch(ctx, id, status)

	m.mu.Lock()
	delete(m.busy, id)
	if err != nil {
		m.items = snapshot
	}
	m.mu.Unlock()

	if err != nil {
		m.logger.Warn("LIST", fmt.Sprintf("Status patch of %s failed, rolled back: %v", id, err))
		return err
	}

	if err := m.Load(ctx); err != nil {
		// The patch committed; a failed reconcile fetch leaves the
		// optimistic row in place rather than reverting it.
		m.logger.Warn("LIST", fmt.Sprintf("Refetch after status patch of %s failed: %v", id, err))
	}
	return nil
}
