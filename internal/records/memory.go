package records

import (
	"context"
	"errors"
	"sync"
)

// Memory is an in-process Store used by tests and the "memory" backend.
type Memory struct {
	mu    sync.RWMutex
	rows  []Record
	clock Clock
}

// NewMemory returns an empty table. A nil clock uses time.Now.
func NewMemory(clock Clock) *Memory {
	return &Memory{clock: clock}
}

// Exists reports whether any row carries exactly this phone.
func (m *Memory) Exists(ctx context.Context, phone string) (bool, error) {
	_, err := m.FindRow(ctx, phone)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// FindRow returns the 1-based index of the first row with this phone.
func (m *Memory) FindRow(_ context.Context, phone string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i, r := range m.rows {
		if r.Phone == phone {
			return int64(i + 1), nil
		}
	}
	return 0, ErrNotFound
}

// ListPhonesForOwner returns the owner's phones in row order.
func (m *Memory) ListPhonesForOwner(_ context.Context, ownerID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var phones []string
	for _, r := range m.rows {
		if r.OwnerID == ownerID {
			phones = append(phones, r.Phone)
		}
	}
	return phones, nil
}

// Append adds a row stamped with the clock and an empty comment.
func (m *Memory) Append(_ context.Context, rec Record) error {
	rec.CreatedAt = m.clock.now()
	rec.Comment = ""
	m.mu.Lock()
	m.rows = append(m.rows, rec)
	m.mu.Unlock()
	return nil
}

// UpdateComment overwrites the comment of the given row.
func (m *Memory) UpdateComment(_ context.Context, row int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 1 || row > int64(len(m.rows)) {
		return ErrNotFound
	}
	m.rows[row-1].Comment = text
	return nil
}

// GetComment reads the comment of the given row.
func (m *Memory) GetComment(_ context.Context, row int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if row < 1 || row > int64(len(m.rows)) {
		return "", ErrNotFound
	}
	return m.rows[row-1].Comment, nil
}

// Rows returns a copy of the table contents.
func (m *Memory) Rows() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Record(nil), m.rows...)
}
