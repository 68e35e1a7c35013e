// Package conversation keeps the per-user dialogue state in memory.
// Nothing here is persisted; a restart returns every user to Idle.
package conversation

import "sync"

// Mode identifies the step a user is on.
type Mode string

const (
	// ModeIdle means no flow is active.
	ModeIdle Mode = "idle"
	// ModeNewNumber waits for a phone to register.
	ModeNewNumber Mode = "new_number"
	// ModeNewComment waits for the comment of a freshly registered phone.
	ModeNewComment Mode = "new_comment"
	// ModeEditPhone waits for the user to pick one of their phones.
	ModeEditPhone Mode = "edit_phone"
	// ModeEditComment waits for the replacement comment.
	ModeEditComment Mode = "edit_comment"
)

// State is the tagged per-user record. Phone is set only in the comment modes.
type State struct {
	Mode  Mode
	Phone string
}

// Idle is the distinguished no-flow state.
func Idle() State { return State{Mode: ModeIdle} }

// IsIdle reports whether no flow is active.
func (s State) IsIdle() bool { return s.Mode == ModeIdle || s.Mode == "" }

// Store maps user ids to their dialogue state.
type Store interface {
	Get(userID int64) State
	Set(userID int64, st State)
	Clear(userID int64)
}

// Memory is a Store over a plain map guarded by a mutex.
type Memory struct {
	mu       sync.RWMutex
	sessions map[int64]State
}

// NewMemory uses backing as the underlying map; nil allocates a fresh one.
func NewMemory(backing map[int64]State) *Memory {
	if backing == nil {
		backing = make(map[int64]State)
	}
	return &Memory{sessions: backing}
}

// Get returns the user's state, or Idle when none is stored.
func (m *Memory) Get(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, ok := m.sessions[userID]; ok {
		return st
	}
	return Idle()
}

// Set stores st; an idle state removes the entry instead.
func (m *Memory) Set(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st.IsIdle() {
		delete(m.sessions, userID)
		return
	}
	m.sessions[userID] = st
}

// Clear drops the user's state.
func (m *Memory) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Len reports how many users have an active flow.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
