package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryDefaultsToIdle(t *testing.T) {
	m := NewMemory(nil)
	st := m.Get(1)
	assert.True(t, st.IsIdle())
	assert.Equal(t, ModeIdle, st.Mode)
}

func TestMemorySetGetClear(t *testing.T) {
	backing := map[int64]State{}
	m := NewMemory(backing)

	m.Set(7, State{Mode: ModeNewComment, Phone: "+79991234567"})
	assert.Equal(t, State{Mode: ModeNewComment, Phone: "+79991234567"}, m.Get(7))
	assert.Len(t, backing, 1, "writes go to the injected map")

	m.Clear(7)
	assert.True(t, m.Get(7).IsIdle())
	assert.Equal(t, 0, m.Len())
}

func TestMemorySetIdleRemovesEntry(t *testing.T) {
	m := NewMemory(nil)
	m.Set(3, State{Mode: ModeEditPhone})
	assert.Equal(t, 1, m.Len())
	m.Set(3, Idle())
	assert.Equal(t, 0, m.Len())
}

func TestMemoryUsersAreIsolated(t *testing.T) {
	m := NewMemory(nil)
	m.Set(1, State{Mode: ModeNewNumber})
	m.Set(2, State{Mode: ModeEditComment, Phone: "+79990000000"})
	assert.Equal(t, ModeNewNumber, m.Get(1).Mode)
	assert.Equal(t, "+79990000000", m.Get(2).Phone)
	m.Clear(1)
	assert.Equal(t, ModeEditComment, m.Get(2).Mode)
}
