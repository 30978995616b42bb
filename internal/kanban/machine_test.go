package kanban

import (
	"testing"

	"github.com/danivilar/atelier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragLifecycle(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StateIdle, m.State())

	require.NoError(t, m.Pickup("t-1", domain.TaskPending))
	assert.Equal(t, StateDragging, m.State())
	assert.Equal(t, "t-1", m.Dragging())

	mv, err := m.Drop(domain.TaskInProgress, 0)
	require.NoError(t, err)
	assert.Equal(t, Move{TaskID: "t-1", From: domain.TaskPending, To: domain.TaskInProgress, Position: 0}, mv)
	assert.Equal(t, StateIdle, m.State())
	assert.Empty(t, m.Dragging())
}

func TestPickupWhileDraggingRejected(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Pickup("t-1", domain.TaskPending))
	assert.Error(t, m.Pickup("t-2", domain.TaskPending))
	assert.Equal(t, "t-1", m.Dragging(), "original drag survives the rejected pickup")
}

func TestDropWithoutDragRejected(t *testing.T) {
	m := NewMachine()
	_, err := m.Drop(domain.TaskCompleted, 0)
	assert.Error(t, err)
}

func TestCancelEmitsNothing(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.Pickup("t-1", domain.TaskInProgress))
	m.Cancel()
	assert.Equal(t, StateIdle, m.State())

	_, err := m.Drop(domain.TaskCompleted, 0)
	assert.Error(t, err, "cancelled drag must not be droppable")
}

func TestCancelWhenIdleIsHarmless(t *testing.T) {
	m := NewMachine()
	m.Cancel()
	assert.Equal(t, StateIdle, m.State())
}

func TestZeroValueIsIdle(t *testing.T) {
	var m Machine
	assert.Equal(t, StateIdle, m.State())
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		moved    string
		position int
		want     []string
	}{
		{"to front", []string{"a", "b", "c"}, "c", 0, []string{"c", "a", "b"}},
		{"to middle", []string{"a", "b", "c"}, "a", 1, []string{"b", "a", "c"}},
		{"to end", []string{"a", "b", "c"}, "a", 2, []string{"b", "c", "a"}},
		{"position clamped high", []string{"a", "b"}, "a", 99, []string{"b", "a"}},
		{"position clamped low", []string{"a", "b"}, "b", -1, []string{"b", "a"}},
		{"not present inserts", []string{"a", "b"}, "x", 1, []string{"a", "x", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reorder(tt.ids, tt.moved, tt.position))
		})
	}
}
