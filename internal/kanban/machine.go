// Package kanban implements the board's drag-and-drop logic as an
// explicit state machine, independent of any UI toolkit's event names.
// A pickup enters dragging; a drop leaves it and emits exactly one Move
// command; a cancel leaves it and emits nothing.
package kanban

import (
	"fmt"

	"github.com/danivilar/atelier/internal/domain"
)

// State identifies where the machine is in the drag lifecycle.
type State string

const (
	StateIdle     State = "idle"
	StateDragging State = "dragging"
)

// Move is the single deterministic command emitted by a completed drop.
type Move struct {
	TaskID   string
	From     domain.TaskStatus
	To       domain.TaskStatus
	Position int // target index within the destination column
}

// Machine tracks one in-flight drag. The zero value is idle.
type Machine struct {
	state  State
	taskID string
	from   domain.TaskStatus
}

// NewMachine returns an idle drag machine.
func NewMachine() *Machine {
	return &Machine{state: StateIdle}
}

// State returns the current lifecycle state.
func (m *Machine) State() State {
	if m.state == "" {
		return StateIdle
	}
	return m.state
}

// Dragging returns the picked-up task ID, or "" when idle.
func (m *Machine) Dragging() string {
	if m.State() != StateDragging {
		return ""
	}
	return m.taskID
}

// Pickup transitions idle -> dragging. Picking up while already dragging
// is a programming error and is rejected.
func (m *Machine) Pickup(taskID string, from domain.TaskStatus) error {
	if m.State() != StateIdle {
		return fmt.Errorf("cannot pick up %s: already dragging %s", taskID, m.taskID)
	}
	if taskID == "" {
		return fmt.Errorf("cannot pick up an empty task ID")
	}
	m.state = StateDragging
	m.taskID = taskID
	m.from = from
	return nil
}

// Drop completes the drag, returning the Move to apply. Dropping onto
// the source column at the same spot still yields a Move; the caller
// decides whether a same-column move is a no-op.
func (m *Machine) Drop(to domain.TaskStatus, position int) (Move, error) {
	if m.State() != StateDragging {
		return Move{}, fmt.Errorf("drop without an active drag")
	}
	mv := Move{TaskID: m.taskID, From: m.from, To: to, Position: position}
	m.reset()
	return mv, nil
}

// Cancel abandons the drag without emitting a command. Cancelling an
// idle machine is harmless.
func (m *Machine) Cancel() {
	m.reset()
}

func (m *Machine) reset() {
	m.state = StateIdle
	m.taskID = ""
	m.from = ""
}

// Reorder returns ids with the moved element placed at position,
// clamping out-of-range positions instead of failing. It is the pure
// half of applying a same-column Move.
func Reorder(ids []string, moved string, position int) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != moved {
			out = append(out, id)
		}
	}
	if position < 0 {
		position = 0
	}
	if position > len(out) {
		position = len(out)
	}
	out = append(out[:position], append([]string{moved}, out[position:]...)...)
	return out
}
