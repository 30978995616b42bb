package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/danivilar/atelier/internal/cli/formatter"
	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/kanban"
	"github.com/danivilar/atelier/internal/service"
)

// boardKeys is the keymap for the kanban board view.
type boardKeys struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Grab   key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

var defaultBoardKeys = boardKeys{
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column left")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column right")),
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "task up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "task down")),
	Grab:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "grab/drop")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// boardLoadedMsg carries a reloaded board after a move is applied.
type boardLoadedMsg struct {
	board *service.Board
	err   error
}

// boardModel is the interactive kanban view. A grab picks the cursor's
// task up into the drag machine; moving while dragging moves the ghost,
// and a second grab drops it, emitting one Move.
type boardModel struct {
	app      *App
	clientID string
	board    *service.Board
	machine  *kanban.Machine
	keys     boardKeys

	col    int // index into domain.BoardColumns
	row    int
	status string
	err    error
	width  int
}

func newBoardModel(app *App, clientID string, board *service.Board) *boardModel {
	return &boardModel{
		app:      app,
		clientID: clientID,
		board:    board,
		machine:  kanban.NewMachine(),
		keys:     defaultBoardKeys,
	}
}

func (m *boardModel) Init() tea.Cmd { return nil }

func (m *boardModel) reload() tea.Cmd {
	app, clientID := m.app, m.clientID
	return func() tea.Msg {
		board, err := app.Tasks.Board(context.Background(), clientID)
		return boardLoadedMsg{board: board, err: err}
	}
}

func (m *boardModel) column() []*domain.Task {
	return m.board.Columns[domain.BoardColumns[m.col]]
}

func (m *boardModel) clampRow() {
	if n := len(m.column()); m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.board = msg.board
		m.clampRow()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Left):
			if m.col > 0 {
				m.col--
				m.clampRow()
			}
			return m, nil

		case key.Matches(msg, m.keys.Right):
			if m.col < len(domain.BoardColumns)-1 {
				m.col++
				m.clampRow()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.row > 0 {
				m.row--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.row < len(m.column())-1 {
				m.row++
			}
			return m, nil

		case key.Matches(msg, m.keys.Cancel):
			m.machine.Cancel()
			m.status = "drag cancelled"
			return m, nil

		case key.Matches(msg, m.keys.Grab):
			return m.grabOrDrop()
		}
	}
	return m, nil
}

func (m *boardModel) grabOrDrop() (tea.Model, tea.Cmd) {
	if m.machine.State() == kanban.StateIdle {
		tasks := m.column()
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[m.row]
		if err := m.machine.Pickup(t.ID, t.Status); err != nil {
			m.err = err
			return m, nil
		}
		m.status = fmt.Sprintf("dragging %s", formatter.Truncate(t.Title, 30))
		return m, nil
	}

	mv, err := m.machine.Drop(domain.BoardColumns[m.col], m.row)
	if err != nil {
		m.err = err
		return m, nil
	}
	if err := m.app.Tasks.ApplyMove(context.Background(), mv); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = fmt.Sprintf("moved to %s", mv.To.Label())
	return m, m.reload()
}

var (
	boardColStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(formatter.ColorDim).
			Padding(0, 1)
	boardColActive = boardColStyle.
			BorderForeground(formatter.ColorHeader)
	boardCursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	boardGhost  = lipgloss.NewStyle().Foreground(formatter.ColorPurple).Italic(true)
)

func (m *boardModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("error: "+m.err.Error()) + "\n"
	}

	colWidth := 28
	if m.width > 0 {
		if w := m.width/len(domain.BoardColumns) - 4; w > 20 {
			colWidth = w
		}
	}

	cols := make([]string, 0, len(domain.BoardColumns))
	for ci, status := range domain.BoardColumns {
		tasks := m.board.Columns[status]

		var b strings.Builder
		b.WriteString(formatter.Bold(fmt.Sprintf("%s (%d)", status.Label(), len(tasks))))
		b.WriteString("\n")
		for ri, t := range tasks {
			line := fmt.Sprintf("%s %s",
				formatter.PriorityTag(t.Priority),
				formatter.Truncate(t.Title, colWidth-8))
			switch {
			case m.machine.Dragging() == t.ID:
				line = boardGhost.Render("≡ " + formatter.Truncate(t.Title, colWidth-8))
			case ci == m.col && ri == m.row:
				line = boardCursor.Render("> ") + line
			default:
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		if len(tasks) == 0 {
			b.WriteString(formatter.Dim("  (empty)"))
			b.WriteString("\n")
		}

		style := boardColStyle
		if ci == m.col {
			style = boardColActive
		}
		cols = append(cols, style.Width(colWidth).Render(b.String()))
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	help := formatter.Dim("←/→ column · ↑/↓ task · space grab/drop · esc cancel · q quit")
	if m.status != "" {
		help = formatter.Dim(m.status) + "\n" + help
	}
	return view + "\n" + help + "\n"
}
