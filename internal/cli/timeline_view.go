package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/danivilar/atelier/internal/cli/formatter"
	"github.com/danivilar/atelier/internal/timeline"
)

type timelineKeys struct {
	Zoom key.Binding
	Quit key.Binding
}

var defaultTimelineKeys = timelineKeys{
	Zoom: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "cycle zoom")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// zoomCycle is the order the z key steps through.
var zoomCycle = []timeline.Zoom{timeline.ZoomQuarter, timeline.ZoomMonth, timeline.ZoomWeek}

// timelineModel is a scrollable Gantt viewer. Arrow keys scroll the
// viewport, z cycles the zoom level, which re-derives the chart scale.
type timelineModel struct {
	title string
	rows  []formatter.GanttRow
	start *time.Time
	end   *time.Time
	zoom  timeline.Zoom
	keys  timelineKeys

	vp    viewport.Model
	ready bool
}

func newTimelineModel(title string, rows []formatter.GanttRow, start, end *time.Time, zoom timeline.Zoom) *timelineModel {
	return &timelineModel{
		title: title,
		rows:  rows,
		start: start,
		end:   end,
		zoom:  zoom,
		keys:  defaultTimelineKeys,
	}
}

func (m *timelineModel) Init() tea.Cmd { return nil }

// chartWidth returns the full chart width in cells for the current
// zoom so the viewport can scroll horizontally across it.
func (m *timelineModel) chartWidth() int {
	cfg := timeline.NewConfig(m.start, m.end, m.zoom)
	// One cell per DayWidth pixels keeps week zoom readable while
	// quarter zoom stays compact.
	return formatter.GanttLabelWidth + cfg.TotalDays*cellsPerDay(m.zoom)
}

// cellsPerDay maps zoom density to terminal cells per day.
func cellsPerDay(z timeline.Zoom) int {
	switch z {
	case timeline.ZoomWeek:
		return 4
	case timeline.ZoomQuarter:
		return 1
	default:
		return 2
	}
}

func (m *timelineModel) render() string {
	cfg := timeline.NewConfig(m.start, m.end, m.zoom)
	return formatter.RenderGantt(cfg, m.rows, m.chartWidth())
}

func (m *timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-3)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 3
		}
		m.vp.SetContent(m.render())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Zoom):
			m.zoom = nextZoom(m.zoom)
			if m.ready {
				m.vp.SetContent(m.render())
			}
			return m, nil
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func nextZoom(current timeline.Zoom) timeline.Zoom {
	for i, z := range zoomCycle {
		if z == current {
			return zoomCycle[(i+1)%len(zoomCycle)]
		}
	}
	return timeline.ZoomMonth
}

func (m *timelineModel) View() string {
	if !m.ready {
		return "loading..."
	}
	header := formatter.Header(fmt.Sprintf("%s — %s zoom", m.title, m.zoom))
	help := formatter.Dim("↑/↓ scroll · z zoom · q quit")
	return header + "\n" + m.vp.View() + "\n" + help
}
