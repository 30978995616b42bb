package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danivilar/atelier/internal/timeline"
)

// ansiPattern matches ANSI escape sequences for stripping before comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTable_Alignment(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"NAME", "STATUS"},
		[][]string{
			{"Acme Corp", "active"},
			{"Solo", "paused"},
		},
	))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "NAME       STATUS", lines[0])
	assert.Equal(t, "Acme Corp  active", lines[2])

	// Status starts at the same column in every row.
	assert.Equal(t, strings.Index(lines[2], "active"), strings.Index(lines[3], "paused"))
}

func TestRenderTable_StyledCellsDoNotSkewWidths(t *testing.T) {
	styled := StyleGreen.Render("active")
	out := stripANSI(RenderTable(
		[]string{"NAME", "STATUS"},
		[][]string{
			{"Acme", styled},
			{"Beta Studio", "paused"},
		},
	))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, strings.Index(lines[2], "active"), strings.Index(lines[3], "paused"))
}

func TestRenderGantt_BarSpansDates(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	cfg := timeline.NewConfig(&start, &end, timeline.ZoomMonth)

	barStart := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	barEnd := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	out := stripANSI(RenderGantt(cfg, []GanttRow{
		{Label: "Website redesign", Start: &barStart, End: &barEnd},
	}, 100))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	// Month ruler carries the localized labels for the padded range.
	assert.Contains(t, lines[0], "feb")
	assert.Contains(t, lines[0], "mar")

	// The row shows its label and a drawn bar.
	assert.Contains(t, lines[2], "Website redesign")
	assert.Contains(t, lines[2], "█")
}

func TestRenderGantt_DatelessRowHasNoBar(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	cfg := timeline.NewConfig(&start, &end, timeline.ZoomMonth)

	out := stripANSI(RenderGantt(cfg, []GanttRow{
		{Label: "Backlog item"},
	}, 100))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.NotContains(t, lines[2], "█")
}

func TestRenderBox_FramesContentWithTitle(t *testing.T) {
	out := stripANSI(RenderBox("Needs attention", "● AT RISK  Acme (32/100)"))

	assert.Contains(t, out, "NEEDS ATTENTION")
	assert.Contains(t, out, "Acme (32/100)")
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "╯")
}
