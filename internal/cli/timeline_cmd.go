package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/danivilar/atelier/internal/cli/formatter"
	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/timeline"
)

func newTimelineCmd(app *App) *cobra.Command {
	var clientRef, projectRef, zoom string
	var width int
	var plain bool

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Gantt chart of projects or tasks",
		Long: "Without flags, charts all open projects. With --project, charts that\n" +
			"project's tasks by due date instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			z := timeline.Zoom(zoom)
			switch z {
			case timeline.ZoomWeek, timeline.ZoomMonth, timeline.ZoomQuarter:
			default:
				return fmt.Errorf("invalid --zoom %q: expected week, month or quarter", zoom)
			}

			interactive := !plain && app.IsInteractive != nil && app.IsInteractive()

			if projectRef != "" {
				return renderTaskTimeline(ctx, cmd, app, projectRef, z, width, interactive)
			}
			return renderProjectTimeline(ctx, cmd, app, clientRef, z, width, interactive)
		},
	}

	cmd.Flags().StringVar(&clientRef, "client", "", "Only projects for this client")
	cmd.Flags().StringVar(&projectRef, "project", "", "Chart one project's tasks")
	cmd.Flags().StringVar(&zoom, "zoom", "month", "Zoom level (week|month|quarter)")
	cmd.Flags().IntVar(&width, "width", 100, "Chart width in columns")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the chart instead of opening the viewer")
	return cmd
}

// runTimelineViewer opens the scrollable Gantt viewer in the alternate
// screen.
func runTimelineViewer(title string, rows []formatter.GanttRow, start, end *time.Time, zoom timeline.Zoom) error {
	m := newTimelineModel(title, rows, start, end, zoom)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func renderProjectTimeline(ctx context.Context, cmd *cobra.Command, app *App, clientRef string, zoom timeline.Zoom, width int, interactive bool) error {
	var projects []*domain.Project
	var err error
	if clientRef != "" {
		c, rerr := resolveClient(ctx, app, clientRef)
		if rerr != nil {
			return rerr
		}
		projects, err = app.Projects.ListByClient(ctx, c.ID)
	} else {
		projects, err = app.Projects.List(ctx, true)
	}
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No projects to chart.")
		return nil
	}

	start, end := spanOfProjects(projects)

	rows := make([]formatter.GanttRow, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, formatter.GanttRow{
			Label: p.Name,
			Start: p.StartDate,
			End:   p.TargetEndDate,
			Done:  p.Status == domain.ProjectCompleted,
		})
	}

	if interactive {
		return runTimelineViewer("Projects", rows, start, end, zoom)
	}
	cfg := timeline.NewConfig(start, end, zoom)
	fmt.Fprint(cmd.OutOrStdout(), formatter.RenderGantt(cfg, rows, width))
	return nil
}

func renderTaskTimeline(ctx context.Context, cmd *cobra.Command, app *App, projectRef string, zoom timeline.Zoom, width int, interactive bool) error {
	projectID, err := resolveProjectID(ctx, app, projectRef)
	if err != nil {
		return err
	}
	p, err := app.Projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	tasks, err := app.Tasks.List(ctx)
	if err != nil {
		return err
	}

	var rows []formatter.GanttRow
	for _, t := range tasks {
		if t.ProjectID != projectID {
			continue
		}
		created := t.CreatedAt
		rows = append(rows, formatter.GanttRow{
			Label: t.Title,
			Start: &created,
			End:   t.DueDate,
			Done:  t.Status == domain.TaskCompleted,
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks to chart for this project.")
		return nil
	}

	if interactive {
		return runTimelineViewer(p.Name, rows, p.StartDate, p.TargetEndDate, zoom)
	}
	cfg := timeline.NewConfig(p.StartDate, p.TargetEndDate, zoom)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.Header(p.Name))
	fmt.Fprint(out, formatter.RenderGantt(cfg, rows, width))
	return nil
}

// spanOfProjects returns the earliest start and latest target end across
// the set, either of which may be nil.
func spanOfProjects(projects []*domain.Project) (*time.Time, *time.Time) {
	var start, end *time.Time
	for _, p := range projects {
		if p.StartDate != nil && (start == nil || p.StartDate.Before(*start)) {
			start = p.StartDate
		}
		if p.TargetEndDate != nil && (end == nil || p.TargetEndDate.After(*end)) {
			end = p.TargetEndDate
		}
	}
	return start, end
}
