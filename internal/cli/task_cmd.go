package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/danivilar/atelier/internal/cli/formatter"
	"github.com/danivilar/atelier/internal/domain"
	"github.com/danivilar/atelier/internal/kanban"
	"github.com/danivilar/atelier/internal/service"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskMoveCmd(app),
		newTaskDoneCmd(app),
		newTaskBoardCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var clientRef, projectRef, title, description, priority, due string
	var estimate int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveClient(ctx, app, clientRef)
			if err != nil {
				return err
			}

			dueDate, err := parseDateFlag(due, "due")
			if err != nil {
				return err
			}

			t := &domain.Task{
				ClientID:    c.ID,
				Title:       title,
				Description: description,
				Priority:    domain.TaskPriority(priority),
				DueDate:     dueDate,
				EstimateMin: estimate,
			}
			if projectRef != "" {
				projectID, err := resolveProjectID(ctx, app, projectRef)
				if err != nil {
					return err
				}
				t.ProjectID = projectID
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s (%s)\n", t.Title, shortID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientRef, "client", "", "Client name or ID")
	cmd.Flags().StringVar(&projectRef, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority (urgent|high|medium|low)")
	addDateFlag(cmd.Flags(), &due, "due", "Due date")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "Estimate in minutes")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var clientRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by priority",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var tasks []*domain.Task
			var err error
			if clientRef != "" {
				c, rerr := resolveClient(ctx, app, clientRef)
				if rerr != nil {
					return rerr
				}
				tasks, err = app.Tasks.ListByClient(ctx, c.ID)
			} else {
				tasks, err = app.Tasks.List(ctx)
			}
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}

			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				rows = append(rows, []string{
					shortID(t.ID),
					formatter.PriorityTag(t.Priority),
					formatter.Truncate(t.Title, 40),
					formatter.TaskStatusPill(t.Status),
					formatter.Date(t.DueDate),
					formatter.Duration(t.LoggedMin),
				})
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "PRI", "TITLE", "STATUS", "DUE", "LOGGED"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientRef, "client", "", "Only tasks for this client")
	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <task> <status>",
		Short: "Move a task to another board column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, id)
			if err != nil {
				return err
			}

			machine := kanban.NewMachine()
			if err := machine.Pickup(t.ID, t.Status); err != nil {
				return err
			}
			mv, err := machine.Drop(domain.TaskStatus(args[1]), 0)
			if err != nil {
				return err
			}

			if err := app.Tasks.ApplyMove(ctx, mv); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", t.Title, mv.To)
			return nil
		},
	}
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Tasks.GetByID(ctx, id)
			if err != nil {
				return err
			}

			machine := kanban.NewMachine()
			if err := machine.Pickup(t.ID, t.Status); err != nil {
				return err
			}
			mv, err := machine.Drop(domain.TaskCompleted, 0)
			if err != nil {
				return err
			}
			if err := app.Tasks.ApplyMove(ctx, mv); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", t.Title)
			return nil
		},
	}
}

func newTaskBoardCmd(app *App) *cobra.Command {
	var clientRef string
	var plain bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Kanban board of tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			clientID := ""
			if clientRef != "" {
				c, err := resolveClient(ctx, app, clientRef)
				if err != nil {
					return err
				}
				clientID = c.ID
			}

			board, err := app.Tasks.Board(ctx, clientID)
			if err != nil {
				return err
			}

			interactive := app.IsInteractive != nil && app.IsInteractive()
			if plain || !interactive {
				fmt.Fprint(cmd.OutOrStdout(), renderBoardPlain(board))
				return nil
			}

			model := newBoardModel(app, clientID, board)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&clientRef, "client", "", "Only tasks for this client")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the board instead of opening the TUI")
	return cmd
}

// renderBoardPlain prints the three columns vertically for piped output.
func renderBoardPlain(board *service.Board) string {
	out := ""
	for _, status := range domain.BoardColumns {
		tasks := board.Columns[status]
		out += formatter.Header(fmt.Sprintf("%s (%d)", status.Label(), len(tasks))) + "\n"
		if len(tasks) == 0 {
			out += formatter.Dim("  (empty)") + "\n\n"
			continue
		}
		for _, t := range tasks {
			out += fmt.Sprintf("  %s %s %s\n",
				shortID(t.ID), formatter.PriorityTag(t.Priority), t.Title)
		}
		out += "\n"
	}
	return out
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <task>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Task removed.")
			return nil
		},
	}
}
