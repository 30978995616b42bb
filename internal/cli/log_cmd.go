package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danivilar/atelier/internal/cli/formatter"
	"github.com/danivilar/atelier/internal/domain"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Track time against tasks",
	}

	cmd.AddCommand(
		newLogAddCmd(app),
		newLogWeekCmd(app),
		newLogTaskCmd(app),
		newLogRemoveCmd(app),
	)

	return cmd
}

func newLogAddCmd(app *App) *cobra.Command {
	var taskRef, date, note string
	var minutes int
	var billable bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log minutes on a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, taskRef)
			if err != nil {
				return err
			}

			day := time.Now().UTC()
			if date != "" {
				parsed, err := parseDateFlag(date, "date")
				if err != nil {
					return err
				}
				day = *parsed
			}

			entry := &domain.TimeEntry{
				TaskID:   taskID,
				Date:     day,
				Minutes:  minutes,
				Note:     note,
				Billable: billable,
			}
			if err := app.Time.Log(ctx, entry); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on task %s\n",
				formatter.Duration(minutes), shortID(taskID))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskRef, "task", "", "Task ID or prefix")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Minutes worked")
	addDateFlag(cmd.Flags(), &date, "date", "Work date, defaults to today")
	cmd.Flags().StringVar(&note, "note", "", "What was done")
	cmd.Flags().BoolVar(&billable, "billable", true, "Count toward client billing")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("minutes")

	return cmd
}

func newLogWeekCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show this week's logged time",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			now := time.Now().UTC()
			offset := (int(now.Weekday()) + 6) % 7 // Monday start
			from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)
			to := from.AddDate(0, 0, 6)

			entries, err := app.Time.ListByDateRange(ctx, from, to)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing logged this week.")
				return nil
			}

			total := 0
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				total += e.Minutes
				rows = append(rows, []string{
					e.Date.Format("2006-01-02"),
					shortID(e.TaskID),
					formatter.Duration(e.Minutes),
					formatter.Truncate(e.Note, 40),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.RenderTable([]string{"DATE", "TASK", "TIME", "NOTE"}, rows))
			fmt.Fprintf(out, "\nTotal: %s\n", formatter.Bold(formatter.Duration(total)))
			return nil
		},
	}
}

func newLogTaskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "task <task>",
		Short: "Show all entries for one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, err := resolveTaskID(ctx, app, args[0])
			if err != nil {
				return err
			}

			entries, err := app.Time.ListByTask(ctx, taskID)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No time logged on this task.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				billable := formatter.Dim("no")
				if e.Billable {
					billable = "yes"
				}
				rows = append(rows, []string{
					shortID(e.ID),
					e.Date.Format("2006-01-02"),
					formatter.Duration(e.Minutes),
					billable,
					formatter.Truncate(e.Note, 40),
				})
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "DATE", "TIME", "BILLABLE", "NOTE"}, rows))
			return nil
		},
	}
}

func newLogRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Delete a time entry and subtract its minutes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Time.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Entry removed.")
			return nil
		},
	}
}
