package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danivilar/atelier/internal/cli/formatter"
)

func newDigestCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Weekly client digests",
	}

	cmd.AddCommand(
		newDigestDraftCmd(app),
		newDigestListCmd(app),
		newDigestReviewCmd(app),
		newDigestSendCmd(app),
	)

	return cmd
}

func newDigestDraftCmd(app *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "draft <client>",
		Short: "Generate a draft digest for the week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveClient(ctx, app, args[0])
			if err != nil {
				return err
			}

			weekOf := time.Now().UTC()
			if week != "" {
				parsed, err := parseDateFlag(week, "week")
				if err != nil {
					return err
				}
				weekOf = *parsed
			}

			d, err := app.Digests.GenerateDraft(ctx, c.ID, weekOf)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Draft %s covers %s to %s\n\n", shortID(d.ID),
				d.PeriodStart.Format("2006-01-02"), d.PeriodEnd.Format("2006-01-02"))
			fmt.Fprintln(out, d.Body)
			return nil
		},
	}

	addDateFlag(cmd.Flags(), &week, "week", "Any day inside the target week, defaults to this week")
	return cmd
}

func newDigestListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <client>",
		Short: "List a client's digests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveClient(ctx, app, args[0])
			if err != nil {
				return err
			}

			digests, err := app.Digests.ListByClient(ctx, c.ID)
			if err != nil {
				return err
			}
			if len(digests) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No digests yet.")
				return nil
			}

			rows := make([][]string, 0, len(digests))
			for _, d := range digests {
				sent := "—"
				if d.SentAt != nil {
					sent = d.SentAt.Format("2006-01-02")
				}
				rows = append(rows, []string{
					shortID(d.ID),
					d.PeriodStart.Format("2006-01-02"),
					d.PeriodEnd.Format("2006-01-02"),
					string(d.Status),
					sent,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"ID", "FROM", "TO", "STATUS", "SENT"}, rows))
			return nil
		},
	}
}

func newDigestReviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "review <digest-id>",
		Short: "Mark a draft digest reviewed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Digests.MarkReviewed(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Digest marked reviewed.")
			return nil
		},
	}
}

func newDigestSendCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "send <digest-id>",
		Short: "Mark a digest sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Digests.MarkSent(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Digest marked sent.")
			return nil
		},
	}
}
