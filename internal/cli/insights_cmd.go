package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danivilar/atelier/internal/cli/formatter"
	"github.com/danivilar/atelier/internal/insights"
)

func newInsightsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Alerts and suggestions from current workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Insights.Generate(context.Background(), time.Now().UTC())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "All clear. No alerts right now.")
				return nil
			}

			fmt.Fprintln(out, formatter.Header("Insights"))
			for _, in := range list {
				fmt.Fprintf(out, "\n%s %s\n", priorityTag(in.Priority), formatter.Bold(in.Title))
				fmt.Fprintf(out, "   %s\n", in.Detail)
				fmt.Fprintf(out, "   %s\n", formatter.Dim("→ "+in.Action))
			}
			return nil
		},
	}
}

func priorityTag(p insights.Priority) string {
	switch p {
	case insights.PriorityHigh:
		return formatter.StyleRed.Render("[ALTA]")
	case insights.PriorityMedium:
		return formatter.StyleYellow.Render("[MEDIA]")
	default:
		return formatter.StyleDim.Render("[BAJA]")
	}
}
