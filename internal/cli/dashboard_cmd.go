package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/danivilar/atelier/internal/cli/formatter"
)

// dashboardAlertLimit caps the alert box; the insights command shows
// the full list.
const dashboardAlertLimit = 3

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "One-screen overview of the agency",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			s, err := app.Dashboard.Summary(context.Background(), now)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Atelier — "+now.Format("Mon 2 Jan 2006")))
			fmt.Fprintln(out)

			fmt.Fprintf(out, "Clients:   %d active", s.ActiveClients)
			if s.ClientsDueInvoice > 0 {
				fmt.Fprintf(out, "  ·  %s", formatter.StyleYellow.Render(
					fmt.Sprintf("%d due for invoicing", s.ClientsDueInvoice)))
			}
			fmt.Fprintln(out)

			fmt.Fprintf(out, "Projects:  %d open\n", s.OpenProjects)

			fmt.Fprintf(out, "Tasks:     %d pending, %d in progress", s.PendingTasks, s.InProgressTasks)
			if s.OverdueTasks > 0 {
				fmt.Fprintf(out, ", %s", formatter.StyleRed.Render(
					fmt.Sprintf("%d overdue", s.OverdueTasks)))
			}
			fmt.Fprintln(out)

			fmt.Fprintf(out, "Pipeline:  %d open leads", s.OpenLeads)
			if s.FollowUpsDue > 0 {
				fmt.Fprintf(out, "  ·  %s", formatter.StyleYellow.Render(
					fmt.Sprintf("%d follow-ups due", s.FollowUpsDue)))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out)

			net := s.MonthIncome - s.MonthExpenses
			fmt.Fprintf(out, "This month: %s in, %s out, net %s\n",
				formatter.StyleGreen.Render(formatter.Money(s.MonthIncome, "EUR")),
				formatter.StyleRed.Render(formatter.Money(s.MonthExpenses, "EUR")),
				formatter.Bold(formatter.Money(net, "EUR")))

			if len(s.AtRiskClients) > 0 {
				var lines []string
				for _, score := range s.AtRiskClients {
					lines = append(lines, fmt.Sprintf("%s  %s (%d/100)",
						formatter.RiskIndicator(score.Risk), score.ClientName, score.Total))
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.RenderBox("Needs attention", strings.Join(lines, "\n")))
			}

			alerts, err := app.Insights.Generate(context.Background(), now)
			if err != nil {
				return err
			}
			if len(alerts) > dashboardAlertLimit {
				alerts = alerts[:dashboardAlertLimit]
			}
			if len(alerts) > 0 {
				var lines []string
				for _, a := range alerts {
					lines = append(lines, fmt.Sprintf("%s %s", priorityTag(a.Priority), a.Title))
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.RenderBox("Alertas", strings.Join(lines, "\n")))
			}
			return nil
		},
	}
}
