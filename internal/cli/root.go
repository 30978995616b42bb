package cli

import (
	"github.com/spf13/cobra"

	"github.com/danivilar/atelier/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Clients   service.ClientService
	Projects  service.ProjectService
	Tasks     service.TaskService
	Time      service.TimeEntryService
	Leads     service.LeadService
	Billing   service.BillingService
	Finance   service.FinanceService
	Forecast  service.ForecastService
	Health    service.HealthService
	Digests   service.DigestService
	Proposals service.ProposalService
	Dashboard service.DashboardService
	Insights  service.InsightService

	// Sync is nil unless a Holded API key is configured.
	Sync service.SyncService

	// IsInteractive reports whether stdin is a terminal; TUI views
	// refuse to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "atelier" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "atelier",
		Short: "Agency management from the terminal",
	}

	root.AddCommand(
		newClientCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newLogCmd(app),
		newLeadCmd(app),
		newBillingCmd(app),
		newFinanceCmd(app),
		newTimelineCmd(app),
		newDashboardCmd(app),
		newInsightsCmd(app),
		newDigestCmd(app),
		newProposalCmd(app),
	)

	return root
}
