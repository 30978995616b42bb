package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/danivilar/atelier/internal/cli"
	"github.com/danivilar/atelier/internal/config"
	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/holded"
	"github.com/danivilar/atelier/internal/insights"
	"github.com/danivilar/atelier/internal/logging"
	"github.com/danivilar/atelier/internal/repository"
	"github.com/danivilar/atelier/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logging.New(cfg.LogPath, logrus.InfoLevel)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	clientRepo := repository.NewSQLiteClientRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	entryRepo := repository.NewSQLiteTimeEntryRepo(database)
	leadRepo := repository.NewSQLiteLeadRepo(database)
	activityRepo := repository.NewSQLiteLeadActivityRepo(database)
	commRepo := repository.NewSQLiteCommunicationRepo(database)
	eventRepo := repository.NewSQLiteBillingEventRepo(database)
	incomeRepo := repository.NewSQLiteIncomeRepo(database)
	expenseRepo := repository.NewSQLiteExpenseRepo(database)
	forecastRepo := repository.NewSQLiteForecastRepo(database)
	digestRepo := repository.NewSQLiteDigestRepo(database)
	proposalRepo := repository.NewSQLiteProposalRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	healthSvc := service.NewHealthService(clientRepo, taskRepo, commRepo, digestRepo, entryRepo, cfg.HourlyCost)

	app := &cli.App{
		Clients:   service.NewClientService(clientRepo, commRepo),
		Projects:  service.NewProjectService(projectRepo, clientRepo),
		Tasks:     service.NewTaskService(taskRepo, clientRepo, uow),
		Time:      service.NewTimeEntryService(entryRepo, uow),
		Leads:     service.NewLeadService(leadRepo, activityRepo, uow),
		Billing:   service.NewBillingService(clientRepo, eventRepo, uow),
		Finance:   service.NewFinanceService(incomeRepo, expenseRepo, uow),
		Forecast:  service.NewForecastService(forecastRepo, incomeRepo, expenseRepo, clientRepo),
		Health:    healthSvc,
		Digests:   service.NewDigestService(digestRepo, clientRepo, taskRepo, entryRepo),
		Proposals: service.NewProposalService(proposalRepo),
		Dashboard: service.NewDashboardService(clientRepo, projectRepo, taskRepo, leadRepo,
			incomeRepo, expenseRepo, healthSvc),
		Insights: service.NewInsightService(clientRepo, taskRepo, commRepo, insights.DefaultThresholds),
	}

	// External invoicing sync only runs with an API key configured.
	if cfg.Holded.Enabled {
		holdedClient := holded.NewClient(cfg.Holded, log)
		app.Sync = service.NewSyncService(clientRepo, holdedClient, log)
	}

	// Detect interactive terminal for TUI views.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
