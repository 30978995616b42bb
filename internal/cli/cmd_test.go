package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/insights"
	"github.com/danivilar/atelier/internal/repository"
	"github.com/danivilar/atelier/internal/service"
	"github.com/danivilar/atelier/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

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

	uow := db.NewSQLiteUnitOfWork(database)
	healthSvc := service.NewHealthService(clientRepo, taskRepo, commRepo, digestRepo, entryRepo, 0)

	return &App{
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
		// Sync left nil — Holded disabled in tests.
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestClientAddAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "client", "add",
		"--name", "Acme Corp", "--fee", "1500", "--billing-day", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Created client Acme Corp")

	out, err = executeCmd(t, app, "client", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Corp")
	assert.Contains(t, out, "1500.00 EUR")
}

func TestClientAdd_RequiresName(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "client", "add", "--fee", "100")
	assert.Error(t, err)
}

func TestTaskLifecycleThroughCommands(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "client", "add", "--name", "Acme")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "task", "add",
		"--client", "Acme", "--title", "Keyword research", "--priority", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task Keyword research")

	tasks, err := app.Tasks.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	out, err = executeCmd(t, app, "task", "move", tasks[0].ID, "in_progress")
	require.NoError(t, err)
	assert.Contains(t, out, "in_progress")

	out, err = executeCmd(t, app, "task", "done", tasks[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Completed")

	out, err = executeCmd(t, app, "task", "board", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Keyword research")
}

func TestTaskMove_RejectsInvalidTransition(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "client", "add", "--name", "Acme")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "task", "add", "--client", "Acme", "--title", "Audit")
	require.NoError(t, err)

	tasks, err := app.Tasks.List(context.Background())
	require.NoError(t, err)

	// completed -> pending is not on the transition table
	_, err = executeCmd(t, app, "task", "done", tasks[0].ID)
	require.NoError(t, err)
	_, err = executeCmd(t, app, "task", "move", tasks[0].ID, "pending")
	assert.Error(t, err)
}

func TestLogAddUpdatesTaskMinutes(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "client", "add", "--name", "Acme")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "task", "add", "--client", "Acme", "--title", "Audit")
	require.NoError(t, err)

	tasks, err := app.Tasks.List(ctx)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "log", "add",
		"--task", tasks[0].ID, "--minutes", "90", "--note", "crawl review")
	require.NoError(t, err)
	assert.Contains(t, out, "1h 30min")

	updated, err := app.Tasks.GetByID(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 90, updated.LoggedMin)
}

func TestLeadConvertCommand(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "lead", "add",
		"--name", "Prospect SL", "--value", "4000", "--source", "referral")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "lead", "convert", "Prospect SL")
	require.NoError(t, err)
	assert.Contains(t, out, "Converted Prospect SL into client")

	out, err = executeCmd(t, app, "client", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Prospect SL")
}

func TestBillingInvoiceAdvancesSchedule(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "client", "add",
		"--name", "Acme", "--fee", "1200", "--cycle", "monthly", "--billing-day", "10")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "billing", "invoice", "Acme", "--note", "Monthly retainer")
	require.NoError(t, err)
	assert.Contains(t, out, "1200.00 EUR")

	c, err := app.Clients.Resolve(ctx, "Acme")
	require.NoError(t, err)
	require.NotNil(t, c.LastInvoicedAt)
	require.NotNil(t, c.NextInvoiceDate)
	assert.True(t, c.NextInvoiceDate.After(time.Now().UTC()))

	out, err = executeCmd(t, app, "billing", "history", "Acme")
	require.NoError(t, err)
	assert.Contains(t, out, "invoice_sent")
}

func TestBillingSync_WithoutHoldedConfigured(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "billing", "sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HOLDED_API_KEY")
}

func TestFinanceSummaryCommand(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "finance", "income", "--amount", "2000", "--desc", "retainer")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "finance", "expense", "--amount", "300", "--desc", "tools")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "finance", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "2000.00 EUR")
	assert.Contains(t, out, "300.00 EUR")
}

func TestTimelineCommandRendersProjects(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "client", "add", "--name", "Acme")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "project", "add",
		"--client", "Acme", "--name", "Site migration",
		"--start", "2026-03-01", "--target", "2026-04-15")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "timeline", "--zoom", "month")
	require.NoError(t, err)
	assert.Contains(t, out, "Site migration")
	assert.Contains(t, out, "mar")
}

func TestTimelineCommand_RejectsBadZoom(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "timeline", "--zoom", "year")
	assert.Error(t, err)
}

func TestDashboardCommand(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "client", "add", "--name", "Acme")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "task", "add", "--client", "Acme", "--title", "Audit")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "1 active")
	assert.Contains(t, out, "1 pending")
}

func TestInsightsCommandFlagsOverdueTasks(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "client", "add", "--name", "Acme")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "task", "add", "--client", "Acme",
		"--title", "Audit", "--due", "2026-01-05")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "insights")
	require.NoError(t, err)
	assert.Contains(t, out, "tareas vencidas")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "[ALTA]")
}

func TestDashboardShowsAlertBox(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "client", "add", "--name", "Acme")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "task", "add", "--client", "Acme",
		"--title", "Audit", "--due", "2026-01-05")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "ALERTAS")
	assert.Contains(t, out, "tareas vencidas")
}

func TestProposalLifecycleCommands(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "proposal", "add",
		"--title", "SEO Sprint Q2", "--company", "Acme", "--amount", "5000")
	require.NoError(t, err)

	proposals, err := app.Proposals.List(ctx)
	require.NoError(t, err)
	require.Len(t, proposals, 1)

	_, err = executeCmd(t, app, "proposal", "send", proposals[0].ID)
	require.NoError(t, err)
	_, err = executeCmd(t, app, "proposal", "accept", proposals[0].ID)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "proposal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "accepted")
}

func TestClientContactFeedsHealthScore(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := executeCmd(t, app, "client", "add", "--name", "Acme")
	require.NoError(t, err)

	c, err := app.Clients.Resolve(ctx, "Acme")
	require.NoError(t, err)

	before, err := app.Health.ScoreClient(ctx, c.ID)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "client", "contact", "Acme",
		"--channel", "call", "--summary", "quarterly review")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged call contact with Acme")

	after, err := app.Health.ScoreClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Greater(t, after.Total, before.Total)

	out, err = executeCmd(t, app, "client", "contacts", "Acme")
	require.NoError(t, err)
	assert.Contains(t, out, "quarterly review")
}

func TestDigestDraftCommand(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "client", "add", "--name", "Acme")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "digest", "draft", "Acme", "--week", "2026-02-11")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-02-09")
	assert.Contains(t, out, "2026-02-15")
	assert.Contains(t, out, "Resumen semanal")
}
