package service

import (
	"database/sql"
	"testing"

	"github.com/danivilar/atelier/internal/db"
	"github.com/danivilar/atelier/internal/repository"
	"github.com/danivilar/atelier/internal/testutil"
)

type testRepos struct {
	db        *sql.DB
	uow       db.UnitOfWork
	clients   *repository.SQLiteClientRepo
	projects  *repository.SQLiteProjectRepo
	tasks     *repository.SQLiteTaskRepo
	entries   *repository.SQLiteTimeEntryRepo
	leads     *repository.SQLiteLeadRepo
	acts      *repository.SQLiteLeadActivityRepo
	comms     *repository.SQLiteCommunicationRepo
	events    *repository.SQLiteBillingEventRepo
	income    *repository.SQLiteIncomeRepo
	expenses  *repository.SQLiteExpenseRepo
	digests   *repository.SQLiteDigestRepo
	forecasts *repository.SQLiteForecastRepo
}

func setupRepos(t *testing.T) *testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testRepos{
		db:        database,
		uow:       testutil.NewTestUoW(database),
		clients:   repository.NewSQLiteClientRepo(database),
		projects:  repository.NewSQLiteProjectRepo(database),
		tasks:     repository.NewSQLiteTaskRepo(database),
		entries:   repository.NewSQLiteTimeEntryRepo(database),
		leads:     repository.NewSQLiteLeadRepo(database),
		acts:      repository.NewSQLiteLeadActivityRepo(database),
		comms:     repository.NewSQLiteCommunicationRepo(database),
		events:    repository.NewSQLiteBillingEventRepo(database),
		income:    repository.NewSQLiteIncomeRepo(database),
		expenses:  repository.NewSQLiteExpenseRepo(database),
		digests:   repository.NewSQLiteDigestRepo(database),
		forecasts: repository.NewSQLiteForecastRepo(database),
	}
}
