package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema statements in order. Statements are written to
// be re-runnable; duplicate-column errors from additive ALTER TABLEs are
// tolerated so upgrades and fresh installs share one path.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		company           TEXT NOT NULL DEFAULT '',
		email             TEXT NOT NULL DEFAULT '',
		phone             TEXT NOT NULL DEFAULT '',
		contract_type     TEXT NOT NULL DEFAULT 'monthly'
		                  CHECK(contract_type IN ('monthly','one_time')),
		status            TEXT NOT NULL DEFAULT 'active'
		                  CHECK(status IN ('active','paused','finished')),
		currency          TEXT NOT NULL DEFAULT 'EUR',
		monthly_fee       REAL,
		monthly_budget    REAL,
		notes             TEXT NOT NULL DEFAULT '',
		billing_cycle     TEXT NOT NULL DEFAULT ''
		                  CHECK(billing_cycle IN ('','monthly','bimonthly','quarterly','annual','one_time')),
		billing_day       INTEGER NOT NULL DEFAULT 0,
		next_invoice_date TEXT,
		last_invoiced_at  TEXT,
		holded_contact_id TEXT NOT NULL DEFAULT '',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id              TEXT PRIMARY KEY,
		client_id       TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		type            TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'planning'
		                CHECK(status IN ('planning','active','on_hold','completed','cancelled')),
		start_date      TEXT,
		target_end_date TEXT,
		actual_end_date TEXT,
		progress_pct    INTEGER NOT NULL DEFAULT 0,
		budget_hours    REAL,
		is_recurring    INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT PRIMARY KEY,
		client_id    TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		project_id   TEXT REFERENCES projects(id) ON DELETE SET NULL,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'pending'
		             CHECK(status IN ('pending','in_progress','completed')),
		priority     TEXT NOT NULL DEFAULT 'medium'
		             CHECK(priority IN ('urgent','high','medium','low')),
		due_date     TEXT,
		estimate_min INTEGER NOT NULL DEFAULT 0,
		logged_min   INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_client ON tasks(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id         TEXT PRIMARY KEY,
		task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		minutes    INTEGER NOT NULL,
		note       TEXT NOT NULL DEFAULT '',
		billable   INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_task ON time_entries(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_date ON time_entries(date)`,

	`CREATE TABLE IF NOT EXISTS leads (
		id                  TEXT PRIMARY KEY,
		name                TEXT NOT NULL,
		company             TEXT NOT NULL DEFAULT '',
		email               TEXT NOT NULL DEFAULT '',
		status              TEXT NOT NULL DEFAULT 'new'
		                    CHECK(status IN ('new','contacted','discovery','proposal','negotiation','won','lost')),
		source              TEXT NOT NULL DEFAULT 'other'
		                    CHECK(source IN ('website','referral','linkedin','conference','cold_outreach','other')),
		estimated_value     REAL,
		next_follow_up      TEXT,
		notes               TEXT NOT NULL DEFAULT '',
		converted_client_id TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS lead_activities (
		id         TEXT PRIMARY KEY,
		lead_id    TEXT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
		type       TEXT NOT NULL,
		body       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_lead_activities_lead ON lead_activities(lead_id)`,

	`CREATE TABLE IF NOT EXISTS communications (
		id                 TEXT PRIMARY KEY,
		client_id          TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		channel            TEXT NOT NULL DEFAULT 'email'
		                   CHECK(channel IN ('email','call','meeting','whatsapp','slack','other')),
		summary            TEXT NOT NULL DEFAULT '',
		occurred_at        TEXT NOT NULL,
		requires_follow_up INTEGER NOT NULL DEFAULT 0,
		follow_up_date     TEXT,
		created_at         TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_communications_client ON communications(client_id)`,

	`CREATE TABLE IF NOT EXISTS billing_events (
		id          TEXT PRIMARY KEY,
		client_id   TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		type        TEXT NOT NULL
		            CHECK(type IN ('invoice_sent','payment_received','reminder_sent','note')),
		amount      REAL,
		note        TEXT NOT NULL DEFAULT '',
		occurred_at TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_billing_events_client ON billing_events(client_id)`,

	`CREATE TABLE IF NOT EXISTS income (
		id          TEXT PRIMARY KEY,
		client_id   TEXT NOT NULL DEFAULT '',
		date        TEXT NOT NULL,
		amount      REAL NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		type        TEXT NOT NULL DEFAULT 'one_time'
		            CHECK(type IN ('recurring','one_time')),
		category    TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_income_date ON income(date)`,

	`CREATE TABLE IF NOT EXISTS expenses (
		id           TEXT PRIMARY KEY,
		date         TEXT NOT NULL,
		amount       REAL NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		category     TEXT NOT NULL DEFAULT '',
		is_recurring INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,

	`CREATE TABLE IF NOT EXISTS forecasts (
		id                 TEXT PRIMARY KEY,
		month              TEXT NOT NULL UNIQUE,
		projected_income   REAL NOT NULL,
		projected_expenses REAL NOT NULL,
		projected_taxes    REAL NOT NULL,
		projected_profit   REAL NOT NULL,
		confidence         REAL NOT NULL,
		generated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS digests (
		id           TEXT PRIMARY KEY,
		client_id    TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		period_start TEXT NOT NULL,
		period_end   TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'draft'
		             CHECK(status IN ('draft','reviewed','sent')),
		body         TEXT NOT NULL DEFAULT '',
		sent_at      TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_digests_client ON digests(client_id)`,

	`CREATE TABLE IF NOT EXISTS proposals (
		id           TEXT PRIMARY KEY,
		lead_id      TEXT NOT NULL DEFAULT '',
		client_id    TEXT NOT NULL DEFAULT '',
		title        TEXT NOT NULL,
		company_name TEXT NOT NULL DEFAULT '',
		service_type TEXT NOT NULL DEFAULT 'custom',
		status       TEXT NOT NULL DEFAULT 'draft'
		             CHECK(status IN ('draft','sent','accepted','rejected','expired')),
		amount       REAL,
		valid_until  TEXT,
		sent_at      TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
}
