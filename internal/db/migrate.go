package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// duplicates are tolerated so the full list can re-run on every open.
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
		id         TEXT PRIMARY KEY,
		tenant_id  TEXT NOT NULL,
		name       TEXT NOT NULL,
		company    TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_clients_tenant ON clients(tenant_id)`,

	`CREATE TABLE IF NOT EXISTS budgets (
		id             TEXT PRIMARY KEY,
		tenant_id      TEXT NOT NULL,
		owner_id       TEXT NOT NULL,
		client_id      TEXT NOT NULL,
		contact_id     TEXT,
		title          TEXT NOT NULL,
		value          TEXT NOT NULL,
		status         TEXT NOT NULL
		               CHECK(status IN ('sent','following_up','order_placed','on_hold','invoiced','lost')),
		date_sent      TEXT NOT NULL,
		next_follow_up TEXT,
		observations   TEXT NOT NULL DEFAULT '',
		lost_reason    TEXT NOT NULL DEFAULT '',
		lost_notes     TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_budgets_tenant ON budgets(tenant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_budgets_status ON budgets(status)`,

	`CREATE TABLE IF NOT EXISTS follow_ups (
		id         TEXT PRIMARY KEY,
		budget_id  TEXT NOT NULL REFERENCES budgets(id) ON DELETE CASCADE,
		note       TEXT NOT NULL DEFAULT '',
		media_ref  TEXT,
		tag        TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_follow_ups_budget ON follow_ups(budget_id)`,

	`CREATE TABLE IF NOT EXISTS reminders (
		id           TEXT PRIMARY KEY,
		tenant_id    TEXT NOT NULL,
		owner_id     TEXT NOT NULL,
		title        TEXT NOT NULL,
		remind_at    TEXT NOT NULL,
		is_completed INTEGER NOT NULL DEFAULT 0,
		is_dismissed INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reminders_tenant ON reminders(tenant_id)`,

	`CREATE TABLE IF NOT EXISTS prospects (
		id         TEXT PRIMARY KEY,
		tenant_id  TEXT NOT NULL,
		owner_id   TEXT NOT NULL,
		name       TEXT NOT NULL,
		client_id  TEXT,
		notes      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_prospects_tenant ON prospects(tenant_id)`,
}
