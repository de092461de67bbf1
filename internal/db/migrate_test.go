package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesAllTables(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"clients", "budgets", "follow_ups", "reminders", "prospects"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s missing", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrate_StatusCheckEnforced(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO budgets
		(id, tenant_id, owner_id, client_id, title, value, status, date_sent, created_at, updated_at)
		VALUES ('b1', 't1', 'u1', 'c1', 'x', '100', 'negotiating', '2025-01-01', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.Error(t, err, "unknown status must violate the CHECK constraint")
}
