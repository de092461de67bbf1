package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brunovidal/funnel/internal/db"
	"github.com/brunovidal/funnel/internal/domain"
)

const reminderColumns = `id, tenant_id, owner_id, title, remind_at,
		is_completed, is_dismissed, created_at, updated_at`

// SQLiteReminderRepo implements ReminderRepo over a SQLite database.
type SQLiteReminderRepo struct {
	db db.DBTX
}

// NewSQLiteReminderRepo creates a new SQLiteReminderRepo.
func NewSQLiteReminderRepo(db db.DBTX) *SQLiteReminderRepo {
	return &SQLiteReminderRepo{db: db}
}

func (r *SQLiteReminderRepo) Create(ctx context.Context, rem *domain.Reminder) error {
	query := `INSERT INTO reminders (id, tenant_id, owner_id, title, remind_at,
		is_completed, is_dismissed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rem.ID,
		rem.TenantID,
		rem.OwnerID,
		rem.Title,
		rem.RemindAt.Format(time.RFC3339),
		boolToInt(rem.Completed),
		boolToInt(rem.Dismissed),
		rem.CreatedAt.Format(time.RFC3339),
		rem.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting reminder: %w", err)
	}
	return nil
}

func (r *SQLiteReminderRepo) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var rem domain.Reminder
	var completedInt, dismissedInt int
	var remindAtStr, createdAtStr, updatedAtStr string
	err := row.Scan(
		&rem.ID, &rem.TenantID, &rem.OwnerID, &rem.Title, &remindAtStr,
		&completedInt, &dismissedInt, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("reminder: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning reminder: %w", err)
	}
	return populateReminder(&rem, completedInt, dismissedInt, remindAtStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteReminderRepo) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE tenant_id = ? ORDER BY remind_at, id`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing reminders by tenant: %w", err)
	}
	defer rows.Close()

	var reminders []*domain.Reminder
	for rows.Next() {
		var rem domain.Reminder
		var completedInt, dismissedInt int
		var remindAtStr, createdAtStr, updatedAtStr string
		err := rows.Scan(
			&rem.ID, &rem.TenantID, &rem.OwnerID, &rem.Title, &remindAtStr,
			&completedInt, &dismissedInt, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning reminder row: %w", err)
		}
		reminder, err := populateReminder(&rem, completedInt, dismissedInt, remindAtStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reminders: %w", err)
	}
	return reminders, nil
}

func (r *SQLiteReminderRepo) Update(ctx context.Context, rem *domain.Reminder) error {
	query := `UPDATE reminders SET tenant_id = ?, owner_id = ?, title = ?, remind_at = ?,
		is_completed = ?, is_dismissed = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		rem.TenantID,
		rem.OwnerID,
		rem.Title,
		rem.RemindAt.Format(time.RFC3339),
		boolToInt(rem.Completed),
		boolToInt(rem.Dismissed),
		rem.UpdatedAt.Format(time.RFC3339),
		rem.ID,
	)
	if err != nil {
		return fmt.Errorf("updating reminder: %w", err)
	}
	return nil
}

func (r *SQLiteReminderRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reminders WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting reminder: %w", err)
	}
	return nil
}

func populateReminder(
	rem *domain.Reminder,
	completedInt, dismissedInt int,
	remindAtStr, createdAtStr, updatedAtStr string,
) (*domain.Reminder, error) {
	rem.Completed = intToBool(completedInt)
	rem.Dismissed = intToBool(dismissedInt)

	var parseErr error
	rem.RemindAt, parseErr = time.Parse(time.RFC3339, remindAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing remind_at: %w", parseErr)
	}
	rem.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	rem.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return rem, nil
}
