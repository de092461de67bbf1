package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brunovidal/funnel/internal/db"
	"github.com/brunovidal/funnel/internal/domain"
)

// budgetColumns is the canonical SELECT column list for budgets.
const budgetColumns = `id, tenant_id, owner_id, client_id, contact_id,
		title, value, status, date_sent, next_follow_up, observations,
		lost_reason, lost_notes, created_at, updated_at`

// SQLiteBudgetRepo implements BudgetRepo over a SQLite database. It accepts
// any db.DBTX so callers can scope it to a transaction.
type SQLiteBudgetRepo struct {
	db db.DBTX
}

// NewSQLiteBudgetRepo creates a new SQLiteBudgetRepo.
func NewSQLiteBudgetRepo(db db.DBTX) *SQLiteBudgetRepo {
	return &SQLiteBudgetRepo{db: db}
}

func (r *SQLiteBudgetRepo) Create(ctx context.Context, b *domain.Budget) error {
	query := `INSERT INTO budgets (id, tenant_id, owner_id, client_id, contact_id,
		title, value, status, date_sent, next_follow_up, observations,
		lost_reason, lost_notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.TenantID,
		b.OwnerID,
		b.ClientID,
		nullableString(b.ContactID),
		b.Title,
		b.Value.String(),
		string(b.Status),
		b.DateSent.Format(dateLayout),
		nullableTimeToString(b.NextFollowUp, time.RFC3339),
		b.Observations,
		string(b.LostReason),
		b.LostNotes,
		b.CreatedAt.Format(time.RFC3339),
		b.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting budget: %w", err)
	}
	return nil
}

func (r *SQLiteBudgetRepo) GetByID(ctx context.Context, id string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	b, err := r.scanBudget(row)
	if err != nil {
		return nil, err
	}
	followUps, err := r.ListFollowUps(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.FollowUps = followUps
	return b, nil
}

func (r *SQLiteBudgetRepo) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE tenant_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets by tenant: %w", err)
	}
	defer rows.Close()
	return r.scanBudgets(rows)
}

// Update writes the budget row only; follow-ups are append-only and written
// through AppendFollowUp.
func (r *SQLiteBudgetRepo) Update(ctx context.Context, b *domain.Budget) error {
	query := `UPDATE budgets SET tenant_id = ?, owner_id = ?, client_id = ?, contact_id = ?,
		title = ?, value = ?, status = ?, date_sent = ?, next_follow_up = ?, observations = ?,
		lost_reason = ?, lost_notes = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		b.TenantID,
		b.OwnerID,
		b.ClientID,
		nullableString(b.ContactID),
		b.Title,
		b.Value.String(),
		string(b.Status),
		b.DateSent.Format(dateLayout),
		nullableTimeToString(b.NextFollowUp, time.RFC3339),
		b.Observations,
		string(b.LostReason),
		b.LostNotes,
		b.UpdatedAt.Format(time.RFC3339),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}
	return nil
}

func (r *SQLiteBudgetRepo) AppendFollowUp(ctx context.Context, f *domain.FollowUp) error {
	query := `INSERT INTO follow_ups (id, budget_id, note, media_ref, tag, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.BudgetID,
		f.Note,
		nullableString(f.MediaRef),
		string(f.Tag),
		f.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting follow-up: %w", err)
	}
	return nil
}

func (r *SQLiteBudgetRepo) ListFollowUps(ctx context.Context, budgetID string) ([]domain.FollowUp, error) {
	query := `SELECT id, budget_id, note, media_ref, tag, created_at
		FROM follow_ups WHERE budget_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("listing follow-ups: %w", err)
	}
	defer rows.Close()

	var followUps []domain.FollowUp
	for rows.Next() {
		var f domain.FollowUp
		var mediaStr sql.NullString
		var tagStr, createdAtStr string
		if err := rows.Scan(&f.ID, &f.BudgetID, &f.Note, &mediaStr, &tagStr, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning follow-up: %w", err)
		}
		f.MediaRef = stringToNullable(mediaStr)
		f.Tag = domain.FollowUpTag(tagStr)
		f.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing follow-up created_at: %w", err)
		}
		followUps = append(followUps, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating follow-ups: %w", err)
	}
	return followUps, nil
}

// scanBudget scans a single budget from a *sql.Row.
func (r *SQLiteBudgetRepo) scanBudget(row *sql.Row) (*domain.Budget, error) {
	var b domain.Budget
	var contactStr, nextStr sql.NullString
	var valueStr, statusStr, dateSentStr, lostReasonStr string
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&b.ID, &b.TenantID, &b.OwnerID, &b.ClientID, &contactStr,
		&b.Title, &valueStr, &statusStr, &dateSentStr, &nextStr, &b.Observations,
		&lostReasonStr, &b.LostNotes, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("budget: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning budget: %w", err)
	}

	return r.populateBudget(&b, contactStr, nextStr, valueStr, statusStr, dateSentStr, lostReasonStr, createdAtStr, updatedAtStr)
}

// scanBudgets scans multiple budgets from *sql.Rows.
func (r *SQLiteBudgetRepo) scanBudgets(rows *sql.Rows) ([]*domain.Budget, error) {
	var budgets []*domain.Budget
	for rows.Next() {
		var b domain.Budget
		var contactStr, nextStr sql.NullString
		var valueStr, statusStr, dateSentStr, lostReasonStr string
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&b.ID, &b.TenantID, &b.OwnerID, &b.ClientID, &contactStr,
			&b.Title, &valueStr, &statusStr, &dateSentStr, &nextStr, &b.Observations,
			&lostReasonStr, &b.LostNotes, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning budget row: %w", err)
		}

		budget, err := r.populateBudget(&b, contactStr, nextStr, valueStr, statusStr, dateSentStr, lostReasonStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budgets: %w", err)
	}
	return budgets, nil
}

// populateBudget fills in parsed fields on a Budget after scanning raw values.
func (r *SQLiteBudgetRepo) populateBudget(
	b *domain.Budget,
	contactStr, nextStr sql.NullString,
	valueStr, statusStr, dateSentStr, lostReasonStr string,
	createdAtStr, updatedAtStr string,
) (*domain.Budget, error) {
	b.ContactID = stringToNullable(contactStr)
	b.NextFollowUp = parseNullableTime(nextStr, time.RFC3339)
	b.Value = parseDecimal(valueStr)
	b.Status = domain.BudgetStatus(statusStr)
	b.LostReason = domain.LostReason(lostReasonStr)

	var parseErr error
	b.DateSent, parseErr = time.Parse(dateLayout, dateSentStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing date_sent: %w", parseErr)
	}
	b.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	b.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return b, nil
}
