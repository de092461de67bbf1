package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brunovidal/funnel/internal/db"
	"github.com/brunovidal/funnel/internal/domain"
)

const prospectColumns = `id, tenant_id, owner_id, name, client_id, notes, created_at, updated_at`

// SQLiteProspectRepo implements ProspectRepo over a SQLite database.
type SQLiteProspectRepo struct {
	db db.DBTX
}

// NewSQLiteProspectRepo creates a new SQLiteProspectRepo.
func NewSQLiteProspectRepo(db db.DBTX) *SQLiteProspectRepo {
	return &SQLiteProspectRepo{db: db}
}

func (r *SQLiteProspectRepo) Create(ctx context.Context, p *domain.Prospect) error {
	query := `INSERT INTO prospects (id, tenant_id, owner_id, name, client_id, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.TenantID,
		p.OwnerID,
		p.Name,
		nullableString(p.ClientID),
		p.Notes,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting prospect: %w", err)
	}
	return nil
}

func (r *SQLiteProspectRepo) GetByID(ctx context.Context, id string) (*domain.Prospect, error) {
	query := `SELECT ` + prospectColumns + ` FROM prospects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	p, err := scanProspect(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("prospect: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning prospect: %w", err)
	}
	return p, nil
}

func (r *SQLiteProspectRepo) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Prospect, error) {
	query := `SELECT ` + prospectColumns + ` FROM prospects WHERE tenant_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing prospects by tenant: %w", err)
	}
	defer rows.Close()

	var prospects []*domain.Prospect
	for rows.Next() {
		p, err := scanProspect(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning prospect row: %w", err)
		}
		prospects = append(prospects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prospects: %w", err)
	}
	return prospects, nil
}

func (r *SQLiteProspectRepo) Update(ctx context.Context, p *domain.Prospect) error {
	query := `UPDATE prospects SET tenant_id = ?, owner_id = ?, name = ?, client_id = ?, notes = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.TenantID,
		p.OwnerID,
		p.Name,
		nullableString(p.ClientID),
		p.Notes,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating prospect: %w", err)
	}
	return nil
}

func (r *SQLiteProspectRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM prospects WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting prospect: %w", err)
	}
	return nil
}

func scanProspect(scan func(dest ...any) error) (*domain.Prospect, error) {
	var p domain.Prospect
	var clientStr sql.NullString
	var createdAtStr, updatedAtStr string
	err := scan(&p.ID, &p.TenantID, &p.OwnerID, &p.Name, &clientStr, &p.Notes, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}
	p.ClientID = stringToNullable(clientStr)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &p, nil
}
