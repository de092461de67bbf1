package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brunovidal/funnel/internal/db"
	"github.com/brunovidal/funnel/internal/domain"
)

const clientColumns = `id, tenant_id, name, company, email, phone, created_at, updated_at`

// SQLiteClientRepo implements ClientRepo over a SQLite database.
type SQLiteClientRepo struct {
	db db.DBTX
}

// NewSQLiteClientRepo creates a new SQLiteClientRepo.
func NewSQLiteClientRepo(db db.DBTX) *SQLiteClientRepo {
	return &SQLiteClientRepo{db: db}
}

func (r *SQLiteClientRepo) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (id, tenant_id, name, company, email, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.TenantID,
		c.Name,
		c.Company,
		c.Email,
		c.Phone,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting client: %w", err)
	}
	return nil
}

func (r *SQLiteClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	c, err := scanClient(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("client: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}
	return c, nil
}

func (r *SQLiteClientRepo) ListByTenant(ctx context.Context, tenantID string) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE tenant_id = ? ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing clients by tenant: %w", err)
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		c, err := scanClient(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning client row: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	return clients, nil
}

func (r *SQLiteClientRepo) NamesByTenant(ctx context.Context, tenantID string) (map[string]string, error) {
	query := `SELECT id, name FROM clients WHERE tenant_id = ?`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing client names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning client name: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client names: %w", err)
	}
	return names, nil
}

func (r *SQLiteClientRepo) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET tenant_id = ?, name = ?, company = ?, email = ?, phone = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.TenantID,
		c.Name,
		c.Company,
		c.Email,
		c.Phone,
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	return nil
}

func (r *SQLiteClientRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM clients WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	return nil
}

func scanClient(scan func(dest ...any) error) (*domain.Client, error) {
	var c domain.Client
	var createdAtStr, updatedAtStr string
	err := scan(&c.ID, &c.TenantID, &c.Name, &c.Company, &c.Email, &c.Phone, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}

	var parseErr error
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &c, nil
}
