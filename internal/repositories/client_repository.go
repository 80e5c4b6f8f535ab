package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

type ClientRepository interface {
	Create(ctx context.Context, c *models.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	ListAll(ctx context.Context) ([]*models.Client, error)
	ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*models.Client, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientRepo struct {
	db DB
}

func NewClientRepository(db DB) ClientRepository {
	return &clientRepo{db: db}
}

func baseSelectClient() string {
	return `SELECT id, name, address, company_id, notes, created_at FROM clients`
}

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.CompanyID, &c.Notes, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *clientRepo) Create(ctx context.Context, c *models.Client) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO clients (id, name, address, company_id, notes, created_at)
        VALUES ($1,$2,$3,$4,$5,NOW())
    `, c.ID, c.Name, c.Address, c.CompanyID, c.Notes)
	return err
}

func (r *clientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	row := r.db.QueryRow(ctx, baseSelectClient()+" WHERE id=$1", id)
	return scanClient(row)
}

func (r *clientRepo) ListAll(ctx context.Context) ([]*models.Client, error) {
	return r.list(ctx, baseSelectClient()+" ORDER BY name")
}

func (r *clientRepo) ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*models.Client, error) {
	return r.list(ctx, baseSelectClient()+" WHERE company_id=$1 ORDER BY name", companyID)
}

func (r *clientRepo) list(ctx context.Context, q string, args ...any) ([]*models.Client, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *clientRepo) Update(ctx context.Context, c *models.Client) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE clients SET name=$1, address=$2, company_id=$3, notes=$4 WHERE id=$5
    `, c.Name, c.Address, c.CompanyID, c.Notes, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}
