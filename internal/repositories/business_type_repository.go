package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
)

type BusinessTypeRepository interface {
	Create(ctx context.Context, bt *models.BusinessType) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BusinessType, error)
	ListAll(ctx context.Context) ([]*models.BusinessType, error)
}

type businessTypeRepo struct {
	db DB
}

func NewBusinessTypeRepository(db DB) BusinessTypeRepository {
	return &businessTypeRepo{db: db}
}

func (r *businessTypeRepo) Create(ctx context.Context, bt *models.BusinessType) error {
	_, err := r.db.Exec(ctx, `INSERT INTO business_types (id, name) VALUES ($1,$2)`, bt.ID, bt.Name)
	return err
}

func (r *businessTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BusinessType, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name FROM business_types WHERE id=$1`, id)
	var bt models.BusinessType
	if err := row.Scan(&bt.ID, &bt.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &bt, nil
}

func (r *businessTypeRepo) ListAll(ctx context.Context) ([]*models.BusinessType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM business_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.BusinessType
	for rows.Next() {
		var bt models.BusinessType
		if err := rows.Scan(&bt.ID, &bt.Name); err != nil {
			return nil, err
		}
		out = append(out, &bt)
	}
	return out, rows.Err()
}
