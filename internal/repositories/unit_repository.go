package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

type UnitRepository interface {
	Create(ctx context.Context, u *models.Unit) error
	CreateBatch(ctx context.Context, units []*models.Unit) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	ListByClientID(ctx context.Context, clientID uuid.UUID) ([]*models.Unit, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type unitRepo struct {
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	return &unitRepo{db: db}
}

func baseSelectUnit() string {
	return `SELECT id, client_id, name, unit_type, eircode, street, city, county, created_at FROM units`
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	err := row.Scan(&u.ID, &u.ClientID, &u.Name, &u.UnitType, &u.Eircode, &u.Street, &u.City, &u.County, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO units (id, client_id, name, unit_type, eircode, street, city, county, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
    `, u.ID, u.ClientID, u.Name, u.UnitType, u.Eircode, u.Street, u.City, u.County)
	return err
}

// CreateBatch inserts all units in one transaction so a bulk generation
// either lands completely or not at all.
func (r *unitRepo) CreateBatch(ctx context.Context, units []*models.Unit) error {
	if len(units) == 0 {
		return nil
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	for _, u := range units {
		_, err = tx.Exec(ctx, `
            INSERT INTO units (id, client_id, name, unit_type, eircode, street, city, county, created_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
        `, u.ID, u.ClientID, u.Name, u.UnitType, u.Eircode, u.Street, u.City, u.County)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *unitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	row := r.db.QueryRow(ctx, baseSelectUnit()+" WHERE id=$1", id)
	return scanUnit(row)
}

func (r *unitRepo) ListByClientID(ctx context.Context, clientID uuid.UUID) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx, baseSelectUnit()+" WHERE client_id=$1 ORDER BY name", clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *unitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM units WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}
