package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
)

type UnitDraftRepository interface {
	Create(ctx context.Context, d *models.UnitDraft) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.UnitDraft, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes drafts whose expiry is before the cutoff and
	// returns how many were swept.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type unitDraftRepo struct {
	db DB
}

func NewUnitDraftRepository(db DB) UnitDraftRepository {
	return &unitDraftRepo{db: db}
}

func (r *unitDraftRepo) Create(ctx context.Context, d *models.UnitDraft) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO unit_drafts (
            id, client_id, default_eircode,
            num_apartments, num_duplexes, num_houses, num_commercial_units,
            created_by, created_at, expires_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),$9)
    `,
		d.ID, d.ClientID, d.DefaultEircode,
		d.NumApartments, d.NumDuplexes, d.NumHouses, d.NumCommercial,
		d.CreatedBy, d.ExpiresAt,
	)
	return err
}

func (r *unitDraftRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.UnitDraft, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, client_id, default_eircode,
               num_apartments, num_duplexes, num_houses, num_commercial_units,
               created_by, created_at, expires_at
        FROM unit_drafts WHERE id=$1
    `, id)

	var d models.UnitDraft
	err := row.Scan(
		&d.ID, &d.ClientID, &d.DefaultEircode,
		&d.NumApartments, &d.NumDuplexes, &d.NumHouses, &d.NumCommercial,
		&d.CreatedBy, &d.CreatedAt, &d.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *unitDraftRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM unit_drafts WHERE id=$1`, id)
	return err
}

func (r *unitDraftRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM unit_drafts WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
