package repositories

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

// CompanyFilter narrows Find results. Nil fields are ignored.
type CompanyFilter struct {
	IsContractor      *bool
	IsPropertyManager *bool
	IsClient          *bool
	BusinessTypeID    *uuid.UUID
}

type CompanyRepository interface {
	Create(ctx context.Context, c *models.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	Find(ctx context.Context, filter CompanyFilter) ([]*models.Company, error)
	Update(ctx context.Context, c *models.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyRepo struct {
	db DB
}

func NewCompanyRepository(db DB) CompanyRepository {
	return &companyRepo{db: db}
}

func baseSelectCompany() string {
	return `
        SELECT
            id, name, address, email, phone, website,
            is_contractor, is_client, is_property_manager,
            business_type_id, created_at
        FROM companies
    `
}

func scanCompany(row pgx.Row) (*models.Company, error) {
	var c models.Company
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.Email,
		&c.Phone,
		&c.Website,
		&c.IsContractor,
		&c.IsClient,
		&c.IsPropertyManager,
		&c.BusinessTypeID,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) Create(ctx context.Context, c *models.Company) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO companies (
            id, name, address, email, phone, website,
            is_contractor, is_client, is_property_manager,
            business_type_id, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW())
    `,
		c.ID, c.Name, c.Address, c.Email, c.Phone, c.Website,
		c.IsContractor, c.IsClient, c.IsPropertyManager,
		c.BusinessTypeID,
	)
	return err
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	row := r.db.QueryRow(ctx, baseSelectCompany()+" WHERE id=$1", id)
	return scanCompany(row)
}

func (r *companyRepo) Find(ctx context.Context, filter CompanyFilter) ([]*models.Company, error) {
	var (
		qb   strings.Builder
		args []any
		idx  = 1
	)

	qb.WriteString(baseSelectCompany())
	qb.WriteString(" WHERE 1=1")

	appendBool := func(col string, v *bool) {
		if v == nil {
			return
		}
		qb.WriteString(" AND " + col + " = $")
		qb.WriteString(strconv.Itoa(idx))
		args = append(args, *v)
		idx++
	}
	appendBool("is_contractor", filter.IsContractor)
	appendBool("is_property_manager", filter.IsPropertyManager)
	appendBool("is_client", filter.IsClient)

	if filter.BusinessTypeID != nil {
		qb.WriteString(" AND business_type_id = $")
		qb.WriteString(strconv.Itoa(idx))
		args = append(args, *filter.BusinessTypeID)
		idx++
	}

	qb.WriteString(" ORDER BY name")

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *companyRepo) Update(ctx context.Context, c *models.Company) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE companies
        SET name=$1, address=$2, email=$3, phone=$4, website=$5,
            is_contractor=$6, is_client=$7, is_property_manager=$8,
            business_type_id=$9
        WHERE id=$10
    `,
		c.Name, c.Address, c.Email, c.Phone, c.Website,
		c.IsContractor, c.IsClient, c.IsPropertyManager,
		c.BusinessTypeID, c.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *companyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}
