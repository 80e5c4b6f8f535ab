package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

// WorkOrderFilter narrows List results. Nil fields are ignored.
type WorkOrderFilter struct {
	CreatedBy *uuid.UUID
	// CompanyID matches orders where the company occupies any of the three
	// contractor slots (preferred, second, assigned).
	CompanyID *uuid.UUID
	Statuses  []models.OrderStatusType
	Priority  *models.PriorityType
	ClientID  *uuid.UUID
}

type WorkOrderRepository interface {
	Create(ctx context.Context, wo *models.WorkOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.WorkOrder, error)
	List(ctx context.Context, filter WorkOrderFilter) ([]*models.WorkOrder, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Atomic lifecycle transitions. Each runs in a transaction that
	// re-reads the row FOR UPDATE, checks row_version against
	// expectedVersion, re-validates the status guard, and writes the new
	// state with row_version+1. Losing a version race returns
	// utils.ErrRowVersionConflict; an illegal source status returns
	// utils.ErrWrongStatus.
	AcceptAtomic(ctx context.Context, orderID, companyID uuid.UUID, expectedVersion int64) (*models.WorkOrder, error)
	RejectAtomic(ctx context.Context, orderID uuid.UUID, expectedVersion int64, newStatus models.OrderStatusType, newAssigned *uuid.UUID, rejectedByPreferred, rejectedBySecond bool) (*models.WorkOrder, error)
	CompleteAtomic(ctx context.Context, orderID, companyID uuid.UUID, expectedVersion int64, notes, attachmentKey string) (*models.WorkOrder, error)

	// UpdateIfVersion writes administrative field edits guarded by the
	// row version; used through the generic WithRetry loop.
	UpdateIfVersion(ctx context.Context, wo *models.WorkOrder, expectedVersion int64) (pgconn.CommandTag, error)
}

type workOrderRepo struct {
	db DB
}

func NewWorkOrderRepository(db DB) WorkOrderRepository {
	return &workOrderRepo{db: db}
}

func baseSelectWorkOrder() string {
	return `
        SELECT
            id, title, description, priority, status,
            client_id, unit_id, common_area, business_type_id,
            created_by,
            preferred_contractor_id, second_contractor_id, assigned_contractor_id,
            rejected_by_preferred, rejected_by_second,
            accepted_at, completed_at, completion_notes, attachment_key,
            due_date, row_version, created_at, updated_at
        FROM work_orders
    `
}

func scanWorkOrder(row pgx.Row) (*models.WorkOrder, error) {
	var wo models.WorkOrder
	err := row.Scan(
		&wo.ID,
		&wo.Title,
		&wo.Description,
		&wo.Priority,
		&wo.Status,
		&wo.ClientID,
		&wo.UnitID,
		&wo.CommonArea,
		&wo.BusinessTypeID,
		&wo.CreatedBy,
		&wo.PreferredContractorID,
		&wo.SecondContractorID,
		&wo.AssignedContractorID,
		&wo.RejectedByPreferred,
		&wo.RejectedBySecond,
		&wo.AcceptedAt,
		&wo.CompletedAt,
		&wo.CompletionNotes,
		&wo.AttachmentKey,
		&wo.DueDate,
		&wo.RowVersion,
		&wo.CreatedAt,
		&wo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &wo, nil
}

func (r *workOrderRepo) Create(ctx context.Context, wo *models.WorkOrder) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO work_orders (
            id, title, description, priority, status,
            client_id, unit_id, common_area, business_type_id,
            created_by,
            preferred_contractor_id, second_contractor_id, assigned_contractor_id,
            rejected_by_preferred, rejected_by_second,
            due_date, created_at, updated_at, row_version
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,FALSE,FALSE,$14,NOW(),NOW(),1
        )
    `,
		wo.ID,
		wo.Title,
		wo.Description,
		wo.Priority,
		wo.Status,
		wo.ClientID,
		wo.UnitID,
		wo.CommonArea,
		wo.BusinessTypeID,
		wo.CreatedBy,
		wo.PreferredContractorID,
		wo.SecondContractorID,
		wo.AssignedContractorID,
		wo.DueDate,
	)
	return err
}

func (r *workOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.WorkOrder, error) {
	row := r.db.QueryRow(ctx, baseSelectWorkOrder()+" WHERE id=$1", id)
	return scanWorkOrder(row)
}

func (r *workOrderRepo) List(ctx context.Context, filter WorkOrderFilter) ([]*models.WorkOrder, error) {
	var (
		qb   strings.Builder
		args []any
		idx  = 1
	)

	qb.WriteString(baseSelectWorkOrder())
	qb.WriteString(" WHERE 1=1")

	if filter.CreatedBy != nil {
		qb.WriteString(" AND created_by = $")
		qb.WriteString(strconv.Itoa(idx))
		args = append(args, *filter.CreatedBy)
		idx++
	}

	if filter.CompanyID != nil {
		qb.WriteString(fmt.Sprintf(
			" AND (preferred_contractor_id = $%d OR second_contractor_id = $%d OR assigned_contractor_id = $%d)",
			idx, idx, idx,
		))
		args = append(args, *filter.CompanyID)
		idx++
	}

	if len(filter.Statuses) > 0 {
		var stStrings []string
		for _, st := range filter.Statuses {
			stStrings = append(stStrings, string(st))
		}
		qb.WriteString(" AND status = ANY($")
		qb.WriteString(strconv.Itoa(idx))
		qb.WriteString(")")
		args = append(args, stStrings)
		idx++
	}

	if filter.Priority != nil {
		qb.WriteString(" AND priority = $")
		qb.WriteString(strconv.Itoa(idx))
		args = append(args, string(*filter.Priority))
		idx++
	}

	if filter.ClientID != nil {
		qb.WriteString(" AND client_id = $")
		qb.WriteString(strconv.Itoa(idx))
		args = append(args, *filter.ClientID)
		idx++
	}

	qb.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, wo)
	}
	return out, rows.Err()
}

func (r *workOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM work_orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *workOrderRepo) AcceptAtomic(
	ctx context.Context,
	orderID, companyID uuid.UUID,
	expectedVersion int64,
) (*models.WorkOrder, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, baseSelectWorkOrder()+" WHERE id=$1 FOR UPDATE", orderID)
	wo, err := scanWorkOrder(row)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		err = pgx.ErrNoRows
		return nil, err
	}
	if wo.RowVersion != expectedVersion {
		err = utils.ErrRowVersionConflict
		return wo, err
	}
	if wo.Status != models.OrderStatusNew && wo.Status != models.OrderStatusAssigned {
		err = fmt.Errorf("accept from %s: %w", wo.Status, utils.ErrWrongStatus)
		return wo, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE work_orders
        SET status='ACCEPTED',
            assigned_contractor_id=$1,
            accepted_at=NOW(),
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$2
    `, companyID, orderID)
	if err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectWorkOrder()+" WHERE id=$1", orderID)
	return scanWorkOrder(newRow)
}

func (r *workOrderRepo) RejectAtomic(
	ctx context.Context,
	orderID uuid.UUID,
	expectedVersion int64,
	newStatus models.OrderStatusType,
	newAssigned *uuid.UUID,
	rejectedByPreferred, rejectedBySecond bool,
) (*models.WorkOrder, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, baseSelectWorkOrder()+" WHERE id=$1 FOR UPDATE", orderID)
	wo, err := scanWorkOrder(row)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		err = pgx.ErrNoRows
		return nil, err
	}
	if wo.RowVersion != expectedVersion {
		err = utils.ErrRowVersionConflict
		return wo, err
	}
	switch wo.Status {
	case models.OrderStatusNew, models.OrderStatusAssigned, models.OrderStatusAccepted:
	default:
		err = fmt.Errorf("reject from %s: %w", wo.Status, utils.ErrWrongStatus)
		return wo, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE work_orders
        SET status=$1,
            assigned_contractor_id=$2,
            rejected_by_preferred=rejected_by_preferred OR $3,
            rejected_by_second=rejected_by_second OR $4,
            accepted_at=NULL,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$5
    `, newStatus, newAssigned, rejectedByPreferred, rejectedBySecond, orderID)
	if err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectWorkOrder()+" WHERE id=$1", orderID)
	return scanWorkOrder(newRow)
}

func (r *workOrderRepo) CompleteAtomic(
	ctx context.Context,
	orderID, companyID uuid.UUID,
	expectedVersion int64,
	notes, attachmentKey string,
) (*models.WorkOrder, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, baseSelectWorkOrder()+" WHERE id=$1 FOR UPDATE", orderID)
	wo, err := scanWorkOrder(row)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		err = pgx.ErrNoRows
		return nil, err
	}
	if wo.RowVersion != expectedVersion {
		err = utils.ErrRowVersionConflict
		return wo, err
	}
	if wo.Status != models.OrderStatusAccepted {
		err = fmt.Errorf("complete from %s: %w", wo.Status, utils.ErrWrongStatus)
		return wo, err
	}
	if wo.AssignedContractorID == nil || *wo.AssignedContractorID != companyID {
		err = utils.ErrNotAssignedContractor
		return wo, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE work_orders
        SET status='COMPLETED',
            completed_at=NOW(),
            completion_notes=$1,
            attachment_key=$2,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$3
    `, notes, attachmentKey, orderID)
	if err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectWorkOrder()+" WHERE id=$1", orderID)
	return scanWorkOrder(newRow)
}

func (r *workOrderRepo) UpdateIfVersion(
	ctx context.Context,
	wo *models.WorkOrder,
	expectedVersion int64,
) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE work_orders
        SET title=$1, description=$2, priority=$3, status=$4,
            client_id=$5, unit_id=$6, common_area=$7, business_type_id=$8,
            preferred_contractor_id=$9, second_contractor_id=$10, assigned_contractor_id=$11,
            rejected_by_preferred=$12, rejected_by_second=$13,
            due_date=$14,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$15 AND row_version=$16
    `,
		wo.Title,
		wo.Description,
		wo.Priority,
		wo.Status,
		wo.ClientID,
		wo.UnitID,
		wo.CommonArea,
		wo.BusinessTypeID,
		wo.PreferredContractorID,
		wo.SecondContractorID,
		wo.AssignedContractorID,
		wo.RejectedByPreferred,
		wo.RejectedBySecond,
		wo.DueDate,
		wo.ID,
		expectedVersion,
	)
}
