package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leavetype"
	"github.com/amasqis/hrms/pkg/composables"
)

const (
	selectLeaveTypesQuery = `
		SELECT id, name, code, annual_allowance, status, created_at, updated_at
		FROM leave_types`
	insertLeaveTypeQuery = `
		INSERT INTO leave_types (id, name, code, annual_allowance, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, code, annual_allowance, status, created_at, updated_at`
	updateLeaveTypeQuery = `
		UPDATE leave_types
		SET name = $2, code = $3, annual_allowance = $4, status = $5, updated_at = now()
		WHERE id = $1
		RETURNING id, name, code, annual_allowance, status, created_at, updated_at`
	deleteLeaveTypeQuery = `DELETE FROM leave_types WHERE id = $1`
)

type LeaveTypeRepository struct{}

func NewLeaveTypeRepository() leavetype.Repository {
	return &LeaveTypeRepository{}
}

func (r *LeaveTypeRepository) GetAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectLeaveTypesQuery+` ORDER BY name ASC`)
	if err != nil {
		return nil, gerrors.Wrap(err, "query leave types")
	}
	defer rows.Close()

	out := make([]leavetype.LeaveType, 0)
	for rows.Next() {
		entity, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (r *LeaveTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (leavetype.LeaveType, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return leavetype.LeaveType{}, err
	}
	entity, err := scanLeaveType(tx.QueryRow(ctx, selectLeaveTypesQuery+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leavetype.LeaveType{}, leavetype.ErrNotFound
		}
		return leavetype.LeaveType{}, err
	}
	return entity, nil
}

func (r *LeaveTypeRepository) Create(ctx context.Context, data leavetype.LeaveType) (leavetype.LeaveType, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return leavetype.LeaveType{}, err
	}
	created, err := scanLeaveType(tx.QueryRow(ctx, insertLeaveTypeQuery,
		uuid.New(),
		data.Name(),
		string(data.Code()),
		data.AnnualAllowance(),
		string(data.Status()),
	))
	if err != nil {
		return leavetype.LeaveType{}, gerrors.Wrap(err, "create leave type")
	}
	return created, nil
}

func (r *LeaveTypeRepository) Update(ctx context.Context, data leavetype.LeaveType) (leavetype.LeaveType, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return leavetype.LeaveType{}, err
	}
	updated, err := scanLeaveType(tx.QueryRow(ctx, updateLeaveTypeQuery,
		data.ID(),
		data.Name(),
		string(data.Code()),
		data.AnnualAllowance(),
		string(data.Status()),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leavetype.LeaveType{}, leavetype.ErrNotFound
		}
		return leavetype.LeaveType{}, gerrors.Wrap(err, "update leave type")
	}
	return updated, nil
}

func (r *LeaveTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, deleteLeaveTypeQuery, id)
	if err != nil {
		return gerrors.Wrap(err, "delete leave type")
	}
	if tag.RowsAffected() == 0 {
		return leavetype.ErrNotFound
	}
	return nil
}

func scanLeaveType(row pgx.Row) (leavetype.LeaveType, error) {
	var (
		id              uuid.UUID
		name            string
		code            string
		annualAllowance float64
		status          string
		createdAt       time.Time
		updatedAt       time.Time
	)
	if err := row.Scan(&id, &name, &code, &annualAllowance, &status, &createdAt, &updatedAt); err != nil {
		return leavetype.LeaveType{}, err
	}
	return leavetype.Hydrate(
		id,
		name,
		leavetype.Code(code),
		annualAllowance,
		leavetype.Status(status),
		createdAt,
		updatedAt,
	), nil
}
