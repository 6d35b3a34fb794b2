package persistence

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leaverequest"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/dateutil"
)

const (
	selectLeaveRequestsQuery = `
		SELECT id, employee_id, type_id, reporting_manager_id, start_date, end_date, session, days, reason, status, manager_status, reviewer_note, created_at, updated_at
		FROM leave_requests`
	insertLeaveRequestQuery = `
		INSERT INTO leave_requests (id, employee_id, type_id, reporting_manager_id, start_date, end_date, session, days, reason, status, manager_status, reviewer_note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, employee_id, type_id, reporting_manager_id, start_date, end_date, session, days, reason, status, manager_status, reviewer_note, created_at, updated_at`
	updateLeaveRequestQuery = `
		UPDATE leave_requests
		SET type_id = $2, start_date = $3, end_date = $4, session = $5, days = $6, reason = $7, status = $8, manager_status = $9, reviewer_note = $10, updated_at = now()
		WHERE id = $1
		RETURNING id, employee_id, type_id, reporting_manager_id, start_date, end_date, session, days, reason, status, manager_status, reviewer_note, created_at, updated_at`
	deleteLeaveRequestQuery = `DELETE FROM leave_requests WHERE id = $1`
	sumApprovedDaysQuery    = `
		SELECT COALESCE(SUM(days), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND type_id = $2
		  AND status = 'approved'
		  AND start_date >= $3
		  AND start_date < $4`
)

type LeaveRequestRepository struct{}

func NewLeaveRequestRepository() leaverequest.Repository {
	return &LeaveRequestRepository{}
}

func (r *LeaveRequestRepository) GetAll(ctx context.Context, params *leaverequest.FindParams) ([]leaverequest.LeaveRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := selectLeaveRequestsQuery
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if params != nil {
		if params.EmployeeID != uuid.Nil {
			args = append(args, params.EmployeeID)
			where = append(where, "employee_id = $"+strconv.Itoa(len(args)))
		}
		if params.TypeID != uuid.Nil {
			args = append(args, params.TypeID)
			where = append(where, "type_id = $"+strconv.Itoa(len(args)))
		}
		if params.Status != "" {
			args = append(args, string(params.Status))
			where = append(where, "status = $"+strconv.Itoa(len(args)))
		}
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "query leave requests")
	}
	defer rows.Close()

	out := make([]leaverequest.LeaveRequest, 0)
	for rows.Next() {
		entity, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

func (r *LeaveRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (leaverequest.LeaveRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return leaverequest.LeaveRequest{}, err
	}
	entity, err := scanLeaveRequest(tx.QueryRow(ctx, selectLeaveRequestsQuery+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leaverequest.LeaveRequest{}, leaverequest.ErrNotFound
		}
		return leaverequest.LeaveRequest{}, err
	}
	return entity, nil
}

func (r *LeaveRequestRepository) Create(ctx context.Context, data leaverequest.LeaveRequest) (leaverequest.LeaveRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return leaverequest.LeaveRequest{}, err
	}
	created, err := scanLeaveRequest(tx.QueryRow(ctx, insertLeaveRequestQuery,
		uuid.New(),
		data.EmployeeID(),
		data.TypeID(),
		nullableUUID(data.ReportingManagerID()),
		data.StartDate(),
		data.EndDate(),
		string(data.Session()),
		data.Days(),
		data.Reason(),
		string(data.Status()),
		string(data.ManagerStatus()),
		data.ReviewerNote(),
	))
	if err != nil {
		return leaverequest.LeaveRequest{}, gerrors.Wrap(err, "create leave request")
	}
	return created, nil
}

func (r *LeaveRequestRepository) Update(ctx context.Context, data leaverequest.LeaveRequest) (leaverequest.LeaveRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return leaverequest.LeaveRequest{}, err
	}
	updated, err := scanLeaveRequest(tx.QueryRow(ctx, updateLeaveRequestQuery,
		data.ID(),
		data.TypeID(),
		data.StartDate(),
		data.EndDate(),
		string(data.Session()),
		data.Days(),
		data.Reason(),
		string(data.Status()),
		string(data.ManagerStatus()),
		data.ReviewerNote(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leaverequest.LeaveRequest{}, leaverequest.ErrNotFound
		}
		return leaverequest.LeaveRequest{}, gerrors.Wrap(err, "update leave request")
	}
	return updated, nil
}

func (r *LeaveRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, deleteLeaveRequestQuery, id)
	if err != nil {
		return gerrors.Wrap(err, "delete leave request")
	}
	if tag.RowsAffected() == 0 {
		return leaverequest.ErrNotFound
	}
	return nil
}

func (r *LeaveRequestRepository) SumApprovedDays(ctx context.Context, employeeID, typeID uuid.UUID, ref time.Time) (float64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	yearStart := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
	yearEnd := yearStart.AddDate(1, 0, 0)

	var sum float64
	if err := tx.QueryRow(ctx, sumApprovedDaysQuery, employeeID, typeID, yearStart, yearEnd).Scan(&sum); err != nil {
		return 0, gerrors.Wrap(err, "sum approved leave days")
	}
	return sum, nil
}

func nullableUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}

func scanLeaveRequest(row pgx.Row) (leaverequest.LeaveRequest, error) {
	var (
		id            uuid.UUID
		employeeID    uuid.UUID
		typeID        uuid.UUID
		managerID     *uuid.UUID
		startDate     time.Time
		endDate       time.Time
		session       string
		days          float64
		reason        string
		status        string
		managerStatus string
		reviewerNote  string
		createdAt     time.Time
		updatedAt     time.Time
	)
	if err := row.Scan(&id, &employeeID, &typeID, &managerID, &startDate, &endDate, &session, &days, &reason, &status, &managerStatus, &reviewerNote, &createdAt, &updatedAt); err != nil {
		return leaverequest.LeaveRequest{}, err
	}
	reportingManagerID := uuid.Nil
	if managerID != nil {
		reportingManagerID = *managerID
	}
	return leaverequest.Hydrate(
		id,
		employeeID,
		typeID,
		reportingManagerID,
		startDate,
		endDate,
		dateutil.Session(session),
		days,
		reason,
		leaverequest.Status(status),
		leaverequest.Status(managerStatus),
		reviewerNote,
		createdAt,
		updatedAt,
	), nil
}
