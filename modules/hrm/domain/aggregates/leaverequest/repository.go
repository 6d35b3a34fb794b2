package leaverequest

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type FindParams struct {
	EmployeeID uuid.UUID
	TypeID     uuid.UUID
	Status     Status
}

type Repository interface {
	GetAll(ctx context.Context, params *FindParams) ([]LeaveRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (LeaveRequest, error)
	Create(ctx context.Context, data LeaveRequest) (LeaveRequest, error)
	Update(ctx context.Context, data LeaveRequest) (LeaveRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SumApprovedDays totals the approved leave days of one employee for
	// one leave type within the calendar year containing ref.
	SumApprovedDays(ctx context.Context, employeeID, typeID uuid.UUID, ref time.Time) (float64, error)
}

type CreatedEvent struct {
	Result LeaveRequest
}

type UpdatedEvent struct {
	Result LeaveRequest
}

type ApprovedEvent struct {
	Result LeaveRequest
}

type RejectedEvent struct {
	Result LeaveRequest
}

type CancelledEvent struct {
	Result LeaveRequest
}
