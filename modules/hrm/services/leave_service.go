package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leaverequest"
	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leavetype"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/eventbus"
)

// Balance is the per-type leave account of one employee for the current
// year. Used counts approved requests only; pending ones do not reserve
// days.
type Balance struct {
	TypeID    uuid.UUID
	TypeName  string
	Allowance float64
	Used      float64
	Remaining float64
}

type LeaveService struct {
	requests  leaverequest.Repository
	types     leavetype.Repository
	publisher eventbus.EventBus
	now       func() time.Time
}

func NewLeaveService(requests leaverequest.Repository, types leavetype.Repository, publisher eventbus.EventBus) *LeaveService {
	return &LeaveService{
		requests:  requests,
		types:     types,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *LeaveService) GetAll(ctx context.Context, params *leaverequest.FindParams) ([]leaverequest.LeaveRequest, error) {
	return s.requests.GetAll(ctx, params)
}

func (s *LeaveService) GetByID(ctx context.Context, id uuid.UUID) (leaverequest.LeaveRequest, error) {
	return s.requests.GetByID(ctx, id)
}

func (s *LeaveService) Create(ctx context.Context, data *leaverequest.CreateDTO) (leaverequest.LeaveRequest, error) {
	if data == nil {
		return leaverequest.LeaveRequest{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (leaverequest.LeaveRequest, error) {
		if _, err := s.types.GetByID(txCtx, data.TypeID); err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		entity, err := data.ToEntity()
		if err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		created, err := s.requests.Create(txCtx, entity)
		if err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		s.publisher.Publish(&leaverequest.CreatedEvent{Result: created})
		return created, nil
	})
}

// Update edits a pending request. The day count is re-derived from the
// submitted range and session.
func (s *LeaveService) Update(ctx context.Context, id uuid.UUID, data *leaverequest.UpdateDTO) (leaverequest.LeaveRequest, error) {
	if data == nil {
		return leaverequest.LeaveRequest{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (leaverequest.LeaveRequest, error) {
		if _, err := s.types.GetByID(txCtx, data.TypeID); err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		entity, err := s.requests.GetByID(txCtx, id)
		if err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		entity, err = data.Apply(entity)
		if err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		updated, err := s.requests.Update(txCtx, entity)
		if err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		s.publisher.Publish(&leaverequest.UpdatedEvent{Result: updated})
		return updated, nil
	})
}

// Approve grants a pending request once the employee's remaining balance
// covers it.
func (s *LeaveService) Approve(ctx context.Context, id uuid.UUID, note string) (leaverequest.LeaveRequest, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (leaverequest.LeaveRequest, error) {
		entity, err := s.requests.GetByID(txCtx, id)
		if err != nil {
			return leaverequest.LeaveRequest{}, err
		}

		lt, err := s.types.GetByID(txCtx, entity.TypeID())
		if err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		used, err := s.requests.SumApprovedDays(txCtx, entity.EmployeeID(), entity.TypeID(), entity.StartDate())
		if err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		if used+entity.Days() > lt.AnnualAllowance() {
			return leaverequest.LeaveRequest{}, leaverequest.ErrInsufficientBalance
		}

		if err := entity.Approve(note); err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		updated, err := s.requests.Update(txCtx, entity)
		if err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		s.publisher.Publish(&leaverequest.ApprovedEvent{Result: updated})
		return updated, nil
	})
}

func (s *LeaveService) Reject(ctx context.Context, id uuid.UUID, note string) (leaverequest.LeaveRequest, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (leaverequest.LeaveRequest, error) {
		entity, err := s.requests.GetByID(txCtx, id)
		if err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		if err := entity.Reject(note); err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		updated, err := s.requests.Update(txCtx, entity)
		if err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		s.publisher.Publish(&leaverequest.RejectedEvent{Result: updated})
		return updated, nil
	})
}

func (s *LeaveService) Cancel(ctx context.Context, id uuid.UUID) (leaverequest.LeaveRequest, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (leaverequest.LeaveRequest, error) {
		entity, err := s.requests.GetByID(txCtx, id)
		if err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		if err := entity.Cancel(); err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		updated, err := s.requests.Update(txCtx, entity)
		if err != nil {
			return leaverequest.LeaveRequest{}, err
		}
		s.publisher.Publish(&leaverequest.CancelledEvent{Result: updated})
		return updated, nil
	})
}

// Balances reports the employee's account for every active leave type in
// the year containing now.
func (s *LeaveService) Balances(ctx context.Context, employeeID uuid.UUID) ([]Balance, error) {
	types, err := s.types.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ref := s.now()
	out := make([]Balance, 0, len(types))
	for _, lt := range types {
		if lt.Status() != leavetype.StatusActive {
			continue
		}
		used, err := s.requests.SumApprovedDays(ctx, employeeID, lt.ID(), ref)
		if err != nil {
			return nil, err
		}
		out = append(out, Balance{
			TypeID:    lt.ID(),
			TypeName:  lt.Name(),
			Allowance: lt.AnnualAllowance(),
			Used:      used,
			Remaining: lt.AnnualAllowance() - used,
		})
	}
	return out, nil
}
