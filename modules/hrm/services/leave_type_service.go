package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leavetype"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/eventbus"
)

type LeaveTypeService struct {
	repo      leavetype.Repository
	publisher eventbus.EventBus
}

func NewLeaveTypeService(repo leavetype.Repository, publisher eventbus.EventBus) *LeaveTypeService {
	return &LeaveTypeService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *LeaveTypeService) GetAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	return s.repo.GetAll(ctx)
}

func (s *LeaveTypeService) GetByID(ctx context.Context, id uuid.UUID) (leavetype.LeaveType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *LeaveTypeService) Create(ctx context.Context, data *leavetype.CreateDTO) (leavetype.LeaveType, error) {
	if data == nil {
		return leavetype.LeaveType{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (leavetype.LeaveType, error) {
		return s.repo.Create(txCtx, data.ToEntity())
	})
}

func (s *LeaveTypeService) Update(ctx context.Context, id uuid.UUID, data *leavetype.UpdateDTO) (leavetype.LeaveType, error) {
	if data == nil {
		return leavetype.LeaveType{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (leavetype.LeaveType, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return leavetype.LeaveType{}, err
		}
		return s.repo.Update(txCtx, data.Apply(existing))
	})
}

func (s *LeaveTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}
