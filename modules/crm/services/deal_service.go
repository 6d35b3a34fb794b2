package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/amasqis/hrms/modules/crm/domain/aggregates/deal"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/eventbus"
	"github.com/amasqis/hrms/pkg/kanban"
)

type DealService struct {
	repo      deal.Repository
	publisher eventbus.EventBus
}

func NewDealService(repo deal.Repository, publisher eventbus.EventBus) *DealService {
	return &DealService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *DealService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *DealService) GetAll(ctx context.Context) ([]deal.Deal, error) {
	return s.repo.GetAll(ctx)
}

func (s *DealService) GetByID(ctx context.Context, id uuid.UUID) (deal.Deal, error) {
	return s.repo.GetByID(ctx, id)
}

// Board groups every deal into pipeline columns. Deals carrying a stale
// stage value land in the first column.
func (s *DealService) Board(ctx context.Context) (kanban.Board[deal.Deal], error) {
	deals, err := s.repo.GetAll(ctx)
	if err != nil {
		return kanban.Board[deal.Deal]{}, err
	}
	stages := make([]string, 0, len(deal.Stages()))
	for _, stage := range deal.Stages() {
		stages = append(stages, string(stage))
	}
	board := kanban.GroupByStage(deals, stages, func(d deal.Deal) string {
		return string(d.Stage())
	}, string(deal.StageNew))
	return board, nil
}

func (s *DealService) Create(ctx context.Context, data *deal.CreateDTO) (deal.Deal, error) {
	if data == nil {
		return deal.Deal{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (deal.Deal, error) {
		created, err := s.repo.Create(txCtx, data.ToEntity())
		if err != nil {
			return deal.Deal{}, err
		}
		s.publisher.Publish(&deal.CreatedEvent{Result: created})
		return created, nil
	})
}

func (s *DealService) Update(ctx context.Context, id uuid.UUID, data *deal.UpdateDTO) (deal.Deal, error) {
	if data == nil {
		return deal.Deal{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (deal.Deal, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return deal.Deal{}, err
		}
		updated, err := s.repo.Update(txCtx, data.Apply(existing))
		if err != nil {
			return deal.Deal{}, err
		}
		s.publisher.Publish(&deal.UpdatedEvent{Result: updated})
		return updated, nil
	})
}

// MoveStage drags the deal to another pipeline column.
func (s *DealService) MoveStage(ctx context.Context, id uuid.UUID, target deal.Stage) (deal.Deal, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (deal.Deal, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return deal.Deal{}, err
		}
		from := entity.Stage()
		if err := entity.MoveStage(target); err != nil {
			return deal.Deal{}, err
		}
		updated, err := s.repo.Update(txCtx, entity)
		if err != nil {
			return deal.Deal{}, err
		}
		s.publisher.Publish(&deal.StageMovedEvent{From: from, Result: updated})
		return updated, nil
	})
}

func (s *DealService) Delete(ctx context.Context, id uuid.UUID) (deal.Deal, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (deal.Deal, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return deal.Deal{}, err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return deal.Deal{}, err
		}
		s.publisher.Publish(&deal.DeletedEvent{Result: entity})
		return entity, nil
	})
}
