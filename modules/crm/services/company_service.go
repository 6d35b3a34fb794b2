package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/amasqis/hrms/modules/crm/domain/aggregates/company"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/eventbus"
)

type CompanyService struct {
	repo      company.Repository
	publisher eventbus.EventBus
}

func NewCompanyService(repo company.Repository, publisher eventbus.EventBus) *CompanyService {
	return &CompanyService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *CompanyService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *CompanyService) GetAll(ctx context.Context) ([]company.Company, error) {
	return s.repo.GetAll(ctx)
}

func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CompanyService) Create(ctx context.Context, data *company.CreateDTO) (company.Company, error) {
	if data == nil {
		return company.Company{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (company.Company, error) {
		created, err := s.repo.Create(txCtx, data.ToEntity())
		if err != nil {
			return company.Company{}, err
		}
		s.publisher.Publish(&company.CreatedEvent{Result: created})
		return created, nil
	})
}

func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, data *company.UpdateDTO) (company.Company, error) {
	if data == nil {
		return company.Company{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (company.Company, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return company.Company{}, err
		}
		updated, err := s.repo.Update(txCtx, data.Apply(existing))
		if err != nil {
			return company.Company{}, err
		}
		s.publisher.Publish(&company.UpdatedEvent{Result: updated})
		return updated, nil
	})
}

func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) (company.Company, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (company.Company, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return company.Company{}, err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return company.Company{}, err
		}
		s.publisher.Publish(&company.DeletedEvent{Result: entity})
		return entity, nil
	})
}
