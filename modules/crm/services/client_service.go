package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/amasqis/hrms/modules/crm/domain/aggregates/client"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/eventbus"
)

type ClientService struct {
	repo      client.Repository
	publisher eventbus.EventBus
}

func NewClientService(repo client.Repository, publisher eventbus.EventBus) *ClientService {
	return &ClientService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *ClientService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *ClientService) GetAll(ctx context.Context) ([]client.Client, error) {
	return s.repo.GetAll(ctx)
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (client.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, data *client.CreateDTO) (client.Client, error) {
	if data == nil {
		return client.Client{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (client.Client, error) {
		created, err := s.repo.Create(txCtx, data.ToEntity())
		if err != nil {
			return client.Client{}, err
		}
		s.publisher.Publish(&client.CreatedEvent{Result: created})
		return created, nil
	})
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, data *client.UpdateDTO) (client.Client, error) {
	if data == nil {
		return client.Client{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (client.Client, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return client.Client{}, err
		}
		updated, err := s.repo.Update(txCtx, data.Apply(existing))
		if err != nil {
			return client.Client{}, err
		}
		s.publisher.Publish(&client.UpdatedEvent{Result: updated})
		return updated, nil
	})
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) (client.Client, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (client.Client, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return client.Client{}, err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return client.Client{}, err
		}
		s.publisher.Publish(&client.DeletedEvent{Result: entity})
		return entity, nil
	})
}
