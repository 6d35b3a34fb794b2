package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/amasqis/hrms/modules/core/domain/aggregates/user"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/eventbus"
)

type UserService struct {
	repo      user.Repository
	publisher eventbus.EventBus
}

func NewUserService(repo user.Repository, publisher eventbus.EventBus) *UserService {
	return &UserService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *UserService) GetAll(ctx context.Context) ([]user.User, error) {
	return s.repo.GetAll(ctx)
}

func (s *UserService) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) Create(ctx context.Context, data *user.CreateDTO) (user.User, error) {
	if data == nil {
		return user.User{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (user.User, error) {
		entity, err := data.ToEntity()
		if err != nil {
			return user.User{}, err
		}
		created, err := s.repo.Create(txCtx, entity)
		if err != nil {
			return user.User{}, err
		}
		s.publisher.Publish(&user.CreatedEvent{Result: created})
		return created, nil
	})
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, data *user.UpdateDTO) (user.User, error) {
	if data == nil {
		return user.User{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (user.User, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return user.User{}, err
		}
		updated, err := s.repo.Update(txCtx, data.Apply(existing))
		if err != nil {
			return user.User{}, err
		}
		s.publisher.Publish(&user.UpdatedEvent{Result: updated})
		return updated, nil
	})
}

func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, data *user.ChangePasswordDTO) (user.User, error) {
	if data == nil {
		return user.User{}, errors.New("missing dto")
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (user.User, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return user.User{}, err
		}
		if err := existing.SetPassword(data.Password); err != nil {
			return user.User{}, err
		}
		updated, err := s.repo.UpdatePassword(txCtx, id, existing.PasswordHash())
		if err != nil {
			return user.User{}, err
		}
		s.publisher.Publish(&user.UpdatedEvent{Result: updated})
		return updated, nil
	})
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (user.User, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (user.User, error) {
		entity, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return user.User{}, err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return user.User{}, err
		}
		s.publisher.Publish(&user.DeletedEvent{Result: entity})
		return entity, nil
	})
}
