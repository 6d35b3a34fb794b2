package deal

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("deal not found")

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]Deal, error)
	GetByID(ctx context.Context, id uuid.UUID) (Deal, error)
	Create(ctx context.Context, data Deal) (Deal, error)
	Update(ctx context.Context, data Deal) (Deal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatedEvent struct {
	Result Deal
}

type UpdatedEvent struct {
	Result Deal
}

type StageMovedEvent struct {
	From   Stage
	Result Deal
}

type DeletedEvent struct {
	Result Deal
}
