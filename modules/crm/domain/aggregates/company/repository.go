package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("company not found")

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (Company, error)
	Create(ctx context.Context, data Company) (Company, error)
	Update(ctx context.Context, data Company) (Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatedEvent struct {
	Result Company
}

type UpdatedEvent struct {
	Result Company
}

type DeletedEvent struct {
	Result Company
}
