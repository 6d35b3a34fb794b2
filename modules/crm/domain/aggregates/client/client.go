package client

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/amasqis/hrms/pkg/constants"
	"github.com/amasqis/hrms/pkg/serrors"
)

var ErrNotFound = errors.New("client not found")

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Client struct {
	id        uuid.UUID
	name      string
	email     string
	phone     string
	company   string
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func New(name, email, phone, company string) Client {
	return Client{
		name:    strings.TrimSpace(name),
		email:   strings.ToLower(strings.TrimSpace(email)),
		phone:   strings.TrimSpace(phone),
		company: strings.TrimSpace(company),
		status:  StatusActive,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	email string,
	phone string,
	company string,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) Client {
	return Client{
		id:        id,
		name:      strings.TrimSpace(name),
		email:     strings.ToLower(strings.TrimSpace(email)),
		phone:     strings.TrimSpace(phone),
		company:   strings.TrimSpace(company),
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c Client) ID() uuid.UUID        { return c.id }
func (c Client) Name() string         { return c.name }
func (c Client) Email() string        { return c.email }
func (c Client) Phone() string        { return c.phone }
func (c Client) Company() string      { return c.company }
func (c Client) Status() Status       { return c.status }
func (c Client) CreatedAt() time.Time { return c.createdAt }
func (c Client) UpdatedAt() time.Time { return c.updatedAt }

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (Client, error)
	Create(ctx context.Context, data Client) (Client, error)
	Update(ctx context.Context, data Client) (Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatedEvent struct {
	Result Client
}

type UpdatedEvent struct {
	Result Client
}

type DeletedEvent struct {
	Result Client
}

type CreateDTO struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Company = strings.TrimSpace(d.Company)
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.StructCtx(ctx, d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *CreateDTO) ToEntity() Client {
	return New(d.Name, d.Email, d.Phone, d.Company)
}

type UpdateDTO struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Status  string `json:"status" validate:"required,oneof=active inactive"`
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Company = strings.TrimSpace(d.Company)
	d.Status = strings.TrimSpace(d.Status)
}

func (d *UpdateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.StructCtx(ctx, d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *UpdateDTO) Apply(existing Client) Client {
	return Hydrate(
		existing.ID(),
		d.Name,
		d.Email,
		d.Phone,
		d.Company,
		Status(d.Status),
		existing.CreatedAt(),
		existing.UpdatedAt(),
	)
}
