package company

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amasqis/hrms/pkg/constants"
	"github.com/amasqis/hrms/pkg/serrors"
)

type CreateDTO struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Phone    string  `json:"phone"`
	Location string  `json:"location"`
	Owner    string  `json:"owner"`
	Rating   float64 `json:"rating" validate:"gte=0,lte=5"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Location = strings.TrimSpace(d.Location)
	d.Owner = strings.TrimSpace(d.Owner)
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.StructCtx(ctx, d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *CreateDTO) ToEntity() Company {
	return New(d.Name, d.Email, d.Phone, d.Location, d.Owner, d.Rating)
}

type UpdateDTO struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Phone    string  `json:"phone"`
	Location string  `json:"location"`
	Owner    string  `json:"owner"`
	Rating   float64 `json:"rating" validate:"gte=0,lte=5"`
	Status   string  `json:"status" validate:"required,oneof=active inactive"`
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Location = strings.TrimSpace(d.Location)
	d.Owner = strings.TrimSpace(d.Owner)
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

func (d *UpdateDTO) Apply(existing Company) Company {
	return Hydrate(
		existing.ID(),
		d.Name,
		d.Email,
		d.Phone,
		d.Location,
		d.Owner,
		d.Rating,
		existing.Contacts(),
		Status(d.Status),
		existing.CreatedAt(),
		existing.UpdatedAt(),
	)
}
