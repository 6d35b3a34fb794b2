package user

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amasqis/hrms/pkg/constants"
	"github.com/amasqis/hrms/pkg/serrors"
)

type CreateDTO struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	Role            string `json:"role" validate:"required,oneof=admin hr employee"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (d *CreateDTO) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Role = strings.TrimSpace(d.Role)
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.StructCtx(ctx, d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *CreateDTO) ToEntity() (User, error) {
	entity := New(d.FirstName, d.LastName, d.Email, d.Phone, Role(d.Role))
	if err := entity.SetPassword(d.Password); err != nil {
		return User{}, err
	}
	return entity, nil
}

type UpdateDTO struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Role      string `json:"role" validate:"required,oneof=admin hr employee"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
	Status    string `json:"status" validate:"required,oneof=active inactive"`
}

func (d *UpdateDTO) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Role = strings.TrimSpace(d.Role)
	d.AvatarURL = strings.TrimSpace(d.AvatarURL)
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

type ChangePasswordDTO struct {
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (d *ChangePasswordDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errs := constants.Validate.StructCtx(ctx, d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *UpdateDTO) Apply(existing User) User {
	updated := Hydrate(
		existing.ID(),
		d.FirstName,
		d.LastName,
		d.Email,
		d.Phone,
		Role(d.Role),
		d.AvatarURL,
		Status(d.Status),
		existing.PasswordHash(),
		existing.CreatedAt(),
		existing.UpdatedAt(),
	)
	return updated
}
