package deal

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/amasqis/hrms/pkg/constants"
	"github.com/amasqis/hrms/pkg/serrors"
)

type CreateDTO struct {
	Name              string    `json:"name" validate:"required"`
	CompanyID         uuid.UUID `json:"company_id"`
	Amount            int64     `json:"amount" validate:"gte=0"`
	Currency          string    `json:"currency"`
	Probability       int       `json:"probability" validate:"gte=0,lte=100"`
	ExpectedCloseDate time.Time `json:"expected_close_date"`
	Owner             string    `json:"owner"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
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

func (d *CreateDTO) ToEntity() Deal {
	return New(d.Name, d.CompanyID, d.Amount, d.Currency, d.Probability, d.ExpectedCloseDate, d.Owner)
}

type UpdateDTO struct {
	Name              string    `json:"name" validate:"required"`
	CompanyID         uuid.UUID `json:"company_id"`
	Amount            int64     `json:"amount" validate:"gte=0"`
	Currency          string    `json:"currency"`
	Probability       int       `json:"probability" validate:"gte=0,lte=100"`
	ExpectedCloseDate time.Time `json:"expected_close_date"`
	Owner             string    `json:"owner"`
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	d.Owner = strings.TrimSpace(d.Owner)
}

func (d *UpdateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.StructCtx(ctx, d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *UpdateDTO) Apply(existing Deal) Deal {
	currency := d.Currency
	if currency == "" {
		currency = existing.Currency()
	}
	return Hydrate(
		existing.ID(),
		d.Name,
		d.CompanyID,
		existing.Stage(),
		d.Amount,
		currency,
		d.Probability,
		d.ExpectedCloseDate,
		d.Owner,
		existing.CreatedAt(),
		existing.UpdatedAt(),
	)
}
