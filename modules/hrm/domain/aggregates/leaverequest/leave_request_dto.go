package leaverequest

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/amasqis/hrms/pkg/constants"
	"github.com/amasqis/hrms/pkg/dateutil"
	"github.com/amasqis/hrms/pkg/serrors"
)

type CreateDTO struct {
	EmployeeID         uuid.UUID `json:"employee_id" validate:"required"`
	TypeID             uuid.UUID `json:"type_id" validate:"required"`
	ReportingManagerID uuid.UUID `json:"reporting_manager_id"`
	StartDate          time.Time `json:"start_date" validate:"required"`
	EndDate            time.Time `json:"end_date" validate:"required"`
	Session            string    `json:"session"`
	Reason             string    `json:"reason"`
}

func (d *CreateDTO) Normalize() {
	d.Session = strings.TrimSpace(d.Session)
	d.Reason = strings.TrimSpace(d.Reason)
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.StructCtx(ctx, d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *CreateDTO) ToEntity() (LeaveRequest, error) {
	return New(
		d.EmployeeID,
		d.TypeID,
		d.ReportingManagerID,
		d.StartDate,
		d.EndDate,
		dateutil.ParseSession(d.Session),
		d.Reason,
	)
}

type UpdateDTO struct {
	TypeID    uuid.UUID `json:"type_id" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Session   string    `json:"session"`
	Reason    string    `json:"reason"`
}

func (d *UpdateDTO) Normalize() {
	d.Session = strings.TrimSpace(d.Session)
	d.Reason = strings.TrimSpace(d.Reason)
}

func (d *UpdateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.StructCtx(ctx, d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *UpdateDTO) Apply(existing LeaveRequest) (LeaveRequest, error) {
	err := existing.Reschedule(
		d.TypeID,
		d.StartDate,
		d.EndDate,
		dateutil.ParseSession(d.Session),
		d.Reason,
	)
	return existing, err
}
