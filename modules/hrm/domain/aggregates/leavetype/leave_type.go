package leavetype

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

var ErrNotFound = errors.New("leave type not found")

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Code classifies a leave type for balance accounting. Custom categories
// fall under CodeOther.
type Code string

const (
	CodeAnnual  Code = "annual"
	CodeMedical Code = "medical"
	CodeCasual  Code = "casual"
	CodeOther   Code = "other"
)

// ParseCode maps a raw string onto a known code; anything unrecognized
// counts as other.
func ParseCode(v string) Code {
	switch Code(strings.TrimSpace(v)) {
	case CodeAnnual:
		return CodeAnnual
	case CodeMedical:
		return CodeMedical
	case CodeCasual:
		return CodeCasual
	default:
		return CodeOther
	}
}

// LeaveType is one leave category (annual, sick, unpaid) with its yearly
// allowance in days.
type LeaveType struct {
	id              uuid.UUID
	name            string
	code            Code
	annualAllowance float64
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

func New(name string, code Code, annualAllowance float64) LeaveType {
	return LeaveType{
		name:            strings.TrimSpace(name),
		code:            code,
		annualAllowance: annualAllowance,
		status:          StatusActive,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	code Code,
	annualAllowance float64,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) LeaveType {
	return LeaveType{
		id:              id,
		name:            strings.TrimSpace(name),
		code:            code,
		annualAllowance: annualAllowance,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (t LeaveType) ID() uuid.UUID            { return t.id }
func (t LeaveType) Name() string             { return t.name }
func (t LeaveType) Code() Code               { return t.code }
func (t LeaveType) AnnualAllowance() float64 { return t.annualAllowance }
func (t LeaveType) Status() Status           { return t.status }
func (t LeaveType) CreatedAt() time.Time     { return t.createdAt }
func (t LeaveType) UpdatedAt() time.Time     { return t.updatedAt }

type Repository interface {
	GetAll(ctx context.Context) ([]LeaveType, error)
	GetByID(ctx context.Context, id uuid.UUID) (LeaveType, error)
	Create(ctx context.Context, data LeaveType) (LeaveType, error)
	Update(ctx context.Context, data LeaveType) (LeaveType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateDTO struct {
	Name            string  `json:"name" validate:"required"`
	Code            string  `json:"code" validate:"omitempty,oneof=annual medical casual other"`
	AnnualAllowance float64 `json:"annual_allowance" validate:"gt=0"`
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = strings.TrimSpace(d.Code)
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.StructCtx(ctx, d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *CreateDTO) ToEntity() LeaveType {
	return New(d.Name, ParseCode(d.Code), d.AnnualAllowance)
}

type UpdateDTO struct {
	Name            string  `json:"name" validate:"required"`
	Code            string  `json:"code" validate:"omitempty,oneof=annual medical casual other"`
	AnnualAllowance float64 `json:"annual_allowance" validate:"gt=0"`
	Status          string  `json:"status" validate:"required,oneof=active inactive"`
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = strings.TrimSpace(d.Code)
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

func (d *UpdateDTO) Apply(existing LeaveType) LeaveType {
	code := existing.Code()
	if d.Code != "" {
		code = ParseCode(d.Code)
	}
	return Hydrate(
		existing.ID(),
		d.Name,
		code,
		d.AnnualAllowance,
		Status(d.Status),
		existing.CreatedAt(),
		existing.UpdatedAt(),
	)
}
