package job

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/amasqis/hrms/pkg/constants"
	"github.com/amasqis/hrms/pkg/serrors"
)

var ErrNotFound = errors.New("job not found")

// ValidationError flattens field errors into a single error for
// transports without a structured error channel.
func ValidationError(fields map[string]string) error {
	parts := make([]string, 0, len(fields))
	for field, msg := range fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return errors.New(strings.Join(parts, "; "))
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusClosed   Status = "Closed"
)

type EmploymentType string

const (
	TypeFullTime EmploymentType = "Full Time"
	TypePartTime EmploymentType = "Part Time"
	TypeContract EmploymentType = "Contract"
)

type Job struct {
	id          uuid.UUID
	title       string
	category    string
	location    string
	description string
	// salaryRaw keeps the free-form salary text as entered ("40k - 60k",
	// "50000 to 70000"); the numeric bounds are parsed from it.
	salaryRaw string
	salaryMin int
	salaryMax int
	kind      EmploymentType
	status    Status
	postedAt  time.Time
	createdAt time.Time
	updatedAt time.Time
}

func New(title, category, location, description, salaryRaw string, kind EmploymentType) Job {
	smin, smax := ParseSalaryRange(salaryRaw)
	return Job{
		title:       strings.TrimSpace(title),
		category:    strings.TrimSpace(category),
		location:    strings.TrimSpace(location),
		description: strings.TrimSpace(description),
		salaryRaw:   strings.TrimSpace(salaryRaw),
		salaryMin:   smin,
		salaryMax:   smax,
		kind:        kind,
		status:      StatusActive,
		postedAt:    time.Now(),
	}
}

func Hydrate(
	id uuid.UUID,
	title string,
	category string,
	location string,
	description string,
	salaryRaw string,
	salaryMin int,
	salaryMax int,
	kind EmploymentType,
	status Status,
	postedAt time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) Job {
	return Job{
		id:          id,
		title:       strings.TrimSpace(title),
		category:    strings.TrimSpace(category),
		location:    strings.TrimSpace(location),
		description: strings.TrimSpace(description),
		salaryRaw:   strings.TrimSpace(salaryRaw),
		salaryMin:   salaryMin,
		salaryMax:   salaryMax,
		kind:        kind,
		status:      status,
		postedAt:    postedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (j Job) ID() uuid.UUID        { return j.id }
func (j Job) Title() string        { return j.title }
func (j Job) Category() string     { return j.category }
func (j Job) Location() string     { return j.location }
func (j Job) Description() string  { return j.description }
func (j Job) SalaryRaw() string    { return j.salaryRaw }
func (j Job) SalaryMin() int       { return j.salaryMin }
func (j Job) SalaryMax() int       { return j.salaryMax }
func (j Job) Kind() EmploymentType { return j.kind }
func (j Job) Status() Status       { return j.status }
func (j Job) PostedAt() time.Time  { return j.postedAt }
func (j Job) CreatedAt() time.Time { return j.createdAt }
func (j Job) UpdatedAt() time.Time { return j.updatedAt }

type Repository interface {
	GetAll(ctx context.Context) ([]Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	Create(ctx context.Context, data Job) (Job, error)
	Update(ctx context.Context, data Job) (Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatedEvent struct {
	Result Job
}

type UpdatedEvent struct {
	Result Job
}

type DeletedEvent struct {
	Result Job
}

type CreateDTO struct {
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Salary      string `json:"salary"`
	Type        string `json:"type" validate:"omitempty,oneof='Full Time' 'Part Time' Contract"`
}

func (d *CreateDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Category = strings.TrimSpace(d.Category)
	d.Location = strings.TrimSpace(d.Location)
	d.Description = strings.TrimSpace(d.Description)
	d.Salary = strings.TrimSpace(d.Salary)
	d.Type = strings.TrimSpace(d.Type)
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.StructCtx(ctx, d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *CreateDTO) ToEntity() Job {
	kind := EmploymentType(d.Type)
	if kind == "" {
		kind = TypeFullTime
	}
	return New(d.Title, d.Category, d.Location, d.Description, d.Salary, kind)
}

type UpdateDTO struct {
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Salary      string `json:"salary"`
	Type        string `json:"type" validate:"omitempty,oneof='Full Time' 'Part Time' Contract"`
	Status      string `json:"status" validate:"required,oneof=Active Inactive Closed"`
}

func (d *UpdateDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Category = strings.TrimSpace(d.Category)
	d.Location = strings.TrimSpace(d.Location)
	d.Description = strings.TrimSpace(d.Description)
	d.Salary = strings.TrimSpace(d.Salary)
	d.Type = strings.TrimSpace(d.Type)
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

func (d *UpdateDTO) Apply(existing Job) Job {
	smin, smax := ParseSalaryRange(d.Salary)
	kind := EmploymentType(d.Type)
	if kind == "" {
		kind = existing.Kind()
	}
	return Hydrate(
		existing.ID(),
		d.Title,
		d.Category,
		d.Location,
		d.Description,
		d.Salary,
		smin,
		smax,
		kind,
		Status(d.Status),
		existing.PostedAt(),
		existing.CreatedAt(),
		existing.UpdatedAt(),
	)
}
