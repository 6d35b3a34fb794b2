package ticket

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/amasqis/hrms/pkg/constants"
	"github.com/amasqis/hrms/pkg/serrors"
)

type CreateDTO struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	SubCategory string   `json:"sub_category"`
	Priority    string   `json:"priority" validate:"omitempty,oneof=Low Medium High Critical"`
	CreatedBy   string   `json:"created_by" validate:"required"`
	Tags        []string `json:"tags"`
	DueDate     string   `json:"due_date"`
}

func (d *CreateDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	d.SubCategory = strings.TrimSpace(d.SubCategory)
	d.Priority = strings.TrimSpace(d.Priority)
	d.CreatedBy = strings.TrimSpace(d.CreatedBy)
	d.DueDate = strings.TrimSpace(d.DueDate)
}

func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.StructCtx(ctx, d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

func (d *CreateDTO) ToEntity() Ticket {
	// Malformed due dates degrade to no due date rather than failing
	// the whole draft.
	due, _ := time.Parse("2006-01-02", d.DueDate)
	entity := New(d.Title, d.Description, d.Category, d.SubCategory, d.CreatedBy, Priority(d.Priority), due)
	if len(d.Tags) > 0 {
		entity = entity.WithTags(d.Tags)
	}
	return entity
}

type UpdateDTO struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	SubCategory string   `json:"sub_category"`
	Priority    string   `json:"priority" validate:"required,oneof=Low Medium High Critical"`
	Tags        []string `json:"tags"`
	DueDate     string   `json:"due_date"`
}

func (d *UpdateDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	d.SubCategory = strings.TrimSpace(d.SubCategory)
	d.Priority = strings.TrimSpace(d.Priority)
	d.DueDate = strings.TrimSpace(d.DueDate)
}

func (d *UpdateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.StructCtx(ctx, d)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}

// Apply rewrites the editable fields. Status, assignee, history and
// comments only move through their dedicated operations.
func (d *UpdateDTO) Apply(existing Ticket) Ticket {
	due, _ := time.Parse("2006-01-02", d.DueDate)
	return Hydrate(
		existing.ID(),
		existing.Number(),
		d.Title,
		d.Description,
		d.Category,
		d.SubCategory,
		Priority(d.Priority),
		existing.Status(),
		existing.AssignedTo(),
		existing.CreatedBy(),
		d.Tags,
		due,
		existing.SLADeadline(),
		existing.History(),
		existing.Comments(),
		existing.ClosedAt(),
		existing.CreatedAt(),
		existing.UpdatedAt(),
	)
}
