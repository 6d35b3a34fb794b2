package mappers

import (
	"time"

	"github.com/amasqis/hrms/modules/tickets/domain/aggregates/ticket"
	"github.com/amasqis/hrms/modules/tickets/presentation/viewmodels"
)

func TicketToViewModel(entity ticket.Ticket) *viewmodels.Ticket {
	history := make([]viewmodels.StatusChange, 0, len(entity.History()))
	for _, change := range entity.History() {
		history = append(history, viewmodels.StatusChange{
			From:      string(change.From),
			To:        string(change.To),
			ChangedBy: change.ChangedBy,
			ChangedAt: change.ChangedAt.Format(time.RFC3339),
			Note:      change.Note,
		})
	}
	comments := make([]viewmodels.Comment, 0, len(entity.Comments()))
	for _, comment := range entity.Comments() {
		comments = append(comments, viewmodels.Comment{
			Text:       comment.Text,
			Author:     comment.Author,
			CreatedAt:  comment.CreatedAt.Format(time.RFC3339),
			IsInternal: comment.IsInternal,
		})
	}

	vm := &viewmodels.Ticket{
		ID:          entity.ID().String(),
		Number:      entity.Number(),
		Title:       entity.Title(),
		Description: entity.Description(),
		Category:    entity.Category(),
		SubCategory: entity.SubCategory(),
		Priority:    string(entity.Priority()),
		Status:      string(entity.Status()),
		AssignedTo:  entity.AssignedTo(),
		CreatedBy:   entity.CreatedBy(),
		Tags:        entity.Tags(),
		SLADeadline: entity.SLADeadline().Format(time.RFC3339),
		History:     history,
		Comments:    comments,
		CreatedAt:   entity.CreatedAt().Format(time.RFC3339),
	}
	if !entity.DueDate().IsZero() {
		vm.DueDate = entity.DueDate().Format("2006-01-02")
	}
	if !entity.ClosedAt().IsZero() {
		vm.ClosedAt = entity.ClosedAt().Format(time.RFC3339)
	}
	return vm
}
