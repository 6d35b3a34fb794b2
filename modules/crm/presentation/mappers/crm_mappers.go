package mappers

import (
	"time"

	"github.com/google/uuid"

	"github.com/amasqis/hrms/modules/crm/domain/aggregates/client"
	"github.com/amasqis/hrms/modules/crm/domain/aggregates/company"
	"github.com/amasqis/hrms/modules/crm/domain/aggregates/deal"
	"github.com/amasqis/hrms/modules/crm/presentation/viewmodels"
	"github.com/amasqis/hrms/pkg/kanban"
	"github.com/amasqis/hrms/pkg/mapping"
)

func CompanyToViewModel(entity company.Company) *viewmodels.Company {
	return &viewmodels.Company{
		ID:        entity.ID().String(),
		Name:      entity.Name(),
		Email:     entity.Email(),
		Phone:     entity.Phone(),
		Location:  entity.Location(),
		Owner:     entity.Owner(),
		Rating:    entity.Rating(),
		Contacts:  entity.Contacts(),
		Status:    string(entity.Status()),
		CreatedAt: entity.CreatedAt().Format(time.RFC3339),
	}
}

func DealToViewModel(entity deal.Deal) *viewmodels.Deal {
	vm := &viewmodels.Deal{
		ID:          entity.ID().String(),
		Name:        entity.Name(),
		Stage:       string(entity.Stage()),
		Value:       entity.Value().Display(),
		Amount:      entity.Amount(),
		Currency:    entity.Currency(),
		Probability: entity.Probability(),
		Owner:       entity.Owner(),
		CreatedAt:   entity.CreatedAt().Format(time.RFC3339),
	}
	if entity.CompanyID() != uuid.Nil {
		vm.CompanyID = entity.CompanyID().String()
	}
	if !entity.ExpectedCloseDate().IsZero() {
		vm.ExpectedCloseDate = entity.ExpectedCloseDate().Format("2006-01-02")
	}
	return vm
}

func BoardToViewModel(board kanban.Board[deal.Deal]) []*viewmodels.DealColumn {
	out := make([]*viewmodels.DealColumn, 0, len(board.Columns))
	for _, col := range board.Columns {
		out = append(out, &viewmodels.DealColumn{
			Stage: col.Stage,
			Count: col.Count(),
			Deals: mapping.MapViewModels(col.Cards, DealToViewModel),
		})
	}
	return out
}

func ClientToViewModel(entity client.Client) *viewmodels.Client {
	return &viewmodels.Client{
		ID:        entity.ID().String(),
		Name:      entity.Name(),
		Email:     entity.Email(),
		Phone:     entity.Phone(),
		Company:   entity.Company(),
		Status:    string(entity.Status()),
		CreatedAt: entity.CreatedAt().Format(time.RFC3339),
	}
}
