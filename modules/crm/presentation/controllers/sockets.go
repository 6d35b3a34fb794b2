package controllers

import (
	"github.com/amasqis/hrms/modules/crm/domain/aggregates/client"
	"github.com/amasqis/hrms/modules/crm/domain/aggregates/company"
	"github.com/amasqis/hrms/modules/crm/domain/aggregates/deal"
	"github.com/amasqis/hrms/modules/crm/presentation/mappers"
	"github.com/amasqis/hrms/pkg/application"
)

// RegisterSocketHandlers relays CRM domain events to every socket
// connection so open dashboards refresh without polling. Deal stage
// moves reuse "deals/deal-updated" since the board redraws the same
// way for both.
func RegisterSocketHandlers(app application.Application) {
	hub := app.Hub()
	bus := app.EventPublisher()

	bus.Subscribe(func(event *deal.CreatedEvent) {
		hub.Broadcast("deals/deal-created", mappers.DealToViewModel(event.Result))
	})
	bus.Subscribe(func(event *deal.UpdatedEvent) {
		hub.Broadcast("deals/deal-updated", mappers.DealToViewModel(event.Result))
	})
	bus.Subscribe(func(event *deal.StageMovedEvent) {
		hub.Broadcast("deals/deal-updated", mappers.DealToViewModel(event.Result))
	})
	bus.Subscribe(func(event *deal.DeletedEvent) {
		hub.Broadcast("deals/deal-deleted", mappers.DealToViewModel(event.Result))
	})

	bus.Subscribe(func(event *company.CreatedEvent) {
		hub.Broadcast("companies/company-created", mappers.CompanyToViewModel(event.Result))
	})
	bus.Subscribe(func(event *company.UpdatedEvent) {
		hub.Broadcast("companies/company-updated", mappers.CompanyToViewModel(event.Result))
	})
	bus.Subscribe(func(event *company.DeletedEvent) {
		hub.Broadcast("companies/company-deleted", mappers.CompanyToViewModel(event.Result))
	})

	bus.Subscribe(func(event *client.CreatedEvent) {
		hub.Broadcast("clients/client-created", mappers.ClientToViewModel(event.Result))
	})
	bus.Subscribe(func(event *client.UpdatedEvent) {
		hub.Broadcast("clients/client-updated", mappers.ClientToViewModel(event.Result))
	})
	bus.Subscribe(func(event *client.DeletedEvent) {
		hub.Broadcast("clients/client-deleted", mappers.ClientToViewModel(event.Result))
	})
}
