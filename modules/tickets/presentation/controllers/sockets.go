package controllers

import (
	"github.com/amasqis/hrms/modules/tickets/domain/aggregates/ticket"
	"github.com/amasqis/hrms/modules/tickets/presentation/mappers"
	"github.com/amasqis/hrms/pkg/application"
)

// RegisterSocketHandlers relays ticket events to every socket
// connection. Status moves and comments reuse "tickets/ticket-updated"
// since the list redraws the full row either way.
func RegisterSocketHandlers(app application.Application) {
	hub := app.Hub()
	bus := app.EventPublisher()

	bus.Subscribe(func(event *ticket.CreatedEvent) {
		hub.Broadcast("tickets/ticket-created", mappers.TicketToViewModel(event.Result))
	})
	bus.Subscribe(func(event *ticket.UpdatedEvent) {
		hub.Broadcast("tickets/ticket-updated", mappers.TicketToViewModel(event.Result))
	})
	bus.Subscribe(func(event *ticket.StatusChangedEvent) {
		hub.Broadcast("tickets/ticket-updated", mappers.TicketToViewModel(event.Result))
	})
	bus.Subscribe(func(event *ticket.CommentAddedEvent) {
		hub.Broadcast("tickets/ticket-updated", mappers.TicketToViewModel(event.Result))
	})
	bus.Subscribe(func(event *ticket.DeletedEvent) {
		hub.Broadcast("tickets/ticket-deleted", mappers.TicketToViewModel(event.Result))
	})
}
