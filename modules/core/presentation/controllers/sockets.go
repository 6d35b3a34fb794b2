package controllers

import (
	"github.com/amasqis/hrms/modules/core/domain/aggregates/user"
	"github.com/amasqis/hrms/modules/core/presentation/mappers"
	"github.com/amasqis/hrms/pkg/application"
)

// RegisterSocketHandlers relays user admin events to every socket
// connection. The viewmodel never carries the password hash.
func RegisterSocketHandlers(app application.Application) {
	hub := app.Hub()
	bus := app.EventPublisher()

	bus.Subscribe(func(event *user.CreatedEvent) {
		hub.Broadcast("users/user-created", mappers.UserToViewModel(event.Result))
	})
	bus.Subscribe(func(event *user.UpdatedEvent) {
		hub.Broadcast("users/user-updated", mappers.UserToViewModel(event.Result))
	})
	bus.Subscribe(func(event *user.DeletedEvent) {
		hub.Broadcast("users/user-deleted", mappers.UserToViewModel(event.Result))
	})
}
