package controllers

import (
	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leaverequest"
	"github.com/amasqis/hrms/modules/hrm/presentation/mappers"
	"github.com/amasqis/hrms/pkg/application"
)

// RegisterSocketHandlers relays leave workflow events to every socket
// connection. HR dashboards pick up new filings, employees see the
// verdict on theirs.
func RegisterSocketHandlers(app application.Application) {
	hub := app.Hub()
	bus := app.EventPublisher()

	bus.Subscribe(func(event *leaverequest.CreatedEvent) {
		hub.Broadcast("leaves/leave-created", mappers.LeaveRequestToViewModel(event.Result))
	})
	bus.Subscribe(func(event *leaverequest.UpdatedEvent) {
		hub.Broadcast("leaves/leave-updated", mappers.LeaveRequestToViewModel(event.Result))
	})
	bus.Subscribe(func(event *leaverequest.ApprovedEvent) {
		hub.Broadcast("leaves/leave-approved", mappers.LeaveRequestToViewModel(event.Result))
	})
	bus.Subscribe(func(event *leaverequest.RejectedEvent) {
		hub.Broadcast("leaves/leave-rejected", mappers.LeaveRequestToViewModel(event.Result))
	})
	bus.Subscribe(func(event *leaverequest.CancelledEvent) {
		hub.Broadcast("leaves/leave-cancelled", mappers.LeaveRequestToViewModel(event.Result))
	})
}
