package tickets

import (
	"embed"

	"github.com/amasqis/hrms/modules/tickets/infrastructure/persistence"
	"github.com/amasqis/hrms/modules/tickets/presentation/controllers"
	"github.com/amasqis/hrms/modules/tickets/services"
	"github.com/amasqis/hrms/pkg/application"
)

//go:embed infrastructure/persistence/schema/tickets-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(&migrationFiles)

	app.RegisterServices(
		services.NewTicketService(persistence.NewTicketRepository(), app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewTicketAPIController(app),
	)

	controllers.RegisterSocketHandlers(app)

	return nil
}

func (m *Module) Name() string {
	return "tickets"
}
