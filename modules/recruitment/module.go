package recruitment

import (
	"embed"

	"github.com/amasqis/hrms/modules/recruitment/infrastructure/persistence"
	"github.com/amasqis/hrms/modules/recruitment/presentation/controllers"
	"github.com/amasqis/hrms/modules/recruitment/services"
	"github.com/amasqis/hrms/pkg/application"
)

//go:embed infrastructure/persistence/schema/recruitment-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(&migrationFiles)

	app.RegisterServices(
		services.NewJobService(persistence.NewJobRepository(), app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewJobAPIController(app),
	)

	controllers.RegisterSocketHandlers(app)

	return nil
}

func (m *Module) Name() string {
	return "recruitment"
}
