package core

import (
	"embed"

	"github.com/amasqis/hrms/modules/core/infrastructure/persistence"
	"github.com/amasqis/hrms/modules/core/presentation/controllers"
	"github.com/amasqis/hrms/modules/core/services"
	"github.com/amasqis/hrms/pkg/application"
)

//go:embed infrastructure/persistence/schema/core-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(&migrationFiles)

	app.RegisterServices(
		services.NewUserService(persistence.NewUserRepository(), app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewUserAPIController(app),
	)

	controllers.RegisterSocketHandlers(app)

	return nil
}

func (m *Module) Name() string {
	return "core"
}
