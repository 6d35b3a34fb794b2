package crm

import (
	"embed"

	"github.com/amasqis/hrms/modules/crm/infrastructure/persistence"
	"github.com/amasqis/hrms/modules/crm/presentation/controllers"
	"github.com/amasqis/hrms/modules/crm/services"
	"github.com/amasqis/hrms/pkg/application"
)

//go:embed infrastructure/persistence/schema/crm-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(&migrationFiles)

	app.RegisterServices(
		services.NewCompanyService(persistence.NewCompanyRepository(), app.EventPublisher()),
		services.NewDealService(persistence.NewDealRepository(), app.EventPublisher()),
		services.NewClientService(persistence.NewClientRepository(), app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewCompanyAPIController(app),
		controllers.NewDealAPIController(app),
		controllers.NewClientAPIController(app),
	)

	controllers.RegisterSocketHandlers(app)

	return nil
}

func (m *Module) Name() string {
	return "crm"
}
