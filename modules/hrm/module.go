package hrm

import (
	"embed"

	"github.com/amasqis/hrms/modules/hrm/infrastructure/persistence"
	"github.com/amasqis/hrms/modules/hrm/presentation/controllers"
	"github.com/amasqis/hrms/modules/hrm/services"
	"github.com/amasqis/hrms/pkg/application"
)

//go:embed infrastructure/persistence/schema/hrm-schema.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterSchema(&migrationFiles)

	leaveTypeRepo := persistence.NewLeaveTypeRepository()
	leaveRequestRepo := persistence.NewLeaveRequestRepository()

	app.RegisterServices(
		services.NewLeaveTypeService(leaveTypeRepo, app.EventPublisher()),
		services.NewLeaveService(leaveRequestRepo, leaveTypeRepo, app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewLeaveAdminController(app),
		controllers.NewLeaveAPIController(app),
	)

	controllers.RegisterSocketHandlers(app)

	return nil
}

func (m *Module) Name() string {
	return "hrm"
}
