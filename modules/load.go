package modules

import (
	"github.com/amasqis/hrms/modules/core"
	"github.com/amasqis/hrms/modules/crm"
	"github.com/amasqis/hrms/modules/hrm"
	"github.com/amasqis/hrms/modules/recruitment"
	"github.com/amasqis/hrms/modules/tickets"
	"github.com/amasqis/hrms/pkg/application"
)

// BuiltInModules is the default module set, in registration order.
var BuiltInModules = []application.Module{
	core.NewModule(),
	crm.NewModule(),
	hrm.NewModule(),
	recruitment.NewModule(),
	tickets.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	return application.LoadModules(app, append(BuiltInModules, externalModules...)...)
}
