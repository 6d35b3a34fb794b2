package application

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"reflect"
	"sort"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/amasqis/hrms/pkg/eventbus"
	"github.com/amasqis/hrms/pkg/ws"
)

// Controller registers a set of routes under its base path.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires one business area (services, controllers, schema) into the
// application.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	RegisterControllers(controllers ...Controller)
	RegisterServices(services ...any)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterSchema(files *embed.FS)

	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	// Service returns the registered service whose type matches the
	// argument's type, e.g. app.Service(services.LeaveService{}).
	Service(service any) any
	EventPublisher() eventbus.EventBus
	Hub() *ws.Hub
	Logger() *logrus.Logger

	ApplySchemas(ctx context.Context, pool *pgxpool.Pool) error
}

type ApplicationOptions struct {
	EventPublisher eventbus.EventBus
	Hub            *ws.Hub
	Logger         *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		eventPublisher: opts.EventPublisher,
		hub:            opts.Hub,
		logger:         opts.Logger,
		services:       make(map[reflect.Type]any),
	}
}

type application struct {
	controllers    []Controller
	middleware     []mux.MiddlewareFunc
	services       map[reflect.Type]any
	schemas        []*embed.FS
	eventPublisher eventbus.EventBus
	hub            *ws.Hub
	logger         *logrus.Logger
}

func (a *application) RegisterControllers(controllers ...Controller) {
	a.controllers = append(a.controllers, controllers...)
}

func (a *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	a.middleware = append(a.middleware, middleware...)
}

func (a *application) RegisterServices(services ...any) {
	for _, service := range services {
		t := reflect.TypeOf(service)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		a.services[t] = service
	}
}

func (a *application) RegisterSchema(files *embed.FS) {
	a.schemas = append(a.schemas, files)
}

func (a *application) Controllers() []Controller {
	return a.controllers
}

func (a *application) Middleware() []mux.MiddlewareFunc {
	return a.middleware
}

func (a *application) Service(service any) any {
	t := reflect.TypeOf(service)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	svc, ok := a.services[t]
	if !ok {
		panic(fmt.Sprintf("service %s not registered", t.Name()))
	}
	return svc
}

func (a *application) EventPublisher() eventbus.EventBus {
	return a.eventPublisher
}

func (a *application) Hub() *ws.Hub {
	return a.hub
}

func (a *application) Logger() *logrus.Logger {
	return a.logger
}

// ApplySchemas executes every embedded .sql file in path order. Schema
// files are written to be idempotent (CREATE TABLE IF NOT EXISTS).
func (a *application) ApplySchemas(ctx context.Context, pool *pgxpool.Pool) error {
	for _, files := range a.schemas {
		var paths []string
		err := fs.WalkDir(files, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && fs.ValidPath(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return errors.Wrap(err, "walk schema files")
		}
		sort.Strings(paths)

		for _, path := range paths {
			content, err := files.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "read schema %s", path)
			}
			if _, err := pool.Exec(ctx, string(content)); err != nil {
				return errors.Wrapf(err, "apply schema %s", path)
			}
			a.logger.WithField("schema", path).Info("schema applied")
		}
	}
	return nil
}

// LoadModules registers each module in order.
func LoadModules(app Application, modules ...Module) error {
	for _, module := range modules {
		if err := module.Register(app); err != nil {
			return errors.Wrapf(err, "register module %s", module.Name())
		}
	}
	return nil
}
