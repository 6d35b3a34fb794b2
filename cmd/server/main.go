package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amasqis/hrms/modules"
	"github.com/amasqis/hrms/pkg/application"
	"github.com/amasqis/hrms/pkg/configuration"
	"github.com/amasqis/hrms/pkg/eventbus"
	"github.com/amasqis/hrms/pkg/metrics"
	"github.com/amasqis/hrms/pkg/middleware"
	"github.com/amasqis/hrms/pkg/server"
	"github.com/amasqis/hrms/pkg/ws"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		logger.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()

	hub := ws.NewHub(&ws.HubOptions{
		Logger:          logger,
		CheckOrigin:     checkOrigin(conf.AllowedOrigins),
		ReadBufferSize:  conf.WebSocket.ReadBufferSize,
		WriteBufferSize: conf.WebSocket.WriteBufferSize,
	})

	app := application.New(&application.ApplicationOptions{
		EventPublisher: eventbus.NewEventPublisher(logger),
		Hub:            hub,
		Logger:         logger,
	})
	app.RegisterMiddleware(
		middleware.WithLogger(logger),
		middleware.WithPool(pool),
		middleware.Cors(conf.AllowedOrigins),
		middleware.WithFetchTimeout(conf.FetchTimeout),
	)

	if err := modules.Load(app); err != nil {
		logger.WithError(err).Fatal("failed to load modules")
	}
	if err := app.ApplySchemas(ctx, pool); err != nil {
		logger.WithError(err).Fatal("failed to apply schemas")
	}

	app.RegisterControllers(server.NewWebSocketController(conf.WebSocket.Path, hub))
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	logger.Infof("listening on %s", conf.SocketAddress)
	if err := server.NewHTTPServer(app).Start(conf.SocketAddress); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}
