package controllers

import (
	"context"
	"encoding/json"

	"github.com/amasqis/hrms/modules/recruitment/domain/aggregates/job"
	"github.com/amasqis/hrms/modules/recruitment/presentation/mappers"
	"github.com/amasqis/hrms/modules/recruitment/presentation/viewmodels"
	"github.com/amasqis/hrms/modules/recruitment/services"
	"github.com/amasqis/hrms/pkg/application"
	"github.com/amasqis/hrms/pkg/mapping"
)

// RegisterSocketHandlers exposes the job board over the socket API.
// "jobs/list/get-jobs" answers with the current list on
// "jobs/list/get-jobs-response", "jobs/create-job" creates a posting,
// and every successful create is broadcast to all connections as
// "jobs/job-created".
func RegisterSocketHandlers(app application.Application) {
	hub := app.Hub()
	jobs := app.Service(services.JobService{}).(*services.JobService)

	hub.HandleFunc("jobs/list/get-jobs", func(ctx context.Context, data json.RawMessage) (any, error) {
		var query struct {
			Search string `json:"search"`
		}
		if len(data) > 0 {
			_ = json.Unmarshal(data, &query)
		}

		var (
			entities []job.Job
			err      error
		)
		if query.Search != "" {
			entities, err = jobs.Search(ctx, query.Search)
		} else {
			entities, err = jobs.GetAll(ctx)
		}
		if err != nil {
			return nil, err
		}
		return mapping.MapViewModels(entities, func(e job.Job) *viewmodels.Job {
			return mappers.JobToViewModel(e)
		}), nil
	})

	hub.HandleFunc("jobs/create-job", func(ctx context.Context, data json.RawMessage) (any, error) {
		var dto job.CreateDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			return nil, err
		}
		if errs, ok := dto.Ok(ctx); !ok {
			return nil, job.ValidationError(errs)
		}
		created, err := jobs.Create(ctx, &dto)
		if err != nil {
			return nil, err
		}
		return mappers.JobToViewModel(created), nil
	})

	app.EventPublisher().Subscribe(func(event *job.CreatedEvent) {
		hub.Broadcast("jobs/job-created", mappers.JobToViewModel(event.Result))
	})
}
