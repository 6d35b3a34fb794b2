package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/amasqis/hrms/modules/recruitment/domain/aggregates/job"
	"github.com/amasqis/hrms/modules/recruitment/presentation/mappers"
	"github.com/amasqis/hrms/modules/recruitment/services"
	"github.com/amasqis/hrms/pkg/application"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/configuration"
	"github.com/amasqis/hrms/pkg/exporting"
	"github.com/amasqis/hrms/pkg/httpapi"
	"github.com/amasqis/hrms/pkg/listview"
	"github.com/amasqis/hrms/pkg/mapping"
	"github.com/amasqis/hrms/pkg/shared"
)

type JobAPIController struct {
	app      application.Application
	jobs     *services.JobService
	excel    *exporting.ExcelExporter
	pdf      *exporting.PDFExporter
	basePath string
}

func NewJobAPIController(app application.Application) application.Controller {
	conf := configuration.Use()
	return &JobAPIController{
		app:      app,
		jobs:     app.Service(services.JobService{}).(*services.JobService),
		excel:    exporting.NewExcelExporter(),
		pdf:      exporting.NewPDFExporter(conf.Export.CompanyName, conf.Export.PDFPageBreakAt),
		basePath: "/api/jobs",
	}
}

func (c *JobAPIController) Key() string {
	return c.basePath
}

func (c *JobAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/export", c.Export).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func jobListConfig() listview.Config[job.Job] {
	return listview.Config[job.Job]{
		Key: func(e job.Job) string { return e.ID().String() },
		SearchFields: []func(job.Job) string{
			func(e job.Job) string { return e.Title() },
			func(e job.Job) string { return e.Category() },
			func(e job.Job) string { return e.Location() },
		},
		FilterFields: map[string]func(job.Job) string{
			"status":   func(e job.Job) string { return string(e.Status()) },
			"type":     func(e job.Job) string { return string(e.Kind()) },
			"category": func(e job.Job) string { return e.Category() },
		},
		Columns: []listview.Column[job.Job]{
			{
				Name:    "Title",
				Display: func(e job.Job) string { return e.Title() },
				Value:   func(e job.Job) any { return e.Title() },
			},
			{
				Name:    "Category",
				Display: func(e job.Job) string { return e.Category() },
				Value:   func(e job.Job) any { return e.Category() },
			},
			{
				Name:    "Location",
				Display: func(e job.Job) string { return e.Location() },
				Value:   func(e job.Job) any { return e.Location() },
			},
			{
				Name:    "Salary",
				Display: func(e job.Job) string { return jobSalary(e) },
				Value:   func(e job.Job) any { return e.SalaryMin() },
			},
			{
				Name:    "Type",
				Display: func(e job.Job) string { return string(e.Kind()) },
				Value:   func(e job.Job) any { return string(e.Kind()) },
			},
			{
				Name:    "Status",
				Display: func(e job.Job) string { return string(e.Status()) },
				Value:   func(e job.Job) any { return string(e.Status()) },
			},
			{
				Name:    "Posted",
				Display: func(e job.Job) string { return e.PostedAt().Format("2006-01-02") },
				Value:   func(e job.Job) any { return e.PostedAt() },
			},
		},
	}
}

func jobSalary(e job.Job) string {
	if e.SalaryRaw() != "" {
		return e.SalaryRaw()
	}
	if e.SalaryMin() == 0 && e.SalaryMax() == 0 {
		return "-"
	}
	return strconv.Itoa(e.SalaryMin()) + " - " + strconv.Itoa(e.SalaryMax())
}

func (c *JobAPIController) deriveRows(r *http.Request) ([]listview.Row[job.Job], error) {
	entities, err := c.jobs.GetAll(r.Context())
	if err != nil {
		return nil, err
	}
	params := composables.UseListParams(r, "status", "type", "category")
	return listview.Derive(jobListConfig(), entities, params), nil
}

func (c *JobAPIController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.deriveRows(r)
	if err != nil {
		internalError(w, r, err)
		return
	}

	pagination := composables.UsePaginated(r)
	total := len(rows)
	start := min(pagination.Offset, total)
	end := min(start+pagination.Limit, total)

	items := mapping.MapViewModels(rows[start:end], func(row listview.Row[job.Job]) any {
		return mappers.JobToViewModel(row.Raw)
	})
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  pagination.Page,
	})
}

func (c *JobAPIController) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := c.deriveRows(r)
	if err != nil {
		internalError(w, r, err)
		return
	}

	doc := exporting.FromListView("Jobs", jobListConfig(), rows, []float64{45, 28, 28, 28, 22, 20, 22})
	filename := "jobs-" + time.Now().Format("2006-01-02")
	if err := exporting.WriteHTTP(w, r.URL.Query().Get("format"), filename, doc, c.excel, c.pdf); err != nil {
		if errors.Is(err, exporting.ErrUnknownFormat) {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "EXPORT_UNKNOWN_FORMAT", "unknown export format")
			return
		}
		internalError(w, r, err)
	}
}

func (c *JobAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JOB_INVALID_ID", "invalid job id")
		return
	}
	entity, err := c.jobs.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "JOB_NOT_FOUND", "job not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.JobToViewModel(entity))
}

func (c *JobAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto job.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JOB_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "JOB_VALIDATION_FAILED", errs)
		return
	}
	created, err := c.jobs.Create(r.Context(), &dto)
	if err != nil {
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusCreated, mappers.JobToViewModel(created))
}

func (c *JobAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JOB_INVALID_ID", "invalid job id")
		return
	}
	var dto job.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JOB_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "JOB_VALIDATION_FAILED", errs)
		return
	}
	updated, err := c.jobs.Update(r.Context(), id, &dto)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "JOB_NOT_FOUND", "job not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.JobToViewModel(updated))
}

func (c *JobAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "JOB_INVALID_ID", "invalid job id")
		return
	}
	if _, err := c.jobs.Delete(r.Context(), id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "JOB_NOT_FOUND", "job not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}
