package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/amasqis/hrms/modules/crm/domain/aggregates/company"
	"github.com/amasqis/hrms/modules/crm/presentation/mappers"
	"github.com/amasqis/hrms/modules/crm/services"
	"github.com/amasqis/hrms/pkg/application"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/configuration"
	"github.com/amasqis/hrms/pkg/exporting"
	"github.com/amasqis/hrms/pkg/httpapi"
	"github.com/amasqis/hrms/pkg/listview"
	"github.com/amasqis/hrms/pkg/mapping"
	"github.com/amasqis/hrms/pkg/shared"
)

type CompanyAPIController struct {
	app       application.Application
	companies *services.CompanyService
	excel     *exporting.ExcelExporter
	pdf       *exporting.PDFExporter
	basePath  string
}

func NewCompanyAPIController(app application.Application) application.Controller {
	conf := configuration.Use()
	return &CompanyAPIController{
		app:       app,
		companies: app.Service(services.CompanyService{}).(*services.CompanyService),
		excel:     exporting.NewExcelExporter(),
		pdf:       exporting.NewPDFExporter(conf.Export.CompanyName, conf.Export.PDFPageBreakAt),
		basePath:  "/admin/companies",
	}
}

func (c *CompanyAPIController) Key() string {
	return c.basePath
}

func (c *CompanyAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/export", c.Export).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func companyListConfig() listview.Config[company.Company] {
	return listview.Config[company.Company]{
		Key: func(e company.Company) string { return e.ID().String() },
		SearchFields: []func(company.Company) string{
			func(e company.Company) string { return e.Name() },
			func(e company.Company) string { return e.Email() },
			func(e company.Company) string { return e.Location() },
		},
		FilterFields: map[string]func(company.Company) string{
			"status":   func(e company.Company) string { return string(e.Status()) },
			"location": func(e company.Company) string { return e.Location() },
		},
		Columns: []listview.Column[company.Company]{
			{
				Name:    "Name",
				Display: func(e company.Company) string { return e.Name() },
				Value:   func(e company.Company) any { return e.Name() },
			},
			{
				Name:    "Email",
				Display: func(e company.Company) string { return e.Email() },
				Value:   func(e company.Company) any { return e.Email() },
			},
			{
				Name:    "Location",
				Display: func(e company.Company) string { return e.Location() },
				Value:   func(e company.Company) any { return e.Location() },
			},
			{
				Name:    "Rating",
				Display: func(e company.Company) string { return fmt.Sprintf("%.1f", e.Rating()) },
				Value:   func(e company.Company) any { return e.Rating() },
			},
			{
				Name:    "Owner",
				Display: func(e company.Company) string { return e.Owner() },
				Value:   func(e company.Company) any { return e.Owner() },
			},
			{
				Name:    "Status",
				Display: func(e company.Company) string { return string(e.Status()) },
				Value:   func(e company.Company) any { return string(e.Status()) },
			},
			{
				Name:    "Created",
				Display: func(e company.Company) string { return e.CreatedAt().Format("2006-01-02") },
				Value:   func(e company.Company) any { return e.CreatedAt() },
			},
		},
	}
}

func (c *CompanyAPIController) deriveRows(r *http.Request) ([]listview.Row[company.Company], error) {
	entities, err := c.companies.GetAll(r.Context())
	if err != nil {
		return nil, err
	}
	params := composables.UseListParams(r, "status", "location")
	return listview.Derive(companyListConfig(), entities, params), nil
}

func (c *CompanyAPIController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.deriveRows(r)
	if err != nil {
		internalError(w, r, err)
		return
	}

	pagination := composables.UsePaginated(r)
	total := len(rows)
	start := min(pagination.Offset, total)
	end := min(start+pagination.Limit, total)

	items := mapping.MapViewModels(rows[start:end], func(row listview.Row[company.Company]) any {
		return mappers.CompanyToViewModel(row.Raw)
	})
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  pagination.Page,
	})
}

func (c *CompanyAPIController) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := c.deriveRows(r)
	if err != nil {
		internalError(w, r, err)
		return
	}

	doc := exporting.FromListView("Companies", companyListConfig(), rows, []float64{40, 50, 35, 15, 30, 20, 25})
	filename := "companies-" + time.Now().Format("2006-01-02")
	if err := exporting.WriteHTTP(w, r.URL.Query().Get("format"), filename, doc, c.excel, c.pdf); err != nil {
		if errors.Is(err, exporting.ErrUnknownFormat) {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "EXPORT_UNKNOWN_FORMAT", "unknown export format")
			return
		}
		internalError(w, r, err)
	}
}

func (c *CompanyAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "COMPANY_INVALID_ID", "invalid company id")
		return
	}
	entity, err := c.companies.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "COMPANY_NOT_FOUND", "company not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.CompanyToViewModel(entity))
}

func (c *CompanyAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto company.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "COMPANY_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "COMPANY_VALIDATION_FAILED", errs)
		return
	}
	created, err := c.companies.Create(r.Context(), &dto)
	if err != nil {
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusCreated, mappers.CompanyToViewModel(created))
}

func (c *CompanyAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "COMPANY_INVALID_ID", "invalid company id")
		return
	}
	var dto company.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "COMPANY_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "COMPANY_VALIDATION_FAILED", errs)
		return
	}
	updated, err := c.companies.Update(r.Context(), id, &dto)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "COMPANY_NOT_FOUND", "company not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.CompanyToViewModel(updated))
}

func (c *CompanyAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "COMPANY_INVALID_ID", "invalid company id")
		return
	}
	if _, err := c.companies.Delete(r.Context(), id); err != nil {
		if errors.Is(err, company.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "COMPANY_NOT_FOUND", "company not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}
