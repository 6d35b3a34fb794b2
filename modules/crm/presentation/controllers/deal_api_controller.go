package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/amasqis/hrms/modules/crm/domain/aggregates/deal"
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

type DealAPIController struct {
	app      application.Application
	deals    *services.DealService
	excel    *exporting.ExcelExporter
	pdf      *exporting.PDFExporter
	basePath string
}

func NewDealAPIController(app application.Application) application.Controller {
	conf := configuration.Use()
	return &DealAPIController{
		app:      app,
		deals:    app.Service(services.DealService{}).(*services.DealService),
		excel:    exporting.NewExcelExporter(),
		pdf:      exporting.NewPDFExporter(conf.Export.CompanyName, conf.Export.PDFPageBreakAt),
		basePath: "/admin/deals",
	}
}

func (c *DealAPIController) Key() string {
	return c.basePath
}

func (c *DealAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/board", c.Board).Methods(http.MethodGet)
	router.HandleFunc("/export", c.Export).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}/stage", c.MoveStage).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func dealListConfig() listview.Config[deal.Deal] {
	return listview.Config[deal.Deal]{
		Key: func(e deal.Deal) string { return e.ID().String() },
		SearchFields: []func(deal.Deal) string{
			func(e deal.Deal) string { return e.Name() },
			func(e deal.Deal) string { return e.Owner() },
		},
		FilterFields: map[string]func(deal.Deal) string{
			"stage": func(e deal.Deal) string { return string(e.Stage()) },
			"owner": func(e deal.Deal) string { return e.Owner() },
		},
		Columns: []listview.Column[deal.Deal]{
			{
				Name:    "Name",
				Display: func(e deal.Deal) string { return e.Name() },
				Value:   func(e deal.Deal) any { return e.Name() },
			},
			{
				Name:    "Stage",
				Display: func(e deal.Deal) string { return string(e.Stage()) },
				Value:   func(e deal.Deal) any { return string(e.Stage()) },
			},
			{
				Name:    "Value",
				Display: func(e deal.Deal) string { return e.Value().Display() },
				Value:   func(e deal.Deal) any { return e.Amount() },
			},
			{
				Name:    "Probability",
				Display: func(e deal.Deal) string { return dealProbability(e) },
				Value:   func(e deal.Deal) any { return e.Probability() },
			},
			{
				Name:    "Owner",
				Display: func(e deal.Deal) string { return e.Owner() },
				Value:   func(e deal.Deal) any { return e.Owner() },
			},
			{
				Name:    "Expected Close",
				Display: func(e deal.Deal) string { return dealCloseDate(e) },
				Value:   func(e deal.Deal) any { return e.ExpectedCloseDate() },
			},
		},
	}
}

func dealProbability(e deal.Deal) string {
	if e.Probability() <= 0 {
		return "-"
	}
	return strconv.Itoa(e.Probability()) + "%"
}

func dealCloseDate(e deal.Deal) string {
	if e.ExpectedCloseDate().IsZero() {
		return "-"
	}
	return e.ExpectedCloseDate().Format("2006-01-02")
}

func (c *DealAPIController) deriveRows(r *http.Request) ([]listview.Row[deal.Deal], error) {
	entities, err := c.deals.GetAll(r.Context())
	if err != nil {
		return nil, err
	}
	params := composables.UseListParams(r, "stage", "owner")
	return listview.Derive(dealListConfig(), entities, params), nil
}

func (c *DealAPIController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.deriveRows(r)
	if err != nil {
		internalError(w, r, err)
		return
	}

	pagination := composables.UsePaginated(r)
	total := len(rows)
	start := min(pagination.Offset, total)
	end := min(start+pagination.Limit, total)

	items := mapping.MapViewModels(rows[start:end], func(row listview.Row[deal.Deal]) any {
		return mappers.DealToViewModel(row.Raw)
	})
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  pagination.Page,
	})
}

func (c *DealAPIController) Board(w http.ResponseWriter, r *http.Request) {
	board, err := c.deals.Board(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{
		"columns": mappers.BoardToViewModel(board),
		"total":   board.Total(),
	})
}

func (c *DealAPIController) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := c.deriveRows(r)
	if err != nil {
		internalError(w, r, err)
		return
	}

	doc := exporting.FromListView("Deals", dealListConfig(), rows, []float64{45, 22, 25, 20, 30, 25})
	filename := "deals-" + time.Now().Format("2006-01-02")
	if err := exporting.WriteHTTP(w, r.URL.Query().Get("format"), filename, doc, c.excel, c.pdf); err != nil {
		if errors.Is(err, exporting.ErrUnknownFormat) {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "EXPORT_UNKNOWN_FORMAT", "unknown export format")
			return
		}
		internalError(w, r, err)
	}
}

func (c *DealAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DEAL_INVALID_ID", "invalid deal id")
		return
	}
	entity, err := c.deals.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, deal.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "DEAL_NOT_FOUND", "deal not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.DealToViewModel(entity))
}

func (c *DealAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto deal.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DEAL_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "DEAL_VALIDATION_FAILED", errs)
		return
	}
	created, err := c.deals.Create(r.Context(), &dto)
	if err != nil {
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusCreated, mappers.DealToViewModel(created))
}

func (c *DealAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DEAL_INVALID_ID", "invalid deal id")
		return
	}
	var dto deal.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DEAL_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "DEAL_VALIDATION_FAILED", errs)
		return
	}
	updated, err := c.deals.Update(r.Context(), id, &dto)
	if err != nil {
		if errors.Is(err, deal.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "DEAL_NOT_FOUND", "deal not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.DealToViewModel(updated))
}

func (c *DealAPIController) MoveStage(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DEAL_INVALID_ID", "invalid deal id")
		return
	}
	var payload struct {
		Stage string `json:"stage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DEAL_INVALID_JSON", "invalid json")
		return
	}

	moved, err := c.deals.MoveStage(r.Context(), id, deal.Stage(payload.Stage))
	if err != nil {
		switch {
		case errors.Is(err, deal.ErrNotFound):
			_ = httpapi.WriteError(w, http.StatusNotFound, "DEAL_NOT_FOUND", "deal not found")
		case errors.Is(err, deal.ErrUnknownStage):
			_ = httpapi.WriteError(w, http.StatusBadRequest, "DEAL_UNKNOWN_STAGE", "unknown deal stage")
		default:
			internalError(w, r, err)
		}
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.DealToViewModel(moved))
}

func (c *DealAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DEAL_INVALID_ID", "invalid deal id")
		return
	}
	if _, err := c.deals.Delete(r.Context(), id); err != nil {
		if errors.Is(err, deal.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "DEAL_NOT_FOUND", "deal not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}
