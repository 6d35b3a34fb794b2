package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leaverequest"
	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leavetype"
	"github.com/amasqis/hrms/modules/hrm/presentation/mappers"
	"github.com/amasqis/hrms/modules/hrm/services"
	"github.com/amasqis/hrms/pkg/application"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/configuration"
	"github.com/amasqis/hrms/pkg/exporting"
	"github.com/amasqis/hrms/pkg/httpapi"
	"github.com/amasqis/hrms/pkg/listview"
	"github.com/amasqis/hrms/pkg/mapping"
	"github.com/amasqis/hrms/pkg/shared"
)

// LeaveAdminController is the HR-facing surface: leave type management
// plus review actions over every employee's requests.
type LeaveAdminController struct {
	app      application.Application
	leaves   *services.LeaveService
	types    *services.LeaveTypeService
	excel    *exporting.ExcelExporter
	pdf      *exporting.PDFExporter
	basePath string
}

func NewLeaveAdminController(app application.Application) application.Controller {
	conf := configuration.Use()
	return &LeaveAdminController{
		app:      app,
		leaves:   app.Service(services.LeaveService{}).(*services.LeaveService),
		types:    app.Service(services.LeaveTypeService{}).(*services.LeaveTypeService),
		excel:    exporting.NewExcelExporter(),
		pdf:      exporting.NewPDFExporter(conf.Export.CompanyName, conf.Export.PDFPageBreakAt),
		basePath: "/admin/leaves",
	}
}

func (c *LeaveAdminController) Key() string {
	return c.basePath
}

func (c *LeaveAdminController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()

	router.HandleFunc("/types", c.ListTypes).Methods(http.MethodGet)
	router.HandleFunc("/types", c.CreateType).Methods(http.MethodPost)
	router.HandleFunc("/types/{id}", c.UpdateType).Methods(http.MethodPut)
	router.HandleFunc("/types/{id}", c.DeleteType).Methods(http.MethodDelete)

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/export", c.Export).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/balances/{id}", c.Balances).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}/approve", c.Approve).Methods(http.MethodPost)
	router.HandleFunc("/{id}/reject", c.Reject).Methods(http.MethodPost)
	router.HandleFunc("/{id}/cancel", c.Cancel).Methods(http.MethodPost)
}

func (c *LeaveAdminController) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := c.types.GetAll(r.Context())
	if err != nil {
		leaveInternalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{
		"items": mapping.MapViewModels(types, mappers.LeaveTypeToViewModel),
	})
}

func (c *LeaveAdminController) CreateType(w http.ResponseWriter, r *http.Request) {
	var dto leavetype.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LEAVE_TYPE_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "LEAVE_TYPE_VALIDATION_FAILED", errs)
		return
	}
	created, err := c.types.Create(r.Context(), &dto)
	if err != nil {
		leaveInternalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusCreated, mappers.LeaveTypeToViewModel(created))
}

func (c *LeaveAdminController) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LEAVE_TYPE_INVALID_ID", "invalid leave type id")
		return
	}
	var dto leavetype.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LEAVE_TYPE_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "LEAVE_TYPE_VALIDATION_FAILED", errs)
		return
	}
	updated, err := c.types.Update(r.Context(), id, &dto)
	if err != nil {
		if errors.Is(err, leavetype.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "LEAVE_TYPE_NOT_FOUND", "leave type not found")
			return
		}
		leaveInternalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.LeaveTypeToViewModel(updated))
}

func (c *LeaveAdminController) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LEAVE_TYPE_INVALID_ID", "invalid leave type id")
		return
	}
	if err := c.types.Delete(r.Context(), id); err != nil {
		if errors.Is(err, leavetype.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "LEAVE_TYPE_NOT_FOUND", "leave type not found")
			return
		}
		leaveInternalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}

func (c *LeaveAdminController) List(w http.ResponseWriter, r *http.Request) {
	rows, _, err := deriveLeaveRows(r, c.leaves, c.types)
	if err != nil {
		leaveInternalError(w, r, err)
		return
	}

	pagination := composables.UsePaginated(r)
	total := len(rows)
	start := min(pagination.Offset, total)
	end := min(start+pagination.Limit, total)

	items := mapping.MapViewModels(rows[start:end], func(row listview.Row[leaverequest.LeaveRequest]) any {
		return mappers.LeaveRequestToViewModel(row.Raw)
	})
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  pagination.Page,
	})
}

func (c *LeaveAdminController) Export(w http.ResponseWriter, r *http.Request) {
	rows, cfg, err := deriveLeaveRows(r, c.leaves, c.types)
	if err != nil {
		leaveInternalError(w, r, err)
		return
	}

	doc := exporting.FromListView("Leave Requests", cfg, rows, []float64{50, 30, 25, 25, 25, 25})
	filename := "leave-requests-" + time.Now().Format("2006-01-02")
	if err := exporting.WriteHTTP(w, r.URL.Query().Get("format"), filename, doc, c.excel, c.pdf); err != nil {
		if errors.Is(err, exporting.ErrUnknownFormat) {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "EXPORT_UNKNOWN_FORMAT", "unknown export format")
			return
		}
		leaveInternalError(w, r, err)
	}
}

func (c *LeaveAdminController) Create(w http.ResponseWriter, r *http.Request) {
	createLeaveRequest(w, r, c.leaves)
}

func (c *LeaveAdminController) Update(w http.ResponseWriter, r *http.Request) {
	updateLeaveRequest(w, r, c.leaves)
}

func (c *LeaveAdminController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LEAVE_INVALID_ID", "invalid leave request id")
		return
	}
	entity, err := c.leaves.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, leaverequest.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "LEAVE_NOT_FOUND", "leave request not found")
			return
		}
		leaveInternalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.LeaveRequestToViewModel(entity))
}

func (c *LeaveAdminController) Approve(w http.ResponseWriter, r *http.Request) {
	leaveTransition(w, r, func(id uuid.UUID, note string) (leaverequest.LeaveRequest, error) {
		return c.leaves.Approve(r.Context(), id, note)
	})
}

func (c *LeaveAdminController) Reject(w http.ResponseWriter, r *http.Request) {
	leaveTransition(w, r, func(id uuid.UUID, note string) (leaverequest.LeaveRequest, error) {
		return c.leaves.Reject(r.Context(), id, note)
	})
}

func (c *LeaveAdminController) Cancel(w http.ResponseWriter, r *http.Request) {
	leaveTransition(w, r, func(id uuid.UUID, note string) (leaverequest.LeaveRequest, error) {
		return c.leaves.Cancel(r.Context(), id)
	})
}

func (c *LeaveAdminController) Balances(w http.ResponseWriter, r *http.Request) {
	writeLeaveBalances(w, r, c.leaves)
}
