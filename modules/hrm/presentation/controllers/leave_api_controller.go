package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leaverequest"
	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leavetype"
	"github.com/amasqis/hrms/modules/hrm/presentation/mappers"
	"github.com/amasqis/hrms/modules/hrm/services"
	"github.com/amasqis/hrms/pkg/application"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/httpapi"
	"github.com/amasqis/hrms/pkg/listview"
	"github.com/amasqis/hrms/pkg/mapping"
	"github.com/amasqis/hrms/pkg/shared"
)

// LeaveAPIController is the employee-facing surface: file, track, and
// cancel one's own requests. Review actions live on the admin controller.
type LeaveAPIController struct {
	app      application.Application
	leaves   *services.LeaveService
	types    *services.LeaveTypeService
	basePath string
}

func NewLeaveAPIController(app application.Application) application.Controller {
	return &LeaveAPIController{
		app:      app,
		leaves:   app.Service(services.LeaveService{}).(*services.LeaveService),
		types:    app.Service(services.LeaveTypeService{}).(*services.LeaveTypeService),
		basePath: "/api/leaves",
	}
}

func (c *LeaveAPIController) Key() string {
	return c.basePath
}

func (c *LeaveAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/types", c.ListTypes).Methods(http.MethodGet)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/balances/{id}", c.Balances).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}/cancel", c.Cancel).Methods(http.MethodPost)
}

// ListTypes exposes only active types, which is all an employee can pick
// from when filing.
func (c *LeaveAPIController) ListTypes(w http.ResponseWriter, r *http.Request) {
	all, err := c.types.GetAll(r.Context())
	if err != nil {
		leaveInternalError(w, r, err)
		return
	}
	active := make([]leavetype.LeaveType, 0, len(all))
	for _, lt := range all {
		if lt.Status() == leavetype.StatusActive {
			active = append(active, lt)
		}
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{
		"items": mapping.MapViewModels(active, mappers.LeaveTypeToViewModel),
	})
}

func (c *LeaveAPIController) List(w http.ResponseWriter, r *http.Request) {
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

func (c *LeaveAPIController) Create(w http.ResponseWriter, r *http.Request) {
	createLeaveRequest(w, r, c.leaves)
}

func (c *LeaveAPIController) Update(w http.ResponseWriter, r *http.Request) {
	updateLeaveRequest(w, r, c.leaves)
}

func (c *LeaveAPIController) Cancel(w http.ResponseWriter, r *http.Request) {
	leaveTransition(w, r, func(id uuid.UUID, note string) (leaverequest.LeaveRequest, error) {
		return c.leaves.Cancel(r.Context(), id)
	})
}

func (c *LeaveAPIController) Balances(w http.ResponseWriter, r *http.Request) {
	writeLeaveBalances(w, r, c.leaves)
}

func createLeaveRequest(w http.ResponseWriter, r *http.Request, leaves *services.LeaveService) {
	var dto leaverequest.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LEAVE_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "LEAVE_VALIDATION_FAILED", errs)
		return
	}

	created, err := leaves.Create(r.Context(), &dto)
	if err != nil {
		switch {
		case errors.Is(err, leaverequest.ErrInvalidRange):
			_ = httpapi.WriteError(w, http.StatusBadRequest, "LEAVE_INVALID_RANGE", "leave range is empty or inverted")
		case errors.Is(err, leavetype.ErrNotFound):
			_ = httpapi.WriteError(w, http.StatusNotFound, "LEAVE_TYPE_NOT_FOUND", "leave type not found")
		default:
			leaveInternalError(w, r, err)
		}
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusCreated, mappers.LeaveRequestToViewModel(created))
}

func updateLeaveRequest(w http.ResponseWriter, r *http.Request, leaves *services.LeaveService) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LEAVE_INVALID_ID", "invalid leave request id")
		return
	}
	var dto leaverequest.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LEAVE_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "LEAVE_VALIDATION_FAILED", errs)
		return
	}

	updated, err := leaves.Update(r.Context(), id, &dto)
	if err != nil {
		switch {
		case errors.Is(err, leaverequest.ErrNotFound):
			_ = httpapi.WriteError(w, http.StatusNotFound, "LEAVE_NOT_FOUND", "leave request not found")
		case errors.Is(err, leavetype.ErrNotFound):
			_ = httpapi.WriteError(w, http.StatusNotFound, "LEAVE_TYPE_NOT_FOUND", "leave type not found")
		case errors.Is(err, leaverequest.ErrInvalidRange):
			_ = httpapi.WriteError(w, http.StatusBadRequest, "LEAVE_INVALID_RANGE", "leave range is empty or inverted")
		case errors.Is(err, leaverequest.ErrInvalidTransition):
			_ = httpapi.WriteError(w, http.StatusConflict, "LEAVE_INVALID_TRANSITION", "invalid leave status transition")
		default:
			leaveInternalError(w, r, err)
		}
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.LeaveRequestToViewModel(updated))
}

func leaveTransition(w http.ResponseWriter, r *http.Request, fn func(uuid.UUID, string) (leaverequest.LeaveRequest, error)) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "LEAVE_INVALID_ID", "invalid leave request id")
		return
	}
	var payload struct {
		Note string `json:"note"`
	}
	// The note body is optional.
	_ = json.NewDecoder(r.Body).Decode(&payload)

	updated, err := fn(id, payload.Note)
	if err != nil {
		switch {
		case errors.Is(err, leaverequest.ErrNotFound):
			_ = httpapi.WriteError(w, http.StatusNotFound, "LEAVE_NOT_FOUND", "leave request not found")
		case errors.Is(err, leaverequest.ErrInvalidTransition):
			_ = httpapi.WriteError(w, http.StatusConflict, "LEAVE_INVALID_TRANSITION", "invalid leave status transition")
		case errors.Is(err, leaverequest.ErrInsufficientBalance):
			_ = httpapi.WriteError(w, http.StatusConflict, "LEAVE_INSUFFICIENT_BALANCE", "insufficient leave balance")
		default:
			leaveInternalError(w, r, err)
		}
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.LeaveRequestToViewModel(updated))
}

func writeLeaveBalances(w http.ResponseWriter, r *http.Request, leaves *services.LeaveService) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "EMPLOYEE_INVALID_ID", "invalid employee id")
		return
	}
	balances, err := leaves.Balances(r.Context(), id)
	if err != nil {
		leaveInternalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{
		"items": mapping.MapViewModels(balances, mappers.BalanceToViewModel),
	})
}
