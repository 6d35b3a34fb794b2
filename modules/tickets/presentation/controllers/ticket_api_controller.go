package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/amasqis/hrms/modules/tickets/domain/aggregates/ticket"
	"github.com/amasqis/hrms/modules/tickets/presentation/mappers"
	"github.com/amasqis/hrms/modules/tickets/services"
	"github.com/amasqis/hrms/pkg/application"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/configuration"
	"github.com/amasqis/hrms/pkg/exporting"
	"github.com/amasqis/hrms/pkg/httpapi"
	"github.com/amasqis/hrms/pkg/listview"
	"github.com/amasqis/hrms/pkg/mapping"
	"github.com/amasqis/hrms/pkg/shared"
)

type TicketAPIController struct {
	app      application.Application
	tickets  *services.TicketService
	excel    *exporting.ExcelExporter
	pdf      *exporting.PDFExporter
	basePath string
}

func NewTicketAPIController(app application.Application) application.Controller {
	conf := configuration.Use()
	return &TicketAPIController{
		app:      app,
		tickets:  app.Service(services.TicketService{}).(*services.TicketService),
		excel:    exporting.NewExcelExporter(),
		pdf:      exporting.NewPDFExporter(conf.Export.CompanyName, conf.Export.PDFPageBreakAt),
		basePath: "/admin/tickets",
	}
}

func (c *TicketAPIController) Key() string {
	return c.basePath
}

func (c *TicketAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/export", c.Export).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}/status", c.ChangeStatus).Methods(http.MethodPost)
	router.HandleFunc("/{id}/assign", c.Assign).Methods(http.MethodPost)
	router.HandleFunc("/{id}/comments", c.AddComment).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func ticketListConfig() listview.Config[ticket.Ticket] {
	return listview.Config[ticket.Ticket]{
		Key: func(e ticket.Ticket) string { return e.ID().String() },
		SearchFields: []func(ticket.Ticket) string{
			func(e ticket.Ticket) string { return e.Number() },
			func(e ticket.Ticket) string { return e.Title() },
			func(e ticket.Ticket) string { return e.Category() },
			func(e ticket.Ticket) string { return e.AssignedTo() },
		},
		FilterFields: map[string]func(ticket.Ticket) string{
			"status":   func(e ticket.Ticket) string { return string(e.Status()) },
			"priority": func(e ticket.Ticket) string { return string(e.Priority()) },
			"category": func(e ticket.Ticket) string { return e.Category() },
		},
		Columns: []listview.Column[ticket.Ticket]{
			{
				Name:    "Number",
				Display: func(e ticket.Ticket) string { return e.Number() },
				Value:   func(e ticket.Ticket) any { return e.Number() },
			},
			{
				Name:    "Title",
				Display: func(e ticket.Ticket) string { return e.Title() },
				Value:   func(e ticket.Ticket) any { return e.Title() },
			},
			{
				Name:    "Category",
				Display: func(e ticket.Ticket) string { return e.Category() },
				Value:   func(e ticket.Ticket) any { return e.Category() },
			},
			{
				Name:    "Priority",
				Display: func(e ticket.Ticket) string { return string(e.Priority()) },
				Value:   func(e ticket.Ticket) any { return string(e.Priority()) },
			},
			{
				Name:    "Status",
				Display: func(e ticket.Ticket) string { return string(e.Status()) },
				Value:   func(e ticket.Ticket) any { return string(e.Status()) },
			},
			{
				Name:    "Assigned To",
				Display: func(e ticket.Ticket) string { return ticketAssignee(e) },
				Value:   func(e ticket.Ticket) any { return e.AssignedTo() },
			},
			{
				Name:    "SLA Deadline",
				Display: func(e ticket.Ticket) string { return e.SLADeadline().Format("2006-01-02 15:04") },
				Value:   func(e ticket.Ticket) any { return e.SLADeadline() },
			},
		},
	}
}

func ticketAssignee(e ticket.Ticket) string {
	if e.AssignedTo() == "" {
		return "-"
	}
	return e.AssignedTo()
}

func (c *TicketAPIController) deriveRows(r *http.Request) ([]listview.Row[ticket.Ticket], error) {
	entities, err := c.tickets.GetAll(r.Context(), nil)
	if err != nil {
		return nil, err
	}
	params := composables.UseListParams(r, "status", "priority", "category")
	return listview.Derive(ticketListConfig(), entities, params), nil
}

func (c *TicketAPIController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.deriveRows(r)
	if err != nil {
		internalError(w, r, err)
		return
	}

	pagination := composables.UsePaginated(r)
	total := len(rows)
	start := min(pagination.Offset, total)
	end := min(start+pagination.Limit, total)

	items := mapping.MapViewModels(rows[start:end], func(row listview.Row[ticket.Ticket]) any {
		return mappers.TicketToViewModel(row.Raw)
	})
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  pagination.Page,
	})
}

func (c *TicketAPIController) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := c.deriveRows(r)
	if err != nil {
		internalError(w, r, err)
		return
	}

	doc := exporting.FromListView("Tickets", ticketListConfig(), rows, []float64{22, 45, 26, 20, 22, 26, 30})
	filename := "tickets-" + time.Now().Format("2006-01-02")
	if err := exporting.WriteHTTP(w, r.URL.Query().Get("format"), filename, doc, c.excel, c.pdf); err != nil {
		if errors.Is(err, exporting.ErrUnknownFormat) {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "EXPORT_UNKNOWN_FORMAT", "unknown export format")
			return
		}
		internalError(w, r, err)
	}
}

func (c *TicketAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_INVALID_ID", "invalid ticket id")
		return
	}
	entity, err := c.tickets.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "TICKET_NOT_FOUND", "ticket not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.TicketToViewModel(entity))
}

func (c *TicketAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto ticket.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "TICKET_VALIDATION_FAILED", errs)
		return
	}
	created, err := c.tickets.Create(r.Context(), &dto)
	if err != nil {
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusCreated, mappers.TicketToViewModel(created))
}

func (c *TicketAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_INVALID_ID", "invalid ticket id")
		return
	}
	var dto ticket.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "TICKET_VALIDATION_FAILED", errs)
		return
	}
	updated, err := c.tickets.Update(r.Context(), id, &dto)
	if err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "TICKET_NOT_FOUND", "ticket not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.TicketToViewModel(updated))
}

func (c *TicketAPIController) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_INVALID_ID", "invalid ticket id")
		return
	}
	var payload struct {
		Status    string `json:"status"`
		ChangedBy string `json:"changed_by"`
		Note      string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_INVALID_JSON", "invalid json")
		return
	}

	changed, err := c.tickets.ChangeStatus(r.Context(), id, ticket.Status(strings.TrimSpace(payload.Status)), payload.ChangedBy, payload.Note)
	if err != nil {
		switch {
		case errors.Is(err, ticket.ErrNotFound):
			_ = httpapi.WriteError(w, http.StatusNotFound, "TICKET_NOT_FOUND", "ticket not found")
		case errors.Is(err, ticket.ErrInvalidTransition):
			_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_INVALID_TRANSITION", "invalid ticket status transition")
		default:
			internalError(w, r, err)
		}
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.TicketToViewModel(changed))
}

func (c *TicketAPIController) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_INVALID_ID", "invalid ticket id")
		return
	}
	var payload struct {
		AssignedTo string `json:"assigned_to"`
		ChangedBy  string `json:"changed_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_INVALID_JSON", "invalid json")
		return
	}
	if strings.TrimSpace(payload.AssignedTo) == "" {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_MISSING_ASSIGNEE", "assigned_to is required")
		return
	}

	assigned, err := c.tickets.Assign(r.Context(), id, payload.AssignedTo, payload.ChangedBy)
	if err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "TICKET_NOT_FOUND", "ticket not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.TicketToViewModel(assigned))
}

func (c *TicketAPIController) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_INVALID_ID", "invalid ticket id")
		return
	}
	var payload struct {
		Text       string `json:"text"`
		Author     string `json:"author"`
		IsInternal bool   `json:"is_internal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_INVALID_JSON", "invalid json")
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_MISSING_COMMENT", "text is required")
		return
	}

	updated, err := c.tickets.AddComment(r.Context(), id, payload.Text, payload.Author, payload.IsInternal)
	if err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "TICKET_NOT_FOUND", "ticket not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.TicketToViewModel(updated))
}

func (c *TicketAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "TICKET_INVALID_ID", "invalid ticket id")
		return
	}
	if _, err := c.tickets.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "TICKET_NOT_FOUND", "ticket not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}
