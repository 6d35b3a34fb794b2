package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/amasqis/hrms/modules/crm/domain/aggregates/client"
	"github.com/amasqis/hrms/modules/crm/presentation/mappers"
	"github.com/amasqis/hrms/modules/crm/services"
	"github.com/amasqis/hrms/pkg/application"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/httpapi"
	"github.com/amasqis/hrms/pkg/listview"
	"github.com/amasqis/hrms/pkg/mapping"
	"github.com/amasqis/hrms/pkg/shared"
)

type ClientAPIController struct {
	app      application.Application
	clients  *services.ClientService
	basePath string
}

func NewClientAPIController(app application.Application) application.Controller {
	return &ClientAPIController{
		app:      app,
		clients:  app.Service(services.ClientService{}).(*services.ClientService),
		basePath: "/admin/clients",
	}
}

func (c *ClientAPIController) Key() string {
	return c.basePath
}

func (c *ClientAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func clientListConfig() listview.Config[client.Client] {
	return listview.Config[client.Client]{
		Key: func(e client.Client) string { return e.ID().String() },
		SearchFields: []func(client.Client) string{
			func(e client.Client) string { return e.Name() },
			func(e client.Client) string { return e.Email() },
			func(e client.Client) string { return e.Company() },
		},
		FilterFields: map[string]func(client.Client) string{
			"status": func(e client.Client) string { return string(e.Status()) },
		},
		Columns: []listview.Column[client.Client]{
			{
				Name:    "Name",
				Display: func(e client.Client) string { return e.Name() },
				Value:   func(e client.Client) any { return e.Name() },
			},
			{
				Name:    "Email",
				Display: func(e client.Client) string { return e.Email() },
				Value:   func(e client.Client) any { return e.Email() },
			},
			{
				Name:    "Company",
				Display: func(e client.Client) string { return e.Company() },
				Value:   func(e client.Client) any { return e.Company() },
			},
			{
				Name:    "Status",
				Display: func(e client.Client) string { return string(e.Status()) },
				Value:   func(e client.Client) any { return string(e.Status()) },
			},
		},
	}
}

func (c *ClientAPIController) List(w http.ResponseWriter, r *http.Request) {
	entities, err := c.clients.GetAll(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}

	params := composables.UseListParams(r, "status")
	rows := listview.Derive(clientListConfig(), entities, params)

	pagination := composables.UsePaginated(r)
	total := len(rows)
	start := min(pagination.Offset, total)
	end := min(start+pagination.Limit, total)

	items := mapping.MapViewModels(rows[start:end], func(row listview.Row[client.Client]) any {
		return mappers.ClientToViewModel(row.Raw)
	})
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  pagination.Page,
	})
}

func (c *ClientAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "CLIENT_INVALID_ID", "invalid client id")
		return
	}
	entity, err := c.clients.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "CLIENT_NOT_FOUND", "client not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.ClientToViewModel(entity))
}

func (c *ClientAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto client.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "CLIENT_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "CLIENT_VALIDATION_FAILED", errs)
		return
	}
	created, err := c.clients.Create(r.Context(), &dto)
	if err != nil {
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusCreated, mappers.ClientToViewModel(created))
}

func (c *ClientAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "CLIENT_INVALID_ID", "invalid client id")
		return
	}
	var dto client.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "CLIENT_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "CLIENT_VALIDATION_FAILED", errs)
		return
	}
	updated, err := c.clients.Update(r.Context(), id, &dto)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "CLIENT_NOT_FOUND", "client not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.ClientToViewModel(updated))
}

func (c *ClientAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "CLIENT_INVALID_ID", "invalid client id")
		return
	}
	if _, err := c.clients.Delete(r.Context(), id); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "CLIENT_NOT_FOUND", "client not found")
			return
		}
		internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}
