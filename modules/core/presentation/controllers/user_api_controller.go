package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/amasqis/hrms/modules/core/domain/aggregates/user"
	"github.com/amasqis/hrms/modules/core/presentation/mappers"
	"github.com/amasqis/hrms/modules/core/services"
	"github.com/amasqis/hrms/pkg/application"
	"github.com/amasqis/hrms/pkg/composables"
	"github.com/amasqis/hrms/pkg/configuration"
	"github.com/amasqis/hrms/pkg/exporting"
	"github.com/amasqis/hrms/pkg/httpapi"
	"github.com/amasqis/hrms/pkg/listview"
	"github.com/amasqis/hrms/pkg/mapping"
	"github.com/amasqis/hrms/pkg/shared"
)

type UserAPIController struct {
	app      application.Application
	users    *services.UserService
	excel    *exporting.ExcelExporter
	pdf      *exporting.PDFExporter
	basePath string
}

func NewUserAPIController(app application.Application) application.Controller {
	conf := configuration.Use()
	return &UserAPIController{
		app:      app,
		users:    app.Service(services.UserService{}).(*services.UserService),
		excel:    exporting.NewExcelExporter(),
		pdf:      exporting.NewPDFExporter(conf.Export.CompanyName, conf.Export.PDFPageBreakAt),
		basePath: "/admin/users",
	}
}

func (c *UserAPIController) Key() string {
	return c.basePath
}

func (c *UserAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/export", c.Export).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}/password", c.ChangePassword).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func userListConfig() listview.Config[user.User] {
	return listview.Config[user.User]{
		Key: func(u user.User) string { return u.ID().String() },
		SearchFields: []func(user.User) string{
			func(u user.User) string { return u.FullName() },
			func(u user.User) string { return u.Email() },
		},
		FilterFields: map[string]func(user.User) string{
			"role":   func(u user.User) string { return string(u.Role()) },
			"status": func(u user.User) string { return string(u.Status()) },
		},
		Columns: []listview.Column[user.User]{
			{
				Name:    "Name",
				Display: func(u user.User) string { return u.FullName() },
				Value:   func(u user.User) any { return u.FullName() },
			},
			{
				Name:    "Email",
				Display: func(u user.User) string { return u.Email() },
				Value:   func(u user.User) any { return u.Email() },
			},
			{
				Name:    "Role",
				Display: func(u user.User) string { return string(u.Role()) },
				Value:   func(u user.User) any { return string(u.Role()) },
			},
			{
				Name:    "Status",
				Display: func(u user.User) string { return string(u.Status()) },
				Value:   func(u user.User) any { return string(u.Status()) },
			},
			{
				Name:    "Created",
				Display: func(u user.User) string { return u.CreatedAt().Format("2006-01-02") },
				Value:   func(u user.User) any { return u.CreatedAt() },
			},
		},
	}
}

func (c *UserAPIController) deriveRows(r *http.Request) ([]listview.Row[user.User], error) {
	entities, err := c.users.GetAll(r.Context())
	if err != nil {
		return nil, err
	}
	params := composables.UseListParams(r, "role", "status")
	return listview.Derive(userListConfig(), entities, params), nil
}

func (c *UserAPIController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.deriveRows(r)
	if err != nil {
		c.internalError(w, r, err)
		return
	}

	pagination := composables.UsePaginated(r)
	total := len(rows)
	start := pagination.Offset
	if start > total {
		start = total
	}
	end := start + pagination.Limit
	if end > total {
		end = total
	}

	items := mapping.MapViewModels(rows[start:end], func(row listview.Row[user.User]) any {
		return mappers.UserToViewModel(row.Raw)
	})
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  pagination.Page,
	})
}

func (c *UserAPIController) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := c.deriveRows(r)
	if err != nil {
		c.internalError(w, r, err)
		return
	}

	doc := exporting.FromListView("Users", userListConfig(), rows, []float64{40, 60, 25, 25, 30})
	format := r.URL.Query().Get("format")
	filename := "users-" + time.Now().Format("2006-01-02")
	if err := exporting.WriteHTTP(w, format, filename, doc, c.excel, c.pdf); err != nil {
		if errors.Is(err, exporting.ErrUnknownFormat) {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "EXPORT_UNKNOWN_FORMAT", "unknown export format")
			return
		}
		c.internalError(w, r, err)
	}
}

func (c *UserAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "USER_INVALID_ID", "invalid user id")
		return
	}
	entity, err := c.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
			return
		}
		c.internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.UserToViewModel(entity))
}

func (c *UserAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto user.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "USER_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "USER_VALIDATION_FAILED", errs)
		return
	}

	created, err := c.users.Create(r.Context(), &dto)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			_ = httpapi.WriteError(w, http.StatusConflict, "USER_EMAIL_CONFLICT", "email already exists")
			return
		}
		c.internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusCreated, mappers.UserToViewModel(created))
}

func (c *UserAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "USER_INVALID_ID", "invalid user id")
		return
	}
	var dto user.UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "USER_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "USER_VALIDATION_FAILED", errs)
		return
	}

	updated, err := c.users.Update(r.Context(), id, &dto)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			_ = httpapi.WriteError(w, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
		case errors.Is(err, user.ErrEmailTaken):
			_ = httpapi.WriteError(w, http.StatusConflict, "USER_EMAIL_CONFLICT", "email already exists")
		default:
			c.internalError(w, r, err)
		}
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.UserToViewModel(updated))
}

func (c *UserAPIController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "USER_INVALID_ID", "invalid user id")
		return
	}
	var dto user.ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "USER_INVALID_JSON", "invalid json")
		return
	}
	if errs, ok := dto.Ok(r.Context()); !ok {
		_ = httpapi.WriteValidationErrors(w, "USER_VALIDATION_FAILED", errs)
		return
	}

	updated, err := c.users.ChangePassword(r.Context(), id, &dto)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
			return
		}
		c.internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, mappers.UserToViewModel(updated))
}

func (c *UserAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseUUID(r)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "USER_INVALID_ID", "invalid user id")
		return
	}
	if _, err := c.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "USER_NOT_FOUND", "user not found")
			return
		}
		c.internalError(w, r, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}

func (c *UserAPIController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	composables.UseLogger(r.Context()).WithError(err).Error("user api request failed")
	_ = httpapi.WriteServerError(w, err)
}
