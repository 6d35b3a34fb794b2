package composables

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/amasqis/hrms/pkg/configuration"
	"github.com/amasqis/hrms/pkg/constants"
	"github.com/amasqis/hrms/pkg/listview"
)

type PaginationParams struct {
	Limit  int
	Offset int
	Page   int
}

// UsePaginated reads page/limit query parameters, clamped to the configured
// page-size bounds.
func UsePaginated(r *http.Request) PaginationParams {
	conf := configuration.Use()

	limit := conf.PageSize
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > conf.MaxPageSize {
		limit = conf.MaxPageSize
	}

	page := 1
	if v := strings.TrimSpace(r.URL.Query().Get("page")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			page = parsed
		}
	}

	return PaginationParams{
		Limit:  limit,
		Offset: (page - 1) * limit,
		Page:   page,
	}
}

// UseListParams maps the conventional list query parameters (search, sort,
// plus any named filters) onto listview parameters. Absent filters default
// to the "all" sentinel, which disables them.
func UseListParams(r *http.Request, filterFields ...string) listview.Params {
	q := r.URL.Query()

	filters := make(map[string]string, len(filterFields))
	for _, field := range filterFields {
		v := strings.TrimSpace(q.Get(field))
		if v == "" {
			v = listview.FilterAll
		}
		filters[field] = v
	}

	order := strings.ToLower(strings.TrimSpace(q.Get("order")))
	if order != listview.OrderDesc {
		order = listview.OrderAsc
	}

	return listview.Params{
		Search:    strings.TrimSpace(q.Get("search")),
		Filters:   filters,
		SortBy:    strings.TrimSpace(q.Get("sort")),
		SortOrder: order,
	}
}

// UseLogger returns the request-scoped logger or falls back to the root one.
func UseLogger(ctx context.Context) logrus.FieldLogger {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		return configuration.Use().Logger()
	}
	return logger.(logrus.FieldLogger)
}
