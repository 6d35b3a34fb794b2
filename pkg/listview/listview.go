// Package listview derives display-ready view rows from raw entity
// collections: case-insensitive search over configured fields, exact-match
// filters with an "all" sentinel, and stable sorting.
package listview

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	FilterAll = "all"
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

type Params struct {
	Search    string
	Filters   map[string]string
	SortBy    string
	SortOrder string
}

// Column describes one named view column: a formatted display string for
// tables and the raw value for export cells and sorting.
type Column[T any] struct {
	Name    string
	Display func(T) string
	Value   func(T) any
}

type Config[T any] struct {
	Key          func(T) string
	SearchFields []func(T) string
	FilterFields map[string]func(T) string
	Columns      []Column[T]
}

// Row is a flattened projection of one record. Raw keeps a back-reference
// to the original record for action handlers and the export adapter.
type Row[T any] struct {
	Key     string
	Display map[string]string
	Raw     T
}

// Derive applies search, filters, and sort, then projects rows. Recomputing
// with identical inputs yields identical output, so results are safe to
// memoize.
func Derive[T any](cfg Config[T], records []T, params Params) []Row[T] {
	kept := make([]T, 0, len(records))
	for _, rec := range records {
		if !matchesSearch(cfg, rec, params.Search) {
			continue
		}
		if !matchesFilters(cfg, rec, params.Filters) {
			continue
		}
		kept = append(kept, rec)
	}

	sortRecords(cfg, kept, params)

	rows := make([]Row[T], 0, len(kept))
	for _, rec := range kept {
		display := make(map[string]string, len(cfg.Columns))
		for _, col := range cfg.Columns {
			display[col.Name] = col.Display(rec)
		}
		rows = append(rows, Row[T]{
			Key:     cfg.Key(rec),
			Display: display,
			Raw:     rec,
		})
	}
	return rows
}

func matchesSearch[T any](cfg Config[T], rec T, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range cfg.SearchFields {
		if strings.Contains(strings.ToLower(field(rec)), needle) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](cfg Config[T], rec T, filters map[string]string) bool {
	for name, want := range filters {
		if want == "" || want == FilterAll {
			continue
		}
		field, ok := cfg.FilterFields[name]
		if !ok {
			continue
		}
		if field(rec) != want {
			return false
		}
	}
	return true
}

func sortRecords[T any](cfg Config[T], records []T, params Params) {
	if params.SortBy == "" {
		return
	}
	var value func(T) any
	for _, col := range cfg.Columns {
		if col.Name == params.SortBy {
			value = col.Value
			break
		}
	}
	if value == nil {
		return
	}

	desc := params.SortOrder == OrderDesc
	sort.SliceStable(records, func(i, j int) bool {
		a, b := value(records[i]), value(records[j])
		if desc {
			// Reverse the comparator, not the final slice, so ties keep
			// their original relative order.
			return lessValue(b, a)
		}
		return lessValue(a, b)
	})
}

func lessValue(a, b any) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af < bf
		}
	}
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return strings.ToLower(av) < strings.ToLower(bv)
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Before(bv)
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
