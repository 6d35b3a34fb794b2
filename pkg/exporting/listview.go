package exporting

import "github.com/amasqis/hrms/pkg/listview"

// FromListView turns derived view rows into an export document, so files
// always mirror the filtered and sorted table the user is looking at.
func FromListView[T any](title string, cfg listview.Config[T], rows []listview.Row[T], widths []float64) Document {
	doc := Document{
		Title:        title,
		ColumnWidths: widths,
		Rows:         make([]Row, 0, len(rows)),
	}
	for _, row := range rows {
		cells := make(Row, 0, len(cfg.Columns))
		for _, col := range cfg.Columns {
			cells = append(cells, Cell{
				Name:    col.Name,
				Display: row.Display[col.Name],
				Raw:     col.Value(row.Raw),
			})
		}
		doc.Rows = append(doc.Rows, cells)
	}
	return doc
}
