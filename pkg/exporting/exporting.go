// Package exporting serializes the currently displayed view rows into
// spreadsheet or document files. Exports always reflect what the user sees:
// callers pass the post-filter, post-sort row sequence.
package exporting

// Cell is one named column value of an exported row. Display is the
// formatted table string; Raw is the unformatted value used for
// spreadsheet cells.
type Cell struct {
	Name    string
	Display string
	Raw     any
}

type Row []Cell

// Document is a complete export request.
type Document struct {
	Title string
	// ColumnWidths are positional hints matched to the row cells; missing
	// entries fall back to a default width.
	ColumnWidths []float64
	Rows         []Row
}
