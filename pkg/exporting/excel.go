package exporting

import (
	"bytes"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

const (
	excelSheet         = "Sheet1"
	defaultColumnWidth = 20.0
)

// ExcelExporter renders one worksheet with a header row and one row per
// record, using raw cell values.
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Export(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if len(doc.Rows) > 0 {
		header := doc.Rows[0]
		for i, cell := range header {
			name, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				return nil, errors.Wrap(err, "resolve header cell")
			}
			if err := f.SetCellValue(excelSheet, name, cell.Name); err != nil {
				return nil, errors.Wrap(err, "write header cell")
			}

			width := defaultColumnWidth
			if i < len(doc.ColumnWidths) && doc.ColumnWidths[i] > 0 {
				width = doc.ColumnWidths[i]
			}
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return nil, errors.Wrap(err, "resolve column name")
			}
			if err := f.SetColWidth(excelSheet, col, col, width); err != nil {
				return nil, errors.Wrap(err, "set column width")
			}
		}
	}

	for r, row := range doc.Rows {
		for c, cell := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, errors.Wrap(err, "resolve cell")
			}
			if err := f.SetCellValue(excelSheet, name, cell.Raw); err != nil {
				return nil, errors.Wrap(err, "write cell")
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}
