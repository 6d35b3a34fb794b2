package exporting

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders rows as a paginated card/summary report. A page
// break is triggered once the vertical cursor exceeds PageBreakAt, and
// every footer stamps "Page N of total" once the total is known.
type PDFExporter struct {
	CompanyName string
	// PageBreakAt is the y position (mm) beyond which a new page starts.
	PageBreakAt float64
	now         func() time.Time
}

func NewPDFExporter(companyName string, pageBreakAt float64) *PDFExporter {
	return &PDFExporter{
		CompanyName: companyName,
		PageBreakAt: pageBreakAt,
		now:         time.Now,
	}
}

func (e *PDFExporter) Export(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// {nb} placeholders are replaced with the total page count after
	// generation completes.
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	now := e.now()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 8, e.CompanyName)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 13)
	pdf.Cell(0, 7, doc.Title)
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Generated: %s %s", now.Format("2006-01-02"), now.Format("15:04:05")))
	pdf.Ln(5)
	pdf.Cell(0, 5, fmt.Sprintf("Total Records: %d", len(doc.Rows)))
	pdf.Ln(10)

	for _, row := range doc.Rows {
		if pdf.GetY() > e.PageBreakAt {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "B", 10)
		if len(row) > 0 {
			pdf.Cell(0, 6, row[0].Display)
			pdf.Ln(6)
		}
		pdf.SetFont("Helvetica", "", 9)
		for _, cell := range row[min(1, len(row)):] {
			pdf.Cell(0, 5, fmt.Sprintf("%s: %s", cell.Name, cell.Display))
			pdf.Ln(5)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render pdf")
	}
	return buf.Bytes(), nil
}
