package exporting

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
)

const (
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

var ErrUnknownFormat = errors.New("unknown export format")

// WriteHTTP renders doc in the requested format and writes it as a file
// download. The exporters carry deployment-level settings (company name,
// page break threshold), so callers pass them in.
func WriteHTTP(w http.ResponseWriter, format, filename string, doc Document, excel *ExcelExporter, pdf *PDFExporter) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatExcel, "xlsx", "":
		payload, err := excel.Export(doc)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".xlsx"))
		_, err = w.Write(payload)
		return err
	case FormatPDF:
		payload, err := pdf.Export(doc)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".pdf"))
		_, err = w.Write(payload)
		return err
	default:
		return ErrUnknownFormat
	}
}
