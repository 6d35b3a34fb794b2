package exporting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDoc(n int) Document {
	doc := Document{
		Title:        "Companies Report",
		ColumnWidths: []float64{30, 25, 15},
	}
	names := []string{"BrightWave", "Stellar Dynamics", "NovaDrive"}
	for i := 0; i < n; i++ {
		name := names[i%len(names)]
		doc.Rows = append(doc.Rows, Row{
			{Name: "Name", Display: name, Raw: name},
			{Name: "Email", Display: "info@example.com", Raw: "info@example.com"},
			{Name: "Deals", Display: "4", Raw: 4},
		})
	}
	return doc
}

func TestExcelExportRoundTrip(t *testing.T) {
	data, err := NewExcelExporter().Export(sampleDoc(2))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()

	header, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	require.Equal(t, "Name", header)

	first, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	require.Equal(t, "BrightWave", first)

	// Raw values, not display strings, land in spreadsheet cells.
	deals, err := f.GetCellValue("Sheet1", "C2")
	require.NoError(t, err)
	require.Equal(t, "4", deals)

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

func TestExcelExportEmptyRows(t *testing.T) {
	data, err := NewExcelExporter().Export(Document{Title: "Empty"})
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestPDFExportProducesDocument(t *testing.T) {
	data, err := NewPDFExporter("Amasqis HRMS", 270).Export(sampleDoc(3))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDFExportPaginatesLongReports(t *testing.T) {
	short, err := NewPDFExporter("Amasqis HRMS", 270).Export(sampleDoc(1))
	require.NoError(t, err)

	long, err := NewPDFExporter("Amasqis HRMS", 270).Export(sampleDoc(60))
	require.NoError(t, err)

	// 60 cards cannot fit on one page; the long report must carry more
	// content than the short one.
	require.Greater(t, len(long), len(short))
	require.True(t, bytes.HasPrefix(long, []byte("%PDF")))
}
