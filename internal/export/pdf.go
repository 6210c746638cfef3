package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ldurand/paydash/backend/internal/domain"
)

var pdfColumnWidths = []float64{22, 22, 40, 30, 35, 26, 45, 30}

// WritePDF renders the transactions as a landscape A4 table with a title and
// the export date, one row per record.
func WritePDF(w io.Writer, transactions []domain.Transaction, now time.Time) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("Liste des Transactions"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Date d'export: %s", exportDate(now))))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(63, 81, 181)
	pdf.SetTextColor(255, 255, 255)
	for i, header := range compactHeaders {
		pdf.CellFormat(pdfColumnWidths[i], 7, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for rowIdx, tx := range transactions {
		fill := rowIdx%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for i, value := range compactRow(tx) {
			pdf.CellFormat(pdfColumnWidths[i], 6, tr(value), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
