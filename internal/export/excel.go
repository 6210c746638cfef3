package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ldurand/paydash/backend/internal/domain"
)

const sheetName = "Transactions"

var columnWidths = []float64{12, 12, 10, 20, 25, 15, 15, 8, 12, 18, 35, 15}

// WriteExcel renders the transactions as a single-sheet xlsx workbook.
func WriteExcel(w io.Writer, transactions []domain.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, header := range fullHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("set header %q: %w", header, err)
		}
	}

	for row, tx := range transactions {
		for col, value := range fullRow(tx) {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("set cell for %s: %w", tx.ID, err)
			}
		}
	}

	for col, width := range columnWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
