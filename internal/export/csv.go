package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ldurand/paydash/backend/internal/domain"
)

// utf8BOM lets spreadsheet applications recognise the encoding.
const utf8BOM = "\uFEFF"

// WriteCSV streams the transactions as UTF-8 CSV with a leading BOM.
func WriteCSV(w io.Writer, transactions []domain.Transaction) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(fullHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, tx := range transactions {
		if err := writer.Write(fullRow(tx)); err != nil {
			return fmt.Errorf("write csv row %s: %w", tx.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
