package export

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/ldurand/paydash/backend/internal/domain"
)

// WriteTable renders the transactions as an ASCII table, the format used by
// the export CLI when printing to a terminal.
func WriteTable(w io.Writer, transactions []domain.Transaction) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(compactHeaders)
	for _, tx := range transactions {
		table.Append(compactRow(tx))
	}
	table.Render()
}

// MarkdownTable renders the transactions as a markdown table string.
func MarkdownTable(transactions []domain.Transaction) string {
	table := tablewriter.NewWriter(io.Discard)
	table.SetHeader(compactHeaders)
	for _, tx := range transactions {
		table.Append(compactRow(tx))
	}
	return table.RenderFormat(tablewriter.FormatMarkdown)
}
