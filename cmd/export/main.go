package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ldurand/paydash/backend/internal/domain"
	"github.com/ldurand/paydash/backend/internal/export"
	"github.com/ldurand/paydash/backend/internal/service"
	"github.com/ldurand/paydash/backend/internal/store"
)

var (
	configPath  string
	datasetPath string
	format      string
	outputPath  string
	statusFlag  string
	typeFlag    string
	searchTerm  string
	dateFrom    string
	dateTo      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paydash-export",
	Short: "Export dashboard transactions to document formats",
	Long: `Paydash Export renders a transaction dataset as CSV, spreadsheet, PDF,
plain table, markdown, or a status chart. Without a dataset file the
built-in demo transactions are used.`,
	RunE: runExport,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "optional TOML config file with export defaults")
	rootCmd.Flags().StringVar(&datasetPath, "dataset", "", "path to a transactions.json dataset")
	rootCmd.Flags().StringVar(&format, "format", "", "output format: csv, xlsx, pdf, table, markdown, chart")
	rootCmd.Flags().StringVar(&outputPath, "output", "", "output file; '-' or empty writes to stdout")
	rootCmd.Flags().StringVar(&statusFlag, "status", "", "only include transactions with this status")
	rootCmd.Flags().StringVar(&typeFlag, "type", "", "only include transactions of this type")
	rootCmd.Flags().StringVar(&searchTerm, "search", "", "case-insensitive search term")
	rootCmd.Flags().StringVar(&dateFrom, "date-from", "", "inclusive lower bound (RFC 3339)")
	rootCmd.Flags().StringVar(&dateTo, "date-to", "", "inclusive upper bound (RFC 3339)")
}

func runExport(cmd *cobra.Command, args []string) error {
	defaults, err := loadDefaults(configPath)
	if err != nil {
		return err
	}
	if format == "" {
		format = defaults.Format
	}
	switch format {
	case "csv", "xlsx", "pdf", "table", "markdown", "chart":
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	if outputPath == "" && defaults.OutputDir != "" {
		outputPath = filepath.Join(defaults.OutputDir, "transactions."+extensionFor(format))
	}

	source, err := buildSource()
	if err != nil {
		return err
	}

	filter, err := buildFilter()
	if err != nil {
		return err
	}

	ctx := context.Background()
	svc := service.NewTransactionService(source)
	transactions, err := svc.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	out, closeFn, err := openOutput(outputPath)
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		err = export.WriteCSV(out, transactions)
	case "xlsx":
		err = export.WriteExcel(out, transactions)
	case "pdf":
		err = export.WritePDF(out, transactions, time.Now())
	case "table":
		export.WriteTable(out, transactions)
	case "markdown":
		_, err = io.WriteString(out, export.MarkdownTable(transactions))
	case "chart":
		var stats domain.Stats
		stats, err = svc.Stats(ctx)
		if err == nil {
			err = export.WriteStatsChart(out, stats)
		}
	}
	if err != nil {
		_ = closeFn()
		return fmt.Errorf("render %s export: %w", format, err)
	}
	if err := closeFn(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	if outputPath != "" && outputPath != "-" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(transactions), outputPath)
	}
	return nil
}

type exportDefaults struct {
	Format    string `mapstructure:"format"`
	OutputDir string `mapstructure:"output_dir"`
}

// loadDefaults reads the optional TOML config file. Flags always win over
// file values.
func loadDefaults(path string) (exportDefaults, error) {
	v := viper.New()
	v.SetDefault("format", "table")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return exportDefaults{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var defaults exportDefaults
	if err := v.Unmarshal(&defaults); err != nil {
		return exportDefaults{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return defaults, nil
}

func buildSource() (service.TransactionSource, error) {
	if datasetPath != "" {
		return store.NewMemorySourceFromFile(datasetPath)
	}
	return store.NewMemorySource(store.SeedTransactions())
}

func buildFilter() (*service.TransactionFilter, error) {
	filter := service.TransactionFilter{
		Status:     domain.TransactionStatus(statusFlag),
		Type:       domain.TransactionType(typeFlag),
		SearchTerm: searchTerm,
	}
	if statusFlag != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("unknown status %q", statusFlag)
	}
	if typeFlag != "" && !filter.Type.Valid() {
		return nil, fmt.Errorf("unknown type %q", typeFlag)
	}

	if dateFrom != "" {
		ts, err := time.Parse(time.RFC3339, dateFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid date-from: %w", err)
		}
		filter.DateFrom = &ts
	}
	if dateTo != "" {
		ts, err := time.Parse(time.RFC3339, dateTo)
		if err != nil {
			return nil, fmt.Errorf("invalid date-to: %w", err)
		}
		filter.DateTo = &ts
	}

	if filter.IsZero() {
		return nil, nil
	}
	return &filter, nil
}

// openOutput resolves the writer for the rendered document. The returned
// close func reports flush failures; stdout is never closed.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, f.Close, nil
}

func extensionFor(format string) string {
	switch format {
	case "xlsx":
		return "xlsx"
	case "pdf":
		return "pdf"
	case "markdown":
		return "md"
	case "chart":
		return "png"
	case "table":
		return "txt"
	default:
		return "csv"
	}
}
