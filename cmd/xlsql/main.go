// Package main provides the xlsql command line entry point.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/rushairer/xlsql"
	"github.com/rushairer/xlsql/monitoring"
	xlsxsource "github.com/rushairer/xlsql/xlsx"
)

// Version 构建时通过 -ldflags 注入
var Version = "dev"

var (
	columnFilters []string
	sheetFilters  []string
	batchSize     int
	driverName    string
	dsn           string
	force         bool
	verbose       bool
	metricsAddr   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xlsql SPREADSHEET [DATABASE]",
		Short: "Convert an xlsx workbook into a relational database",
		Long: `xlsql converts an Excel workbook into a relational database:
one table per sheet, one column per heading, rows inserted in original order.

Without DATABASE a SQLite file is created next to the spreadsheet, named
after it with a .db extension.`,
		Version: Version,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    run,
	}

	rootCmd.Flags().StringArrayVarP(&columnFilters, "column", "c", nil, "Import only the named columns (raw heading or normalized name, repeatable)")
	rootCmd.Flags().StringArrayVarP(&sheetFilters, "sheet", "s", nil, "Import only the named sheets (raw name or normalized name, repeatable)")
	rootCmd.Flags().IntVar(&batchSize, "batch-size", xlsql.DefaultBatchSize, "Rows buffered between bulk inserts")
	rootCmd.Flags().StringVar(&driverName, "driver", "sqlite", "Destination driver: sqlite, mysql, postgres")
	rootCmd.Flags().StringVar(&dsn, "dsn", "", "Destination DSN (required for mysql and postgres)")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing SQLite destination file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print per-sheet progress diagnostics")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run (e.g. :9090)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	db, sqlDriver, err := openDestination(args)
	if err != nil {
		return err
	}
	defer db.Close()

	source, err := xlsxsource.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer source.Close()

	config := xlsql.Config{
		ColumnFilters: columnFilters,
		SheetFilters:  sheetFilters,
		BatchSize:     batchSize,
	}

	importer, err := xlsql.NewImporter(xlsql.NewSQLBatchProcessor(db, sqlDriver), config)
	if err != nil {
		return err
	}
	importer.WithLogger(xlsql.NewStdLogger(log.New(os.Stderr, "", 0), verbose))

	if metricsAddr != "" {
		metrics := monitoring.NewPrometheusMetrics()
		if err := metrics.StartServer(metricsAddr); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer metrics.StopServer()
		importer.WithMetricsReporter(metrics)
	}

	results, err := importer.ImportWorkbook(context.Background(), source)
	if err != nil {
		return err
	}

	for _, result := range results {
		fmt.Printf("%s: %d rows -> %s (%s)\n",
			result.Sheet, result.Rows, result.Table, strings.Join(result.Columns, ", "))
	}

	return nil
}

// openDestination 按 --driver 打开目标数据库。
// sqlite 目标默认写到与输入同名的 .db 文件，已存在时需要 --force 覆盖。
func openDestination(args []string) (*sql.DB, xlsql.SQLDriver, error) {
	switch driverName {
	case "sqlite":
		dbPath := defaultDatabasePath(args[0])
		if len(args) == 2 {
			dbPath = args[1]
		}
		if _, err := os.Stat(dbPath); err == nil {
			if !force {
				return nil, nil, fmt.Errorf("database %s already exists, use --force to overwrite", dbPath)
			}
			if err := os.Remove(dbPath); err != nil {
				return nil, nil, fmt.Errorf("failed to remove existing database: %w", err)
			}
		}
		db, err := sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return db, xlsql.DefaultSQLiteDriver, nil
	case "mysql":
		if dsn == "" {
			return nil, nil, fmt.Errorf("--dsn is required for driver mysql")
		}
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return db, xlsql.DefaultMySQLDriver, nil
	case "postgres":
		if dsn == "" {
			return nil, nil, fmt.Errorf("--dsn is required for driver postgres")
		}
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return db, xlsql.DefaultPostgreSQLDriver, nil
	default:
		return nil, nil, fmt.Errorf("invalid driver: %s (must be sqlite, mysql, or postgres)", driverName)
	}
}

// defaultDatabasePath 把输入文件的扩展名换成 .db
func defaultDatabasePath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".db"
}
