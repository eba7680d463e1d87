package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/talvik-analytics/shipkpi/internal/domain"
	"github.com/talvik-analytics/shipkpi/internal/export"
	"github.com/talvik-analytics/shipkpi/internal/metrics"
	"github.com/talvik-analytics/shipkpi/internal/workbook"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "analyze",
		Usage: "Run shipment KPI calculations from the command line",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Calculate metrics for a workbook and write report files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Usage:    "Path to the .xlsx workbook",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "sheet",
						Usage: "Sheet name (defaults to the first sheet)",
					},
					&cli.IntFlag{
						Name:  "header-row",
						Usage: "Zero-based header row index (-1 to auto-detect)",
						Value: -1,
					},
					&cli.StringFlag{
						Name:  "mapping",
						Usage: "JSON file mapping field keys to column headers (defaults to header suggestion)",
					},
					&cli.StringFlag{
						Name:  "rules",
						Usage: "JSON file with exclusion rules (defaults to built-in rules)",
					},
					&cli.StringFlag{
						Name:  "filters",
						Usage: "JSON file with filters (defaults to no filters)",
					},
					&cli.StringFlag{
						Name:    "output-dir",
						Usage:   "Directory report files are written to",
						Value:   "./data/output",
						EnvVars: []string{"APP_OUTPUT_DIR"},
					},
				},
				Action: runAnalysis,
			},
			{
				Name:  "presets",
				Usage: "Manage stored calculation presets",
				Subcommands: []*cli.Command{
					{
						Name:  "seed",
						Usage: "Load preset JSON files into the database",
						Flags: []cli.Flag{
							newDBURLFlag(),
							&cli.StringFlag{
								Name:    "data-dir",
								Usage:   "Directory containing preset JSON files",
								Value:   "./data/seeds/presets",
								EnvVars: []string{"PRESET_SEED_DIR"},
							},
						},
						Before: initDB,
						After:  closeDB,
						Action: seedPresets,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runAnalysis(c *cli.Context) error {
	wb, err := workbook.Open(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	sheet := c.String("sheet")
	if sheet == "" {
		if sheet, err = wb.FirstSheet(); err != nil {
			return err
		}
	}

	grid, err := wb.Grid(sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	headerRow := c.Int("header-row")
	if headerRow < 0 {
		candidate := workbook.DetectHeaderRow(grid, 100)
		headerRow = candidate.RowIndex
		log.Printf("detected header row %d (confidence %.2f)", candidate.RowIndex, candidate.Confidence)
	}
	rows, headers := workbook.RowsToRecords(grid, headerRow)

	mapping := workbook.SuggestMapping(headers)
	if path := c.String("mapping"); path != "" {
		if err := readJSONFile(path, &mapping); err != nil {
			return fmt.Errorf("failed to read mapping file: %w", err)
		}
	}
	rules := domain.DefaultRules()
	if path := c.String("rules"); path != "" {
		if err := readJSONFile(path, &rules); err != nil {
			return fmt.Errorf("failed to read rules file: %w", err)
		}
	}
	filters := domain.DefaultFilters()
	if path := c.String("filters"); path != "" {
		if err := readJSONFile(path, &filters); err != nil {
			return fmt.Errorf("failed to read filters file: %w", err)
		}
	}

	result := metrics.NewCalculator().Calculate(rows, mapping, rules, filters)

	outDir := c.String("output-dir")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := export.WriteMonthlyCSV(filepath.Join(outDir, "monthly.csv"), result.Monthly); err != nil {
		return err
	}
	if err := export.WriteRowsCSV(filepath.Join(outDir, "rows.csv"), result.Rows); err != nil {
		return err
	}
	if err := export.WriteExcludedCSV(filepath.Join(outDir, "excluded.csv"), result.ExcludedRows); err != nil {
		return err
	}
	if err := export.WriteReportXLSX(filepath.Join(outDir, "report.xlsx"), result); err != nil {
		return err
	}

	log.Printf("processed %d rows: %d valid, %d included, %d monthly buckets",
		result.Quality.RawRows, result.Quality.ValidRows, result.Quality.IncludedRows, len(result.Monthly))
	for _, ex := range result.Quality.Exclusions {
		log.Printf("  excluded %d: %s", ex.Count, ex.Reason)
	}
	log.Printf("reports written to %s", outDir)
	return nil
}

func seedPresets(c *cli.Context) error {
	db, ok := c.Context.Value(dbKey).(*sql.DB)
	if !ok || db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	paths, err := filepath.Glob(filepath.Join(c.String("data-dir"), "*.json"))
	if err != nil {
		return fmt.Errorf("failed to list preset files: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no preset files found in %s", c.String("data-dir"))
	}

	const query = `
		INSERT INTO presets (id, name, mapping, rules, filters, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			mapping = EXCLUDED.mapping,
			rules = EXCLUDED.rules,
			filters = EXCLUDED.filters,
			updated_at = NOW()
	`

	for _, path := range paths {
		var preset domain.Preset
		if err := readJSONFile(path, &preset); err != nil {
			return fmt.Errorf("failed to read preset %s: %w", path, err)
		}
		if preset.ID == "" || preset.Name == "" {
			return fmt.Errorf("preset %s is missing an id or name", path)
		}

		mapping, err := json.Marshal(preset.Mapping)
		if err != nil {
			return fmt.Errorf("failed to encode mapping for %s: %w", preset.ID, err)
		}
		rules, err := json.Marshal(preset.Rules)
		if err != nil {
			return fmt.Errorf("failed to encode rules for %s: %w", preset.ID, err)
		}
		filters, err := json.Marshal(preset.Filters)
		if err != nil {
			return fmt.Errorf("failed to encode filters for %s: %w", preset.ID, err)
		}
		createdAt := preset.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		if _, err := db.ExecContext(c.Context, query, preset.ID, preset.Name, mapping, rules, filters, createdAt); err != nil {
			return fmt.Errorf("failed to upsert preset %s: %w", preset.ID, err)
		}
		log.Printf("seeded preset %s (%s)", preset.ID, preset.Name)
	}

	log.Printf("seeded %d presets", len(paths))
	return nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
