package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"pelagia/internal/storage"
	"pelagia/pkg/pelagia"
)

const artifactsDir = "runs"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "report":
		return runReport(ctx, args[1:])
	case "agesteps":
		return runAgeSteps(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pelagia.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := pelagia.New(ctx, pelagia.Options{StoreKind: *storeKind, DBPath: *dbPath, ArtifactsDir: artifactsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	fmt.Printf("initialized %s store\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pelagia.db", "sqlite database path")
	years := fs.Int("years", 30, "year count")
	seasons := fs.Int("seasons", 4, "uniform seasons per year")
	offsets := fs.String("season-offsets", "", "per-year season offsets, e.g. 0.5|0.25,0.5,0.75 (overrides -seasons)")
	ages := fs.String("ages", "1,2,3,4,5,6,7,8", "comma-separated age-class labels")
	sexes := fs.Int("sexes", 2, "sex count")
	areaCount := fs.Int("areas", 3, "area count")
	workers := fs.Int("workers", 1, "evaluation workers")
	hook := fs.String("hook", "offset", "life-history hook: offset|logistic-age")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ageLabels, err := parseFloats(*ages)
	if err != nil {
		return fmt.Errorf("parse -ages: %w", err)
	}
	req := pelagia.RunRequest{
		Years:     *years,
		Seasons:   *seasons,
		AgeLabels: ageLabels,
		Sexes:     *sexes,
		Areas:     *areaCount,
		Workers:   *workers,
		Hook:      *hook,
	}
	if *offsets != "" {
		perYear, err := parseSeasonOffsets(*offsets)
		if err != nil {
			return fmt.Errorf("parse -season-offsets: %w", err)
		}
		req.SeasonOffsets = perYear
	}

	client, err := pelagia.New(ctx, pelagia.Options{StoreKind: *storeKind, DBPath: *dbPath, ArtifactsDir: artifactsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("run %s: %d subpopulations, %d cells\nartifacts: %s\n",
		summary.RunID, summary.Subpopulations, summary.Cells, summary.ArtifactsDir)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pelagia.db", "sqlite database path")
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := pelagia.New(ctx, pelagia.Options{StoreKind: *storeKind, DBPath: *dbPath, ArtifactsDir: artifactsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx, *limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	if *jsonOut {
		return printJSON(runs)
	}
	for _, run := range runs {
		fmt.Printf("%s  %s  years=%d seasons=%d ages=%d sexes=%d areas=%d\n",
			run.RunID, run.CreatedAtUTC, run.Years, run.MaxSeasons, len(run.AgeLabels), run.Sexes, run.Areas)
	}
	return nil
}

func runReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "pelagia.db", "sqlite database path")
	runID := fs.String("run-id", "", "run to report")
	jsonOut := fs.Bool("json", false, "emit report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("-run-id is required")
	}

	client, err := pelagia.New(ctx, pelagia.Options{StoreKind: *storeKind, DBPath: *dbPath, ArtifactsDir: artifactsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	reports, err := client.Report(ctx, *runID)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(reports)
	}
	for _, report := range reports {
		fmt.Printf("subpopulation %d (sex %d, area %d)\n", report.ObjectID, report.Sex, report.AreaIndex)
		for _, cell := range report.Cells {
			fmt.Printf("  year %d season %d age %d: %g\n", cell.Year, cell.Season, cell.Age, cell.Value)
		}
	}
	return nil
}

func runAgeSteps(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("agesteps", flag.ContinueOnError)
	years := fs.Int("years", 7, "year count (uniform schedule)")
	seasons := fs.Int("seasons", 3, "seasons per year (uniform schedule)")
	firstAge := fs.Float64("first-age", 1, "first age")
	lastAge := fs.Float64("last-age", 7, "last age")
	stamps := fs.String("stamps", "", "per-year timestamps, e.g. 0.3333,0.6666|0.5 (data-driven schedule)")
	jsonOut := fs.Bool("json", false, "emit schedule as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := pelagia.AgeStepRequest{
		Years:    *years,
		Seasons:  *seasons,
		FirstAge: *firstAge,
		LastAge:  *lastAge,
	}
	if *stamps != "" {
		perYear, err := parseSeasonOffsets(*stamps)
		if err != nil {
			return fmt.Errorf("parse -stamps: %w", err)
		}
		req.Stamps = make(map[int][]float64, len(perYear))
		for year, values := range perYear {
			req.Stamps[year] = values
		}
	}

	// AgeSteps needs no store; a throwaway in-memory client keeps one entry
	// point for the whole drive interface.
	client, err := pelagia.New(context.Background(), pelagia.Options{StoreKind: "memory"})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	plot, err := client.AgeSteps(req)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(plot)
	}
	for _, year := range plot {
		fmt.Printf("year %d:\n", year.Year)
		for _, point := range year.Points {
			fmt.Printf("%g ", point.Value)
		}
		fmt.Println()
	}
	return nil
}

// parseFloats parses a comma-separated float list.
func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// parseSeasonOffsets parses a pipe-separated list of per-year comma-separated
// float lists, e.g. "0.5|0.25,0.5,0.75".
func parseSeasonOffsets(s string) ([][]float64, error) {
	yearSpecs := strings.Split(s, "|")
	perYear := make([][]float64, 0, len(yearSpecs))
	for _, spec := range yearSpecs {
		values, err := parseFloats(spec)
		if err != nil {
			return nil, err
		}
		perYear = append(perYear, values)
	}
	return perYear, nil
}

func printJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: pelagiactl <init|run|runs|report|agesteps> [flags]", msg)
}
