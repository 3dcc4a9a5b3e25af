// Package pelagia is the public client surface for running fisheries
// population simulations: construct a grid, partition a population over
// sexes and areas, evaluate every real cell, and persist and export the
// finalize reports.
package pelagia

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pelagia/internal/agestep"
	"pelagia/internal/grid"
	"pelagia/internal/lifemath"
	"pelagia/internal/model"
	"pelagia/internal/stats"
	"pelagia/internal/stock"
	"pelagia/internal/storage"
)

const defaultArtifactsDir = "runs"

type Options struct {
	StoreKind    string
	DBPath       string
	ArtifactsDir string
}

type Client struct {
	store        storage.Store
	artifactsDir string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	store, err := storage.NewStore(opts.StoreKind, opts.DBPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	artifactsDir := opts.ArtifactsDir
	if artifactsDir == "" {
		artifactsDir = defaultArtifactsDir
	}
	return &Client{store: store, artifactsDir: artifactsDir}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// RunRequest describes one simulation pass. SeasonOffsets, when supplied,
// selects the variable (jagged) grid and takes precedence over Seasons.
type RunRequest struct {
	Years         int
	Seasons       int
	SeasonOffsets [][]float64
	AgeLabels     []float64
	Sexes         int
	Areas         int
	Workers       int
	Hook          string
}

type RunSummary struct {
	RunID          string
	ArtifactsDir   string
	Subpopulations int
	Cells          int
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Areas <= 0 {
		return RunSummary{}, errors.New("at least one area is required")
	}
	if len(req.AgeLabels) == 0 {
		return RunSummary{}, errors.New("age labels are required")
	}

	ids := grid.NewIDSource()
	newGrid := func() (grid.TimeGrid, error) {
		if req.SeasonOffsets != nil {
			return grid.NewVariable(ids, req.SeasonOffsets, len(req.AgeLabels))
		}
		return grid.NewFixed(ids, req.Years, req.Seasons, len(req.AgeLabels))
	}

	areas := make([]*stock.Area, 0, req.Areas)
	for i := 0; i < req.Areas; i++ {
		g, err := newGrid()
		if err != nil {
			return RunSummary{}, err
		}
		areas = append(areas, stock.NewArea(g))
	}

	popGrid, err := newGrid()
	if err != nil {
		return RunSummary{}, err
	}
	hook, err := hookFor(req.Hook, req.AgeLabels)
	if err != nil {
		return RunSummary{}, err
	}
	pop, err := stock.NewPopulation(stock.Config{
		Grid:      popGrid,
		AgeLabels: req.AgeLabels,
		IDs:       ids,
		Hook:      hook,
		Workers:   req.Workers,
	})
	if err != nil {
		return RunSummary{}, err
	}

	if err := pop.Partition(req.Sexes, areas); err != nil {
		return RunSummary{}, err
	}
	if err := pop.EvaluateAll(ctx); err != nil {
		return RunSummary{}, err
	}
	reports, err := pop.Finalize()
	if err != nil {
		return RunSummary{}, err
	}

	now := time.Now().UTC()
	run := storage.Stamp(model.RunRecord{
		RunID:        uuid.NewString(),
		CreatedAtUTC: now.Format(time.RFC3339),
		Years:        popGrid.Years(),
		Seasons:      req.Seasons,
		MaxSeasons:   popGrid.MaxSeasons(),
		AgeLabels:    req.AgeLabels,
		Sexes:        req.Sexes,
		Areas:        req.Areas,
		Workers:      req.Workers,
		Hook:         req.Hook,
	})

	if err := c.store.SaveRun(ctx, run); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveReports(ctx, run.RunID, reports); err != nil {
		return RunSummary{}, err
	}

	runDir, err := stats.WriteRunArtifacts(c.artifactsDir, stats.RunArtifacts{Run: run, Reports: reports})
	if err != nil {
		return RunSummary{}, err
	}
	if err := stats.AppendRunIndex(c.artifactsDir, stats.RunIndexEntry{
		RunID:        run.RunID,
		Years:        run.Years,
		MaxSeasons:   run.MaxSeasons,
		Ages:         len(run.AgeLabels),
		Sexes:        run.Sexes,
		Areas:        run.Areas,
		Workers:      run.Workers,
		CreatedAtUTC: run.CreatedAtUTC,
	}); err != nil {
		return RunSummary{}, err
	}

	cells := 0
	for _, report := range reports {
		cells += len(report.Cells)
	}
	return RunSummary{
		RunID:          run.RunID,
		ArtifactsDir:   runDir,
		Subpopulations: len(reports),
		Cells:          cells,
	}, nil
}

// Runs lists stored run records, most recent first.
func (c *Client) Runs(ctx context.Context, limit int) ([]model.RunRecord, error) {
	return c.store.ListRuns(ctx, limit)
}

// Report fetches the stored finalize reports for one run.
func (c *Client) Report(ctx context.Context, runID string) ([]model.SubpopulationReport, error) {
	reports, ok, err := c.store.GetReports(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	return reports, nil
}

// AgeStepRequest describes an age-stepping sequence to generate: uniform
// when Stamps is nil, data-driven otherwise.
type AgeStepRequest struct {
	Years    int
	Seasons  int
	FirstAge float64
	LastAge  float64
	Stamps   map[int][]float64
}

// AgeSteps generates an age-stepping schedule and returns its plot-ready
// point series.
func (c *Client) AgeSteps(req AgeStepRequest) ([]stats.AgeStepPlotYear, error) {
	var (
		schedule agestep.Schedule
		err      error
	)
	if req.Stamps != nil {
		schedule, err = agestep.DataDriven(req.Stamps, req.FirstAge, req.LastAge)
	} else {
		schedule, err = agestep.Uniform(req.Years, req.Seasons, req.FirstAge, req.LastAge)
	}
	if err != nil {
		return nil, err
	}
	return stats.BuildAgeStepPlot(schedule), nil
}

// hookFor resolves a life-history hook by name. The offset hook reproduces
// the placeholder computation (derived value = folded offset); logistic-age
// stores a logistic selectivity over the cell's age label, with the median
// at the middle age class.
func hookFor(name string, labels []float64) (stock.CellFunc, error) {
	switch name {
	case "", "offset":
		return stock.DerivedOffset, nil
	case "logistic-age":
		median := labels[(len(labels)-1)/2]
		return func(c stock.Cell) float64 {
			return lifemath.Logistic(median, 1, labels[c.Age])
		}, nil
	default:
		return nil, fmt.Errorf("unknown hook: %s", name)
	}
}
