package storage

import (
	"context"

	"pelagia/internal/model"
)

// Store defines persistence operations for completed simulation runs. Stored
// reports are finalize output only; the evaluation core never touches a
// store.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, runID string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	SaveReports(ctx context.Context, runID string, reports []model.SubpopulationReport) error
	GetReports(ctx context.Context, runID string) ([]model.SubpopulationReport, bool, error)
}
