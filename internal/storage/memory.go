package storage

import (
	"context"
	"sort"
	"sync"

	"pelagia/internal/model"
)

type MemoryStore struct {
	mu      sync.RWMutex
	runs    map[string]model.RunRecord
	reports map[string][]model.SubpopulationReport
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = make(map[string]model.RunRecord)
	s.reports = make(map[string][]model.SubpopulationReport)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run.AgeLabels = append([]float64(nil), run.AgeLabels...)
	s.runs[run.RunID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, runID string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[runID]
	if !ok {
		return model.RunRecord{}, false, nil
	}
	run.AgeLabels = append([]float64(nil), run.AgeLabels...)
	return run, true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		run.AgeLabels = append([]float64(nil), run.AgeLabels...)
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAtUTC != runs[j].CreatedAtUTC {
			return runs[i].CreatedAtUTC > runs[j].CreatedAtUTC
		}
		return runs[i].RunID < runs[j].RunID
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (s *MemoryStore) SaveReports(_ context.Context, runID string, reports []model.SubpopulationReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[runID] = cloneReports(reports)
	return nil
}

func (s *MemoryStore) GetReports(_ context.Context, runID string) ([]model.SubpopulationReport, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports, ok := s.reports[runID]
	if !ok {
		return nil, false, nil
	}
	return cloneReports(reports), true, nil
}

func cloneReports(reports []model.SubpopulationReport) []model.SubpopulationReport {
	cloned := make([]model.SubpopulationReport, 0, len(reports))
	for _, report := range reports {
		report.Cells = append([]model.CellRecord(nil), report.Cells...)
		cloned = append(cloned, report)
	}
	return cloned
}
