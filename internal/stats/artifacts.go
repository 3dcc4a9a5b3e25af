// Package stats writes run artifacts for completed simulation passes. It
// consumes finalize output records only; it never reaches into subpopulation
// storage.
package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"pelagia/internal/model"
)

const runIndexFile = "run_index.json"

type RunArtifacts struct {
	Run     model.RunRecord             `json:"run"`
	Reports []model.SubpopulationReport `json:"reports"`
}

type RunIndexEntry struct {
	RunID        string `json:"run_id"`
	Years        int    `json:"years"`
	MaxSeasons   int    `json:"max_seasons"`
	Ages         int    `json:"ages"`
	Sexes        int    `json:"sexes"`
	Areas        int    `json:"areas"`
	Workers      int    `json:"workers"`
	CreatedAtUTC string `json:"created_at_utc"`
}

// WriteRunArtifacts writes one run's record, JSON report, and CSV report
// under baseDir/<run id> and returns the run directory.
func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Run.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, artifacts.Run.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "run.json"), artifacts.Run); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "report.json"), artifacts.Reports); err != nil {
		return "", err
	}
	if err := writeReportCSV(filepath.Join(runDir, "report.csv"), artifacts.Reports); err != nil {
		return "", err
	}

	return runDir, nil
}

func writeReportCSV(path string, reports []model.SubpopulationReport) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"subpopulation", "sex", "area_index", "area_id", "year", "season", "age", "value"}); err != nil {
		return err
	}
	for _, report := range reports {
		for _, cell := range report.Cells {
			row := []string{
				strconv.FormatUint(report.ObjectID, 10),
				strconv.Itoa(report.Sex),
				strconv.Itoa(report.AreaIndex),
				strconv.FormatUint(report.AreaID, 10),
				strconv.Itoa(cell.Year),
				strconv.Itoa(cell.Season),
				strconv.Itoa(cell.Age),
				strconv.FormatFloat(cell.Value, 'g', -1, 64),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// AppendRunIndex records or replaces one run's entry in the shared
// run_index.json under baseDir.
func AppendRunIndex(baseDir string, entry RunIndexEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListRunIndex(baseDir)
	if err != nil {
		return err
	}

	for i := range index {
		if index[i].RunID == entry.RunID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, runIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, runIndexFile), index)
}

// ListRunIndex returns the run index entries, most recent first.
func ListRunIndex(baseDir string) ([]RunIndexEntry, error) {
	path := filepath.Join(baseDir, runIndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []RunIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAtUTC > entries[j].CreatedAtUTC
	})
	return entries, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
