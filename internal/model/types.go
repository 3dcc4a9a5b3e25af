package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// CellRecord is one real (non-padding) cell surfaced by a finalize pass.
type CellRecord struct {
	Year   int     `json:"year"`
	Season int     `json:"season"`
	Age    int     `json:"age"`
	Value  float64 `json:"value"`
}

// SubpopulationReport is the finalize output for one (sex, area) subpopulation.
type SubpopulationReport struct {
	ObjectID  uint64       `json:"object_id"`
	Sex       int          `json:"sex"`
	AreaIndex int          `json:"area_index"`
	AreaID    uint64       `json:"area_id"`
	Cells     []CellRecord `json:"cells"`
}

// RunRecord describes one completed evaluate/finalize pass.
type RunRecord struct {
	VersionedRecord
	RunID        string    `json:"run_id"`
	CreatedAtUTC string    `json:"created_at_utc"`
	Years        int       `json:"years"`
	Seasons      int       `json:"seasons,omitempty"`
	MaxSeasons   int       `json:"max_seasons"`
	AgeLabels    []float64 `json:"age_labels"`
	Sexes        int       `json:"sexes"`
	Areas        int       `json:"areas"`
	Workers      int       `json:"workers"`
	Hook         string    `json:"hook,omitempty"`
}
