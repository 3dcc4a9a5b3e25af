// Package grid owns the year/season/age dimensioning of one model object and
// the folded-index arithmetic that maps (year, season, age) coordinates onto
// flat array offsets. Season counts may vary by year; the folding stride is
// always the maximum season count, so every year shares one rectangular
// stride and short years carry padding cells.
package grid

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrDimension reports a year, season, or age index outside declared bounds.
var ErrDimension = errors.New("grid: index outside declared bounds")

// IDSource hands out process-independent, monotonically increasing object
// identifiers. Identifiers are unique per source, not dense, and carry no
// semantic weight beyond human-readable reporting.
type IDSource struct {
	next atomic.Uint64
}

func NewIDSource() *IDSource {
	return &IDSource{}
}

// Next returns the next identifier. Safe for concurrent use.
func (s *IDSource) Next() uint64 {
	return s.next.Add(1) - 1
}

// TimeGrid is the dimensioning for one model object. It is fully determined
// at construction and immutable thereafter.
type TimeGrid struct {
	objectID   uint64
	years      int
	ages       int
	maxSeasons int

	// offsets holds the within-year season offsets, one slice per year.
	// In the fixed case every year has the synthesized offsets (s+1)/n; in
	// the variable case they are caller-supplied and may be ragged.
	offsets [][]float64
}

// NewFixed builds a grid where every year has exactly seasons seasons, with
// season offsets (s+1)/seasons.
func NewFixed(ids *IDSource, years, seasons, ages int) (TimeGrid, error) {
	if ids == nil {
		return TimeGrid{}, errors.New("grid: id source is required")
	}
	if years < 0 || seasons < 0 || ages < 0 {
		return TimeGrid{}, fmt.Errorf("%w: dimensions must be >= 0 (years=%d seasons=%d ages=%d)", ErrDimension, years, seasons, ages)
	}
	yearOffsets := make([]float64, seasons)
	for s := 0; s < seasons; s++ {
		yearOffsets[s] = float64(s+1) / float64(seasons)
	}
	offsets := make([][]float64, years)
	for y := range offsets {
		offsets[y] = yearOffsets
	}
	return TimeGrid{
		objectID:   ids.Next(),
		years:      years,
		ages:       ages,
		maxSeasons: seasons,
		offsets:    offsets,
	}, nil
}

// NewVariable builds a grid with caller-supplied per-year season offsets, one
// slice per year. Offsets are not required to be monotonic, bounded, or of
// equal length across years; the folding stride is the longest year.
func NewVariable(ids *IDSource, perYear [][]float64, ages int) (TimeGrid, error) {
	if ids == nil {
		return TimeGrid{}, errors.New("grid: id source is required")
	}
	if ages < 0 {
		return TimeGrid{}, fmt.Errorf("%w: ages must be >= 0 (got %d)", ErrDimension, ages)
	}
	offsets := make([][]float64, len(perYear))
	maxSeasons := 0
	for y, year := range perYear {
		offsets[y] = append([]float64(nil), year...)
		if len(year) > maxSeasons {
			maxSeasons = len(year)
		}
	}
	return TimeGrid{
		objectID:   ids.Next(),
		years:      len(perYear),
		ages:       ages,
		maxSeasons: maxSeasons,
		offsets:    offsets,
	}, nil
}

// Derive returns a grid with the same dimensions and season table but a
// fresh identifier drawn from ids.
func (g TimeGrid) Derive(ids *IDSource) TimeGrid {
	g.objectID = ids.Next()
	return g
}

// ObjectID returns the identifier assigned at construction.
func (g TimeGrid) ObjectID() uint64 { return g.objectID }

// Years returns the year count.
func (g TimeGrid) Years() int { return g.years }

// Ages returns the age-class count.
func (g TimeGrid) Ages() int { return g.ages }

// MaxSeasons returns the folding stride: the maximum season count over years.
func (g TimeGrid) MaxSeasons() int { return g.maxSeasons }

// CellCount returns the size of the rectangular folded address space,
// years * maxSeasons * ages, padding included.
func (g TimeGrid) CellCount() int {
	return g.years * g.maxSeasons * g.ages
}

// Index3 folds (year, season, age) into a flat offset:
//
//	year*maxSeasons*ages + season*ages + age
//
// Season is accepted anywhere in [0, maxSeasons); callers are responsible for
// respecting the actual season count of that year. Out-of-range arguments are
// a programming error and panic.
func (g TimeGrid) Index3(year, season, age int) int {
	g.check(year, season, age)
	return year*g.maxSeasons*g.ages + season*g.ages + age
}

// Index2 folds (year, season) into a flat offset without the age term:
//
//	year*maxSeasons*ages + season
//
// The resulting address space aliases the Index3 space; results of the two
// must not be mixed against the same array.
func (g TimeGrid) Index2(year, season int) int {
	if year < 0 || year >= g.years {
		panic(fmt.Sprintf("grid: year %d not in [0, %d)", year, g.years))
	}
	if season < 0 || season >= g.maxSeasons {
		panic(fmt.Sprintf("grid: season %d not in [0, %d)", season, g.maxSeasons))
	}
	return year*g.maxSeasons*g.ages + season
}

// SeasonsInYear returns the actual (possibly irregular) season count for the
// given year.
func (g TimeGrid) SeasonsInYear(year int) (int, error) {
	if year < 0 || year >= g.years {
		return 0, fmt.Errorf("%w: year %d not in [0, %d)", ErrDimension, year, g.years)
	}
	return len(g.offsets[year]), nil
}

// SeasonOffsets returns the within-year season offsets for the given year.
// The returned slice must not be modified.
func (g TimeGrid) SeasonOffsets(year int) ([]float64, error) {
	if year < 0 || year >= g.years {
		return nil, fmt.Errorf("%w: year %d not in [0, %d)", ErrDimension, year, g.years)
	}
	return g.offsets[year], nil
}

func (g TimeGrid) check(year, season, age int) {
	if year < 0 || year >= g.years {
		panic(fmt.Sprintf("grid: year %d not in [0, %d)", year, g.years))
	}
	if season < 0 || season >= g.maxSeasons {
		panic(fmt.Sprintf("grid: season %d not in [0, %d)", season, g.maxSeasons))
	}
	if age < 0 || age >= g.ages {
		panic(fmt.Sprintf("grid: age %d not in [0, %d)", age, g.ages))
	}
}
