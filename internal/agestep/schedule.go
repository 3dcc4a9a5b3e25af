// Package agestep generates age-stepping sequences for a simulated
// population: either a uniform within-year step derived from a season count,
// or irregular data-driven steps supplied per year. Schedules are inputs to
// variable-season grids and to the reporting layer's visual checks; they are
// not part of the indexing core.
package agestep

import (
	"fmt"
	"sort"
)

// Schedule holds one age sequence per year, year-keyed in ascending order.
type Schedule struct {
	years []int
	ages  map[int][]float64
}

// Years returns the year keys in ascending order.
func (s Schedule) Years() []int {
	return s.years
}

// Ages returns the age sequence for one year. The returned slice must not be
// modified.
func (s Schedule) Ages(year int) []float64 {
	return s.ages[year]
}

// Uniform builds a schedule where every year steps from firstAge up to (but
// excluding) lastAge in increments of 1/seasons.
func Uniform(years, seasons int, firstAge, lastAge float64) (Schedule, error) {
	if years < 0 {
		return Schedule{}, fmt.Errorf("agestep: years must be >= 0 (got %d)", years)
	}
	if seasons <= 0 {
		return Schedule{}, fmt.Errorf("agestep: seasons must be > 0 (got %d)", seasons)
	}
	if lastAge < firstAge {
		return Schedule{}, fmt.Errorf("agestep: last age %g before first age %g", lastAge, firstAge)
	}

	increment := 1.0 / float64(seasons)
	var shared []float64
	for age := firstAge; age < lastAge; age += increment {
		shared = append(shared, age)
	}

	s := Schedule{ages: make(map[int][]float64, years)}
	for y := 0; y < years; y++ {
		s.years = append(s.years, y)
		s.ages[y] = shared
	}
	return s, nil
}

// DataDriven builds a schedule from per-year fractional timestamps: each
// whole age in [firstAge, lastAge) contributes the age itself followed by
// age+fraction for every timestamp of that year, and each year's sequence
// closes at lastAge.
func DataDriven(stamps map[int][]float64, firstAge, lastAge float64) (Schedule, error) {
	if lastAge < firstAge {
		return Schedule{}, fmt.Errorf("agestep: last age %g before first age %g", lastAge, firstAge)
	}

	s := Schedule{ages: make(map[int][]float64, len(stamps))}
	for year := range stamps {
		s.years = append(s.years, year)
	}
	sort.Ints(s.years)

	for _, year := range s.years {
		var ages []float64
		for age := firstAge; age < lastAge; age++ {
			ages = append(ages, age)
			for _, fraction := range stamps[year] {
				ages = append(ages, age+fraction)
			}
		}
		ages = append(ages, lastAge)
		s.ages[year] = ages
	}
	return s, nil
}
