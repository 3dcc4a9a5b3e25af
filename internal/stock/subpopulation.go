package stock

import (
	"fmt"

	"pelagia/internal/model"
)

// Subpopulation is a unit bound to exactly one area, holding the dense
// derived-quantity array for its (year, season, age) grid. Cells at seasons
// past a year's actual season count are padding from the jagged-to-rectangular
// folding: allocated, written by nothing, and never surfaced.
type Subpopulation struct {
	Unit

	area      *Area
	areaIndex int
	sex       int
	derived   []float64
}

func newSubpopulation(u Unit, area *Area, areaIndex, sex int) *Subpopulation {
	return &Subpopulation{
		Unit:      u,
		area:      area,
		areaIndex: areaIndex,
		sex:       sex,
		derived:   make([]float64, u.CellCount()),
	}
}

// Area returns the bound area. The subpopulation does not own its lifetime.
func (s *Subpopulation) Area() *Area { return s.area }

// Sex returns the sex index this subpopulation belongs to.
func (s *Subpopulation) Sex() int { return s.sex }

// UpdateCell writes the derived quantity for the cell at offset. The offset
// must come from Index3 or Index2 on this subpopulation's own grid; anything
// out of range is a programming error and panics.
func (s *Subpopulation) UpdateCell(offset int, value float64) {
	if offset < 0 || offset >= len(s.derived) {
		panic(fmt.Sprintf("stock: offset %d not in [0, %d)", offset, len(s.derived)))
	}
	s.derived[offset] = value
}

// Report yields one record per real cell, lexicographic by (year, season,
// age), with season bounded by the year's actual season count so padding
// never leaks. Read-only; safe to call repeatedly.
func (s *Subpopulation) Report() []model.CellRecord {
	records := make([]model.CellRecord, 0, s.CellCount())
	for y := 0; y < s.Years(); y++ {
		seasons, _ := s.SeasonsInYear(y) // y is in range by construction
		for sn := 0; sn < seasons; sn++ {
			for a := 0; a < s.Ages(); a++ {
				records = append(records, model.CellRecord{
					Year:   y,
					Season: sn,
					Age:    a,
					Value:  s.derived[s.Index3(y, sn, a)],
				})
			}
		}
	}
	return records
}
