package stock

import (
	"fmt"

	"pelagia/internal/grid"
)

// Unit is the base for anything with age structure: a grid plus an ordered
// age-class label per age index. Labels are caller-supplied and are not
// required to be contiguous integers.
type Unit struct {
	grid.TimeGrid

	ages []float64
}

func NewUnit(g grid.TimeGrid, ages []float64) (Unit, error) {
	if len(ages) != g.Ages() {
		return Unit{}, fmt.Errorf("stock: %d age labels for %d age classes", len(ages), g.Ages())
	}
	return Unit{TimeGrid: g, ages: append([]float64(nil), ages...)}, nil
}

// AgeLabels returns the age-class labels. The returned slice must not be
// modified.
func (u Unit) AgeLabels() []float64 {
	return u.ages
}
