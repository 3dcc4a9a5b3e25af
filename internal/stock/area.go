// Package stock partitions a population into sex/area-specific subpopulations
// and drives the evaluate/finalize passes over their folded cell grids.
package stock

import "pelagia/internal/grid"

// Area is a spatial stratum. It carries dimensioning only, no per-cell data,
// and is shared by pointer across every subpopulation bound to it; it is
// never cloned per subpopulation.
type Area struct {
	grid.TimeGrid
}

func NewArea(g grid.TimeGrid) *Area {
	return &Area{TimeGrid: g}
}
