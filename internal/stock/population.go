package stock

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pelagia/internal/grid"
	"pelagia/internal/model"
)

// ErrState reports an operation attempted in the wrong lifecycle state:
// evaluating or finalizing before partitioning, or partitioning twice.
var ErrState = errors.New("stock: operation not valid in current state")

// Cell identifies one grid cell handed to the life-history hook.
type Cell struct {
	Year   int
	Season int
	Age    int
	Offset int
	Sex    int
	Area   *Area
}

// CellFunc computes the derived quantity for one cell. Implementations must
// be pure in the cell arguments: the evaluation pass may run cells of
// different subpopulations concurrently.
type CellFunc func(c Cell) float64

// DerivedOffset is the placeholder life-history computation: the derived
// value is the cell's own folded offset.
func DerivedOffset(c Cell) float64 {
	return float64(c.Offset)
}

// Config configures a population.
type Config struct {
	Grid      grid.TimeGrid
	AgeLabels []float64
	IDs       *grid.IDSource
	Hook      CellFunc
	Workers   int
}

// Population owns the global dimensioning, the shared areas, and one
// subpopulation per (sex, area) pair once partitioned. The lifecycle is
// one-way: Unpartitioned -> Partitioned.
type Population struct {
	Unit

	ids     *grid.IDSource
	hook    CellFunc
	workers int

	partitioned bool
	sexes       int
	areas       []*Area
	subpops     map[int][]*Subpopulation
}

func NewPopulation(cfg Config) (*Population, error) {
	if cfg.IDs == nil {
		return nil, errors.New("stock: id source is required")
	}
	unit, err := NewUnit(cfg.Grid, cfg.AgeLabels)
	if err != nil {
		return nil, err
	}
	if cfg.Hook == nil {
		cfg.Hook = DerivedOffset
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Population{
		Unit:    unit,
		ids:     cfg.IDs,
		hook:    cfg.Hook,
		workers: cfg.Workers,
	}, nil
}

// Partition builds one subpopulation per (sex, area) pair, in area-list
// order, each sharing this population's dimensions and age labels and bound
// to the shared area. Partitioning is one-shot; a second call returns
// ErrState rather than silently discarding the first subpopulation set.
func (p *Population) Partition(sexes int, areas []*Area) error {
	if p.partitioned {
		return fmt.Errorf("%w: population already partitioned", ErrState)
	}
	if sexes < 0 {
		return fmt.Errorf("stock: sexes must be >= 0 (got %d)", sexes)
	}
	for i, area := range areas {
		if area == nil {
			return fmt.Errorf("stock: area %d is nil", i)
		}
	}

	p.sexes = sexes
	p.areas = areas
	p.subpops = make(map[int][]*Subpopulation, sexes)
	for sex := 0; sex < sexes; sex++ {
		list := make([]*Subpopulation, 0, len(areas))
		for j, area := range areas {
			unit, err := NewUnit(p.TimeGrid.Derive(p.ids), p.AgeLabels())
			if err != nil {
				return err
			}
			list = append(list, newSubpopulation(unit, area, j, sex))
		}
		p.subpops[sex] = list
	}
	p.partitioned = true
	return nil
}

// Sexes returns the sex count set at partition time.
func (p *Population) Sexes() int { return p.sexes }

// Subpopulations returns the area-ordered subpopulations for one sex.
func (p *Population) Subpopulations(sex int) []*Subpopulation {
	return p.subpops[sex]
}

// EvaluateAll runs the life-history hook over every real cell of every
// subpopulation. Within one subpopulation the walk is lexicographic by
// (year, season, age) with season bounded by the year's actual count; across
// subpopulations the order is unspecified and work is spread over the
// configured worker count, which is safe because each subpopulation owns its
// derived storage exclusively.
func (p *Population) EvaluateAll(ctx context.Context) error {
	if !p.partitioned {
		return fmt.Errorf("%w: evaluate before partition", ErrState)
	}

	ordered := p.orderedSubpopulations()
	jobs := make(chan *Subpopulation)
	results := make(chan error, len(ordered))

	workerCount := p.workers
	if workerCount > len(ordered) {
		workerCount = len(ordered)
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for sp := range jobs {
				if err := ctx.Err(); err != nil {
					results <- err
					continue
				}
				results <- p.evaluateSubpopulation(sp)
			}
		}()
	}

	for _, sp := range ordered {
		jobs <- sp
	}
	close(jobs)

	wg.Wait()
	close(results)

	for err := range results {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Population) evaluateSubpopulation(sp *Subpopulation) error {
	for y := 0; y < sp.Years(); y++ {
		seasons, err := sp.SeasonsInYear(y)
		if err != nil {
			return err
		}
		for sn := 0; sn < seasons; sn++ {
			for a := 0; a < sp.Ages(); a++ {
				offset := sp.Index3(y, sn, a)
				sp.UpdateCell(offset, p.hook(Cell{
					Year:   y,
					Season: sn,
					Age:    a,
					Offset: offset,
					Sex:    sp.sex,
					Area:   sp.area,
				}))
			}
		}
	}
	return nil
}

// Finalize reports every subpopulation, sex ascending then area order. It is
// read-only and idempotent; its output is the only data a presentation or
// persistence layer may consume.
func (p *Population) Finalize() ([]model.SubpopulationReport, error) {
	if !p.partitioned {
		return nil, fmt.Errorf("%w: finalize before partition", ErrState)
	}
	reports := make([]model.SubpopulationReport, 0, p.sexes*len(p.areas))
	for _, sp := range p.orderedSubpopulations() {
		reports = append(reports, model.SubpopulationReport{
			ObjectID:  sp.ObjectID(),
			Sex:       sp.sex,
			AreaIndex: sp.areaIndex,
			AreaID:    sp.area.ObjectID(),
			Cells:     sp.Report(),
		})
	}
	return reports, nil
}

func (p *Population) orderedSubpopulations() []*Subpopulation {
	ordered := make([]*Subpopulation, 0, p.sexes*len(p.areas))
	for sex := 0; sex < p.sexes; sex++ {
		ordered = append(ordered, p.subpops[sex]...)
	}
	return ordered
}
