package stats

import "pelagia/internal/agestep"

// AgeStepPlotPoint is one sample of an age-stepping sequence, keyed by its
// position in the sequence.
type AgeStepPlotPoint struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// AgeStepPlotYear holds the plot points for one year of a schedule.
type AgeStepPlotYear struct {
	Year   int                `json:"year"`
	Points []AgeStepPlotPoint `json:"points"`
}

// BuildAgeStepPlot turns a schedule into plot-ready point series, one per
// year, for visually checking an age-stepping sequence. Rendering is left to
// whatever consumes the data.
func BuildAgeStepPlot(schedule agestep.Schedule) []AgeStepPlotYear {
	years := schedule.Years()
	plot := make([]AgeStepPlotYear, 0, len(years))
	for _, year := range years {
		ages := schedule.Ages(year)
		points := make([]AgeStepPlotPoint, 0, len(ages))
		for i, age := range ages {
			points = append(points, AgeStepPlotPoint{Index: i, Value: age})
		}
		plot = append(plot, AgeStepPlotYear{Year: year, Points: points})
	}
	return plot
}
