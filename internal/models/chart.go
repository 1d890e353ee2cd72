package models

// ChartSeries is one line of a chart. X and Y have equal length.
type ChartSeries struct {
	Name string    `json:"name"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
}

// Chart is the renderer-neutral description of a line chart.
type Chart struct {
	Title  string        `json:"title"`
	XLabel string        `json:"x_label"`
	YLabel string        `json:"y_label"`
	Money  bool          `json:"money"` // format the Y axis as currency
	Series []ChartSeries `json:"series"`
}

// Charter is implemented by results that can be drawn as a chart.
// A nil return means there is nothing to draw.
type Charter interface {
	Chart() *Chart
}
