// Package chart renders calculator results as PNG line charts.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/abacus/internal/common"
	"github.com/bobmcallan/abacus/internal/models"
)

// ErrNoChart is returned for results that have nothing to plot.
var ErrNoChart = errors.New("result has no chart")

// palette cycles across series: blue, emerald, amber, gray.
var palette = []drawing.Color{
	drawing.ColorFromHex("2563eb"),
	drawing.ColorFromHex("059669"),
	drawing.ColorFromHex("d97706"),
	drawing.ColorFromHex("9ca3af"),
}

// Size of rendered charts in pixels.
const (
	Width  = 900
	Height = 400
)

// RenderResult renders a calculator result that implements models.Charter.
func RenderResult(result interface{}) ([]byte, error) {
	c, ok := result.(models.Charter)
	if !ok {
		return nil, ErrNoChart
	}
	spec := c.Chart()
	if spec == nil {
		return nil, ErrNoChart
	}
	return Render(spec)
}

// Render draws each series as a line. The first series is solid and the
// rest are dashed.
func Render(spec *models.Chart) ([]byte, error) {
	var series []chart.Series
	for i, s := range spec.Series {
		if len(s.X) != len(s.Y) {
			return nil, fmt.Errorf("series %q: %d x values for %d y values", s.Name, len(s.X), len(s.Y))
		}
		if len(s.X) < 2 {
			continue
		}
		style := chart.Style{
			StrokeColor: palette[i%len(palette)],
			StrokeWidth: 2.5,
		}
		if i > 0 {
			style.StrokeWidth = 1.5
			style.StrokeDashArray = []float64{5.0, 3.0}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			Style:   style,
			XValues: s.X,
			YValues: s.Y,
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: need at least 2 data points", ErrNoChart)
	}

	yFormat := func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return ""
		}
		if spec.Money {
			return moneyTick(f)
		}
		return common.FormatNumber(f, 0)
	}

	graph := chart.Chart{
		Title:  spec.Title,
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name: spec.XLabel,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return common.FormatNumber(f, 0)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:           spec.YLabel,
			ValueFormatter: yFormat,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

func moneyTick(f float64) string {
	switch a := math.Abs(f); {
	case a >= 1e6:
		return fmt.Sprintf("$%.1fm", f/1e6)
	case a >= 1e3:
		return fmt.Sprintf("$%.0fk", f/1e3)
	}
	return fmt.Sprintf("$%.0f", f)
}
