package render

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
)

// Profile is a vertical velocity profile: Values[i] is the velocity at
// height Y[i].
type Profile struct {
	Label  string
	Values []float64
	Y      []float64
	Dashed bool
}

var profilePalette = []drawing.Color{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
	{R: 188, G: 189, B: 34, A: 255},
	{R: 23, G: 190, B: 207, A: 255},
}

// ProfileChart renders profiles as a PNG with velocity on the horizontal
// axis and height on the vertical axis. Profiles are coloured in pairs so a
// solid line and the dashed line after it share a colour.
func ProfileChart(w io.Writer, title string, profiles []Profile) error {
	if len(profiles) == 0 {
		return fmt.Errorf("profile chart %q: no profiles", title)
	}
	series := make([]chart.Series, 0, len(profiles))
	pair := 0
	for k, p := range profiles {
		if k > 0 && !p.Dashed {
			pair++
		}
		style := chart.Style{
			StrokeColor: profilePalette[pair%len(profilePalette)],
			StrokeWidth: 1.5,
		}
		if p.Dashed {
			style.StrokeDashArray = []float64{5.0, 3.0}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    p.Label,
			XValues: p.Values,
			YValues: p.Y,
			Style:   style,
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 260},
		},
		XAxis: chart.XAxis{
			Name: "Horizontal Velocity (u)",
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.2f", v.(float64))
			},
		},
		YAxis: chart.YAxis{
			Name: "Height (y)",
		},
		Series: series,
	}
	if lo, hi, ok := valueRange(profiles); ok && lo == hi {
		// go-chart refuses a zero-width axis; a flat profile gets a unit range around it.
		graph.XAxis.Range = &chart.ContinuousRange{Min: lo - 0.5, Max: hi + 0.5}
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	return graph.Render(chart.PNG, w)
}

// valueRange returns the extrema of all profile values. ok is false when
// there are no values.
func valueRange(profiles []Profile) (lo, hi float64, ok bool) {
	for _, p := range profiles {
		if len(p.Values) == 0 {
			continue
		}
		pmin, pmax := floats.Min(p.Values), floats.Max(p.Values)
		if !ok {
			lo, hi, ok = pmin, pmax, true
			continue
		}
		lo, hi = min(lo, pmin), max(hi, pmax)
	}
	return lo, hi, ok
}
