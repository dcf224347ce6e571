package analytics

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/reddot/reddot-client/internal/filex"
)

const (
	chartWidth  = 800
	chartHeight = 480

	FileCycleLengths = "cycle_lengths.png"
	FileSymptoms     = "symptoms.png"
	FileMoods        = "moods.png"
)

var (
	colorPrimary = drawing.ColorFromHex("ff6b9d")
	palette      = []drawing.Color{
		drawing.ColorFromHex("ff6b9d"),
		drawing.ColorFromHex("c44569"),
		drawing.ColorFromHex("f8d7da"),
		drawing.ColorFromHex("ff8fb3"),
		drawing.ColorFromHex("e55a8a"),
	}
)

// Render writes one PNG per drawable series into dir, creating it if
// needed, and returns the written paths. Empty series and frequency maps
// without a positive count are skipped. A failing chart does not stop the
// others; the failures are joined into the returned error.
func Render(c Charts, dir string) ([]string, error) {
	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}

	jobs := []struct {
		file   string
		series Series
		draw   func(Series, *os.File) error
		skip   func(Series) bool
	}{
		{FileCycleLengths, c.CycleLengths, renderLine, Series.Empty},
		{FileSymptoms, c.Symptoms, renderPie, noPositive},
		{FileMoods, c.Moods, renderBar, Series.Empty},
	}

	var (
		written []string
		errs    []error
	)
	for _, job := range jobs {
		if job.skip(job.series) {
			continue
		}

		path := filepath.Join(dir, job.file)
		if err := writeChart(path, job.series, job.draw); err != nil {
			errs = append(errs, fmt.Errorf("render %s: %w", job.file, err))
			continue
		}
		written = append(written, path)
	}

	return written, errors.Join(errs...)
}

// noPositive reports whether a pie chart would have no slices.
func noPositive(s Series) bool {
	for _, p := range s.Points {
		if p.Value > 0 {
			return false
		}
	}
	return true
}

func writeChart(path string, s Series, draw func(Series, *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := draw(s, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

// renderLine needs two points for an x range; a single cycle is drawn as a
// bar instead.
func renderLine(s Series, f *os.File) error {
	if len(s.Points) < 2 {
		return drawBars("Cycle Consistency", s, f)
	}

	xs := make([]float64, len(s.Points))
	ticks := make([]chart.Tick, len(s.Points))
	for i, p := range s.Points {
		xs[i] = float64(i + 1)
		ticks[i] = chart.Tick{Value: xs[i], Label: p.Label}
	}

	ch := chart.Chart{
		Title:      "Cycle Consistency",
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(xs)) + 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "days",
			Range: &chart.ContinuousRange{Min: 0, Max: upperBound(s.Values())},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    s.Name,
				XValues: xs,
				YValues: s.Values(),
				Style: chart.Style{
					StrokeColor: colorPrimary,
					StrokeWidth: 2,
					DotColor:    colorPrimary,
					DotWidth:    4,
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, f)
}

func renderPie(s Series, f *os.File) error {
	values := make([]chart.Value, 0, len(s.Points))
	for i, p := range s.Points {
		if p.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{FillColor: palette[i%len(palette)]},
		})
	}
	if len(values) == 0 {
		return fmt.Errorf("no positive values in %q", s.Name)
	}

	pie := chart.PieChart{
		Title:  "Symptom Frequency",
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}
	return pie.Render(chart.PNG, f)
}

func renderBar(s Series, f *os.File) error {
	return drawBars("Mood Trends", s, f)
}

func drawBars(title string, s Series, f *os.File) error {
	bars := make([]chart.Value, len(s.Points))
	for i, p := range s.Points {
		bars[i] = chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{FillColor: colorPrimary, StrokeColor: colorPrimary},
		}
	}

	bar := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 48,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: upperBound(s.Values())},
		},
		Bars: bars,
	}
	return bar.Render(chart.PNG, f)
}

// upperBound leaves some headroom above the largest value and never returns
// a zero-height range.
func upperBound(values []float64) float64 {
	top := 0.0
	for _, v := range values {
		top = math.Max(top, v)
	}
	if top <= 0 {
		return 1
	}
	return math.Ceil(top * 1.1)
}
