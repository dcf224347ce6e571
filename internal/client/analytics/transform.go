// Package analytics turns the server's analytics aggregate into chart-ready
// series and renders them as PNG files.
package analytics

import (
	"fmt"
	"strconv"

	"github.com/reddot/reddot-client/internal/client/models"
)

// Placeholders shown instead of an empty chart.
const (
	NoCycleData = "Not enough data yet. Keep logging your periods!"
	NoSymptoms  = "No symptoms logged yet."
	NoMoods     = "No moods logged yet."

	NotAvailable = "N/A"
)

type Point struct {
	Label string
	Value float64
}

// Series is an ordered list of labelled values.
type Series struct {
	Name   string
	Points []Point
}

func (s Series) Empty() bool { return len(s.Points) == 0 }

func (s Series) Labels() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Label
	}
	return out
}

func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// Summary holds the headline figures, already defaulted for display.
type Summary struct {
	AverageCycleLength string
	Consistency        string
	WellnessScore      float64
	WellnessLevel      string
}

type Charts struct {
	CycleLengths Series
	Symptoms     Series
	Moods        Series
	Summary      Summary
}

// Transform never fails: absent sections give empty series and "N/A"
// summary values. agg is not modified.
func Transform(agg models.AnalyticsAggregate) Charts {
	c := Charts{
		CycleLengths: Series{Name: "Cycle Length (days)"},
		Symptoms:     Series{Name: "Frequency"},
		Moods:        Series{Name: "Mood Count"},
		Summary: Summary{
			AverageCycleLength: NotAvailable,
			Consistency:        NotAvailable,
			WellnessLevel:      NotAvailable,
		},
	}

	if cc := agg.CycleConsistency; cc != nil {
		for i, v := range cc.CycleLengths {
			c.CycleLengths.Points = append(c.CycleLengths.Points, Point{
				Label: fmt.Sprintf("Cycle %d", i+1),
				Value: v,
			})
		}
		if cc.AverageCycleLength != nil && *cc.AverageCycleLength != 0 {
			c.Summary.AverageCycleLength = strconv.FormatFloat(*cc.AverageCycleLength, 'f', -1, 64)
		}
		if cc.Consistency != "" {
			c.Summary.Consistency = cc.Consistency
		}
	}

	if sf := agg.SymptomFrequency; sf != nil {
		c.Symptoms.Points = points(sf.Frequency)
	}

	if mt := agg.MoodTrends; mt != nil {
		c.Moods.Points = points(mt.MoodDistribution)
	}

	if ws := agg.WellnessScore; ws != nil {
		if ws.Score != nil {
			c.Summary.WellnessScore = *ws.Score
		}
		if ws.Level != "" {
			c.Summary.WellnessLevel = ws.Level
		}
	}

	return c
}

func points(counts *models.OrderedCounts) []Point {
	if counts.Len() == 0 {
		return nil
	}
	out := make([]Point, len(counts.Keys))
	for i, k := range counts.Keys {
		out[i] = Point{Label: k, Value: counts.Values[i]}
	}
	return out
}
