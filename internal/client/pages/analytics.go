package pages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/reddot/reddot-client/internal/client/analytics"
	"github.com/reddot/reddot-client/internal/client/fetch"
	"github.com/reddot/reddot-client/internal/client/models"
	"github.com/reddot/reddot-client/internal/client/notify"
	"github.com/reddot/reddot-client/internal/logging"
)

var ErrNotLoaded = errors.New("data is not loaded yet")

type AnalyticsAPI interface {
	AnalyticsDashboard(ctx context.Context) (models.AnalyticsAggregate, error)
}

type Analytics struct {
	ctl *fetch.Controller[models.AnalyticsAggregate]
	log logging.Logger
}

func NewAnalytics(api AnalyticsAPI, n notify.Notifier, log logging.Logger) *Analytics {
	if log == nil {
		log = logging.Nop()
	}
	return &Analytics{
		ctl: fetch.New(api.AnalyticsDashboard, n, "analytics", fetch.WithLogger(log)),
		log: log,
	}
}

func (a *Analytics) Mount(ctx context.Context)   { a.ctl.Mount(ctx) }
func (a *Analytics) Unmount()                    { a.ctl.Unmount() }
func (a *Analytics) Refresh(ctx context.Context) { a.ctl.Refetch(ctx) }
func (a *Analytics) Wait()                       { a.ctl.Wait() }

func (a *Analytics) State() fetch.State[models.AnalyticsAggregate] { return a.ctl.State() }

// Charts is the transformed aggregate; ok is false until the view is ready.
func (a *Analytics) Charts() (analytics.Charts, bool) {
	st := a.ctl.State()
	if !st.Ready() {
		return analytics.Charts{}, false
	}
	return analytics.Transform(st.Data), true
}

// Export renders the charts as PNG files into dir.
func (a *Analytics) Export(ctx context.Context, dir string) ([]string, error) {
	charts, ok := a.Charts()
	if !ok {
		return nil, ErrNotLoaded
	}

	paths, err := analytics.Render(charts, dir)
	if err != nil {
		a.log.Error(ctx, "chart export failed", "dir", dir, "error", err)
		return paths, err
	}
	a.log.Info(ctx, "charts exported", "dir", dir, "files", len(paths))
	return paths, nil
}

func (a *Analytics) Render(w io.Writer) {
	fmt.Fprintln(w, "Analytics Dashboard")
	if renderPending(w, a.ctl.State()) {
		return
	}
	c, _ := a.Charts()

	fmt.Fprintln(w, "\nCycle Consistency")
	if c.CycleLengths.Empty() {
		fmt.Fprintf(w, "  %s\n", analytics.NoCycleData)
	} else {
		renderBars(w, c.CycleLengths)
	}
	fmt.Fprintf(w, "  Average: %s days\n", c.Summary.AverageCycleLength)
	fmt.Fprintf(w, "  Consistency: %s\n", c.Summary.Consistency)

	fmt.Fprintln(w, "\nSymptom Frequency")
	if c.Symptoms.Empty() {
		fmt.Fprintf(w, "  %s\n", analytics.NoSymptoms)
	} else {
		renderBars(w, c.Symptoms)
	}

	fmt.Fprintln(w, "\nMood Trends")
	if c.Moods.Empty() {
		fmt.Fprintf(w, "  %s\n", analytics.NoMoods)
	} else {
		renderBars(w, c.Moods)
	}

	fmt.Fprintln(w, "\nWellness Score")
	fmt.Fprintf(w, "  %s / 100\n", strconv.FormatFloat(c.Summary.WellnessScore, 'f', -1, 64))
	fmt.Fprintf(w, "  %s\n", c.Summary.WellnessLevel)
}

// renderBars draws a series as horizontal text bars scaled to 30 columns.
func renderBars(w io.Writer, s analytics.Series) {
	const width = 30

	top, labelWidth := 0.0, 0
	for _, p := range s.Points {
		if p.Value > top {
			top = p.Value
		}
		if len(p.Label) > labelWidth {
			labelWidth = len(p.Label)
		}
	}

	for _, p := range s.Points {
		n := 0
		if top > 0 && p.Value > 0 {
			n = int(p.Value / top * width)
			if n == 0 {
				n = 1
			}
		}
		fmt.Fprintf(w, "  %-*s %s %s\n", labelWidth, p.Label, strings.Repeat("#", n), strconv.FormatFloat(p.Value, 'f', -1, 64))
	}
}
