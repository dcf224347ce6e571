package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/reddot/reddot-client/internal/client/fetch"
	"github.com/reddot/reddot-client/internal/client/models"
	"github.com/reddot/reddot-client/internal/client/notify"
	"github.com/reddot/reddot-client/internal/logging"
)

type DashboardAPI interface {
	CyclePrediction(ctx context.Context) (models.CyclePrediction, error)
	WellnessTip(ctx context.Context) (string, error)
}

// DashboardData is the prediction and the daily tip, loaded together.
type DashboardData = fetch.Pair[models.CyclePrediction, string]

// Dashboard shows the next-period prediction and the daily tip. Both are
// requested at once and the view only becomes ready when both arrive.
type Dashboard struct {
	ctl  *fetch.Controller[DashboardData]
	user func() (models.User, bool)
}

func NewDashboard(api DashboardAPI, n notify.Notifier, user func() (models.User, bool), log logging.Logger) *Dashboard {
	if log == nil {
		log = logging.Nop()
	}
	return &Dashboard{
		ctl:  fetch.New(fetch.Join2(api.CyclePrediction, api.WellnessTip), n, "dashboard data", fetch.WithLogger(log)),
		user: user,
	}
}

func (d *Dashboard) Mount(ctx context.Context)   { d.ctl.Mount(ctx) }
func (d *Dashboard) Unmount()                    { d.ctl.Unmount() }
func (d *Dashboard) Refresh(ctx context.Context) { d.ctl.Refetch(ctx) }
func (d *Dashboard) Wait()                       { d.ctl.Wait() }

func (d *Dashboard) State() fetch.State[DashboardData] { return d.ctl.State() }

func (d *Dashboard) Render(w io.Writer) {
	name := ""
	if d.user != nil {
		if u, ok := d.user(); ok {
			name = u.FirstName
		}
	}
	fmt.Fprintf(w, "Welcome back, %s!\n\n", orNA(name))

	st := d.ctl.State()
	if st.Loading() || st.Phase == fetch.PhaseIdle {
		fmt.Fprintln(w, loadingText)
		return
	}

	fmt.Fprintln(w, "Next period prediction")
	if st.Ready() {
		p := st.Data.First
		fmt.Fprintf(w, "  Predicted start:  %s\n", fmtDate(p.PredictedPeriodStart))
		fmt.Fprintf(w, "  Confidence:       %d%%\n", p.ConfidencePercent())
		fmt.Fprintf(w, "  Ovulation:        %s\n", fmtDate(p.PredictedOvulationDate))
		fmt.Fprintf(w, "  Fertile window:   %s - %s\n", fmtDate(p.FertileWindowStart), fmtDate(p.FertileWindowEnd))
		if p.IsIrregular != nil && *p.IsIrregular {
			fmt.Fprintln(w, "  Cycle looks irregular.")
		}
		if p.Explanation != "" {
			fmt.Fprintf(w, "  %s\n", p.Explanation)
		}
	} else {
		fmt.Fprintf(w, "  %s\n", na)
	}

	fmt.Fprintln(w, "\nDaily wellness tip")
	tip := ""
	if st.Ready() {
		tip = st.Data.Second
	}
	fmt.Fprintf(w, "  %s\n", orNA(tip))
}
