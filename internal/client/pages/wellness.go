package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/reddot/reddot-client/internal/client/fetch"
	"github.com/reddot/reddot-client/internal/client/models"
	"github.com/reddot/reddot-client/internal/client/notify"
	"github.com/reddot/reddot-client/internal/common"
	"github.com/reddot/reddot-client/internal/logging"
)

const (
	msgWellnessLogged = "Wellness data logged!"
	msgWellnessFailed = "Failed to log wellness data"
)

type WellnessAPI interface {
	WellnessTip(ctx context.Context) (string, error)
	LogWellness(ctx context.Context, l models.WellnessLog) error
}

// Wellness shows a tip that can be replaced on demand and the daily
// wellness log form.
type Wellness struct {
	api      WellnessAPI
	notifier notify.Notifier
	log      logging.Logger
	tip      *fetch.Controller[string]

	mu   sync.Mutex
	form models.WellnessLog
}

func NewWellness(api WellnessAPI, n notify.Notifier, log logging.Logger) *Wellness {
	if log == nil {
		log = logging.Nop()
	}
	return &Wellness{
		api:      api,
		notifier: n,
		log:      log,
		tip:      fetch.New(api.WellnessTip, n, "wellness tip", fetch.WithLogger(log)),
		form:     models.DefaultWellnessLog(),
	}
}

func (v *Wellness) Mount(ctx context.Context) { v.tip.Mount(ctx) }
func (v *Wellness) Unmount()                  { v.tip.Unmount() }
func (v *Wellness) Wait()                     { v.tip.Wait() }

// NewTip asks for another tip.
func (v *Wellness) NewTip(ctx context.Context) { v.tip.Refetch(ctx) }

func (v *Wellness) Tip() fetch.State[string] { return v.tip.State() }

func (v *Wellness) Form() models.WellnessLog {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

func (v *Wellness) SetWaterIntake(input string) error {
	n, err := parseCount("water intake", input)
	if err != nil {
		return err
	}
	v.edit(func(f *models.WellnessLog) { f.WaterIntake = n })
	return nil
}

func (v *Wellness) SetSleepHours(input string) error {
	n, err := parseCount("sleep hours", input)
	if err != nil {
		return err
	}
	if n > 24 {
		return common.Invalid("sleep hours %d: at most 24", n)
	}
	v.edit(func(f *models.WellnessLog) { f.SleepHours = n })
	return nil
}

func (v *Wellness) SetSleepQuality(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < models.MinSleepQuality || n > models.MaxSleepQuality {
		return common.Invalid("sleep quality %q: expected %d-%d", input, models.MinSleepQuality, models.MaxSleepQuality)
	}
	v.edit(func(f *models.WellnessLog) { f.SleepQuality = n })
	return nil
}

func (v *Wellness) SetExerciseMinutes(input string) error {
	n, err := parseCount("exercise minutes", input)
	if err != nil {
		return err
	}
	v.edit(func(f *models.WellnessLog) { f.ExerciseMinutes = n })
	return nil
}

func (v *Wellness) SetExerciseType(s string) {
	v.edit(func(f *models.WellnessLog) { f.ExerciseType = strings.TrimSpace(s) })
}

func (v *Wellness) SetNotes(s string) {
	v.edit(func(f *models.WellnessLog) { f.Notes = s })
}

func (v *Wellness) edit(fn func(*models.WellnessLog)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(&v.form)
}

// Submit posts the form and resets it on success. A failure keeps the form
// and is returned as *common.SubmitError.
func (v *Wellness) Submit(ctx context.Context) error {
	form := v.Form()

	if err := v.api.LogWellness(ctx, form); err != nil {
		v.log.Warn(ctx, "log wellness failed", "error", err)
		toastError(v.notifier, msgWellnessFailed)
		return &common.SubmitError{Action: "log wellness data", Err: err}
	}

	v.mu.Lock()
	v.form = models.DefaultWellnessLog()
	v.mu.Unlock()

	toastSuccess(v.notifier, msgWellnessLogged)
	return nil
}

func (v *Wellness) Render(w io.Writer) {
	fmt.Fprintln(w, "Wellness Assistant")

	fmt.Fprintln(w, "\nDaily Wellness Tip")
	st := v.Tip()
	if !renderPending(w, st) {
		fmt.Fprintf(w, "  %s\n", orNA(st.Data))
	}

	f := v.Form()
	fmt.Fprintln(w, "\nToday's log")
	fmt.Fprintf(w, "  Water intake:     %d glasses\n", f.WaterIntake)
	fmt.Fprintf(w, "  Sleep:            %d h, quality %d/%d\n", f.SleepHours, f.SleepQuality, models.MaxSleepQuality)
	fmt.Fprintf(w, "  Exercise:         %d min %s\n", f.ExerciseMinutes, f.ExerciseType)
	if f.Notes != "" {
		fmt.Fprintf(w, "  Notes:            %s\n", f.Notes)
	}
}
