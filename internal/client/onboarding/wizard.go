package onboarding

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/reddot/reddot-client/internal/client/models"
	"github.com/reddot/reddot-client/internal/client/notify"
	"github.com/reddot/reddot-client/internal/common"
	"github.com/reddot/reddot-client/internal/logging"
)

const (
	msgCompleted = "Onboarding completed!"
	msgFailed    = "Failed to complete onboarding"
	msgConsent   = "Please accept the terms to continue"
)

var ErrClosed = errors.New("onboarding already submitted")

// Submitter posts the collected profile.
type Submitter interface {
	SubmitOnboarding(ctx context.Context, req models.OnboardingRequest) error
}

// Fields is the partial profile collected across the steps. Nil means the
// user left the field empty.
type Fields struct {
	DateOfBirth         *models.Date
	Height              *float64
	Weight              *float64
	AverageCycleLength  *int
	AveragePeriodLength *int
	HealthConditions    []string
	ActivityLevel       string
	DietType            string
	ConsentGiven        bool
}

func (f Fields) request() models.OnboardingRequest {
	conditions := f.HealthConditions
	if conditions == nil {
		conditions = []string{}
	}
	return models.OnboardingRequest{
		DateOfBirth:         f.DateOfBirth,
		Height:              f.Height,
		Weight:              f.Weight,
		AverageCycleLength:  f.AverageCycleLength,
		AveragePeriodLength: f.AveragePeriodLength,
		HealthConditions:    conditions,
		ActivityLevel:       f.ActivityLevel,
		DietType:            f.DietType,
		ConsentGiven:        f.ConsentGiven,
	}
}

// Wizard is one onboarding session. Field setters do not validate other
// fields and never move between steps.
type Wizard struct {
	api      Submitter
	notifier notify.Notifier
	log      logging.Logger
	today    func() models.Date

	mu     sync.Mutex
	state  State
	fields Fields
}

func NewWizard(api Submitter, notifier notify.Notifier, log logging.Logger) *Wizard {
	if log == nil {
		log = logging.Nop()
	}
	return &Wizard{
		api:      api,
		notifier: notifier,
		log:      log.With("component", "onboarding"),
		today:    models.Today,
		state:    Step1,
		fields:   Fields{ConsentGiven: true},
	}
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Fields returns a copy of the form.
func (w *Wizard) Fields() Fields {
	w.mu.Lock()
	defer w.mu.Unlock()

	f := w.fields
	f.HealthConditions = append([]string(nil), w.fields.HealthConditions...)
	return f
}

func (w *Wizard) Next() error { return w.fire(Next) }
func (w *Wizard) Back() error { return w.fire(Back) }

func (w *Wizard) fire(e Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := Transition(w.state, e)
	if err != nil {
		return err
	}
	w.state = next
	return nil
}

// SetDateOfBirth accepts YYYY-MM-DD or "" to clear. Dates after today are
// rejected and leave the field unchanged.
func (w *Wizard) SetDateOfBirth(input string) error {
	input = strings.TrimSpace(input)

	var dob *models.Date
	if input != "" {
		d, err := models.ParseDate(input)
		if err != nil {
			return common.Invalid("date of birth %q: expected YYYY-MM-DD", input)
		}
		if d.After(w.today()) {
			return common.Invalid("date of birth %s is in the future", d)
		}
		dob = &d
	}

	return w.update(func(f *Fields) { f.DateOfBirth = dob })
}

// SetHeight stores the height in cm; unparsable or zero input clears it.
func (w *Wizard) SetHeight(input string) error {
	v := parseFloatOrNil(input)
	return w.update(func(f *Fields) { f.Height = v })
}

// SetWeight stores the weight in kg; unparsable or zero input clears it.
func (w *Wizard) SetWeight(input string) error {
	v := parseFloatOrNil(input)
	return w.update(func(f *Fields) { f.Weight = v })
}

func (w *Wizard) SetAverageCycleLength(input string) error {
	v := parseIntOrNil(input)
	return w.update(func(f *Fields) { f.AverageCycleLength = v })
}

func (w *Wizard) SetAveragePeriodLength(input string) error {
	v := parseIntOrNil(input)
	return w.update(func(f *Fields) { f.AveragePeriodLength = v })
}

// SetActivityLevel accepts one of models.ActivityLevels or "".
func (w *Wizard) SetActivityLevel(input string) error {
	v, err := oneOf("activity level", input, models.ActivityLevels)
	if err != nil {
		return err
	}
	return w.update(func(f *Fields) { f.ActivityLevel = v })
}

// SetDietType accepts one of models.DietTypes or "".
func (w *Wizard) SetDietType(input string) error {
	v, err := oneOf("diet type", input, models.DietTypes)
	if err != nil {
		return err
	}
	return w.update(func(f *Fields) { f.DietType = v })
}

func (w *Wizard) SetConsent(given bool) error {
	return w.update(func(f *Fields) { f.ConsentGiven = given })
}

// AddHealthCondition appends a condition; blanks and duplicates are ignored.
func (w *Wizard) AddHealthCondition(condition string) error {
	condition = strings.TrimSpace(condition)
	return w.update(func(f *Fields) {
		if condition == "" {
			return
		}
		for _, c := range f.HealthConditions {
			if strings.EqualFold(c, condition) {
				return
			}
		}
		f.HealthConditions = append(f.HealthConditions, condition)
	})
}

func (w *Wizard) update(fn func(*Fields)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == Submitted {
		return ErrClosed
	}
	fn(&w.fields)
	return nil
}

// Submit posts the form once. It is only valid on Step3. On failure the
// wizard stays on Step3 with every field intact and the error is returned
// as *common.SubmitError.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if _, err := Transition(w.state, Submit); err != nil {
		w.mu.Unlock()
		return err
	}
	fields := w.fields
	w.mu.Unlock()

	if !fields.ConsentGiven {
		w.notify(false, msgConsent)
		return &common.SubmitError{Action: "complete onboarding", Err: common.ErrConsentRequired}
	}

	if err := w.api.SubmitOnboarding(ctx, fields.request()); err != nil {
		w.log.Warn(ctx, "onboarding submit failed", "error", err)
		w.notify(false, msgFailed)
		return &common.SubmitError{Action: "complete onboarding", Err: err}
	}

	w.mu.Lock()
	w.state = Submitted
	w.mu.Unlock()

	w.log.Info(ctx, "onboarding completed")
	w.notify(true, msgCompleted)
	return nil
}

func (w *Wizard) notify(ok bool, msg string) {
	if w.notifier == nil {
		return
	}
	if ok {
		w.notifier.Success(msg)
	} else {
		w.notifier.Error(msg)
	}
}

func parseFloatOrNil(input string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseIntOrNil(input string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

func oneOf(field, input string, allowed []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	for _, a := range allowed {
		if strings.EqualFold(a, input) {
			return a, nil
		}
	}
	return "", common.Invalid("%s %q: expected one of %s", field, input, strings.Join(allowed, ", "))
}
