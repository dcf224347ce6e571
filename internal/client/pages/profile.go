package pages

import (
	"context"
	"errors"
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
	msgProfileUpdated = "Profile updated successfully!"
	msgProfileFailed  = "Failed to update profile"
	notSet            = "Not set"
)

var ErrNotEditing = errors.New("profile is not in edit mode")

type ProfileAPI interface {
	GetProfile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (models.Profile, error)
}

// Profile shows the user profile and edits a subset of it.
type Profile struct {
	api      ProfileAPI
	notifier notify.Notifier
	log      logging.Logger
	ctl      *fetch.Controller[models.Profile]

	mu      sync.Mutex
	editing bool
	draft   models.ProfileUpdate
}

func NewProfile(api ProfileAPI, n notify.Notifier, log logging.Logger) *Profile {
	if log == nil {
		log = logging.Nop()
	}
	return &Profile{
		api:      api,
		notifier: n,
		log:      log,
		ctl:      fetch.New(api.GetProfile, n, "profile", fetch.WithLogger(log)),
	}
}

func (p *Profile) Mount(ctx context.Context) { p.ctl.Mount(ctx) }

// Unmount leaves edit mode; drafts are not kept across visits.
func (p *Profile) Unmount() {
	p.ctl.Unmount()

	p.mu.Lock()
	p.editing = false
	p.draft = models.ProfileUpdate{}
	p.mu.Unlock()
}

func (p *Profile) Refresh(ctx context.Context) { p.ctl.Refetch(ctx) }
func (p *Profile) Wait()                       { p.ctl.Wait() }

func (p *Profile) State() fetch.State[models.Profile] { return p.ctl.State() }

func (p *Profile) Editing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editing
}

// Draft is the pending partial update.
func (p *Profile) Draft() models.ProfileUpdate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft
}

// ToggleEdit enters or leaves edit mode and reports the new mode. Entering
// starts from an empty draft, so unchanged fields are not sent.
func (p *Profile) ToggleEdit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.editing = !p.editing
	p.draft = models.ProfileUpdate{}
	return p.editing
}

func (p *Profile) SetFirstName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return common.Invalid("first name cannot be empty")
	}
	return p.edit(func(d *models.ProfileUpdate) { d.FirstName = &s })
}

func (p *Profile) SetLastName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return common.Invalid("last name cannot be empty")
	}
	return p.edit(func(d *models.ProfileUpdate) { d.LastName = &s })
}

func (p *Profile) SetHeight(input string) error {
	v, err := parsePositiveFloat("height", input)
	if err != nil {
		return err
	}
	return p.edit(func(d *models.ProfileUpdate) { d.Height = &v })
}

func (p *Profile) SetWeight(input string) error {
	v, err := parsePositiveFloat("weight", input)
	if err != nil {
		return err
	}
	return p.edit(func(d *models.ProfileUpdate) { d.Weight = &v })
}

func (p *Profile) SetAverageCycleLength(input string) error {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v <= 0 {
		return common.Invalid("average cycle length %q: expected a positive whole number", input)
	}
	return p.edit(func(d *models.ProfileUpdate) { d.AverageCycleLength = &v })
}

func (p *Profile) edit(fn func(*models.ProfileUpdate)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.editing {
		return ErrNotEditing
	}
	fn(&p.draft)
	return nil
}

// Save sends the draft. Success leaves edit mode and reloads the profile;
// failure stays in edit mode with the draft intact.
func (p *Profile) Save(ctx context.Context) error {
	p.mu.Lock()
	if !p.editing {
		p.mu.Unlock()
		return ErrNotEditing
	}
	draft := p.draft
	p.mu.Unlock()

	if _, err := p.api.UpdateProfile(ctx, draft); err != nil {
		p.log.Warn(ctx, "profile update failed", "error", err)
		toastError(p.notifier, msgProfileFailed)
		return &common.SubmitError{Action: "update profile", Err: err}
	}

	p.mu.Lock()
	p.editing = false
	p.draft = models.ProfileUpdate{}
	p.mu.Unlock()

	toastSuccess(p.notifier, msgProfileUpdated)
	p.ctl.Refetch(ctx)
	return nil
}

func (p *Profile) Render(w io.Writer) {
	fmt.Fprintln(w, "Profile")
	st := p.ctl.State()
	if renderPending(w, st) {
		return
	}

	pr := st.Data
	name := strings.TrimSpace(pr.FirstName + " " + pr.LastName)
	fmt.Fprintf(w, "  Name:                  %s\n", orNA(name))
	fmt.Fprintf(w, "  Email:                 %s\n", orNA(pr.Email))
	fmt.Fprintf(w, "  Date of birth:         %s\n", fmtDate(pr.DateOfBirth))
	fmt.Fprintf(w, "  Height:                %s\n", orNotSet(pr.Height, " cm"))
	fmt.Fprintf(w, "  Weight:                %s\n", orNotSet(pr.Weight, " kg"))
	fmt.Fprintf(w, "  Average cycle length:  %s\n", orNotSetInt(pr.AverageCycleLength, " days"))
	fmt.Fprintf(w, "  Average period length: %s\n", orNotSetInt(pr.AveragePeriodLength, " days"))
	fmt.Fprintf(w, "  Activity level:        %s\n", orNA(pr.ActivityLevel))
	fmt.Fprintf(w, "  Diet type:             %s\n", orNA(pr.DietType))
	if len(pr.HealthConditions) > 0 {
		fmt.Fprintf(w, "  Health conditions:     %s\n", strings.Join(pr.HealthConditions, ", "))
	}

	if p.Editing() {
		d := p.Draft()
		fmt.Fprintln(w, "\nEditing; pending changes:")
		if d == (models.ProfileUpdate{}) {
			fmt.Fprintln(w, "  (none)")
		}
		if d.FirstName != nil {
			fmt.Fprintf(w, "  first name -> %s\n", *d.FirstName)
		}
		if d.LastName != nil {
			fmt.Fprintf(w, "  last name -> %s\n", *d.LastName)
		}
		if d.Height != nil {
			fmt.Fprintf(w, "  height -> %s\n", fmtFloat(d.Height, " cm"))
		}
		if d.Weight != nil {
			fmt.Fprintf(w, "  weight -> %s\n", fmtFloat(d.Weight, " kg"))
		}
		if d.AverageCycleLength != nil {
			fmt.Fprintf(w, "  average cycle length -> %s\n", fmtInt(d.AverageCycleLength, " days"))
		}
	}
}

func orNotSet(v *float64, unit string) string {
	if v == nil || *v == 0 {
		return notSet
	}
	return fmtFloat(v, unit)
}

func orNotSetInt(v *int, unit string) string {
	if v == nil || *v == 0 {
		return notSet
	}
	return fmtInt(v, unit)
}
