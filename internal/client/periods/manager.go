// Package periods manages the period log view: the server-ordered list of
// entries and the entry form. Every successful write is followed by a full
// reload of the list; entries are never merged client-side.
package periods

import (
	"context"
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
	msgLogged       = "Period logged successfully!"
	msgLogFailed    = "Failed to log period"
	msgDeleted      = "Period deleted"
	msgDeleteFailed = "Failed to delete period"
)

type API interface {
	ListPeriods(ctx context.Context) ([]models.PeriodEntry, error)
	CreatePeriod(ctx context.Context, p models.NewPeriod) (models.PeriodEntry, error)
	DeletePeriod(ctx context.Context, id models.ID) error
}

// Form is the new-entry form.
type Form struct {
	StartDate            models.Date
	EndDate              *models.Date
	AverageFlowIntensity models.FlowIntensity
	PainLevel            int
	Notes                string
}

// DefaultForm starts today with moderate flow and no pain.
func DefaultForm(today models.Date) Form {
	return Form{
		StartDate:            today,
		AverageFlowIntensity: models.FlowModerate,
	}
}

func (f Form) payload() models.NewPeriod {
	return models.NewPeriod{
		StartDate:            f.StartDate,
		EndDate:              f.EndDate,
		AverageFlowIntensity: f.AverageFlowIntensity,
		PainLevel:            f.PainLevel,
		Notes:                f.Notes,
	}
}

type Manager struct {
	api      API
	notifier notify.Notifier
	log      logging.Logger
	today    func() models.Date
	list     *fetch.Controller[[]models.PeriodEntry]

	mu          sync.Mutex
	form        Form
	formVisible bool
}

func NewManager(api API, notifier notify.Notifier, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	log = log.With("component", "periods")

	m := &Manager{
		api:      api,
		notifier: notifier,
		log:      log,
		today:    models.Today,
	}
	m.form = DefaultForm(m.today())
	m.list = fetch.New(api.ListPeriods, notifier, "periods", fetch.WithLogger(log))
	return m
}

// Mount loads the list.
func (m *Manager) Mount(ctx context.Context) { m.list.Mount(ctx) }

func (m *Manager) Unmount() { m.list.Unmount() }

// List is the current fetch state of the list, in server order.
func (m *Manager) List() fetch.State[[]models.PeriodEntry] { return m.list.State() }

// Reload refetches the list.
func (m *Manager) Reload(ctx context.Context) { m.list.Refetch(ctx) }

// Wait blocks until in-flight list fetches settle.
func (m *Manager) Wait() { m.list.Wait() }

// OnChange forwards list transitions to fn.
func (m *Manager) OnChange(fn func(fetch.State[[]models.PeriodEntry])) { m.list.OnChange(fn) }

// ToggleForm shows or hides the entry form and reports whether it is now
// visible. Hiding keeps what was typed.
func (m *Manager) ToggleForm() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.formVisible = !m.formVisible
	return m.formVisible
}

func (m *Manager) FormVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.formVisible
}

func (m *Manager) Form() Form {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

func (m *Manager) SetStartDate(input string) error {
	d, err := models.ParseDate(strings.TrimSpace(input))
	if err != nil {
		return common.Invalid("start date %q: expected YYYY-MM-DD", input)
	}
	m.edit(func(f *Form) { f.StartDate = d })
	return nil
}

// SetEndDate accepts YYYY-MM-DD or "" for an ongoing period.
func (m *Manager) SetEndDate(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		m.edit(func(f *Form) { f.EndDate = nil })
		return nil
	}

	d, err := models.ParseDate(input)
	if err != nil {
		return common.Invalid("end date %q: expected YYYY-MM-DD", input)
	}
	m.edit(func(f *Form) { f.EndDate = &d })
	return nil
}

func (m *Manager) SetFlowIntensity(input string) error {
	flow, err := models.ParseFlowIntensity(input)
	if err != nil {
		return common.Invalid("%v", err)
	}
	m.edit(func(f *Form) { f.AverageFlowIntensity = flow })
	return nil
}

func (m *Manager) SetPainLevel(input string) error {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < models.MinPainLevel || v > models.MaxPainLevel {
		return common.Invalid("pain level %q: expected %d-%d", input, models.MinPainLevel, models.MaxPainLevel)
	}
	m.edit(func(f *Form) { f.PainLevel = v })
	return nil
}

func (m *Manager) SetNotes(notes string) {
	m.edit(func(f *Form) { f.Notes = notes })
}

func (m *Manager) edit(fn func(*Form)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.form)
}

// Create posts the form. On success the form is reset and hidden and the
// list reloads; on failure the form stays as it was and the error is
// returned as *common.SubmitError.
func (m *Manager) Create(ctx context.Context) (models.PeriodEntry, error) {
	m.mu.Lock()
	form := m.form
	m.mu.Unlock()

	created, err := m.api.CreatePeriod(ctx, form.payload())
	if err != nil {
		m.log.Warn(ctx, "create period failed", "error", err)
		m.toastError(msgLogFailed)
		return models.PeriodEntry{}, &common.SubmitError{Action: "log period", Err: err}
	}

	m.mu.Lock()
	m.form = DefaultForm(m.today())
	m.formVisible = false
	m.mu.Unlock()

	m.log.Info(ctx, "period logged", "id", string(created.ID), "start", form.StartDate.String())
	m.toastSuccess(msgLogged)
	m.list.Refetch(ctx)
	return created, nil
}

// Delete removes an entry and reloads the list.
func (m *Manager) Delete(ctx context.Context, id models.ID) error {
	if err := m.api.DeletePeriod(ctx, id); err != nil {
		m.log.Warn(ctx, "delete period failed", "id", string(id), "error", err)
		m.toastError(msgDeleteFailed)
		return &common.SubmitError{Action: "delete period", Err: err}
	}

	m.toastSuccess(msgDeleted)
	m.list.Refetch(ctx)
	return nil
}

func (m *Manager) toastSuccess(msg string) {
	if m.notifier != nil {
		m.notifier.Success(msg)
	}
}

func (m *Manager) toastError(msg string) {
	if m.notifier != nil {
		m.notifier.Error(msg)
	}
}
