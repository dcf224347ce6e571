package pages

import (
	"context"
	"sync"

	"github.com/reddot/reddot-client/internal/client/models"
)

// fakeAPI implements every page API from canned values.
type fakeAPI struct {
	mu sync.Mutex

	prediction    models.CyclePrediction
	predictionErr error
	tip           string
	tipErr        error
	tipCalls      int

	aggregate    models.AnalyticsAggregate
	aggregateErr error

	logErr error
	logs   []models.WellnessLog

	profile    models.Profile
	profileErr error
	updateErr  error
	updates    []models.ProfileUpdate

	notifications []models.Notification
	markErr       error
}

func (f *fakeAPI) CyclePrediction(context.Context) (models.CyclePrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prediction, f.predictionErr
}

func (f *fakeAPI) WellnessTip(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tipCalls++
	return f.tip, f.tipErr
}

func (f *fakeAPI) AnalyticsDashboard(context.Context) (models.AnalyticsAggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.aggregate, f.aggregateErr
}

func (f *fakeAPI) LogWellness(_ context.Context, l models.WellnessLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.logErr != nil {
		return f.logErr
	}
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeAPI) GetProfile(context.Context) (models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, f.profileErr
}

func (f *fakeAPI) UpdateProfile(_ context.Context, upd models.ProfileUpdate) (models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return models.Profile{}, f.updateErr
	}
	f.updates = append(f.updates, upd)
	if upd.FirstName != nil {
		f.profile.FirstName = *upd.FirstName
	}
	if upd.Height != nil {
		f.profile.Height = upd.Height
	}
	return f.profile, nil
}

func (f *fakeAPI) Notifications(context.Context) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Notification(nil), f.notifications...), nil
}

func (f *fakeAPI) MarkNotificationRead(_ context.Context, id models.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications[i].Read = true
		}
	}
	return nil
}

func (f *fakeAPI) MarkAllNotificationsRead(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	for i := range f.notifications {
		f.notifications[i].Read = true
	}
	return nil
}

func (f *fakeAPI) set(fn func(*fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}
