package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/reddot/reddot-client/internal/client/models"
)

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", creds, &resp)
	return resp, err
}

func (c *HTTPClient) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", req, &resp)
	return resp, err
}

func (c *HTTPClient) SubmitOnboarding(ctx context.Context, req models.OnboardingRequest) error {
	return c.do(ctx, http.MethodPost, "/api/profile/onboarding", req, nil)
}

func (c *HTTPClient) GetProfile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	err := c.do(ctx, http.MethodGet, "/api/profile", nil, &p)
	return p, err
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (models.Profile, error) {
	var p models.Profile
	err := c.do(ctx, http.MethodPut, "/api/profile", upd, &p)
	return p, err
}

func (c *HTTPClient) ListPeriods(ctx context.Context) ([]models.PeriodEntry, error) {
	periods := []models.PeriodEntry{}
	if err := c.do(ctx, http.MethodGet, "/api/periods", nil, &periods); err != nil {
		return nil, err
	}
	return periods, nil
}

func (c *HTTPClient) CreatePeriod(ctx context.Context, p models.NewPeriod) (models.PeriodEntry, error) {
	var created models.PeriodEntry
	err := c.do(ctx, http.MethodPost, "/api/periods", p, &created)
	return created, err
}

func (c *HTTPClient) DeletePeriod(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/api/periods/"+url.PathEscape(string(id)), nil, nil)
}

func (c *HTTPClient) CyclePrediction(ctx context.Context) (models.CyclePrediction, error) {
	var p models.CyclePrediction
	err := c.do(ctx, http.MethodGet, "/api/predictions/cycle", nil, &p)
	return p, err
}

func (c *HTTPClient) WellnessTip(ctx context.Context) (string, error) {
	var tip string
	err := c.do(ctx, http.MethodGet, "/api/wellness/tip", nil, &tip)
	return tip, err
}

func (c *HTTPClient) LogWellness(ctx context.Context, l models.WellnessLog) error {
	return c.do(ctx, http.MethodPost, "/api/wellness/log", l, nil)
}

func (c *HTTPClient) AnalyticsDashboard(ctx context.Context) (models.AnalyticsAggregate, error) {
	var agg models.AnalyticsAggregate
	err := c.do(ctx, http.MethodGet, "/api/analytics/dashboard", nil, &agg)
	return agg, err
}

func (c *HTTPClient) Notifications(ctx context.Context) ([]models.Notification, error) {
	list := []models.Notification{}
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodPut, "/api/notifications/"+url.PathEscape(string(id))+"/read", nil, nil)
}

func (c *HTTPClient) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/api/notifications/read-all", nil, nil)
}
