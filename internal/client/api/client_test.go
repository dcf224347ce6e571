package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddot/reddot-client/internal/client/models"
)

type recorded struct {
	method string
	path   string
	auth   string
	reqID  string
	body   string
}

func newTestServer(t *testing.T, register func(r *mux.Router, rec *[]recorded)) (*HTTPClient, *[]recorded) {
	t.Helper()

	var calls []recorded
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			b, _ := io.ReadAll(req.Body)
			calls = append(calls, recorded{
				method: req.Method,
				path:   req.URL.Path,
				auth:   req.Header.Get("Authorization"),
				reqID:  req.Header.Get("X-Request-ID"),
				body:   string(b),
			})
			next.ServeHTTP(w, req)
		})
	})
	register(r, &calls)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return NewHTTPClient(srv.URL, WithHTTPClient(srv.Client())), &calls
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_DecodesUserAndToken(t *testing.T) {
	c, calls := newTestServer(t, func(r *mux.Router, _ *[]recorded) {
		r.HandleFunc("/api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"user":  map[string]any{"id": 7, "email": "ada@example.com", "firstName": "Ada", "lastName": "L"},
				"token": "tok-7",
			})
		}).Methods(http.MethodPost)
	})

	resp, err := c.Login(context.Background(), models.Credentials{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "tok-7", resp.Token())
	assert.Equal(t, models.ID("7"), resp.User.ID)

	require.Len(t, *calls, 1)
	assert.JSONEq(t, `{"email":"ada@example.com","password":"secret123"}`, (*calls)[0].body)
	assert.Empty(t, (*calls)[0].auth, "anonymous call must not carry a bearer token")
	assert.NotEmpty(t, (*calls)[0].reqID)
}

func TestBearerTokenIsReadAtSendTime(t *testing.T) {
	c, calls := newTestServer(t, func(r *mux.Router, _ *[]recorded) {
		r.HandleFunc("/api/periods", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, []any{})
		}).Methods(http.MethodGet)
	})

	token := "first"
	c.SetTokenSource(func() string { return token })

	_, err := c.ListPeriods(context.Background())
	require.NoError(t, err)
	token = "second"
	_, err = c.ListPeriods(context.Background())
	require.NoError(t, err)

	require.Len(t, *calls, 2)
	assert.Equal(t, "Bearer first", (*calls)[0].auth)
	assert.Equal(t, "Bearer second", (*calls)[1].auth)
	assert.NotEqual(t, (*calls)[0].reqID, (*calls)[1].reqID)
}

func TestListPeriods_PreservesServerOrder(t *testing.T) {
	c, _ := newTestServer(t, func(r *mux.Router, _ *[]recorded) {
		r.HandleFunc("/api/periods", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `[
				{"id":3,"startDate":"2024-03-01","endDate":null,"averageFlowIntensity":"LIGHT","painLevel":1,"notes":""},
				{"id":1,"startDate":"2024-01-01","endDate":"2024-01-05","averageFlowIntensity":"HEAVY","painLevel":7,"notes":"x"}
			]`)
		}).Methods(http.MethodGet)
	})

	list, err := c.ListPeriods(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.ID("3"), list[0].ID)
	assert.Equal(t, models.ID("1"), list[1].ID)
	require.NotNil(t, list[1].EndDate)
	assert.Equal(t, "2024-01-05", list[1].EndDate.String())
}

func TestCreatePeriod_SendsCalendarDates(t *testing.T) {
	c, calls := newTestServer(t, func(r *mux.Router, _ *[]recorded) {
		r.HandleFunc("/api/periods", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusCreated, map[string]any{"id": 9, "startDate": "2024-01-01", "averageFlowIntensity": "HEAVY", "painLevel": 7})
		}).Methods(http.MethodPost)
	})

	created, err := c.CreatePeriod(context.Background(), models.NewPeriod{
		StartDate:            models.NewDate(2024, time.January, 1),
		AverageFlowIntensity: models.FlowHeavy,
		PainLevel:            7,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ID("9"), created.ID)
	assert.Contains(t, (*calls)[0].body, `"startDate":"2024-01-01"`)
}

func TestWellnessTip_PlainTextAndJSONString(t *testing.T) {
	c, _ := newTestServer(t, func(r *mux.Router, _ *[]recorded) {
		r.HandleFunc("/api/wellness/tip", func(w http.ResponseWriter, req *http.Request) {
			if req.URL.Query().Get("json") != "" {
				writeJSON(w, http.StatusOK, "Drink water")
				return
			}
			w.Header().Set("Content-Type", "text/plain")
			_, _ = io.WriteString(w, "Stretch daily\n")
		}).Methods(http.MethodGet)
	})

	tip, err := c.WellnessTip(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Stretch daily", tip)

	var s string
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/api/wellness/tip?json=1", nil, &s))
	assert.Equal(t, "Drink water", s)
}

func TestErrorMapping(t *testing.T) {
	c, _ := newTestServer(t, func(r *mux.Router, _ *[]recorded) {
		r.HandleFunc("/api/profile", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
		}).Methods(http.MethodGet)
		r.HandleFunc("/api/periods/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}).Methods(http.MethodDelete)
		r.HandleFunc("/api/wellness/log", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sleepQuality must be 1-5"})
		}).Methods(http.MethodPost)
	})
	ctx := context.Background()

	_, err := c.GetProfile(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Bad credentials")

	require.ErrorIs(t, c.DeletePeriod(ctx, "12"), ErrNotFound)

	err = c.LogWellness(ctx, models.DefaultWellnessLog())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "sleepQuality must be 1-5", se.Message)
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, WithTimeout(time.Second))
	_, err := c.CyclePrediction(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
}

func TestAnalyticsDashboard_Decodes(t *testing.T) {
	c, _ := newTestServer(t, func(r *mux.Router, _ *[]recorded) {
		r.HandleFunc("/api/analytics/dashboard", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{
				"cycleConsistency":{"averageCycleLength":28,"consistency":"regular","cycleLengths":[28,30,27]},
				"symptomFrequency":{"frequency":{"cramps":4,"headache":2}},
				"moodTrends":{"moodDistribution":{}},
				"wellnessScore":{"score":72,"level":"good"}
			}`)
		}).Methods(http.MethodGet)
	})

	agg, err := c.AnalyticsDashboard(context.Background())
	require.NoError(t, err)
	require.NotNil(t, agg.CycleConsistency)
	assert.Equal(t, []float64{28, 30, 27}, agg.CycleConsistency.CycleLengths)
	assert.Equal(t, []string{"cramps", "headache"}, agg.SymptomFrequency.Frequency.Keys)
	assert.Equal(t, 0, agg.MoodTrends.MoodDistribution.Len())
}

func TestNotifications(t *testing.T) {
	c, calls := newTestServer(t, func(r *mux.Router, _ *[]recorded) {
		r.HandleFunc("/api/notifications", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "title": "Period due", "read": false}})
		}).Methods(http.MethodGet)
		r.HandleFunc("/api/notifications/{id}/read", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}).Methods(http.MethodPut)
		r.HandleFunc("/api/notifications/read-all", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}).Methods(http.MethodPut)
	})
	ctx := context.Background()

	list, err := c.Notifications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Period due", list[0].Title)

	require.NoError(t, c.MarkNotificationRead(ctx, "1"))
	require.NoError(t, c.MarkAllNotificationsRead(ctx))
	assert.Equal(t, "/api/notifications/1/read", (*calls)[1].path)
	assert.Equal(t, "/api/notifications/read-all", (*calls)[2].path)
}
