package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reddot/reddot-client/internal/client/session"
)

var allStatuses = []session.Status{
	session.StatusAnonymous,
	session.StatusAuthenticating,
	session.StatusAuthenticated,
	session.StatusError,
}

func TestGuard(t *testing.T) {
	tests := []struct {
		status session.Status
		want   Decision
	}{
		{session.StatusAnonymous, Decision{Kind: Redirect, Target: PathLogin}},
		{session.StatusError, Decision{Kind: Redirect, Target: PathLogin}},
		{session.StatusAuthenticating, Decision{Kind: Pending}},
		{session.StatusAuthenticated, Decision{Kind: Render}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, Guard(tt.status))
		})
	}
}

func TestResolve_ProtectedRoutesNeverRenderWithoutSession(t *testing.T) {
	for _, r := range Routes() {
		if !r.Protected {
			continue
		}
		for _, st := range allStatuses {
			loc := Resolve(r.Path, st)
			switch st {
			case session.StatusAuthenticated:
				assert.Equal(t, Location{Path: r.Path, Kind: Render}, loc, "%s as %s", r.Path, st)
			case session.StatusAuthenticating:
				assert.Equal(t, Location{Path: r.Path, Kind: Pending}, loc, "%s as %s", r.Path, st)
			default:
				assert.Equal(t, Location{Path: PathLogin, Kind: Render}, loc, "%s as %s", r.Path, st)
			}
		}
	}
}

func TestResolve_PublicRoutesAlwaysRender(t *testing.T) {
	for _, st := range allStatuses {
		assert.Equal(t, Location{Path: PathLogin, Kind: Render}, Resolve(PathLogin, st))
		assert.Equal(t, Location{Path: PathSignup, Kind: Render}, Resolve(PathSignup, st))
	}
}

func TestResolve_RootAndUnknown(t *testing.T) {
	assert.Equal(t, Location{Path: PathDashboard, Kind: Render}, Resolve(PathRoot, session.StatusAuthenticated))
	assert.Equal(t, Location{Path: PathLogin, Kind: Render}, Resolve(PathRoot, session.StatusAnonymous))
	assert.Equal(t, Location{Path: "/nope", Kind: NotFound}, Resolve("/nope", session.StatusAuthenticated))
	assert.Equal(t, Location{Path: "/nope", Kind: NotFound}, Resolve("/nope", session.StatusAnonymous))
}

func TestLookup(t *testing.T) {
	r, ok := Lookup(PathNotifications)
	assert.True(t, ok)
	assert.True(t, r.Protected)

	_, ok = Lookup(PathRoot)
	assert.False(t, ok)
}
