// Package router maps client locations to views and gates protected ones on
// the session status.
package router

import (
	"github.com/reddot/reddot-client/internal/client/session"
)

const (
	PathRoot          = "/"
	PathLogin         = "/login"
	PathSignup        = "/signup"
	PathOnboarding    = "/onboarding"
	PathDashboard     = "/dashboard"
	PathPeriods       = "/periods"
	PathAnalytics     = "/analytics"
	PathWellness      = "/wellness"
	PathProfile       = "/profile"
	PathNotifications = "/notifications"
)

// Route is one entry of the route table.
type Route struct {
	Path      string
	Title     string
	Protected bool
}

var table = []Route{
	{Path: PathLogin, Title: "Login"},
	{Path: PathSignup, Title: "Sign up"},
	{Path: PathOnboarding, Title: "Onboarding", Protected: true},
	{Path: PathDashboard, Title: "Dashboard", Protected: true},
	{Path: PathPeriods, Title: "Period tracking", Protected: true},
	{Path: PathAnalytics, Title: "Analytics", Protected: true},
	{Path: PathWellness, Title: "Wellness", Protected: true},
	{Path: PathProfile, Title: "Profile", Protected: true},
	{Path: PathNotifications, Title: "Notifications", Protected: true},
}

// Routes returns the route table in menu order.
func Routes() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

// Lookup finds the route registered for path.
func Lookup(path string) (Route, bool) {
	for _, r := range table {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

type Kind int

const (
	Render Kind = iota
	Pending
	Redirect
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Render:
		return "render"
	case Pending:
		return "pending"
	case Redirect:
		return "redirect"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Decision is what the guard allows for a protected page. Target is set
// only for Redirect.
type Decision struct {
	Kind   Kind
	Target string
}

// Guard decides access to a protected page from the session status alone.
func Guard(status session.Status) Decision {
	switch status {
	case session.StatusAuthenticated:
		return Decision{Kind: Render}
	case session.StatusAuthenticating:
		return Decision{Kind: Pending}
	default:
		return Decision{Kind: Redirect, Target: PathLogin}
	}
}

// Location is the outcome of resolving a requested path: the path actually
// shown and how it is shown.
type Location struct {
	Path string
	Kind Kind
}

// Resolve follows the root redirect and the guard until it reaches a
// location that can be shown.
func Resolve(path string, status session.Status) Location {
	if path == PathRoot || path == "" {
		path = PathDashboard
	}

	route, ok := Lookup(path)
	if !ok {
		return Location{Path: path, Kind: NotFound}
	}
	if !route.Protected {
		return Location{Path: path, Kind: Render}
	}

	d := Guard(status)
	if d.Kind == Redirect {
		return Location{Path: d.Target, Kind: Render}
	}
	return Location{Path: path, Kind: d.Kind}
}
