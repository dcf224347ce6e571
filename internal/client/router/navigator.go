package router

import (
	"context"
	"sync"

	"github.com/reddot/reddot-client/internal/client/session"
	"github.com/reddot/reddot-client/internal/logging"
)

// View is a page that holds state only while mounted.
type View interface {
	Mount(ctx context.Context)
	Unmount()
}

// StatusSource is the part of the session store the navigator needs.
type StatusSource interface {
	Status() session.Status
	Subscribe(fn func(session.Status)) (unsubscribe func())
}

// Navigator tracks the current location and keeps exactly one view mounted.
// It re-resolves the location whenever the session status changes, so a
// logout on a protected page lands on /login.
type Navigator struct {
	source StatusSource
	views  map[string]func() View
	log    logging.Logger

	mu          sync.Mutex
	ctx         context.Context
	requested   string
	location    Location
	active      View
	unsubscribe func()
	onChange    func(Location)
}

// NewNavigator builds a navigator. views maps a route path to a factory
// called each time that route is entered; routes without a factory render
// nothing.
func NewNavigator(source StatusSource, views map[string]func() View, log logging.Logger) *Navigator {
	if log == nil {
		log = logging.Nop()
	}
	return &Navigator{
		source: source,
		views:  views,
		log:    log.With("component", "router"),
		ctx:    context.Background(),
	}
}

// OnChange registers a callback run after every location change.
func (n *Navigator) OnChange(fn func(Location)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onChange = fn
}

// Start subscribes to status changes and navigates to path. ctx is handed to
// every mounted view.
func (n *Navigator) Start(ctx context.Context, path string) Location {
	n.mu.Lock()
	n.ctx = ctx
	if n.unsubscribe == nil {
		n.unsubscribe = n.source.Subscribe(n.statusChanged)
	}
	n.mu.Unlock()

	return n.Navigate(path)
}

// Stop unsubscribes and unmounts the active view.
func (n *Navigator) Stop() {
	n.mu.Lock()
	unsubscribe := n.unsubscribe
	n.unsubscribe = nil
	if n.active != nil {
		n.active.Unmount()
		n.active = nil
	}
	n.location = Location{}
	n.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Navigate requests path and returns where the user actually ends up.
func (n *Navigator) Navigate(path string) Location {
	n.mu.Lock()
	n.requested = path
	loc, changed := n.resolveLocked()
	onChange := n.onChange
	n.mu.Unlock()

	if changed && onChange != nil {
		onChange(loc)
	}
	return loc
}

// Current is the location being shown.
func (n *Navigator) Current() Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

// Active is the mounted view, nil when the location renders none.
func (n *Navigator) Active() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

func (n *Navigator) statusChanged(status session.Status) {
	n.mu.Lock()
	if n.requested == "" {
		n.mu.Unlock()
		return
	}
	loc, changed := n.resolveLocked()
	onChange := n.onChange
	ctx := n.ctx
	n.mu.Unlock()

	n.log.Debug(ctx, "status changed", "status", string(status), "path", loc.Path)
	if changed && onChange != nil {
		onChange(loc)
	}
}

// resolveLocked re-resolves the requested path and swaps views when the
// location changed. A redirect replaces the requested path.
func (n *Navigator) resolveLocked() (Location, bool) {
	loc := Resolve(n.requested, n.source.Status())
	if loc.Kind == Render {
		n.requested = loc.Path
	}

	if loc == n.location {
		return loc, false
	}

	if n.active != nil {
		n.active.Unmount()
		n.active = nil
	}

	if loc.Kind == Render {
		if factory := n.views[loc.Path]; factory != nil {
			n.active = factory()
			n.active.Mount(n.ctx)
		}
	}

	n.location = loc
	n.log.Debug(n.ctx, "navigated", "path", loc.Path, "kind", loc.Kind.String())
	return loc, true
}
