package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/reddot/reddot-client/internal/client/api"
	"github.com/reddot/reddot-client/internal/client/config"
	"github.com/reddot/reddot-client/internal/client/notify"
	"github.com/reddot/reddot-client/internal/client/onboarding"
	"github.com/reddot/reddot-client/internal/client/pages"
	"github.com/reddot/reddot-client/internal/client/periods"
	"github.com/reddot/reddot-client/internal/client/repositories"
	"github.com/reddot/reddot-client/internal/client/router"
	"github.com/reddot/reddot-client/internal/client/session"
	"github.com/reddot/reddot-client/internal/filex"
	"github.com/reddot/reddot-client/internal/logging"
)

var errWrongPage = errors.New("not available on this page")

type App struct {
	config  *config.Config
	log     logging.Logger
	out     io.Writer
	reader  *bufio.Reader
	toaster *notify.Toaster
	api     *api.HTTPClient
	repos   *repositories.Repositories
	session *session.Store
	nav     *router.Navigator
}

// NewApp opens the local database and wires the API client, session store
// and navigator. Prompts read from in; everything user-facing goes to out.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	dsn := c.DatabasePath
	if dir := filepath.Dir(dsn); dir != "." {
		abs, err := filex.EnsureDir(dir)
		if err != nil {
			return nil, fmt.Errorf("database directory: %w", err)
		}
		dsn = filepath.Join(abs, filepath.Base(dsn))
	}

	repos, err := repositories.InitDatabase(ctx, dsn)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", dsn, "error", err)
		return nil, err
	}

	client := api.NewHTTPClient(c.APIBaseURL, api.WithTimeout(c.RequestTimeout), api.WithLogger(log))
	store := session.NewStore(client, repos.Metadata, log)
	client.SetTokenSource(store.Token)

	a := &App{
		config:  c,
		log:     log,
		out:     out,
		reader:  bufio.NewReader(in),
		toaster: notify.NewToaster(out, c.ToastTTL),
		api:     client,
		repos:   repos,
		session: store,
	}
	a.nav = router.NewNavigator(store, a.views(), log)
	a.nav.OnChange(a.announce)
	return a, nil
}

func (a *App) views() map[string]func() router.View {
	return map[string]func() router.View{
		router.PathOnboarding: func() router.View {
			return &onboardingView{Wizard: onboarding.NewWizard(a.api, a.toaster, a.log)}
		},
		router.PathDashboard: func() router.View {
			return pages.NewDashboard(a.api, a.toaster, a.session.User, a.log)
		},
		router.PathPeriods: func() router.View {
			return periods.NewManager(a.api, a.toaster, a.log)
		},
		router.PathAnalytics: func() router.View {
			return pages.NewAnalytics(a.api, a.toaster, a.log)
		},
		router.PathWellness: func() router.View {
			return pages.NewWellness(a.api, a.toaster, a.log)
		},
		router.PathProfile: func() router.View {
			return pages.NewProfile(a.api, a.toaster, a.log)
		},
		router.PathNotifications: func() router.View {
			return pages.NewNotifications(a.api, a.toaster, a.log)
		},
	}
}

// Run restores the previous session, opens the start page and blocks in the
// REPL until the user exits. ctx outlives every command and is the context
// pages fetch with.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to RedDot (type 'help' for commands)")
	if a.session.Restore(ctx) {
		fmt.Fprintln(a.out, "Restored previous session")
	}
	a.nav.Start(ctx, router.PathRoot)

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() {
	a.nav.Stop()
	if err := a.repos.Close(); err != nil {
		a.log.Warn(context.Background(), "close database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Status() == session.StatusAuthenticated
}

// status is the prompt label: who is signed in and where they are.
func (a *App) status() string {
	s := strings.ToLower(string(a.session.Status()))
	if u, ok := a.session.User(); ok && u.Email != "" {
		s = u.Email
	}
	if loc := a.nav.Current(); loc.Path != "" {
		s += " " + loc.Path
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) announce(loc router.Location) {
	switch loc.Kind {
	case router.NotFound:
		fmt.Fprintf(a.out, "Page not found: %s\n", loc.Path)
	case router.Pending:
		fmt.Fprintln(a.out, "Signing in...")
	default:
		if r, ok := router.Lookup(loc.Path); ok {
			fmt.Fprintf(a.out, "== %s ==\n", r.Title)
		}
	}
}

// Go navigates to a page by name or path and prints it.
func (a *App) Go(ctx context.Context, page string) error {
	path := page
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	loc := a.nav.Navigate(path)
	if loc.Kind == router.NotFound {
		return nil
	}
	if loc.Path != path && path != router.PathRoot {
		fmt.Fprintln(a.out, "Please log in first.")
	}
	a.render()
	return nil
}

// Show waits for the page's fetches to settle and prints it.
func (a *App) Show(ctx context.Context) error {
	if w, ok := a.nav.Active().(interface{ Wait() }); ok {
		w.Wait()
	}
	a.render()
	return nil
}

// Refresh re-fetches the data of the current page.
func (a *App) Refresh(ctx context.Context) error {
	switch v := a.nav.Active().(type) {
	case interface{ Refresh(context.Context) }:
		v.Refresh(ctx)
	case *periods.Manager:
		v.Reload(ctx)
	case *pages.Wellness:
		v.NewTip(ctx)
	default:
		fmt.Fprintln(a.out, "Nothing to refresh here.")
		return nil
	}
	return a.Show(ctx)
}

func (a *App) render() {
	switch v := a.nav.Active().(type) {
	case interface{ Render(io.Writer) }:
		v.Render(a.out)
	case nil:
		switch a.nav.Current().Path {
		case router.PathLogin:
			fmt.Fprintln(a.out, "Type 'login' to sign in or 'signup' to create an account.")
		case router.PathSignup:
			fmt.Fprintln(a.out, "Type 'signup' to create an account.")
		}
	}
}

// activeView returns the mounted view as T, or errWrongPage when the user is
// somewhere else.
func activeView[T router.View](a *App, path string) (T, error) {
	v, ok := a.nav.Active().(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: open %s first", errWrongPage, path)
	}
	return v, nil
}
