// Package session owns the signed-in identity of the client: the current
// user, their bearer token and the authentication status that the router
// guards on. The token is the only state that survives a restart.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/reddot/reddot-client/internal/client/models"
	"github.com/reddot/reddot-client/internal/client/repositories/metadata"
	"github.com/reddot/reddot-client/internal/common"
	"github.com/reddot/reddot-client/internal/logging"
)

type Status string

const (
	StatusAnonymous      Status = "ANONYMOUS"
	StatusAuthenticating Status = "AUTHENTICATING"
	StatusAuthenticated  Status = "AUTHENTICATED"
	StatusError          Status = "ERROR"
)

var errNoToken = errors.New("server returned no token")

// AuthAPI is the part of the remote API the store talks to.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	Signup(ctx context.Context, req models.SignupRequest) (models.AuthResponse, error)
}

type subscriber struct {
	id int
	fn func(Status)
}

// Store is the single owner of session state. It is safe for concurrent use;
// overlapping Login/Signup calls are not coalesced and the last one to
// resolve determines the final state.
type Store struct {
	api  AuthAPI
	meta metadata.Repository
	log  logging.Logger

	mu       sync.RWMutex
	user     *models.User
	token    string
	status   Status
	restored bool

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

// NewStore returns an anonymous store. Call Restore once at startup.
func NewStore(api AuthAPI, meta metadata.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		api:    api,
		meta:   meta,
		log:    log.With("component", "session"),
		status: StatusAnonymous,
	}
}

// Login authenticates with email and password. Any failure leaves the store
// in StatusError and is returned as *common.AuthError.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	s.setStatus(StatusAuthenticating)

	resp, err := s.api.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		s.log.Warn(ctx, "login failed", "email", logging.MaskEmail(email), "error", err)
		return s.fail("login", err)
	}

	return s.establish(ctx, "login", resp)
}

// Signup registers a new account and signs it in. A request rejected by
// Validate never reaches the network and leaves the status untouched.
func (s *Store) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	if err := req.Validate(); err != nil {
		return models.User{}, &common.AuthError{Op: "signup", Err: err}
	}

	s.setStatus(StatusAuthenticating)

	resp, err := s.api.Signup(ctx, req)
	if err != nil {
		s.log.Warn(ctx, "signup failed", "email", logging.MaskEmail(req.Email), "error", err)
		return s.fail("signup", err)
	}

	return s.establish(ctx, "signup", resp)
}

// Logout drops the session and the persisted token. Storage errors are
// logged, never returned.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.status = StatusAnonymous
	s.mu.Unlock()

	if err := s.meta.Delete(ctx, metadata.KeySessionToken); err != nil {
		s.log.Error(ctx, "failed to remove persisted token", "error", err)
	}

	s.log.Info(ctx, "logged out")
	s.publish(StatusAnonymous)
}

// Restore reads the persisted token once per process. When a token is found
// the store becomes authenticated with a user shell built from the token's
// claims; the profile itself is loaded by the views. Later calls are no-ops.
func (s *Store) Restore(ctx context.Context) bool {
	s.mu.Lock()
	if s.restored {
		ok := s.status == StatusAuthenticated
		s.mu.Unlock()
		return ok
	}
	s.restored = true
	s.mu.Unlock()

	token, ok, err := s.meta.Get(ctx, metadata.KeySessionToken)
	if err != nil {
		s.log.Error(ctx, "failed to read persisted token", "error", err)
		return false
	}
	if !ok || token == "" {
		return false
	}

	shell := userShell(token)

	s.mu.Lock()
	s.user = &shell
	s.token = token
	s.status = StatusAuthenticated
	s.mu.Unlock()

	s.log.Info(ctx, "session restored", "email", logging.MaskEmail(shell.Email))
	s.publish(StatusAuthenticated)
	return true
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// User returns the current user, if any.
func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Token is the bearer token of the current session or "". It doubles as the
// api.TokenSource of the HTTP client.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Subscribe registers fn to be called after every status change, in
// registration order. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Status)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) establish(ctx context.Context, op string, resp models.AuthResponse) (models.User, error) {
	token := resp.Token()
	if token == "" {
		return s.fail(op, errNoToken)
	}

	user := resp.User

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.status = StatusAuthenticated
	s.mu.Unlock()

	if err := s.meta.Set(ctx, metadata.KeySessionToken, token); err != nil {
		s.log.Error(ctx, "failed to persist token", "error", err)
	}

	s.log.Info(ctx, op+" succeeded", "email", logging.MaskEmail(user.Email), "token", logging.MaskToken(token))
	s.publish(StatusAuthenticated)
	return user, nil
}

func (s *Store) fail(op string, err error) (models.User, error) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.status = StatusError
	s.mu.Unlock()

	s.publish(StatusError)
	return models.User{}, &common.AuthError{Op: op, Err: err}
}

func (s *Store) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()

	s.publish(st)
}

func (s *Store) publish(st Status) {
	s.subMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(st)
	}
}
