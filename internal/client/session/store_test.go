package session

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reddot/reddot-client/internal/client/api"
	"github.com/reddot/reddot-client/internal/client/models"
	"github.com/reddot/reddot-client/internal/client/repositories"
	"github.com/reddot/reddot-client/internal/client/repositories/metadata"
	"github.com/reddot/reddot-client/internal/common"
	"github.com/reddot/reddot-client/internal/logging"
)

type fakeAuth struct {
	mu sync.Mutex

	loginResp  models.AuthResponse
	loginErr   error
	signupResp models.AuthResponse
	signupErr  error

	loginCalls  int
	signupCalls int
	lastCreds   models.Credentials
}

func (f *fakeAuth) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	f.lastCreds = creds
	return f.loginResp, f.loginErr
}

func (f *fakeAuth) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signupCalls++
	return f.signupResp, f.signupErr
}

func newMeta(t *testing.T) metadata.Repository {
	t.Helper()
	repos, err := repositories.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "reddot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos.Metadata
}

func persisted(t *testing.T, meta metadata.Repository) (string, bool) {
	t.Helper()
	v, ok, err := meta.Get(context.Background(), metadata.KeySessionToken)
	require.NoError(t, err)
	return v, ok
}

var jane = models.User{ID: "1", Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"}

func TestLogin_SuccessPersistsServerToken(t *testing.T) {
	meta := newMeta(t)
	auth := &fakeAuth{loginResp: models.AuthResponse{User: jane, TokenValue: "tok-123"}}
	s := NewStore(auth, meta, nil)

	var seen []Status
	s.Subscribe(func(st Status) { seen = append(seen, st) })

	u, err := s.Login(context.Background(), "jane@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, jane, u)
	assert.Equal(t, models.Credentials{Email: "jane@example.com", Password: "secret-pass"}, auth.lastCreds)

	assert.Equal(t, StatusAuthenticated, s.Status())
	assert.Equal(t, "tok-123", s.Token())
	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, jane, got)

	tok, ok := persisted(t, meta)
	require.True(t, ok)
	assert.Equal(t, "tok-123", tok)

	assert.Equal(t, []Status{StatusAuthenticating, StatusAuthenticated}, seen)
}

func TestLogin_FailureSetsErrorAndPersistsNothing(t *testing.T) {
	meta := newMeta(t)
	auth := &fakeAuth{loginErr: api.ErrUnauthorized}
	s := NewStore(auth, meta, nil)

	_, err := s.Login(context.Background(), "jane@example.com", "wrong")

	var authErr *common.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "login", authErr.Op)
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	assert.Equal(t, StatusError, s.Status())
	assert.Empty(t, s.Token())
	_, ok := persisted(t, meta)
	assert.False(t, ok)
}

func TestLogin_TransportFailureIsAuthError(t *testing.T) {
	auth := &fakeAuth{loginErr: api.ErrUnavailable}
	s := NewStore(auth, newMeta(t), nil)

	_, err := s.Login(context.Background(), "a@b.c", "x")

	var authErr *common.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.True(t, api.IsUnavailable(err))
}

func TestLogin_MissingTokenFails(t *testing.T) {
	auth := &fakeAuth{loginResp: models.AuthResponse{User: jane}}
	s := NewStore(auth, newMeta(t), nil)

	_, err := s.Login(context.Background(), "jane@example.com", "secret-pass")
	require.ErrorIs(t, err, errNoToken)
	assert.Equal(t, StatusError, s.Status())
}

func TestLogin_AccessTokenAlias(t *testing.T) {
	meta := newMeta(t)
	auth := &fakeAuth{loginResp: models.AuthResponse{User: jane, AccessToken: "acc-9"}}
	s := NewStore(auth, meta, nil)

	_, err := s.Login(context.Background(), "jane@example.com", "secret-pass")
	require.NoError(t, err)

	tok, _ := persisted(t, meta)
	assert.Equal(t, "acc-9", tok)
}

func TestSignup_Success(t *testing.T) {
	meta := newMeta(t)
	auth := &fakeAuth{signupResp: models.AuthResponse{User: jane, TokenValue: "tok-new"}}
	s := NewStore(auth, meta, nil)

	u, err := s.Signup(context.Background(), models.SignupRequest{
		Email: "jane@example.com", Password: "longenough", FirstName: "Jane", LastName: "Doe", ConsentGiven: true,
	})
	require.NoError(t, err)
	assert.Equal(t, jane, u)
	assert.Equal(t, StatusAuthenticated, s.Status())

	tok, _ := persisted(t, meta)
	assert.Equal(t, "tok-new", tok)
}

func TestSignup_InvalidFormNeverCallsServer(t *testing.T) {
	auth := &fakeAuth{}
	s := NewStore(auth, newMeta(t), nil)

	_, err := s.Signup(context.Background(), models.SignupRequest{
		Email: "jane@example.com", Password: "short", FirstName: "Jane", LastName: "Doe", ConsentGiven: true,
	})

	var authErr *common.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Equal(t, 0, auth.signupCalls)
	assert.Equal(t, StatusAnonymous, s.Status())
}

func TestSignup_ServerFailure(t *testing.T) {
	auth := &fakeAuth{signupErr: &api.StatusError{Method: "POST", Path: "/api/auth/signup", Code: 400, Message: "Email already registered"}}
	s := NewStore(auth, newMeta(t), nil)

	_, err := s.Signup(context.Background(), models.SignupRequest{
		Email: "jane@example.com", Password: "longenough", FirstName: "Jane", LastName: "Doe", ConsentGiven: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email already registered")
	assert.Equal(t, StatusError, s.Status())
}

func TestLogout_ClearsEverything(t *testing.T) {
	meta := newMeta(t)
	auth := &fakeAuth{loginResp: models.AuthResponse{User: jane, TokenValue: "tok-123"}}
	s := NewStore(auth, meta, nil)

	_, err := s.Login(context.Background(), "jane@example.com", "secret-pass")
	require.NoError(t, err)

	s.Logout(context.Background())

	assert.Equal(t, StatusAnonymous, s.Status())
	assert.Empty(t, s.Token())
	_, ok := s.User()
	assert.False(t, ok)
	_, ok = persisted(t, meta)
	assert.False(t, ok)
}

type brokenMeta struct{ metadata.Repository }

var errDisk = errors.New("disk I/O error")

func (brokenMeta) Get(context.Context, string) (string, bool, error) { return "", false, errDisk }
func (brokenMeta) Set(context.Context, string, string) error        { return errDisk }
func (brokenMeta) Delete(context.Context, string) error             { return errDisk }

func TestLogout_StorageErrorIsLoggedNotReturned(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	s := NewStore(&fakeAuth{}, brokenMeta{}, log)
	s.Logout(context.Background())

	assert.Equal(t, StatusAnonymous, s.Status())
	assert.Contains(t, buf.String(), "failed to remove persisted token")
}

func TestRestore_OpaqueToken(t *testing.T) {
	meta := newMeta(t)
	require.NoError(t, meta.Set(context.Background(), metadata.KeySessionToken, "opaque-token"))

	s := NewStore(&fakeAuth{}, meta, nil)
	require.True(t, s.Restore(context.Background()))

	assert.Equal(t, StatusAuthenticated, s.Status())
	assert.Equal(t, "opaque-token", s.Token())
	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, models.User{}, u)
}

func TestRestore_JWTShell(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    "jane@example.com",
		"userId": 17,
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	meta := newMeta(t)
	require.NoError(t, meta.Set(context.Background(), metadata.KeySessionToken, token))

	s := NewStore(&fakeAuth{}, meta, nil)
	require.True(t, s.Restore(context.Background()))

	u, _ := s.User()
	assert.Equal(t, models.User{ID: "17", Email: "jane@example.com"}, u)
}

func TestRestore_NothingPersisted(t *testing.T) {
	s := NewStore(&fakeAuth{}, newMeta(t), nil)
	assert.False(t, s.Restore(context.Background()))
	assert.Equal(t, StatusAnonymous, s.Status())
}

func TestRestore_ReadsStorageOnce(t *testing.T) {
	meta := newMeta(t)
	s := NewStore(&fakeAuth{}, meta, nil)
	require.False(t, s.Restore(context.Background()))

	require.NoError(t, meta.Set(context.Background(), metadata.KeySessionToken, "late"))
	assert.False(t, s.Restore(context.Background()))
	assert.Empty(t, s.Token())
}

func TestRestore_StorageError(t *testing.T) {
	s := NewStore(&fakeAuth{}, brokenMeta{}, nil)
	assert.False(t, s.Restore(context.Background()))
	assert.Equal(t, StatusAnonymous, s.Status())
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	s := NewStore(&fakeAuth{}, newMeta(t), nil)

	var a, b []Status
	unsubA := s.Subscribe(func(st Status) { a = append(a, st) })
	s.Subscribe(func(st Status) { b = append(b, st) })

	s.Logout(context.Background())
	unsubA()
	s.Logout(context.Background())

	assert.Equal(t, []Status{StatusAnonymous}, a)
	assert.Equal(t, []Status{StatusAnonymous, StatusAnonymous}, b)
}
