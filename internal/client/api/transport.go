package api

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"
	requestIDHeader     = "X-Request-ID"
)

// TokenSource yields the bearer token to attach, or "" for anonymous calls.
type TokenSource func() string

// authTransport stamps every outbound request with the current bearer token
// and a request id, leaving headers set by the caller untouched.
type authTransport struct {
	base  http.RoundTripper
	token TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if r.Header.Get(requestIDHeader) == "" {
		r.Header.Set(requestIDHeader, uuid.NewString())
	}
	if r.Header.Get(authorizationHeader) == "" && t.token != nil {
		if tok := t.token(); tok != "" {
			r.Header.Set(authorizationHeader, "Bearer "+tok)
		}
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(r)
}
