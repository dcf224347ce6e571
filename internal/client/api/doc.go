// Package api is the client of the RedDot REST API.
//
// # Overview
//
// HTTPClient speaks JSON over HTTP to the endpoints under /api. Each outbound
// request carries the current bearer token (read from a TokenSource at send
// time) and a fresh X-Request-ID. Consumers depend on the narrow interfaces
// declared next to them rather than on HTTPClient itself.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable, 401/403 wrap ErrUnauthorized, 404
// wraps ErrNotFound and any other non-2xx answer is a *StatusError carrying
// the server's message. Match them with errors.Is / errors.As.
//
// Timeouts are a property of the underlying http.Client.
package api
