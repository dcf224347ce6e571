package models

import (
	"strconv"
	"strings"

	"github.com/reddot/reddot-client/internal/common"
)

// User is the identity snapshot returned by the auth endpoints. It is
// replaced wholesale, never patched.
type User struct {
	ID        ID     `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName is "First Last", falling back to the email.
func (u User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

// ID accepts numeric or string identifiers from the server and keeps them as
// a string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*id = ""
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		*id = ID(unq)
		return nil
	}
	*id = ID(s)
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	// only canonical integers go out bare; "007" or "+5" stay strings
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return []byte(strconv.Quote(string(id))), nil
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the registration request body.
type SignupRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ConsentGiven bool   `json:"consentGiven"`
}

// MinPasswordLength is enforced on signup.
const MinPasswordLength = 8

// Validate applies the signup form rules before anything is sent.
func (r SignupRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "":
		return common.Invalid("first and last name are required")
	case strings.TrimSpace(r.Email) == "":
		return common.Invalid("email is required")
	case !strings.Contains(r.Email, "@"):
		return common.Invalid("email %q is not valid", r.Email)
	case len(r.Password) < MinPasswordLength:
		return common.Invalid("password must be at least %d characters", MinPasswordLength)
	case !r.ConsentGiven:
		return common.ErrConsentRequired
	}
	return nil
}

// AuthResponse is returned by login and signup. Some deployments name the
// token accessToken; Token() resolves either.
type AuthResponse struct {
	User         User   `json:"user"`
	TokenValue   string `json:"token"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func (r AuthResponse) Token() string {
	if r.TokenValue != "" {
		return r.TokenValue
	}
	return r.AccessToken
}
