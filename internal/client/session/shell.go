package session

import (
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/reddot/reddot-client/internal/client/models"
)

// userShell builds the minimal user known from a persisted token alone. The
// signature is not checked here; the server verifies it on every request and
// the claims only label the session until the profile is fetched. Opaque
// tokens give an empty shell.
func userShell(token string) models.User {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return models.User{}
	}

	var u models.User
	if email, ok := claims["email"].(string); ok {
		u.Email = email
	}

	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		if strings.Contains(sub, "@") {
			if u.Email == "" {
				u.Email = sub
			}
		} else {
			u.ID = models.ID(sub)
		}
	}

	switch id := claims["userId"].(type) {
	case string:
		u.ID = models.ID(id)
	case float64:
		u.ID = models.ID(strconv.FormatFloat(id, 'f', -1, 64))
	}

	return u
}
