// Package identity wraps the external identity provider. The rest of the
// application only sees the Provider interface and the User descriptor.
package identity

import (
	"context"
	"fmt"
	"strings"
)

// User describes the signed-in identity. ID is the partition key every store
// operation is scoped to.
type User struct {
	ID          string
	Email       string
	IsAnonymous bool
}

// Session is the result of a successful sign-in. The access token is only
// needed to sign out again; everything else keys off User.ID.
type Session struct {
	User        User
	AccessToken string
}

// Provider is the identity surface the application consumes.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, session *Session) error
}

// AuthError carries the provider's error code with the provider-specific
// prefix stripped, which is what gets surfaced to the user.
type AuthError struct {
	Code string
	Err  error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Code)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// prefixes the provider prepends to its error codes.
var codePrefixes = []string{"auth/", "gotrue: ", "response status code "}

// Classify wraps a provider failure into an AuthError with a user-facing
// code. Already-classified errors pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if authErr, ok := err.(*AuthError); ok {
		return authErr
	}

	code := err.Error()
	for _, prefix := range codePrefixes {
		code = strings.TrimPrefix(code, prefix)
	}
	return &AuthError{Code: code, Err: err}
}
