package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, Classify(nil))
	})

	t.Run("strips provider prefixes", func(t *testing.T) {
		tests := []struct {
			in   string
			code string
		}{
			{"auth/invalid-credential", "invalid-credential"},
			{"gotrue: invalid login credentials", "invalid login credentials"},
			{"response status code 400", "400"},
			{"plain failure", "plain failure"},
		}
		for _, tt := range tests {
			err := Classify(errors.New(tt.in))
			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.code, authErr.Code)
		}
	})

	t.Run("already classified errors pass through", func(t *testing.T) {
		original := &AuthError{Code: "invalid-credential", Err: errors.New("auth/invalid-credential")}
		assert.Same(t, original, Classify(original))
	})

	t.Run("keeps the cause", func(t *testing.T) {
		cause := errors.New("gotrue: user not found")
		assert.ErrorIs(t, Classify(cause), cause)
	})
}

func TestAuthErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &AuthError{Code: "boom", Err: cause}
	assert.ErrorIs(t, err, cause)
}
