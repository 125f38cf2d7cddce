package platform

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenSource(t *testing.T) {
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	source := &jwtTokenSource{
		organizationID: "org-1",
		environmentID:  "env-1",
		secret:         []byte("secret"),
		ttl:            tokenTTL,
		now:            func() time.Time { return issued },
	}

	t.Run("mints a signed HS256 token", func(t *testing.T) {
		token, err := source.Token()
		require.NoError(t, err)

		parsed, err := jwt.Parse(token.AccessToken, func(*jwt.Token) (any, error) {
			return []byte("secret"), nil
		}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return issued }))
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
	})

	t.Run("carries deployment claims", func(t *testing.T) {
		token, err := source.Token()
		require.NoError(t, err)

		parsed, err := jwt.Parse(token.AccessToken, func(*jwt.Token) (any, error) {
			return []byte("secret"), nil
		}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return issued }))
		require.NoError(t, err)

		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, "lattice-mcp", claims["iss"])
		assert.Equal(t, "org-1", claims["sub"])
		assert.Equal(t, "env-1", claims["env"])
	})

	t.Run("expires after the configured ttl", func(t *testing.T) {
		token, err := source.Token()
		require.NoError(t, err)

		assert.Equal(t, issued.Add(tokenTTL), token.Expiry)
	})

	t.Run("rejects signature with wrong secret", func(t *testing.T) {
		token, err := source.Token()
		require.NoError(t, err)

		_, err = jwt.Parse(token.AccessToken, func(*jwt.Token) (any, error) {
			return []byte("other"), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		assert.Error(t, err)
	})
}
