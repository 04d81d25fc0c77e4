package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"cadastro/internal/services"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := services.NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("admin")
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	username, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "admin", username)
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := services.NewTokenService("s", 0)
	require.Equal(t, services.DefaultTokenTTL, svc.TTL())
}

func TestTokenService_Rejects(t *testing.T) {
	svc := services.NewTokenService("test-secret", time.Hour)

	t.Run("garbage", func(t *testing.T) {
		for _, tok := range []string{"", "not-a-valid-jwt", "invalid.token.here"} {
			_, err := svc.Verify(tok)
			require.ErrorIs(t, err, services.ErrInvalidToken, tok)
		}
	})

	t.Run("other secret", func(t *testing.T) {
		other := services.NewTokenService("another-secret", time.Hour)
		token, err := other.Issue("admin")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		old := services.NewTokenService("test-secret", time.Hour).WithClock(func() time.Time { return past })
		token, err := old.Issue("admin")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("no expiry", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &services.Claims{Username: "admin"}).
			SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &services.Claims{
			Username: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("empty username", func(t *testing.T) {
		token, err := svc.Issue("")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, services.ErrInvalidToken)
	})
}
