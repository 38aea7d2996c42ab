package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_AccessAndRefresh(t *testing.T) {
	s := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	id := uuid.New()

	access, err := s.GenerateAccessToken(id, "hr")
	require.NoError(t, err)
	claims, err := s.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, id, claims.AdminID)
	assert.Equal(t, "hr", claims.Username)
	assert.False(t, s.IsRefreshToken(claims))

	refresh, err := s.GenerateRefreshToken(id)
	require.NoError(t, err)
	claims, err = s.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, s.IsRefreshToken(claims))
	assert.Empty(t, claims.Username)
}

func TestHMACService_Expired(t *testing.T) {
	s := NewHMACService("a", "r", time.Minute, time.Hour)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	tok, err := s.GenerateAccessToken(uuid.New(), "hr")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("a", "r", time.Minute, time.Hour).GenerateAccessToken(uuid.New(), "hr")
	require.NoError(t, err)

	_, err = NewHMACService("other", "other2", time.Minute, time.Hour).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_MissingSecret(t *testing.T) {
	_, err := NewHMACService("", "r", time.Minute, time.Hour).GenerateAccessToken(uuid.New(), "hr")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_TokenTypeMustMatchSecret(t *testing.T) {
	s := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	id := uuid.New()
	now := time.Now().UTC()

	forge := func(tokenType string, secret string) string {
		c := Claims{
			AdminID:   id,
			TokenType: tokenType,
			IssuedAt:  now,
			ExpiredAt: now.Add(time.Minute),
			RegisteredClaims: jwtlib.RegisteredClaims{
				ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Minute)),
				Subject:   id.String(),
				Issuer:    issuer,
			},
		}
		tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString([]byte(secret))
		require.NoError(t, err)
		return tok
	}

	_, err := s.ValidateToken(forge(TokenTypeRefresh, "access-secret"))
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.ValidateToken(forge(TokenTypeAccess, "refresh-secret"))
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.ValidateToken(forge("admin", "access-secret"))
	assert.ErrorIs(t, err, ErrTokenInvalid)

	claims, err := s.ValidateToken(forge(TokenTypeRefresh, "refresh-secret"))
	require.NoError(t, err)
	assert.True(t, s.IsRefreshToken(claims))
}
