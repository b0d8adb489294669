package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Abdelrazek97/form-app/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	Cost = bcrypt.MinCost
}

func TestHashAndVerifyPassword(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hash, "correct horse"))
	assert.ErrorIs(t, VerifyPassword(hash, "battery staple"), ErrPasswordMismatch)
}

func TestPasswordPolicyCountsCharacters(t *testing.T) {
	assert.ErrorIs(t, CheckPasswordPolicy("ééééééé"), ErrPasswordTooShort)
	assert.NoError(t, CheckPasswordPolicy("éééééééé"))
	assert.ErrorIs(t, CheckPasswordPolicy(strings.Repeat("a", 73)), ErrPasswordTooLong)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(JWTConfig{Secret: "s3cret", Expiry: time.Hour, Issuer: "test"})

	tok, err := m.GenerateSessionToken(7, "huda", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.JTI)

	claims, err := m.ValidateToken(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "huda", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, tok.JTI, claims.ID)
}

func TestValidateTokenRejectsTamperingAndExpiry(t *testing.T) {
	m := NewJWTManager(JWTConfig{Secret: "s3cret", Expiry: time.Hour, Issuer: "test"})
	other := NewJWTManager(JWTConfig{Secret: "different", Expiry: time.Hour, Issuer: "test"})

	tok, err := other.GenerateSessionToken(1, "x", "user")
	require.NoError(t, err)
	_, err = m.ValidateToken(tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewJWTManager(JWTConfig{Secret: "s3cret", Expiry: -time.Minute, Issuer: "test"})
	tok, err = expired.GenerateSessionToken(1, "x", "user")
	require.NoError(t, err)
	_, err = m.ValidateToken(tok.Value)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = m.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBlacklist(t *testing.T) {
	ctx := context.Background()
	svc := NewBlacklistService(dbtest.New(t))

	revoked, err := svc.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.RevokeToken(ctx, "jti-1", 1, time.Now().Add(time.Hour), "logout"))
	require.NoError(t, svc.RevokeToken(ctx, "jti-1", 1, time.Now().Add(time.Hour), "logout"))
	require.NoError(t, svc.RevokeToken(ctx, "jti-old", 1, time.Now().Add(-time.Hour), "logout"))

	revoked, err = svc.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	deleted, err := svc.CleanupExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	count, err := svc.ActiveCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
