package tokenizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qlap/traingate/core"
)

var testKey = []byte("test-signing-key")

func testSession(now time.Time) *core.Session {
	return &core.Session{
		ID:            "session-1",
		Subject:       "user-1",
		Role:          core.RoleTrainer,
		IssuedAt:      now,
		AccessExpiry:  now.Add(15 * time.Minute),
		RefreshExpiry: now.Add(7 * 24 * time.Hour),
		RefreshID:     "refresh-1",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tok := NewJWTTokenizer(testKey)
	session := testSession(time.Now())

	signed, err := tok.SessionToAccessToken(session)
	require.NoError(t, err)

	decoded, err := tok.AccessTokenToSession(signed)
	require.NoError(t, err)

	assert.Equal(t, session.Subject, decoded.Subject)
	assert.Equal(t, session.Role, decoded.Role)
	assert.Equal(t, session.RefreshID, decoded.RefreshID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tok := NewJWTTokenizer(testKey)
	session := testSession(time.Now())

	signed, err := tok.SessionToRefreshToken(session)
	require.NoError(t, err)

	decoded, err := tok.RefreshTokenToSession(signed)
	require.NoError(t, err)

	assert.Equal(t, session.Subject, decoded.Subject)
	assert.Equal(t, session.RefreshID, decoded.RefreshID)
}

func TestExpiredTokenIsExpiredNotInvalid(t *testing.T) {
	tok := NewJWTTokenizer(testKey)
	session := testSession(time.Now().Add(-time.Hour))
	session.AccessExpiry = time.Now().Add(-30 * time.Minute)

	signed, err := tok.SessionToAccessToken(session)
	require.NoError(t, err)

	_, err = tok.AccessTokenToSession(signed)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
	assert.NotErrorIs(t, err, core.ErrInvalidToken)
}

func TestWrongKeyIsInvalid(t *testing.T) {
	signer := NewJWTTokenizer(testKey)
	verifier := NewJWTTokenizer([]byte("a-different-key"))

	signed, err := signer.SessionToAccessToken(testSession(time.Now()))
	require.NoError(t, err)

	_, err = verifier.AccessTokenToSession(signed)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestGarbageTokenIsInvalid(t *testing.T) {
	tok := NewJWTTokenizer(testKey)

	_, err := tok.AccessTokenToSession("not.a.jwt")
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestTokenTypeMismatch(t *testing.T) {
	tok := NewJWTTokenizer(testKey)
	session := testSession(time.Now())

	access, err := tok.SessionToAccessToken(session)
	require.NoError(t, err)
	refresh, err := tok.SessionToRefreshToken(session)
	require.NoError(t, err)

	_, err = tok.RefreshTokenToSession(access)
	assert.ErrorIs(t, err, core.ErrTokenTypeMismatch)

	_, err = tok.AccessTokenToSession(refresh)
	assert.ErrorIs(t, err, core.ErrTokenTypeMismatch)
}
