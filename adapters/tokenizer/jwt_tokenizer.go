package tokenizer

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/qlap/traingate/core"
	"github.com/qlap/traingate/ports"
)

// JWTTokenizer implements the Tokenizer interface using HMAC-signed JWTs.
// The signing key is set once at construction and never mutated.
type JWTTokenizer struct {
	signKey []byte
}

// NewJWTTokenizer creates a new JWT tokenizer
func NewJWTTokenizer(signKey []byte) ports.Tokenizer {
	return &JWTTokenizer{signKey: signKey}
}

// SessionToAccessToken converts a Session to an access JWT token
func (j *JWTTokenizer) SessionToAccessToken(session *core.Session) (string, error) {
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Subject,
			ID:        session.ID,
			ExpiresAt: jwt.NewNumericDate(session.AccessExpiry),
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			Audience:  jwt.ClaimStrings{string(core.TokenTypeAccess)},
		},
		Role:      int(session.Role),
		RefreshID: session.RefreshID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(j.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signedToken, nil
}

// SessionToRefreshToken converts a Session to a refresh JWT token
func (j *JWTTokenizer) SessionToRefreshToken(session *core.Session) (string, error) {
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: session.Subject,
			// Use RefreshID as the JWT ID for the refresh token
			ID:        session.RefreshID,
			ExpiresAt: jwt.NewNumericDate(session.RefreshExpiry),
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			Audience:  jwt.ClaimStrings{string(core.TokenTypeRefresh)},
		},
		Role: int(session.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(j.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return signedToken, nil
}

// AccessTokenToSession parses an access token and returns the associated session
func (j *JWTTokenizer) AccessTokenToSession(tokenStr string) (*core.Session, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, j.keyFunc)
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, core.ErrInvalidToken
	}

	if err := checkAudience(claims.Audience, core.TokenTypeAccess); err != nil {
		return nil, err
	}

	session := &core.Session{
		ID:           claims.ID,
		Subject:      claims.Subject,
		Role:         core.Role(claims.Role),
		IssuedAt:     claims.IssuedAt.Time,
		AccessExpiry: claims.ExpiresAt.Time,
		RefreshID:    claims.RefreshID,
	}

	return session, nil
}

// RefreshTokenToSession parses a refresh token and returns the associated session
func (j *JWTTokenizer) RefreshTokenToSession(tokenStr string) (*core.Session, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &RefreshClaims{}, j.keyFunc)
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok {
		return nil, core.ErrInvalidToken
	}

	if err := checkAudience(claims.Audience, core.TokenTypeRefresh); err != nil {
		return nil, err
	}

	// Refresh tokens carry only partial session info: AccessExpiry is
	// zeroed, which is fine since it is never consulted on this path.
	session := &core.Session{
		Subject:       claims.Subject,
		Role:          core.Role(claims.Role),
		IssuedAt:      claims.IssuedAt.Time,
		RefreshExpiry: claims.ExpiresAt.Time,
		RefreshID:     claims.ID, // The JWT ID is the refresh token ID
	}

	return session, nil
}

func (j *JWTTokenizer) keyFunc(token *jwt.Token) (interface{}, error) {
	// Validate the signing method
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return j.signKey, nil
}

// classifyParseError separates an expired token from every other parse
// failure, so callers see expiry reported as expiry and never as a
// malformed token.
func classifyParseError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return core.ErrTokenExpired
	}
	return core.ErrInvalidToken
}

func checkAudience(aud jwt.ClaimStrings, expected core.TokenType) error {
	if len(aud) == 0 || aud[0] != string(expected) {
		return core.ErrTokenTypeMismatch
	}
	return nil
}
