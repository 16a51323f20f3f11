package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/qlap/traingate/core"
	"github.com/qlap/traingate/ports"
)

// dummyHash is a valid bcrypt hash compared against when the user does not
// exist, so a login attempt costs the same whether or not the email is
// registered.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService is the gate every authenticated request passes through:
// it issues, verifies, refreshes and revokes the signed token pair.
type AuthService struct {
	repo      ports.UserRepository
	tokenizer ports.Tokenizer
	denyList  ports.DenyList
	eventPub  ports.EventPublisher

	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(
	repo ports.UserRepository,
	tokenizer ports.Tokenizer,
	denyList ports.DenyList,
	eventPub ports.EventPublisher,
	accessTTL, refreshTTL time.Duration,
) *AuthService {
	return &AuthService{
		repo:       repo,
		tokenizer:  tokenizer,
		denyList:   denyList,
		eventPub:   eventPub,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Issue verifies the supplied credentials and mints a new token pair.
// Unknown users and wrong passwords produce the identical failure, to
// avoid user enumeration.
func (s *AuthService) Issue(ctx context.Context, email, password string) (*core.TokenPair, *core.User, error) {
	// Emails are stored lowercased at registration; match that here so a
	// user can log in with the exact string they registered with.
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			return nil, nil, fmt.Errorf("failed to load user: %w", err)
		}
		// Burn the same hashing work as a real comparison before failing.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, nil, core.ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, nil, core.ErrInvalidCredential
	}

	pair, session, err := s.mintTokens(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, core.AuthActionIssue, session.Subject, session.RefreshID)

	return pair, user, nil
}

// Verify checks a token's signature, expiry, type tag and revocation
// status, and returns the decoded session on success.
func (s *AuthService) Verify(ctx context.Context, tokenStr string, expectedType core.TokenType) (*core.Session, error) {
	var (
		session *core.Session
		err     error
	)

	switch expectedType {
	case core.TokenTypeAccess:
		session, err = s.tokenizer.AccessTokenToSession(tokenStr)
	case core.TokenTypeRefresh:
		session, err = s.tokenizer.RefreshTokenToSession(tokenStr)
	default:
		return nil, core.ErrTokenTypeMismatch
	}
	if err != nil {
		return nil, err
	}

	// The refresh JTI is the revocation handle for the whole session:
	// revoking a refresh token kills its access tokens too.
	if session.RefreshID != "" {
		revoked, err := s.denyList.IsRevoked(ctx, session.RefreshID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, core.ErrTokenRevoked
		}
	}

	return session, nil
}

// Refresh rotates the refresh token: the old token's identifier is
// deny-listed for its remaining lifetime and a fresh pair is issued.
// A replayed, already-rotated token therefore fails verification.
func (s *AuthService) Refresh(ctx context.Context, refreshTokenStr string) (*core.TokenPair, error) {
	session, err := s.Verify(ctx, refreshTokenStr, core.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	remaining := time.Until(session.RefreshExpiry)
	if err := s.denyList.Revoke(ctx, session.RefreshID, remaining); err != nil {
		return nil, fmt.Errorf("failed to invalidate rotated token: %w", err)
	}

	pair, newSession, err := s.mintTokens(session.Subject, session.Role)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, core.AuthActionRefresh, newSession.Subject, newSession.RefreshID)

	return pair, nil
}

// Revoke deny-lists a refresh token so it cannot be used again before its
// natural expiry. Revoking an already-expired token is a no-op success.
func (s *AuthService) Revoke(ctx context.Context, refreshTokenStr string) error {
	session, err := s.tokenizer.RefreshTokenToSession(refreshTokenStr)
	if err != nil {
		if errors.Is(err, core.ErrTokenExpired) {
			// Nothing to revoke: the signature check already rejects it.
			return nil
		}
		return err
	}

	remaining := time.Until(session.RefreshExpiry)
	if remaining < time.Hour {
		// Keep the record around for a little while even near expiry,
		// in case of clock skew between instances.
		remaining = time.Hour
	}

	if err := s.denyList.Revoke(ctx, session.RefreshID, remaining); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.publish(ctx, core.AuthActionRevoke, session.Subject, session.RefreshID)

	return nil
}

// mintTokens builds a new session and signs its access/refresh pair.
func (s *AuthService) mintTokens(subject string, role core.Role) (*core.TokenPair, *core.Session, error) {
	now := time.Now()
	session := &core.Session{
		ID:            uuid.New().String(),
		Subject:       subject,
		Role:          role,
		IssuedAt:      now,
		AccessExpiry:  now.Add(s.accessTTL),
		RefreshExpiry: now.Add(s.refreshTTL),
		RefreshID:     uuid.New().String(),
	}

	accessToken, err := s.tokenizer.SessionToAccessToken(session)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, err := s.tokenizer.SessionToRefreshToken(session)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return &core.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, session, nil
}

// publish emits an audit event. Publishing is out-of-band: a failure is
// logged and never fails the auth operation itself.
func (s *AuthService) publish(ctx context.Context, action core.AuthAction, subject, tokenID string) {
	if s.eventPub == nil {
		return
	}
	if err := s.eventPub.PublishAuthEvent(ctx, action, subject, tokenID); err != nil {
		log.Printf("warning: failed to publish %s event: %v", action, err)
	}
}
