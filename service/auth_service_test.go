package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/qlap/traingate/adapters/store"
	"github.com/qlap/traingate/adapters/tokenizer"
	"github.com/qlap/traingate/adapters/users"
	"github.com/qlap/traingate/core"
	"github.com/qlap/traingate/ports"
)

// recordingPublisher captures published audit events.
type recordingPublisher struct {
	actions []core.AuthAction
}

func (p *recordingPublisher) PublishAuthEvent(ctx context.Context, action core.AuthAction, subject, tokenID string) error {
	p.actions = append(p.actions, action)
	return nil
}

type authFixture struct {
	auth   *AuthService
	repo   *users.MemoryRepository
	events *recordingPublisher
	user   *core.User
}

func newAuthFixture(t *testing.T, accessTTL time.Duration) *authFixture {
	t.Helper()

	repo := users.NewMemoryRepository()
	events := &recordingPublisher{}

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &core.User{
		ID:           "user-1",
		FirstName:    "Ana",
		LastName:     "Novak",
		Email:        "ana@example.com",
		PasswordHash: hash,
		Role:         core.RoleAthlete,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), user))

	auth := NewAuthService(
		repo,
		tokenizer.NewJWTTokenizer([]byte("test-secret")),
		store.NewMemoryDenyList(),
		events,
		accessTTL,
		7*24*time.Hour,
	)

	return &authFixture{auth: auth, repo: repo, events: events, user: user}
}

func TestIssueThenVerifyReturnsSubject(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)
	ctx := context.Background()

	pair, user, err := f.auth.Issue(ctx, "ana@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	session, err := f.auth.Verify(ctx, pair.AccessToken, core.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.Subject)
	assert.Equal(t, core.RoleAthlete, session.Role)

	assert.Equal(t, []core.AuthAction{core.AuthActionIssue}, f.events.actions)
}

func TestIssueNormalizesEmail(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)

	// The account was stored lowercased; login must accept the email in
	// whatever casing the user typed it.
	_, user, err := f.auth.Issue(context.Background(), "  Ana@Example.com ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

// failingRepository fails every email lookup with an infrastructure error.
type failingRepository struct {
	ports.UserRepository
	err error
}

func (r *failingRepository) GetByEmail(ctx context.Context, email string) (*core.User, error) {
	return nil, r.err
}

func TestIssueRepositoryFailureIsNotCredentialFailure(t *testing.T) {
	repo := &failingRepository{err: errors.New("sqlite: disk I/O error")}
	auth := NewAuthService(
		repo,
		tokenizer.NewJWTTokenizer([]byte("test-secret")),
		store.NewMemoryDenyList(),
		nil,
		15*time.Minute,
		7*24*time.Hour,
	)

	_, _, err := auth.Issue(context.Background(), "ana@example.com", "correct horse")
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrInvalidCredential)
	assert.Equal(t, core.KindInternal, core.Normalize(err).Kind)
}

func TestIssueWrongPasswordAndUnknownUserAreIdentical(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)
	ctx := context.Background()

	_, _, wrongSecret := f.auth.Issue(ctx, "ana@example.com", "wrong")
	_, _, unknownUser := f.auth.Issue(ctx, "bob@example.com", "wrong")

	assert.ErrorIs(t, wrongSecret, core.ErrInvalidCredential)
	assert.ErrorIs(t, unknownUser, core.ErrInvalidCredential)
	assert.Equal(t, wrongSecret, unknownUser)

	// Neither failure leaks whether the account exists.
	assert.NotErrorIs(t, unknownUser, core.ErrNotFound)
	assert.Empty(t, f.events.actions)
}

func TestVerifyExpiredAccessToken(t *testing.T) {
	f := newAuthFixture(t, -time.Minute)
	ctx := context.Background()

	pair, _, err := f.auth.Issue(ctx, "ana@example.com", "correct horse")
	require.NoError(t, err)

	_, err = f.auth.Verify(ctx, pair.AccessToken, core.TokenTypeAccess)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
	assert.NotErrorIs(t, err, core.ErrInvalidToken)
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)
	ctx := context.Background()

	pair, _, err := f.auth.Issue(ctx, "ana@example.com", "correct horse")
	require.NoError(t, err)

	_, err = f.auth.Verify(ctx, pair.RefreshToken, core.TokenTypeAccess)
	assert.ErrorIs(t, err, core.ErrTokenTypeMismatch)
}

func TestRefreshRotatesAndRejectsReplay(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)
	ctx := context.Background()

	pair, _, err := f.auth.Issue(ctx, "ana@example.com", "correct horse")
	require.NoError(t, err)

	newPair, err := f.auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

	// The new pair works.
	session, err := f.auth.Verify(ctx, newPair.AccessToken, core.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.Subject)

	// Replaying the rotated token fails as an invalid token.
	_, err = f.auth.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
	assert.Equal(t, core.KindTokenInvalid, core.Normalize(err).Kind)

	assert.Equal(t, []core.AuthAction{core.AuthActionIssue, core.AuthActionRefresh}, f.events.actions)
}

func TestRevokeKillsAccessAndRefresh(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)
	ctx := context.Background()

	pair, _, err := f.auth.Issue(ctx, "ana@example.com", "correct horse")
	require.NoError(t, err)

	require.NoError(t, f.auth.Revoke(ctx, pair.RefreshToken))

	_, err = f.auth.Verify(ctx, pair.AccessToken, core.TokenTypeAccess)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)

	_, err = f.auth.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)

	assert.Equal(t, []core.AuthAction{core.AuthActionIssue, core.AuthActionRevoke}, f.events.actions)
}

func TestRevokeGarbageTokenFails(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)

	err := f.auth.Revoke(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}
