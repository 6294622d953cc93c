package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/example/member-portal/internal/domain/auth"
	apperrors "github.com/example/member-portal/internal/errors"
	mocks "github.com/example/member-portal/internal/mocks/auth"
)

type authFixture struct {
	users      *mocks.MemoryUserStore
	sessions   *mocks.MemorySessionStore
	rememberMe *mocks.MemoryRememberMeStore
	svc        *AuthService
	clock      *fakeClock
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users:      mocks.NewMemoryUserStore(),
		sessions:   mocks.NewMemorySessionStore(),
		rememberMe: mocks.NewMemoryRememberMeStore(),
		clock:      &fakeClock{t: time.Now()},
	}
	f.svc = NewAuthService(AuthServiceOptions{
		Users:      f.users,
		Sessions:   f.sessions,
		RememberMe: f.rememberMe,
		Hasher:     mocks.PlainHasher{},
		Now:        f.clock.Now,
	})

	require.NoError(t, f.users.Create(context.Background(), domainauth.Principal{
		Username:     "alice",
		PasswordHash: "plain:correct horse",
		Role:         domainauth.RoleUser,
		CreatedAt:    f.clock.Now(),
	}))

	return f
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)

	result, err := f.svc.Login(context.Background(), LoginInput{
		Username: "alice",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", result.Session.Username)
	assert.Equal(t, domainauth.RoleUser, result.Session.Role)
	assert.NotEmpty(t, result.Session.ID)
	assert.Empty(t, result.RememberMeToken)

	// The session is retrievable afterwards.
	got, err := f.svc.GetSession(context.Background(), result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, wrongPassword := f.svc.Login(ctx, LoginInput{Username: "alice", Password: "nope"})
	_, unknownUser := f.svc.Login(ctx, LoginInput{Username: "mallory", Password: "nope"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.True(t, apperrors.IsAuthentication(wrongPassword))
	assert.True(t, apperrors.IsAuthentication(unknownUser))
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestLogin_EmptyCredentials(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, LoginInput{Username: "", Password: "x"})
	assert.True(t, apperrors.IsAuthentication(err))

	_, err = f.svc.Login(ctx, LoginInput{Username: "alice", Password: ""})
	assert.True(t, apperrors.IsAuthentication(err))
}

func TestLogin_RotatesPriorSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	first, err := f.svc.Login(ctx, LoginInput{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)

	second, err := f.svc.Login(ctx, LoginInput{
		Username:       "alice",
		Password:       "correct horse",
		PriorSessionID: first.Session.ID,
	})
	require.NoError(t, err)

	// Fixation protection: a fresh token, and the prior one is dead.
	assert.NotEqual(t, first.Session.ID, second.Session.ID)
	_, err = f.svc.GetSession(ctx, first.Session.ID)
	assert.True(t, apperrors.IsSessionExpired(err))
	assert.Equal(t, 1, f.sessions.Len())
}

func TestLogin_IssuesRememberMeToken(t *testing.T) {
	f := newAuthFixture(t)

	result, err := f.svc.Login(context.Background(), LoginInput{
		Username:   "alice",
		Password:   "correct horse",
		RememberMe: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RememberMeToken)
	assert.Equal(t, 1, f.rememberMe.Len())

	rec, err := f.rememberMe.Get(context.Background(), result.RememberMeToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.Username)
	assert.Equal(t, f.clock.Now().Add(DefaultRememberMeWindow), rec.ExpiresAt)
}

func TestRedeemRememberMe_EstablishesFreshSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, LoginInput{
		Username:   "alice",
		Password:   "correct horse",
		RememberMe: true,
	})
	require.NoError(t, err)

	// Simulate session loss, then redemption with the old cookie present.
	session, err := f.svc.RedeemRememberMe(ctx, login.RememberMeToken, login.Session.ID)
	require.NoError(t, err)

	assert.Equal(t, "alice", session.Username)
	assert.NotEqual(t, login.Session.ID, session.ID)
}

func TestRedeemRememberMe_Expiry(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, LoginInput{
		Username:   "alice",
		Password:   "correct horse",
		RememberMe: true,
	})
	require.NoError(t, err)

	// Exactly at the window boundary the token still works.
	f.clock.Advance(DefaultRememberMeWindow)
	session, err := f.svc.RedeemRememberMe(ctx, login.RememberMeToken, "")
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)

	// One second past, it is treated as absent.
	f.clock.Advance(time.Second)
	_, err = f.svc.RedeemRememberMe(ctx, login.RememberMeToken, "")
	assert.True(t, apperrors.IsSessionExpired(err))
}

func TestRedeemRememberMe_WindowDoesNotSlide(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, LoginInput{
		Username:   "alice",
		Password:   "correct horse",
		RememberMe: true,
	})
	require.NoError(t, err)

	// Redeeming halfway through must not extend the window.
	f.clock.Advance(DefaultRememberMeWindow / 2)
	_, err = f.svc.RedeemRememberMe(ctx, login.RememberMeToken, "")
	require.NoError(t, err)

	f.clock.Advance(DefaultRememberMeWindow/2 + time.Second)
	_, err = f.svc.RedeemRememberMe(ctx, login.RememberMeToken, "")
	assert.True(t, apperrors.IsSessionExpired(err))
}

func TestRedeemRememberMe_UnknownToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.RedeemRememberMe(context.Background(), "never-issued", "")
	assert.True(t, apperrors.IsSessionExpired(err))

	_, err = f.svc.RedeemRememberMe(context.Background(), "", "")
	assert.True(t, apperrors.IsSessionExpired(err))
}

func TestGetSession_Expired(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, LoginInput{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)

	f.clock.Advance(DefaultSessionTTL + time.Second)
	_, err = f.svc.GetSession(ctx, login.Session.ID)
	assert.True(t, apperrors.IsSessionExpired(err))
}

func TestLogout_ClearsSessionAndToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, LoginInput{
		Username:   "alice",
		Password:   "correct horse",
		RememberMe: true,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, login.Session.ID, login.RememberMeToken))

	_, err = f.svc.GetSession(ctx, login.Session.ID)
	assert.True(t, apperrors.IsSessionExpired(err))
	assert.Zero(t, f.rememberMe.Len())

	// The invalidated token no longer re-establishes a session.
	_, err = f.svc.RedeemRememberMe(ctx, login.RememberMeToken, "")
	assert.True(t, apperrors.IsSessionExpired(err))
}
