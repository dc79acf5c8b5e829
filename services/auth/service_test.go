package auth

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"cowork/database/repository/memstore"
	"cowork/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureNotifier struct {
	mu    sync.Mutex
	fail  error
	sent  []string
	codes []string
}

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

func (n *captureNotifier) Send(_ context.Context, to, _, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.sent = append(n.sent, to)
	n.codes = append(n.codes, codePattern.FindString(body))
	return nil
}

func (n *captureNotifier) lastCode() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.codes) == 0 {
		return ""
	}
	return n.codes[len(n.codes)-1]
}

type fixture struct {
	svc      *DefaultAuthService
	store    *memstore.Store
	notifier *captureNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	notifier := &captureNotifier{}
	svc, err := NewDefaultAuthService(store.Users(), notifier, Options{
		OTPWindow:  10 * time.Minute,
		Secret:     []byte("test-secret"),
		SessionTTL: time.Hour,
	})
	require.NoError(t, err)
	return &fixture{svc: svc, store: store, notifier: notifier}
}

func (f *fixture) register(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), models.RegisterRequest{
		Name: "Ann", Telephone: "0812345678", Email: email, Password: "secret1",
	})
	require.NoError(t, err)
	return u
}

// loginAndResolve runs the password step and returns the pending user as the gate would.
func (f *fixture) loginAndResolve(t *testing.T, email string) (*LoginChallenge, *models.User) {
	t.Helper()
	ctx := context.Background()
	challenge, err := f.svc.Login(ctx, email, "secret1")
	require.NoError(t, err)
	user, err := f.svc.ResolvePending(ctx, challenge.PendingToken)
	require.NoError(t, err)
	return challenge, user
}

func (f *fixture) storedUser(t *testing.T, id string) *models.User {
	t.Helper()
	u, err := f.store.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func TestNewDefaultAuthService_RequiresSecret(t *testing.T) {
	_, err := NewDefaultAuthService(memstore.New().Users(), &captureNotifier{}, Options{})
	assert.Error(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.com")

	_, err := f.svc.Register(context.Background(), models.RegisterRequest{
		Name: "Other", Telephone: "1", Email: "ANN@example.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestLogin_IssuesChallengeWithoutSession(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ann@example.com")

	challenge, err := f.svc.Login(context.Background(), "ann@example.com", "secret1")
	require.NoError(t, err)

	stored := f.storedUser(t, u.ID)
	require.True(t, stored.HasLoginChallenge())
	assert.True(t, stored.LoginOTPExpire.Equal(challenge.ExpiresAt))
	assert.Len(t, f.notifier.lastCode(), 6)
	assert.Equal(t, digestOTP(f.notifier.lastCode()), *stored.LoginOTPDigest)

	claims, err := f.svc.parseToken(challenge.PendingToken)
	require.NoError(t, err)
	assert.Equal(t, StageOTPPending, claims.Stage)
	assert.Equal(t, challenge.ExpiresAt.Unix(), claims.ExpiresAt)

	_, err = f.svc.Authenticate(context.Background(), challenge.PendingToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLogin_CredentialFailures(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.com")
	ctx := context.Background()

	_, err := f.svc.Login(ctx, "", "secret1")
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = f.svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, "ann@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Empty(t, f.notifier.codes)
}

func TestLogin_NotifierFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ann@example.com")
	f.notifier.fail = errors.New("smtp down")

	_, err := f.svc.Login(context.Background(), "ann@example.com", "secret1")
	assert.ErrorIs(t, err, ErrNotifierFailure)

	stored := f.storedUser(t, u.ID)
	assert.Nil(t, stored.LoginOTPDigest)
	assert.Nil(t, stored.LoginOTPExpire)

	_, err = f.svc.VerifyOTP(context.Background(), stored, "123456")
	assert.ErrorIs(t, err, ErrNoActiveChallenge)
}

func TestVerifyOTP_SucceedsOnceThenReplayFails(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ann@example.com")
	ctx := context.Background()

	challenge, pending := f.loginAndResolve(t, "ann@example.com")
	grant, err := f.svc.VerifyOTP(ctx, pending, f.notifier.lastCode())
	require.NoError(t, err)
	assert.Equal(t, u.ID, grant.User.ID)

	stored := f.storedUser(t, u.ID)
	assert.False(t, stored.HasLoginChallenge())

	me, err := f.svc.Authenticate(ctx, grant.Token)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", me.Email)

	replayUser, err := f.svc.ResolvePending(ctx, challenge.PendingToken)
	require.NoError(t, err)
	_, err = f.svc.VerifyOTP(ctx, replayUser, f.notifier.lastCode())
	assert.ErrorIs(t, err, ErrNoActiveChallenge)
}

func TestVerifyOTP_OneChallengeGrantsOneSession(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.com")
	ctx := context.Background()

	challenge, first := f.loginAndResolve(t, "ann@example.com")
	second, err := f.svc.ResolvePending(ctx, challenge.PendingToken)
	require.NoError(t, err)
	code := f.notifier.lastCode()

	grant, err := f.svc.VerifyOTP(ctx, first, code)
	require.NoError(t, err)
	require.NotNil(t, grant)

	grant, err = f.svc.VerifyOTP(ctx, second, code)
	assert.ErrorIs(t, err, ErrNoActiveChallenge)
	assert.Nil(t, grant)
}

func TestVerifyOTP_ConcurrentVerificationsGrantOnce(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.com")
	ctx := context.Background()

	challenge, _ := f.loginAndResolve(t, "ann@example.com")
	code := f.notifier.lastCode()

	const callers = 8
	pending := make([]*models.User, callers)
	for i := range pending {
		u, err := f.svc.ResolvePending(ctx, challenge.PendingToken)
		require.NoError(t, err)
		pending[i] = u
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for _, u := range pending {
		wg.Add(1)
		go func(u *models.User) {
			defer wg.Done()
			if grant, err := f.svc.VerifyOTP(ctx, u, code); err == nil && grant != nil {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}(u)
	}
	wg.Wait()
	assert.Equal(t, 1, granted)
}

func TestVerifyOTP_StaleSnapshotAfterNewLogin(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ann@example.com")
	ctx := context.Background()

	_, stale := f.loginAndResolve(t, "ann@example.com")
	oldCode := f.notifier.lastCode()
	f.loginAndResolve(t, "ann@example.com")
	if f.notifier.lastCode() == oldCode {
		t.Skip("both logins drew the same code")
	}

	_, err := f.svc.VerifyOTP(ctx, stale, oldCode)
	assert.ErrorIs(t, err, ErrNoActiveChallenge)
	assert.True(t, f.storedUser(t, u.ID).HasLoginChallenge())
}

func TestVerifyOTP_ExpiredClearsChallenge(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ann@example.com")
	_, pending := f.loginAndResolve(t, "ann@example.com")

	f.svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }
	_, err := f.svc.VerifyOTP(context.Background(), pending, f.notifier.lastCode())
	assert.ErrorIs(t, err, ErrExpired)
	assert.False(t, f.storedUser(t, u.ID).HasLoginChallenge())
}

func TestVerifyOTP_WrongCodeBurnsChallenge(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ann@example.com")
	ctx := context.Background()
	challenge, pending := f.loginAndResolve(t, "ann@example.com")

	code := f.notifier.lastCode()
	wrong := "100000"
	if code == wrong {
		wrong = "100001"
	}
	_, err := f.svc.VerifyOTP(ctx, pending, wrong)
	assert.ErrorIs(t, err, ErrMismatch)
	assert.False(t, f.storedUser(t, u.ID).HasLoginChallenge())

	again, err := f.svc.ResolvePending(ctx, challenge.PendingToken)
	require.NoError(t, err)
	_, err = f.svc.VerifyOTP(ctx, again, code)
	assert.ErrorIs(t, err, ErrNoActiveChallenge)
}

func TestVerifyOTP_MissingCode(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.com")
	_, pending := f.loginAndResolve(t, "ann@example.com")

	_, err := f.svc.VerifyOTP(context.Background(), pending, "  ")
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestVerifyOTP_LatestLoginWins(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ann@example.com")
	ctx := context.Background()

	f.loginAndResolve(t, "ann@example.com")
	first := f.notifier.lastCode()
	_, pending := f.loginAndResolve(t, "ann@example.com")
	second := f.notifier.lastCode()

	if first != second {
		_, err := f.svc.VerifyOTP(ctx, pending, first)
		assert.ErrorIs(t, err, ErrMismatch)
		return
	}
	_, err := f.svc.VerifyOTP(ctx, pending, second)
	assert.NoError(t, err)
}

func TestResolvePending_Rejections(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ann@example.com")
	ctx := context.Background()

	_, err := f.svc.ResolvePending(ctx, "none")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.ResolvePending(ctx, "garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	session, err := f.svc.IssueSessionToken(u.ID)
	require.NoError(t, err)
	_, err = f.svc.ResolvePending(ctx, session)
	assert.ErrorIs(t, err, ErrStageMismatch)

	challenge, _ := f.loginAndResolve(t, "ann@example.com")
	require.NoError(t, f.store.Users().Delete(ctx, u.ID))
	_, err = f.svc.ResolvePending(ctx, challenge.PendingToken)
	assert.ErrorIs(t, err, ErrUserGone)
}

func TestAuthenticate_UserGoneIsUnauthenticated(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ann@example.com")
	ctx := context.Background()

	token, err := f.svc.IssueSessionToken(u.ID)
	require.NoError(t, err)
	require.NoError(t, f.store.Users().Delete(ctx, u.ID))

	_, err = f.svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_RejectsForeignSecret(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ann@example.com")

	other, err := NewDefaultAuthService(f.store.Users(), f.notifier, Options{Secret: []byte("another")})
	require.NoError(t, err)
	token, err := other.IssueSessionToken(u.ID)
	require.NoError(t, err)

	_, err = f.svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestMatchOTP(t *testing.T) {
	d := digestOTP("654321")
	assert.True(t, matchOTP("654321", d))
	assert.False(t, matchOTP("654320", d))
	assert.False(t, matchOTP("654321", ""))
}
