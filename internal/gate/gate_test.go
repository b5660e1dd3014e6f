package gate

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybookapp/daybook/internal/diary"
	"github.com/daybookapp/daybook/internal/logging"
	"github.com/daybookapp/daybook/internal/storage/prefs"
	"github.com/daybookapp/daybook/internal/storage/secret"

	_ "modernc.org/sqlite"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testCredentials(t *testing.T) diary.CredentialService {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE preferences (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	return diary.NewCredentialService(
		secret.NewFileStore(t.TempDir()), prefs.NewSQLiteRepository(db), testLogger())
}

// fakeProber scripts the biometric path.
type fakeProber struct {
	available bool
	err       error
}

func (p *fakeProber) Available(ctx context.Context) bool { return p.available }

func (p *fakeProber) Challenge(ctx context.Context, prompt string) error { return p.err }

func TestResolve_NotEnrolled_GoesToEnrolling(t *testing.T) {
	g := New(testCredentials(t), NoneProber{}, nil, testLogger())

	state, err := g.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateEnrolling, state)
	assert.Equal(t, SessionLocked, g.Session())
}

func TestResolve_Enrolled_NoBiometric_AwaitsPin(t *testing.T) {
	creds := testCredentials(t)
	ctx := context.Background()
	require.NoError(t, creds.Enroll(ctx, "Ana", []byte("1234")))

	g := New(creds, NoneProber{}, nil, testLogger())

	state, err := g.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPin, state)
	assert.Equal(t, SessionLocked, g.Session())
}

func TestResolve_BiometricPass_Unlocks(t *testing.T) {
	creds := testCredentials(t)
	ctx := context.Background()
	require.NoError(t, creds.Enroll(ctx, "Ana", []byte("1234")))

	g := New(creds, &fakeProber{available: true}, nil, testLogger())

	state, err := g.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateUnlocked, state)
	assert.Equal(t, SessionUnlocked, g.Session())
}

func TestResolve_BiometricDenied_FallsBackToPin(t *testing.T) {
	creds := testCredentials(t)
	ctx := context.Background()
	require.NoError(t, creds.Enroll(ctx, "Ana", []byte("1234")))

	g := New(creds, &fakeProber{available: true, err: ErrBiometricDenied}, nil, testLogger())

	state, err := g.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPin, state)

	// The stored PIN still unlocks after the denial.
	ok, err := g.SubmitPin(ctx, []byte("1234"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, StateUnlocked, g.State())
}

func TestResolve_Twice_Rejected(t *testing.T) {
	g := New(testCredentials(t), NoneProber{}, nil, testLogger())

	_, err := g.Resolve(context.Background())
	require.NoError(t, err)

	_, err = g.Resolve(context.Background())
	require.ErrorIs(t, err, ErrInvalidTransition)
}

// brokenCredentials fails every storage-touching call.
type brokenCredentials struct {
	diary.CredentialService
}

func (brokenCredentials) IsEnrolled(ctx context.Context) (bool, error) {
	return false, diary.ErrStorageUnavailable
}

func TestResolve_StorageFailure_StaysAtStart(t *testing.T) {
	g := New(brokenCredentials{}, NoneProber{}, nil, testLogger())

	_, err := g.Resolve(context.Background())
	require.ErrorIs(t, err, diary.ErrStorageUnavailable)
	assert.Equal(t, StateStart, g.State())
	assert.Equal(t, SessionLocked, g.Session())

	// A retry is allowed once the store recovers.
	g.creds = testCredentials(t)
	state, err := g.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateEnrolling, state)
}

func TestEnroll_HappyPath_Unlocks(t *testing.T) {
	g := New(testCredentials(t), NoneProber{}, nil, testLogger())
	ctx := context.Background()

	_, err := g.Resolve(ctx)
	require.NoError(t, err)

	require.NoError(t, g.Enroll(ctx, "Ana", []byte("1234")))
	assert.Equal(t, StateUnlocked, g.State())
	assert.Equal(t, SessionUnlocked, g.Session())
}

func TestEnroll_ValidationError_StaysEnrolling(t *testing.T) {
	g := New(testCredentials(t), NoneProber{}, nil, testLogger())
	ctx := context.Background()

	_, err := g.Resolve(ctx)
	require.NoError(t, err)

	require.ErrorIs(t, g.Enroll(ctx, "A", []byte("1234")), diary.ErrNameTooShort)
	assert.Equal(t, StateEnrolling, g.State())

	require.ErrorIs(t, g.Enroll(ctx, "Ana", []byte("12")), diary.ErrPinTooShort)
	assert.Equal(t, StateEnrolling, g.State())

	require.NoError(t, g.Enroll(ctx, "Ana", []byte("1234")))
	assert.Equal(t, StateUnlocked, g.State())
}

func TestEnroll_BeforeResolve_Rejected(t *testing.T) {
	g := New(testCredentials(t), NoneProber{}, nil, testLogger())

	err := g.Enroll(context.Background(), "Ana", []byte("1234"))
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitPin_WrongThenRight(t *testing.T) {
	creds := testCredentials(t)
	ctx := context.Background()
	require.NoError(t, creds.Enroll(ctx, "Ana", []byte("1234")))

	g := New(creds, NoneProber{}, nil, testLogger())
	_, err := g.Resolve(ctx)
	require.NoError(t, err)

	ok, err := g.SubmitPin(ctx, []byte("0000"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, StateAwaitingPin, g.State())

	ok, err = g.SubmitPin(ctx, []byte("1234"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, StateUnlocked, g.State())
}

func TestSubmitPin_AfterUnlock_Rejected(t *testing.T) {
	creds := testCredentials(t)
	ctx := context.Background()
	require.NoError(t, creds.Enroll(ctx, "Ana", []byte("1234")))

	g := New(creds, NoneProber{}, nil, testLogger())
	_, err := g.Resolve(ctx)
	require.NoError(t, err)

	_, err = g.SubmitPin(ctx, []byte("1234"))
	require.NoError(t, err)

	_, err = g.SubmitPin(ctx, []byte("1234"))
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitPin_LockoutAfterRepeatedFailures(t *testing.T) {
	creds := testCredentials(t)
	ctx := context.Background()
	require.NoError(t, creds.Enroll(ctx, "Ana", []byte("1234")))

	policy := NewLockoutPolicy(testBase, testMax)
	clock := newFakeClock()
	policy.now = clock.Now

	g := New(creds, NoneProber{}, policy, testLogger())
	_, err := g.Resolve(ctx)
	require.NoError(t, err)

	for i := 0; i < freeAttempts; i++ {
		ok, err := g.SubmitPin(ctx, []byte("0000"))
		require.NoError(t, err)
		assert.False(t, ok)
	}

	_, err = g.SubmitPin(ctx, []byte("1234"))
	var locked *LockedOutError
	require.ErrorAs(t, err, &locked)
	assert.Greater(t, locked.Wait, time.Duration(0))

	// The window passes and the right PIN gets through.
	clock.Advance(testBase)
	ok, err := g.SubmitPin(ctx, []byte("1234"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRetryBiometric_SuccessUnlocks(t *testing.T) {
	creds := testCredentials(t)
	ctx := context.Background()
	require.NoError(t, creds.Enroll(ctx, "Ana", []byte("1234")))

	prober := &fakeProber{available: true, err: ErrBiometricDenied}
	g := New(creds, prober, nil, testLogger())
	_, err := g.Resolve(ctx)
	require.NoError(t, err)
	require.Equal(t, StateAwaitingPin, g.State())

	// First retry still denied, second passes.
	ok, err := g.RetryBiometric(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	prober.err = nil
	ok, err = g.RetryBiometric(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, StateUnlocked, g.State())
}

func TestRetryBiometric_Unavailable(t *testing.T) {
	creds := testCredentials(t)
	ctx := context.Background()
	require.NoError(t, creds.Enroll(ctx, "Ana", []byte("1234")))

	g := New(creds, NoneProber{}, nil, testLogger())
	_, err := g.Resolve(ctx)
	require.NoError(t, err)

	_, err = g.RetryBiometric(ctx)
	require.ErrorIs(t, err, ErrBiometricUnavailable)
	assert.Equal(t, StateAwaitingPin, g.State())
}

func TestVerifyFailure_Surfaced(t *testing.T) {
	creds := testCredentials(t)
	ctx := context.Background()
	require.NoError(t, creds.Enroll(ctx, "Ana", []byte("1234")))

	g := New(creds, NoneProber{}, nil, testLogger())
	_, err := g.Resolve(ctx)
	require.NoError(t, err)

	g.creds = failingVerify{CredentialService: creds}
	_, err = g.SubmitPin(ctx, []byte("1234"))
	require.ErrorIs(t, err, diary.ErrStorageRead)
	assert.Equal(t, StateAwaitingPin, g.State())
}

type failingVerify struct {
	diary.CredentialService
}

func (failingVerify) VerifyPIN(ctx context.Context, candidate []byte) (bool, error) {
	return false, errors.Join(diary.ErrStorageRead, errors.New("disk gone"))
}
