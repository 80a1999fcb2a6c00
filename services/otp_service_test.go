package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Vignesh3161/righttouch-backend/models"
)

// memoryStore keeps challenges in a map, newest first per owner.
type memoryStore struct {
	challenges map[primitive.ObjectID][]models.OTP
}

func newMemoryStore() *memoryStore {
	return &memoryStore{challenges: make(map[primitive.ObjectID][]models.OTP)}
}

func (m *memoryStore) Insert(ctx context.Context, otp models.OTP) error {
	otp.ID = primitive.NewObjectID()
	m.challenges[otp.UserID] = append([]models.OTP{otp}, m.challenges[otp.UserID]...)
	return nil
}

func (m *memoryStore) LatestByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.OTP, error) {
	list := m.challenges[ownerID]
	if len(list) == 0 {
		return nil, nil
	}
	latest := list[0]
	return &latest, nil
}

func (m *memoryStore) Update(ctx context.Context, otp *models.OTP) error {
	list := m.challenges[otp.UserID]
	for i := range list {
		if list[i].ID == otp.ID {
			list[i] = *otp
			return nil
		}
	}
	return nil
}

func (m *memoryStore) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) error {
	delete(m.challenges, ownerID)
	return nil
}

func newTestService(store ChallengeStore) (*OTPService, *time.Time) {
	svc := NewOTPService(store)
	now := time.Now()
	svc.now = func() time.Time { return now }
	return svc, &now
}

func TestIssueReturnsFourDigitCode(t *testing.T) {
	svc, _ := newTestService(newMemoryStore())
	ownerID := primitive.NewObjectID()

	code, err := svc.Issue(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, code, 4)

	n, err := strconv.Atoi(code)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1000)
	assert.LessOrEqual(t, n, 9999)
}

func TestIssueStoresHashedCode(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newTestService(store)
	ownerID := primitive.NewObjectID()

	code, err := svc.Issue(context.Background(), ownerID)
	require.NoError(t, err)

	latest, err := store.LatestByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.NotEqual(t, code, latest.OTP)
}

func TestIssueReplacesPriorChallenge(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newTestService(store)
	ownerID := primitive.NewObjectID()

	first, err := svc.Issue(context.Background(), ownerID)
	require.NoError(t, err)
	_, err = svc.Issue(context.Background(), ownerID)
	require.NoError(t, err)

	assert.Len(t, store.challenges[ownerID], 1)

	// The replaced code no longer verifies unless it happens to match the
	// fresh one.
	err = svc.Verify(context.Background(), ownerID, first)
	if err != nil {
		assert.ErrorIs(t, err, ErrInvalidCode)
	}
}

func TestVerifySuccess(t *testing.T) {
	svc, _ := newTestService(newMemoryStore())
	ownerID := primitive.NewObjectID()

	code, err := svc.Issue(context.Background(), ownerID)
	require.NoError(t, err)

	require.NoError(t, svc.Verify(context.Background(), ownerID, code))
	require.NoError(t, svc.HasVerifiedChallenge(context.Background(), ownerID))
}

func TestVerifyNoChallenge(t *testing.T) {
	svc, _ := newTestService(newMemoryStore())

	err := svc.Verify(context.Background(), primitive.NewObjectID(), "1234")
	assert.ErrorIs(t, err, ErrNoChallenge)
}

func TestVerifyExpired(t *testing.T) {
	svc, now := newTestService(newMemoryStore())
	ownerID := primitive.NewObjectID()

	code, err := svc.Issue(context.Background(), ownerID)
	require.NoError(t, err)

	*now = now.Add(otpTTL + time.Second)

	err = svc.Verify(context.Background(), ownerID, code)
	assert.ErrorIs(t, err, ErrChallengeExpired)
}

func TestVerifyAlreadyUsed(t *testing.T) {
	svc, _ := newTestService(newMemoryStore())
	ownerID := primitive.NewObjectID()

	code, err := svc.Issue(context.Background(), ownerID)
	require.NoError(t, err)

	require.NoError(t, svc.Verify(context.Background(), ownerID, code))

	err = svc.Verify(context.Background(), ownerID, code)
	assert.ErrorIs(t, err, ErrChallengeUsed)
}

func TestVerifyWrongCodeIncrementsAttempts(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newTestService(store)
	ownerID := primitive.NewObjectID()

	_, err := svc.Issue(context.Background(), ownerID)
	require.NoError(t, err)

	err = svc.Verify(context.Background(), ownerID, "0000")
	assert.ErrorIs(t, err, ErrInvalidCode)

	latest, err := store.LatestByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, latest.Attempts)
}

func TestVerifyLocksAfterMaxAttempts(t *testing.T) {
	svc, _ := newTestService(newMemoryStore())
	ownerID := primitive.NewObjectID()

	code, err := svc.Issue(context.Background(), ownerID)
	require.NoError(t, err)

	for i := 0; i < maxAttempts; i++ {
		err = svc.Verify(context.Background(), ownerID, "0000")
		assert.ErrorIs(t, err, ErrInvalidCode)
	}

	// Even the right code is rejected once the counter is exhausted.
	err = svc.Verify(context.Background(), ownerID, code)
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestResendThrottledInsideWindow(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newTestService(store)
	ownerID := primitive.NewObjectID()

	_, err := svc.Issue(context.Background(), ownerID)
	require.NoError(t, err)

	_, err = svc.Resend(context.Background(), ownerID)
	assert.ErrorIs(t, err, ErrResendTooSoon)
	assert.Len(t, store.challenges[ownerID], 1)
}

func TestResendAfterWindow(t *testing.T) {
	store := newMemoryStore()
	svc, now := newTestService(store)
	ownerID := primitive.NewObjectID()

	_, err := svc.Issue(context.Background(), ownerID)
	require.NoError(t, err)

	*now = now.Add(resendInterval)

	code, err := svc.Resend(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, code, 4)
	assert.Len(t, store.challenges[ownerID], 1)
}

func TestResendWithoutPriorChallenge(t *testing.T) {
	svc, _ := newTestService(newMemoryStore())

	code, err := svc.Resend(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Len(t, code, 4)
}

func TestHasVerifiedChallengeUnverified(t *testing.T) {
	svc, _ := newTestService(newMemoryStore())
	ownerID := primitive.NewObjectID()

	err := svc.HasVerifiedChallenge(context.Background(), ownerID)
	assert.ErrorIs(t, err, ErrNotVerified)

	_, err = svc.Issue(context.Background(), ownerID)
	require.NoError(t, err)

	err = svc.HasVerifiedChallenge(context.Background(), ownerID)
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestDeleteAllClearsChallenges(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newTestService(store)
	ownerID := primitive.NewObjectID()

	code, err := svc.Issue(context.Background(), ownerID)
	require.NoError(t, err)
	require.NoError(t, svc.Verify(context.Background(), ownerID, code))

	require.NoError(t, svc.DeleteAll(context.Background(), ownerID))

	err = svc.Verify(context.Background(), ownerID, code)
	assert.ErrorIs(t, err, ErrNoChallenge)
}
