// services/otp_service.go
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Vignesh3161/righttouch-backend/models"
	"github.com/Vignesh3161/righttouch-backend/utils"
)

const (
	otpTTL         = 5 * time.Minute
	resendInterval = 60 * time.Second
	maxAttempts    = 5
)

// Challenge-state errors, mapped to HTTP statuses at the controller boundary.
var (
	ErrNoChallenge      = errors.New("no OTP found")
	ErrChallengeExpired = errors.New("OTP expired")
	ErrChallengeUsed    = errors.New("OTP already used")
	ErrTooManyAttempts  = errors.New("too many invalid attempts")
	ErrInvalidCode      = errors.New("invalid OTP")
	ErrResendTooSoon    = errors.New("please wait before requesting another OTP")
	ErrNotVerified      = errors.New("OTP not verified")
)

// ChallengeStore is the persistence surface the OTP service needs. The otps
// collection backs it in production.
type ChallengeStore interface {
	Insert(ctx context.Context, otp models.OTP) error
	LatestByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.OTP, error)
	Update(ctx context.Context, otp *models.OTP) error
	DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) error
}

// OTPService issues, resends and verifies short numeric codes bound to a
// staging record or, for password resets, a confirmed account.
type OTPService struct {
	store ChallengeStore
	now   func() time.Time
}

func NewOTPService(store ChallengeStore) *OTPService {
	return &OTPService{store: store, now: time.Now}
}

// Issue replaces any prior challenge for the owner with a fresh one and
// returns the plaintext code for one-time delivery. Only the bcrypt hash of
// the code is persisted.
func (s *OTPService) Issue(ctx context.Context, ownerID primitive.ObjectID) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	hashed, err := utils.HashPassword(code)
	if err != nil {
		return "", err
	}

	if err := s.store.DeleteByOwner(ctx, ownerID); err != nil {
		return "", err
	}

	now := s.now()
	otp := models.OTP{
		UserID:     ownerID,
		OTP:        hashed,
		ExpiresAt:  now.Add(otpTTL),
		Attempts:   0,
		IsVerified: false,
		CreatedAt:  now,
	}
	if err := s.store.Insert(ctx, otp); err != nil {
		return "", err
	}

	return code, nil
}

// Resend issues a fresh challenge unless the latest one was created less
// than a minute ago, in which case the existing challenge is left untouched.
func (s *OTPService) Resend(ctx context.Context, ownerID primitive.ObjectID) (string, error) {
	latest, err := s.store.LatestByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if latest != nil && s.now().Sub(latest.CreatedAt) < resendInterval {
		return "", ErrResendTooSoon
	}

	return s.Issue(ctx, ownerID)
}

// Verify checks the submitted code against the owner's latest challenge.
// Terminal states (expired, locked, already used) are rejected before the
// code is even compared; a wrong code increments the attempt counter.
func (s *OTPService) Verify(ctx context.Context, ownerID primitive.ObjectID, code string) error {
	latest, err := s.store.LatestByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if latest == nil {
		return ErrNoChallenge
	}
	if s.now().After(latest.ExpiresAt) {
		return ErrChallengeExpired
	}
	if latest.Attempts >= maxAttempts {
		return ErrTooManyAttempts
	}
	if latest.IsVerified {
		return ErrChallengeUsed
	}

	match, err := utils.CheckPasswordHash(code, latest.OTP)
	if err != nil {
		return err
	}
	if !match {
		latest.Attempts++
		if err := s.store.Update(ctx, latest); err != nil {
			return err
		}
		return ErrInvalidCode
	}

	latest.IsVerified = true
	return s.store.Update(ctx, latest)
}

// HasVerifiedChallenge reports whether the owner's latest challenge has been
// verified, which the reset-password flow requires before accepting a new
// password.
func (s *OTPService) HasVerifiedChallenge(ctx context.Context, ownerID primitive.ObjectID) error {
	latest, err := s.store.LatestByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if latest == nil || !latest.IsVerified {
		return ErrNotVerified
	}
	return nil
}

// DeleteAll removes every challenge for the owner.
func (s *OTPService) DeleteAll(ctx context.Context, ownerID primitive.ObjectID) error {
	return s.store.DeleteByOwner(ctx, ownerID)
}

// generateCode draws a 4-digit code uniformly from 1000-9999.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}
