package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Vignesh3161/righttouch-backend/models"
	"github.com/Vignesh3161/righttouch-backend/services"
	"github.com/Vignesh3161/righttouch-backend/utils"
)

// fakeUserStore keeps users keyed by the email they were stored under.
type fakeUserStore struct {
	users   map[string]*models.User
	updated map[primitive.ObjectID]string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:   make(map[string]*models.User),
		updated: make(map[primitive.ObjectID]string),
	}
}

func (f *fakeUserStore) add(user *models.User) {
	f.users[user.Email] = user
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashed string) error {
	f.updated[id] = hashed
	return nil
}

// challengeStore is an in-memory stand-in for the otps collection.
type challengeStore struct {
	challenges map[primitive.ObjectID][]models.OTP
}

func newChallengeStore() *challengeStore {
	return &challengeStore{challenges: make(map[primitive.ObjectID][]models.OTP)}
}

func (m *challengeStore) Insert(ctx context.Context, otp models.OTP) error {
	otp.ID = primitive.NewObjectID()
	m.challenges[otp.UserID] = append([]models.OTP{otp}, m.challenges[otp.UserID]...)
	return nil
}

func (m *challengeStore) LatestByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.OTP, error) {
	list := m.challenges[ownerID]
	if len(list) == 0 {
		return nil, nil
	}
	latest := list[0]
	return &latest, nil
}

func (m *challengeStore) Update(ctx context.Context, otp *models.OTP) error {
	list := m.challenges[otp.UserID]
	for i := range list {
		if list[i].ID == otp.ID {
			list[i] = *otp
			return nil
		}
	}
	return nil
}

func (m *challengeStore) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) error {
	delete(m.challenges, ownerID)
	return nil
}

func newTestPasswordController(store *fakeUserStore, otpService *services.OTPService) *PasswordController {
	return &PasswordController{
		userRepo:       store,
		otpService:     otpService,
		passwordPolicy: utils.DefaultPasswordPolicy,
		logger:         log.New(io.Discard, "", 0),
	}
}

func postJSON(handler echo.HandlerFunc, body string) (*httptest.ResponseRecorder, models.Response, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler(c)
	var resp models.Response
	if err == nil {
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	return rec, resp, err
}

func TestVerifyResetOTPNormalizesEmail(t *testing.T) {
	users := newFakeUserStore()
	user := &models.User{ID: primitive.NewObjectID(), Email: "reset.user@example.com"}
	users.add(user)

	otpService := services.NewOTPService(newChallengeStore())
	code, err := otpService.Issue(context.Background(), user.ID)
	require.NoError(t, err)

	pc := newTestPasswordController(users, otpService)

	// The account was stored lowercased, so a mixed-case submission must
	// still resolve it.
	rec, resp, err := postJSON(pc.VerifyResetOTP, `{"email":" Reset.User@Example.COM ","otp":"`+code+`"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	require.NoError(t, otpService.HasVerifiedChallenge(context.Background(), user.ID))
}

func TestResetPasswordNormalizesEmail(t *testing.T) {
	users := newFakeUserStore()
	oldHash, err := utils.HashPassword("OldSecret@1")
	require.NoError(t, err)
	user := &models.User{ID: primitive.NewObjectID(), Email: "reset.user@example.com", Password: oldHash}
	users.add(user)

	otpService := services.NewOTPService(newChallengeStore())
	code, err := otpService.Issue(context.Background(), user.ID)
	require.NoError(t, err)
	require.NoError(t, otpService.Verify(context.Background(), user.ID, code))

	pc := newTestPasswordController(users, otpService)

	rec, resp, err := postJSON(pc.ResetPassword, `{"email":"Reset.User@Example.COM","newPassword":"NewSecret@2"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	hashed, ok := users.updated[user.ID]
	require.True(t, ok, "password should have been updated")
	match, err := utils.CheckPasswordHash("NewSecret@2", hashed)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestVerifyResetOTPRejectsMalformedEmail(t *testing.T) {
	pc := newTestPasswordController(newFakeUserStore(), services.NewOTPService(newChallengeStore()))

	rec, resp, err := postJSON(pc.VerifyResetOTP, `{"email":"not an email","otp":"1234"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format", resp.Message)
}

func TestResetPasswordRejectsMalformedEmail(t *testing.T) {
	pc := newTestPasswordController(newFakeUserStore(), services.NewOTPService(newChallengeStore()))

	rec, resp, err := postJSON(pc.ResetPassword, `{"email":"not an email","newPassword":"NewSecret@2"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format", resp.Message)
}
