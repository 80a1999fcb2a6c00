// controllers/password_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Vignesh3161/righttouch-backend/middleware"
	"github.com/Vignesh3161/righttouch-backend/models"
	"github.com/Vignesh3161/righttouch-backend/repositories"
	"github.com/Vignesh3161/righttouch-backend/services"
	"github.com/Vignesh3161/righttouch-backend/utils"
)

// accountStore is the slice of the user repository the password flows touch.
type accountStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hashed string) error
}

// PasswordController handles the authenticated password change and the
// OTP-gated reset flow.
type PasswordController struct {
	DB             *mongo.Database
	userRepo       accountStore
	otpService     *services.OTPService
	mailService    *services.MailService
	passwordPolicy utils.PasswordPolicy
	logger         *log.Logger
}

// NewPasswordController creates a new password controller
func NewPasswordController(db *mongo.Database, otpService *services.OTPService, mailService *services.MailService) *PasswordController {
	return &PasswordController{
		DB:             db,
		userRepo:       repositories.NewUserRepository(db),
		otpService:     otpService,
		mailService:    mailService,
		passwordPolicy: utils.DefaultPasswordPolicy,
		logger:         log.New(os.Stdout, "[PASSWORD] ", log.LstdFlags),
	}
}

// ChangePassword updates the authenticated user's password after checking
// the old one.
func (pc *PasswordController) ChangePassword(c echo.Context) error {
	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Old and new passwords are required",
		})
	}

	if err := pc.passwordPolicy.Validate(req.NewPassword); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Minimum 8 characters, at least one letter, one number and one special character",
		})
	}

	userID, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid user ID in token",
		})
	}

	ctx := c.Request().Context()

	user, err := pc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return pc.serverError(c, "User lookup failed", err)
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}

	match, err := utils.CheckPasswordHash(req.OldPassword, user.Password)
	if err != nil {
		return pc.serverError(c, "Password verification failed", err)
	}
	if !match {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Old password is incorrect",
		})
	}

	same, err := utils.CheckPasswordHash(req.NewPassword, user.Password)
	if err != nil {
		return pc.serverError(c, "Password verification failed", err)
	}
	if same {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "New password cannot be same as old password",
		})
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return pc.serverError(c, "Password hashing failed", err)
	}
	if err := pc.userRepo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return pc.serverError(c, "Password update failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Password changed successfully",
	})
}

// RequestResetOTP issues a reset code bound to an existing account and mails
// it. Unlike signup, the challenge owner here is the user id itself.
func (pc *PasswordController) RequestResetOTP(c echo.Context) error {
	var req models.ResetOTPRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Email is required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	ctx := c.Request().Context()

	user, err := pc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return pc.serverError(c, "User lookup failed", err)
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}

	code, err := pc.otpService.Issue(ctx, user.ID)
	if err != nil {
		return pc.serverError(c, "Failed to issue OTP", err)
	}

	if err := pc.mailService.SendResetOTP(user.Email, code); err != nil {
		pc.logger.Printf("Reset OTP delivery failed for %s: %v", user.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to send OTP email",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Password reset OTP sent to email",
	})
}

// VerifyResetOTP marks the reset challenge verified. No account is created
// here; the reset targets an existing user.
func (pc *PasswordController) VerifyResetOTP(c echo.Context) error {
	var req models.VerifyResetOTPRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.OTP == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Email and OTP are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	ctx := c.Request().Context()

	user, err := pc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return pc.serverError(c, "User lookup failed", err)
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}

	if err := pc.otpService.Verify(ctx, user.ID, req.OTP); err != nil {
		return pc.otpErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "OTP verified successfully",
	})
}

// ResetPassword sets a new password once a verified challenge exists for the
// account, then discards the challenge.
func (pc *PasswordController) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Email and new password are required",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}

	ctx := c.Request().Context()

	user, err := pc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return pc.serverError(c, "User lookup failed", err)
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}

	if err := pc.otpService.HasVerifiedChallenge(ctx, user.ID); err != nil {
		if err == services.ErrNotVerified {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "OTP not verified for this user",
			})
		}
		return pc.serverError(c, "Challenge lookup failed", err)
	}

	if err := pc.passwordPolicy.Validate(req.NewPassword); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Minimum 8 characters, at least one letter, one number and one special character",
		})
	}

	same, err := utils.CheckPasswordHash(req.NewPassword, user.Password)
	if err != nil {
		return pc.serverError(c, "Password verification failed", err)
	}
	if same {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "New password must be different from old password",
		})
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return pc.serverError(c, "Password hashing failed", err)
	}
	if err := pc.userRepo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return pc.serverError(c, "Password update failed", err)
	}

	if err := pc.otpService.DeleteAll(ctx, user.ID); err != nil {
		pc.logger.Printf("Failed to delete used challenges for %s: %v", user.ID.Hex(), err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Password reset successfully",
	})
}

func (pc *PasswordController) otpErrorResponse(c echo.Context, err error) error {
	switch err {
	case services.ErrNoChallenge:
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "OTP not found for this user",
		})
	case services.ErrChallengeExpired:
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "OTP expired",
		})
	case services.ErrTooManyAttempts:
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Success: false,
			Message: "Too many invalid attempts",
		})
	case services.ErrChallengeUsed:
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "OTP already used",
		})
	case services.ErrInvalidCode:
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid OTP",
		})
	default:
		return pc.serverError(c, "OTP verification failed", err)
	}
}

func (pc *PasswordController) serverError(c echo.Context, context string, err error) error {
	pc.logger.Printf("%s: %v", context, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Server error",
	})
}
