// controllers/auth_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Vignesh3161/righttouch-backend/middleware"
	"github.com/Vignesh3161/righttouch-backend/models"
	"github.com/Vignesh3161/righttouch-backend/repositories"
	"github.com/Vignesh3161/righttouch-backend/services"
	"github.com/Vignesh3161/righttouch-backend/utils"
)

// AuthController handles signup, OTP verification and login.
type AuthController struct {
	DB             *mongo.Database
	userRepo       *repositories.UserRepository
	otpService     *services.OTPService
	mailService    *services.MailService
	passwordPolicy utils.PasswordPolicy
	logger         *log.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Database, otpService *services.OTPService, mailService *services.MailService) *AuthController {
	return &AuthController{
		DB:             db,
		userRepo:       repositories.NewUserRepository(db),
		otpService:     otpService,
		mailService:    mailService,
		passwordPolicy: utils.DefaultPasswordPolicy,
		logger:         log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
	}
}

// Signup validates a registration, stages it as a TempUser and sends an OTP
// to the submitted email address. The account itself is not created until
// the OTP is verified.
func (ac *AuthController) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "All required fields must be provided",
		})
	}

	req.MobileNumber = strings.TrimSpace(req.MobileNumber)

	if err := ac.passwordPolicy.Validate(req.Password); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Minimum 8 characters, at least one letter, one number and one special character",
		})
	}

	if !utils.IsMobileNumber(req.MobileNumber) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Mobile number must be exactly 10 digits",
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email format",
		})
	}
	req.Email = email

	if !utils.IsValidName(req.FirstName) || !utils.IsValidName(req.LastName) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Names must contain only letters and spaces",
		})
	}

	if strings.EqualFold(req.Role, models.RoleTechnician) && req.Locality == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Locality is required for technicians",
		})
	}

	req.FirstName = utils.FormatName(req.FirstName)
	req.LastName = utils.FormatName(req.LastName)

	ctx := c.Request().Context()
	tempUsers := ac.DB.Collection("tempusers")

	// A registration already in flight for the same identity means an OTP is
	// out there waiting to be verified.
	identityFilter := bson.M{"$or": []bson.M{
		{"email": req.Email},
		{"mobileNumber": req.MobileNumber},
	}}
	count, err := tempUsers.CountDocuments(ctx, identityFilter)
	if err != nil {
		return ac.serverError(c, "Signup duplicate check failed", err)
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "OTP already sent. Please verify.",
		})
	}

	count, err = ac.DB.Collection("users").CountDocuments(ctx, identityFilter)
	if err != nil {
		return ac.serverError(c, "Signup duplicate check failed", err)
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Message: "User already registered",
		})
	}

	username, err := utils.GenerateUsername(ctx, req.FirstName, req.MobileNumber, ac.userRepo.UsernameExists)
	if err != nil {
		return ac.serverError(c, "Username generation failed", err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return ac.serverError(c, "Password hashing failed", err)
	}

	tempUser := models.TempUser{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     username,
		Gender:       req.Gender,
		MobileNumber: req.MobileNumber,
		Email:        req.Email,
		Role:         req.Role,
		Locality:     req.Locality,
		Password:     hashedPassword,
		TempStatus:   models.TempStatusPending,
		CreatedAt:    time.Now(),
	}

	result, err := tempUsers.InsertOne(ctx, tempUser)
	if err != nil {
		// The unique index is the authoritative duplicate guard; a concurrent
		// signup can slip past the count checks above.
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Success: false,
				Message: "User already registered",
			})
		}
		return ac.serverError(c, "Failed to stage registration", err)
	}
	tempUser.ID = result.InsertedID.(primitive.ObjectID)

	code, err := ac.otpService.Issue(ctx, tempUser.ID)
	if err != nil {
		return ac.serverError(c, "Failed to issue OTP", err)
	}

	// A failed delivery leaves the staging record and challenge in place so
	// the user can recover through resend.
	if err := ac.mailService.SendOTP(tempUser.Email, code); err != nil {
		ac.logger.Printf("OTP email delivery failed for %s: %v", tempUser.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to send OTP email",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "OTP sent successfully",
		Result:  map[string]interface{}{"tempUserId": tempUser.ID.Hex()},
	})
}

// ResendOTP re-issues the signup code for a pending registration, throttled
// to one send per minute.
func (ac *AuthController) ResendOTP(c echo.Context) error {
	var req models.ResendOTPRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Identifier) == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Email or mobile number is required",
		})
	}

	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))
	isEmail := utils.IsEmail(identifier)
	if !isEmail && !utils.IsMobileNumber(identifier) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email or mobile number format",
		})
	}

	filter := bson.M{"mobileNumber": identifier}
	if isEmail {
		filter = bson.M{"email": identifier}
	}

	ctx := c.Request().Context()

	var tempUser models.TempUser
	err := ac.DB.Collection("tempusers").FindOne(ctx, filter).Decode(&tempUser)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Temp user not found",
		})
	}
	if err != nil {
		return ac.serverError(c, "Temp user lookup failed", err)
	}

	code, err := ac.otpService.Resend(ctx, tempUser.ID)
	if err == services.ErrResendTooSoon {
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Success: false,
			Message: "Please wait before requesting another OTP",
		})
	}
	if err != nil {
		return ac.serverError(c, "Failed to reissue OTP", err)
	}

	if err := ac.mailService.SendOTP(tempUser.Email, code); err != nil {
		ac.logger.Printf("OTP email delivery failed for %s: %v", tempUser.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: "Failed to send OTP email",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "OTP resent successfully",
	})
}

// VerifyOTP checks the submitted code and, on success, promotes the staged
// registration into a confirmed user account.
func (ac *AuthController) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil || req.TempUserID == "" || req.OTP == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "TempUser ID and OTP are required",
		})
	}

	tempUserID, err := primitive.ObjectIDFromHex(req.TempUserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid temp user ID",
		})
	}

	ctx := c.Request().Context()

	if err := ac.otpService.Verify(ctx, tempUserID, req.OTP); err != nil {
		if err == services.ErrChallengeExpired {
			ac.markStaging(ctx, tempUserID, models.TempStatusExpired)
		}
		return ac.otpErrorResponse(c, err)
	}

	tempUsers := ac.DB.Collection("tempusers")

	var tempUser models.TempUser
	err = tempUsers.FindOne(ctx, bson.M{"_id": tempUserID}).Decode(&tempUser)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Temp user not found",
		})
	}
	if err != nil {
		return ac.serverError(c, "Temp user lookup failed", err)
	}

	// Another signup may have completed for the same identity while this one
	// sat unverified. Clean up rather than insert a doomed duplicate.
	dup, err := ac.userRepo.ExistsDuplicate(ctx, tempUser.Email, tempUser.MobileNumber, tempUser.Username)
	if err != nil {
		return ac.serverError(c, "Duplicate recheck failed", err)
	}
	if dup {
		ac.cleanupStaging(ctx, tempUserID)
		return c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Message: "User already registered",
		})
	}

	ac.markStaging(ctx, tempUserID, models.TempStatusVerified)
	tempUser.TempStatus = models.TempStatusVerified

	user, err := tempUser.Promote(time.Now())
	if err != nil {
		return ac.serverError(c, "Promotion failed", err)
	}

	result, err := ac.DB.Collection("users").InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			ac.cleanupStaging(ctx, tempUserID)
			return c.JSON(http.StatusConflict, models.Response{
				Success: false,
				Message: "User already registered",
			})
		}
		return ac.serverError(c, "Failed to create user account", err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	ac.cleanupStaging(ctx, tempUserID)

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "OTP verified and user created",
		Result:  user,
	})
}

// Login authenticates by email or mobile number and returns a 24-hour
// session token.
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil || req.Identifier == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Identifier and password are required",
		})
	}

	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))
	isEmail := utils.IsEmail(identifier)
	if !isEmail && !utils.IsMobileNumber(identifier) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid email or mobile number format",
		})
	}

	user, err := ac.userRepo.FindByIdentifier(c.Request().Context(), identifier, isEmail)
	if err != nil {
		return ac.serverError(c, "User lookup failed", err)
	}
	// Same message for unknown identifier and wrong password; don't reveal
	// which one failed.
	if user == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Invalid credentials",
		})
	}

	match, err := utils.CheckPasswordHash(req.Password, user.Password)
	if err != nil {
		return ac.serverError(c, "Password verification failed", err)
	}
	if !match {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid credentials",
		})
	}

	token, err := middleware.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		return ac.serverError(c, "Token generation failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Login successful",
		Result: models.LoginResult{
			Token: token,
			Role:  user.Role,
		},
	})
}

// markStaging records a lifecycle transition on a staging record. Failures
// are logged but not surfaced.
func (ac *AuthController) markStaging(ctx context.Context, tempUserID primitive.ObjectID, status string) {
	update := bson.M{"$set": bson.M{"tempStatus": status}}
	if _, err := ac.DB.Collection("tempusers").UpdateOne(ctx, bson.M{"_id": tempUserID}, update); err != nil {
		ac.logger.Printf("Failed to mark temp user %s as %s: %v", tempUserID.Hex(), status, err)
	}
}

// cleanupStaging removes a staging record and its challenges. Failures are
// logged but not surfaced; the TTL indexes sweep any leftovers.
func (ac *AuthController) cleanupStaging(ctx context.Context, tempUserID primitive.ObjectID) {
	if _, err := ac.DB.Collection("tempusers").DeleteOne(ctx, bson.M{"_id": tempUserID}); err != nil {
		ac.logger.Printf("Failed to delete temp user %s: %v", tempUserID.Hex(), err)
	}
	if err := ac.otpService.DeleteAll(ctx, tempUserID); err != nil {
		ac.logger.Printf("Failed to delete OTPs for %s: %v", tempUserID.Hex(), err)
	}
}

// otpErrorResponse maps challenge-state errors onto the response contract.
func (ac *AuthController) otpErrorResponse(c echo.Context, err error) error {
	switch err {
	case services.ErrNoChallenge:
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "OTP not found",
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
		return ac.serverError(c, "OTP verification failed", err)
	}
}

// serverError logs the underlying cause and returns a generic message; raw
// store errors never reach the caller.
func (ac *AuthController) serverError(c echo.Context, context string, err error) error {
	ac.logger.Printf("%s: %v", context, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Server error",
	})
}
