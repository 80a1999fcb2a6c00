// models/auth.go

package models

type SignupRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Gender       string `json:"gender" validate:"required"`
	MobileNumber string `json:"mobileNumber" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Role         string `json:"role" validate:"required"`
	Locality     string `json:"locality,omitempty"`
	Password     string `json:"password" validate:"required"`
}

// LoginRequest accepts either an email address or a 10-digit mobile number
// as the identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type ResendOTPRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type VerifyOTPRequest struct {
	TempUserID string `json:"tempUserId" validate:"required"`
	OTP        string `json:"otp" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type ResetOTPRequest struct {
	Email string `json:"email" validate:"required"`
}

type VerifyResetOTPRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
