package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Vignesh3161/righttouch-backend/controllers"
	"github.com/Vignesh3161/righttouch-backend/middleware"
)

// RegisterAuthRoutes sets up signup, OTP and password routes.
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController, passwordController *controllers.PasswordController) {
	users := e.Group("/api/user")

	// Public onboarding and login routes
	users.POST("/signup", authController.Signup)
	users.POST("/resendotp", authController.ResendOTP)
	users.POST("/verifyotp", authController.VerifyOTP)
	users.POST("/login", authController.Login)

	// Password reset runs on its own OTP challenge, no session required
	users.POST("/resetotp", passwordController.RequestResetOTP)
	users.POST("/verifyresetotp", passwordController.VerifyResetOTP)
	users.POST("/resetpassword", passwordController.ResetPassword)

	// Change password requires a valid session
	users.PUT("/changepassword", passwordController.ChangePassword, middleware.JWTMiddleware())
}
