package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/Vignesh3161/righttouch-backend/config"
	"github.com/Vignesh3161/righttouch-backend/controllers"
	"github.com/Vignesh3161/righttouch-backend/middleware"
	"github.com/Vignesh3161/righttouch-backend/repositories"
	"github.com/Vignesh3161/righttouch-backend/routes"
	"github.com/Vignesh3161/righttouch-backend/services"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Fail fast on missing secrets, not on the first request
	middleware.GetJWTSecret()

	smtpConfig, err := config.LoadSMTPConfig()
	if err != nil {
		log.Fatalf("SMTP configuration error: %v", err)
	}

	// Connect to database
	client := config.ConnectDB()
	db := config.GetDatabase(client)

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "RightTouch Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Initialize services
	otpService := services.NewOTPService(repositories.NewOTPRepository(db))
	mailService := services.NewMailService(smtpConfig)

	// Initialize controllers
	authController := controllers.NewAuthController(db, otpService, mailService)
	passwordController := controllers.NewPasswordController(db, otpService, mailService)

	// Register routes
	routes.RegisterAuthRoutes(e, authController, passwordController)
	routes.RegisterUserRoutes(e, client, db)
	routes.RegisterCatalogRoutes(e, client, db)
	routes.RegisterBookingRoutes(e, db)
	routes.RegisterTechnicianRoutes(e, client, db)

	// Ensure uploads directory exists
	os.MkdirAll("uploads", 0755)
	os.MkdirAll("uploads/category", 0755)
	os.MkdirAll("uploads/technician", 0755)
	os.MkdirAll("uploads/report", 0755)

	e.Static("/uploads", "uploads")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
