package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Vignesh3161/righttouch-backend/controllers"
	"github.com/Vignesh3161/righttouch-backend/middleware"
	"github.com/Vignesh3161/righttouch-backend/models"
)

// RegisterUserRoutes sets up profile and account management routes.
func RegisterUserRoutes(e *echo.Echo, client *mongo.Client, db *mongo.Database) {
	userController := controllers.NewUserController(db)

	users := e.Group("/api/user")
	users.Use(middleware.JWTMiddleware())

	users.GET("/profile", userController.GetMyProfile)
	users.GET("/:id", userController.GetUserByID)
	users.PUT("/update/:id", userController.UpdateUser)

	// Account listing and removal are owner-only
	users.GET("", userController.GetAllUsers, middleware.RequireRoles(client, models.RoleOwner))
	users.DELETE("/:id", userController.DeleteUser, middleware.RequireRoles(client, models.RoleOwner))
}
