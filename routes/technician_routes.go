package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Vignesh3161/righttouch-backend/controllers"
	"github.com/Vignesh3161/righttouch-backend/middleware"
	"github.com/Vignesh3161/righttouch-backend/models"
)

// RegisterTechnicianRoutes sets up technician profile, rating and report
// routes.
func RegisterTechnicianRoutes(e *echo.Echo, client *mongo.Client, db *mongo.Database) {
	technicianController := controllers.NewTechnicianController(db)
	ratingController := controllers.NewRatingController(db)
	reportController := controllers.NewReportController(db)

	technicians := e.Group("/api/technician")
	technicians.GET("", technicianController.GetTechnicians)
	technicians.GET("/:id", technicianController.GetTechnicianByID)
	technicians.GET("/:id/rating", ratingController.GetTechnicianAverage)
	technicians.POST("", technicianController.CreateTechnician, middleware.JWTMiddleware())
	technicians.PUT("/:id/tracking", technicianController.UpdateTracking, middleware.JWTMiddleware())
	technicians.POST("/:id/image", technicianController.UploadTechnicianImage, middleware.JWTMiddleware())
	technicians.DELETE("/:id", technicianController.DeleteTechnician,
		middleware.JWTMiddleware(), middleware.RequireRoles(client, models.RoleOwner))

	ratings := e.Group("/api/rating")
	ratings.GET("", ratingController.GetRatings)
	ratings.GET("/:id", ratingController.GetRatingByID)
	ratings.POST("", ratingController.CreateRating, middleware.JWTMiddleware())
	ratings.DELETE("/:id", ratingController.DeleteRating,
		middleware.JWTMiddleware(), middleware.RequireRoles(client, models.RoleOwner))

	reports := e.Group("/api/report")
	reports.POST("", reportController.CreateReport, middleware.JWTMiddleware())
	reports.GET("", reportController.GetReports,
		middleware.JWTMiddleware(), middleware.RequireRoles(client, models.RoleOwner))
	reports.GET("/:id", reportController.GetReportByID,
		middleware.JWTMiddleware(), middleware.RequireRoles(client, models.RoleOwner))
	reports.DELETE("/:id", reportController.DeleteReport,
		middleware.JWTMiddleware(), middleware.RequireRoles(client, models.RoleOwner))
}
