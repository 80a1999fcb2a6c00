package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Vignesh3161/righttouch-backend/controllers"
	"github.com/Vignesh3161/righttouch-backend/middleware"
)

// RegisterBookingRoutes sets up service and product booking routes. All of
// them require a session.
func RegisterBookingRoutes(e *echo.Echo, db *mongo.Database) {
	bookingController := controllers.NewBookingController(db)

	serviceBookings := e.Group("/api/servicebooking")
	serviceBookings.Use(middleware.JWTMiddleware())
	serviceBookings.POST("", bookingController.CreateServiceBooking)
	serviceBookings.GET("", bookingController.GetServiceBookings)
	serviceBookings.PUT("/:id/status", bookingController.UpdateServiceBookingStatus)
	serviceBookings.PUT("/:id/cancel", bookingController.CancelServiceBooking)

	productBookings := e.Group("/api/productbooking")
	productBookings.Use(middleware.JWTMiddleware())
	productBookings.POST("", bookingController.CreateProductBooking)
	productBookings.GET("", bookingController.GetProductBookings)
	productBookings.PUT("/:id/status", bookingController.UpdateProductBookingStatus)
	productBookings.PUT("/:id/cancel", bookingController.CancelProductBooking)
}
