package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Vignesh3161/righttouch-backend/controllers"
	"github.com/Vignesh3161/righttouch-backend/middleware"
	"github.com/Vignesh3161/righttouch-backend/models"
)

// RegisterCatalogRoutes sets up category, service and product routes.
// Reads are public; writes are owner-only.
func RegisterCatalogRoutes(e *echo.Echo, client *mongo.Client, db *mongo.Database) {
	categoryController := controllers.NewCategoryController(db)
	serviceController := controllers.NewServiceController(db)
	productController := controllers.NewProductController(db)

	ownerOnly := []echo.MiddlewareFunc{
		middleware.JWTMiddleware(),
		middleware.RequireRoles(client, models.RoleOwner),
	}

	categories := e.Group("/api/category")
	categories.GET("", categoryController.GetAllCategories)
	categories.GET("/:id", categoryController.GetCategoryByID)
	categories.POST("", categoryController.CreateCategory, ownerOnly...)
	categories.POST("/:id/image", categoryController.UploadCategoryImage, ownerOnly...)
	categories.PUT("/:id", categoryController.UpdateCategory, ownerOnly...)
	categories.DELETE("/:id", categoryController.DeleteCategory, ownerOnly...)

	services := e.Group("/api/service")
	services.GET("", serviceController.GetAllServices)
	services.GET("/:id", serviceController.GetServiceByID)
	services.POST("", serviceController.CreateService, ownerOnly...)
	services.PUT("/:id", serviceController.UpdateService, ownerOnly...)
	services.DELETE("/:id", serviceController.DeleteService, ownerOnly...)

	products := e.Group("/api/product")
	products.GET("", productController.GetProducts)
	products.GET("/:id", productController.GetProductByID)
	products.POST("", productController.CreateProduct, ownerOnly...)
	products.PUT("/:id", productController.UpdateProduct, ownerOnly...)
	products.DELETE("/:id", productController.DeleteProduct, ownerOnly...)
}
