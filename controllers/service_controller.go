// controllers/service_controller.go
package controllers

import (
	"log"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Vignesh3161/righttouch-backend/models"
	"github.com/Vignesh3161/righttouch-backend/utils"
)

var serviceNameRegex = regexp.MustCompile(`^[A-Za-z ]{2,50}$`)

type ServiceController struct {
	DB     *mongo.Database
	logger *log.Logger
}

func NewServiceController(db *mongo.Database) *ServiceController {
	return &ServiceController{
		DB:     db,
		logger: log.New(os.Stdout, "[SERVICE] ", log.LstdFlags),
	}
}

type serviceRequest struct {
	CategoryID                string  `json:"categoryId" validate:"required"`
	ServiceName               string  `json:"serviceName" validate:"required"`
	Description               string  `json:"description" validate:"required"`
	ServiceCost               float64 `json:"serviceCost"`
	CommissionPercentage      float64 `json:"commissionPercentage"`
	ServiceDiscountPercentage float64 `json:"serviceDiscountPercentage"`
	Quantity                  int     `json:"quantity"`
	Active                    string  `json:"active"`
	Duration                  string  `json:"duration"`
}

// CreateService adds a bookable service under an existing category.
func (sc *ServiceController) CreateService(c echo.Context) error {
	var req serviceRequest
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

	if !serviceNameRegex.MatchString(req.ServiceName) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Service name must contain only letters and spaces (2-50 characters)",
		})
	}
	if req.CommissionPercentage > 50 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Commission cannot exceed 50%",
		})
	}
	if req.ServiceDiscountPercentage > 100 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Service discount percentage cannot exceed 100%",
		})
	}

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid category ID",
		})
	}

	ctx := c.Request().Context()

	count, err := sc.DB.Collection("categories").CountDocuments(ctx, bson.M{"_id": categoryID})
	if err != nil {
		return sc.serverError(c, "Category lookup failed", err)
	}
	if count == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Category not found",
		})
	}

	active := req.Active
	if active == "" {
		active = "active"
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	service := models.Service{
		CategoryID:                categoryID,
		ServiceName:               utils.FormatName(req.ServiceName),
		Description:               req.Description,
		ServiceCost:               req.ServiceCost,
		CommissionPercentage:      req.CommissionPercentage,
		ServiceDiscountPercentage: req.ServiceDiscountPercentage,
		Quantity:                  quantity,
		Active:                    active,
		Status:                    models.ServiceStatusWaiting,
		Duration:                  req.Duration,
		CreatedAt:                 time.Now(),
	}
	service.ComputeCommission()

	result, err := sc.DB.Collection("services").InsertOne(ctx, service)
	if err != nil {
		return sc.serverError(c, "Service insert failed", err)
	}
	service.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Service created successfully",
		Result:  service,
	})
}

func (sc *ServiceController) GetAllServices(c echo.Context) error {
	query := bson.M{}
	if search := c.QueryParam("search"); search != "" {
		regex := bson.M{"$regex": search, "$options": "i"}
		query["$or"] = []bson.M{
			{"serviceName": regex},
			{"description": regex},
		}
	}

	ctx := c.Request().Context()

	cursor, err := sc.DB.Collection("services").Find(ctx, query)
	if err != nil {
		return sc.serverError(c, "Service search failed", err)
	}

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return sc.serverError(c, "Service decode failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Services fetched successfully",
		Result:  services,
	})
}

func (sc *ServiceController) GetServiceByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid service ID",
		})
	}

	var service models.Service
	err = sc.DB.Collection("services").FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&service)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Service not found",
		})
	}
	if err != nil {
		return sc.serverError(c, "Service lookup failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Service fetched successfully",
		Result:  service,
	})
}

// UpdateService updates mutable fields and recomputes the commission split
// whenever cost or percentage change.
func (sc *ServiceController) UpdateService(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid service ID",
		})
	}

	var req struct {
		ServiceName               *string  `json:"serviceName"`
		Description               *string  `json:"description"`
		ServiceCost               *float64 `json:"serviceCost"`
		CommissionPercentage      *float64 `json:"commissionPercentage"`
		ServiceDiscountPercentage *float64 `json:"serviceDiscountPercentage"`
		Quantity                  *int     `json:"quantity"`
		Active                    *string  `json:"active"`
		Status                    *string  `json:"status"`
		Duration                  *string  `json:"duration"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	collection := sc.DB.Collection("services")

	var service models.Service
	err = collection.FindOne(ctx, bson.M{"_id": id}).Decode(&service)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Service not found",
		})
	}
	if err != nil {
		return sc.serverError(c, "Service lookup failed", err)
	}

	if req.ServiceName != nil {
		if !serviceNameRegex.MatchString(*req.ServiceName) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Service name must contain only letters and spaces (2-50 characters)",
			})
		}
		service.ServiceName = utils.FormatName(*req.ServiceName)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.ServiceCost != nil {
		service.ServiceCost = *req.ServiceCost
	}
	if req.CommissionPercentage != nil {
		if *req.CommissionPercentage > 50 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Commission cannot exceed 50%",
			})
		}
		service.CommissionPercentage = *req.CommissionPercentage
	}
	if req.ServiceDiscountPercentage != nil {
		if *req.ServiceDiscountPercentage > 100 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Service discount percentage cannot exceed 100%",
			})
		}
		service.ServiceDiscountPercentage = *req.ServiceDiscountPercentage
	}
	if req.Quantity != nil {
		service.Quantity = *req.Quantity
	}
	if req.Active != nil {
		service.Active = *req.Active
	}
	if req.Status != nil {
		service.Status = *req.Status
	}
	if req.Duration != nil {
		service.Duration = *req.Duration
	}

	service.ComputeCommission()

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	err = collection.FindOneAndReplace(ctx, bson.M{"_id": id}, service, opts).Decode(&service)
	if err != nil {
		return sc.serverError(c, "Service update failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Service updated successfully",
		Result:  service,
	})
}

func (sc *ServiceController) DeleteService(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid service ID",
		})
	}

	result, err := sc.DB.Collection("services").DeleteOne(c.Request().Context(), bson.M{"_id": id})
	if err != nil {
		return sc.serverError(c, "Service delete failed", err)
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Service not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Service deleted successfully",
	})
}

func (sc *ServiceController) serverError(c echo.Context, context string, err error) error {
	sc.logger.Printf("%s: %v", context, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Server error",
	})
}
