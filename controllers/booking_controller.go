// controllers/booking_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Vignesh3161/righttouch-backend/models"
)

type BookingController struct {
	DB     *mongo.Database
	logger *log.Logger
}

func NewBookingController(db *mongo.Database) *BookingController {
	return &BookingController{
		DB:     db,
		logger: log.New(os.Stdout, "[BOOKING] ", log.LstdFlags),
	}
}

// CreateServiceBooking books a service against a technician. The referenced
// user, technician and service must all exist before the booking is written.
func (bc *BookingController) CreateServiceBooking(c echo.Context) error {
	var req models.ServiceBookingRequest
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

	technicianID, err := primitive.ObjectIDFromHex(req.TechnicianID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid technician ID",
		})
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}
	serviceID, err := primitive.ObjectIDFromHex(req.ServiceID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid service ID",
		})
	}

	ctx := c.Request().Context()

	if ok, err := bc.documentExists(ctx, "users", userID); err != nil {
		return bc.serverError(c, "User lookup failed", err)
	} else if !ok {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}
	if ok, err := bc.documentExists(ctx, "technicians", technicianID); err != nil {
		return bc.serverError(c, "Technician lookup failed", err)
	} else if !ok {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Technician not found",
		})
	}

	var service models.Service
	err = bc.DB.Collection("services").FindOne(ctx, bson.M{"_id": serviceID}).Decode(&service)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Service not found",
		})
	}
	if err != nil {
		return bc.serverError(c, "Service lookup failed", err)
	}

	amount := req.Amount
	if amount == 0 {
		amount = service.ServiceCost
	}

	booking := models.ServiceBooking{
		TechnicianID: technicianID,
		UserID:       userID,
		ServiceID:    serviceID,
		Status:       models.BookingActive,
		Amount:       amount,
		CreatedAt:    time.Now(),
	}

	result, err := bc.DB.Collection("servicebookings").InsertOne(ctx, booking)
	if err != nil {
		return bc.serverError(c, "Service booking insert failed", err)
	}
	booking.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Service booked successfully",
		Result:  booking,
	})
}

func (bc *BookingController) GetServiceBookings(c echo.Context) error {
	query := bson.M{}
	if userID := c.QueryParam("userId"); userID != "" {
		id, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid user ID",
			})
		}
		query["userId"] = id
	}
	if technicianID := c.QueryParam("technicianId"); technicianID != "" {
		id, err := primitive.ObjectIDFromHex(technicianID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid technician ID",
			})
		}
		query["technicianId"] = id
	}
	if status := c.QueryParam("status"); status != "" {
		query["status"] = status
	}

	ctx := c.Request().Context()

	cursor, err := bc.DB.Collection("servicebookings").Find(ctx, query)
	if err != nil {
		return bc.serverError(c, "Service booking search failed", err)
	}

	bookings := []models.ServiceBooking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return bc.serverError(c, "Service booking decode failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Service bookings fetched successfully",
		Result:  bookings,
	})
}

// UpdateServiceBookingStatus moves a booking between active, completed and
// cancelled. Completed and cancelled bookings are terminal.
func (bc *BookingController) UpdateServiceBookingStatus(c echo.Context) error {
	return bc.updateBookingStatus(c, "servicebookings", "Service booking")
}

func (bc *BookingController) CancelServiceBooking(c echo.Context) error {
	return bc.cancelBooking(c, "servicebookings", "Service booking")
}

// CreateProductBooking records an order for a product and decrements stock.
func (bc *BookingController) CreateProductBooking(c echo.Context) error {
	var req models.ProductBookingRequest
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

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid product ID",
		})
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	ctx := c.Request().Context()

	if ok, err := bc.documentExists(ctx, "users", userID); err != nil {
		return bc.serverError(c, "User lookup failed", err)
	} else if !ok {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}

	var product models.Product
	err = bc.DB.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Product not found",
		})
	}
	if err != nil {
		return bc.serverError(c, "Product lookup failed", err)
	}

	if product.InStock <= 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Product is out of stock",
		})
	}

	amount := req.Amount
	if amount == 0 {
		amount = product.FinalPrice
	}

	booking := models.ProductBooking{
		ProductID: productID,
		UserID:    userID,
		Status:    models.BookingActive,
		Amount:    amount,
		CreatedAt: time.Now(),
	}

	result, err := bc.DB.Collection("productbookings").InsertOne(ctx, booking)
	if err != nil {
		return bc.serverError(c, "Product booking insert failed", err)
	}
	booking.ID = result.InsertedID.(primitive.ObjectID)

	// Move one unit from inStock to outStock and refresh availability.
	product.InStock--
	product.OutStock++
	product.ComputePricing()
	_, err = bc.DB.Collection("products").UpdateOne(ctx, bson.M{"_id": productID}, bson.M{
		"$set": bson.M{
			"inStock":  product.InStock,
			"outStock": product.OutStock,
			"status":   product.Status,
		},
	})
	if err != nil {
		bc.logger.Printf("Stock update failed for product %s: %v", productID.Hex(), err)
	}

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Product booked successfully",
		Result:  booking,
	})
}

func (bc *BookingController) GetProductBookings(c echo.Context) error {
	query := bson.M{}
	if userID := c.QueryParam("userId"); userID != "" {
		id, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid user ID",
			})
		}
		query["userId"] = id
	}
	if status := c.QueryParam("status"); status != "" {
		query["status"] = status
	}

	ctx := c.Request().Context()

	cursor, err := bc.DB.Collection("productbookings").Find(ctx, query)
	if err != nil {
		return bc.serverError(c, "Product booking search failed", err)
	}

	bookings := []models.ProductBooking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return bc.serverError(c, "Product booking decode failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product bookings fetched successfully",
		Result:  bookings,
	})
}

func (bc *BookingController) UpdateProductBookingStatus(c echo.Context) error {
	return bc.updateBookingStatus(c, "productbookings", "Product booking")
}

func (bc *BookingController) CancelProductBooking(c echo.Context) error {
	return bc.cancelBooking(c, "productbookings", "Product booking")
}

func (bc *BookingController) updateBookingStatus(c echo.Context, collection, label string) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid booking ID",
		})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	switch req.Status {
	case models.BookingActive, models.BookingCancelled, models.BookingCompleted:
	default:
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid booking status",
		})
	}

	ctx := c.Request().Context()

	var current struct {
		Status string `bson:"status"`
	}
	err = bc.DB.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&current)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: label + " not found",
		})
	}
	if err != nil {
		return bc.serverError(c, label+" lookup failed", err)
	}

	if current.Status != models.BookingActive {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: label + " is already " + current.Status,
		})
	}

	_, err = bc.DB.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": req.Status},
	})
	if err != nil {
		return bc.serverError(c, label+" update failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: label + " status updated successfully",
	})
}

func (bc *BookingController) cancelBooking(c echo.Context, collection, label string) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid booking ID",
		})
	}

	ctx := c.Request().Context()

	result, err := bc.DB.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": id, "status": models.BookingActive},
		bson.M{"$set": bson.M{"status": models.BookingCancelled}},
	)
	if err != nil {
		return bc.serverError(c, label+" cancel failed", err)
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: label + " not found or not active",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: label + " cancelled successfully",
	})
}

func (bc *BookingController) documentExists(ctx context.Context, collection string, id primitive.ObjectID) (bool, error) {
	count, err := bc.DB.Collection(collection).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (bc *BookingController) serverError(c echo.Context, context string, err error) error {
	bc.logger.Printf("%s: %v", context, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Server error",
	})
}
