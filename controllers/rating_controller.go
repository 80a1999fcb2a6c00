// controllers/rating_controller.go
package controllers

import (
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

type RatingController struct {
	DB     *mongo.Database
	logger *log.Logger
}

func NewRatingController(db *mongo.Database) *RatingController {
	return &RatingController{
		DB:     db,
		logger: log.New(os.Stdout, "[RATING] ", log.LstdFlags),
	}
}

type ratingRequest struct {
	TechnicianID string  `json:"technicianId"`
	ServiceID    string  `json:"serviceId" validate:"required"`
	CustomerID   string  `json:"customerId" validate:"required"`
	Rates        float64 `json:"rates" validate:"required"`
	Comment      string  `json:"comment"`
}

// CreateRating records a score from a customer. One rating per customer and
// service; a second submission updates the existing one.
func (rc *RatingController) CreateRating(c echo.Context) error {
	var req ratingRequest
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

	if req.Rates < 1 || req.Rates > 5 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Rating must be between 1 and 5",
		})
	}

	serviceID, err := primitive.ObjectIDFromHex(req.ServiceID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid service ID",
		})
	}
	customerID, err := primitive.ObjectIDFromHex(req.CustomerID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid customer ID",
		})
	}

	var technicianID primitive.ObjectID
	if req.TechnicianID != "" {
		technicianID, err = primitive.ObjectIDFromHex(req.TechnicianID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid technician ID",
			})
		}
	}

	ctx := c.Request().Context()

	count, err := rc.DB.Collection("services").CountDocuments(ctx, bson.M{"_id": serviceID})
	if err != nil {
		return rc.serverError(c, "Service lookup failed", err)
	}
	if count == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Service not found",
		})
	}

	now := time.Now()
	rating := models.Rating{
		TechnicianID: technicianID,
		ServiceID:    serviceID,
		CustomerID:   customerID,
		Rates:        req.Rates,
		Comment:      req.Comment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	rating.BucketContent()

	collection := rc.DB.Collection("ratings")

	var existing models.Rating
	err = collection.FindOne(ctx, bson.M{
		"serviceId":  serviceID,
		"customerId": customerID,
	}).Decode(&existing)
	if err == nil {
		_, err = collection.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{
			"$set": bson.M{
				"rates":     rating.Rates,
				"comment":   rating.Comment,
				"content":   rating.Content,
				"updatedAt": now,
			},
		})
		if err != nil {
			return rc.serverError(c, "Rating update failed", err)
		}
		rating.ID = existing.ID
		rating.CreatedAt = existing.CreatedAt
		return c.JSON(http.StatusOK, models.Response{
			Success: true,
			Message: "Rating updated successfully",
			Result:  rating,
		})
	}
	if err != mongo.ErrNoDocuments {
		return rc.serverError(c, "Rating lookup failed", err)
	}

	result, err := collection.InsertOne(ctx, rating)
	if err != nil {
		return rc.serverError(c, "Rating insert failed", err)
	}
	rating.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Rating created successfully",
		Result:  rating,
	})
}

// GetRatings lists ratings, optionally scoped to a service or technician.
func (rc *RatingController) GetRatings(c echo.Context) error {
	query := bson.M{}
	if serviceID := c.QueryParam("serviceId"); serviceID != "" {
		id, err := primitive.ObjectIDFromHex(serviceID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid service ID",
			})
		}
		query["serviceId"] = id
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

	ctx := c.Request().Context()

	cursor, err := rc.DB.Collection("ratings").Find(ctx, query)
	if err != nil {
		return rc.serverError(c, "Rating search failed", err)
	}

	ratings := []models.Rating{}
	if err := cursor.All(ctx, &ratings); err != nil {
		return rc.serverError(c, "Rating decode failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Ratings fetched successfully",
		Result:  ratings,
	})
}

// GetTechnicianAverage aggregates the mean score for one technician.
func (rc *RatingController) GetTechnicianAverage(c echo.Context) error {
	technicianID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid technician ID",
		})
	}

	ctx := c.Request().Context()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"technicianId": technicianID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$technicianId",
			"average": bson.M{"$avg": "$rates"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := rc.DB.Collection("ratings").Aggregate(ctx, pipeline)
	if err != nil {
		return rc.serverError(c, "Rating aggregation failed", err)
	}

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		return rc.serverError(c, "Rating aggregation decode failed", err)
	}
	if len(results) == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "No ratings found for this technician",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Technician rating fetched successfully",
		Result:  results[0],
	})
}

func (rc *RatingController) GetRatingByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid rating ID",
		})
	}

	var rating models.Rating
	err = rc.DB.Collection("ratings").FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&rating)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Rating not found",
		})
	}
	if err != nil {
		return rc.serverError(c, "Rating lookup failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Rating fetched successfully",
		Result:  rating,
	})
}

func (rc *RatingController) DeleteRating(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid rating ID",
		})
	}

	result, err := rc.DB.Collection("ratings").DeleteOne(c.Request().Context(), bson.M{"_id": id})
	if err != nil {
		return rc.serverError(c, "Rating delete failed", err)
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Rating not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Rating deleted successfully",
	})
}

func (rc *RatingController) serverError(c echo.Context, context string, err error) error {
	rc.logger.Printf("%s: %v", context, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Server error",
	})
}
