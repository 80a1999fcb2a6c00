// controllers/technician_controller.go
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

var (
	panRegex     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarRegex = regexp.MustCompile(`^[0-9]{12}$`)
)

type TechnicianController struct {
	DB     *mongo.Database
	logger *log.Logger
}

func NewTechnicianController(db *mongo.Database) *TechnicianController {
	return &TechnicianController{
		DB:     db,
		logger: log.New(os.Stdout, "[TECHNICIAN] ", log.LstdFlags),
	}
}

// CreateTechnician attaches a KYC profile to a technician-role account. One
// profile per user; the linked account must already have the Technician role.
func (tc *TechnicianController) CreateTechnician(c echo.Context) error {
	var req models.TechnicianRequest
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

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	if !panRegex.MatchString(req.PanNumber) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid PAN number format",
		})
	}
	if !aadhaarRegex.MatchString(req.AadhaarNumber) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid Aadhaar number format",
		})
	}

	ctx := c.Request().Context()

	var user models.User
	err = tc.DB.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}
	if err != nil {
		return tc.serverError(c, "User lookup failed", err)
	}
	if user.Role != models.RoleTechnician {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "User is not registered as a technician",
		})
	}

	collection := tc.DB.Collection("technicians")

	count, err := collection.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return tc.serverError(c, "Technician lookup failed", err)
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Message: "Technician profile already exists for this user",
		})
	}

	technician := models.Technician{
		UserID:               userID,
		PanNumber:            req.PanNumber,
		AadhaarNumber:        req.AadhaarNumber,
		PassportNumber:       req.PassportNumber,
		DrivingLicenseNumber: req.DrivingLicenseNumber,
		Balance:              0,
		Status:               models.StatusActive,
		ExperienceYear:       req.ExperienceYear,
		ExperienceMonths:     req.ExperienceMonths,
		TotalJobCompleted:    0,
		Tracking:             models.TrackingWaiting,
		Image:                req.Image,
		CreatedAt:            time.Now(),
	}

	result, err := collection.InsertOne(ctx, technician)
	if err != nil {
		return tc.serverError(c, "Technician insert failed", err)
	}
	technician.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Technician profile created successfully",
		Result:  technician,
	})
}

func (tc *TechnicianController) GetTechnicians(c echo.Context) error {
	query := bson.M{}
	if status := c.QueryParam("status"); status != "" {
		query["status"] = status
	}
	if tracking := c.QueryParam("tracking"); tracking != "" {
		query["tracking"] = tracking
	}

	ctx := c.Request().Context()

	cursor, err := tc.DB.Collection("technicians").Find(ctx, query)
	if err != nil {
		return tc.serverError(c, "Technician search failed", err)
	}

	technicians := []models.Technician{}
	if err := cursor.All(ctx, &technicians); err != nil {
		return tc.serverError(c, "Technician decode failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Technicians fetched successfully",
		Result:  technicians,
	})
}

func (tc *TechnicianController) GetTechnicianByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid technician ID",
		})
	}

	var technician models.Technician
	err = tc.DB.Collection("technicians").FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&technician)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Technician not found",
		})
	}
	if err != nil {
		return tc.serverError(c, "Technician lookup failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Technician fetched successfully",
		Result:  technician,
	})
}

// UpdateTracking advances a technician through the job states. Only the next
// state in order or a reset back to waiting is accepted.
func (tc *TechnicianController) UpdateTracking(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid technician ID",
		})
	}

	var req struct {
		Tracking string `json:"tracking"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	order := map[string]int{
		models.TrackingWaiting:   0,
		models.TrackingAccepted:  1,
		models.TrackingComing:    2,
		models.TrackingReached:   3,
		models.TrackingWorking:   4,
		models.TrackingCompleted: 5,
	}
	next, ok := order[req.Tracking]
	if !ok {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid tracking state",
		})
	}

	ctx := c.Request().Context()
	collection := tc.DB.Collection("technicians")

	var technician models.Technician
	err = collection.FindOne(ctx, bson.M{"_id": id}).Decode(&technician)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Technician not found",
		})
	}
	if err != nil {
		return tc.serverError(c, "Technician lookup failed", err)
	}

	current := order[technician.Tracking]
	if req.Tracking != models.TrackingWaiting && next != current+1 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Tracking can only move to the next state",
		})
	}

	update := bson.M{"tracking": req.Tracking}
	if req.Tracking == models.TrackingCompleted {
		update["totalJobCompleted"] = technician.TotalJobCompleted + 1
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&technician)
	if err != nil {
		return tc.serverError(c, "Tracking update failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Tracking updated successfully",
		Result:  technician,
	})
}

// UploadTechnicianImage stores a profile photo under uploads/technician.
func (tc *TechnicianController) UploadTechnicianImage(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid technician ID",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Image file is required",
		})
	}
	if err := utils.ValidateImageFile(file); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	path, err := utils.SaveUploadedFile(file, "uploads/technician")
	if err != nil {
		return tc.serverError(c, "Technician image save failed", err)
	}

	ctx := c.Request().Context()

	var technician models.Technician
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = tc.DB.Collection("technicians").FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"image": path}},
		opts,
	).Decode(&technician)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Technician not found",
		})
	}
	if err != nil {
		return tc.serverError(c, "Technician update failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Technician image uploaded successfully",
		Result:  technician,
	})
}

func (tc *TechnicianController) DeleteTechnician(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid technician ID",
		})
	}

	result, err := tc.DB.Collection("technicians").DeleteOne(c.Request().Context(), bson.M{"_id": id})
	if err != nil {
		return tc.serverError(c, "Technician delete failed", err)
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Technician not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Technician deleted successfully",
	})
}

func (tc *TechnicianController) serverError(c echo.Context, context string, err error) error {
	tc.logger.Printf("%s: %v", context, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Server error",
	})
}
