// controllers/report_controller.go
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
	"github.com/Vignesh3161/righttouch-backend/utils"
)

type ReportController struct {
	DB     *mongo.Database
	logger *log.Logger
}

func NewReportController(db *mongo.Database) *ReportController {
	return &ReportController{
		DB:     db,
		logger: log.New(os.Stdout, "[REPORT] ", log.LstdFlags),
	}
}

// CreateReport files a complaint against a technician. The complaint text
// arrives as a multipart form so an evidence image can ride along.
func (rpc *ReportController) CreateReport(c echo.Context) error {
	technicianID, err := primitive.ObjectIDFromHex(c.FormValue("technicianId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid technician ID",
		})
	}
	customerID, err := primitive.ObjectIDFromHex(c.FormValue("customerId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid customer ID",
		})
	}
	serviceID, err := primitive.ObjectIDFromHex(c.FormValue("serviceId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid service ID",
		})
	}

	complaint := c.FormValue("complaint")
	if complaint == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Complaint is required",
		})
	}

	ctx := c.Request().Context()

	count, err := rpc.DB.Collection("technicians").CountDocuments(ctx, bson.M{"_id": technicianID})
	if err != nil {
		return rpc.serverError(c, "Technician lookup failed", err)
	}
	if count == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Technician not found",
		})
	}

	report := models.Report{
		TechnicianID: technicianID,
		CustomerID:   customerID,
		ServiceID:    serviceID,
		Complaint:    complaint,
		CreatedAt:    time.Now(),
	}

	// Evidence image is optional.
	if file, err := c.FormFile("image"); err == nil {
		if err := utils.ValidateImageFile(file); err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: err.Error(),
			})
		}
		path, err := utils.SaveUploadedFile(file, "uploads/report")
		if err != nil {
			return rpc.serverError(c, "Report image save failed", err)
		}
		report.Image = path
	}

	result, err := rpc.DB.Collection("reports").InsertOne(ctx, report)
	if err != nil {
		return rpc.serverError(c, "Report insert failed", err)
	}
	report.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Report submitted successfully",
		Result:  report,
	})
}

// GetReports lists complaints, optionally filtered by technician.
func (rpc *ReportController) GetReports(c echo.Context) error {
	query := bson.M{}
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

	cursor, err := rpc.DB.Collection("reports").Find(ctx, query)
	if err != nil {
		return rpc.serverError(c, "Report search failed", err)
	}

	reports := []models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return rpc.serverError(c, "Report decode failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Reports fetched successfully",
		Result:  reports,
	})
}

func (rpc *ReportController) GetReportByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid report ID",
		})
	}

	var report models.Report
	err = rpc.DB.Collection("reports").FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Report not found",
		})
	}
	if err != nil {
		return rpc.serverError(c, "Report lookup failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Report fetched successfully",
		Result:  report,
	})
}

func (rpc *ReportController) DeleteReport(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid report ID",
		})
	}

	result, err := rpc.DB.Collection("reports").DeleteOne(c.Request().Context(), bson.M{"_id": id})
	if err != nil {
		return rpc.serverError(c, "Report delete failed", err)
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Report not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Report deleted successfully",
	})
}

func (rpc *ReportController) serverError(c echo.Context, context string, err error) error {
	rpc.logger.Printf("%s: %v", context, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Server error",
	})
}
