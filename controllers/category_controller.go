// controllers/category_controller.go
package controllers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
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

var categoryNameRegex = regexp.MustCompile(`^[A-Za-z &]{2,50}$`)

type CategoryController struct {
	DB     *mongo.Database
	logger *log.Logger
}

func NewCategoryController(db *mongo.Database) *CategoryController {
	return &CategoryController{
		DB:     db,
		logger: log.New(os.Stdout, "[CATEGORY] ", log.LstdFlags),
	}
}

// CreateCategory adds a service category. Names are matched
// case-insensitively so "Plumbing" and "plumbing" collide.
func (cc *CategoryController) CreateCategory(c echo.Context) error {
	var req models.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Category & description are required",
		})
	}

	if !categoryNameRegex.MatchString(req.Category) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Category name must contain only letters, spaces, or '&' (2-50 characters)",
		})
	}

	ctx := c.Request().Context()
	collection := cc.DB.Collection("categories")

	exists, err := cc.nameTaken(c, req.Category, primitive.NilObjectID)
	if err != nil {
		return cc.serverError(c, "Category duplicate check failed", err)
	}
	if exists {
		return c.JSON(http.StatusConflict, models.Response{
			Success: false,
			Message: "Category already exists",
		})
	}

	category := models.Category{
		Category:    utils.FormatName(req.Category),
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	result, err := collection.InsertOne(ctx, category)
	if err != nil {
		return cc.serverError(c, "Category insert failed", err)
	}
	category.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Category created successfully",
		Result:  category,
	})
}

// UploadCategoryImage attaches an image to an existing category. The file is
// saved locally; the document only carries its path.
func (cc *CategoryController) UploadCategoryImage(c echo.Context) error {
	categoryID, err := primitive.ObjectIDFromHex(c.FormValue("categoryId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Category ID is required",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Category image is required",
		})
	}
	if err := utils.ValidateImageFile(file); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: err.Error(),
		})
	}

	path, err := utils.SaveUploadedFile(file, filepath.Join("uploads", "category"))
	if err != nil {
		return cc.serverError(c, "Image save failed", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var category models.Category
	err = cc.DB.Collection("categories").FindOneAndUpdate(
		c.Request().Context(),
		bson.M{"_id": categoryID},
		bson.M{"$set": bson.M{"image": path}},
		opts,
	).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Category not found",
		})
	}
	if err != nil {
		return cc.serverError(c, "Category update failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Category image uploaded successfully",
		Result:  category,
	})
}

// GetAllCategories lists categories with optional case-insensitive search
// over name and description.
func (cc *CategoryController) GetAllCategories(c echo.Context) error {
	query := bson.M{}
	if search := c.QueryParam("search"); search != "" {
		regex := bson.M{"$regex": search, "$options": "i"}
		query["$or"] = []bson.M{
			{"category": regex},
			{"description": regex},
		}
	}

	ctx := c.Request().Context()

	cursor, err := cc.DB.Collection("categories").Find(ctx, query)
	if err != nil {
		return cc.serverError(c, "Category search failed", err)
	}

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return cc.serverError(c, "Category decode failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Categories fetched successfully",
		Result:  categories,
	})
}

func (cc *CategoryController) GetCategoryByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid category ID",
		})
	}

	var category models.Category
	err = cc.DB.Collection("categories").FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Category not found",
		})
	}
	if err != nil {
		return cc.serverError(c, "Category lookup failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Category fetched successfully",
		Result:  category,
	})
}

func (cc *CategoryController) UpdateCategory(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid category ID",
		})
	}

	var req struct {
		Category    string `json:"category"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	update := bson.M{}
	if req.Category != "" {
		taken, err := cc.nameTaken(c, req.Category, id)
		if err != nil {
			return cc.serverError(c, "Category duplicate check failed", err)
		}
		if taken {
			return c.JSON(http.StatusConflict, models.Response{
				Success: false,
				Message: "Category name already exists",
			})
		}
		update["category"] = utils.FormatName(req.Category)
	}
	if req.Description != "" {
		update["description"] = req.Description
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var category models.Category
	err = cc.DB.Collection("categories").FindOneAndUpdate(
		c.Request().Context(),
		bson.M{"_id": id},
		bson.M{"$set": update},
		opts,
	).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Category not found",
		})
	}
	if err != nil {
		return cc.serverError(c, "Category update failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Category updated successfully",
		Result:  category,
	})
}

func (cc *CategoryController) DeleteCategory(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid category ID",
		})
	}

	result, err := cc.DB.Collection("categories").DeleteOne(c.Request().Context(), bson.M{"_id": id})
	if err != nil {
		return cc.serverError(c, "Category delete failed", err)
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Category not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Category deleted successfully",
	})
}

func (cc *CategoryController) nameTaken(c echo.Context, name string, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{"category": bson.M{"$regex": "^" + regexp.QuoteMeta(name) + "$", "$options": "i"}}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	count, err := cc.DB.Collection("categories").CountDocuments(c.Request().Context(), filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cc *CategoryController) serverError(c echo.Context, context string, err error) error {
	cc.logger.Printf("%s: %v", context, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Server error",
	})
}
