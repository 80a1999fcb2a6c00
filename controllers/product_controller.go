// controllers/product_controller.go
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

var productNameRegex = regexp.MustCompile(`^[A-Za-z ]{2,50}$`)

type ProductController struct {
	DB     *mongo.Database
	logger *log.Logger
}

func NewProductController(db *mongo.Database) *ProductController {
	return &ProductController{
		DB:     db,
		logger: log.New(os.Stdout, "[PRODUCT] ", log.LstdFlags),
	}
}

type productRequest struct {
	ProductName               string   `json:"productName" validate:"required"`
	ProductDescription        string   `json:"productDescription" validate:"required"`
	ProductPrice              float64  `json:"productPrice"`
	ProductDiscountPercentage float64  `json:"productDiscountPercentage"`
	ProductGst                float64  `json:"productGst"`
	InStock                   int      `json:"inStock"`
	ProductImage              []string `json:"productImage"`
	ProductBrand              string   `json:"productBrand" validate:"required"`
	ProductFeatures           []string `json:"productFeatures"`
	Warranty                  string   `json:"warranty"`
}

// CreateProduct adds a product with pricing fields derived up front.
func (pc *ProductController) CreateProduct(c echo.Context) error {
	var req productRequest
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

	if !productNameRegex.MatchString(req.ProductName) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Product name must contain only letters and spaces (2-50 characters)",
		})
	}
	if req.ProductDiscountPercentage > 100 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Product discount percentage cannot exceed 100%",
		})
	}
	if req.InStock < 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Stock cannot be negative",
		})
	}

	product := models.Product{
		ProductName:               utils.FormatName(req.ProductName),
		ProductDescription:        req.ProductDescription,
		ProductPrice:              req.ProductPrice,
		ProductDiscountPercentage: req.ProductDiscountPercentage,
		ProductGst:                req.ProductGst,
		InStock:                   req.InStock,
		ProductImage:              req.ProductImage,
		ProductBrand:              req.ProductBrand,
		ProductFeatures:           req.ProductFeatures,
		Warranty:                  req.Warranty,
		CreatedAt:                 time.Now(),
	}
	product.ComputePricing()

	result, err := pc.DB.Collection("products").InsertOne(c.Request().Context(), product)
	if err != nil {
		return pc.serverError(c, "Product insert failed", err)
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Product created successfully",
		Result:  product,
	})
}

func (pc *ProductController) GetProducts(c echo.Context) error {
	query := bson.M{}
	if search := c.QueryParam("search"); search != "" {
		regex := bson.M{"$regex": search, "$options": "i"}
		query["$or"] = []bson.M{
			{"productName": regex},
			{"productBrand": regex},
			{"productDescription": regex},
		}
	}

	ctx := c.Request().Context()

	cursor, err := pc.DB.Collection("products").Find(ctx, query)
	if err != nil {
		return pc.serverError(c, "Product search failed", err)
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return pc.serverError(c, "Product decode failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Products fetched successfully",
		Result:  products,
	})
}

func (pc *ProductController) GetProductByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid product ID",
		})
	}

	var product models.Product
	err = pc.DB.Collection("products").FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Product not found",
		})
	}
	if err != nil {
		return pc.serverError(c, "Product lookup failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product fetched successfully",
		Result:  product,
	})
}

// UpdateProduct applies partial updates and recomputes derived pricing.
func (pc *ProductController) UpdateProduct(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid product ID",
		})
	}

	var req struct {
		ProductName               *string   `json:"productName"`
		ProductDescription        *string   `json:"productDescription"`
		ProductPrice              *float64  `json:"productPrice"`
		ProductDiscountPercentage *float64  `json:"productDiscountPercentage"`
		ProductGst                *float64  `json:"productGst"`
		InStock                   *int      `json:"inStock"`
		OutStock                  *int      `json:"outStock"`
		ProductImage              *[]string `json:"productImage"`
		ProductBrand              *string   `json:"productBrand"`
		ProductFeatures           *[]string `json:"productFeatures"`
		Warranty                  *string   `json:"warranty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	collection := pc.DB.Collection("products")

	var product models.Product
	err = collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Product not found",
		})
	}
	if err != nil {
		return pc.serverError(c, "Product lookup failed", err)
	}

	if req.ProductName != nil {
		if !productNameRegex.MatchString(*req.ProductName) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Product name must contain only letters and spaces (2-50 characters)",
			})
		}
		product.ProductName = utils.FormatName(*req.ProductName)
	}
	if req.ProductDescription != nil {
		product.ProductDescription = *req.ProductDescription
	}
	if req.ProductPrice != nil {
		product.ProductPrice = *req.ProductPrice
	}
	if req.ProductDiscountPercentage != nil {
		if *req.ProductDiscountPercentage > 100 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Product discount percentage cannot exceed 100%",
			})
		}
		product.ProductDiscountPercentage = *req.ProductDiscountPercentage
	}
	if req.ProductGst != nil {
		product.ProductGst = *req.ProductGst
	}
	if req.InStock != nil {
		if *req.InStock < 0 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Stock cannot be negative",
			})
		}
		product.InStock = *req.InStock
	}
	if req.OutStock != nil {
		if *req.OutStock < 0 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Stock cannot be negative",
			})
		}
		product.OutStock = *req.OutStock
	}
	if req.ProductImage != nil {
		product.ProductImage = *req.ProductImage
	}
	if req.ProductBrand != nil {
		product.ProductBrand = *req.ProductBrand
	}
	if req.ProductFeatures != nil {
		product.ProductFeatures = *req.ProductFeatures
	}
	if req.Warranty != nil {
		product.Warranty = *req.Warranty
	}

	product.ComputePricing()

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	err = collection.FindOneAndReplace(ctx, bson.M{"_id": id}, product, opts).Decode(&product)
	if err != nil {
		return pc.serverError(c, "Product update failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product updated successfully",
		Result:  product,
	})
}

func (pc *ProductController) DeleteProduct(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid product ID",
		})
	}

	result, err := pc.DB.Collection("products").DeleteOne(c.Request().Context(), bson.M{"_id": id})
	if err != nil {
		return pc.serverError(c, "Product delete failed", err)
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "Product not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

func (pc *ProductController) serverError(c echo.Context, context string, err error) error {
	pc.logger.Printf("%s: %v", context, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Server error",
	})
}
