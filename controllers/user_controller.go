// controllers/user_controller.go
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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Vignesh3161/righttouch-backend/middleware"
	"github.com/Vignesh3161/righttouch-backend/models"
	"github.com/Vignesh3161/righttouch-backend/utils"
)

// UserController handles profile reads and admin user management.
type UserController struct {
	DB     *mongo.Database
	logger *log.Logger
}

func NewUserController(db *mongo.Database) *UserController {
	return &UserController{
		DB:     db,
		logger: log.New(os.Stdout, "[USER] ", log.LstdFlags),
	}
}

// UpdateUser changes first/last name. The username deliberately stays
// stable across name changes.
func (uc *UserController) UpdateUser(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.FirstName != "" {
		if !utils.IsValidName(req.FirstName) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid first name format",
			})
		}
		update["firstName"] = utils.FormatName(req.FirstName)
	}
	if req.LastName != "" {
		if !utils.IsValidName(req.LastName) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Success: false,
				Message: "Invalid last name format",
			})
		}
		update["lastName"] = utils.FormatName(req.LastName)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.User
	err = uc.DB.Collection("users").FindOneAndUpdate(
		c.Request().Context(),
		bson.M{"_id": id},
		bson.M{"$set": update},
		opts,
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}
	if err != nil {
		return uc.serverError(c, "User update failed", err)
	}

	updated.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "User updated successfully",
		Result:  updated,
	})
}

// GetAllUsers lists users with optional case-insensitive search and exact
// role/status filters.
func (uc *UserController) GetAllUsers(c echo.Context) error {
	query := bson.M{}

	if search := c.QueryParam("search"); search != "" {
		regex := bson.M{"$regex": search, "$options": "i"}
		query["$or"] = []bson.M{
			{"firstName": regex},
			{"lastName": regex},
			{"username": regex},
			{"email": regex},
			{"mobileNumber": regex},
			{"role": regex},
			{"status": regex},
		}
	}
	if role := c.QueryParam("role"); role != "" {
		query["role"] = role
	}
	if status := c.QueryParam("status"); status != "" {
		query["status"] = status
	}

	ctx := c.Request().Context()

	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := uc.DB.Collection("users").Find(ctx, query, opts)
	if err != nil {
		return uc.serverError(c, "User search failed", err)
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return uc.serverError(c, "User decode failed", err)
	}

	if len(users) == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "No users found",
			Result:  []models.User{},
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Users fetched successfully",
		Result:  users,
	})
}

// GetUserByID fetches a single user, password excluded.
func (uc *UserController) GetUserByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	return uc.fetchUser(c, id, "User fetched successfully")
}

// GetMyProfile returns the account behind the presented token.
func (uc *UserController) GetMyProfile(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(middleware.GetUserIDFromToken(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: "Invalid user ID in token",
		})
	}

	return uc.fetchUser(c, id, "Profile fetched successfully")
}

// DeleteUser removes an account. Admin action only; wired behind the Owner
// role guard.
func (uc *UserController) DeleteUser(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	result, err := uc.DB.Collection("users").DeleteOne(c.Request().Context(), bson.M{"_id": id})
	if err != nil {
		return uc.serverError(c, "User delete failed", err)
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "User deleted successfully",
	})
}

func (uc *UserController) fetchUser(c echo.Context, id primitive.ObjectID, message string) error {
	opts := options.FindOne().SetProjection(bson.M{"password": 0})

	var user models.User
	err := uc.DB.Collection("users").FindOne(c.Request().Context(), bson.M{"_id": id}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: "User not found",
		})
	}
	if err != nil {
		return uc.serverError(c, "User lookup failed", err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Result:  user,
	})
}

func (uc *UserController) serverError(c echo.Context, context string, err error) error {
	uc.logger.Printf("%s: %v", context, err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Success: false,
		Message: "Server error",
	})
}
