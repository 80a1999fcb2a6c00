// middleware/jwt_middleware.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Vignesh3161/righttouch-backend/config"
	"github.com/Vignesh3161/righttouch-backend/models"
)

const tokenTTL = 24 * time.Hour

// JwtCustomClaims for JWT token
type JwtCustomClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// GetJWTSecret returns the JWT secret from environment variables. A missing
// secret is a configuration fault, fatal for every path that signs or
// verifies tokens.
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	return secret
}

// GenerateJWT mints a signed token carrying the account id and role,
// expiring after 24 hours.
func GenerateJWT(userID, role string) (string, error) {
	now := time.Now()
	claims := &JwtCustomClaims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(GetJWTSecret()))
}

// ParseJWT validates a raw token string and returns its claims.
func ParseJWT(tokenString string) (*JwtCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(GetJWTSecret()), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// JWTMiddleware returns a configured JWT middleware
func JWTMiddleware() echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(GetJWTSecret()),
		Claims:     &JwtCustomClaims{},
		SuccessHandler: func(c echo.Context) {
			user := c.Get("user").(*jwt.Token)
			claims := user.Claims.(*JwtCustomClaims)

			c.Set("userId", claims.UserID)
			c.Set("role", claims.Role)
		},
		ErrorHandler: func(err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Token invalid or expired")
		},
	})
}

// RequireRoles restricts a route to the given roles, compared
// case-insensitively against the user's current record so a role change
// takes effect without waiting for token expiry.
func RequireRoles(db *mongo.Client, allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := GetUserIDFromToken(c)
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Success: false,
					Message: "Authorization token required",
				})
			}

			objID, err := primitive.ObjectIDFromHex(userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Success: false,
					Message: "Invalid user ID in token",
				})
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			var user models.User
			err = config.GetCollection(db, "users").FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
			if err != nil {
				return c.JSON(http.StatusNotFound, models.Response{
					Success: false,
					Message: "User not found",
				})
			}

			for _, role := range allowedRoles {
				if strings.EqualFold(role, user.Role) {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, models.Response{
				Success: false,
				Message: "Access denied: " + strings.Join(allowedRoles, ", ") + " only",
			})
		}
	}
}

// GetUserIDFromToken extracts the user ID set by the JWT middleware.
func GetUserIDFromToken(c echo.Context) string {
	if userID, ok := c.Get("userId").(string); ok && userID != "" {
		return userID
	}

	user, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	if claims, ok := user.Claims.(*JwtCustomClaims); ok {
		return claims.UserID
	}
	return ""
}

// GetRoleFromToken extracts the role set by the JWT middleware.
func GetRoleFromToken(c echo.Context) string {
	if role, ok := c.Get("role").(string); ok && role != "" {
		return role
	}

	user, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	if claims, ok := user.Claims.(*JwtCustomClaims); ok {
		return claims.Role
	}
	return ""
}
