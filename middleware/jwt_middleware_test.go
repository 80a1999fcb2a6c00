package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("64f1a2b3c4d5e6f7a8b9c0d1", "Customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1a2b3c4d5e6f7a8b9c0d1", claims.UserID)
	assert.Equal(t, "Customer", claims.Role)
	assert.InDelta(t, time.Now().Add(tokenTTL).Unix(), claims.ExpiresAt, 5)
}

func TestParseJWTExpiredToken(t *testing.T) {
	claims := &JwtCustomClaims{
		UserID: "64f1a2b3c4d5e6f7a8b9c0d1",
		Role:   "Customer",
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Add(-2 * tokenTTL).Unix(),
			ExpiresAt: time.Now().Add(-tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(GetJWTSecret()))
	require.NoError(t, err)

	_, err = ParseJWT(signed)
	assert.Error(t, err)
}

func TestParseJWTWrongSignature(t *testing.T) {
	claims := &JwtCustomClaims{
		UserID: "64f1a2b3c4d5e6f7a8b9c0d1",
		Role:   "Customer",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = ParseJWT(signed)
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)
}

func TestJWTMiddlewareSetsContextKeys(t *testing.T) {
	token, err := GenerateJWT("64f1a2b3c4d5e6f7a8b9c0d1", "Owner")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTMiddleware()(func(c echo.Context) error {
		assert.Equal(t, "64f1a2b3c4d5e6f7a8b9c0d1", GetUserIDFromToken(c))
		assert.Equal(t, "Owner", GetRoleFromToken(c))
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTMiddleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestGetUserIDFromTokenWithoutMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.Equal(t, "", GetUserIDFromToken(c))
	assert.Equal(t, "", GetRoleFromToken(c))
}
