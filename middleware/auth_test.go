package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-triage-service/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authTestRouter() (*gin.Engine, *models.Principal) {
	gin.SetMode(gin.TestMode)
	var seen models.Principal
	router := gin.New()
	router.Use(AuthMiddleware(testSecret))
	router.GET("/protected", func(c *gin.Context) {
		seen = GetPrincipalFromContext(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, &seen
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router, _ := authTestRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router, _ := authTestRouter()

	for _, header := range []string{"Bearer", "Basic abc123", "not-a-bearer-token"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	router, _ := authTestRouter()
	token := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": "user1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	router, _ := authTestRouter()
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "user1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMissingUserID(t *testing.T) {
	router, _ := authTestRouter()
	token := signToken(t, testSecret, jwt.MapClaims{
		"is_admin": true,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router, seen := authTestRouter()
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "user1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user1", seen.UserID)
	assert.False(t, seen.IsAdmin, "is_admin defaults to false when the claim is absent")
}

func TestAuthMiddlewareAdminClaim(t *testing.T) {
	router, seen := authTestRouter()
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id":  "admin1",
		"is_admin": true,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin1", seen.UserID)
	assert.True(t, seen.IsAdmin)
}
