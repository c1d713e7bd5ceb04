package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"report-triage-service/models"
)

const principalKey = "principal"

// AuthMiddleware verifies the bearer token issued by the external auth
// service and stores the decoded principal in the request context. This
// service never issues or refreshes tokens; it only consumes the
// (user_id, is_admin) claims as given.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warnf("Missing authorization header from %s", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		tokenString := extractToken(authHeader)
		if tokenString == "" {
			log.Warnf("Invalid authorization format from %s", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		principal, err := validateToken(tokenString, jwtSecret)
		if err != nil {
			log.Warnf("Token validation failed from %s: %v", c.ClientIP(), err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func extractToken(authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func validateToken(tokenString, jwtSecret string) (models.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return models.Principal{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Principal{}, fmt.Errorf("invalid token claims")
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return models.Principal{}, fmt.Errorf("token has no user_id claim")
	}
	isAdmin, _ := claims["is_admin"].(bool)

	return models.Principal{UserID: userID, IsAdmin: isAdmin}, nil
}

// GetPrincipalFromContext extracts the decoded principal from the Gin context.
func GetPrincipalFromContext(c *gin.Context) models.Principal {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(models.Principal); ok {
			return p
		}
	}
	return models.Principal{}
}
