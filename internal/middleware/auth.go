package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// AuthMiddleware validates JWT tokens and extracts the merchant identity
func AuthMiddleware(secretKey string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Authorization header must start with 'Bearer '")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthorized(c, "JWT token is required")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		})
		if err != nil {
			logger.Debug("Rejected JWT token",
				zap.String("correlationID", GetCorrelationID(c)),
				zap.Error(err))
			abortUnauthorized(c, "Invalid JWT token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			abortUnauthorized(c, "Invalid JWT token claims")
			return
		}

		// Extract user ID from claims - try 'sub' first, then 'id'
		var userID string
		if sub, exists := claims["sub"].(string); exists && sub != "" {
			userID = sub
		} else if id, exists := claims["id"].(string); exists && id != "" {
			userID = id
		} else {
			abortUnauthorized(c, "User ID not found in token")
			return
		}

		c.Set("userID", userID)
		if role, exists := claims["role"].(string); exists {
			c.Set("userRole", role)
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
