package middleware

import (
	"net/http"
	"strings"

	"taxigo/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and sets the caller identity
// on the request context. Absence of the header yields 401 "No token",
// anything unverifiable yields 401 "Invalid token".
func AuthRequired(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": utils.ErrMsgNoToken})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": utils.ErrMsgInvalidToken})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, secretKey)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": utils.ErrMsgInvalidToken})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// UserID returns the authenticated user id set by AuthRequired.
func UserID(c *gin.Context) string {
	return c.GetString("user_id")
}
