package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/hackernews/pkg/hackernews/requestid"
)

// ContextKeyUserID is the key for user ID in gin context
const ContextKeyUserID = "user_id"

// Middleware decodes the Authorization header when one is present and sets
// the user ID in context. Requests without the header pass through
// anonymously; a header that fails to decode is rejected with 401.
func Middleware(dec *Decoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// net/http trims trailing spaces, so "Bearer " arrives as "Bearer"
		if authHeader == strings.TrimSpace(BearerPrefix) {
			authHeader = BearerPrefix
		}

		claims, err := dec.DecodeAuthHeader(authHeader)
		if err != nil {
			log.Printf("[%s] rejected token: %v", requestid.Get(c), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"errors": []gin.H{{
					"message":    err.Error(),
					"extensions": gin.H{"code": "UNAUTHENTICATED"},
				}},
			})
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// GetUserID returns the user ID from the gin context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}
