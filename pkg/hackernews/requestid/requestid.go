package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// Header carries the request ID in both directions
	Header = "X-Request-ID"
	// ContextKey is the key for the request ID in gin context
	ContextKey = "request_id"

	maxLength = 128
)

// Middleware assigns every request an ID, reusing the caller's X-Request-ID
// when it is sane, and echoes it in the response.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" || len(id) > maxLength {
			id = uuid.NewString()
		}
		c.Set(ContextKey, id)
		c.Header(Header, id)
		c.Next()
	}
}

// Get returns the request ID from the gin context, or "-" if none was set
func Get(c *gin.Context) string {
	if id := c.GetString(ContextKey); id != "" {
		return id
	}
	return "-"
}
