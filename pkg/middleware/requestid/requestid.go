// Package requestid tags every request with an identifier that survives into
// logs and the response, so a client-reported failure can be traced.
package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header is the request and response header carrying the identifier.
const Header = "X-Request-ID"

const contextKey = "request_id"

// Middleware propagates the caller's X-Request-ID, minting a fresh UUID when
// the caller sent none.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextKey, id)
		c.Writer.Header().Set(Header, id)
		c.Next()
	}
}

// Value returns the identifier assigned to the request, or "" outside the
// middleware.
func Value(c *gin.Context) string {
	if v, ok := c.Get(contextKey); ok {
		if id, isString := v.(string); isString {
			return id
		}
	}
	return ""
}
