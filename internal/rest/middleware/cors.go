package middleware

import (
	"net/http"

	"github.com/brushlead/brushlead/internal/types"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware handles CORS headers for the browser-facing API. The
// webhook endpoint is server-to-server and never preflights, so only the
// headers the v1 surface actually uses are allowed.
func CORSMiddleware(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+types.HeaderRequestID)
	c.Writer.Header().Set("Access-Control-Expose-Headers", types.HeaderRequestID)
	c.Writer.Header().Set("Access-Control-Max-Age", "86400")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}
