package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// contextWithTimeout derives a request-scoped context; a zero timeout only
// follows the client connection
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}
