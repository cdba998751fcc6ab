package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger logs every request at debug level; errors are logged at the call site.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	h.log.Debugw("http_request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"latency", time.Since(start),
	)
}
