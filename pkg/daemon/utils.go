package daemon

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// requestLogger logs every request through logrus. Generic dispatch
// calls additionally get the operation name they routed to, so a
// not-implemented reply can be traced back to the caller's call name.
func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// handlers can rewrite the path, keep the original
		path := c.Request.URL.Path
		start := time.Now()
		c.Next()
		latencyMs := time.Since(start).Milliseconds()
		statusCode := c.Writer.Status()

		fields := logrus.Fields{
			"statusCode": statusCode,
			"latencyMs":  latencyMs,
			"method":     c.Request.Method,
			"path":       path,
		}
		if op := c.Param("operation"); op != "" {
			fields["operation"] = op
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			entry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
			return
		}

		msg := fmt.Sprintf("%s %s %d (%dms)", c.Request.Method, path, statusCode, latencyMs)
		switch {
		case statusCode >= http.StatusInternalServerError:
			entry.Error(msg)
		case statusCode >= http.StatusBadRequest:
			entry.Warn(msg)
		default:
			entry.Debug(msg)
		}
	}
}
