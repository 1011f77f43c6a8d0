// Package response maps service errors to the wire format: a real HTTP
// status plus a short {"error": "<message>"} body. Internal detail never
// leaves the process; it goes to the log.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contact-book/internal/apperr"
)

func Err(c *gin.Context, l *zap.Logger, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if ae.Err != nil {
			l.Error(ae.Msg,
				zap.Error(ae.Err),
				zap.String("path", c.FullPath()),
				zap.String("method", c.Request.Method),
			)
		}
		c.JSON(ae.Status, gin.H{"error": ae.Error()})
		return
	}
	l.Error("unhandled error",
		zap.Error(err),
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
