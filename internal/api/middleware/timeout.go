package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"stock-trading-backend/internal/api/dto"

	"github.com/gin-gonic/gin"
)

// Timeout bounds the request context by duration and runs the rest of the
// chain on the calling goroutine. Handlers are expected to return once the
// context is done; anything they try to write after the deadline, before a
// response has started, is dropped and a 504 is sent instead.
func Timeout(duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), duration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		orig := c.Writer
		c.Writer = &deadlineWriter{ResponseWriter: orig, ctx: ctx}
		c.Next()
		c.Writer = orig

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, dto.Res{
				Success: false,
				Error:   "request timed out",
			})
		}
	}
}

// deadlineWriter discards output once ctx is done, unless the response has
// already started.
type deadlineWriter struct {
	gin.ResponseWriter
	ctx context.Context
}

func (w *deadlineWriter) expired() bool {
	return w.ctx.Err() != nil && !w.ResponseWriter.Written()
}

func (w *deadlineWriter) WriteHeader(code int) {
	if w.expired() {
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *deadlineWriter) WriteHeaderNow() {
	if w.expired() {
		return
	}
	w.ResponseWriter.WriteHeaderNow()
}

func (w *deadlineWriter) Write(b []byte) (int, error) {
	if w.expired() {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *deadlineWriter) WriteString(s string) (int, error) {
	if w.expired() {
		return len(s), nil
	}
	return w.ResponseWriter.WriteString(s)
}
