package server

import (
	"net/http"
	"time"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/amoylab/sessiongate/internal/common/errorx"
	"github.com/amoylab/sessiongate/internal/gate"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ctxKeyRequestID = "request_id"

// requestIDMiddleware propagates or assigns an X-Request-Id
func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cnst.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header(cnst.HeaderRequestID, id)
		c.Next()
	}
}

// loggerMiddleware logs each request once it completes
func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", c.GetString(ctxKeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("remote_addr", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.logger.Warn("request completed", fields...)
			return
		}
		s.logger.Debug("request completed", fields...)
	}
}

// recoveryMiddleware recovers from panics and answers with a SYS_500 envelope
func (s *Server) recoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)
				msg := s.filter.Messages().Message(errorx.ErrSystem, "")
				body := gate.BuildEnvelope(errorx.ErrSystem.Code, msg)
				c.Data(http.StatusInternalServerError, cnst.ContentTypeJSONUTF8, body)
				c.Abort()
			}
		}()
		c.Next()
	}
}
