package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GinLogger is an access-log middleware writing one structured line per
// request through the global zap logger.
func GinLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		ctx.Set("request_id", requestID)

		ctx.Next()

		if Logger == nil {
			return
		}
		Logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.String("ip", ctx.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// GinRecovery converts panics into 500 responses and logs them with stack traces.
func GinRecovery() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if Logger != nil {
					Logger.Error("panic recovered",
						zap.Any("error", r),
						zap.String("path", ctx.Request.URL.Path),
						zap.Stack("stacktrace"),
					)
				}
				Error(ctx, 500, 50000, "internal server error")
				ctx.Abort()
			}
		}()
		ctx.Next()
	}
}
