package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"newsletter-admin-go/pkg/api/response"
)

// Recovery turns a panic into a 500 error envelope and logs the stack.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error("Recovered from panic",
					zap.String("router", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("ip", c.ClientIP()),
					zap.String("panic_value", fmt.Sprintf("%v", recovered)),
					zap.String("stack", string(debug.Stack())),
				)
				response.Internal(c)
			}
		}()

		c.Next()
	}
}
