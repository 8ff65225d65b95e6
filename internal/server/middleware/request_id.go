package middleware

import (
	"github.com/gin-gonic/gin"

	"imagegen/internal/pkg/ctxutil"
	"imagegen/internal/pkg/id"
)

// RequestIDHeader 请求 ID 请求/响应头
const RequestIDHeader = "X-Request-ID"

// RequestIDKey gin 上下文中的请求 ID 键
const RequestIDKey = "request_id"

// RequestID 请求 ID 中间件
// 沿用上游传入的合法 UUID，否则生成新的
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if !id.IsValid(rid) {
			rid = id.New()
		}

		c.Set(RequestIDKey, rid)
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), rid))
		c.Header(RequestIDHeader, rid)

		c.Next()
	}
}
