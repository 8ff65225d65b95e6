package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPRecorder HTTP 指标记录接口
type HTTPRecorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

// Metrics 指标中间件，按路由模板（而非原始路径）聚合
func Metrics(recorder HTTPRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		recorder.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
