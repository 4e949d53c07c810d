package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/geonook/kcislk-timetalle/pkg/response"
)

// adminKeyHeader 管理端共享密钥请求头
const adminKeyHeader = "X-Admin-Key"

// AdminAuth 管理端鉴权中间件
// 单一静态共享密钥，常数时间比较防时序侧信道
func AdminAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(adminKeyHeader)
		if provided == "" {
			response.Unauthorized(c, "缺少 "+adminKeyHeader+" 请求头")
			c.Abort()
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			response.Unauthorized(c, "管理密钥不正确")
			c.Abort()
			return
		}
		c.Next()
	}
}
