package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/geonook/kcislk-timetalle/internal/dto"
	"github.com/geonook/kcislk-timetalle/internal/service"
	"github.com/geonook/kcislk-timetalle/pkg/response"
)

// AdminHandler 管理模块 HTTP 处理器
type AdminHandler struct {
	adminSvc service.AdminService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// MergeTeacher 合并重复教师名
// POST /api/admin/merge-teacher
func (h *AdminHandler) MergeTeacher(c *gin.Context) {
	var req dto.MergeTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求格式错误")
		return
	}

	details, err := h.adminSvc.MergeTeacher(c.Request.Context(), &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}
	response.OK(c, gin.H{
		"from":    req.From,
		"to":      req.To,
		"details": details,
	})
}

func (h *AdminHandler) handleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAdminFromRequired):
		response.BadRequest(c, service.ErrAdminFromRequired.Error())
	case errors.Is(err, service.ErrAdminToRequired):
		response.BadRequest(c, service.ErrAdminToRequired.Error())
	case errors.Is(err, service.ErrAdminSameTeacher):
		response.BadRequest(c, service.ErrAdminSameTeacher.Error())
	case errors.Is(err, service.ErrAdminTeacherNoRows):
		response.NotFound(c, service.ErrAdminTeacherNoRows.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
