package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/geonook/kcislk-timetalle/internal/service"
	"github.com/geonook/kcislk-timetalle/pkg/response"
)

// TeacherHandler 教师视角课表 HTTP 处理器
type TeacherHandler struct {
	teacherSvc service.TeacherService
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(teacherSvc service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

// GetTeacherTimetable 教师视角的合并周课表
// GET /api/teachers/:name/timetable
func (h *TeacherHandler) GetTeacherTimetable(c *gin.Context) {
	name := c.Param("name")

	grid, stats, err := h.teacherSvc.GetTeacherTimetable(c.Request.Context(), name)
	if err != nil {
		h.handleTeacherError(c, err)
		return
	}
	response.OK(c, gin.H{
		"teacher":    name,
		"timetable":  grid,
		"statistics": stats,
	})
}

func (h *TeacherHandler) handleTeacherError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, service.ErrTeacherNotFound.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
