package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/geonook/kcislk-timetalle/internal/dto"
	"github.com/geonook/kcislk-timetalle/internal/service"
	"github.com/geonook/kcislk-timetalle/pkg/response"
)

// TimetableHandler 课表模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// ListClasses 所有班级名及分来源计数
// GET /api/classes
func (h *TimetableHandler) ListClasses(c *gin.Context) {
	classes, counts, err := h.timetableSvc.ListClasses(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{
		"classes": classes,
		"counts":  counts,
	})
}

// GetTimetable 合并周课表
// GET /api/timetable/:class_name
func (h *TimetableHandler) GetTimetable(c *gin.Context) {
	className := c.Param("class_name")

	grid, err := h.timetableSvc.ResolveWeeklyTimetable(c.Request.Context(), className)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}
	response.OK(c, gin.H{
		"class_name": className,
		"timetable":  grid,
	})
}

// GetDayTimetable 单日课表（仅旧版平面表），无资料返回空列表
// GET /api/timetable/:class_name/:day
func (h *TimetableHandler) GetDayTimetable(c *gin.Context) {
	className := c.Param("class_name")
	day := c.Param("day")

	courses, err := h.timetableSvc.GetDayCourses(c.Request.Context(), className, day)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{
		"class_name": className,
		"day":        day,
		"courses":    courses,
	})
}

// Search 课程条件搜寻，空结果不算错误
// GET /api/search?class_name=&teacher=&classroom=&day=
func (h *TimetableHandler) Search(c *gin.Context) {
	var filters dto.SearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.BadRequest(c, "查询参数格式错误")
		return
	}

	results, err := h.timetableSvc.SearchCourses(c.Request.Context(), filters)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{
		"results": results,
		"count":   len(results),
	})
}

// ListTeachers 教师名列表
// GET /api/teachers
func (h *TimetableHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.timetableSvc.ListTeachers(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{"teachers": teachers})
}

// SearchTeachers 教师名子串搜寻
// GET /api/teachers/search?q=
func (h *TimetableHandler) SearchTeachers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.BadRequest(c, "缺少必填栏位: q")
		return
	}

	teachers, err := h.timetableSvc.SearchTeachers(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{
		"teachers": teachers,
		"count":    len(teachers),
	})
}

// ListClassrooms 教室名列表
// GET /api/classrooms
func (h *TimetableHandler) ListClassrooms(c *gin.Context) {
	classrooms, err := h.timetableSvc.ListClassrooms(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{"classrooms": classrooms})
}

// ListPeriods 节次定义列表
// GET /api/periods
func (h *TimetableHandler) ListPeriods(c *gin.Context) {
	periods, err := h.timetableSvc.ListPeriods(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{"periods": periods})
}

func (h *TimetableHandler) handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimetableClassNotFound):
		response.NotFound(c, service.ErrTimetableClassNotFound.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
