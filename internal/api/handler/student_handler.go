package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/geonook/kcislk-timetalle/internal/service"
	"github.com/geonook/kcislk-timetalle/pkg/response"
)

// StudentHandler 学生模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// ListStudents 全部学生
// GET /api/students
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentSvc.ListStudents(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{
		"students": students,
		"count":    len(students),
	})
}

// SearchStudents 学号/姓名子串搜寻
// GET /api/students/search?q=
func (h *StudentHandler) SearchStudents(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.BadRequest(c, "缺少必填栏位: q")
		return
	}

	students, err := h.studentSvc.SearchStudents(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{
		"students": students,
		"count":    len(students),
	})
}

// GetStudent 学生基本资料
// GET /api/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.studentSvc.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, gin.H{"student": student})
}

// GetStudentTimetable 学生视角分类型周课表
// GET /api/students/:id/timetable
func (h *StudentHandler) GetStudentTimetable(c *gin.Context) {
	student, timetables, stats, err := h.studentSvc.GetStudentTimetables(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, gin.H{
		"student":    student,
		"timetables": timetables,
		"statistics": stats,
	})
}

func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, service.ErrStudentNotFound.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
