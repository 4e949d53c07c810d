package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/geonook/kcislk-timetalle/internal/dto"
	"github.com/geonook/kcislk-timetalle/internal/service"
	"github.com/geonook/kcislk-timetalle/pkg/response"
)

// ExamHandler 监考模块 HTTP 处理器
type ExamHandler struct {
	examSvc service.ExamService
}

// NewExamHandler 创建 ExamHandler
func NewExamHandler(examSvc service.ExamService) *ExamHandler {
	return &ExamHandler{examSvc: examSvc}
}

// ── 考试场次 ──

// ListSessions 全部考试场次
// GET /api/exam/sessions
func (h *ExamHandler) ListSessions(c *gin.Context) {
	sessions, err := h.examSvc.ListSessions(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// GetSession 单一场次
// GET /api/exam/sessions/:id
func (h *ExamHandler) GetSession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "id 必须为整数")
		return
	}

	session, err := h.examSvc.GetSession(c.Request.Context(), id)
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, gin.H{"session": session})
}

// ListSessionsByDate 指定日期的场次
// GET /api/exam/sessions/date/:date
func (h *ExamHandler) ListSessionsByDate(c *gin.Context) {
	sessions, err := h.examSvc.ListSessionsByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// ListExamDates 所有考试日期
// GET /api/exam/dates
func (h *ExamHandler) ListExamDates(c *gin.Context) {
	dates, err := h.examSvc.ListExamDates(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{"dates": dates})
}

// ── 班级考试资讯 ──

// ListClassInfos 全部班级考试资讯
// GET /api/exam/classes
func (h *ExamHandler) ListClassInfos(c *gin.Context) {
	infos, err := h.examSvc.ListClassInfos(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{
		"classes": infos,
		"count":   len(infos),
	})
}

// ListClassInfosByGradeBand 指定 GradeBand 的班级资讯
// GET /api/exam/classes/grade-band/:grade_band
func (h *ExamHandler) ListClassInfosByGradeBand(c *gin.Context) {
	infos, err := h.examSvc.ListClassInfosByGradeBand(c.Request.Context(), c.Param("grade_band"))
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, gin.H{
		"classes": infos,
		"count":   len(infos),
	})
}

// GetClassInfoByName 按班级名取得考试资讯
// GET /api/exam/classes/:class_name
func (h *ExamHandler) GetClassInfoByName(c *gin.Context) {
	info, err := h.examSvc.GetClassInfoByName(c.Request.Context(), c.Param("class_name"))
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, gin.H{"class": info})
}

// ── 监考分配 ──

// ListProctors 全部监考分配
// GET /api/exam/proctors
func (h *ExamHandler) ListProctors(c *gin.Context) {
	proctors, err := h.examSvc.ListProctors(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{
		"proctors": proctors,
		"count":    len(proctors),
	})
}

// CreateProctor 新增监考分配
// POST /api/exam/proctors
func (h *ExamHandler) CreateProctor(c *gin.Context) {
	var req dto.CreateProctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求格式错误")
		return
	}

	proctor, err := h.examSvc.CreateProctor(c.Request.Context(), &req)
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	response.Created(c, gin.H{"proctor": proctor})
}

// UpdateProctor 更新监考分配
// PUT /api/exam/proctors/:id
func (h *ExamHandler) UpdateProctor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "id 必须为整数")
		return
	}

	var req dto.UpdateProctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求格式错误")
		return
	}

	proctor, err := h.examSvc.UpdateProctor(c.Request.Context(), id, &req)
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, gin.H{"proctor": proctor})
}

// DeleteProctor 删除监考分配
// DELETE /api/exam/proctors/:id
func (h *ExamHandler) DeleteProctor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "id 必须为整数")
		return
	}

	if err := h.examSvc.DeleteProctor(c.Request.Context(), id); err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": id})
}

// BatchAssign 批次新增/更新监考分配
// POST /api/exam/proctors/batch
func (h *ExamHandler) BatchAssign(c *gin.Context) {
	var req dto.BatchAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求格式错误")
		return
	}
	if len(req.Assignments) == 0 {
		response.BadRequest(c, "缺少必填栏位: assignments")
		return
	}

	result, err := h.examSvc.BatchAssign(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{
		"created": result.Created,
		"updated": result.Updated,
		"errors":  result.Errors,
	})
}

// ── 统计与报表 ──

// GetStats 分配进度统计
// GET /api/exam/stats
func (h *ExamHandler) GetStats(c *gin.Context) {
	overall, byDate, err := h.examSvc.GetStats(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.OK(c, gin.H{
		"overall": overall,
		"by_date": byDate,
	})
}

// ExportCSV 全部班级的监考报表
// GET /api/exam/export
func (h *ExamHandler) ExportCSV(c *gin.Context) {
	data, err := h.examSvc.ExportCSV(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	writeCSV(c, "proctor_assignments.csv", data)
}

// ExportCSVByGradeBand 指定 GradeBand 的监考报表
// GET /api/exam/export/:grade_band
func (h *ExamHandler) ExportCSVByGradeBand(c *gin.Context) {
	gradeBand := c.Param("grade_band")
	data, err := h.examSvc.ExportCSVByGradeBand(c.Request.Context(), gradeBand)
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	writeCSV(c, "proctor_assignments_"+gradeBand+".csv", data)
}

// writeCSV 设置下载响应头后写出 CSV 内容
func writeCSV(c *gin.Context, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *ExamHandler) handleExamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExamSessionNotFound):
		response.NotFound(c, service.ErrExamSessionNotFound.Error())
	case errors.Is(err, service.ErrExamClassNotFound):
		response.NotFound(c, service.ErrExamClassNotFound.Error())
	case errors.Is(err, service.ErrProctorNotFound):
		response.NotFound(c, service.ErrProctorNotFound.Error())
	case errors.Is(err, service.ErrProctorAlreadyAssigned):
		response.Conflict(c, service.ErrProctorAlreadyAssigned.Error())
	case errors.Is(err, service.ErrProctorTeacherRequired):
		response.BadRequest(c, service.ErrProctorTeacherRequired.Error())
	case errors.Is(err, service.ErrProctorClassroomMissing):
		response.BadRequest(c, service.ErrProctorClassroomMissing.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
