package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/geonook/kcislk-timetalle/internal/service"
	"github.com/geonook/kcislk-timetalle/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAllTimetables 全部课表导出为 Excel
// GET /api/export/timetables
func (h *ExportHandler) ExportAllTimetables(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportAllTimetables(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportClassICS 班级周课表导出为 iCalendar
// GET /api/timetable/:class_name/ics
func (h *ExportHandler) ExportClassICS(c *gin.Context) {
	data, filename, err := h.exportSvc.ExportClassICS(c.Request.Context(), c.Param("class_name"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimetableClassNotFound):
		response.NotFound(c, service.ErrTimetableClassNotFound.Error())
	case errors.Is(err, service.ErrExportNoTimetables):
		response.NotFound(c, service.ErrExportNoTimetables.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c, service.ErrExportGenerateFail.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
