package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/geonook/kcislk-timetalle/config"
	"github.com/geonook/kcislk-timetalle/internal/api/handler"
	"github.com/geonook/kcislk-timetalle/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "status": "ok"})
	})

	// ── API ──
	api := r.Group("/api")
	{
		// 课表模块
		api.GET("/classes", h.Timetable.ListClasses)
		api.GET("/timetable/:class_name", h.Timetable.GetTimetable)
		api.GET("/timetable/:class_name/ics", h.Export.ExportClassICS)
		api.GET("/timetable/:class_name/:day", h.Timetable.GetDayTimetable)
		api.GET("/search", h.Timetable.Search)

		// 基础列表
		api.GET("/teachers", h.Timetable.ListTeachers)
		api.GET("/teachers/search", h.Timetable.SearchTeachers)
		api.GET("/teachers/:name/timetable", h.Teacher.GetTeacherTimetable)
		api.GET("/classrooms", h.Timetable.ListClassrooms)
		api.GET("/periods", h.Timetable.ListPeriods)

		// 学生模块
		students := api.Group("/students")
		{
			students.GET("", h.Student.ListStudents)
			students.GET("/search", h.Student.SearchStudents)
			students.GET("/:id", h.Student.GetStudent)
			students.GET("/:id/timetable", h.Student.GetStudentTimetable)
		}

		// 监考模块
		exam := api.Group("/exam")
		{
			exam.GET("/sessions", h.Exam.ListSessions)
			exam.GET("/sessions/date/:date", h.Exam.ListSessionsByDate)
			exam.GET("/sessions/:id", h.Exam.GetSession)
			exam.GET("/dates", h.Exam.ListExamDates)

			exam.GET("/classes", h.Exam.ListClassInfos)
			exam.GET("/classes/grade-band/:grade_band", h.Exam.ListClassInfosByGradeBand)
			exam.GET("/classes/:class_name", h.Exam.GetClassInfoByName)

			exam.GET("/proctors", h.Exam.ListProctors)
			exam.POST("/proctors", h.Exam.CreateProctor)
			exam.POST("/proctors/batch", h.Exam.BatchAssign)
			exam.PUT("/proctors/:id", h.Exam.UpdateProctor)
			exam.DELETE("/proctors/:id", h.Exam.DeleteProctor)

			exam.GET("/stats", h.Exam.GetStats)
			exam.GET("/export", h.Exam.ExportCSV)
			exam.GET("/export/:grade_band", h.Exam.ExportCSVByGradeBand)
		}

		// 导出模块
		api.GET("/export/timetables", h.Export.ExportAllTimetables)

		// 管理模块（静态共享密钥保护）
		admin := api.Group("/admin")
		{
			admin.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{"success": true, "status": "ok"})
			})

			protected := admin.Group("")
			protected.Use(middleware.AdminAuth(cfg.Admin.APIKey))
			{
				protected.POST("/merge-teacher", h.Admin.MergeTeacher)
			}
		}
	}

	return r
}
