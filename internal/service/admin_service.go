package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/geonook/kcislk-timetalle/internal/dto"
	"github.com/geonook/kcislk-timetalle/internal/repository"
	"github.com/geonook/kcislk-timetalle/pkg/redis"
)

// ── 管理模块业务错误 ──

var (
	ErrAdminFromRequired  = errors.New("缺少必填栏位: from")
	ErrAdminToRequired    = errors.New("缺少必填栏位: to")
	ErrAdminSameTeacher   = errors.New("from 与 to 不能相同")
	ErrAdminTeacherNoRows = errors.New("找不到该教师名下的任何资料")
)

// ── AdminService 接口 ──────────────────────────────────
//
// 数据修补入口：课表来源档案偶尔把同一位教师录成两个名字，
// 合并操作把 from 名下所有课表行改挂到 to 名下并删除重复的
// teachers 条目，整个过程单一事务。
// ─────────────────────────────────────────────────────────────

// AdminService 管理模块业务接口
type AdminService interface {
	// MergeTeacher 合并重复教师名，返回逐表影响行数
	MergeTeacher(ctx context.Context, req *dto.MergeTeacherRequest) (*dto.MergeTeacherDetails, error)
}

type adminService struct {
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, cache: cache, logger: logger}
}

func (s *adminService) MergeTeacher(ctx context.Context, req *dto.MergeTeacherRequest) (*dto.MergeTeacherDetails, error) {
	if req.From == "" {
		return nil, ErrAdminFromRequired
	}
	if req.To == "" {
		return nil, ErrAdminToRequired
	}
	if req.From == req.To {
		return nil, ErrAdminSameTeacher
	}

	details, err := s.repo.Admin.MergeTeacher(ctx, req.From, req.To)
	if err != nil {
		s.logger.Error("合并教师失败", zap.Error(err),
			zap.String("from", req.From), zap.String("to", req.To))
		return nil, fmt.Errorf("合并教师失败: %w", err)
	}

	if details.TimetableUpdated == 0 && details.EnglishTimetableUpdated == 0 &&
		details.HomeroomUpdated == 0 && details.TeachersDeleted == 0 {
		return nil, ErrAdminTeacherNoRows
	}

	// 教师列表缓存已失真，全部清除
	s.cache.InvalidateLookups(ctx)

	s.logger.Info("合并教师完成",
		zap.String("from", req.From), zap.String("to", req.To),
		zap.Int64("timetable", details.TimetableUpdated),
		zap.Int64("english", details.EnglishTimetableUpdated),
		zap.Int64("homeroom", details.HomeroomUpdated))

	return details, nil
}
