package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/geonook/kcislk-timetalle/internal/dto"
	"github.com/geonook/kcislk-timetalle/internal/repository"
)

// ── 教师模块业务错误 ──

var (
	ErrTeacherNotFound = errors.New("找不到该教师的任何课表资料")
)

// ── TeacherService 接口 ──────────────────────────────────
//
// 教师视角课表：以教师名精确匹配英文班与 homeroom 两个来源，
// 合并进单张周网格（旧版平面表另有搜寻接口覆盖，不在此并入）。
// ─────────────────────────────────────────────────────────────

// TeacherService 教师模块业务接口
type TeacherService interface {
	// GetTeacherTimetable 教师视角的合并周课表与统计；
	// 两个来源均无资料时视为教师不存在
	GetTeacherTimetable(ctx context.Context, teacherName string) (dto.TypedGrid, *dto.ScopedStatistics, error)
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

func (s *teacherService) GetTeacherTimetable(ctx context.Context, teacherName string) (dto.TypedGrid, *dto.ScopedStatistics, error) {
	englishRows, err := s.repo.English.ListByTeacher(ctx, teacherName)
	if err != nil {
		s.logger.Error("查询教师英文班课表失败", zap.Error(err))
		return nil, nil, fmt.Errorf("查询教师课表失败: %w", err)
	}
	homeroomRows, err := s.repo.Homeroom.ListByTeacher(ctx, teacherName)
	if err != nil {
		s.logger.Error("查询教师 homeroom 课表失败", zap.Error(err))
		return nil, nil, fmt.Errorf("查询教师课表失败: %w", err)
	}

	if len(englishRows) == 0 && len(homeroomRows) == 0 {
		return nil, nil, ErrTeacherNotFound
	}

	grid := newTypedGrid()
	englishCount, homeroomCount := 0, 0
	uniqueClasses := make(map[string]bool)

	for _, row := range sortEnglishRows(englishRows) {
		slots, ok := grid[row.Day]
		if !ok {
			continue
		}
		period, timeRange := DecodePeriod(row.Period)
		key := strconv.Itoa(period)
		if _, taken := slots[key]; taken {
			continue
		}
		slots[key] = dto.ScopedCourse{
			Subject:   "English - " + row.ClassName,
			Teacher:   row.Teacher,
			Classroom: row.Classroom,
			ClassName: row.ClassName,
			Period:    period,
			Time:      timeRange,
		}
		englishCount++
		uniqueClasses[row.ClassName] = true
	}

	for _, row := range sortHomeroomRows(homeroomRows) {
		slots, ok := grid[row.Day]
		if !ok {
			continue
		}
		period, timeRange := DecodePeriod(row.Period)
		key := strconv.Itoa(period)
		if _, taken := slots[key]; taken {
			continue
		}
		slots[key] = dto.ScopedCourse{
			Subject:   row.CourseName,
			Teacher:   row.Teacher,
			Classroom: row.Classroom,
			ClassName: row.HomeRoomClassName,
			Period:    period,
			Time:      timeRange,
		}
		homeroomCount++
		uniqueClasses[row.HomeRoomClassName] = true
	}

	stats := &dto.ScopedStatistics{
		TotalClasses:    englishCount + homeroomCount,
		DaysWithClasses: countDaysWithClasses(grid),
		EnglishClasses:  englishCount,
		HomeroomClasses: homeroomCount,
		UniqueClasses:   len(uniqueClasses),
	}
	return grid, stats, nil
}
