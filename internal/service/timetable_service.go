package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/geonook/kcislk-timetalle/internal/dto"
	"github.com/geonook/kcislk-timetalle/internal/model"
	"github.com/geonook/kcislk-timetalle/internal/repository"
	"github.com/geonook/kcislk-timetalle/pkg/redis"
)

// ── 课表模块业务错误 ──

var (
	ErrTimetableClassNotFound = errors.New("找不到该班级的任何课表资料")
)

// 三类来源在响应中的 class_type 标记
const (
	ClassTypeEnglish  = "english"
	ClassTypeHomeroom = "homeroom"
	ClassTypeRegular  = "regular"
)

// Weekdays 周课表网格的五个法定键，按周一至周五排列
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// ── TimetableService 接口 ──────────────────────────────────
//
// 设计说明：
//   - ResolveWeeklyTimetable 是核心合并引擎：英文班 → homeroom →
//     旧版平面表三个来源归一化为统一课程形状后折叠进周网格。
//   - 英文班格式的名称（见 ClassifyClassName）跳过 homeroom 查询；
//     旧版平面表无论名称格式一律并入。
//   - 同一 (星期, 节次) 槽位先到先得，来源顺序即优先级：
//     english > homeroom > regular。
//   - 合并结果每次请求实时计算，永不缓存；基础列表走 Redis 短 TTL。
// ─────────────────────────────────────────────────────────────

// TimetableService 课表模块业务接口
type TimetableService interface {
	// ResolveWeeklyTimetable 合并三类来源为周课表网格
	ResolveWeeklyTimetable(ctx context.Context, className string) (dto.WeeklyGrid, error)
	// GetDayCourses 单日课表（仅旧版平面表），无资料时返回空列表而非错误
	GetDayCourses(ctx context.Context, className, day string) ([]dto.DayCourse, error)
	// SearchCourses 条件搜寻（仅旧版平面表），空结果是正常返回
	SearchCourses(ctx context.Context, filters dto.SearchFilters) ([]model.TimetableEntry, error)
	// ListClasses 列出所有已知班级名（英文班 ∪ homeroom）及分来源计数
	ListClasses(ctx context.Context) ([]string, *dto.ClassListCounts, error)
	// ListTeachers 教师名列表
	ListTeachers(ctx context.Context) ([]string, error)
	// SearchTeachers 教师名子串搜寻
	SearchTeachers(ctx context.Context, q string) ([]string, error)
	// ListClassrooms 教室名列表
	ListClassrooms(ctx context.Context) ([]string, error)
	// ListPeriods 节次定义列表
	ListPeriods(ctx context.Context) ([]model.Period, error)
}

type timetableService struct {
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, cache: cache, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ResolveWeeklyTimetable — 周课表合并引擎
// ════════════════════════════════════════════════════════════
//
// 流程：
//   1. 英文班课表：class_name 精确匹配，节次编码解码
//   2. 名称分类为英文班格式时跳过 homeroom；否则精确匹配 homeroom 表
//   3. 旧版平面表：无条件并入
//   4. 三个来源全空 → 班级不存在
//   5. 按星期分组、节次升序稳定排序，折叠进网格（槽位先到先得）

func (s *timetableService) ResolveWeeklyTimetable(ctx context.Context, className string) (dto.WeeklyGrid, error) {
	var occurrences []dto.CourseOccurrence

	// 1. 英文班来源
	englishRows, err := s.repo.English.ListByClass(ctx, className)
	if err != nil {
		s.logger.Error("查询英文班课表失败", zap.Error(err))
		return nil, fmt.Errorf("查询英文班课表失败: %w", err)
	}
	for _, row := range englishRows {
		period, timeRange := DecodePeriod(row.Period)
		occurrences = append(occurrences, dto.CourseOccurrence{
			Day:        row.Day,
			Period:     period,
			Time:       timeRange,
			Teacher:    row.Teacher,
			Classroom:  row.Classroom,
			CourseName: "English - " + row.ClassName,
			ClassType:  ClassTypeEnglish,
		})
	}

	// 2. homeroom 来源：英文班格式的名称不合并 homeroom 课表
	if ClassifyClassName(className) != ClassKindEnglish {
		homeroomRows, err := s.repo.Homeroom.ListByHomeroom(ctx, className)
		if err != nil {
			s.logger.Error("查询 homeroom 课表失败", zap.Error(err))
			return nil, fmt.Errorf("查询 homeroom 课表失败: %w", err)
		}
		for _, row := range homeroomRows {
			period, timeRange := DecodePeriod(row.Period)
			occurrences = append(occurrences, dto.CourseOccurrence{
				Day:        row.Day,
				Period:     period,
				Time:       timeRange,
				Teacher:    row.Teacher,
				Classroom:  row.Classroom,
				CourseName: row.CourseName,
				ClassType:  ClassTypeHomeroom,
			})
		}
	}

	// 3. 旧版平面表来源：无论名称格式一律并入
	legacyRows, err := s.repo.Timetable.ListByClass(ctx, className)
	if err != nil {
		s.logger.Error("查询旧版课表失败", zap.Error(err))
		return nil, fmt.Errorf("查询旧版课表失败: %w", err)
	}
	for _, row := range legacyRows {
		occurrences = append(occurrences, dto.CourseOccurrence{
			Day:        row.Day,
			Period:     row.PeriodNumber,
			Time:       row.TimeRange,
			Teacher:    row.Teacher,
			Classroom:  row.Classroom,
			CourseName: "Regular - " + row.ClassName,
			ClassType:  ClassTypeRegular,
		})
	}

	// 4. 三个来源全空即班级不存在（有资料但全落在非法定日仍视为存在）
	if len(occurrences) == 0 {
		return nil, ErrTimetableClassNotFound
	}

	return buildWeeklyGrid(occurrences), nil
}

// buildWeeklyGrid 把归一化课程折叠进五日网格。
// 同一天内按节次升序稳定排序；节次键已占用时后来者丢弃，
// 因此来源的追加顺序（english → homeroom → regular）即优先级。
// 非法定工作日的资料不进网格。
func buildWeeklyGrid(occurrences []dto.CourseOccurrence) dto.WeeklyGrid {
	byDay := make(map[string][]dto.CourseOccurrence)
	for _, occ := range occurrences {
		byDay[occ.Day] = append(byDay[occ.Day], occ)
	}

	grid := make(dto.WeeklyGrid, len(Weekdays))
	for _, day := range Weekdays {
		dayOccs := byDay[day]
		sort.SliceStable(dayOccs, func(i, j int) bool {
			return dayOccs[i].Period < dayOccs[j].Period
		})

		slots := make(map[string]dto.CourseOccurrence)
		for _, occ := range dayOccs {
			key := strconv.Itoa(occ.Period)
			if _, taken := slots[key]; !taken {
				slots[key] = occ
			}
		}
		grid[day] = slots
	}
	return grid
}

// ════════════════════════════════════════════════════════════
// GetDayCourses — 单日课表
// ════════════════════════════════════════════════════════════

func (s *timetableService) GetDayCourses(ctx context.Context, className, day string) ([]dto.DayCourse, error) {
	rows, err := s.repo.Timetable.ListByClassAndDay(ctx, className, day)
	if err != nil {
		s.logger.Error("查询单日课表失败", zap.Error(err))
		return nil, fmt.Errorf("查询单日课表失败: %w", err)
	}

	courses := make([]dto.DayCourse, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, dto.DayCourse{
			Period:    row.PeriodNumber,
			Time:      row.TimeRange,
			Teacher:   row.Teacher,
			Classroom: row.Classroom,
		})
	}
	return courses, nil
}

// ════════════════════════════════════════════════════════════
// SearchCourses — 条件搜寻
// ════════════════════════════════════════════════════════════

func (s *timetableService) SearchCourses(ctx context.Context, filters dto.SearchFilters) ([]model.TimetableEntry, error) {
	rows, err := s.repo.Timetable.Search(ctx, filters)
	if err != nil {
		s.logger.Error("课程搜寻失败", zap.Error(err))
		return nil, fmt.Errorf("课程搜寻失败: %w", err)
	}
	if rows == nil {
		rows = []model.TimetableEntry{}
	}
	return rows, nil
}

// ════════════════════════════════════════════════════════════
// 基础列表（班级 / 教师 / 教室 / 节次）
// ════════════════════════════════════════════════════════════

// classListCacheEntry 班级列表的缓存形状
type classListCacheEntry struct {
	Classes []string            `json:"classes"`
	Counts  dto.ClassListCounts `json:"counts"`
}

func (s *timetableService) ListClasses(ctx context.Context) ([]string, *dto.ClassListCounts, error) {
	var cached classListCacheEntry
	if s.cache.GetLookup(ctx, "classes", &cached) {
		return cached.Classes, &cached.Counts, nil
	}

	englishNames, err := s.repo.English.DistinctClassNames(ctx)
	if err != nil {
		s.logger.Error("查询英文班班级列表失败", zap.Error(err))
		return nil, nil, fmt.Errorf("查询班级列表失败: %w", err)
	}
	homeroomNames, err := s.repo.Homeroom.DistinctClassNames(ctx)
	if err != nil {
		s.logger.Error("查询 homeroom 班级列表失败", zap.Error(err))
		return nil, nil, fmt.Errorf("查询班级列表失败: %w", err)
	}

	seen := make(map[string]bool, len(englishNames)+len(homeroomNames))
	classes := make([]string, 0, len(englishNames)+len(homeroomNames))
	for _, name := range englishNames {
		if !seen[name] {
			seen[name] = true
			classes = append(classes, name)
		}
	}
	for _, name := range homeroomNames {
		if !seen[name] {
			seen[name] = true
			classes = append(classes, name)
		}
	}
	sort.Strings(classes)

	counts := dto.ClassListCounts{
		English:  len(englishNames),
		Homeroom: len(homeroomNames),
		Total:    len(classes),
	}

	s.cache.SetLookup(ctx, "classes", classListCacheEntry{Classes: classes, Counts: counts})
	return classes, &counts, nil
}

func (s *timetableService) ListTeachers(ctx context.Context) ([]string, error) {
	var names []string
	if s.cache.GetLookup(ctx, "teachers", &names) {
		return names, nil
	}

	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, fmt.Errorf("查询教师列表失败: %w", err)
	}
	names = make([]string, 0, len(teachers))
	for _, t := range teachers {
		names = append(names, t.TeacherName)
	}

	s.cache.SetLookup(ctx, "teachers", names)
	return names, nil
}

func (s *timetableService) SearchTeachers(ctx context.Context, q string) ([]string, error) {
	teachers, err := s.repo.Teacher.Search(ctx, q)
	if err != nil {
		s.logger.Error("教师搜寻失败", zap.Error(err))
		return nil, fmt.Errorf("教师搜寻失败: %w", err)
	}
	names := make([]string, 0, len(teachers))
	for _, t := range teachers {
		names = append(names, t.TeacherName)
	}
	return names, nil
}

func (s *timetableService) ListClassrooms(ctx context.Context) ([]string, error) {
	var names []string
	if s.cache.GetLookup(ctx, "classrooms", &names) {
		return names, nil
	}

	classrooms, err := s.repo.Classroom.List(ctx)
	if err != nil {
		s.logger.Error("查询教室列表失败", zap.Error(err))
		return nil, fmt.Errorf("查询教室列表失败: %w", err)
	}
	names = make([]string, 0, len(classrooms))
	for _, r := range classrooms {
		names = append(names, r.ClassroomName)
	}

	s.cache.SetLookup(ctx, "classrooms", names)
	return names, nil
}

func (s *timetableService) ListPeriods(ctx context.Context) ([]model.Period, error) {
	var periods []model.Period
	if s.cache.GetLookup(ctx, "periods", &periods) {
		return periods, nil
	}

	periods, err := s.repo.Period.List(ctx)
	if err != nil {
		s.logger.Error("查询节次列表失败", zap.Error(err))
		return nil, fmt.Errorf("查询节次列表失败: %w", err)
	}

	s.cache.SetLookup(ctx, "periods", periods)
	return periods, nil
}
