package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/geonook/kcislk-timetalle/internal/dto"
	"github.com/geonook/kcislk-timetalle/internal/model"
	"github.com/geonook/kcislk-timetalle/internal/repository"
)

// ── 学生模块业务错误 ──

var (
	ErrStudentNotFound = errors.New("找不到该学生")
)

// searchResultLimit 学生搜寻最多返回笔数
const searchResultLimit = 20

// ── StudentService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 学生课表按课表类型拆成三张独立网格（英文班 / homeroom /
//     EV & myReading），不做跨类型合并——前端按类型分页展示。
//   - 英文班与 EV & myReading 的来源都是 english_timetable，
//     只是键入的班级名不同（学生名册上的两个栏位）。
// ─────────────────────────────────────────────────────────────

// StudentService 学生模块业务接口
type StudentService interface {
	// GetStudent 按学号取得学生基本资料
	GetStudent(ctx context.Context, studentID string) (*model.Student, error)
	// SearchStudents 以学号或姓名子串搜寻
	SearchStudents(ctx context.Context, q string) ([]model.Student, error)
	// ListStudents 全部学生
	ListStudents(ctx context.Context) ([]model.Student, error)
	// GetStudentTimetables 学生视角的分类型周课表与统计
	GetStudentTimetables(ctx context.Context, studentID string) (*model.Student, *dto.ScopedTimetables, *dto.ScopedStatistics, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) GetStudent(ctx context.Context, studentID string) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, fmt.Errorf("查询学生失败: %w", err)
	}
	return student, nil
}

func (s *studentService) SearchStudents(ctx context.Context, q string) ([]model.Student, error) {
	students, err := s.repo.Student.Search(ctx, q, searchResultLimit)
	if err != nil {
		s.logger.Error("学生搜寻失败", zap.Error(err))
		return nil, fmt.Errorf("学生搜寻失败: %w", err)
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

func (s *studentService) ListStudents(ctx context.Context) ([]model.Student, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("查询学生列表失败", zap.Error(err))
		return nil, fmt.Errorf("查询学生列表失败: %w", err)
	}
	return students, nil
}

// ════════════════════════════════════════════════════════════
// GetStudentTimetables — 学生视角分类型课表
// ════════════════════════════════════════════════════════════

func (s *studentService) GetStudentTimetables(ctx context.Context, studentID string) (*model.Student, *dto.ScopedTimetables, *dto.ScopedStatistics, error) {
	student, err := s.GetStudent(ctx, studentID)
	if err != nil {
		return nil, nil, nil, err
	}

	// 英文班
	englishRows, err := s.repo.English.ListByClass(ctx, student.EnglishClassName)
	if err != nil {
		s.logger.Error("查询英文班课表失败", zap.Error(err))
		return nil, nil, nil, fmt.Errorf("查询英文班课表失败: %w", err)
	}
	englishGrid, englishCount := englishRowsToGrid(englishRows)

	// homeroom
	homeroomRows, err := s.repo.Homeroom.ListByHomeroom(ctx, student.HomeRoomClassName)
	if err != nil {
		s.logger.Error("查询 homeroom 课表失败", zap.Error(err))
		return nil, nil, nil, fmt.Errorf("查询 homeroom 课表失败: %w", err)
	}
	homeroomGrid, homeroomCount := homeroomRowsToGrid(homeroomRows)

	// EV & myReading（同样存放在英文班课表里，栏位可为空）
	var evRows []model.EnglishTimetable
	if student.EvMyReadingClassName != nil && *student.EvMyReadingClassName != "" {
		evRows, err = s.repo.English.ListByClass(ctx, *student.EvMyReadingClassName)
		if err != nil {
			s.logger.Error("查询 EV & myReading 课表失败", zap.Error(err))
			return nil, nil, nil, fmt.Errorf("查询 EV & myReading 课表失败: %w", err)
		}
	}
	evGrid, evCount := englishRowsToGrid(evRows)

	timetables := &dto.ScopedTimetables{
		English:     englishGrid,
		Homeroom:    homeroomGrid,
		EvMyReading: evGrid,
	}
	stats := &dto.ScopedStatistics{
		TotalClasses:       englishCount + homeroomCount + evCount,
		DaysWithClasses:    countDaysWithClasses(englishGrid, homeroomGrid, evGrid),
		EnglishClasses:     englishCount,
		EvMyReadingClasses: evCount,
		HomeroomClasses:    homeroomCount,
	}
	return student, timetables, stats, nil
}

// ── 网格构建辅助 ──

// newTypedGrid 建立五个法定工作日键齐备的空网格
func newTypedGrid() dto.TypedGrid {
	grid := make(dto.TypedGrid, len(Weekdays))
	for _, day := range Weekdays {
		grid[day] = make(map[string]dto.ScopedCourse)
	}
	return grid
}

func englishRowsToGrid(rows []model.EnglishTimetable) (dto.TypedGrid, int) {
	grid := newTypedGrid()
	count := 0
	for _, row := range sortEnglishRows(rows) {
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
			Subject:   row.ClassName,
			Teacher:   row.Teacher,
			Classroom: row.Classroom,
			Period:    period,
			Time:      timeRange,
		}
		count++
	}
	return grid, count
}

func homeroomRowsToGrid(rows []model.HomeroomTimetable) (dto.TypedGrid, int) {
	grid := newTypedGrid()
	count := 0
	for _, row := range sortHomeroomRows(rows) {
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
			Period:    period,
			Time:      timeRange,
		}
		count++
	}
	return grid, count
}

func sortEnglishRows(rows []model.EnglishTimetable) []model.EnglishTimetable {
	out := make([]model.EnglishTimetable, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		pi, _ := DecodePeriod(out[i].Period)
		pj, _ := DecodePeriod(out[j].Period)
		return pi < pj
	})
	return out
}

func sortHomeroomRows(rows []model.HomeroomTimetable) []model.HomeroomTimetable {
	out := make([]model.HomeroomTimetable, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		pi, _ := DecodePeriod(out[i].Period)
		pj, _ := DecodePeriod(out[j].Period)
		return pi < pj
	})
	return out
}

// countDaysWithClasses 统计至少有一格课程的工作日数（跨网格并集）
func countDaysWithClasses(grids ...dto.TypedGrid) int {
	days := 0
	for _, day := range Weekdays {
		for _, grid := range grids {
			if len(grid[day]) > 0 {
				days++
				break
			}
		}
	}
	return days
}
