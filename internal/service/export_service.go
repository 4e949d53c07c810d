package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/geonook/kcislk-timetalle/internal/model"
	"github.com/geonook/kcislk-timetalle/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTimetables = errors.New("暂无课表资料可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ── ExportService 接口 ──────────────────────────────────
//
// 设计说明：
//   - Excel 导出覆盖旧版平面课表全量资料，按班级分 Sheet，
//     行为节次、列为周一至周五。
//   - ICS 导出把合并后的周课表渲染为每周重复的 VEVENT，
//     DTSTART 锚定在本周对应的工作日。
//   - 均以 bytes.Buffer 返回，由 Handler 层设置响应头后写出。
// ─────────────────────────────────────────────────────────────

// ExportService 导出业务接口
type ExportService interface {
	// ExportAllTimetables 全部旧版课表导出为 Excel
	ExportAllTimetables(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportClassICS 指定班级的合并周课表导出为 iCalendar
	ExportClassICS(ctx context.Context, className string) ([]byte, string, error)
}

type exportService struct {
	repo      *repository.Repository
	timetable TimetableService
	logger    *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, timetable TimetableService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, timetable: timetable, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ExportAllTimetables — 全部课表导出为 Excel
// ════════════════════════════════════════════════════════════
//
// 输出格式：
//   - 每个班级一个 Sheet
//   - 行头：节次 + 时间
//   - 列头：Monday ~ Friday
//   - 单元格：教师 (教室)

func (s *exportService) ExportAllTimetables(ctx context.Context) (*bytes.Buffer, string, error) {
	entries, err := s.repo.Timetable.ListAllOrdered(ctx)
	if err != nil {
		s.logger.Error("查询课表失败", zap.Error(err))
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportNoTimetables
	}

	// 按班级分组，记录出现顺序
	byClass := make(map[string][]model.TimetableEntry)
	var classOrder []string
	for _, e := range entries {
		if _, ok := byClass[e.ClassName]; !ok {
			classOrder = append(classOrder, e.ClassName)
		}
		byClass[e.ClassName] = append(byClass[e.ClassName], e)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for _, className := range classOrder {
		sheetName := sanitizeSheetName(className)
		idx, err := f.NewSheet(sheetName)
		if err != nil {
			continue
		}
		f.SetActiveSheet(idx)

		f.SetColWidth(sheetName, "A", "A", 8)
		f.SetColWidth(sheetName, "B", "B", 14)
		f.SetColWidth(sheetName, "C", "G", 22)

		// 表头
		f.SetCellValue(sheetName, "A1", "节次")
		f.SetCellValue(sheetName, "B1", "时间")
		for i, day := range Weekdays {
			col, _ := excelize.ColumnNumberToName(3 + i)
			f.SetCellValue(sheetName, col+"1", day)
		}
		f.SetCellStyle(sheetName, "A1", "G1", headerStyle)

		// 索引: period → (day → 单元格文本, 时间)
		type periodRow struct {
			timeRange string
			cells     map[string]string
		}
		rows := make(map[int]*periodRow)
		var periods []int
		for _, e := range byClass[className] {
			pr, ok := rows[e.PeriodNumber]
			if !ok {
				pr = &periodRow{timeRange: e.TimeRange, cells: make(map[string]string)}
				rows[e.PeriodNumber] = pr
				periods = append(periods, e.PeriodNumber)
			}
			// 同槽位重复行保留先到者
			if _, taken := pr.cells[e.Day]; !taken {
				pr.cells[e.Day] = fmt.Sprintf("%s (%s)", e.Teacher, e.Classroom)
			}
		}
		sort.Ints(periods)

		rowNum := 2
		for _, p := range periods {
			pr := rows[p]
			f.SetCellValue(sheetName, cell("A", rowNum), p)
			f.SetCellValue(sheetName, cell("B", rowNum), pr.timeRange)
			for i, day := range Weekdays {
				col, _ := excelize.ColumnNumberToName(3 + i)
				if text, ok := pr.cells[day]; ok {
					f.SetCellValue(sheetName, cell(col, rowNum), text)
				} else {
					f.SetCellValue(sheetName, cell(col, rowNum), "-")
				}
			}
			rowNum++
		}
	}

	f.DeleteSheet("Sheet1")

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("timetables_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ════════════════════════════════════════════════════════════
// ExportClassICS — 合并周课表导出为 iCalendar
// ════════════════════════════════════════════════════════════
//
// 每格课程生成一个 FREQ=WEEKLY 的 VEVENT，DTSTART 锚定在
// 本周对应工作日；时间段无法解析的课程（节次编码降级）跳过。

func (s *exportService) ExportClassICS(ctx context.Context, className string) ([]byte, string, error) {
	grid, err := s.timetable.ResolveWeeklyTimetable(ctx, className)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//KCISLK//Timetable//EN")

	now := time.Now()
	monday := startOfWeek(now)

	for dayIdx, day := range Weekdays {
		slots := grid[day]

		// 节次键排序保证输出稳定
		keys := make([]string, 0, len(slots))
		for k := range slots {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			occ := slots[key]
			start, end, ok := parseTimeRange(occ.Time)
			if !ok {
				continue
			}

			date := monday.AddDate(0, 0, dayIdx)
			dtStart := time.Date(date.Year(), date.Month(), date.Day(),
				start.Hour(), start.Minute(), 0, 0, time.Local)
			dtEnd := time.Date(date.Year(), date.Month(), date.Day(),
				end.Hour(), end.Minute(), 0, 0, time.Local)

			event := cal.AddEvent(uuid.NewString() + "@kcislk")
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetStartAt(dtStart)
			event.SetEndAt(dtEnd)
			event.SetSummary(occ.CourseName)
			event.SetLocation(occ.Classroom)
			event.SetDescription(fmt.Sprintf("Teacher: %s / Type: %s", occ.Teacher, occ.ClassType))
			event.AddRrule("FREQ=WEEKLY")
		}
	}

	filename := fmt.Sprintf("%s.ics", strings.ReplaceAll(className, " ", "_"))
	return []byte(cal.Serialize()), filename, nil
}

// ── 辅助函数 ──

// sanitizeSheetName Excel Sheet 名不允许部分符号且最长 31 字符
func sanitizeSheetName(name string) string {
	r := strings.NewReplacer(":", "-", "\\", "-", "/", "-", "?", "-", "*", "-", "[", "(", "]", ")")
	out := r.Replace(name)
	if len(out) > 31 {
		out = out[:31]
	}
	return out
}

// startOfWeek 返回该时刻所在周的周一（零点）
func startOfWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// parseTimeRange 解析 "H:MM-H:MM" 时间段
func parseTimeRange(raw string) (time.Time, time.Time, bool) {
	startStr, endStr, found := strings.Cut(raw, "-")
	if !found {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse("15:04", strings.TrimSpace(startStr))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("15:04", strings.TrimSpace(endStr))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
