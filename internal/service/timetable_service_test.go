package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/geonook/kcislk-timetalle/internal/dto"
	"github.com/geonook/kcislk-timetalle/internal/model"
)

// ════════════════════════════════════════════════════════════
// 周课表合并引擎测试
// ════════════════════════════════════════════════════════════

func setupTimetableService() (TimetableService, *testRepos) {
	agg, repos := newTestRepos()
	svc := NewTimetableService(agg, nil, zap.NewNop())
	return svc, repos
}

func TestResolveWeeklyTimetable_MergesThreeSources(t *testing.T) {
	svc, repos := setupTimetableService()
	ctx := context.Background()

	repos.english.entries = []model.EnglishTimetable{
		{Day: "Monday", Period: "(1)8:25-9:05", Teacher: "Emily", Classroom: "E101", ClassName: "101"},
	}
	repos.homeroom.entries = []model.HomeroomTimetable{
		{HomeRoomClassName: "101", Day: "Monday", Period: "(2)9:15-9:55", Teacher: "王老师", Classroom: "H101", CourseName: "数学"},
	}
	repos.timetable.entries = []model.TimetableEntry{
		{Day: "Monday", PeriodNumber: 3, TimeRange: "10:20-11:00", Teacher: "李老师", Classroom: "R101", ClassName: "101"},
	}

	grid, err := svc.ResolveWeeklyTimetable(ctx, "101")
	if err != nil {
		t.Fatalf("ResolveWeeklyTimetable 失败: %v", err)
	}

	monday := grid["Monday"]
	if len(monday) != 3 {
		t.Fatalf("Monday 期望 3 格课程, 实际 %d", len(monday))
	}

	if occ := monday["1"]; occ.ClassType != ClassTypeEnglish || occ.CourseName != "English - 101" {
		t.Errorf("节次 1 期望英文班来源, 实际 %+v", occ)
	}
	if occ := monday["2"]; occ.ClassType != ClassTypeHomeroom || occ.CourseName != "数学" {
		t.Errorf("节次 2 期望 homeroom 来源且标签为课程名, 实际 %+v", occ)
	}
	if occ := monday["3"]; occ.ClassType != ClassTypeRegular || occ.CourseName != "Regular - 101" {
		t.Errorf("节次 3 期望旧版来源, 实际 %+v", occ)
	}
}

func TestResolveWeeklyTimetable_EnglishNameSkipsHomeroom(t *testing.T) {
	svc, repos := setupTimetableService()
	ctx := context.Background()

	// homeroom 表里恰好存在同名记录——英文班格式的名称必须无视它
	repos.english.entries = []model.EnglishTimetable{
		{Day: "Monday", Period: "(1)8:25-9:05", Teacher: "Emily", Classroom: "E101", ClassName: "G1 Adventurers"},
	}
	repos.homeroom.entries = []model.HomeroomTimetable{
		{HomeRoomClassName: "G1 Adventurers", Day: "Tuesday", Period: "(2)9:15-9:55", Teacher: "王老师", Classroom: "H101", CourseName: "数学"},
	}

	grid, err := svc.ResolveWeeklyTimetable(ctx, "G1 Adventurers")
	if err != nil {
		t.Fatalf("ResolveWeeklyTimetable 失败: %v", err)
	}

	for day, slots := range grid {
		for _, occ := range slots {
			if occ.ClassType == ClassTypeHomeroom {
				t.Errorf("%s 出现 homeroom 课程 %+v, 英文班格式不应合并 homeroom", day, occ)
			}
		}
	}
	if len(grid["Tuesday"]) != 0 {
		t.Errorf("Tuesday 期望空, 实际 %d 格", len(grid["Tuesday"]))
	}
}

func TestResolveWeeklyTimetable_LegacyAlwaysIncluded(t *testing.T) {
	svc, repos := setupTimetableService()
	ctx := context.Background()

	// 旧版平面表不受名称格式影响，英文班格式也要并入
	repos.english.entries = []model.EnglishTimetable{
		{Day: "Monday", Period: "(1)8:25-9:05", Teacher: "Emily", Classroom: "E101", ClassName: "G1 Adventurers"},
	}
	repos.timetable.entries = []model.TimetableEntry{
		{Day: "Monday", PeriodNumber: 2, TimeRange: "9:15-9:55", Teacher: "李老师", Classroom: "R101", ClassName: "G1 Adventurers"},
	}

	grid, err := svc.ResolveWeeklyTimetable(ctx, "G1 Adventurers")
	if err != nil {
		t.Fatalf("ResolveWeeklyTimetable 失败: %v", err)
	}
	if occ := grid["Monday"]["2"]; occ.ClassType != ClassTypeRegular {
		t.Errorf("节次 2 期望旧版来源, 实际 %+v", occ)
	}
}

func TestResolveWeeklyTimetable_CollisionEnglishWins(t *testing.T) {
	svc, repos := setupTimetableService()
	ctx := context.Background()

	// 英文班与旧版都落在 (Monday, 3)
	repos.english.entries = []model.EnglishTimetable{
		{Day: "Monday", Period: "(3)10:20-11:00", Teacher: "Emily", Classroom: "E101", ClassName: "G1 Adventurers"},
	}
	repos.timetable.entries = []model.TimetableEntry{
		{Day: "Monday", PeriodNumber: 3, TimeRange: "10:20-11:00", Teacher: "李老师", Classroom: "R101", ClassName: "G1 Adventurers"},
	}

	grid, err := svc.ResolveWeeklyTimetable(ctx, "G1 Adventurers")
	if err != nil {
		t.Fatalf("ResolveWeeklyTimetable 失败: %v", err)
	}

	occ := grid["Monday"]["3"]
	if occ.ClassType != ClassTypeEnglish {
		t.Errorf("槽位冲突时英文班优先, 实际来源 %s", occ.ClassType)
	}
	if len(grid["Monday"]) != 1 {
		t.Errorf("Monday 期望 1 格, 实际 %d", len(grid["Monday"]))
	}
}

func TestResolveWeeklyTimetable_CollisionHomeroomBeatsLegacy(t *testing.T) {
	svc, repos := setupTimetableService()
	ctx := context.Background()

	repos.homeroom.entries = []model.HomeroomTimetable{
		{HomeRoomClassName: "101", Day: "Friday", Period: "(4)11:10-11:50", Teacher: "王老师", Classroom: "H101", CourseName: "自然"},
	}
	repos.timetable.entries = []model.TimetableEntry{
		{Day: "Friday", PeriodNumber: 4, TimeRange: "11:10-11:50", Teacher: "李老师", Classroom: "R101", ClassName: "101"},
	}

	grid, err := svc.ResolveWeeklyTimetable(ctx, "101")
	if err != nil {
		t.Fatalf("ResolveWeeklyTimetable 失败: %v", err)
	}
	if occ := grid["Friday"]["4"]; occ.ClassType != ClassTypeHomeroom {
		t.Errorf("homeroom 应优先于旧版, 实际来源 %s", occ.ClassType)
	}
}

func TestResolveWeeklyTimetable_NotFound(t *testing.T) {
	svc, _ := setupTimetableService()

	_, err := svc.ResolveWeeklyTimetable(context.Background(), "Nonexistent Class")
	if !errors.Is(err, ErrTimetableClassNotFound) {
		t.Fatalf("期望 ErrTimetableClassNotFound, 实际 %v", err)
	}
}

func TestResolveWeeklyTimetable_Idempotent(t *testing.T) {
	svc, repos := setupTimetableService()
	ctx := context.Background()

	repos.english.entries = []model.EnglishTimetable{
		{Day: "Monday", Period: "(1)8:25-9:05", Teacher: "Emily", Classroom: "E101", ClassName: "G1 Adventurers"},
		{Day: "Wednesday", Period: "(5)13:10-13:50", Teacher: "Emily", Classroom: "E101", ClassName: "G1 Adventurers"},
	}
	repos.timetable.entries = []model.TimetableEntry{
		{Day: "Monday", PeriodNumber: 2, TimeRange: "9:15-9:55", Teacher: "李老师", Classroom: "R101", ClassName: "G1 Adventurers"},
	}

	first, err := svc.ResolveWeeklyTimetable(ctx, "G1 Adventurers")
	if err != nil {
		t.Fatalf("第一次调用失败: %v", err)
	}
	second, err := svc.ResolveWeeklyTimetable(ctx, "G1 Adventurers")
	if err != nil {
		t.Fatalf("第二次调用失败: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("资料未变时两次结果应一致:\n第一次 %+v\n第二次 %+v", first, second)
	}
}

func TestResolveWeeklyTimetable_FiveDayKeysAlwaysPresent(t *testing.T) {
	svc, repos := setupTimetableService()
	ctx := context.Background()

	// 只有周三有课
	repos.english.entries = []model.EnglishTimetable{
		{Day: "Wednesday", Period: "(3)10:20-11:00", Teacher: "Emily", Classroom: "E101", ClassName: "G1 Adventurers"},
	}

	grid, err := svc.ResolveWeeklyTimetable(ctx, "G1 Adventurers")
	if err != nil {
		t.Fatalf("ResolveWeeklyTimetable 失败: %v", err)
	}
	if len(grid) != 5 {
		t.Fatalf("网格期望恰好 5 个键, 实际 %d", len(grid))
	}
	for _, day := range Weekdays {
		if _, ok := grid[day]; !ok {
			t.Errorf("缺少 %s 键", day)
		}
	}
	if len(grid["Monday"]) != 0 {
		t.Errorf("Monday 期望空映射, 实际 %d 格", len(grid["Monday"]))
	}
}

func TestResolveWeeklyTimetable_NonCanonicalDayDefeatsNotFound(t *testing.T) {
	svc, repos := setupTimetableService()
	ctx := context.Background()

	// 仅有周六的资料：不进五日网格，但班级视为存在
	repos.english.entries = []model.EnglishTimetable{
		{Day: "Saturday", Period: "(1)8:25-9:05", Teacher: "Emily", Classroom: "E101", ClassName: "G1 Adventurers"},
	}

	grid, err := svc.ResolveWeeklyTimetable(ctx, "G1 Adventurers")
	if err != nil {
		t.Fatalf("有资料（即使在非法定日）不应返回 not-found: %v", err)
	}
	if len(grid) != 5 {
		t.Fatalf("网格期望恰好 5 个键, 实际 %d", len(grid))
	}
	for day, slots := range grid {
		if len(slots) != 0 {
			t.Errorf("%s 期望空, 周六资料不应进网格", day)
		}
	}
}

func TestResolveWeeklyTimetable_MalformedPeriodSoftFail(t *testing.T) {
	svc, repos := setupTimetableService()
	ctx := context.Background()

	repos.english.entries = []model.EnglishTimetable{
		{Day: "Monday", Period: "8:25-9:05", Teacher: "Emily", Classroom: "E101", ClassName: "G1 Adventurers"},
		{Day: "Monday", Period: "(2)9:15-9:55", Teacher: "Emily", Classroom: "E101", ClassName: "G1 Adventurers"},
	}

	grid, err := svc.ResolveWeeklyTimetable(ctx, "G1 Adventurers")
	if err != nil {
		t.Fatalf("编码残缺不应导致失败: %v", err)
	}

	occ, ok := grid["Monday"]["0"]
	if !ok {
		t.Fatal("无法解析的节次应落在键 \"0\"")
	}
	if occ.Time != "8:25-9:05" {
		t.Errorf("降级后时间段应为原始字符串, 实际 %q", occ.Time)
	}
	if _, ok := grid["Monday"]["2"]; !ok {
		t.Error("正常编码的节次 2 应照常出现")
	}
}

func TestResolveWeeklyTimetable_ExactMatchOnly(t *testing.T) {
	svc, repos := setupTimetableService()
	ctx := context.Background()

	// 名称精确匹配，不做子串匹配
	repos.english.entries = []model.EnglishTimetable{
		{Day: "Monday", Period: "(1)8:25-9:05", Teacher: "Emily", Classroom: "E101", ClassName: "G1 Adventurers"},
	}

	_, err := svc.ResolveWeeklyTimetable(ctx, "G1 Adventurer")
	if !errors.Is(err, ErrTimetableClassNotFound) {
		t.Fatalf("部分匹配的名称应为 not-found, 实际 %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// 搜寻与单日课表测试
// ════════════════════════════════════════════════════════════

func TestSearchCourses_FiltersAndEmptyResult(t *testing.T) {
	svc, repos := setupTimetableService()
	ctx := context.Background()

	repos.timetable.entries = []model.TimetableEntry{
		{Day: "Monday", PeriodNumber: 1, TimeRange: "8:25-9:05", Teacher: "Emily Chen", Classroom: "R101", ClassName: "101"},
		{Day: "Tuesday", PeriodNumber: 2, TimeRange: "9:15-9:55", Teacher: "David Wang", Classroom: "R102", ClassName: "102"},
	}

	// 大小写不敏感子串匹配
	results, err := svc.SearchCourses(ctx, dto.SearchFilters{Teacher: "emily"})
	if err != nil {
		t.Fatalf("SearchCourses 失败: %v", err)
	}
	if len(results) != 1 || results[0].Teacher != "Emily Chen" {
		t.Errorf("teacher=emily 期望命中 Emily Chen, 实际 %+v", results)
	}

	// 多条件 AND
	results, err = svc.SearchCourses(ctx, dto.SearchFilters{Teacher: "emily", Day: "tuesday"})
	if err != nil {
		t.Fatalf("SearchCourses 失败: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("AND 条件下期望 0 笔, 实际 %d", len(results))
	}

	// 空结果是正常返回，不是错误
	results, err = svc.SearchCourses(ctx, dto.SearchFilters{Teacher: "Nobody"})
	if err != nil {
		t.Fatalf("空结果不应报错: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("期望空切片, 实际 %v", results)
	}
}

func TestGetDayCourses_EmptyIsNotError(t *testing.T) {
	svc, _ := setupTimetableService()

	courses, err := svc.GetDayCourses(context.Background(), "101", "Monday")
	if err != nil {
		t.Fatalf("无资料的单日课表不应报错: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("期望空列表, 实际 %d 笔", len(courses))
	}
}

// ════════════════════════════════════════════════════════════
// 基础列表测试
// ════════════════════════════════════════════════════════════

func TestListClasses_UnionAndCounts(t *testing.T) {
	svc, repos := setupTimetableService()
	ctx := context.Background()

	repos.english.entries = []model.EnglishTimetable{
		{Day: "Monday", Period: "(1)8:25-9:05", ClassName: "G1 Adventurers"},
		{Day: "Tuesday", Period: "(2)9:15-9:55", ClassName: "G1 Adventurers"},
		{Day: "Monday", Period: "(1)8:25-9:05", ClassName: "G2 Visionaries"},
	}
	repos.homeroom.entries = []model.HomeroomTimetable{
		{HomeRoomClassName: "101", Day: "Monday", Period: "(1)8:25-9:05"},
		{HomeRoomClassName: "102", Day: "Monday", Period: "(1)8:25-9:05"},
	}

	classes, counts, err := svc.ListClasses(ctx)
	if err != nil {
		t.Fatalf("ListClasses 失败: %v", err)
	}
	if len(classes) != 4 {
		t.Errorf("班级总数期望 4, 实际 %d: %v", len(classes), classes)
	}
	if counts.English != 2 || counts.Homeroom != 2 || counts.Total != 4 {
		t.Errorf("计数期望 english=2 homeroom=2 total=4, 实际 %+v", counts)
	}
}
