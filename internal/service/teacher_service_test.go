package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/geonook/kcislk-timetalle/internal/model"
)

// ════════════════════════════════════════════════════════════
// 教师视角课表测试
// ════════════════════════════════════════════════════════════

func setupTeacherService() (TeacherService, *testRepos) {
	agg, repos := newTestRepos()
	svc := NewTeacherService(agg, zap.NewNop())
	return svc, repos
}

func TestGetTeacherTimetable_MergesBothSources(t *testing.T) {
	svc, repos := setupTeacherService()
	ctx := context.Background()

	repos.english.entries = []model.EnglishTimetable{
		{Day: "Monday", Period: "(1)8:25-9:05", Teacher: "Emily", Classroom: "E101", ClassName: "G1 Adventurers"},
		{Day: "Monday", Period: "(3)10:20-11:00", Teacher: "Emily", Classroom: "E102", ClassName: "G2 Visionaries"},
	}
	repos.homeroom.entries = []model.HomeroomTimetable{
		{HomeRoomClassName: "101", Day: "Tuesday", Period: "(2)9:15-9:55", Teacher: "Emily", Classroom: "H101", CourseName: "导师时间"},
		// 其他教师的课不得混入
		{HomeRoomClassName: "102", Day: "Tuesday", Period: "(3)10:20-11:00", Teacher: "David", Classroom: "H102", CourseName: "数学"},
	}

	grid, stats, err := svc.GetTeacherTimetable(ctx, "Emily")
	if err != nil {
		t.Fatalf("GetTeacherTimetable 失败: %v", err)
	}

	if occ := grid["Monday"]["1"]; occ.Subject != "English - G1 Adventurers" || occ.ClassName != "G1 Adventurers" {
		t.Errorf("Monday 节次 1 期望英文班课程, 实际 %+v", occ)
	}
	if occ := grid["Tuesday"]["2"]; occ.Subject != "导师时间" || occ.ClassName != "101" {
		t.Errorf("Tuesday 节次 2 期望 homeroom 课程, 实际 %+v", occ)
	}
	if _, ok := grid["Tuesday"]["3"]; ok {
		t.Error("其他教师的课不应出现在网格中")
	}

	if stats.TotalClasses != 3 {
		t.Errorf("TotalClasses 期望 3, 实际 %d", stats.TotalClasses)
	}
	if stats.EnglishClasses != 2 || stats.HomeroomClasses != 1 {
		t.Errorf("分项计数期望 english=2 homeroom=1, 实际 %d/%d", stats.EnglishClasses, stats.HomeroomClasses)
	}
	if stats.UniqueClasses != 3 {
		t.Errorf("UniqueClasses 期望 3, 实际 %d", stats.UniqueClasses)
	}
	if stats.DaysWithClasses != 2 {
		t.Errorf("DaysWithClasses 期望 2, 实际 %d", stats.DaysWithClasses)
	}
}

func TestGetTeacherTimetable_DecodesEncodedPeriods(t *testing.T) {
	svc, repos := setupTeacherService()
	ctx := context.Background()

	repos.english.entries = []model.EnglishTimetable{
		{Day: "Friday", Period: "(10)15:30-16:10", Teacher: "Emily", Classroom: "E101", ClassName: "G1 Adventurers"},
	}

	grid, _, err := svc.GetTeacherTimetable(ctx, "Emily")
	if err != nil {
		t.Fatalf("GetTeacherTimetable 失败: %v", err)
	}
	occ, ok := grid["Friday"]["10"]
	if !ok {
		t.Fatal("双位数节次应落在键 \"10\"")
	}
	if occ.Period != 10 || occ.Time != "15:30-16:10" {
		t.Errorf("解码结果期望 (10, 15:30-16:10), 实际 (%d, %s)", occ.Period, occ.Time)
	}
}

func TestGetTeacherTimetable_NotFound(t *testing.T) {
	svc, _ := setupTeacherService()

	_, _, err := svc.GetTeacherTimetable(context.Background(), "Nobody")
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Fatalf("两个来源均无资料时期望 ErrTeacherNotFound, 实际 %v", err)
	}
}
