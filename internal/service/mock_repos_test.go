package service

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/geonook/kcislk-timetalle/internal/dto"
	"github.com/geonook/kcislk-timetalle/internal/model"
	"github.com/geonook/kcislk-timetalle/internal/repository"
)

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	entries []model.TimetableEntry
	failAll bool
	err     error
}

func newMockTimetableRepo() *mockTimetableRepo {
	return &mockTimetableRepo{}
}

func (m *mockTimetableRepo) ListByClass(_ context.Context, className string) ([]model.TimetableEntry, error) {
	if m.failAll {
		return nil, m.err
	}
	var result []model.TimetableEntry
	for _, e := range m.entries {
		if e.ClassName == className {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockTimetableRepo) ListByClassAndDay(_ context.Context, className, day string) ([]model.TimetableEntry, error) {
	if m.failAll {
		return nil, m.err
	}
	var result []model.TimetableEntry
	for _, e := range m.entries {
		if e.ClassName == className && e.Day == day {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PeriodNumber < result[j].PeriodNumber
	})
	return result, nil
}

func (m *mockTimetableRepo) Search(_ context.Context, filters dto.SearchFilters) ([]model.TimetableEntry, error) {
	if m.failAll {
		return nil, m.err
	}
	contains := func(haystack, needle string) bool {
		return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}
	var result []model.TimetableEntry
	for _, e := range m.entries {
		if contains(e.ClassName, filters.ClassName) &&
			contains(e.Teacher, filters.Teacher) &&
			contains(e.Classroom, filters.Classroom) &&
			contains(e.Day, filters.Day) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockTimetableRepo) ListAllOrdered(_ context.Context) ([]model.TimetableEntry, error) {
	if m.failAll {
		return nil, m.err
	}
	dayRank := map[string]int{"Monday": 1, "Tuesday": 2, "Wednesday": 3, "Thursday": 4, "Friday": 5}
	result := make([]model.TimetableEntry, len(m.entries))
	copy(result, m.entries)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].ClassName != result[j].ClassName {
			return result[i].ClassName < result[j].ClassName
		}
		ri, rj := dayRank[result[i].Day], dayRank[result[j].Day]
		if ri == 0 {
			ri = 6
		}
		if rj == 0 {
			rj = 6
		}
		if ri != rj {
			return ri < rj
		}
		return result[i].PeriodNumber < result[j].PeriodNumber
	})
	return result, nil
}

// ── Mock EnglishTimetableRepository ──

type mockEnglishRepo struct {
	entries []model.EnglishTimetable
}

func newMockEnglishRepo() *mockEnglishRepo {
	return &mockEnglishRepo{}
}

func (m *mockEnglishRepo) ListByClass(_ context.Context, className string) ([]model.EnglishTimetable, error) {
	var result []model.EnglishTimetable
	for _, e := range m.entries {
		if e.ClassName == className {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEnglishRepo) ListByTeacher(_ context.Context, teacher string) ([]model.EnglishTimetable, error) {
	var result []model.EnglishTimetable
	for _, e := range m.entries {
		if e.Teacher == teacher {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEnglishRepo) DistinctClassNames(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, e := range m.entries {
		if !seen[e.ClassName] {
			seen[e.ClassName] = true
			names = append(names, e.ClassName)
		}
	}
	sort.Strings(names)
	return names, nil
}

// ── Mock HomeroomTimetableRepository ──

type mockHomeroomRepo struct {
	entries []model.HomeroomTimetable
}

func newMockHomeroomRepo() *mockHomeroomRepo {
	return &mockHomeroomRepo{}
}

func (m *mockHomeroomRepo) ListByHomeroom(_ context.Context, homeroomName string) ([]model.HomeroomTimetable, error) {
	var result []model.HomeroomTimetable
	for _, e := range m.entries {
		if e.HomeRoomClassName == homeroomName {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockHomeroomRepo) ListByTeacher(_ context.Context, teacher string) ([]model.HomeroomTimetable, error) {
	var result []model.HomeroomTimetable
	for _, e := range m.entries {
		if e.Teacher == teacher {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockHomeroomRepo) DistinctClassNames(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, e := range m.entries {
		if !seen[e.HomeRoomClassName] {
			seen[e.HomeRoomClassName] = true
			names = append(names, e.HomeRoomClassName)
		}
	}
	sort.Strings(names)
	return names, nil
}

// ── Mock 基础资料 Repository ──

type mockClassInfoRepo struct {
	classes []model.ClassInfo
}

func newMockClassInfoRepo() *mockClassInfoRepo {
	return &mockClassInfoRepo{}
}

func (m *mockClassInfoRepo) List(_ context.Context) ([]model.ClassInfo, error) {
	return m.classes, nil
}

func (m *mockClassInfoRepo) GetByName(_ context.Context, className string) (*model.ClassInfo, error) {
	for i := range m.classes {
		if m.classes[i].ClassName == className {
			return &m.classes[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type mockTeacherRepo struct {
	teachers []model.Teacher
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{}
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	return m.teachers, nil
}

func (m *mockTeacherRepo) GetByName(_ context.Context, name string) (*model.Teacher, error) {
	for i := range m.teachers {
		if m.teachers[i].TeacherName == name {
			return &m.teachers[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) Search(_ context.Context, q string) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		if strings.Contains(strings.ToLower(t.TeacherName), strings.ToLower(q)) {
			result = append(result, t)
		}
	}
	return result, nil
}

type mockClassroomRepo struct {
	classrooms []model.Classroom
}

func newMockClassroomRepo() *mockClassroomRepo {
	return &mockClassroomRepo{}
}

func (m *mockClassroomRepo) List(_ context.Context) ([]model.Classroom, error) {
	return m.classrooms, nil
}

type mockPeriodRepo struct {
	periods []model.Period
}

func newMockPeriodRepo() *mockPeriodRepo {
	return &mockPeriodRepo{}
}

func (m *mockPeriodRepo) List(_ context.Context) ([]model.Period, error) {
	return m.periods, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) GetByID(_ context.Context, studentID string) (*model.Student, error) {
	if s, ok := m.students[studentID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Search(_ context.Context, q string, limit int) ([]model.Student, error) {
	var result []model.Student
	lq := strings.ToLower(q)
	var ids []string
	for id := range m.students {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s := m.students[id]
		if strings.Contains(strings.ToLower(s.StudentID), lq) ||
			strings.Contains(strings.ToLower(s.StudentName), lq) {
			result = append(result, *s)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	var ids []string
	for id := range m.students {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]model.Student, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.students[id])
	}
	return result, nil
}

// ── Mock 监考子系统 Repository ──

type mockExamSessionRepo struct {
	sessions []model.ExamSession
}

func newMockExamSessionRepo() *mockExamSessionRepo {
	return &mockExamSessionRepo{}
}

func (m *mockExamSessionRepo) List(_ context.Context) ([]model.ExamSession, error) {
	return m.sessions, nil
}

func (m *mockExamSessionRepo) GetByID(_ context.Context, id int) (*model.ExamSession, error) {
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			return &m.sessions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExamSessionRepo) GetByGradeBand(_ context.Context, gradeBand string) (*model.ExamSession, error) {
	for i := range m.sessions {
		if m.sessions[i].GradeBand == gradeBand {
			return &m.sessions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExamSessionRepo) ListByDate(_ context.Context, date string) ([]model.ExamSession, error) {
	var result []model.ExamSession
	for _, s := range m.sessions {
		if s.ExamDate == date {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockExamSessionRepo) DistinctDates(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var dates []string
	for _, s := range m.sessions {
		if !seen[s.ExamDate] {
			seen[s.ExamDate] = true
			dates = append(dates, s.ExamDate)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

type mockClassExamInfoRepo struct {
	infos    []model.ClassExamInfo
	sessions *mockExamSessionRepo
	proctors *mockProctorRepo
}

func newMockClassExamInfoRepo(sessions *mockExamSessionRepo, proctors *mockProctorRepo) *mockClassExamInfoRepo {
	return &mockClassExamInfoRepo{sessions: sessions, proctors: proctors}
}

// attach 模拟 Preload：挂上场次与监考分配
func (m *mockClassExamInfoRepo) attach(info model.ClassExamInfo) model.ClassExamInfo {
	for i := range m.sessions.sessions {
		if m.sessions.sessions[i].ID == info.ExamSessionID {
			m.sessions.sessions[i].ClassExamInfos = nil
			info.ExamSession = &m.sessions.sessions[i]
			break
		}
	}
	info.ProctorAssignment = nil
	for i := range m.proctors.assignments {
		if m.proctors.assignments[i].ClassExamInfoID == info.ID {
			info.ProctorAssignment = &m.proctors.assignments[i]
			break
		}
	}
	return info
}

func (m *mockClassExamInfoRepo) List(_ context.Context) ([]model.ClassExamInfo, error) {
	result := make([]model.ClassExamInfo, 0, len(m.infos))
	for _, info := range m.infos {
		result = append(result, m.attach(info))
	}
	return result, nil
}

func (m *mockClassExamInfoRepo) ListBySession(_ context.Context, sessionID int) ([]model.ClassExamInfo, error) {
	var result []model.ClassExamInfo
	for _, info := range m.infos {
		if info.ExamSessionID == sessionID {
			result = append(result, m.attach(info))
		}
	}
	return result, nil
}

func (m *mockClassExamInfoRepo) GetByID(_ context.Context, id int) (*model.ClassExamInfo, error) {
	for _, info := range m.infos {
		if info.ID == id {
			attached := m.attach(info)
			return &attached, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassExamInfoRepo) GetByClassName(_ context.Context, className string) (*model.ClassExamInfo, error) {
	for _, info := range m.infos {
		if info.ClassName == className {
			attached := m.attach(info)
			return &attached, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassExamInfoRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.infos)), nil
}

func (m *mockClassExamInfoRepo) CountAssigned(_ context.Context) (int64, error) {
	var count int64
	for _, info := range m.infos {
		for _, pa := range m.proctors.assignments {
			if pa.ClassExamInfoID == info.ID {
				count++
				break
			}
		}
	}
	return count, nil
}

type mockProctorRepo struct {
	assignments []model.ProctorAssignment
	nextID      int
}

func newMockProctorRepo() *mockProctorRepo {
	return &mockProctorRepo{nextID: 1}
}

func (m *mockProctorRepo) List(_ context.Context) ([]model.ProctorAssignment, error) {
	return m.assignments, nil
}

func (m *mockProctorRepo) GetByID(_ context.Context, id int) (*model.ProctorAssignment, error) {
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			cp := m.assignments[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProctorRepo) GetByClassExamInfoID(_ context.Context, classExamInfoID int) (*model.ProctorAssignment, error) {
	for i := range m.assignments {
		if m.assignments[i].ClassExamInfoID == classExamInfoID {
			cp := m.assignments[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProctorRepo) Create(_ context.Context, assignment *model.ProctorAssignment) error {
	assignment.ID = m.nextID
	m.nextID++
	m.assignments = append(m.assignments, *assignment)
	return nil
}

func (m *mockProctorRepo) Update(_ context.Context, assignment *model.ProctorAssignment) error {
	for i := range m.assignments {
		if m.assignments[i].ID == assignment.ID {
			m.assignments[i] = *assignment
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockProctorRepo) Delete(_ context.Context, id int) error {
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			m.assignments = append(m.assignments[:i], m.assignments[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	timetable *mockTimetableRepo
	english   *mockEnglishRepo
	homeroom  *mockHomeroomRepo
	teachers  *mockTeacherRepo
}

func newMockAdminRepo(tt *mockTimetableRepo, en *mockEnglishRepo, hr *mockHomeroomRepo, tc *mockTeacherRepo) *mockAdminRepo {
	return &mockAdminRepo{timetable: tt, english: en, homeroom: hr, teachers: tc}
}

func (m *mockAdminRepo) MergeTeacher(_ context.Context, from, to string) (*dto.MergeTeacherDetails, error) {
	details := &dto.MergeTeacherDetails{}
	for i := range m.timetable.entries {
		if m.timetable.entries[i].Teacher == from {
			m.timetable.entries[i].Teacher = to
			details.TimetableUpdated++
		}
	}
	for i := range m.english.entries {
		if m.english.entries[i].Teacher == from {
			m.english.entries[i].Teacher = to
			details.EnglishTimetableUpdated++
		}
	}
	for i := range m.homeroom.entries {
		if m.homeroom.entries[i].Teacher == from {
			m.homeroom.entries[i].Teacher = to
			details.HomeroomUpdated++
		}
	}
	for i := range m.teachers.teachers {
		if m.teachers.teachers[i].TeacherName == from {
			m.teachers.teachers = append(m.teachers.teachers[:i], m.teachers.teachers[i+1:]...)
			details.TeachersDeleted++
			break
		}
	}
	return details, nil
}

// ── 测试辅助：构建 Repository 聚合 ──

type testRepos struct {
	timetable *mockTimetableRepo
	english   *mockEnglishRepo
	homeroom  *mockHomeroomRepo
	classInfo *mockClassInfoRepo
	teacher   *mockTeacherRepo
	classroom *mockClassroomRepo
	period    *mockPeriodRepo
	student   *mockStudentRepo
	session   *mockExamSessionRepo
	classExam *mockClassExamInfoRepo
	proctor   *mockProctorRepo
	admin     *mockAdminRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	tt := newMockTimetableRepo()
	en := newMockEnglishRepo()
	hr := newMockHomeroomRepo()
	tc := newMockTeacherRepo()
	proctor := newMockProctorRepo()
	session := newMockExamSessionRepo()

	repos := &testRepos{
		timetable: tt,
		english:   en,
		homeroom:  hr,
		classInfo: newMockClassInfoRepo(),
		teacher:   tc,
		classroom: newMockClassroomRepo(),
		period:    newMockPeriodRepo(),
		student:   newMockStudentRepo(),
		session:   session,
		classExam: newMockClassExamInfoRepo(session, proctor),
		proctor:   proctor,
		admin:     newMockAdminRepo(tt, en, hr, tc),
	}

	agg := &repository.Repository{
		Timetable:     repos.timetable,
		English:       repos.english,
		Homeroom:      repos.homeroom,
		ClassInfo:     repos.classInfo,
		Teacher:       repos.teacher,
		Classroom:     repos.classroom,
		Period:        repos.period,
		Student:       repos.student,
		ExamSession:   repos.session,
		ClassExamInfo: repos.classExam,
		Proctor:       repos.proctor,
		Admin:         repos.admin,
	}
	return agg, repos
}
