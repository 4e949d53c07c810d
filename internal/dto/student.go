package dto

// ── 学生 / 教师视角课表响应 ──

// ScopedCourse 学生（或教师）视角下按类型分组课表中的单格课程
type ScopedCourse struct {
	Subject   string `json:"subject"`
	Teacher   string `json:"teacher"`
	Classroom string `json:"classroom"`
	ClassName string `json:"class_name,omitempty"` // 教师视角需要班级名
	Period    int    `json:"period"`
	Time      string `json:"time"`
}

// TypedGrid 单一课表类型的周网格：星期 → 节次键 → 课程
type TypedGrid map[string]map[string]ScopedCourse

// ScopedTimetables 按课表类型拆分的三张周网格（与前端约定的键名一致）
type ScopedTimetables struct {
	English     TypedGrid `json:"english_timetable"`
	Homeroom    TypedGrid `json:"homeroom_timetable"`
	EvMyReading TypedGrid `json:"ev_myreading_timetable"`
}

// ScopedStatistics 分组课表的汇总统计
type ScopedStatistics struct {
	TotalClasses       int `json:"total_classes"`
	DaysWithClasses    int `json:"days_with_classes"`
	EnglishClasses     int `json:"english_classes"`
	EvMyReadingClasses int `json:"ev_myreading_classes"`
	HomeroomClasses    int `json:"homeroom_classes"`
	UniqueClasses      int `json:"unique_classes,omitempty"` // 仅教师视角
}
