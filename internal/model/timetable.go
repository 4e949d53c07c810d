package model

// TimetableEntry 旧版平面课表 — 对应 timetable
// 同一 (班级, 星期, 节次) 可能存在重复行，查询时全部返回
type TimetableEntry struct {
	ID           int    `gorm:"primaryKey;autoIncrement"   json:"id"`
	Day          string `gorm:"type:varchar(10);not null"  json:"day"` // Monday, Tuesday, ...
	PeriodNumber int    `gorm:"not null"                   json:"period"`
	TimeRange    string `gorm:"type:varchar(20);not null"  json:"time"` // 8:25-9:05
	Classroom    string `gorm:"type:varchar(20);not null"  json:"classroom"`
	Teacher      string `gorm:"type:varchar(100);not null" json:"teacher"`
	ClassName    string `gorm:"type:varchar(50);not null"  json:"class_name"`
}

// TableName 指定表名
func (TimetableEntry) TableName() string { return "timetable" }

// ClassInfo 班级表 — 对应 classes
type ClassInfo struct {
	ID        int    `gorm:"primaryKey;autoIncrement"          json:"id"`
	ClassName string `gorm:"type:varchar(50);not null;unique"  json:"class_name"`
	Grade     string `gorm:"type:varchar(10);not null"         json:"grade"` // G1, G2, ...
}

// TableName 指定表名
func (ClassInfo) TableName() string { return "classes" }

// Teacher 教师表 — 对应 teachers
type Teacher struct {
	ID          int    `gorm:"primaryKey;autoIncrement"          json:"id"`
	TeacherName string `gorm:"type:varchar(100);not null;unique" json:"teacher_name"`
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// Classroom 教室表 — 对应 classrooms
type Classroom struct {
	ID            int    `gorm:"primaryKey;autoIncrement"         json:"id"`
	ClassroomName string `gorm:"type:varchar(20);not null;unique" json:"classroom_name"`
}

// TableName 指定表名
func (Classroom) TableName() string { return "classrooms" }

// Period 节次表 — 对应 periods
type Period struct {
	ID           int    `gorm:"primaryKey;autoIncrement"  json:"id"`
	PeriodNumber int    `gorm:"not null;unique"           json:"period_number"`
	TimeRange    string `gorm:"type:varchar(20);not null" json:"time_range"`
	StartTime    string `gorm:"type:varchar(10);not null" json:"start_time"`
	EndTime      string `gorm:"type:varchar(10);not null" json:"end_time"`
}

// TableName 指定表名
func (Period) TableName() string { return "periods" }

// [自证通过] internal/model/timetable.go
