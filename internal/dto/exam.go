package dto

// ── 监考子系统请求 ──

// CreateProctorRequest 新增监考分配
type CreateProctorRequest struct {
	ClassExamInfoID int    `json:"class_exam_info_id"`
	ProctorTeacher  string `json:"proctor_teacher"`
	Classroom       string `json:"classroom"`
	Notes           string `json:"notes"`
}

// UpdateProctorRequest 更新监考分配（仅更新提供的栏位）
type UpdateProctorRequest struct {
	ProctorTeacher *string `json:"proctor_teacher"`
	Classroom      *string `json:"classroom"`
	Notes          *string `json:"notes"`
}

// BatchAssignRequest 批次新增/更新监考分配
type BatchAssignRequest struct {
	Assignments []BatchAssignmentItem `json:"assignments"`
}

// BatchAssignmentItem 批次处理中的单笔分配
type BatchAssignmentItem struct {
	ClassExamInfoID int     `json:"class_exam_info_id"`
	ProctorTeacher  *string `json:"proctor_teacher"`
	Classroom       *string `json:"classroom"`
	Notes           *string `json:"notes"`
}

// ── 监考子系统响应 ──

// ExamSessionResponse 考试场次
type ExamSessionResponse struct {
	ID              int     `json:"id"`
	GradeBand       string  `json:"grade_band"`
	ExamType        string  `json:"exam_type"`
	Grade           string  `json:"grade"`
	ExamDate        string  `json:"exam_date"`
	Periods         string  `json:"periods"`
	Duration        int     `json:"duration"`
	SelfStudyTime   *string `json:"self_study_time"`
	PreparationTime string  `json:"preparation_time"`
	ExamTime        string  `json:"exam_time"`
	Subject         string  `json:"subject"`
}

// ClassExamInfoResponse 班级考试资讯（含场次与监考分配的完整视图）
type ClassExamInfoResponse struct {
	ID            int                  `json:"id"`
	ClassName     string               `json:"class_name"`
	Grade         string               `json:"grade"`
	Level         string               `json:"level"`
	ExamSessionID int                  `json:"exam_session_id"`
	Students      int                  `json:"students"`
	Count         int                  `json:"count"` // Students + 1
	Teacher       *string              `json:"teacher"`
	HasProctor    bool                 `json:"has_proctor"`
	ExamSession   *ExamSessionResponse `json:"exam_session,omitempty"`
	Proctor       *string              `json:"proctor"`
	Classroom     *string              `json:"classroom"`
	Notes         *string              `json:"notes"`
}

// ProctorResponse 监考分配
type ProctorResponse struct {
	ID              int    `json:"id"`
	ClassExamInfoID int    `json:"class_exam_info_id"`
	ClassName       string `json:"class_name,omitempty"`
	ProctorTeacher  string `json:"proctor_teacher"`
	Classroom       string `json:"classroom"`
	Notes           string `json:"notes"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// BatchAssignResponse 批次处理结果：逐笔计数，整体不失败
type BatchAssignResponse struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// ExamStatsOverall 全局监考分配进度
type ExamStatsOverall struct {
	TotalClasses    int     `json:"total_classes"`
	Assigned        int     `json:"assigned"`
	Unassigned      int     `json:"unassigned"`
	ProgressPercent float64 `json:"progress_percent"`
}

// ExamStatsByDate 按考试日期的进度
type ExamStatsByDate struct {
	Date         string `json:"date"`
	TotalClasses int    `json:"total_classes"`
	Assigned     int    `json:"assigned"`
	Unassigned   int    `json:"unassigned"`
}

// ── 管理端 ──

// MergeTeacherRequest 合并重复教师名：from 的所有课表行改挂到 to 名下
type MergeTeacherRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MergeTeacherDetails 合并结果明细
type MergeTeacherDetails struct {
	TimetableUpdated        int64 `json:"timetable_updated"`
	EnglishTimetableUpdated int64 `json:"english_timetable_updated"`
	HomeroomUpdated         int64 `json:"homeroom_timetable_updated"`
	TeachersDeleted         int64 `json:"teachers_deleted"`
}

// [自证通过] internal/dto/exam.go
