package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/geonook/kcislk-timetalle/internal/dto"
	"github.com/geonook/kcislk-timetalle/internal/model"
	"github.com/geonook/kcislk-timetalle/internal/repository"
)

// ── 监考模块业务错误 ──

var (
	ErrExamSessionNotFound     = errors.New("找不到该考试场次")
	ErrExamClassNotFound       = errors.New("找不到该班级的考试资讯")
	ErrProctorNotFound         = errors.New("找不到该监考分配")
	ErrProctorAlreadyAssigned  = errors.New("该班级已有监考分配，请改用更新")
	ErrProctorTeacherRequired  = errors.New("缺少必填栏位: proctor_teacher")
	ErrProctorClassroomMissing = errors.New("缺少必填栏位: classroom")
)

// csvExportHeader 监考报表的固定栏位，顺序不可变动
var csvExportHeader = []string{
	"ClassName", "Grade", "Teacher", "Level", "Classroom", "GradeBand",
	"Duration", "Periods", "Self-Study", "Preparation", "ExamTime",
	"Proctor", "Subject", "Count", "Students",
}

// ── ExamService 接口 ──────────────────────────────────────
//
// 设计说明：
//   - 每个班级最多一笔监考分配（class_exam_info_id 唯一约束），
//     重复建立报冲突；批次接口对已存在者改走更新。
//   - 批次分配逐笔处理，单笔失败记入 errors，不整批回滚。
//   - CSV 报表栏位固定 15 栏；Self-Study 为空时输出 "None"
//     （仅报表如此，JSON 响应维持 null）。
// ─────────────────────────────────────────────────────────────

// ExamService 监考模块业务接口
type ExamService interface {
	// ListSessions 全部考试场次
	ListSessions(ctx context.Context) ([]dto.ExamSessionResponse, error)
	// GetSession 按 ID 取得场次
	GetSession(ctx context.Context, id int) (*dto.ExamSessionResponse, error)
	// ListSessionsByDate 指定日期的场次
	ListSessionsByDate(ctx context.Context, date string) ([]dto.ExamSessionResponse, error)
	// ListExamDates 所有考试日期（升序去重）
	ListExamDates(ctx context.Context) ([]string, error)
	// ListClassInfos 全部班级考试资讯（含分配状态）
	ListClassInfos(ctx context.Context) ([]dto.ClassExamInfoResponse, error)
	// ListClassInfosByGradeBand 指定 GradeBand 下的班级资讯
	ListClassInfosByGradeBand(ctx context.Context, gradeBand string) ([]dto.ClassExamInfoResponse, error)
	// GetClassInfoByName 按班级名取得考试资讯
	GetClassInfoByName(ctx context.Context, className string) (*dto.ClassExamInfoResponse, error)
	// ListProctors 全部监考分配
	ListProctors(ctx context.Context) ([]dto.ProctorResponse, error)
	// CreateProctor 新增监考分配；班级已有分配时报冲突
	CreateProctor(ctx context.Context, req *dto.CreateProctorRequest) (*dto.ProctorResponse, error)
	// UpdateProctor 更新监考分配（仅更新提供的栏位）
	UpdateProctor(ctx context.Context, id int, req *dto.UpdateProctorRequest) (*dto.ProctorResponse, error)
	// DeleteProctor 删除监考分配
	DeleteProctor(ctx context.Context, id int) error
	// BatchAssign 批次新增/更新，逐笔计数
	BatchAssign(ctx context.Context, req *dto.BatchAssignRequest) (*dto.BatchAssignResponse, error)
	// GetStats 全局与按日期的分配进度
	GetStats(ctx context.Context) (*dto.ExamStatsOverall, []dto.ExamStatsByDate, error)
	// ExportCSV 全部班级的监考报表
	ExportCSV(ctx context.Context) ([]byte, error)
	// ExportCSVByGradeBand 指定 GradeBand 的监考报表
	ExportCSVByGradeBand(ctx context.Context, gradeBand string) ([]byte, error)
}

type examService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExamService 创建 ExamService 实例
func NewExamService(repo *repository.Repository, logger *zap.Logger) ExamService {
	return &examService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// 考试场次
// ════════════════════════════════════════════════════════════

func (s *examService) ListSessions(ctx context.Context) ([]dto.ExamSessionResponse, error) {
	sessions, err := s.repo.ExamSession.List(ctx)
	if err != nil {
		s.logger.Error("查询考试场次失败", zap.Error(err))
		return nil, fmt.Errorf("查询考试场次失败: %w", err)
	}
	return toExamSessionResponses(sessions), nil
}

func (s *examService) GetSession(ctx context.Context, id int) (*dto.ExamSessionResponse, error) {
	session, err := s.repo.ExamSession.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamSessionNotFound
		}
		s.logger.Error("查询考试场次失败", zap.Error(err))
		return nil, fmt.Errorf("查询考试场次失败: %w", err)
	}
	resp := toExamSessionResponse(session)
	return &resp, nil
}

func (s *examService) ListSessionsByDate(ctx context.Context, date string) ([]dto.ExamSessionResponse, error) {
	sessions, err := s.repo.ExamSession.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("查询考试场次失败", zap.Error(err))
		return nil, fmt.Errorf("查询考试场次失败: %w", err)
	}
	return toExamSessionResponses(sessions), nil
}

func (s *examService) ListExamDates(ctx context.Context) ([]string, error) {
	dates, err := s.repo.ExamSession.DistinctDates(ctx)
	if err != nil {
		s.logger.Error("查询考试日期失败", zap.Error(err))
		return nil, fmt.Errorf("查询考试日期失败: %w", err)
	}
	return dates, nil
}

// ════════════════════════════════════════════════════════════
// 班级考试资讯
// ════════════════════════════════════════════════════════════

func (s *examService) ListClassInfos(ctx context.Context) ([]dto.ClassExamInfoResponse, error) {
	infos, err := s.repo.ClassExamInfo.List(ctx)
	if err != nil {
		s.logger.Error("查询班级考试资讯失败", zap.Error(err))
		return nil, fmt.Errorf("查询班级考试资讯失败: %w", err)
	}
	return toClassExamInfoResponses(infos), nil
}

func (s *examService) ListClassInfosByGradeBand(ctx context.Context, gradeBand string) ([]dto.ClassExamInfoResponse, error) {
	session, err := s.repo.ExamSession.GetByGradeBand(ctx, gradeBand)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamSessionNotFound
		}
		s.logger.Error("查询考试场次失败", zap.Error(err))
		return nil, fmt.Errorf("查询考试场次失败: %w", err)
	}
	infos, err := s.repo.ClassExamInfo.ListBySession(ctx, session.ID)
	if err != nil {
		s.logger.Error("查询班级考试资讯失败", zap.Error(err))
		return nil, fmt.Errorf("查询班级考试资讯失败: %w", err)
	}
	return toClassExamInfoResponses(infos), nil
}

func (s *examService) GetClassInfoByName(ctx context.Context, className string) (*dto.ClassExamInfoResponse, error) {
	info, err := s.repo.ClassExamInfo.GetByClassName(ctx, className)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamClassNotFound
		}
		s.logger.Error("查询班级考试资讯失败", zap.Error(err))
		return nil, fmt.Errorf("查询班级考试资讯失败: %w", err)
	}
	resp := toClassExamInfoResponse(info)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// 监考分配 CRUD
// ════════════════════════════════════════════════════════════

func (s *examService) ListProctors(ctx context.Context) ([]dto.ProctorResponse, error) {
	assignments, err := s.repo.Proctor.List(ctx)
	if err != nil {
		s.logger.Error("查询监考分配失败", zap.Error(err))
		return nil, fmt.Errorf("查询监考分配失败: %w", err)
	}
	result := make([]dto.ProctorResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, toProctorResponse(&assignments[i]))
	}
	return result, nil
}

func (s *examService) CreateProctor(ctx context.Context, req *dto.CreateProctorRequest) (*dto.ProctorResponse, error) {
	if req.ProctorTeacher == "" {
		return nil, ErrProctorTeacherRequired
	}
	if req.Classroom == "" {
		return nil, ErrProctorClassroomMissing
	}

	// 确认班级考试资讯存在
	if _, err := s.repo.ClassExamInfo.GetByID(ctx, req.ClassExamInfoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamClassNotFound
		}
		s.logger.Error("查询班级考试资讯失败", zap.Error(err))
		return nil, fmt.Errorf("查询班级考试资讯失败: %w", err)
	}

	// 每班最多一笔
	if _, err := s.repo.Proctor.GetByClassExamInfoID(ctx, req.ClassExamInfoID); err == nil {
		return nil, ErrProctorAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询监考分配失败", zap.Error(err))
		return nil, fmt.Errorf("查询监考分配失败: %w", err)
	}

	assignment := model.ProctorAssignment{
		ClassExamInfoID: req.ClassExamInfoID,
		ProctorTeacher:  req.ProctorTeacher,
		Classroom:       req.Classroom,
		Notes:           req.Notes,
	}
	if err := s.repo.Proctor.Create(ctx, &assignment); err != nil {
		s.logger.Error("创建监考分配失败", zap.Error(err))
		return nil, fmt.Errorf("创建监考分配失败: %w", err)
	}

	resp := toProctorResponse(&assignment)
	return &resp, nil
}

func (s *examService) UpdateProctor(ctx context.Context, id int, req *dto.UpdateProctorRequest) (*dto.ProctorResponse, error) {
	assignment, err := s.repo.Proctor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProctorNotFound
		}
		s.logger.Error("查询监考分配失败", zap.Error(err))
		return nil, fmt.Errorf("查询监考分配失败: %w", err)
	}

	if req.ProctorTeacher != nil {
		assignment.ProctorTeacher = *req.ProctorTeacher
	}
	if req.Classroom != nil {
		assignment.Classroom = *req.Classroom
	}
	if req.Notes != nil {
		assignment.Notes = *req.Notes
	}
	assignment.UpdatedAt = time.Now()

	if err := s.repo.Proctor.Update(ctx, assignment); err != nil {
		s.logger.Error("更新监考分配失败", zap.Error(err))
		return nil, fmt.Errorf("更新监考分配失败: %w", err)
	}

	resp := toProctorResponse(assignment)
	return &resp, nil
}

func (s *examService) DeleteProctor(ctx context.Context, id int) error {
	if _, err := s.repo.Proctor.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProctorNotFound
		}
		s.logger.Error("查询监考分配失败", zap.Error(err))
		return fmt.Errorf("查询监考分配失败: %w", err)
	}
	if err := s.repo.Proctor.Delete(ctx, id); err != nil {
		s.logger.Error("删除监考分配失败", zap.Error(err))
		return fmt.Errorf("删除监考分配失败: %w", err)
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// BatchAssign — 批次新增/更新
// ════════════════════════════════════════════════════════════
//
// 逐笔处理：已有分配走更新（仅覆盖提供的栏位），没有则新增；
// 单笔失败记入 errors 继续处理其余，整批永不失败。

func (s *examService) BatchAssign(ctx context.Context, req *dto.BatchAssignRequest) (*dto.BatchAssignResponse, error) {
	resp := &dto.BatchAssignResponse{Errors: []string{}}

	for _, item := range req.Assignments {
		existing, err := s.repo.Proctor.GetByClassExamInfoID(ctx, item.ClassExamInfoID)
		switch {
		case err == nil:
			// 更新
			if item.ProctorTeacher != nil {
				existing.ProctorTeacher = *item.ProctorTeacher
			}
			if item.Classroom != nil {
				existing.Classroom = *item.Classroom
			}
			if item.Notes != nil {
				existing.Notes = *item.Notes
			}
			existing.UpdatedAt = time.Now()
			if err := s.repo.Proctor.Update(ctx, existing); err != nil {
				resp.Errors = append(resp.Errors,
					fmt.Sprintf("class_exam_info_id %d: 更新失败: %v", item.ClassExamInfoID, err))
				continue
			}
			resp.Updated++

		case errors.Is(err, gorm.ErrRecordNotFound):
			// 新增：必填栏位缺一不可
			if item.ProctorTeacher == nil || *item.ProctorTeacher == "" {
				resp.Errors = append(resp.Errors,
					fmt.Sprintf("class_exam_info_id %d: 缺少必填栏位: proctor_teacher", item.ClassExamInfoID))
				continue
			}
			if item.Classroom == nil || *item.Classroom == "" {
				resp.Errors = append(resp.Errors,
					fmt.Sprintf("class_exam_info_id %d: 缺少必填栏位: classroom", item.ClassExamInfoID))
				continue
			}
			if _, err := s.repo.ClassExamInfo.GetByID(ctx, item.ClassExamInfoID); err != nil {
				resp.Errors = append(resp.Errors,
					fmt.Sprintf("class_exam_info_id %d: 找不到班级考试资讯", item.ClassExamInfoID))
				continue
			}
			assignment := model.ProctorAssignment{
				ClassExamInfoID: item.ClassExamInfoID,
				ProctorTeacher:  *item.ProctorTeacher,
				Classroom:       *item.Classroom,
			}
			if item.Notes != nil {
				assignment.Notes = *item.Notes
			}
			if err := s.repo.Proctor.Create(ctx, &assignment); err != nil {
				resp.Errors = append(resp.Errors,
					fmt.Sprintf("class_exam_info_id %d: 创建失败: %v", item.ClassExamInfoID, err))
				continue
			}
			resp.Created++

		default:
			resp.Errors = append(resp.Errors,
				fmt.Sprintf("class_exam_info_id %d: 查询失败: %v", item.ClassExamInfoID, err))
		}
	}

	return resp, nil
}

// ════════════════════════════════════════════════════════════
// GetStats — 分配进度统计
// ════════════════════════════════════════════════════════════

func (s *examService) GetStats(ctx context.Context) (*dto.ExamStatsOverall, []dto.ExamStatsByDate, error) {
	infos, err := s.repo.ClassExamInfo.List(ctx)
	if err != nil {
		s.logger.Error("查询班级考试资讯失败", zap.Error(err))
		return nil, nil, fmt.Errorf("查询班级考试资讯失败: %w", err)
	}

	overall := &dto.ExamStatsOverall{TotalClasses: len(infos)}
	byDate := make(map[string]*dto.ExamStatsByDate)
	var dateOrder []string

	for i := range infos {
		info := &infos[i]
		assigned := info.ProctorAssignment != nil

		if assigned {
			overall.Assigned++
		}

		date := ""
		if info.ExamSession != nil {
			date = info.ExamSession.ExamDate
		}
		item, ok := byDate[date]
		if !ok {
			item = &dto.ExamStatsByDate{Date: date}
			byDate[date] = item
			dateOrder = append(dateOrder, date)
		}
		item.TotalClasses++
		if assigned {
			item.Assigned++
		} else {
			item.Unassigned++
		}
	}

	overall.Unassigned = overall.TotalClasses - overall.Assigned
	if overall.TotalClasses > 0 {
		overall.ProgressPercent = float64(overall.Assigned) / float64(overall.TotalClasses) * 100
	}

	dates := make([]dto.ExamStatsByDate, 0, len(dateOrder))
	for _, d := range dateOrder {
		dates = append(dates, *byDate[d])
	}
	return overall, dates, nil
}

// ════════════════════════════════════════════════════════════
// CSV 报表
// ════════════════════════════════════════════════════════════

func (s *examService) ExportCSV(ctx context.Context) ([]byte, error) {
	infos, err := s.repo.ClassExamInfo.List(ctx)
	if err != nil {
		s.logger.Error("查询班级考试资讯失败", zap.Error(err))
		return nil, fmt.Errorf("查询班级考试资讯失败: %w", err)
	}
	return renderProctorCSV(infos)
}

func (s *examService) ExportCSVByGradeBand(ctx context.Context, gradeBand string) ([]byte, error) {
	session, err := s.repo.ExamSession.GetByGradeBand(ctx, gradeBand)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamSessionNotFound
		}
		s.logger.Error("查询考试场次失败", zap.Error(err))
		return nil, fmt.Errorf("查询考试场次失败: %w", err)
	}
	infos, err := s.repo.ClassExamInfo.ListBySession(ctx, session.ID)
	if err != nil {
		s.logger.Error("查询班级考试资讯失败", zap.Error(err))
		return nil, fmt.Errorf("查询班级考试资讯失败: %w", err)
	}
	return renderProctorCSV(infos)
}

// renderProctorCSV 以固定 15 栏渲染监考报表
func renderProctorCSV(infos []model.ClassExamInfo) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvExportHeader); err != nil {
		return nil, fmt.Errorf("写入报表失败: %w", err)
	}

	for i := range infos {
		info := &infos[i]

		teacher := ""
		if info.Teacher != nil {
			teacher = *info.Teacher
		}

		gradeBand, duration, periods := "", "", ""
		selfStudy, preparation, examTime, subject := "None", "", "", ""
		if sess := info.ExamSession; sess != nil {
			gradeBand = sess.GradeBand
			duration = strconv.Itoa(sess.Duration)
			periods = sess.Periods
			if sess.SelfStudyTime != nil {
				selfStudy = *sess.SelfStudyTime
			}
			preparation = sess.PreparationTime
			examTime = sess.ExamTime
			subject = sess.Subject
		}

		proctor, classroom := "", ""
		if pa := info.ProctorAssignment; pa != nil {
			proctor = pa.ProctorTeacher
			classroom = pa.Classroom
		}

		record := []string{
			info.ClassName,
			info.Grade,
			teacher,
			info.Level,
			classroom,
			gradeBand,
			duration,
			periods,
			selfStudy,
			preparation,
			examTime,
			proctor,
			subject,
			strconv.Itoa(info.Count()),
			strconv.Itoa(info.Students),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("写入报表失败: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("写入报表失败: %w", err)
	}
	return buf.Bytes(), nil
}

// ── 响应转换器 ──

func toExamSessionResponse(s *model.ExamSession) dto.ExamSessionResponse {
	return dto.ExamSessionResponse{
		ID:              s.ID,
		GradeBand:       s.GradeBand,
		ExamType:        s.ExamType,
		Grade:           s.Grade,
		ExamDate:        s.ExamDate,
		Periods:         s.Periods,
		Duration:        s.Duration,
		SelfStudyTime:   s.SelfStudyTime,
		PreparationTime: s.PreparationTime,
		ExamTime:        s.ExamTime,
		Subject:         s.Subject,
	}
}

func toExamSessionResponses(sessions []model.ExamSession) []dto.ExamSessionResponse {
	result := make([]dto.ExamSessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, toExamSessionResponse(&sessions[i]))
	}
	return result
}

func toClassExamInfoResponse(info *model.ClassExamInfo) dto.ClassExamInfoResponse {
	resp := dto.ClassExamInfoResponse{
		ID:            info.ID,
		ClassName:     info.ClassName,
		Grade:         info.Grade,
		Level:         info.Level,
		ExamSessionID: info.ExamSessionID,
		Students:      info.Students,
		Count:         info.Count(),
		Teacher:       info.Teacher,
	}
	if info.ExamSession != nil {
		sess := toExamSessionResponse(info.ExamSession)
		resp.ExamSession = &sess
	}
	if pa := info.ProctorAssignment; pa != nil {
		resp.HasProctor = true
		resp.Proctor = &pa.ProctorTeacher
		resp.Classroom = &pa.Classroom
		if pa.Notes != "" {
			resp.Notes = &pa.Notes
		}
	}
	return resp
}

func toClassExamInfoResponses(infos []model.ClassExamInfo) []dto.ClassExamInfoResponse {
	result := make([]dto.ClassExamInfoResponse, 0, len(infos))
	for i := range infos {
		result = append(result, toClassExamInfoResponse(&infos[i]))
	}
	return result
}

func toProctorResponse(pa *model.ProctorAssignment) dto.ProctorResponse {
	resp := dto.ProctorResponse{
		ID:              pa.ID,
		ClassExamInfoID: pa.ClassExamInfoID,
		ProctorTeacher:  pa.ProctorTeacher,
		Classroom:       pa.Classroom,
		Notes:           pa.Notes,
		CreatedAt:       pa.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       pa.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if pa.ClassExamInfo != nil {
		resp.ClassName = pa.ClassExamInfo.ClassName
	}
	return resp
}
