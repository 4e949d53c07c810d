package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/geonook/kcislk-timetalle/internal/model"
)

// ── 监考子系统 ──

// ExamSessionRepository 考试场次数据访问接口
type ExamSessionRepository interface {
	List(ctx context.Context) ([]model.ExamSession, error)
	GetByID(ctx context.Context, id int) (*model.ExamSession, error)
	GetByGradeBand(ctx context.Context, gradeBand string) (*model.ExamSession, error)
	ListByDate(ctx context.Context, date string) ([]model.ExamSession, error)
	DistinctDates(ctx context.Context) ([]string, error)
}

type examSessionRepo struct {
	db *gorm.DB
}

// NewExamSessionRepo 创建 ExamSessionRepository 实例
func NewExamSessionRepo(db *gorm.DB) ExamSessionRepository {
	return &examSessionRepo{db: db}
}

func (r *examSessionRepo) List(ctx context.Context) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	err := r.db.WithContext(ctx).
		Order("exam_date ASC, grade_band ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *examSessionRepo) GetByID(ctx context.Context, id int) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.db.WithContext(ctx).First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *examSessionRepo) GetByGradeBand(ctx context.Context, gradeBand string) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.db.WithContext(ctx).
		Where("grade_band = ?", gradeBand).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *examSessionRepo) ListByDate(ctx context.Context, date string) ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	err := r.db.WithContext(ctx).
		Where("exam_date = ?", date).
		Order("grade_band ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *examSessionRepo) DistinctDates(ctx context.Context) ([]string, error) {
	var dates []string
	err := r.db.WithContext(ctx).
		Model(&model.ExamSession{}).
		Distinct("exam_date").
		Order("exam_date ASC").
		Pluck("exam_date", &dates).Error
	return dates, err
}

// ClassExamInfoRepository 班级考试资讯数据访问接口
// List 系列均预载场次与监考分配，供报表与进度统计使用
type ClassExamInfoRepository interface {
	List(ctx context.Context) ([]model.ClassExamInfo, error)
	ListBySession(ctx context.Context, sessionID int) ([]model.ClassExamInfo, error)
	GetByID(ctx context.Context, id int) (*model.ClassExamInfo, error)
	GetByClassName(ctx context.Context, className string) (*model.ClassExamInfo, error)
	CountAll(ctx context.Context) (int64, error)
	CountAssigned(ctx context.Context) (int64, error)
}

type classExamInfoRepo struct {
	db *gorm.DB
}

// NewClassExamInfoRepo 创建 ClassExamInfoRepository 实例
func NewClassExamInfoRepo(db *gorm.DB) ClassExamInfoRepository {
	return &classExamInfoRepo{db: db}
}

func (r *classExamInfoRepo) List(ctx context.Context) ([]model.ClassExamInfo, error) {
	var infos []model.ClassExamInfo
	err := r.db.WithContext(ctx).
		Preload("ExamSession").
		Preload("ProctorAssignment").
		Order("grade ASC, class_name ASC").
		Find(&infos).Error
	return infos, err
}

func (r *classExamInfoRepo) ListBySession(ctx context.Context, sessionID int) ([]model.ClassExamInfo, error) {
	var infos []model.ClassExamInfo
	err := r.db.WithContext(ctx).
		Preload("ExamSession").
		Preload("ProctorAssignment").
		Where("exam_session_id = ?", sessionID).
		Order("class_name ASC").
		Find(&infos).Error
	return infos, err
}

func (r *classExamInfoRepo) GetByID(ctx context.Context, id int) (*model.ClassExamInfo, error) {
	var info model.ClassExamInfo
	err := r.db.WithContext(ctx).
		Preload("ExamSession").
		Preload("ProctorAssignment").
		First(&info, id).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *classExamInfoRepo) GetByClassName(ctx context.Context, className string) (*model.ClassExamInfo, error) {
	var info model.ClassExamInfo
	err := r.db.WithContext(ctx).
		Preload("ExamSession").
		Preload("ProctorAssignment").
		Where("class_name = ?", className).
		First(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *classExamInfoRepo) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ClassExamInfo{}).
		Count(&count).Error
	return count, err
}

func (r *classExamInfoRepo) CountAssigned(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ClassExamInfo{}).
		Joins("JOIN proctor_assignments ON proctor_assignments.class_exam_info_id = class_exam_info.id").
		Count(&count).Error
	return count, err
}

// ProctorAssignmentRepository 监考分配数据访问接口
type ProctorAssignmentRepository interface {
	List(ctx context.Context) ([]model.ProctorAssignment, error)
	GetByID(ctx context.Context, id int) (*model.ProctorAssignment, error)
	GetByClassExamInfoID(ctx context.Context, classExamInfoID int) (*model.ProctorAssignment, error)
	Create(ctx context.Context, assignment *model.ProctorAssignment) error
	Update(ctx context.Context, assignment *model.ProctorAssignment) error
	Delete(ctx context.Context, id int) error
}

type proctorAssignmentRepo struct {
	db *gorm.DB
}

// NewProctorAssignmentRepo 创建 ProctorAssignmentRepository 实例
func NewProctorAssignmentRepo(db *gorm.DB) ProctorAssignmentRepository {
	return &proctorAssignmentRepo{db: db}
}

func (r *proctorAssignmentRepo) List(ctx context.Context) ([]model.ProctorAssignment, error) {
	var assignments []model.ProctorAssignment
	err := r.db.WithContext(ctx).
		Preload("ClassExamInfo").
		Order("id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *proctorAssignmentRepo) GetByID(ctx context.Context, id int) (*model.ProctorAssignment, error) {
	var assignment model.ProctorAssignment
	err := r.db.WithContext(ctx).
		Preload("ClassExamInfo").
		First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *proctorAssignmentRepo) GetByClassExamInfoID(ctx context.Context, classExamInfoID int) (*model.ProctorAssignment, error) {
	var assignment model.ProctorAssignment
	err := r.db.WithContext(ctx).
		Where("class_exam_info_id = ?", classExamInfoID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *proctorAssignmentRepo) Create(ctx context.Context, assignment *model.ProctorAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *proctorAssignmentRepo) Update(ctx context.Context, assignment *model.ProctorAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *proctorAssignmentRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&model.ProctorAssignment{}, id).Error
}
