package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/geonook/kcislk-timetalle/internal/model"
)

// ── 查询用基础资料：班级 / 教师 / 教室 / 节次 ──

// ClassInfoRepository 班级表数据访问接口
type ClassInfoRepository interface {
	List(ctx context.Context) ([]model.ClassInfo, error)
	GetByName(ctx context.Context, className string) (*model.ClassInfo, error)
}

type classInfoRepo struct {
	db *gorm.DB
}

// NewClassInfoRepo 创建 ClassInfoRepository 实例
func NewClassInfoRepo(db *gorm.DB) ClassInfoRepository {
	return &classInfoRepo{db: db}
}

func (r *classInfoRepo) List(ctx context.Context) ([]model.ClassInfo, error) {
	var classes []model.ClassInfo
	err := r.db.WithContext(ctx).
		Order("class_name ASC").
		Find(&classes).Error
	return classes, err
}

func (r *classInfoRepo) GetByName(ctx context.Context, className string) (*model.ClassInfo, error) {
	var class model.ClassInfo
	err := r.db.WithContext(ctx).
		Where("class_name = ?", className).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// TeacherRepository 教师表数据访问接口
type TeacherRepository interface {
	List(ctx context.Context) ([]model.Teacher, error)
	GetByName(ctx context.Context, name string) (*model.Teacher, error)
	// Search 大小写不敏感子串匹配
	Search(ctx context.Context, q string) ([]model.Teacher, error)
}

type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo 创建 TeacherRepository 实例
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) List(ctx context.Context) ([]model.Teacher, error) {
	var teachers []model.Teacher
	err := r.db.WithContext(ctx).
		Order("teacher_name ASC").
		Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepo) GetByName(ctx context.Context, name string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Where("teacher_name = ?", name).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) Search(ctx context.Context, q string) ([]model.Teacher, error) {
	var teachers []model.Teacher
	err := r.db.WithContext(ctx).
		Where("teacher_name ILIKE ?", "%"+q+"%").
		Order("teacher_name ASC").
		Find(&teachers).Error
	return teachers, err
}

// ClassroomRepository 教室表数据访问接口
type ClassroomRepository interface {
	List(ctx context.Context) ([]model.Classroom, error)
}

type classroomRepo struct {
	db *gorm.DB
}

// NewClassroomRepo 创建 ClassroomRepository 实例
func NewClassroomRepo(db *gorm.DB) ClassroomRepository {
	return &classroomRepo{db: db}
}

func (r *classroomRepo) List(ctx context.Context) ([]model.Classroom, error) {
	var classrooms []model.Classroom
	err := r.db.WithContext(ctx).
		Order("classroom_name ASC").
		Find(&classrooms).Error
	return classrooms, err
}

// PeriodRepository 节次表数据访问接口
type PeriodRepository interface {
	List(ctx context.Context) ([]model.Period, error)
}

type periodRepo struct {
	db *gorm.DB
}

// NewPeriodRepo 创建 PeriodRepository 实例
func NewPeriodRepo(db *gorm.DB) PeriodRepository {
	return &periodRepo{db: db}
}

func (r *periodRepo) List(ctx context.Context) ([]model.Period, error) {
	var periods []model.Period
	err := r.db.WithContext(ctx).
		Order("period_number ASC").
		Find(&periods).Error
	return periods, err
}
