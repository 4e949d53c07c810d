package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/geonook/kcislk-timetalle/internal/model"
)

// StudentRepository 学生名册数据访问接口
type StudentRepository interface {
	GetByID(ctx context.Context, studentID string) (*model.Student, error)
	// Search 以学号或姓名做大小写不敏感子串匹配，最多返回 limit 笔
	Search(ctx context.Context, q string, limit int) ([]model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) GetByID(ctx context.Context, studentID string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) Search(ctx context.Context, q string, limit int) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("student_id ILIKE ? OR student_name ILIKE ?", "%"+q+"%", "%"+q+"%").
		Order("student_id ASC").
		Limit(limit).
		Find(&students).Error
	return students, err
}

func (r *studentRepo) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Order("student_id ASC").
		Find(&students).Error
	return students, err
}
