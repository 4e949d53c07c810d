package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/geonook/kcislk-timetalle/internal/model"
)

// EnglishTimetableRepository 英文班课表数据访问接口
type EnglishTimetableRepository interface {
	ListByClass(ctx context.Context, className string) ([]model.EnglishTimetable, error)
	ListByTeacher(ctx context.Context, teacher string) ([]model.EnglishTimetable, error)
	DistinctClassNames(ctx context.Context) ([]string, error)
}

type englishTimetableRepo struct {
	db *gorm.DB
}

// NewEnglishTimetableRepo 创建 EnglishTimetableRepository 实例
func NewEnglishTimetableRepo(db *gorm.DB) EnglishTimetableRepository {
	return &englishTimetableRepo{db: db}
}

func (r *englishTimetableRepo) ListByClass(ctx context.Context, className string) ([]model.EnglishTimetable, error) {
	var entries []model.EnglishTimetable
	err := r.db.WithContext(ctx).
		Where("class_name = ?", className).
		Find(&entries).Error
	return entries, err
}

func (r *englishTimetableRepo) ListByTeacher(ctx context.Context, teacher string) ([]model.EnglishTimetable, error) {
	var entries []model.EnglishTimetable
	err := r.db.WithContext(ctx).
		Where("teacher = ?", teacher).
		Find(&entries).Error
	return entries, err
}

func (r *englishTimetableRepo) DistinctClassNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.EnglishTimetable{}).
		Distinct("class_name").
		Order("class_name ASC").
		Pluck("class_name", &names).Error
	return names, err
}
