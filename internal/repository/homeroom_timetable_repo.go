package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/geonook/kcislk-timetalle/internal/model"
)

// HomeroomTimetableRepository homeroom 课表数据访问接口
type HomeroomTimetableRepository interface {
	ListByHomeroom(ctx context.Context, homeroomName string) ([]model.HomeroomTimetable, error)
	ListByTeacher(ctx context.Context, teacher string) ([]model.HomeroomTimetable, error)
	DistinctClassNames(ctx context.Context) ([]string, error)
}

type homeroomTimetableRepo struct {
	db *gorm.DB
}

// NewHomeroomTimetableRepo 创建 HomeroomTimetableRepository 实例
func NewHomeroomTimetableRepo(db *gorm.DB) HomeroomTimetableRepository {
	return &homeroomTimetableRepo{db: db}
}

func (r *homeroomTimetableRepo) ListByHomeroom(ctx context.Context, homeroomName string) ([]model.HomeroomTimetable, error) {
	var entries []model.HomeroomTimetable
	err := r.db.WithContext(ctx).
		Where("home_room_class_name = ?", homeroomName).
		Find(&entries).Error
	return entries, err
}

func (r *homeroomTimetableRepo) ListByTeacher(ctx context.Context, teacher string) ([]model.HomeroomTimetable, error) {
	var entries []model.HomeroomTimetable
	err := r.db.WithContext(ctx).
		Where("teacher = ?", teacher).
		Find(&entries).Error
	return entries, err
}

func (r *homeroomTimetableRepo) DistinctClassNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.HomeroomTimetable{}).
		Distinct("home_room_class_name").
		Order("home_room_class_name ASC").
		Pluck("home_room_class_name", &names).Error
	return names, err
}
