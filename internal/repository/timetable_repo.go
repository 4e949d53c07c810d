package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/geonook/kcislk-timetalle/internal/dto"
	"github.com/geonook/kcislk-timetalle/internal/model"
)

// TimetableRepository 旧版平面课表数据访问接口
type TimetableRepository interface {
	ListByClass(ctx context.Context, className string) ([]model.TimetableEntry, error)
	ListByClassAndDay(ctx context.Context, className, day string) ([]model.TimetableEntry, error)
	// Search 大小写不敏感子串匹配，条件之间 AND；全部为空时返回全表
	Search(ctx context.Context, filters dto.SearchFilters) ([]model.TimetableEntry, error)
	// ListAllOrdered 按班级、星期（周一→周五）、节次排序返回全表，供汇出使用
	ListAllOrdered(ctx context.Context) ([]model.TimetableEntry, error)
}

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) ListByClass(ctx context.Context, className string) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	err := r.db.WithContext(ctx).
		Where("class_name = ?", className).
		Find(&entries).Error
	return entries, err
}

func (r *timetableRepo) ListByClassAndDay(ctx context.Context, className, day string) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	err := r.db.WithContext(ctx).
		Where("class_name = ? AND day = ?", className, day).
		Order("period_number ASC").
		Find(&entries).Error
	return entries, err
}

func (r *timetableRepo) Search(ctx context.Context, filters dto.SearchFilters) ([]model.TimetableEntry, error) {
	q := r.db.WithContext(ctx).Model(&model.TimetableEntry{})
	if filters.ClassName != "" {
		q = q.Where("class_name ILIKE ?", "%"+filters.ClassName+"%")
	}
	if filters.Teacher != "" {
		q = q.Where("teacher ILIKE ?", "%"+filters.Teacher+"%")
	}
	if filters.Classroom != "" {
		q = q.Where("classroom ILIKE ?", "%"+filters.Classroom+"%")
	}
	if filters.Day != "" {
		q = q.Where("day ILIKE ?", "%"+filters.Day+"%")
	}

	var entries []model.TimetableEntry
	err := q.Find(&entries).Error
	return entries, err
}

func (r *timetableRepo) ListAllOrdered(ctx context.Context) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	err := r.db.WithContext(ctx).
		Order(`class_name ASC, CASE day
			WHEN 'Monday' THEN 1
			WHEN 'Tuesday' THEN 2
			WHEN 'Wednesday' THEN 3
			WHEN 'Thursday' THEN 4
			WHEN 'Friday' THEN 5
			ELSE 6 END, period_number ASC`).
		Find(&entries).Error
	return entries, err
}
