package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/geonook/kcislk-timetalle/internal/dto"
)

// AdminRepository 管理端维护操作接口
type AdminRepository interface {
	// MergeTeacher 在单一事务内把 from 名下的所有课表行改挂到 to 名下，
	// 并删除 teachers 表中的 from 条目，返回逐表影响行数
	MergeTeacher(ctx context.Context, from, to string) (*dto.MergeTeacherDetails, error)
}

type adminRepo struct {
	db *gorm.DB
}

// NewAdminRepo 创建 AdminRepository 实例
func NewAdminRepo(db *gorm.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) MergeTeacher(ctx context.Context, from, to string) (*dto.MergeTeacherDetails, error) {
	details := &dto.MergeTeacherDetails{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec("UPDATE timetable SET teacher = ? WHERE teacher = ?", to, from)
		if res.Error != nil {
			return res.Error
		}
		details.TimetableUpdated = res.RowsAffected

		res = tx.Exec("UPDATE english_timetable SET teacher = ? WHERE teacher = ?", to, from)
		if res.Error != nil {
			return res.Error
		}
		details.EnglishTimetableUpdated = res.RowsAffected

		res = tx.Exec("UPDATE homeroom_timetable SET teacher = ? WHERE teacher = ?", to, from)
		if res.Error != nil {
			return res.Error
		}
		details.HomeroomUpdated = res.RowsAffected

		res = tx.Exec("DELETE FROM teachers WHERE teacher_name = ?", from)
		if res.Error != nil {
			return res.Error
		}
		details.TeachersDeleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}
