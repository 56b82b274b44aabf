package dto

// ── 客房清扫模块 DTO ──

// AssignRoomsRequest 批量分配房间
type AssignRoomsRequest struct {
	HousekeeperID string   `json:"housekeeper_id" binding:"required"`
	RoomNumbers   []string `json:"room_numbers"   binding:"required,min=1,dive,max=20"`
	Date          string   `json:"date"` // YYYY-MM-DD，缺省为当天
}

// UpdateTaskStatusRequest 更新任务状态（本人 / 任意）
type UpdateTaskStatusRequest struct {
	TaskID string `json:"task_id" binding:"required"`
	Status string `json:"status"  binding:"required"`
}

// TaskIDRequest 仅携带任务 ID 的命令（续住、查房）
type TaskIDRequest struct {
	TaskID string `json:"task_id" binding:"required"`
}

// SetRushRequest 设置加急标记
type SetRushRequest struct {
	TaskID string `json:"task_id" binding:"required"`
	IsRush *bool  `json:"is_rush" binding:"required"`
}

// AddNoteRequest 添加任务备注
type AddNoteRequest struct {
	TaskID string `json:"task_id" binding:"required"`
	Text   string `json:"text"    binding:"required,max=2000"`
}

// SetCheckoutTimeRequest 设置退房时间，空值表示清除
type SetCheckoutTimeRequest struct {
	TaskID       string  `json:"task_id"       binding:"required"`
	CheckoutTime *string `json:"checkout_time" binding:"omitempty,max=20"`
}

// ExportDateRequest 导出日期参数
type ExportDateRequest struct {
	Date string `form:"date"` // 缺省为当天
}

// [自证通过] internal/dto/housekeeping.go
