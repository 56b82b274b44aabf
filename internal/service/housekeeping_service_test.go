package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"hotel-ops/internal/dto"
	"hotel-ops/internal/model"
	pkgerrors "hotel-ops/pkg/errors"
)

// ── 测试辅助 ──

func setupTestHousekeepingService() (HousekeepingService, *testEnv) {
	env := newTestEnv()
	logger := zap.NewNop()
	svc := NewHousekeepingService(env.repo, logger)
	return svc, env
}

func at(p Principal, now time.Time) Principal {
	p.Now = now
	return p
}

// ── AssignRooms 测试 ──

func TestHousekeepingService_AssignRooms_Success(t *testing.T) {
	svc, env := setupTestHousekeepingService()

	req := &dto.AssignRoomsRequest{
		HousekeeperID: "hk-1",
		RoomNumbers:   []string{" 101 ", "", "102", "   "},
	}
	result, err := svc.AssignRooms(context.Background(), asHead, req)
	if err != nil {
		t.Fatalf("AssignRooms 应成功: %v", err)
	}
	if result.Created != 2 || len(result.Tasks) != 2 {
		t.Fatalf("期望创建2条任务，实际=%d", result.Created)
	}
	for _, task := range result.Tasks {
		if task.Status != string(model.TaskStatusDirty) {
			t.Errorf("期望Status=dirty，实际=%s", task.Status)
		}
		if task.IsRush {
			t.Error("新任务不应为加急")
		}
		if task.StartedAt != nil || task.FinishedAt != nil {
			t.Error("新任务时间戳应为空")
		}
		if task.Date != testToday {
			t.Errorf("缺省日期应为当天，实际=%s", task.Date)
		}
	}
	if result.Tasks[0].RoomNumber != "101" {
		t.Errorf("房号应去除空白，实际=%q", result.Tasks[0].RoomNumber)
	}
	if len(env.tasks.tasks) != 2 {
		t.Errorf("期望存储2条任务，实际=%d", len(env.tasks.tasks))
	}
}

func TestHousekeepingService_AssignRooms_ExplicitDate(t *testing.T) {
	svc, _ := setupTestHousekeepingService()

	req := &dto.AssignRoomsRequest{HousekeeperID: "head-1", RoomNumbers: []string{"201"}, Date: "2026-03-15"}
	result, err := svc.AssignRooms(context.Background(), asManager, req)
	if err != nil {
		t.Fatalf("AssignRooms 应成功: %v", err)
	}
	if result.Tasks[0].Date != "2026-03-15" {
		t.Errorf("期望Date=2026-03-15，实际=%s", result.Tasks[0].Date)
	}
}

func TestHousekeepingService_AssignRooms_Rejections(t *testing.T) {
	tests := []struct {
		name string
		p    Principal
		req  dto.AssignRoomsRequest
		want error
	}{
		{"保洁员无权分配", asHousekeeper, dto.AssignRoomsRequest{HousekeeperID: "hk-1", RoomNumbers: []string{"101"}}, ErrPermissionDenied},
		{"维修工无权分配", asMaintenance, dto.AssignRoomsRequest{HousekeeperID: "hk-1", RoomNumbers: []string{"101"}}, ErrPermissionDenied},
		{"房号超长", asHead, dto.AssignRoomsRequest{HousekeeperID: "hk-1", RoomNumbers: []string{"101", strings.Repeat("9", 25)}}, ErrRoomNumberTooLong},
		{"房号全为空", asHead, dto.AssignRoomsRequest{HousekeeperID: "hk-1", RoomNumbers: []string{" ", ""}}, ErrNoRoomNumbers},
		{"日期格式错误", asHead, dto.AssignRoomsRequest{HousekeeperID: "hk-1", RoomNumbers: []string{"101"}, Date: "14/03/2026"}, ErrInvalidWorkDate},
		{"未指定保洁员", asHead, dto.AssignRoomsRequest{RoomNumbers: []string{"101"}}, ErrHousekeeperRequired},
		{"保洁员不存在", asHead, dto.AssignRoomsRequest{HousekeeperID: "ghost", RoomNumbers: []string{"101"}}, ErrHousekeeperNotFound},
		{"维修工不能被分配", asHead, dto.AssignRoomsRequest{HousekeeperID: "mt-1", RoomNumbers: []string{"101"}}, ErrNotHousekeeper},
		{"经理不能被分配", asHead, dto.AssignRoomsRequest{HousekeeperID: "mgr-1", RoomNumbers: []string{"101"}}, ErrNotHousekeeper},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, env := setupTestHousekeepingService()
			req := tt.req
			_, err := svc.AssignRooms(context.Background(), tt.p, &req)
			if !errors.Is(err, tt.want) {
				t.Errorf("期望 %v，实际: %v", tt.want, err)
			}
			if len(env.tasks.tasks) != 0 {
				t.Errorf("失败时不应写入任务，实际=%d", len(env.tasks.tasks))
			}
		})
	}
}

func TestHousekeepingService_AssignRooms_PartialFailure(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.tasks.createLimit = 2

	req := &dto.AssignRoomsRequest{HousekeeperID: "hk-1", RoomNumbers: []string{"101", "102", "103"}}
	result, err := svc.AssignRooms(context.Background(), asHead, req)
	if !pkgerrors.Is(err, pkgerrors.StoreUnavailable) {
		t.Fatalf("期望 StoreUnavailable，实际: %v", err)
	}
	if result == nil || result.Created != 2 {
		t.Fatalf("应返回已创建的2条任务，实际=%v", result)
	}
	if len(env.tasks.tasks) != 2 {
		t.Errorf("已写入的任务不回滚，期望2，实际=%d", len(env.tasks.tasks))
	}
}

// ── 终态：已查房任务不可修改 ──

func TestHousekeepingService_Inspected_IsTerminal(t *testing.T) {
	commands := []struct {
		name string
		run  func(HousekeepingService) error
	}{
		{"本人更新-保洁员", func(s HousekeepingService) error {
			_, err := s.UpdateOwnStatus(context.Background(), asHousekeeper, "task-1", "cleaning")
			return err
		}},
		{"任意更新-领班", func(s HousekeepingService) error {
			_, err := s.UpdateAnyStatus(context.Background(), asHead, "task-1", "dirty")
			return err
		}},
		{"续住-经理", func(s HousekeepingService) error {
			_, err := s.SetStayover(context.Background(), asManager, "task-1")
			return err
		}},
		{"查房-领班", func(s HousekeepingService) error {
			_, err := s.MarkInspected(context.Background(), asHead, "task-1")
			return err
		}},
		{"查房-经理", func(s HousekeepingService) error {
			_, err := s.MarkInspected(context.Background(), asManager, "task-1")
			return err
		}},
		{"加急-经理", func(s HousekeepingService) error {
			_, err := s.ToggleRush(context.Background(), asManager, "task-1", true)
			return err
		}},
		{"退房时间-维修工", func(s HousekeepingService) error {
			_, err := s.SetCheckoutTime(context.Background(), asMaintenance, "task-1", strPtr("11:00"))
			return err
		}},
	}

	for _, cmd := range commands {
		t.Run(cmd.name, func(t *testing.T) {
			svc, env := setupTestHousekeepingService()
			env.seedTask("task-1", "101", "hk-1", testToday, model.TaskStatusInspected)

			err := cmd.run(svc)
			if !errors.Is(err, ErrTaskInspected) {
				t.Errorf("期望 ErrTaskInspected，实际: %v", err)
			}
			if !pkgerrors.Is(err, pkgerrors.Conflict) {
				t.Errorf("期望 Conflict 类别，实际=%v", pkgerrors.KindOf(err))
			}
			stored := env.tasks.tasks["task-1"]
			if stored.Status != model.TaskStatusInspected || stored.IsRush || stored.CheckoutTime != nil {
				t.Error("已查房任务不应被修改")
			}
		})
	}
}

// ── 时间戳派生 ──

func TestHousekeepingService_Timestamps(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("task-1", "101", "hk-1", testToday, model.TaskStatusDirty)
	ctx := context.Background()

	t1 := testNow
	t2 := testNow.Add(20 * time.Minute)
	t3 := testNow.Add(40 * time.Minute)

	if _, err := svc.UpdateOwnStatus(ctx, at(asHousekeeper, t1), "task-1", "cleaning"); err != nil {
		t.Fatalf("进入 cleaning 应成功: %v", err)
	}
	if got := env.tasks.tasks["task-1"].StartedAt; got == nil || !got.Equal(t1) {
		t.Fatalf("startedAt 应为 t1，实际=%v", got)
	}

	// 回退到 dirty 再进入 cleaning，startedAt 不变
	if _, err := svc.UpdateOwnStatus(ctx, at(asHousekeeper, t2), "task-1", "dirty"); err != nil {
		t.Fatalf("回退 dirty 应成功: %v", err)
	}
	if _, err := svc.UpdateOwnStatus(ctx, at(asHousekeeper, t2), "task-1", "cleaning"); err != nil {
		t.Fatalf("再次进入 cleaning 应成功: %v", err)
	}
	if got := env.tasks.tasks["task-1"].StartedAt; !got.Equal(t1) {
		t.Errorf("startedAt 不应被重置，实际=%v", got)
	}

	// ready_for_inspection 每次都刷新 finishedAt
	resp, err := svc.UpdateOwnStatus(ctx, at(asHousekeeper, t2), "task-1", "ready_for_inspection")
	if err != nil {
		t.Fatalf("进入 ready_for_inspection 应成功: %v", err)
	}
	if resp.FinishedAt == nil || !resp.FinishedAt.Equal(t2) {
		t.Errorf("finishedAt 应为 t2，实际=%v", resp.FinishedAt)
	}
	if _, err := svc.UpdateAnyStatus(ctx, at(asHead, t3), "task-1", "cleaning"); err != nil {
		t.Fatalf("领班回退应成功: %v", err)
	}
	if got := env.tasks.tasks["task-1"].FinishedAt; !got.Equal(t2) {
		t.Errorf("finishedAt 不应被清除，实际=%v", got)
	}
	if _, err := svc.UpdateAnyStatus(ctx, at(asHead, t3), "task-1", "ready_for_inspection"); err != nil {
		t.Fatalf("再次进入 ready_for_inspection 应成功: %v", err)
	}
	stored := env.tasks.tasks["task-1"]
	if !stored.FinishedAt.Equal(t3) {
		t.Errorf("finishedAt 应刷新为 t3，实际=%v", stored.FinishedAt)
	}
	if !stored.StartedAt.Equal(t1) {
		t.Errorf("startedAt 应保持 t1，实际=%v", stored.StartedAt)
	}
	if !stored.UpdatedAt.Equal(t3) {
		t.Errorf("updatedAt 应为 t3，实际=%v", stored.UpdatedAt)
	}
}

// ── UpdateOwnStatus 测试 ──

func TestHousekeepingService_UpdateOwnStatus_NotOwner(t *testing.T) {
	for _, status := range []string{"dirty", "cleaning", "ready_for_inspection"} {
		t.Run(status, func(t *testing.T) {
			svc, env := setupTestHousekeepingService()
			env.seedTask("task-1", "101", "hk-1", testToday, model.TaskStatusCleaning)

			_, err := svc.UpdateOwnStatus(context.Background(), asOther, "task-1", status)
			if !errors.Is(err, ErrNotTaskOwner) {
				t.Errorf("期望 ErrNotTaskOwner，实际: %v", err)
			}
			if !pkgerrors.Is(err, pkgerrors.Forbidden) {
				t.Errorf("期望 Forbidden 类别，实际=%v", pkgerrors.KindOf(err))
			}
		})
	}
}

func TestHousekeepingService_UpdateOwnStatus_HeadHousekeeperOwnTask(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("task-1", "301", "head-1", testToday, model.TaskStatusDirty)

	resp, err := svc.UpdateOwnStatus(context.Background(), asHead, "task-1", "cleaning")
	if err != nil {
		t.Fatalf("领班更新自己的任务应成功: %v", err)
	}
	if resp.Status != "cleaning" {
		t.Errorf("期望Status=cleaning，实际=%s", resp.Status)
	}
}

func TestHousekeepingService_UpdateOwnStatus_GuardOrder(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("task-1", "101", "hk-1", testToday, model.TaskStatusDirty)
	env.seedTask("task-2", "102", "hk-2", testToday, model.TaskStatusInspected)
	ctx := context.Background()

	// 角色先于一切
	if _, err := svc.UpdateOwnStatus(ctx, asManager, "missing", "bogus"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("经理应被拒绝，实际: %v", err)
	}
	// 目标状态先于存在性
	for _, status := range []string{"inspected", "stayover", "bogus", ""} {
		if _, err := svc.UpdateOwnStatus(ctx, asHousekeeper, "missing", status); !errors.Is(err, ErrInvalidTaskStatus) {
			t.Errorf("目标状态 %q 期望 ErrInvalidTaskStatus，实际: %v", status, err)
		}
	}
	// 存在性
	if _, err := svc.UpdateOwnStatus(ctx, asHousekeeper, "missing", "cleaning"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
	// 已查房先于归属
	if _, err := svc.UpdateOwnStatus(ctx, asHousekeeper, "task-2", "cleaning"); !errors.Is(err, ErrTaskInspected) {
		t.Errorf("期望 ErrTaskInspected，实际: %v", err)
	}
}

func TestHousekeepingService_Stayover_NoExit(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("task-1", "101", "hk-1", testToday, model.TaskStatusStayover)
	ctx := context.Background()

	if _, err := svc.UpdateOwnStatus(ctx, asHousekeeper, "task-1", "cleaning"); !errors.Is(err, ErrTaskStayover) {
		t.Errorf("本人更新期望 ErrTaskStayover，实际: %v", err)
	}
	if _, err := svc.UpdateAnyStatus(ctx, asHead, "task-1", "dirty"); !errors.Is(err, ErrTaskStayover) {
		t.Errorf("任意更新期望 ErrTaskStayover，实际: %v", err)
	}
	// 他人的续住房仍先报归属错误
	if _, err := svc.UpdateOwnStatus(ctx, asOther, "task-1", "cleaning"); !errors.Is(err, ErrNotTaskOwner) {
		t.Errorf("期望 ErrNotTaskOwner，实际: %v", err)
	}
	if _, err := svc.MarkInspected(ctx, asHead, "task-1"); !errors.Is(err, ErrTaskNotReady) {
		t.Errorf("续住房不能查房，实际: %v", err)
	}
	if env.tasks.tasks["task-1"].Status != model.TaskStatusStayover {
		t.Error("续住状态不应被改变")
	}
}

// ── SetStayover 测试 ──

func TestHousekeepingService_SetStayover_OnlyManager(t *testing.T) {
	for _, p := range []Principal{asHead, asHousekeeper, asMaintenance} {
		t.Run(string(p.Role), func(t *testing.T) {
			svc, env := setupTestHousekeepingService()
			env.seedTask("task-1", "101", "hk-1", testToday, model.TaskStatusDirty)

			_, err := svc.SetStayover(context.Background(), p, "task-1")
			if !errors.Is(err, ErrPermissionDenied) {
				t.Errorf("期望 ErrPermissionDenied，实际: %v", err)
			}
		})
	}
}

func TestHousekeepingService_SetStayover_FromAnyNonTerminal(t *testing.T) {
	for _, from := range []model.TaskStatus{model.TaskStatusDirty, model.TaskStatusCleaning, model.TaskStatusReadyForInspection, model.TaskStatusStayover} {
		t.Run(string(from), func(t *testing.T) {
			svc, env := setupTestHousekeepingService()
			env.seedTask("task-1", "101", "hk-1", testToday, from)

			resp, err := svc.SetStayover(context.Background(), asManager, "task-1")
			if err != nil {
				t.Fatalf("SetStayover 应成功: %v", err)
			}
			if resp.Status != "stayover" || env.tasks.tasks["task-1"].Status != model.TaskStatusStayover {
				t.Errorf("期望Status=stayover，实际=%s", resp.Status)
			}
		})
	}
}

func TestHousekeepingService_SetStayover_NotFound(t *testing.T) {
	svc, _ := setupTestHousekeepingService()

	_, err := svc.SetStayover(context.Background(), asManager, "missing")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
}

// ── MarkInspected 测试 ──

func TestHousekeepingService_MarkInspected(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("task-1", "101", "hk-1", testToday, model.TaskStatusReadyForInspection)
	env.seedTask("task-2", "102", "hk-1", testToday, model.TaskStatusCleaning)
	ctx := context.Background()

	if _, err := svc.MarkInspected(ctx, asHousekeeper, "task-1"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("保洁员不能查房，实际: %v", err)
	}
	if _, err := svc.MarkInspected(ctx, asHead, "task-2"); !errors.Is(err, ErrTaskNotReady) {
		t.Errorf("期望 ErrTaskNotReady，实际: %v", err)
	}
	resp, err := svc.MarkInspected(ctx, asHead, "task-1")
	if err != nil {
		t.Fatalf("MarkInspected 应成功: %v", err)
	}
	if resp.Status != "inspected" {
		t.Errorf("期望Status=inspected，实际=%s", resp.Status)
	}
}

// ── ToggleRush / SetCheckoutTime 测试 ──

func TestHousekeepingService_ToggleRush(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("task-1", "101", "hk-1", testToday, model.TaskStatusStayover)
	ctx := context.Background()

	if _, err := svc.ToggleRush(ctx, asHousekeeper, "task-1", true); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("保洁员不能设置加急，实际: %v", err)
	}
	if _, err := svc.ToggleRush(ctx, asHead, "task-1", true); err != nil {
		t.Fatalf("ToggleRush 应成功: %v", err)
	}
	stored := env.tasks.tasks["task-1"]
	if !stored.IsRush {
		t.Error("期望 IsRush=true")
	}
	if stored.Status != model.TaskStatusStayover {
		t.Error("加急不影响状态")
	}
	if _, err := svc.ToggleRush(ctx, asManager, "task-1", false); err != nil {
		t.Fatalf("取消加急应成功: %v", err)
	}
	if env.tasks.tasks["task-1"].IsRush {
		t.Error("期望 IsRush=false")
	}
	if _, err := svc.ToggleRush(ctx, asManager, "missing", true); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
}

func TestHousekeepingService_SetCheckoutTime(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("task-1", "101", "hk-1", testToday, model.TaskStatusDirty)
	ctx := context.Background()

	// 任何角色都可设置
	for _, p := range []Principal{asManager, asHead, asHousekeeper, asOther, asMaintenance} {
		if _, err := svc.SetCheckoutTime(ctx, p, "task-1", strPtr(" 11:30 ")); err != nil {
			t.Fatalf("%s 设置退房时间应成功: %v", p.Role, err)
		}
	}
	got := env.tasks.tasks["task-1"].CheckoutTime
	if got == nil || *got != "11:30" {
		t.Errorf("期望 11:30，实际=%v", got)
	}

	// 不校验内容
	if _, err := svc.SetCheckoutTime(ctx, asHousekeeper, "task-1", strPtr("late")); err != nil {
		t.Fatalf("自由文本应被接受: %v", err)
	}

	// 空值清除
	for _, v := range []*string{strPtr("   "), nil} {
		if _, err := svc.SetCheckoutTime(ctx, asHousekeeper, "task-1", v); err != nil {
			t.Fatalf("清除退房时间应成功: %v", err)
		}
		if env.tasks.tasks["task-1"].CheckoutTime != nil {
			t.Error("退房时间应被清除")
		}
		env.tasks.tasks["task-1"].CheckoutTime = strPtr("10:00")
	}

	if _, err := svc.SetCheckoutTime(ctx, asHousekeeper, "missing", strPtr("10:00")); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
}

// ── 看板测试 ──

func TestHousekeepingService_ListBoardTasks_Ordering(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("t-101", "101", "hk-1", testToday, model.TaskStatusDirty)
	env.seedTask("t-9", "9", "hk-2", testToday, model.TaskStatusCleaning).IsRush = true
	env.seedTask("t-102", "102", "hk-1", testToday, model.TaskStatusDirty)
	env.seedTask("t-old", "100", "hk-1", "2026-03-13", model.TaskStatusDirty)

	rows, err := svc.ListBoardTasks(context.Background(), asManager)
	if err != nil {
		t.Fatalf("ListBoardTasks 应成功: %v", err)
	}

	want := []string{"9", "101", "102"}
	if len(rows) != len(want) {
		t.Fatalf("期望%d行，实际=%d", len(want), len(rows))
	}
	for i, room := range want {
		if rows[i].RoomNumber != room {
			t.Errorf("第%d行期望房号=%s，实际=%s", i, room, rows[i].RoomNumber)
		}
	}
	if rows[0].HousekeeperName != "Bela" {
		t.Errorf("期望保洁员姓名=Bela，实际=%s", rows[0].HousekeeperName)
	}
}

func TestHousekeepingService_ListBoardTasks_LexicographicRooms(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("a", "20", "hk-1", testToday, model.TaskStatusDirty)
	env.seedTask("b", "100", "hk-1", testToday, model.TaskStatusDirty)
	env.seedTask("c", "3", "hk-1", testToday, model.TaskStatusDirty)

	rows, err := svc.ListBoardTasks(context.Background(), asHead)
	if err != nil {
		t.Fatalf("ListBoardTasks 应成功: %v", err)
	}
	got := []string{rows[0].RoomNumber, rows[1].RoomNumber, rows[2].RoomNumber}
	if got[0] != "100" || got[1] != "20" || got[2] != "3" {
		t.Errorf("房号应按字符串排序，实际=%v", got)
	}
}

func TestHousekeepingService_ListBoardTasks_DerivedFlags(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("t-1", "101", "hk-1", testToday, model.TaskStatusDirty)
	env.seedTask("t-2", "102", "hk-1", testToday, model.TaskStatusDirty)
	env.notes.notes = append(env.notes.notes, &model.HousekeepingNote{NoteID: "n-1", TaskID: "t-1", AuthorID: "hk-1", Text: "no towels"})
	env.seedTicket("tk-1", "102", model.TicketPriorityNormal, model.TicketStatusOpen, testNow, strPtr("t-2"))

	rows, err := svc.ListBoardTasks(context.Background(), asHead)
	if err != nil {
		t.Fatalf("ListBoardTasks 应成功: %v", err)
	}
	if !rows[0].HasNote || *rows[0].HasMaintenance {
		t.Errorf("101 期望 has_note=true has_maintenance=false，实际=%v/%v", rows[0].HasNote, *rows[0].HasMaintenance)
	}
	if rows[1].HasNote || !*rows[1].HasMaintenance {
		t.Errorf("102 期望 has_note=false has_maintenance=true，实际=%v/%v", rows[1].HasNote, *rows[1].HasMaintenance)
	}
}

func TestHousekeepingService_ListBoardTasks_Forbidden(t *testing.T) {
	svc, _ := setupTestHousekeepingService()

	for _, p := range []Principal{asHousekeeper, asMaintenance} {
		if _, err := svc.ListBoardTasks(context.Background(), p); !errors.Is(err, ErrPermissionDenied) {
			t.Errorf("%s 期望 ErrPermissionDenied，实际: %v", p.Role, err)
		}
	}
}

func TestHousekeepingService_ListOwnTasks(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("t-1", "205", "hk-1", testToday, model.TaskStatusDirty)
	env.seedTask("t-2", "204", "hk-1", testToday, model.TaskStatusDirty)
	env.seedTask("t-3", "203", "hk-2", testToday, model.TaskStatusDirty)
	env.seedTask("t-4", "202", "hk-1", "2026-03-15", model.TaskStatusDirty)
	env.seedTicket("tk-1", "205", model.TicketPriorityRush, model.TicketStatusOpen, testNow, strPtr("t-1"))

	rows, err := svc.ListOwnTasks(context.Background(), asHousekeeper)
	if err != nil {
		t.Fatalf("ListOwnTasks 应成功: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("只应返回本人当天任务，期望2，实际=%d", len(rows))
	}
	if rows[0].RoomNumber != "204" || rows[1].RoomNumber != "205" {
		t.Errorf("排序错误: %s, %s", rows[0].RoomNumber, rows[1].RoomNumber)
	}
	if *rows[0].HasMaintenance || !*rows[1].HasMaintenance {
		t.Error("has_maintenance 派生错误")
	}

	if _, err := svc.ListOwnTasks(context.Background(), asManager); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("经理没有自己的任务列表，实际: %v", err)
	}
}

// ── 备注测试 ──

func TestHousekeepingService_Notes(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("task-1", "101", "hk-1", testToday, model.TaskStatusCleaning)
	ctx := context.Background()

	if _, err := svc.AddNote(ctx, asManager, "task-1", "x"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("经理不能添加备注，实际: %v", err)
	}
	if _, err := svc.AddNote(ctx, asHousekeeper, "task-1", "   "); !errors.Is(err, ErrNoteTextRequired) {
		t.Errorf("期望 ErrNoteTextRequired，实际: %v", err)
	}
	if _, err := svc.AddNote(ctx, asHousekeeper, "missing", "x"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}

	if _, err := svc.AddNote(ctx, at(asHousekeeper, testNow.Add(time.Minute)), "task-1", "broken lamp"); err != nil {
		t.Fatalf("AddNote 应成功: %v", err)
	}
	note, err := svc.AddNote(ctx, asHead, "task-1", "checked")
	if err != nil {
		t.Fatalf("AddNote 应成功: %v", err)
	}
	if note.HasPhoto {
		t.Error("has_photo 应恒为 false")
	}

	notes, err := svc.ListNotes(ctx, asManager, "task-1")
	if err != nil {
		t.Fatalf("ListNotes 应成功: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("期望2条备注，实际=%d", len(notes))
	}
	if notes[0].Text != "checked" || notes[0].AuthorName != "Hanna" {
		t.Errorf("应按创建时间升序，实际首条=%s/%s", notes[0].Text, notes[0].AuthorName)
	}
	if notes[1].AuthorName != "Ana" {
		t.Errorf("期望作者=Ana，实际=%s", notes[1].AuthorName)
	}

	if _, err := svc.ListNotes(ctx, asManager, "missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
	if _, err := svc.ListNotes(ctx, asHousekeeper, "task-1"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("保洁员不能查看备注列表，实际: %v", err)
	}
}

// ── ResetToday / DeleteTask 测试 ──

func TestHousekeepingService_ResetToday(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("t-1", "101", "hk-1", testToday, model.TaskStatusDirty)
	env.seedTask("t-2", "102", "hk-2", testToday, model.TaskStatusInspected)
	env.seedTask("t-3", "103", "hk-1", "2026-03-13", model.TaskStatusDirty)
	env.seedTask("t-4", "104", "hk-1", "2026-03-15", model.TaskStatusDirty)

	if _, err := svc.ResetToday(context.Background(), asHousekeeper); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("保洁员不能重置，实际: %v", err)
	}

	result, err := svc.ResetToday(context.Background(), asHead)
	if err != nil {
		t.Fatalf("ResetToday 应成功: %v", err)
	}
	if result.Deleted != 2 {
		t.Errorf("期望删除2条，实际=%d", result.Deleted)
	}
	if result.Date != testToday {
		t.Errorf("期望Date=%s，实际=%s", testToday, result.Date)
	}
	if _, ok := env.tasks.tasks["t-3"]; !ok {
		t.Error("其他日期的任务不应被删除")
	}
	if _, ok := env.tasks.tasks["t-4"]; !ok {
		t.Error("其他日期的任务不应被删除")
	}
}

func TestHousekeepingService_DeleteTask(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("task-1", "101", "hk-1", testToday, model.TaskStatusInspected)
	ctx := context.Background()

	if err := svc.DeleteTask(ctx, asHousekeeper, "task-1"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("保洁员不能删除任务，实际: %v", err)
	}
	if err := svc.DeleteTask(ctx, asManager, "task-1"); err != nil {
		t.Fatalf("DeleteTask 应成功（已查房任务也可删除）: %v", err)
	}
	if err := svc.DeleteTask(ctx, asManager, "task-1"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("重复删除期望 ErrTaskNotFound，实际: %v", err)
	}
}

// ── 存储故障 ──

func TestHousekeepingService_StoreUnavailable(t *testing.T) {
	svc, env := setupTestHousekeepingService()
	env.seedTask("task-1", "101", "hk-1", testToday, model.TaskStatusDirty)
	env.tasks.err = errStoreDown

	_, err := svc.UpdateOwnStatus(context.Background(), asHousekeeper, "task-1", "cleaning")
	if !pkgerrors.Is(err, pkgerrors.StoreUnavailable) {
		t.Errorf("期望 StoreUnavailable，实际: %v", err)
	}
	if !errors.Is(err, errStoreDown) {
		t.Error("应保留底层错误")
	}

	if _, err := svc.ListBoardTasks(context.Background(), asHead); !pkgerrors.Is(err, pkgerrors.StoreUnavailable) {
		t.Errorf("期望 StoreUnavailable，实际: %v", err)
	}
}
