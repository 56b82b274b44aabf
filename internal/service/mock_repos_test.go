package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"hotel-ops/internal/model"
	"hotel-ops/internal/repository"
)

// errStoreDown 模拟数据库故障
var errStoreDown = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	err   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.err != nil {
		return m.err
	}
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRoles(_ context.Context, roles []model.Role) ([]model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.User
	for _, u := range m.users {
		if len(roles) == 0 || u.Role.In(roles...) {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock HousekeepingTaskRepository ──

type mockTaskRepo struct {
	tasks map[string]*model.HousekeepingTask
	users *mockUserRepo
	seq   int
	err   error

	// createLimit >= 0 时，第 createLimit+1 次 Create 起返回 errStoreDown
	createLimit int
	creates     int
}

func newMockTaskRepo(users *mockUserRepo) *mockTaskRepo {
	return &mockTaskRepo{
		tasks:       make(map[string]*model.HousekeepingTask),
		users:       users,
		createLimit: -1,
	}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.HousekeepingTask) error {
	if m.err != nil {
		return m.err
	}
	if m.createLimit >= 0 && m.creates >= m.createLimit {
		return errStoreDown
	}
	m.creates++
	if task.TaskID == "" {
		m.seq++
		task.TaskID = fmt.Sprintf("task-%03d", m.seq)
	}
	stored := *task
	m.tasks[task.TaskID] = &stored
	return nil
}

// GetByID 返回副本，未经 UpdateFields 的修改不会落库
func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.HousekeepingTask, error) {
	if m.err != nil {
		return nil, m.err
	}
	if t, ok := m.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	if m.err != nil {
		return m.err
	}
	t, ok := m.tasks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			t.Status = v.(model.TaskStatus)
		case "is_rush":
			t.IsRush = v.(bool)
		case "started_at":
			ts := v.(time.Time)
			t.StartedAt = &ts
		case "finished_at":
			ts := v.(time.Time)
			t.FinishedAt = &ts
		case "checkout_time":
			t.CheckoutTime = v.(*string)
		case "updated_at":
			t.UpdatedAt = v.(time.Time)
		default:
			return fmt.Errorf("mockTaskRepo: unexpected field %q", k)
		}
	}
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if _, ok := m.tasks[id]; !ok {
		return 0, nil
	}
	delete(m.tasks, id)
	return 1, nil
}

func (m *mockTaskRepo) DeleteByDate(_ context.Context, workDate string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for id, t := range m.tasks {
		if t.WorkDate == workDate {
			delete(m.tasks, id)
			n++
		}
	}
	return n, nil
}

// ListByDate 不排序，顺序由 Service 保证
func (m *mockTaskRepo) ListByDate(_ context.Context, workDate, housekeeperID string) ([]model.HousekeepingTask, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.HousekeepingTask
	for _, t := range m.tasks {
		if t.WorkDate != workDate {
			continue
		}
		if housekeeperID != "" && t.HousekeeperID != housekeeperID {
			continue
		}
		row := *t
		if m.users != nil {
			row.Housekeeper = m.users.users[t.HousekeeperID]
		}
		result = append(result, row)
	}
	return result, nil
}

// ── Mock HousekeepingNoteRepository ──

type mockNoteRepo struct {
	notes []*model.HousekeepingNote
	users *mockUserRepo
	seq   int
	err   error
}

func newMockNoteRepo(users *mockUserRepo) *mockNoteRepo {
	return &mockNoteRepo{users: users}
}

func (m *mockNoteRepo) Create(_ context.Context, note *model.HousekeepingNote) error {
	if m.err != nil {
		return m.err
	}
	m.seq++
	note.NoteID = fmt.Sprintf("note-%03d", m.seq)
	stored := *note
	m.notes = append(m.notes, &stored)
	return nil
}

func (m *mockNoteRepo) ListByTask(_ context.Context, taskID string) ([]model.HousekeepingNote, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.HousekeepingNote
	for _, n := range m.notes {
		if n.TaskID == taskID {
			row := *n
			row.Author = m.users.users[n.AuthorID]
			result = append(result, row)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *mockNoteRepo) TaskIDsWithNotes(_ context.Context, taskIDs []string) (map[string]bool, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make(map[string]bool)
	for _, id := range taskIDs {
		for _, n := range m.notes {
			if n.TaskID == id {
				result[id] = true
				break
			}
		}
	}
	return result, nil
}

// ── Mock MaintenanceTicketRepository ──

type mockTicketRepo struct {
	tickets map[string]*model.MaintenanceTicket
	seq     int
	err     error
}

func newMockTicketRepo() *mockTicketRepo {
	return &mockTicketRepo{tickets: make(map[string]*model.MaintenanceTicket)}
}

func (m *mockTicketRepo) Create(_ context.Context, ticket *model.MaintenanceTicket) error {
	if m.err != nil {
		return m.err
	}
	if ticket.TicketID == "" {
		m.seq++
		ticket.TicketID = fmt.Sprintf("ticket-%03d", m.seq)
	}
	stored := *ticket
	m.tickets[ticket.TicketID] = &stored
	return nil
}

func (m *mockTicketRepo) GetByID(_ context.Context, id string) (*model.MaintenanceTicket, error) {
	if m.err != nil {
		return nil, m.err
	}
	if t, ok := m.tickets[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTicketRepo) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	if m.err != nil {
		return m.err
	}
	t, ok := m.tickets[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			t.Status = v.(model.TicketStatus)
		case "priority":
			t.Priority = v.(model.TicketPriority)
		case "updated_at":
			t.UpdatedAt = v.(time.Time)
		default:
			return fmt.Errorf("mockTicketRepo: unexpected field %q", k)
		}
	}
	return nil
}

func (m *mockTicketRepo) Delete(_ context.Context, id string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if _, ok := m.tickets[id]; !ok {
		return 0, nil
	}
	delete(m.tickets, id)
	return 1, nil
}

func (m *mockTicketRepo) List(_ context.Context, statuses []model.TicketStatus) ([]model.MaintenanceTicket, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.MaintenanceTicket
	for _, t := range m.tickets {
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if t.Status == s {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTicketRepo) TaskIDsWithTickets(_ context.Context, taskIDs []string) (map[string]bool, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make(map[string]bool)
	for _, id := range taskIDs {
		for _, t := range m.tickets {
			if t.HousekeepingTaskID != nil && *t.HousekeepingTaskID == id {
				result[id] = true
				break
			}
		}
	}
	return result, nil
}

// ── 测试环境 ──

var (
	testNow   = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	testToday = "2026-03-14"
)

type testEnv struct {
	repo    *repository.Repository
	users   *mockUserRepo
	tasks   *mockTaskRepo
	notes   *mockNoteRepo
	tickets *mockTicketRepo
}

// newTestEnv 预置五个用户：经理、领班、两名保洁员、维修工
func newTestEnv() *testEnv {
	users := newMockUserRepo()
	env := &testEnv{
		users:   users,
		tasks:   newMockTaskRepo(users),
		notes:   newMockNoteRepo(users),
		tickets: newMockTicketRepo(),
	}
	env.repo = &repository.Repository{
		User:              env.users,
		HousekeepingTask:  env.tasks,
		HousekeepingNote:  env.notes,
		MaintenanceTicket: env.tickets,
	}

	for _, u := range []model.User{
		{UserID: "mgr-1", Name: "Maria", Username: "maria", Role: model.RoleManager},
		{UserID: "head-1", Name: "Hanna", Username: "hanna", Role: model.RoleHeadHousekeeper},
		{UserID: "hk-1", Name: "Ana", Username: "ana", Role: model.RoleHousekeeper},
		{UserID: "hk-2", Name: "Bela", Username: "bela", Role: model.RoleHousekeeper},
		{UserID: "mt-1", Name: "Marko", Username: "marko", Role: model.RoleMaintenance},
	} {
		u := u
		u.DefaultLanguage = "en"
		env.users.users[u.UserID] = &u
	}
	return env
}

func (e *testEnv) seedTask(id, room, housekeeperID, date string, status model.TaskStatus) *model.HousekeepingTask {
	task := &model.HousekeepingTask{
		TaskID:        id,
		RoomNumber:    room,
		HousekeeperID: housekeeperID,
		WorkDate:      date,
		Status:        status,
	}
	task.CreatedAt = testNow.Add(-time.Hour)
	task.UpdatedAt = task.CreatedAt
	e.tasks.tasks[id] = task
	return task
}

func (e *testEnv) seedTicket(id, room string, priority model.TicketPriority, status model.TicketStatus, createdAt time.Time, taskID *string) *model.MaintenanceTicket {
	ticket := &model.MaintenanceTicket{
		TicketID:           id,
		RoomNumber:         room,
		CreatedByID:        "mgr-1",
		Description:        "leaking tap",
		Priority:           priority,
		Status:             status,
		HousekeepingTaskID: taskID,
	}
	ticket.CreatedAt = createdAt
	ticket.UpdatedAt = createdAt
	e.tickets.tickets[id] = ticket
	return ticket
}

func principal(userID string, role model.Role) Principal {
	return Principal{UserID: userID, Role: role, Now: testNow}
}

var (
	asManager     = principal("mgr-1", model.RoleManager)
	asHead        = principal("head-1", model.RoleHeadHousekeeper)
	asHousekeeper = principal("hk-1", model.RoleHousekeeper)
	asOther       = principal("hk-2", model.RoleHousekeeper)
	asMaintenance = principal("mt-1", model.RoleMaintenance)
)

func strPtr(s string) *string { return &s }
