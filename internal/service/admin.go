package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"blood-portal/internal/core/cache"
	"blood-portal/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// AdminService 管理端与运维 CLI 共用
type AdminService struct {
	users domain.UserRepository
	cache *cache.Cache
	log   *zap.Logger
}

func NewAdminService(users domain.UserRepository, c *cache.Cache, l *zap.Logger) *AdminService {
	if l == nil {
		l = zap.NewNop()
	}
	return &AdminService{users: users, cache: c, log: l}
}

func (s *AdminService) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	users, total, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (s *AdminService) SetRole(ctx context.Context, userID, role string) error {
	r := domain.Role(strings.ToLower(strings.TrimSpace(role)))
	if !r.Valid() {
		return domain.Validation("Role must be user or admin")
	}
	ok, err := s.users.UpdateRole(ctx, userID, r)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if !ok {
		return domain.NotFound("User not found")
	}
	s.cache.Delete(ctx, profileKeyPrefix+userID)
	s.log.Info("role changed", zap.String("uid", userID), zap.String("role", string(r)))
	return nil
}

// CurrentRole 用户不存在时返回空串
func (s *AdminService) CurrentRole(ctx context.Context, userID string) (string, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return "", nil
	}
	return string(u.Role), nil
}

// SetRoleByIdentifier identifier 为 username 或 email
func (s *AdminService) SetRoleByIdentifier(ctx context.Context, identifier, role string) (*domain.User, error) {
	u, err := s.users.FindByEmailOrUsername(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, domain.NotFound("User not found")
	}
	if err := s.SetRole(ctx, u.ID, role); err != nil {
		return nil, err
	}
	u.Role = domain.Role(strings.ToLower(strings.TrimSpace(role)))
	return u, nil
}
