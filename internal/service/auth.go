package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"blood-portal/internal/core/auth"
	"blood-portal/internal/core/cache"
	"blood-portal/internal/domain"
	"blood-portal/pkg/utils"
)

const (
	MinPasswordLen = 6
	MinUsernameLen = 3

	profileKeyPrefix  = "user:profile:"
	defaultProfileTTL = 5 * time.Minute
)

type RegisterInput struct {
	FullName        string
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

type ProfileUpdate struct {
	FullName string
	Email    string
}

type ChangePasswordInput struct {
	CurrentPassword    string
	NewPassword        string
	ConfirmNewPassword string
}

type AuthService struct {
	users      domain.UserRepository
	jwt        *auth.JWTer
	cache      *cache.Cache
	log        *zap.Logger
	now        func() time.Time
	ProfileTTL time.Duration
}

// NewAuthService c 可为 nil（不启用资料缓存）
func NewAuthService(users domain.UserRepository, j *auth.JWTer, c *cache.Cache, l *zap.Logger) *AuthService {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuthService{users: users, jwt: j, cache: c, log: l, now: utcNow, ProfileTTL: defaultProfileTTL}
}

// Register 先查 email 再查 username，然后写入。
// 查询与写入之间不加锁：并发注册同一身份时由唯一索引兜底，落败方同样得到 DuplicateIdentity。
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if anyBlank(in.FullName, in.Email, in.Username, in.Password, in.ConfirmPassword) {
		return nil, domain.Validation(msgAllFieldsRequired)
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.Validation("Passwords do not match")
	}
	if len(in.Password) < MinPasswordLen {
		return nil, domain.Validation("Password must be at least 6 characters long")
	}
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if len(username) < MinUsernameLen {
		return nil, domain.Validation("Username must be at least 3 characters long")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validEmail(email) {
		return nil, domain.Validation("Invalid email address")
	}

	if u, err := s.users.FindByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	} else if u != nil {
		return nil, domain.Duplicate("Email already registered")
	}
	if u, err := s.users.FindByUsername(ctx, username); err != nil {
		return nil, fmt.Errorf("find by username: %w", err)
	} else if u != nil {
		return nil, domain.Duplicate("Username already taken")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	u := &domain.User{
		ID:           utils.NewID(),
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user registered", zap.String("uid", u.ID), zap.String("username", u.Username))
	return u, nil
}

// Login identifier 可以是 email 或 username；不区分“用户不存在”与“密码错误”
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	if anyBlank(identifier, password) {
		return "", nil, domain.Validation(msgAllFieldsRequired)
	}
	u, err := s.users.FindByEmailOrUsername(ctx, identifier)
	if err != nil {
		return "", nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, domain.InvalidCredentials()
	}
	tok, err := s.jwt.Issue(identityOf(u))
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	s.log.Info("user logged in", zap.String("uid", u.ID))
	return tok, u, nil
}

// Profile 读穿缓存；缓存里的副本不含密码哈希
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := cache.GetOrLoadJSON(s.cache, ctx, profileKeyPrefix+userID, s.ProfileTTL,
		func(ctx context.Context) (*domain.User, error) {
			return s.mustFind(ctx, userID)
		})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("User not found")
	}
	return u, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*domain.User, error) {
	u, err := s.mustFind(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" && email != u.Email {
		if !validEmail(email) {
			return nil, domain.Validation("Invalid email address")
		}
		other, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("find by email: %w", err)
		}
		if other != nil {
			return nil, domain.Duplicate("Email already in use")
		}
		u.Email = email
	}
	if name := strings.TrimSpace(in.FullName); name != "" {
		u.FullName = name
	}
	u.UpdatedAt = s.now()

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.cache.Delete(ctx, profileKeyPrefix+userID)
	return u, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID string, in ChangePasswordInput) error {
	if anyBlank(in.CurrentPassword, in.NewPassword, in.ConfirmNewPassword) {
		return domain.Validation(msgAllFieldsRequired)
	}
	if in.NewPassword != in.ConfirmNewPassword {
		return domain.Validation("New passwords do not match")
	}
	if len(in.NewPassword) < MinPasswordLen {
		return domain.Validation("Password must be at least 6 characters long")
	}
	u, err := s.mustFind(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(in.CurrentPassword, u.PasswordHash) {
		return domain.Validation("Current password is incorrect")
	}
	hash, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	u.UpdatedAt = s.now()
	if err := s.users.Update(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	s.log.Info("password changed", zap.String("uid", u.ID))
	return nil
}

func (s *AuthService) mustFind(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, domain.NotFound("User not found")
	}
	return u, nil
}

func identityOf(u *domain.User) auth.Identity {
	return auth.Identity{UserID: u.ID, Username: u.Username, Email: u.Email, Role: string(u.Role)}
}
