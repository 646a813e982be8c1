package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"blood-portal/internal/domain"
)

type UserRepo struct {
	crud[domain.User]
}

var _ domain.UserRepository = (*UserRepo)(nil)

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{crud[domain.User]{db: db, order: "created_at DESC"}}
}

// Create 服务层已做先查后写；并发注册时落败的一方在这里由唯一索引拦下
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.create(ctx, u)
	if !isDupKey(err) {
		return err
	}
	return r.duplicateOf(ctx, u)
}

// duplicateOf 翻译后的唯一键错误不带列名，只能回查 email 判定；回查失败时不猜测
func (r *UserRepo) duplicateOf(ctx context.Context, u *domain.User) error {
	other, err := r.FindByEmail(ctx, u.Email)
	switch {
	case err != nil:
		return domain.Duplicate("Email or username already registered")
	case other != nil:
		return domain.Duplicate("Email already registered")
	default:
		return domain.Duplicate("Username already taken")
	}
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", normalizeIdent(email))
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "username = ?", normalizeIdent(username))
}

func (r *UserRepo) FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.User, error) {
	id := normalizeIdent(identifier)
	if id == "" {
		return nil, nil
	}
	return r.first(ctx, "email = ? OR username = ?", id, id)
}

func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	total, err := r.count(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	users := make([]domain.User, 0, limit)
	err = r.db.WithContext(ctx).
		Order(r.order).
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Save(u).Error
	if isDupKey(err) {
		return domain.Duplicate("Email already in use")
	}
	return err
}

func (r *UserRepo) UpdateRole(ctx context.Context, id string, role domain.Role) (bool, error) {
	return r.updateByID(ctx, id, map[string]any{"role": role})
}

func normalizeIdent(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
