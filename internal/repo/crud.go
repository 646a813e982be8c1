package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"blood-portal/internal/domain"
)

// crud 是各资源仓储共用的最小操作集，T 为 gorm 模型（主键列 id）
type crud[T any] struct {
	db    *gorm.DB
	order string // 列表排序，如 "registered_date DESC"
}

func (c crud[T]) list(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	q := c.db.WithContext(ctx)
	if c.order != "" {
		q = q.Order(c.order)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (c crud[T]) create(ctx context.Context, m *T) error {
	return c.db.WithContext(ctx).Create(m).Error
}

// deleteByID 不存在的 id 不算错误
func (c crud[T]) deleteByID(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error
}

// updateByID 返回记录是否存在。
// mysql 对值未变化的行 RowsAffected 为 0，所以为 0 时再确认一次是否存在
func (c crud[T]) updateByID(ctx context.Context, id string, fields map[string]any) (bool, error) {
	res := c.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	n, err := c.count(ctx, "id = ?", id)
	return n > 0, err
}

func (c crud[T]) count(ctx context.Context, query any, args ...any) (int64, error) {
	var n int64
	q := c.db.WithContext(ctx).Model(new(T))
	if query != nil {
		q = q.Where(query, args...)
	}
	err := q.Count(&n).Error
	return n, err
}

func (c crud[T]) first(ctx context.Context, query any, args ...any) (*T, error) {
	m := new(T)
	err := c.db.WithContext(ctx).Where(query, args...).First(m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 驱动未实现 ErrorTranslator 时按错误文本兜底
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Donor{},
		&domain.BloodRequest{},
		&domain.InventoryRecord{},
	)
}
