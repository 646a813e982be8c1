package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blood-portal/internal/domain"
)

type InventoryRepo struct {
	crud[domain.InventoryRecord]
}

var _ domain.InventoryRepository = (*InventoryRepo)(nil)

func NewInventoryRepo(db *gorm.DB) *InventoryRepo {
	return &InventoryRepo{crud[domain.InventoryRecord]{db: db, order: "blood_group ASC"}}
}

func (r *InventoryRepo) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	return r.list(ctx)
}

// Upsert 单条语句完成，按 blood_group 冲突时覆盖数量与时间
func (r *InventoryRepo) Upsert(ctx context.Context, rec *domain.InventoryRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "blood_group"}},
			DoUpdates: clause.AssignmentColumns([]string{"units_available", "last_updated"}),
		}).
		Create(rec).Error
}

func (r *InventoryRepo) SumUnits(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&domain.InventoryRecord{}).
		Select("COALESCE(SUM(units_available), 0)").
		Scan(&sum).Error
	return sum, err
}
