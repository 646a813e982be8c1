package domain

import (
	"context"
	"time"
)

// 每个血型一行，首次 upsert 时创建
type InventoryRecord struct {
	BloodGroup     BloodGroup `gorm:"primaryKey;size:3" json:"bloodGroup"`
	UnitsAvailable int        `gorm:"not null" json:"unitsAvailable"`
	LastUpdated    time.Time  `gorm:"not null" json:"lastUpdated"`
}

func (InventoryRecord) TableName() string { return "inventory" }

type InventoryRepository interface {
	List(ctx context.Context) ([]InventoryRecord, error)
	Upsert(ctx context.Context, rec *InventoryRecord) error
	SumUnits(ctx context.Context) (int64, error)
}
