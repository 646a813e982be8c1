package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"blood-portal/internal/domain"
)

type InventoryService struct {
	repo domain.InventoryRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewInventoryService(repo domain.InventoryRepository, l *zap.Logger) *InventoryService {
	if l == nil {
		l = zap.NewNop()
	}
	return &InventoryService{repo: repo, log: l, now: utcNow}
}

func (s *InventoryService) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return recs, nil
}

// Set 覆盖（不是累加）某血型的库存数量，首次写入时建行
func (s *InventoryService) Set(ctx context.Context, bloodGroup string, units int) (*domain.InventoryRecord, error) {
	g, err := domain.ParseBloodGroup(bloodGroup)
	if err != nil {
		return nil, err
	}
	if units < 0 {
		return nil, domain.Validation("Units available cannot be negative")
	}
	rec := &domain.InventoryRecord{BloodGroup: g, UnitsAvailable: units, LastUpdated: s.now()}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("upsert inventory: %w", err)
	}
	s.log.Info("inventory updated", zap.String("bloodGroup", string(g)), zap.Int("units", units))
	return rec, nil
}
