package service

import (
	"context"
	"fmt"

	"blood-portal/internal/domain"
)

type StatsService struct {
	donors    domain.DonorRepository
	requests  domain.RequestRepository
	inventory domain.InventoryRepository
}

func NewStatsService(d domain.DonorRepository, r domain.RequestRepository, i domain.InventoryRepository) *StatsService {
	return &StatsService{donors: d, requests: r, inventory: i}
}

// Compute 每次实时查询，不做缓存；各项计数之间不保证同一快照
func (s *StatsService) Compute(ctx context.Context) (domain.Statistics, error) {
	var st domain.Statistics
	var err error

	if st.TotalDonors, err = s.donors.Count(ctx); err != nil {
		return domain.Statistics{}, fmt.Errorf("count donors: %w", err)
	}
	if st.AvailableDonors, err = s.donors.CountAvailable(ctx); err != nil {
		return domain.Statistics{}, fmt.Errorf("count available donors: %w", err)
	}
	if st.TotalRequests, err = s.requests.Count(ctx); err != nil {
		return domain.Statistics{}, fmt.Errorf("count requests: %w", err)
	}
	if st.PendingRequests, err = s.requests.CountByStatus(ctx, domain.StatusPending); err != nil {
		return domain.Statistics{}, fmt.Errorf("count pending requests: %w", err)
	}
	if st.TotalBloodUnits, err = s.inventory.SumUnits(ctx); err != nil {
		return domain.Statistics{}, fmt.Errorf("sum blood units: %w", err)
	}
	return st, nil
}
