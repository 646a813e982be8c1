package repo

import (
	"context"

	"gorm.io/gorm"

	"blood-portal/internal/domain"
)

type DonorRepo struct {
	crud[domain.Donor]
}

var _ domain.DonorRepository = (*DonorRepo)(nil)

func NewDonorRepo(db *gorm.DB) *DonorRepo {
	return &DonorRepo{crud[domain.Donor]{db: db, order: "registered_date DESC"}}
}

func (r *DonorRepo) List(ctx context.Context) ([]domain.Donor, error) { return r.list(ctx) }

func (r *DonorRepo) Create(ctx context.Context, d *domain.Donor) error { return r.create(ctx, d) }

func (r *DonorRepo) Update(ctx context.Context, id string, fields map[string]any) (bool, error) {
	return r.updateByID(ctx, id, fields)
}

func (r *DonorRepo) Delete(ctx context.Context, id string) error { return r.deleteByID(ctx, id) }

func (r *DonorRepo) Count(ctx context.Context) (int64, error) { return r.count(ctx, nil) }

func (r *DonorRepo) CountAvailable(ctx context.Context) (int64, error) {
	return r.count(ctx, "is_available = ?", true)
}
