package repo

import (
	"context"

	"gorm.io/gorm"

	"blood-portal/internal/domain"
)

type RequestRepo struct {
	crud[domain.BloodRequest]
}

var _ domain.RequestRepository = (*RequestRepo)(nil)

func NewRequestRepo(db *gorm.DB) *RequestRepo {
	return &RequestRepo{crud[domain.BloodRequest]{db: db, order: "request_date DESC"}}
}

func (r *RequestRepo) List(ctx context.Context) ([]domain.BloodRequest, error) { return r.list(ctx) }

func (r *RequestRepo) Create(ctx context.Context, br *domain.BloodRequest) error {
	return r.create(ctx, br)
}

func (r *RequestRepo) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (bool, error) {
	return r.updateByID(ctx, id, map[string]any{"status": status})
}

func (r *RequestRepo) Delete(ctx context.Context, id string) error { return r.deleteByID(ctx, id) }

func (r *RequestRepo) Count(ctx context.Context) (int64, error) { return r.count(ctx, nil) }

func (r *RequestRepo) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	return r.count(ctx, "status = ?", status)
}
