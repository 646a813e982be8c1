package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"blood-portal/internal/domain"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) user(args mock.Arguments) (*domain.User, error) {
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.user(m.Called(ctx, username))
}

func (m *mockUserRepo) FindByEmailOrUsername(ctx context.Context, identifier string) (*domain.User, error) {
	return m.user(m.Called(ctx, identifier))
}

func (m *mockUserRepo) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	us, _ := args.Get(0).([]domain.User)
	return us, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id string, role domain.Role) (bool, error) {
	args := m.Called(ctx, id, role)
	return args.Bool(0), args.Error(1)
}

type mockDonorRepo struct{ mock.Mock }

func (m *mockDonorRepo) List(ctx context.Context) ([]domain.Donor, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).([]domain.Donor)
	return ds, args.Error(1)
}

func (m *mockDonorRepo) Create(ctx context.Context, d *domain.Donor) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockDonorRepo) Update(ctx context.Context, id string, fields map[string]any) (bool, error) {
	args := m.Called(ctx, id, fields)
	return args.Bool(0), args.Error(1)
}

func (m *mockDonorRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDonorRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDonorRepo) CountAvailable(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockRequestRepo struct{ mock.Mock }

func (m *mockRequestRepo) List(ctx context.Context) ([]domain.BloodRequest, error) {
	args := m.Called(ctx)
	rs, _ := args.Get(0).([]domain.BloodRequest)
	return rs, args.Error(1)
}

func (m *mockRequestRepo) Create(ctx context.Context, r *domain.BloodRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRequestRepo) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockRequestRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRequestRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRequestRepo) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type mockInventoryRepo struct{ mock.Mock }

func (m *mockInventoryRepo) List(ctx context.Context) ([]domain.InventoryRecord, error) {
	args := m.Called(ctx)
	rs, _ := args.Get(0).([]domain.InventoryRecord)
	return rs, args.Error(1)
}

func (m *mockInventoryRepo) Upsert(ctx context.Context, rec *domain.InventoryRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockInventoryRepo) SumUnits(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
