package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"blood-portal/internal/domain"
	"blood-portal/pkg/utils"
)

type DonorService struct {
	repo domain.DonorRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewDonorService(repo domain.DonorRepository, l *zap.Logger) *DonorService {
	if l == nil {
		l = zap.NewNop()
	}
	return &DonorService{repo: repo, log: l, now: utcNow}
}

func (s *DonorService) List(ctx context.Context) ([]domain.Donor, error) {
	ds, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	return ds, nil
}

// Add ownerID 为调用者（登记人），仅作记录，不做归属校验
func (s *DonorService) Add(ctx context.Context, ownerID string, in domain.NewDonor) (*domain.Donor, error) {
	if anyBlank(in.Name, in.Email, in.Phone, in.BloodGroup, in.Address) {
		return nil, domain.Validation(msgAllFieldsRequired)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !validEmail(email) {
		return nil, domain.Validation("Invalid email address")
	}
	group, err := domain.ParseBloodGroup(in.BloodGroup)
	if err != nil {
		return nil, err
	}
	if err := checkAge(in.Age); err != nil {
		return nil, err
	}

	d := &domain.Donor{
		ID:             utils.NewID(),
		UserID:         ownerID,
		Name:           strings.TrimSpace(in.Name),
		Email:          email,
		Phone:          strings.TrimSpace(in.Phone),
		BloodGroup:     group,
		Age:            in.Age,
		Address:        strings.TrimSpace(in.Address),
		IsAvailable:    true,
		RegisteredDate: s.now(),
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create donor: %w", err)
	}
	s.log.Info("donor registered", zap.String("id", d.ID), zap.String("bloodGroup", string(d.BloodGroup)))
	return d, nil
}

// Update 部分更新；未给出的字段保持原值
func (s *DonorService) Update(ctx context.Context, id string, p domain.DonorPatch) error {
	if strings.TrimSpace(id) == "" {
		return domain.Validation("Donor id is required")
	}
	fields := map[string]any{}
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return domain.Validation("Name cannot be empty")
		}
		fields["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		if !validEmail(email) {
			return domain.Validation("Invalid email address")
		}
		fields["email"] = email
	}
	if p.Phone != nil {
		if strings.TrimSpace(*p.Phone) == "" {
			return domain.Validation("Phone cannot be empty")
		}
		fields["phone"] = strings.TrimSpace(*p.Phone)
	}
	if p.BloodGroup != nil {
		g, err := domain.ParseBloodGroup(*p.BloodGroup)
		if err != nil {
			return err
		}
		fields["blood_group"] = g
	}
	if p.Age != nil {
		if err := checkAge(*p.Age); err != nil {
			return err
		}
		fields["age"] = *p.Age
	}
	if p.Address != nil {
		if strings.TrimSpace(*p.Address) == "" {
			return domain.Validation("Address cannot be empty")
		}
		fields["address"] = strings.TrimSpace(*p.Address)
	}
	if p.IsAvailable != nil {
		fields["is_available"] = *p.IsAvailable
	}
	if p.LastDonationDate != nil {
		if p.LastDonationDate.After(s.now()) {
			return domain.Validation("Last donation date cannot be in the future")
		}
		fields["last_donation_date"] = p.LastDonationDate.UTC()
	}
	if len(fields) == 0 {
		return domain.Validation("Nothing to update")
	}

	ok, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("update donor: %w", err)
	}
	if !ok {
		return domain.NotFound("Donor not found")
	}
	return nil
}

// Delete 不存在的 id 同样视为成功
func (s *DonorService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Validation("Donor id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete donor: %w", err)
	}
	return nil
}

func checkAge(age int) error {
	if age < domain.MinDonorAge || age > domain.MaxDonorAge {
		return domain.Validation(fmt.Sprintf("Age must be between %d and %d", domain.MinDonorAge, domain.MaxDonorAge))
	}
	return nil
}
