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

type RequestService struct {
	repo domain.RequestRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewRequestService(repo domain.RequestRepository, l *zap.Logger) *RequestService {
	if l == nil {
		l = zap.NewNop()
	}
	return &RequestService{repo: repo, log: l, now: utcNow}
}

func (s *RequestService) List(ctx context.Context) ([]domain.BloodRequest, error) {
	rs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return rs, nil
}

func (s *RequestService) Add(ctx context.Context, ownerID string, in domain.NewBloodRequest) (*domain.BloodRequest, error) {
	if anyBlank(in.PatientName, in.HospitalName, in.BloodGroup, in.Urgency, in.ContactNumber) {
		return nil, domain.Validation(msgAllFieldsRequired)
	}
	group, err := domain.ParseBloodGroup(in.BloodGroup)
	if err != nil {
		return nil, err
	}
	if in.UnitsNeeded <= 0 {
		return nil, domain.Validation("Units needed must be greater than 0")
	}
	urgency := domain.Urgency(strings.TrimSpace(in.Urgency))
	if !urgency.Valid() {
		return nil, domain.Validation("Urgency must be one of Normal, Urgent, Critical")
	}

	r := &domain.BloodRequest{
		ID:            utils.NewID(),
		UserID:        ownerID,
		PatientName:   strings.TrimSpace(in.PatientName),
		HospitalName:  strings.TrimSpace(in.HospitalName),
		BloodGroup:    group,
		UnitsNeeded:   in.UnitsNeeded,
		Urgency:       urgency,
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		RequestDate:   s.now(),
		Status:        domain.StatusPending,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	s.log.Info("blood request submitted",
		zap.String("id", r.ID),
		zap.String("bloodGroup", string(r.BloodGroup)),
		zap.String("urgency", string(r.Urgency)),
	)
	return r, nil
}

// UpdateStatus 任意状态之间可互相切换，但值必须合法且记录必须存在
func (s *RequestService) UpdateStatus(ctx context.Context, id, status string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Validation("Request id is required")
	}
	st := domain.RequestStatus(strings.TrimSpace(status))
	if !st.Valid() {
		return domain.Validation("Status must be one of Pending, Fulfilled, Cancelled")
	}
	ok, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if !ok {
		return domain.NotFound("Request not found")
	}
	return nil
}

func (s *RequestService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Validation("Request id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return nil
}
