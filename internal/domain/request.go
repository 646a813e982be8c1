package domain

import (
	"context"
	"time"
)

type Urgency string

const (
	UrgencyNormal   Urgency = "Normal"
	UrgencyUrgent   Urgency = "Urgent"
	UrgencyCritical Urgency = "Critical"
)

func (u Urgency) Valid() bool {
	return u == UrgencyNormal || u == UrgencyUrgent || u == UrgencyCritical
}

type RequestStatus string

const (
	StatusPending   RequestStatus = "Pending"
	StatusFulfilled RequestStatus = "Fulfilled"
	StatusCancelled RequestStatus = "Cancelled"
)

func (s RequestStatus) Valid() bool {
	return s == StatusPending || s == StatusFulfilled || s == StatusCancelled
}

type BloodRequest struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	UserID        string        `gorm:"size:36;index;not null" json:"userId"`
	PatientName   string        `gorm:"size:128;not null" json:"patientName"`
	HospitalName  string        `gorm:"size:128;not null" json:"hospitalName"`
	BloodGroup    BloodGroup    `gorm:"size:3;index;not null" json:"bloodGroup"`
	UnitsNeeded   int           `gorm:"not null" json:"unitsNeeded"`
	Urgency       Urgency       `gorm:"size:16;not null" json:"urgency"`
	ContactNumber string        `gorm:"size:32;not null" json:"contactNumber"`
	RequestDate   time.Time     `gorm:"index;not null" json:"requestDate"`
	Status        RequestStatus `gorm:"size:16;index;not null;default:Pending" json:"status"`
}

func (BloodRequest) TableName() string { return "blood_requests" }

type NewBloodRequest struct {
	PatientName   string
	HospitalName  string
	BloodGroup    string
	UnitsNeeded   int
	Urgency       string
	ContactNumber string
}

type RequestRepository interface {
	List(ctx context.Context) ([]BloodRequest, error)
	Create(ctx context.Context, r *BloodRequest) error
	UpdateStatus(ctx context.Context, id string, status RequestStatus) (bool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status RequestStatus) (int64, error)
}
