package domain

import (
	"context"
	"time"
)

const (
	MinDonorAge = 18
	MaxDonorAge = 65
)

type Donor struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	UserID           string     `gorm:"size:36;index;not null" json:"userId"`
	Name             string     `gorm:"size:128;not null" json:"name"`
	Email            string     `gorm:"size:191;not null" json:"email"`
	Phone            string     `gorm:"size:32;not null" json:"phone"`
	BloodGroup       BloodGroup `gorm:"size:3;index;not null" json:"bloodGroup"`
	Age              int        `gorm:"not null" json:"age"`
	Address          string     `gorm:"size:255;not null" json:"address"`
	LastDonationDate *time.Time `json:"lastDonationDate,omitempty"`
	IsAvailable      bool       `gorm:"not null;default:true" json:"isAvailable"`
	RegisteredDate   time.Time  `gorm:"index;not null" json:"registeredDate"`
}

func (Donor) TableName() string { return "donors" }

type NewDonor struct {
	Name       string
	Email      string
	Phone      string
	BloodGroup string
	Age        int
	Address    string
}

// DonorPatch 为 nil 的字段不更新
type DonorPatch struct {
	Name             *string
	Email            *string
	Phone            *string
	BloodGroup       *string
	Age              *int
	Address          *string
	IsAvailable      *bool
	LastDonationDate *time.Time
}

type DonorRepository interface {
	List(ctx context.Context) ([]Donor, error)
	Create(ctx context.Context, d *Donor) error
	Update(ctx context.Context, id string, fields map[string]any) (bool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
}
