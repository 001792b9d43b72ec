package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Vendor is a registered supplier doing business with markets.
type Vendor struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BusinessName string     `gorm:"size:150;not null"       json:"businessName"`
	ContactName  string     `gorm:"size:150"                json:"contactName,omitempty"`
	Phone        string     `gorm:"size:15;index"           json:"phone"`
	Email        string     `gorm:"size:100"                json:"email,omitempty"`
	Category     string     `gorm:"size:50;index"           json:"category,omitempty"`
	MarketID     *uuid.UUID `gorm:"type:uuid;index"         json:"marketId,omitempty"`
	IsActive     bool       `gorm:"default:true"            json:"isActive"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"          json:"-"`
}

// Customer is an end buyer registered for market notifications and offers.
type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName string    `gorm:"size:150;not null" json:"fullName"`
	Phone    string    `gorm:"size:15;index"     json:"phone"`
	Email    string    `gorm:"size:100"          json:"email,omitempty"`
	Address  string    `gorm:"size:255"          json:"address,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"          json:"-"`
}

// Advertisement is a paid placement shown on market screens and the public
// portal. Media holds uploaded asset descriptors as JSON.
type Advertisement struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title           string         `gorm:"size:200;not null"        json:"title"`
	Body            string         `gorm:"type:text"                json:"body,omitempty"`
	VendorID        *uuid.UUID     `gorm:"type:uuid;index"          json:"vendorId,omitempty"`
	Vendor          *Vendor        `gorm:"foreignKey:VendorID"      json:"vendor,omitempty"`
	MarketID        *uuid.UUID     `gorm:"type:uuid;index"          json:"marketId,omitempty"`
	Media           datatypes.JSON `gorm:"column:media;type:jsonb"  json:"media,omitempty"`
	TargetAudiences pq.StringArray `gorm:"column:target_audiences;type:text[]" json:"targetAudiences,omitempty"`
	Status          AdvertStatus   `gorm:"size:20;default:'Draft';index"       json:"status"`
	StartDate       *time.Time     `gorm:"column:start_date" json:"startDate,omitempty"`
	EndDate         *time.Time     `gorm:"column:end_date"   json:"endDate,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"          json:"-"`
}
