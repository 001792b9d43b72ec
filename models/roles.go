package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chairman heads a single market (1-1).
type Chairman struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID   *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"userId,omitempty"`
	FullName string     `gorm:"size:150;not null"     json:"fullName"`
	Phone    string     `gorm:"size:15;index"         json:"phone"`
	Email    string     `gorm:"size:100"              json:"email,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"          json:"-"`
}

// Caretaker supervises a group of traders and collectors within a market.
type Caretaker struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID   *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"userId,omitempty"`
	FullName string     `gorm:"size:150;not null"     json:"fullName"`
	Phone    string     `gorm:"size:15;index"         json:"phone"`
	MarketID *uuid.UUID `gorm:"type:uuid;index"       json:"marketId,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"          json:"-"`

	GoodBoys []GoodBoy `gorm:"foreignKey:CaretakerID" json:"goodBoys,omitempty"`
	Traders  []Trader  `gorm:"foreignKey:CaretakerID" json:"traders,omitempty"`
}

// GoodBoy is the field collector who records trader payments on behalf of a
// caretaker/chairman.
type GoodBoy struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      *uuid.UUID `gorm:"type:uuid;uniqueIndex"    json:"userId,omitempty"`
	FullName    string     `gorm:"size:150;not null"        json:"fullName"`
	Phone       string     `gorm:"size:15;index"            json:"phone"`
	MarketID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"marketId"`
	Market      *Market    `gorm:"foreignKey:MarketID"      json:"market,omitempty"`
	CaretakerID *uuid.UUID `gorm:"type:uuid;index"          json:"caretakerId,omitempty"`
	Caretaker   *Caretaker `gorm:"foreignKey:CaretakerID"   json:"caretaker,omitempty"`
	IsActive    bool       `gorm:"default:true"             json:"isActive"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"          json:"-"`
}
