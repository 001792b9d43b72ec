package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Trader is a levy-paying occupant of a market. Amount/PaymentFrequency are
// an optional trader-level override; when set they beat the market-level
// LevySetup during payment recording.
type Trader struct {
	ID               uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName         string            `gorm:"size:150;not null"            json:"fullName"`
	Phone            string            `gorm:"size:15;index"                json:"phone"`
	Gender           string            `gorm:"size:10"                      json:"gender,omitempty"`
	TIN              string            `gorm:"column:tin;size:20;uniqueIndex;not null" json:"tin"`
	MarketID         uuid.UUID         `gorm:"type:uuid;index;not null"     json:"marketId"`
	Market           *Market           `gorm:"foreignKey:MarketID"          json:"market,omitempty"`
	CaretakerID      *uuid.UUID        `gorm:"type:uuid;index"              json:"caretakerId,omitempty"`
	Caretaker        *Caretaker        `gorm:"foreignKey:CaretakerID"       json:"caretaker,omitempty"`
	SectionID        *uuid.UUID        `gorm:"type:uuid"                    json:"sectionId,omitempty"`
	TraderOccupancy  OccupancyType     `gorm:"column:trader_occupancy;size:20;not null" json:"traderOccupancy"`
	Amount           *decimal.Decimal  `gorm:"column:amount;type:numeric(14,2)"         json:"amount,omitempty"`
	PaymentFrequency *PaymentFrequency `gorm:"column:payment_frequency;size:20"         json:"paymentFrequency,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"          json:"-"`

	BuildingTypes []BuildingType `gorm:"foreignKey:TraderID;constraint:OnDelete:CASCADE" json:"buildingTypes,omitempty"`
	LevyPayments  []LevyPayment  `gorm:"foreignKey:TraderID"                             json:"levyPayments,omitempty"`
}

// HasOverride reports whether the trader carries its own rate, which takes
// precedence over any market-level setup.
func (t *Trader) HasOverride() bool {
	return t.Amount != nil && t.PaymentFrequency != nil
}

// BuildingType is a line item describing the structures a trader occupies.
// Rows cascade-delete with their trader.
type BuildingType struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TraderID uuid.UUID `gorm:"type:uuid;index;not null" json:"traderId"`
	Type     string    `gorm:"size:50;not null"         json:"type"` // e.g. "Lockup Shop", "Open Shed"
	Count    int       `gorm:"not null;default:1"       json:"count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
