package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LevySetup is a configuration record defining the rate (amount + frequency)
// a market charges traders of a given occupancy type. A nil OccupancyType is
// a wildcard applying to every occupancy. At most one row per
// (market, occupancy, frequency) may be active at a time; superseding a rate
// deactivates the old row instead of deleting it so history is preserved.
type LevySetup struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MarketID         uuid.UUID        `gorm:"type:uuid;index;not null"  json:"marketId"`
	Market           *Market          `gorm:"foreignKey:MarketID"       json:"market,omitempty"`
	ChairmanID       *uuid.UUID       `gorm:"type:uuid;index"           json:"chairmanId,omitempty"`
	Chairman         *Chairman        `gorm:"foreignKey:ChairmanID"     json:"chairman,omitempty"`
	OccupancyType    *OccupancyType   `gorm:"column:occupancy_type;size:20" json:"occupancyType,omitempty"`
	PaymentFrequency PaymentFrequency `gorm:"column:payment_frequency;size:20;not null" json:"paymentFrequency"`
	Amount           decimal.Decimal  `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	IsSetupRecord    bool             `gorm:"column:is_setup_record;default:true"       json:"isSetupRecord"`
	IsActive         bool             `gorm:"column:is_active;default:true;index"       json:"isActive"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// AppliesTo reports whether the setup governs the given occupancy. A setup
// with no occupancy type applies to all of them.
func (s *LevySetup) AppliesTo(occupancy OccupancyType) bool {
	return s.OccupancyType == nil || *s.OccupancyType == occupancy
}

// LevyPayment is one collected (or pending) levy. Setup-mirror rows carry
// IsSetupRecord=true and must be excluded from every revenue or compliance
// aggregate; see the aggregator.
type LevyPayment struct {
	ID                   uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MarketID             uuid.UUID        `gorm:"type:uuid;index;not null" json:"marketId"`
	Market               *Market          `gorm:"foreignKey:MarketID"      json:"market,omitempty"`
	TraderID             *uuid.UUID       `gorm:"type:uuid;index"          json:"traderId,omitempty"`
	Trader               *Trader          `gorm:"foreignKey:TraderID"      json:"trader,omitempty"`
	GoodBoyID            *uuid.UUID       `gorm:"type:uuid;index"          json:"goodBoyId,omitempty"`
	GoodBoy              *GoodBoy         `gorm:"foreignKey:GoodBoyID"     json:"goodBoy,omitempty"`
	ChairmanID           *uuid.UUID       `gorm:"type:uuid"                json:"chairmanId,omitempty"`
	Amount               decimal.Decimal  `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	IncentiveAmount      *decimal.Decimal `gorm:"column:incentive_amount;type:numeric(14,2)" json:"incentiveAmount,omitempty"`
	Period               PaymentFrequency `gorm:"column:period;size:20;not null"            json:"period"`
	OccupancyType        OccupancyType    `gorm:"column:occupancy_type;size:20"             json:"occupancyType"`
	PaymentMethod        PaymentMethod    `gorm:"column:payment_method;size:20"             json:"paymentMethod"`
	PaymentStatus        PaymentStatus    `gorm:"column:payment_status;size:20;not null;index" json:"paymentStatus"`
	TransactionReference string           `gorm:"column:transaction_reference;size:64;index"   json:"transactionReference"`
	PaymentDate          time.Time        `gorm:"column:payment_date;index;not null" json:"paymentDate"`
	DueDate              time.Time        `gorm:"column:due_date"                    json:"dueDate"`
	IsSetupRecord        bool             `gorm:"column:is_setup_record;default:false;index" json:"isSetupRecord"`
	OutsideGeofence      bool             `gorm:"column:outside_geofence;default:false"      json:"outsideGeofence"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"          json:"-"`
}
