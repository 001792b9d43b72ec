package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Market is a physical market administered by a local government. The
// Total*/Compliance* columns are snapshot caches refreshed by report runs;
// the source of truth is always the market's LevyPayment rows.
type Market struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name              string          `gorm:"size:150;not null;index"       json:"name"`
	Location          string          `gorm:"size:255;not null"             json:"location"`
	Latitude          float64         `gorm:"column:latitude"               json:"latitude"`
	Longitude         float64         `gorm:"column:longitude"              json:"longitude"`
	Geofence          datatypes.JSON  `gorm:"column:geofence;type:jsonb"    json:"geofence,omitempty"` // polygon of {lat,lng} points
	Facilities        pq.StringArray  `gorm:"column:facilities;type:text[]" json:"facilities,omitempty"`
	Capacity          int             `gorm:"column:capacity;default:0"     json:"capacity"`
	LocalGovernmentID uuid.UUID       `gorm:"type:uuid;index;not null"      json:"localGovernmentId"`
	LocalGovernment   LocalGovernment `gorm:"foreignKey:LocalGovernmentID"  json:"localGovernment,omitempty"`
	ChairmanID        *uuid.UUID      `gorm:"type:uuid;uniqueIndex"         json:"chairmanId,omitempty"`
	Chairman          *Chairman       `gorm:"foreignKey:ChairmanID"         json:"chairman,omitempty"`
	CaretakerID       *uuid.UUID      `gorm:"type:uuid;index"               json:"caretakerId,omitempty"`
	Caretaker         *Caretaker      `gorm:"foreignKey:CaretakerID"        json:"caretaker,omitempty"`

	// Cached aggregates, recomputable from LevyPayments at any time.
	TotalRevenue        decimal.Decimal `gorm:"column:total_revenue;type:numeric(14,2);default:0" json:"totalRevenue"`
	TotalTraders        int             `gorm:"column:total_traders;default:0"                    json:"totalTraders"`
	ComplianceRate      float64         `gorm:"column:compliance_rate;default:0"                  json:"complianceRate"`
	CompliantTraders    int             `gorm:"column:compliant_traders;default:0"                json:"compliantTraders"`
	NonCompliantTraders int             `gorm:"column:non_compliant_traders;default:0"            json:"nonCompliantTraders"`
	StatsRefreshedAt    *time.Time      `gorm:"column:stats_refreshed_at"                         json:"statsRefreshedAt,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"          json:"-"`

	Traders      []Trader      `gorm:"foreignKey:MarketID" json:"traders,omitempty"`
	LevyPayments []LevyPayment `gorm:"foreignKey:MarketID" json:"levyPayments,omitempty"`
}
