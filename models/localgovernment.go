package models

import (
	"time"

	"github.com/google/uuid"
)

// LocalGovernment is the owning authority for one or more markets.
type LocalGovernment struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	State string    `gorm:"size:50;not null"              json:"state"`
	Code  string    `gorm:"size:20;uniqueIndex;not null"  json:"code"` // e.g. "IKJ", "ABK"

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Markets []Market `gorm:"foreignKey:LocalGovernmentID" json:"markets,omitempty"`
}
