// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names recognised by the claims middleware. Roles are resolved at
// login; the levy core treats them as pre-authorized scope filters.
const (
	RoleAdmin     = "Admin"
	RoleChairman  = "Chairman"
	RoleCaretaker = "Caretaker"
	RoleGoodBoy   = "GoodBoy"
	RoleTrader    = "Trader"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null"             json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:15;uniqueIndex;not null"  json:"phone"`
	PasswordHash string    `gorm:"size:255;not null"             json:"-"`
	Role         string    `gorm:"size:30;not null"              json:"role"`

	// Scoping identifiers stamped into the JWT at login. Which ones are set
	// depends on the role.
	MarketID    *uuid.UUID `gorm:"type:uuid" json:"marketId,omitempty"`
	ChairmanID  *uuid.UUID `gorm:"type:uuid" json:"chairmanId,omitempty"`
	CaretakerID *uuid.UUID `gorm:"type:uuid" json:"caretakerId,omitempty"`
	TraderID    *uuid.UUID `gorm:"type:uuid" json:"traderId,omitempty"`
	GoodBoyID   *uuid.UUID `gorm:"type:uuid" json:"goodBoyId,omitempty"`

	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
