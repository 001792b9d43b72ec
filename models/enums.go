package models

// Typed string enums used across the levy subsystem. They map to plain
// varchar columns so the values stay readable in the database.

// OccupancyType classifies how a trader occupies market space. The rate a
// market charges depends on it.
type OccupancyType string

const (
	OccupancyOpen  OccupancyType = "Open"
	OccupancyStall OccupancyType = "Stall"
	OccupancyShop  OccupancyType = "Shop"
)

func (o OccupancyType) Valid() bool {
	switch o {
	case OccupancyOpen, OccupancyStall, OccupancyShop:
		return true
	}
	return false
}

// PaymentFrequency is how often a levy obligation recurs.
type PaymentFrequency string

const (
	FrequencyDaily     PaymentFrequency = "Daily"
	FrequencyWeekly    PaymentFrequency = "Weekly"
	FrequencyMonthly   PaymentFrequency = "Monthly"
	FrequencyQuarterly PaymentFrequency = "Quarterly"
	FrequencyYearly    PaymentFrequency = "Yearly"
)

func (f PaymentFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// PaymentStatus is the lifecycle state of a levy payment.
// Pending -> Paid on confirmation, Pending -> Failed on rejection.
// Paid and Failed are terminal.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "Pending"
	StatusPaid    PaymentStatus = "Paid"
	StatusFailed  PaymentStatus = "Failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s PaymentStatus) Terminal() bool {
	return s == StatusPaid || s == StatusFailed
}

// PaymentMethod is how a trader settled a levy.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "Cash"
	MethodTransfer PaymentMethod = "Transfer"
	MethodPOS      PaymentMethod = "POS"
	MethodUSSD     PaymentMethod = "USSD"
)

// AdvertStatus is the publication state of an advertisement.
type AdvertStatus string

const (
	AdvertDraft    AdvertStatus = "Draft"
	AdvertActive   AdvertStatus = "Active"
	AdvertExpired  AdvertStatus = "Expired"
	AdvertArchived AdvertStatus = "Archived"
)
