package levy

import "errors"

var (
	// ErrNotFound is returned when a market, trader, setup or payment lookup
	// matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrConfigurationMissing is returned when a payment is attempted but no
	// trader-level override and no active levy setup exists for the
	// market/occupancy combination. A payment cannot be recorded without a
	// known rate.
	ErrConfigurationMissing = errors.New("levy not configured for this market and occupancy")

	// ErrInvalidTransition is returned when a payment in a terminal state
	// (Paid or Failed) is confirmed or rejected again.
	ErrInvalidTransition = errors.New("payment is already in a terminal state")

	// ErrDuplicateActiveSetup is returned by the store when inserting an
	// active setup that collides with the partial unique index on
	// (market, occupancy, frequency). ConfigureLevy retries once on it.
	ErrDuplicateActiveSetup = errors.New("an active setup already exists for this market, occupancy and frequency")

	// ErrInvalidInput is returned for requests carrying unknown enum values
	// or non-positive amounts.
	ErrInvalidInput = errors.New("invalid input")
)
