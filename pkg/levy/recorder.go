package levy

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketpadi/backend/models"
	"github.com/marketpadi/backend/utils"
)

// Recorder creates payment records matched against the active levy
// configuration and drives the Pending -> Paid/Failed state machine.
type Recorder struct {
	store    Store
	resolver *Resolver
	now      func() time.Time
}

func NewRecorder(store Store, resolver *Resolver) *Recorder {
	return &Recorder{store: store, resolver: resolver, now: time.Now}
}

// RecordPaymentInput is a collector scan-and-pay event.
type RecordPaymentInput struct {
	TraderID  uuid.UUID
	MarketID  uuid.UUID
	GoodBoyID *uuid.UUID
	// Amount actually collected. Zero means "charge the configured rate".
	Amount    decimal.Decimal
	Method    models.PaymentMethod
	Reference string
	// Pending puts the payment into the proof-of-payment workflow instead of
	// marking it Paid immediately.
	Pending bool
	// Scan coordinates, when the collector device reports them.
	Latitude  *float64
	Longitude *float64
}

// RecordPayment looks up the trader's rate — trader-level override first,
// market-level setup second — and persists a transactional payment row
// stamped with amount, frequency, occupancy and due date. It fails with
// ErrConfigurationMissing when no rate is known. The market's cached
// aggregates are not touched here; report runs refresh them.
func (rec *Recorder) RecordPayment(in RecordPaymentInput) (*models.LevyPayment, error) {
	trader, err := rec.store.GetTrader(in.TraderID)
	if err != nil {
		return nil, err
	}

	market, err := rec.store.GetMarket(in.MarketID)
	if err != nil {
		return nil, err
	}

	// A trader can only be levied in the market they are registered in;
	// accepting a foreign trader would let compliance counts drift past the
	// market's own trader total.
	if trader.MarketID != in.MarketID {
		return nil, ErrInvalidInput
	}

	var (
		rate      decimal.Decimal
		frequency models.PaymentFrequency
	)
	if trader.HasOverride() {
		rate = *trader.Amount
		frequency = *trader.PaymentFrequency
	} else {
		setup, err := rec.resolver.ResolveActiveSetup(in.MarketID, trader.TraderOccupancy, nil)
		if err != nil {
			return nil, err
		}
		if setup == nil {
			return nil, ErrConfigurationMissing
		}
		rate = setup.Amount
		frequency = setup.PaymentFrequency
	}

	amount := in.Amount
	if amount.IsZero() {
		amount = rate
	}
	if amount.IsNegative() {
		return nil, ErrInvalidInput
	}

	status := models.StatusPaid
	if in.Pending {
		status = models.StatusPending
	}

	now := rec.now()
	payment := &models.LevyPayment{
		ID:                   uuid.New(),
		MarketID:             in.MarketID,
		TraderID:             &trader.ID,
		GoodBoyID:            in.GoodBoyID,
		ChairmanID:           market.ChairmanID,
		Amount:               amount,
		Period:               frequency,
		OccupancyType:        trader.TraderOccupancy,
		PaymentMethod:        in.Method,
		PaymentStatus:        status,
		TransactionReference: in.Reference,
		PaymentDate:          now,
		DueDate:              NextDueDate(frequency, now),
		IsSetupRecord:        false,
		OutsideGeofence:      rec.outsideGeofence(market, in.Latitude, in.Longitude),
	}
	if err := rec.store.CreatePayment(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// outsideGeofence flags a scan recorded outside the market's boundary. The
// flag is informational; the payment is still accepted.
func (rec *Recorder) outsideGeofence(market *models.Market, lat, lng *float64) bool {
	if lat == nil || lng == nil || len(market.Geofence) == 0 {
		return false
	}
	gf, err := utils.ParseGeofence(market.Geofence)
	if err != nil || gf == nil {
		return false
	}
	return !gf.Contains(*lat, *lng)
}

// ConfirmPayment moves a pending payment to Paid. Terminal payments and
// setup rows cannot transition.
func (rec *Recorder) ConfirmPayment(paymentID uuid.UUID) (*models.LevyPayment, error) {
	return rec.transition(paymentID, models.StatusPaid)
}

// RejectPayment moves a pending payment to Failed.
func (rec *Recorder) RejectPayment(paymentID uuid.UUID) (*models.LevyPayment, error) {
	return rec.transition(paymentID, models.StatusFailed)
}

func (rec *Recorder) transition(paymentID uuid.UUID, to models.PaymentStatus) (*models.LevyPayment, error) {
	p, err := rec.store.GetPayment(paymentID)
	if err != nil {
		return nil, err
	}
	if p.IsSetupRecord {
		return nil, ErrInvalidInput
	}
	if p.PaymentStatus.Terminal() {
		return nil, ErrInvalidTransition
	}
	p.PaymentStatus = to
	if err := rec.store.SavePayment(p); err != nil {
		return nil, err
	}
	return p, nil
}

// NextDueDate computes when the next levy falls due after a payment made at
// the given time. Daily rolls to the next day, weekly a week ahead; monthly,
// quarterly and yearly obligations fall due on the first day of the next
// period.
func NextDueDate(freq models.PaymentFrequency, from time.Time) time.Time {
	loc := from.Location()
	switch freq {
	case models.FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
	case models.FrequencyQuarterly:
		quarterStart := time.Month((int(from.Month())-1)/3*3 + 1)
		return time.Date(from.Year(), quarterStart, 1, 0, 0, 0, 0, loc).AddDate(0, 3, 0)
	case models.FrequencyYearly:
		return time.Date(from.Year()+1, 1, 1, 0, 0, 0, 0, loc)
	default:
		return from.AddDate(0, 0, 1)
	}
}

// ConfigureLevyInput establishes or supersedes a market's rate for an
// occupancy/frequency combination. A nil occupancy configures the wildcard
// rate applying to all occupancy types.
type ConfigureLevyInput struct {
	MarketID      uuid.UUID
	ChairmanID    *uuid.UUID
	OccupancyType *models.OccupancyType
	Frequency     models.PaymentFrequency
	Amount        decimal.Decimal
}

// ConfigureLevy writes a new active setup, deactivating the one it
// supersedes in the same transaction. History is preserved: old rows are
// flipped inactive, never deleted. A race with a concurrent configuration of
// the same combination trips the partial unique index; one retry re-runs the
// deactivate-then-insert against the winner's row.
func (rec *Recorder) ConfigureLevy(in ConfigureLevyInput) (*models.LevySetup, error) {
	if !in.Frequency.Valid() || !in.Amount.IsPositive() {
		return nil, ErrInvalidInput
	}
	if in.OccupancyType != nil && !in.OccupancyType.Valid() {
		return nil, ErrInvalidInput
	}
	if _, err := rec.store.GetMarket(in.MarketID); err != nil {
		return nil, err
	}

	setup := &models.LevySetup{
		ID:               uuid.New(),
		MarketID:         in.MarketID,
		ChairmanID:       in.ChairmanID,
		OccupancyType:    in.OccupancyType,
		PaymentFrequency: in.Frequency,
		Amount:           in.Amount,
		IsSetupRecord:    true,
		IsActive:         true,
		CreatedAt:        rec.now(),
	}
	err := rec.store.ReplaceSetup(setup)
	if err == ErrDuplicateActiveSetup {
		err = rec.store.ReplaceSetup(setup)
	}
	if err != nil {
		return nil, err
	}
	return setup, nil
}
