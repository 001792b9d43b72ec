package levy

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpadi/backend/models"
)

func newTestRecorder(store *fakeStore, now time.Time) *Recorder {
	rec := NewRecorder(store, NewResolver(store))
	rec.now = func() time.Time { return now }
	return rec
}

func TestRecordPayment_ChargesConfiguredRate(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	trader := store.addTrader(market.ID, models.OccupancyShop)
	store.addSetup(market.ID, occ(models.OccupancyShop), models.FrequencyDaily, "500", time.Now())

	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	rec := newTestRecorder(store, now)

	p, err := rec.RecordPayment(RecordPaymentInput{
		TraderID: trader.ID,
		MarketID: market.ID,
		Method:   models.MethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, "500", p.Amount.String())
	assert.Equal(t, models.FrequencyDaily, p.Period)
	assert.Equal(t, models.OccupancyShop, p.OccupancyType)
	assert.Equal(t, models.StatusPaid, p.PaymentStatus)
	assert.False(t, p.IsSetupRecord)
	assert.Equal(t, now.AddDate(0, 0, 1), p.DueDate)

	stored, err := store.GetPayment(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, stored.ID)
}

func TestRecordPayment_TraderOverrideBeatsSetup(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	store.addSetup(market.ID, occ(models.OccupancyShop), models.FrequencyDaily, "500", time.Now())

	trader := store.addTrader(market.ID, models.OccupancyShop)
	amount := decimal.RequireFromString("1200")
	freq := models.FrequencyWeekly
	trader.Amount = &amount
	trader.PaymentFrequency = &freq

	rec := newTestRecorder(store, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	p, err := rec.RecordPayment(RecordPaymentInput{TraderID: trader.ID, MarketID: market.ID, Method: models.MethodTransfer})
	require.NoError(t, err)

	assert.Equal(t, "1200", p.Amount.String())
	assert.Equal(t, models.FrequencyWeekly, p.Period)
}

func TestRecordPayment_ExplicitAmountKept(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	trader := store.addTrader(market.ID, models.OccupancyShop)
	store.addSetup(market.ID, occ(models.OccupancyShop), models.FrequencyDaily, "500", time.Now())

	rec := newTestRecorder(store, time.Now())
	p, err := rec.RecordPayment(RecordPaymentInput{
		TraderID: trader.ID,
		MarketID: market.ID,
		Amount:   decimal.RequireFromString("350"),
		Method:   models.MethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, "350", p.Amount.String())
}

func TestRecordPayment_RejectsTraderFromAnotherMarket(t *testing.T) {
	store := newFakeStore()
	home := store.addMarket("Balogun")
	away := store.addMarket("Oyingbo")
	store.addSetup(away.ID, occ(models.OccupancyShop), models.FrequencyDaily, "500", time.Now())

	local := store.addTrader(away.ID, models.OccupancyShop)
	foreign := store.addTrader(home.ID, models.OccupancyShop)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rec := newTestRecorder(store, start.AddDate(0, 0, 5))

	_, err := rec.RecordPayment(RecordPaymentInput{TraderID: local.ID, MarketID: away.ID})
	require.NoError(t, err)

	_, err = rec.RecordPayment(RecordPaymentInput{TraderID: foreign.ID, MarketID: away.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Compliance stays a fraction of the market's own traders.
	stats, err := NewAggregator(store).ComputeMarketStats(away.ID, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalTraders)
	assert.Equal(t, 1, stats.CompliantTraders)
	assert.Equal(t, 100.0, stats.ComplianceRate)
}

func TestRecordPayment_ConfigurationMissing(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	trader := store.addTrader(market.ID, models.OccupancyOpen)
	// Only a Shop setup exists; an Open trader has no applicable rate.
	store.addSetup(market.ID, occ(models.OccupancyShop), models.FrequencyDaily, "500", time.Now())

	rec := newTestRecorder(store, time.Now())
	_, err := rec.RecordPayment(RecordPaymentInput{TraderID: trader.ID, MarketID: market.ID})
	assert.ErrorIs(t, err, ErrConfigurationMissing)
}

func TestRecordPayment_NegativeAmountRejected(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	trader := store.addTrader(market.ID, models.OccupancyShop)
	store.addSetup(market.ID, occ(models.OccupancyShop), models.FrequencyDaily, "500", time.Now())

	rec := newTestRecorder(store, time.Now())
	_, err := rec.RecordPayment(RecordPaymentInput{
		TraderID: trader.ID,
		MarketID: market.ID,
		Amount:   decimal.RequireFromString("-10"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecordPayment_PendingEntersProofWorkflow(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	trader := store.addTrader(market.ID, models.OccupancyShop)
	store.addSetup(market.ID, occ(models.OccupancyShop), models.FrequencyDaily, "500", time.Now())

	rec := newTestRecorder(store, time.Now())
	p, err := rec.RecordPayment(RecordPaymentInput{
		TraderID: trader.ID,
		MarketID: market.ID,
		Pending:  true,
		Method:   models.MethodTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, p.PaymentStatus)

	confirmed, err := rec.ConfirmPayment(p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, confirmed.PaymentStatus)
}

func TestRecordPayment_FlagsScansOutsideGeofence(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	market.Geofence = []byte(`{"coordinates":[{"lat":6.45,"lng":3.38},{"lat":6.45,"lng":3.40},{"lat":6.47,"lng":3.40},{"lat":6.47,"lng":3.38}]}`)
	trader := store.addTrader(market.ID, models.OccupancyShop)
	store.addSetup(market.ID, occ(models.OccupancyShop), models.FrequencyDaily, "500", time.Now())

	rec := newTestRecorder(store, time.Now())

	inside := func(v float64) *float64 { return &v }
	p, err := rec.RecordPayment(RecordPaymentInput{
		TraderID:  trader.ID,
		MarketID:  market.ID,
		Latitude:  inside(6.46),
		Longitude: inside(3.39),
	})
	require.NoError(t, err)
	assert.False(t, p.OutsideGeofence)

	p, err = rec.RecordPayment(RecordPaymentInput{
		TraderID:  trader.ID,
		MarketID:  market.ID,
		Latitude:  inside(6.60),
		Longitude: inside(3.39),
	})
	require.NoError(t, err)
	assert.True(t, p.OutsideGeofence)

	// A scan with no coordinates is never flagged.
	p, err = rec.RecordPayment(RecordPaymentInput{TraderID: trader.ID, MarketID: market.ID})
	require.NoError(t, err)
	assert.False(t, p.OutsideGeofence)
}

func TestTransition_TerminalStatesAreFinal(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	rec := newTestRecorder(store, time.Now())

	paid := store.addPayment(models.LevyPayment{
		MarketID:      market.ID,
		PaymentStatus: models.StatusPaid,
	})
	_, err := rec.ConfirmPayment(paid.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = rec.RejectPayment(paid.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	failed := store.addPayment(models.LevyPayment{
		MarketID:      market.ID,
		PaymentStatus: models.StatusFailed,
	})
	_, err = rec.ConfirmPayment(failed.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_SetupRowsCannotTransition(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	rec := newTestRecorder(store, time.Now())

	setupRow := store.addPayment(models.LevyPayment{
		MarketID:      market.ID,
		PaymentStatus: models.StatusPending,
		IsSetupRecord: true,
	})
	_, err := rec.ConfirmPayment(setupRow.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRejectPayment(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	rec := newTestRecorder(store, time.Now())

	pending := store.addPayment(models.LevyPayment{
		MarketID:      market.ID,
		PaymentStatus: models.StatusPending,
	})
	rejected, err := rec.RejectPayment(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, rejected.PaymentStatus)
}

func TestNextDueDate(t *testing.T) {
	// Tuesday, mid-March.
	from := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		freq models.PaymentFrequency
		want time.Time
	}{
		{models.FrequencyDaily, time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)},
		{models.FrequencyWeekly, time.Date(2026, 3, 17, 14, 0, 0, 0, time.UTC)},
		{models.FrequencyMonthly, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{models.FrequencyQuarterly, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{models.FrequencyYearly, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			assert.Equal(t, tt.want, NextDueDate(tt.freq, from))
		})
	}

	// A payment in the last month of a quarter still falls due at the next
	// quarter boundary.
	june := time.Date(2026, 6, 28, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), NextDueDate(models.FrequencyQuarterly, june))
}

func TestConfigureLevy_SupersedesAndKeepsHistory(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	rec := newTestRecorder(store, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	first, err := rec.ConfigureLevy(ConfigureLevyInput{
		MarketID:      market.ID,
		OccupancyType: occ(models.OccupancyShop),
		Frequency:     models.FrequencyDaily,
		Amount:        decimal.RequireFromString("400"),
	})
	require.NoError(t, err)
	assert.True(t, first.IsActive)

	second, err := rec.ConfigureLevy(ConfigureLevyInput{
		MarketID:      market.ID,
		OccupancyType: occ(models.OccupancyShop),
		Frequency:     models.FrequencyDaily,
		Amount:        decimal.RequireFromString("500"),
	})
	require.NoError(t, err)

	active, err := store.ActiveSetups(market.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
	assert.Equal(t, "500", active[0].Amount.String())

	history, err := store.SetupHistory(market.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestConfigureLevy_DifferentCombinationsCoexist(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	rec := newTestRecorder(store, time.Now())

	_, err := rec.ConfigureLevy(ConfigureLevyInput{
		MarketID:      market.ID,
		OccupancyType: occ(models.OccupancyShop),
		Frequency:     models.FrequencyDaily,
		Amount:        decimal.RequireFromString("500"),
	})
	require.NoError(t, err)

	_, err = rec.ConfigureLevy(ConfigureLevyInput{
		MarketID:      market.ID,
		OccupancyType: occ(models.OccupancyStall),
		Frequency:     models.FrequencyDaily,
		Amount:        decimal.RequireFromString("300"),
	})
	require.NoError(t, err)

	_, err = rec.ConfigureLevy(ConfigureLevyInput{
		MarketID:  market.ID,
		Frequency: models.FrequencyDaily,
		Amount:    decimal.RequireFromString("200"),
	})
	require.NoError(t, err)

	active, err := store.ActiveSetups(market.ID)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}

func TestConfigureLevy_Validation(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	rec := newTestRecorder(store, time.Now())

	_, err := rec.ConfigureLevy(ConfigureLevyInput{
		MarketID:  market.ID,
		Frequency: "Fortnightly",
		Amount:    decimal.RequireFromString("100"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = rec.ConfigureLevy(ConfigureLevyInput{
		MarketID:  market.ID,
		Frequency: models.FrequencyDaily,
		Amount:    decimal.Zero,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := models.OccupancyType("Kiosk")
	_, err = rec.ConfigureLevy(ConfigureLevyInput{
		MarketID:      market.ID,
		OccupancyType: &bad,
		Frequency:     models.FrequencyDaily,
		Amount:        decimal.RequireFromString("100"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = rec.ConfigureLevy(ConfigureLevyInput{
		MarketID:  uuid.New(),
		Frequency: models.FrequencyDaily,
		Amount:    decimal.RequireFromString("100"),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
