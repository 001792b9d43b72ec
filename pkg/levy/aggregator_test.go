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

func paid(marketID uuid.UUID, traderID *uuid.UUID, amount string, at time.Time) models.LevyPayment {
	return models.LevyPayment{
		MarketID:      marketID,
		TraderID:      traderID,
		Amount:        decimal.RequireFromString(amount),
		PaymentMethod: models.MethodCash,
		PaymentStatus: models.StatusPaid,
		PaymentDate:   at,
	}
}

func TestComputeMarketStats_ComplianceCountsDistinctPayers(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	a := store.addTrader(market.ID, models.OccupancyShop)
	store.addTrader(market.ID, models.OccupancyOpen) // never pays

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)

	// Trader A pays twice; still one compliant trader.
	store.addPayment(paid(market.ID, &a.ID, "500", start.AddDate(0, 0, 2)))
	store.addPayment(paid(market.ID, &a.ID, "500", start.AddDate(0, 0, 9)))

	agg := NewAggregator(store)
	stats, err := agg.ComputeMarketStats(market.ID, start, end)
	require.NoError(t, err)

	assert.Equal(t, "1000", stats.TotalRevenue.String())
	assert.Equal(t, 2, stats.TransactionCount)
	assert.Equal(t, 2, stats.TotalTraders)
	assert.Equal(t, 1, stats.CompliantTraders)
	assert.Equal(t, 1, stats.NonCompliantTraders)
	assert.Equal(t, 50.0, stats.ComplianceRate)
}

func TestComputeMarketStats_ExcludesSetupAndNonPaidRows(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	a := store.addTrader(market.ID, models.OccupancyShop)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	store.addPayment(paid(market.ID, &a.ID, "500", start.AddDate(0, 0, 1)))

	setupRow := paid(market.ID, &a.ID, "9999", start.AddDate(0, 0, 1))
	setupRow.IsSetupRecord = true
	store.addPayment(setupRow)

	pending := paid(market.ID, &a.ID, "500", start.AddDate(0, 0, 2))
	pending.PaymentStatus = models.StatusPending
	store.addPayment(pending)

	failed := paid(market.ID, &a.ID, "500", start.AddDate(0, 0, 3))
	failed.PaymentStatus = models.StatusFailed
	store.addPayment(failed)

	agg := NewAggregator(store)
	stats, err := agg.ComputeMarketStats(market.ID, start, end)
	require.NoError(t, err)

	assert.Equal(t, "500", stats.TotalRevenue.String())
	assert.Equal(t, 1, stats.TransactionCount)
}

func TestComputeMarketStats_EmptyMarket(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Oyingbo")

	agg := NewAggregator(store)
	stats, err := agg.ComputeMarketStats(market.ID, time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalTraders)
	assert.Equal(t, 0.0, stats.ComplianceRate)
	assert.True(t, stats.TotalRevenue.IsZero())
}

func TestBucketByMonth_ZeroFillsEmptyMonths(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	marketID := uuid.New()
	traderID := uuid.New()
	payments := []models.LevyPayment{
		paid(marketID, &traderID, "100", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)),
		paid(marketID, &traderID, "250", time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)),
		paid(marketID, &traderID, "75", time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)),
	}

	buckets := BucketByMonth(payments, start, end)
	require.Len(t, buckets, 6)

	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, labels)

	assert.True(t, buckets[0].Revenue.IsZero())
	assert.Equal(t, "350", buckets[1].Revenue.String())
	assert.True(t, buckets[2].Revenue.IsZero())
	assert.Equal(t, "75", buckets[4].Revenue.String())
	assert.True(t, buckets[5].Revenue.IsZero())
}

func TestRevenueByMethod_LargestFirst(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	trader := store.addTrader(market.ID, models.OccupancyShop)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	cash := paid(market.ID, &trader.ID, "200", start.AddDate(0, 0, 1))
	store.addPayment(cash)
	transfer := paid(market.ID, &trader.ID, "900", start.AddDate(0, 0, 2))
	transfer.PaymentMethod = models.MethodTransfer
	store.addPayment(transfer)
	pos := paid(market.ID, &trader.ID, "400", start.AddDate(0, 0, 3))
	pos.PaymentMethod = models.MethodPOS
	store.addPayment(pos)

	agg := NewAggregator(store)
	methods, err := agg.RevenueByMethod(market.ID, start, end)
	require.NoError(t, err)
	require.Len(t, methods, 3)

	assert.Equal(t, models.MethodTransfer, methods[0].Method)
	assert.Equal(t, models.MethodPOS, methods[1].Method)
	assert.Equal(t, models.MethodCash, methods[2].Method)
	assert.Equal(t, 1, methods[0].Count)
}

func TestTopByRevenue(t *testing.T) {
	stats := []MarketStats{
		{MarketName: "A", TotalRevenue: decimal.RequireFromString("100")},
		{MarketName: "B", TotalRevenue: decimal.RequireFromString("400")},
		{MarketName: "C", TotalRevenue: decimal.RequireFromString("300")},
		{MarketName: "D", TotalRevenue: decimal.RequireFromString("200")},
	}

	top := TopByRevenue(stats, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "B", top[0].MarketName)
	assert.Equal(t, "C", top[1].MarketName)
	assert.Equal(t, "D", top[2].MarketName)

	// Input order untouched.
	assert.Equal(t, "A", stats[0].MarketName)
}

func TestTopByTraderCount(t *testing.T) {
	stats := []MarketStats{
		{MarketName: "A", TotalTraders: 5},
		{MarketName: "B", TotalTraders: 50},
		{MarketName: "C", TotalTraders: 20},
	}

	top := TopByTraderCount(stats, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "B", top[0].MarketName)
	assert.Equal(t, "C", top[1].MarketName)
}
