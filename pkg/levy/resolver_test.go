package levy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpadi/backend/models"
)

func occ(o models.OccupancyType) *models.OccupancyType { return &o }

func TestResolveActiveSetup_ExactBeatsWildcard(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// Wildcard created later than the exact setup; the exact one must still win.
	exact := store.addSetup(market.ID, occ(models.OccupancyShop), models.FrequencyDaily, "500", base)
	store.addSetup(market.ID, nil, models.FrequencyDaily, "200", base.Add(time.Hour))

	r := NewResolver(store)
	got, err := r.ResolveActiveSetup(market.ID, models.OccupancyShop, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, exact.ID, got.ID)
	assert.Equal(t, "500", got.Amount.String())
}

func TestResolveActiveSetup_WildcardCoversUnconfiguredOccupancy(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	wildcard := store.addSetup(market.ID, nil, models.FrequencyDaily, "200", time.Now())
	store.addSetup(market.ID, occ(models.OccupancyShop), models.FrequencyDaily, "500", time.Now())

	r := NewResolver(store)
	got, err := r.ResolveActiveSetup(market.ID, models.OccupancyOpen, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, wildcard.ID, got.ID)
}

func TestResolveActiveSetup_FrequencyPin(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	store.addSetup(market.ID, occ(models.OccupancyStall), models.FrequencyDaily, "100", time.Now())
	weekly := store.addSetup(market.ID, occ(models.OccupancyStall), models.FrequencyWeekly, "600", time.Now())

	r := NewResolver(store)
	freq := models.FrequencyWeekly
	got, err := r.ResolveActiveSetup(market.ID, models.OccupancyStall, &freq)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, weekly.ID, got.ID)
}

func TestResolveActiveSetup_NewestWinsAmongEquals(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store.addSetup(market.ID, occ(models.OccupancyShop), models.FrequencyDaily, "400", base)
	newest := store.addSetup(market.ID, occ(models.OccupancyShop), models.FrequencyDaily, "500", base.Add(time.Hour))

	r := NewResolver(store)
	got, err := r.ResolveActiveSetup(market.ID, models.OccupancyShop, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newest.ID, got.ID)
}

func TestResolveActiveSetup_NoneConfigured(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")

	r := NewResolver(store)
	got, err := r.ResolveActiveSetup(market.ID, models.OccupancyShop, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveActiveSetup_IgnoresInactive(t *testing.T) {
	store := newFakeStore()
	market := store.addMarket("Balogun")
	old := store.addSetup(market.ID, occ(models.OccupancyShop), models.FrequencyDaily, "300", time.Now())
	old.IsActive = false

	r := NewResolver(store)
	got, err := r.ResolveActiveSetup(market.ID, models.OccupancyShop, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}
