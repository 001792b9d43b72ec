package levy

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketpadi/backend/models"
)

// fakeStore is an in-memory Store so the services can be exercised without a
// database. It mirrors the gorm store's contract, including the partial
// unique constraint on active setups.
type fakeStore struct {
	markets  map[uuid.UUID]*models.Market
	traders  map[uuid.UUID]*models.Trader
	setups   []*models.LevySetup
	payments map[uuid.UUID]*models.LevyPayment

	statsUpdates map[uuid.UUID]MarketStats
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		markets:      make(map[uuid.UUID]*models.Market),
		traders:      make(map[uuid.UUID]*models.Trader),
		payments:     make(map[uuid.UUID]*models.LevyPayment),
		statsUpdates: make(map[uuid.UUID]MarketStats),
	}
}

func (f *fakeStore) addMarket(name string) *models.Market {
	m := &models.Market{ID: uuid.New(), Name: name}
	f.markets[m.ID] = m
	return m
}

func (f *fakeStore) addTrader(marketID uuid.UUID, occupancy models.OccupancyType) *models.Trader {
	t := &models.Trader{ID: uuid.New(), MarketID: marketID, TraderOccupancy: occupancy}
	f.traders[t.ID] = t
	return t
}

func (f *fakeStore) addSetup(marketID uuid.UUID, occ *models.OccupancyType, freq models.PaymentFrequency, amount string, createdAt time.Time) *models.LevySetup {
	s := &models.LevySetup{
		ID:               uuid.New(),
		MarketID:         marketID,
		OccupancyType:    occ,
		PaymentFrequency: freq,
		Amount:           decimal.RequireFromString(amount),
		IsSetupRecord:    true,
		IsActive:         true,
		CreatedAt:        createdAt,
	}
	f.setups = append(f.setups, s)
	return s
}

func (f *fakeStore) addPayment(p models.LevyPayment) *models.LevyPayment {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.payments[p.ID] = &p
	return &p
}

func (f *fakeStore) ActiveSetups(marketID uuid.UUID) ([]models.LevySetup, error) {
	var out []models.LevySetup
	for _, s := range f.setups {
		if s.MarketID == marketID && s.IsSetupRecord && s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStore) SetupHistory(marketID uuid.UUID) ([]models.LevySetup, error) {
	var out []models.LevySetup
	for _, s := range f.setups {
		if s.MarketID == marketID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStore) ReplaceSetup(setup *models.LevySetup) error {
	sameCombination := func(s *models.LevySetup) bool {
		if s.MarketID != setup.MarketID || s.PaymentFrequency != setup.PaymentFrequency {
			return false
		}
		if (s.OccupancyType == nil) != (setup.OccupancyType == nil) {
			return false
		}
		return s.OccupancyType == nil || *s.OccupancyType == *setup.OccupancyType
	}
	for _, s := range f.setups {
		if s.IsActive && s.IsSetupRecord && sameCombination(s) {
			s.IsActive = false
		}
	}
	cp := *setup
	f.setups = append(f.setups, &cp)
	return nil
}

func (f *fakeStore) GetMarket(id uuid.UUID) (*models.Market, error) {
	m, ok := f.markets[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeStore) ListMarkets(filter MarketFilter) ([]models.Market, error) {
	var out []models.Market
	for _, m := range f.markets {
		if filter.MarketID != nil && m.ID != *filter.MarketID {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeStore) GetTrader(id uuid.UUID) (*models.Trader, error) {
	t, ok := f.traders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) CountTraders(marketID uuid.UUID) (int64, error) {
	var n int64
	for _, t := range f.traders {
		if t.MarketID == marketID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) UpdateMarketStats(marketID uuid.UUID, stats MarketStats, at time.Time) error {
	f.statsUpdates[marketID] = stats
	return nil
}

func (f *fakeStore) CreatePayment(p *models.LevyPayment) error {
	cp := *p
	f.payments[p.ID] = &cp
	return nil
}

func (f *fakeStore) GetPayment(id uuid.UUID) (*models.LevyPayment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) SavePayment(p *models.LevyPayment) error {
	cp := *p
	f.payments[p.ID] = &cp
	return nil
}

func (f *fakeStore) PaymentsInWindow(marketID uuid.UUID, start, end time.Time) ([]models.LevyPayment, error) {
	var out []models.LevyPayment
	for _, p := range f.payments {
		if p.MarketID != marketID {
			continue
		}
		if p.PaymentDate.Before(start) || p.PaymentDate.After(end) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}
