package levy

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketpadi/backend/models"
)

// MarketFilter narrows market listings for reports. Name filters are
// case-insensitive substring matches; MarketID pins the listing to a single
// market (scope-restricted callers).
type MarketFilter struct {
	LGAName    string
	MarketName string
	MarketID   *uuid.UUID
}

// Store is the explicit repository surface the levy core runs on. Queries
// return fully-materialized rows; there is no lazy navigation. The GORM
// implementation below is the production store; tests use an in-memory fake.
type Store interface {
	// Setups
	ActiveSetups(marketID uuid.UUID) ([]models.LevySetup, error)
	SetupHistory(marketID uuid.UUID) ([]models.LevySetup, error)
	ReplaceSetup(setup *models.LevySetup) error

	// Markets and traders
	GetMarket(id uuid.UUID) (*models.Market, error)
	ListMarkets(f MarketFilter) ([]models.Market, error)
	GetTrader(id uuid.UUID) (*models.Trader, error)
	CountTraders(marketID uuid.UUID) (int64, error)
	UpdateMarketStats(marketID uuid.UUID, stats MarketStats, at time.Time) error

	// Payments
	CreatePayment(p *models.LevyPayment) error
	GetPayment(id uuid.UUID) (*models.LevyPayment, error)
	SavePayment(p *models.LevyPayment) error
	PaymentsInWindow(marketID uuid.UUID, start, end time.Time) ([]models.LevyPayment, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a gorm connection in the levy Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) ActiveSetups(marketID uuid.UUID) ([]models.LevySetup, error) {
	var setups []models.LevySetup
	err := s.db.
		Where("market_id = ? AND is_setup_record = ? AND is_active = ?", marketID, true, true).
		Order("created_at DESC").
		Find(&setups).Error
	return setups, err
}

func (s *gormStore) SetupHistory(marketID uuid.UUID) ([]models.LevySetup, error) {
	var setups []models.LevySetup
	err := s.db.
		Where("market_id = ?", marketID).
		Order("created_at DESC").
		Find(&setups).Error
	return setups, err
}

// ReplaceSetup atomically deactivates any currently-active setup matching
// the new row's (market, occupancy, frequency) and inserts the new row. The
// partial unique index on active setups backstops races between two
// concurrent rate changes; a collision surfaces as ErrDuplicateActiveSetup.
func (s *gormStore) ReplaceSetup(setup *models.LevySetup) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.LevySetup{}).
			Where("market_id = ? AND payment_frequency = ? AND is_active = ?",
				setup.MarketID, setup.PaymentFrequency, true)
		if setup.OccupancyType == nil {
			q = q.Where("occupancy_type IS NULL")
		} else {
			q = q.Where("occupancy_type = ?", *setup.OccupancyType)
		}
		if err := q.Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(setup).Error
	})
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrDuplicateActiveSetup
	}
	return err
}

func (s *gormStore) GetMarket(id uuid.UUID) (*models.Market, error) {
	var m models.Market
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *gormStore) ListMarkets(f MarketFilter) ([]models.Market, error) {
	q := s.db.Model(&models.Market{})
	if f.MarketID != nil {
		q = q.Where("markets.id = ?", *f.MarketID)
	}
	if f.MarketName != "" {
		q = q.Where("markets.name ILIKE ?", "%"+f.MarketName+"%")
	}
	if f.LGAName != "" {
		q = q.Joins("JOIN local_governments ON local_governments.id = markets.local_government_id").
			Where("local_governments.name ILIKE ?", "%"+f.LGAName+"%")
	}
	var markets []models.Market
	err := q.Order("markets.name").Find(&markets).Error
	return markets, err
}

func (s *gormStore) GetTrader(id uuid.UUID) (*models.Trader, error) {
	var t models.Trader
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *gormStore) CountTraders(marketID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.Model(&models.Trader{}).Where("market_id = ?", marketID).Count(&n).Error
	return n, err
}

// UpdateMarketStats refreshes the market row's cached aggregate columns.
// They are snapshots only; the payment rows stay the source of truth.
func (s *gormStore) UpdateMarketStats(marketID uuid.UUID, stats MarketStats, at time.Time) error {
	return s.db.Model(&models.Market{}).
		Where("id = ?", marketID).
		Updates(map[string]interface{}{
			"total_revenue":         stats.TotalRevenue,
			"total_traders":         stats.TotalTraders,
			"compliance_rate":       stats.ComplianceRate,
			"compliant_traders":     stats.CompliantTraders,
			"non_compliant_traders": stats.NonCompliantTraders,
			"stats_refreshed_at":    at,
		}).Error
}

func (s *gormStore) CreatePayment(p *models.LevyPayment) error {
	return s.db.Create(p).Error
}

func (s *gormStore) GetPayment(id uuid.UUID) (*models.LevyPayment, error) {
	var p models.LevyPayment
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *gormStore) SavePayment(p *models.LevyPayment) error {
	return s.db.Save(p).Error
}

// PaymentsInWindow returns every payment row for the market with a payment
// date inside [start, end], setup-mirror rows included. The aggregator is
// responsible for excluding IsSetupRecord and non-Paid rows so that the
// filtering rule lives in exactly one place.
func (s *gormStore) PaymentsInWindow(marketID uuid.UUID, start, end time.Time) ([]models.LevyPayment, error) {
	var payments []models.LevyPayment
	err := s.db.
		Where("market_id = ? AND payment_date >= ? AND payment_date <= ?", marketID, start, end).
		Order("payment_date").
		Find(&payments).Error
	return payments, err
}
