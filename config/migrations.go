package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/marketpadi/backend/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "10012026_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.LocalGovernment{}, &models.Chairman{},
					&models.Caretaker{}, &models.GoodBoy{}, &models.Market{}, &models.Trader{},
					&models.BuildingType{}, &models.LevySetup{}, &models.LevyPayment{})
			},
		},
		{
			ID: "10012026_create_commerce_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Vendor{}, &models.Customer{}, &models.Advertisement{})
			},
		},
		{
			// At most one active setup per (market, occupancy, frequency).
			// COALESCE folds the wildcard (NULL occupancy) into the key so
			// two active wildcard rows for the same frequency also collide.
			ID: "12012026_unique_active_levy_setup",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_levy_setups_active_rate
					ON levy_setups (market_id, COALESCE(occupancy_type, ''), payment_frequency)
					WHERE is_active AND is_setup_record`).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS uq_levy_setups_active_rate").Error
			},
		},
		{
			ID: "15012026_payment_window_index",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_levy_payments_market_window
					ON levy_payments (market_id, payment_date)`).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_levy_payments_market_window").Error
			},
		},
	})
	return m.Migrate()
}
