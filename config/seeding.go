package config

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/marketpadi/backend/models"
)

// RunAllSeeding runs all seeding operations in order. Each step skips rows
// that already exist, so re-running is safe.
func RunAllSeeding() error {
	log.Println("=== Starting Database Seeding ===")

	log.Println("[1/2] Seeding Local Governments...")
	SeedLocalGovernments()

	log.Println("[2/2] Seeding Admin User...")
	SeedAdminUser()

	log.Println("=== Database Seeding Complete ===")
	return nil
}

// SeedLocalGovernments creates the default authority list.
func SeedLocalGovernments() {
	lgas := []models.LocalGovernment{
		{Name: "Ikeja", State: "Lagos", Code: "IKJ"},
		{Name: "Surulere", State: "Lagos", Code: "SRL"},
		{Name: "Abeokuta South", State: "Ogun", Code: "ABS"},
	}
	for _, lga := range lgas {
		var existing models.LocalGovernment
		err := DB.Where("code = ?", lga.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := DB.Create(&lga).Error; err != nil {
				log.Printf("failed to seed local government %s: %v", lga.Code, err)
			} else {
				log.Printf("seeded local government %s (%s)", lga.Name, lga.Code)
			}
		}
	}
}

// SeedAdminUser creates the bootstrap admin if none exists. The password
// comes from ADMIN_PASSWORD; without it the step is skipped.
func SeedAdminUser() {
	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seeding")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Name:         "System Admin",
		Email:        "admin@marketpadi.local",
		Phone:        "0000000000",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("failed to seed admin user: %v", err)
		return
	}
	log.Println("seeded default admin user")
}
