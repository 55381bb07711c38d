package database

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/boobalan-mca23/jeevagold/config"
	"github.com/boobalan-mca23/jeevagold/internal/models"
	"github.com/boobalan-mca23/jeevagold/internal/utils"
)

// SeedAdmin creates the configured admin account on first boot. Existing
// users are never modified.
func SeedAdmin() {
	username := config.AppConfig.Defaults.AdminUsername
	password := config.AppConfig.Defaults.AdminPassword
	if username == "" || password == "" {
		log.Println("Admin credentials not configured, skipping seed")
		return
	}

	var admin models.User
	err := DB.Where("username = ?", username).First(&admin).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check admin user: %v", err)
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	if err := DB.Create(&models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         "admin",
	}).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Println("Admin user seeded.")
}
