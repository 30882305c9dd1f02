package database

import (
	"log"

	"reportflow/utils"
)

// RunMigrations runs all database migrations
func RunMigrations() error {
	log.Println("Running database migrations...")

	// AutoMigrate will create tables if they don't exist
	if err := DB.AutoMigrate(
		&User{},
		&Report{},
		&Workflow{},
		&AuditLog{},
	); err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultAdmin creates a default System Admin if none exists
func SeedDefaultAdmin() {
	var count int64
	if err := DB.Model(&User{}).Where("role = ?", RoleSystemAdmin).Count(&count).Error; err != nil {
		log.Printf("Failed to check existing admin: %v", err)
		return
	}

	if count == 0 {
		hash, err := utils.HashPassword("admin123")
		if err != nil {
			log.Printf("Failed to hash default admin password: %v", err)
			return
		}

		admin := User{
			Name:          "Super Admin",
			Email:         "admin@reportflow.local",
			Password:      hash,
			Phone:         "0900000000",
			Role:          RoleSystemAdmin,
			JobPosition:   "System Administrator",
			StructureUnit: "Head Office",
		}

		if err := DB.Create(&admin).Error; err != nil {
			log.Printf("Failed to create default admin: %v", err)
		} else {
			log.Println("Default admin user created successfully.")
		}
	}
}
