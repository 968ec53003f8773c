package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/config"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/models"
)

var MasterDB *gorm.DB

func InitDB(cfg config.Config) {
	if cfg.DatabaseURL == "" {
		log.Fatal("InitDB: DATABASE_URL is not set")
	}
	master, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("InitDB: failed to connect to DB: %v", err)
	}
	if err := master.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Fatalf("InitDB: failed to enable uuid-ossp: %v", err)
	}
	MasterDB = master
	log.Println("Connected & configured DB")

	if err := MasterDB.AutoMigrate(
		&models.UserAccount{},
		&models.EmployeeProfile{},
		&models.Comment{},
		&models.ActivityLog{},
		&models.TransportRoute{},
		&models.PickupPoint{},
		&models.Notification{},
		&models.NotificationPreferences{},
	); err != nil {
		log.Fatalf("InitDB: migration failed: %v", err)
	}
	log.Println("DB migrations complete")
}
