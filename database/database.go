package database

import (
	"fmt"
	"os"

	"github.com/partyup/matchmaking_backend/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect establishes a connection to the database
func Connect(logger *zap.Logger) error {
	var err error

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
	}

	user := os.Getenv("DB_USER")
	if user == "" {
		user = "postgres"
	}

	password := os.Getenv("DB_PASS")
	if password == "" {
		password = "postgres"
	}

	dbname := os.Getenv("DB_NAME")
	if dbname == "" {
		dbname = "partyup"
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		host, user, password, dbname, port)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	logger.Info("database connection established",
		zap.String("host", host),
		zap.String("dbname", dbname),
	)
	return nil
}

// Migrate automatically migrates the database schema
func Migrate(logger *zap.Logger) error {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Party{},
		&models.Spot{},
		&models.SpotRole{},
		&models.Requirement{},
		&models.PartyMessage{},
		&models.ArchivedMessage{},
	)
	if err != nil {
		return err
	}
	logger.Info("database migration completed")
	return nil
}
