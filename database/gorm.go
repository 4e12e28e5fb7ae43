package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eventra-api/models"
)

// Connection wraps a GORM handle together with its lifecycle. It is created
// once in main, shared by every repository, and closed on shutdown.
type Connection struct {
	DB *gorm.DB
}

// NewConnection opens a Postgres connection and migrates the schema
func NewConnection(dbURL string) (*Connection, error) {
	if dbURL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	// Configure GORM logger
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)

	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey, which the repositories map to models.ErrConflict.
	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// Get and configure the underlying SQL DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %v", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("✅ Connected to database")

	return &Connection{DB: db}, nil
}

// Migrate migrates the database schema, including the partial unique indexes
// that enforce uniqueness among live records only
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate: %v", err)
	}
	return nil
}

// Close releases the underlying connection pool
func (c *Connection) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
