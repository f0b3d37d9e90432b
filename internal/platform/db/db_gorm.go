// Package db opens the PostgreSQL connection and applies the schema.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	mealadapters "diet_backend/internal/feature/meals/adapters"
	useradapters "diet_backend/internal/feature/users/adapters"
)

const retryInterval = 3 * time.Second

// Config holds the database connection settings.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// LoadConfigFromEnv reads the DB_* environment variables.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg
}

// BuildDSN renders cfg as a libpq key/value connection string.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// OpenPostgres is the production Opener.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// ConnectWithRetry calls open every few seconds until it succeeds or timeout
// elapses. The database container often starts after the API.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// OpenDB connects to PostgreSQL using cfg, retrying for up to a minute.
func OpenDB(cfg Config) (*gorm.DB, error) {
	return ConnectWithRetry(BuildDSN(cfg), 60*time.Second, OpenPostgres)
}

// Migrate creates or updates the users and meals tables. On PostgreSQL it
// also adds the meals.user_id foreign key.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("db is nil")
	}
	if err := db.AutoMigrate(&useradapters.UserModel{}, &mealadapters.MealModel{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	if err := db.Exec(addMealOwnerFK).Error; err != nil {
		return fmt.Errorf("add meals owner foreign key: %w", err)
	}
	return nil
}

// addMealOwnerFK is idempotent so Migrate can run on every boot.
const addMealOwnerFK = `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'fk_meals_user'
	) THEN
		ALTER TABLE meals
			ADD CONSTRAINT fk_meals_user FOREIGN KEY (user_id)
			REFERENCES users (id) ON DELETE RESTRICT;
	END IF;
END
$$;`
