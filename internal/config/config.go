package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/airxelerate/flightboard/internal/models"
)

type Config struct {
	DB_HOST       string
	DB_PORT       string
	DB_USER       string
	DB_PASSWORD   string
	DB_NAME       string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string
	JWT_SECRET    string
	TOKEN_TTL     time.Duration
	KAFKA_ADDRESS string
	SERVER_ADDR   string
	LOG_LEVEL     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:       os.Getenv("DB_HOST"),
		DB_PORT:       os.Getenv("DB_PORT"),
		DB_USER:       os.Getenv("DB_USER"),
		DB_PASSWORD:   os.Getenv("DB_PASSWORD"),
		DB_NAME:       os.Getenv("DB_NAME"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		JWT_SECRET:    os.Getenv("JWT_SECRET"),
		TOKEN_TTL:     15 * time.Minute,
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		SERVER_ADDR:   os.Getenv("SERVER_ADDR"),
		LOG_LEVEL:     os.Getenv("LOG_LEVEL"),
	}

	if raw := os.Getenv("TOKEN_TTL_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			config.TOKEN_TTL = time.Duration(minutes) * time.Minute
		}
	}
	if config.SERVER_ADDR == "" {
		config.SERVER_ADDR = ":8080"
	}
	if config.JWT_SECRET == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Flight{}); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}
	return db, nil
}
