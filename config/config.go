package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/1MindLabs/mivro-server/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Fixed timeouts for outbound calls (Open Food Facts and Gemini).
const (
	APITimeout    = 60 * time.Second
	GeminiTimeout = 60 * time.Second
)

// Load reads the .env file if present. Missing files are fine in
// containerized deployments where the environment is set directly.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
}

func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.ScanHistory{},
		&models.ChatHistory{},
		&models.AnalyticsEvent{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}
