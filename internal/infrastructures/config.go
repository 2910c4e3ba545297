package infrastructures

import (
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DATABASE_URL   string
	REDIS_ADDRESS  string
	REDIS_PASSWORD string
	JWT_SECRET     string
	GEMINI_API_KEY string
	APP_BASE_URL   string
	UPLOAD_DIR     string
	PORT           string
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	Config = &AppConfig{
		DATABASE_URL:   os.Getenv("DATABASE_URL"),
		REDIS_ADDRESS:  os.Getenv("REDIS_ADDRESS"),
		REDIS_PASSWORD: os.Getenv("REDIS_PASSWORD"),
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		GEMINI_API_KEY: os.Getenv("GEMINI_API_KEY"),
		APP_BASE_URL:   getEnv("APP_BASE_URL", "http://localhost:8080"),
		UPLOAD_DIR:     getEnv("UPLOAD_DIR", "./uploads"),
		PORT:           getEnv("PORT", "8080"),
	}

	return Config
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
