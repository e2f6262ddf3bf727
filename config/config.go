// Package config loads process configuration from the environment.
package config

import (
	"os"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port               string
	DatabaseURL        string
	AccessTokenSecret  string
	RefreshTokenSecret string
	SendGridAPIKey     string
	MailSender         string
	UploadDir          string
	LogLevel           string
}

// Load reads the environment with defaults for local development.
func Load() Config {
	return Config{
		Port:               getEnv("PORT", "5000"),
		DatabaseURL:        getEnv("DATABASE_URL", "mongodb://localhost:27017"),
		AccessTokenSecret:  os.Getenv("ACCESSTOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESHTOKEN_SECRET"),
		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		MailSender:         getEnv("MAIL_SENDER", "no-reply@shoes-store.local"),
		UploadDir:          getEnv("UPLOAD_DIR", "public"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
