package config

import (
	"errors"
	"os"
)

// Config carries everything the process needs at startup. Loaded once in
// main and passed into constructors; nothing reads env after this.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	ListenAddr  string

	UploadDir     string
	MaxUploadSize string // echo BodyLimit format, e.g. "16M"

	ResetLinkBase string // reset token is appended to this URL
	ResendAPIKey  string // optional; reset links are logged when empty
	ResendFrom    string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
		MaxUploadSize: getenv("MAX_UPLOAD_SIZE", "16M"),
		ResetLinkBase: getenv("RESET_LINK_BASE", "http://localhost:5173/reset-password/"),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		ResendFrom:    getenv("RESEND_FROM", "Lovejoy Antiques<onboarding@resend.dev>"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	cfg.ListenAddr = ":" + port

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
