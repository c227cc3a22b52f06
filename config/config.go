package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	// Persistence webhook (Apps Script web app). The sheet behind it is the
	// system of record for every lead; without this URL submissions fail hard.
	AppsScriptWebhookURL string
	SiteURL              string
	// SMTP Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPSecure   bool // implicit SSL (465) when true, STARTTLS otherwise
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string
	// Internal alert recipients, comma-separated
	NotifyEmails string
}

func LoadConfig() (*Config, error) {
	// Load .env if present; ignored in production where env is injected.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		AppsScriptWebhookURL: getEnv("APPS_SCRIPT_WEBAPP_URL", ""),
		SiteURL:              strings.TrimRight(getEnv("SITE_URL", ""), "/"),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             getEnvInt("SMTP_PORT", 465),
		SMTPSecure:           getEnvBool("SMTP_SECURE", true),
		SMTPUser:             getEnv("SMTP_USER", ""),
		SMTPPassword:         getEnv("SMTP_PASS", ""),
		EmailFrom:            getEnv("EMAIL_FROM", ""),
		NotifyEmails:         getEnv("NOTIFY_EMAILS", ""),
	}

	// Mirrors nodemailer-style setups where the login doubles as the sender.
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.SMTPUser
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
