package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/portfolio-api/internal/platform/mail"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port         string
	Env          string
	DataDir      string
	Mail         mail.Config
	EmailFrom    string
	EmailTo      string
	MailTimeout  time.Duration
	AllowOrigins []string
}

// Production reports whether the process runs with APP_ENV=production.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadConfig reads .env (when present) and the environment, applies defaults,
// and validates basic constraints.
func LoadConfig() (Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := Config{
		Port:    envDefault("PORT", "5000"),
		Env:     envDefault("APP_ENV", "development"),
		DataDir: envDefault("DATA_DIR", "./data"),
		Mail: mail.Config{
			Username: strings.TrimSpace(os.Getenv("EMAIL_USER")),
			Password: os.Getenv("EMAIL_PASS"),
			Host:     envDefault("SMTP_HOST", mail.DefaultHost),
		},
		MailTimeout:  10 * time.Second,
		AllowOrigins: splitList(envDefault("CORS_ALLOW_ORIGINS", "*")),
	}
	cfg.EmailFrom = envDefault("EMAIL_FROM", cfg.Mail.Username)
	cfg.EmailTo = envDefault("EMAIL_TO", cfg.Mail.Username)

	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", cfg.Port)
	}
	if raw := strings.TrimSpace(os.Getenv("SMTP_PORT")); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("SMTP_PORT must be a number between 1 and 65535, got %q", raw)
		}
		cfg.Mail.Port = port
	} else {
		cfg.Mail.Port = mail.DefaultPort
	}
	if raw := strings.TrimSpace(os.Getenv("MAIL_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return Config{}, fmt.Errorf("MAIL_TIMEOUT must be a positive duration such as 10s, got %q", raw)
		}
		cfg.MailTimeout = timeout
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
