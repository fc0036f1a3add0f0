package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissing is returned by New when required settings are absent.
var ErrMissing = errors.New("missing required configuration")

type Config struct {
	App struct {
		Name     string
		Env      string
		LogLevel string
	}

	API struct {
		Host string
		Port string
	}

	TextSMS struct {
		APIKey    string
		PartnerID string
		SenderID  string

		SendURL           string
		BulkURL           string
		DeliveryReportURL string
		BalanceURL        string

		Timeout time.Duration
	}

	Cache struct {
		Enabled bool
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Audit struct {
		Enabled     bool
		AutoMigrate bool
	}

	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Refresher struct {
		Interval  time.Duration
		Timeout   time.Duration
		AutoStart bool
	}
}

// New loads configuration from the environment (and an optional .env file).
// The TextSMS credentials and endpoint URLs are mandatory.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	var missing []string

	required := func(key string) string {
		v := getEnv(key, "")
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	// App
	cfg.App.Name = getEnv("APP_NAME", "textsms-relay")
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.LogLevel = getEnv("LOG_LEVEL", "info")

	// API
	cfg.API.Host = getEnv("API_HOST", "0.0.0.0")
	cfg.API.Port = getEnv("API_PORT", getEnv("PORT", "3000"))

	// TextSMS gateway
	cfg.TextSMS.APIKey = required("TEXTSMS_API_KEY")
	cfg.TextSMS.PartnerID = required("TEXTSMS_PARTNER_ID")
	cfg.TextSMS.SenderID = required("TEXTSMS_SENDER_ID")
	cfg.TextSMS.SendURL = required("TEXTSMS_POST_URL")
	cfg.TextSMS.BulkURL = required("TEXTSMS_BULK_URL")
	cfg.TextSMS.DeliveryReportURL = required("TEXTSMS_DLR_URL")
	cfg.TextSMS.BalanceURL = required("TEXTSMS_BALANCE_URL")
	cfg.TextSMS.Timeout = getDuration("TEXTSMS_TIMEOUT", 10*time.Second)

	// Redis
	cfg.Cache.Enabled = getBool("CACHE_ENABLED", false)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "redis:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getInt("REDIS_DB", 0)

	// DB
	cfg.Audit.Enabled = getBool("AUDIT_ENABLED", false)
	// Multi-replica deployments turn this off and run cmd/migrate once instead.
	cfg.Audit.AutoMigrate = getBool("AUDIT_AUTO_MIGRATE", true)
	cfg.DB.Host = getEnv("DB_HOST", "db")
	cfg.DB.Port = getInt("DB_PORT", 5432)
	cfg.DB.User = getEnv("DB_USER", "root")
	cfg.DB.Password = getEnv("DB_PASSWORD", "")
	cfg.DB.Name = getEnv("DB_NAME", "db_textsms")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Balance refresher
	cfg.Refresher.Interval = getDuration("BALANCE_REFRESH_INTERVAL", 5*time.Minute)
	cfg.Refresher.Timeout = getDuration("BALANCE_REFRESH_TIMEOUT", 15*time.Second)
	cfg.Refresher.AutoStart = getBool("BALANCE_REFRESH_AUTOSTART", false)

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return isTruthy(v)
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// PostgresDSN builds the DSN used by the audit database connection.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.API.Host, c.API.Port)
}
