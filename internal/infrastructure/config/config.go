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

const (
	EnvProduction = "production"

	SessionStoreSQL   = "sql"
	SessionStoreRedis = "redis"

	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"

	minSecretLength = 32
	devSecret       = "labtrack-development-secret-change-me"
)

type Config struct {
	Port string
	Env  string

	// Database
	DBDriver       string
	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnLifetime time.Duration
	DBConnIdleTime time.Duration

	// Sessions
	SessionSecret        string
	SessionTTL           time.Duration
	SessionCookieName    string
	SessionCookieSecure  bool
	SessionStore         string
	SessionSweepInterval time.Duration

	// Redis session store
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	BcryptCost int
}

// Load reads configuration from the environment. Outside production a .env
// file is loaded first when present.
func Load() *Config {
	if os.Getenv("APP_ENV") != EnvProduction {
		godotenv.Load()
	}

	return &Config{
		Port:                 getEnv("PORT", "3000"),
		Env:                  getEnv("APP_ENV", "development"),
		DBDriver:             getEnv("DB_DRIVER", DriverSQLite),
		DatabaseURL:          getEnv("DATABASE_URL", "./data/labtrack.db"),
		DBMaxOpenConns:       int(getEnvAsInt64("DB_MAX_OPEN_CONNS", 20)),
		DBMaxIdleConns:       int(getEnvAsInt64("DB_MAX_IDLE_CONNS", 5)),
		DBConnLifetime:       getEnvAsDuration("DB_CONN_LIFETIME", 30*time.Minute),
		DBConnIdleTime:       getEnvAsDuration("DB_CONN_IDLE_TIME", 10*time.Minute),
		SessionSecret:        getEnv("SESSION_SECRET", ""),
		SessionTTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		SessionCookieName:    getEnv("SESSION_COOKIE_NAME", "labtrack.sid"),
		SessionCookieSecure:  getEnvAsBool("SESSION_COOKIE_SECURE", false),
		SessionStore:         getEnv("SESSION_STORE", SessionStoreSQL),
		SessionSweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              int(getEnvAsInt64("REDIS_DB", 0)),
		BcryptCost:           int(getEnvAsInt64("BCRYPT_COST", 10)),
	}
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate checks the settings and fills the development session secret
// when none is configured outside production.
func (c *Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}

	switch c.SessionStore {
	case SessionStoreSQL, SessionStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore))
	}

	if c.SessionSecret == "" && !c.IsProduction() {
		c.SessionSecret = devSecret
	}
	if len(c.SessionSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSecretLength))
	}

	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST %d out of range", c.BcryptCost))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
