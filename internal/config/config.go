package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cast"
)

const minSecretLen = 32

type Config struct {
	ListenAddr             string
	DBPath                 string
	ExportPath             string
	JWTSecret              string
	TokenTTL               time.Duration
	RefreshSchedule        string
	BackupPruneSchedule    string
	BackupKeep             int
	LowStockThreshold      int
	CriticalStockThreshold int
	SeedSampleData         bool
	LogLevel               string
	LogFormat              string
	LogFile                string
	TestMode               bool
}

func Load() *Config {
	return &Config{
		ListenAddr:             getEnv("LISTEN_ADDR", ":8080"),
		DBPath:                 getEnv("DB_PATH", "/data/officepantry.db"),
		ExportPath:             getEnv("EXPORT_PATH", "/data/exports"),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		TokenTTL:               getDuration("TOKEN_TTL", 24*time.Hour),
		RefreshSchedule:        getEnv("REFRESH_SCHEDULE", "@every 30s"),
		BackupPruneSchedule:    getEnv("BACKUP_PRUNE_SCHEDULE", "@daily"),
		BackupKeep:             getInt("BACKUP_KEEP", 10),
		LowStockThreshold:      getInt("LOW_STOCK_THRESHOLD", 20),
		CriticalStockThreshold: getInt("CRITICAL_STOCK_THRESHOLD", 10),
		SeedSampleData:         getBool("SEED_SAMPLE_DATA", false),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "json"),
		LogFile:                getEnv("LOG_FILE", ""),
		TestMode:               os.Getenv("OFFICEPANTRY_TEST_MODE") == "1",
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if !c.TestMode {
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required")
		}
		if len(c.JWTSecret) < minSecretLen {
			return errors.New("JWT_SECRET must be at least 32 characters")
		}
	}
	if c.CriticalStockThreshold > c.LowStockThreshold {
		return errors.New("CRITICAL_STOCK_THRESHOLD must not exceed LOW_STOCK_THRESHOLD")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

// getInt, getBool and getDuration fall back to defaultVal when the variable
// is unset or does not parse.
func getInt(key string, defaultVal int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	n, err := cast.ToIntE(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getBool(key string, defaultVal bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	b, err := cast.ToBoolE(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	d, err := cast.ToDurationE(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
