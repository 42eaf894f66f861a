package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

type Config struct {
	BoardRows          int
	BoardColumns       int
	CatName            string
	MouseName          string
	LogLevel           string
	LogDevelopment     bool
	NoColor            bool
	CleanupInterval    time.Duration
	FinishedSessionTTL time.Duration
	ActiveSessionTTL   time.Duration

	// Warnings collects env values that could not be parsed and fell back to
	// their defaults. The logger does not exist yet when config is loaded.
	Warnings []string
}

func LoadConfig() *Config {
	cfg := &Config{}

	// Board
	cfg.BoardRows = cfg.GetEnvAsInt("BOARD_ROWS", 6)
	cfg.BoardColumns = cfg.GetEnvAsInt("BOARD_COLUMNS", 7)
	cfg.CatName = GetEnv("PLAYER_A_NAME", "Cat")
	cfg.MouseName = GetEnv("PLAYER_B_NAME", "Mouse")

	// Logging & output
	cfg.LogLevel = GetEnv("LOG_LEVEL", "info")
	cfg.LogDevelopment = cfg.GetEnvAsBool("LOG_DEVELOPMENT", false)
	cfg.NoColor = cfg.GetEnvAsBool("NO_COLOR", false)

	// Session housekeeping
	cfg.CleanupInterval = time.Duration(cfg.GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 60)) * time.Minute
	cfg.FinishedSessionTTL = time.Duration(cfg.GetEnvAsInt("FINISHED_SESSION_TTL_MINUTES", 60)) * time.Minute
	cfg.ActiveSessionTTL = time.Duration(cfg.GetEnvAsInt("ACTIVE_SESSION_TTL_HOURS", 24)) * time.Hour

	return cfg
}

// BindFlags registers command line overrides for the settings a player is
// likely to change. Defaults come from cfg, so flags win over env.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVarP(&cfg.BoardRows, "rows", "r", cfg.BoardRows, "number of board rows")
	fs.IntVarP(&cfg.BoardColumns, "columns", "c", cfg.BoardColumns, "number of board columns")
	fs.StringVar(&cfg.CatName, "cat", cfg.CatName, "display name of the player moving first")
	fs.StringVar(&cfg.MouseName, "mouse", cfg.MouseName, "display name of the player moving second")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.LogDevelopment, "log-dev", cfg.LogDevelopment, "human friendly development logging")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable coloured pieces")
}

// Validate rejects settings no game could be played with.
func (c *Config) Validate() error {
	if c.BoardRows < 1 || c.BoardColumns < 1 {
		return fmt.Errorf("board must be at least 1x1, got %dx%d", c.BoardRows, c.BoardColumns)
	}
	if c.BoardColumns > 9 {
		// the console host labels columns with single digits
		return fmt.Errorf("at most 9 columns are supported, got %d", c.BoardColumns)
	}
	if c.CatName == c.MouseName {
		return fmt.Errorf("players need distinct names, both are %q", c.CatName)
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Config) GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue))
		return defaultValue
	}
	return value
}

func (c *Config) GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue))
		return defaultValue
	}
	return value
}
