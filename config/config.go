package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"productconsole/logger"
)

// LogConfig holds the settings shared by both binaries for the logger package.
type LogConfig struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Dir        string `env:"LOG_DIR" envDefault:"./logs"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"10"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"7"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	UseColor   bool   `env:"LOG_COLOR" envDefault:"true"`
	ShowCaller bool   `env:"LOG_CALLER" envDefault:"false"`
}

// ConsoleConfig configures the web console.
type ConsoleConfig struct {
	Addr string `env:"CONSOLE_ADDR" envDefault:":3000"`

	// APIBaseURL is the backend product service base, including the /api prefix.
	APIBaseURL string        `env:"CONSOLE_API_BASE_URL" envDefault:"http://localhost:8080/api"`
	APITimeout time.Duration `env:"CONSOLE_API_TIMEOUT" envDefault:"0s"`
	// APITokenSecret enables the bearer service token on backend calls when non-empty.
	APITokenSecret string `env:"CONSOLE_API_TOKEN_SECRET"`

	// MaskedDeleteStatuses lists backend statuses that delete calls report as success.
	// MaskDeleteFailures=false turns the policy off regardless of the list.
	MaskedDeleteStatuses []int `env:"CONSOLE_MASKED_DELETE_STATUSES" envSeparator:"," envDefault:"500"`
	MaskDeleteFailures   bool  `env:"CONSOLE_MASK_DELETE_FAILURES" envDefault:"true"`

	SessionSecret string        `env:"CONSOLE_SESSION_SECRET" envDefault:"change-this-session-secret"`
	SessionSecure bool          `env:"CONSOLE_SESSION_SECURE" envDefault:"false"`
	DraftTTL      time.Duration `env:"CONSOLE_DRAFT_TTL" envDefault:"2h"`
	MaxUploadMB   int64         `env:"CONSOLE_MAX_UPLOAD_MB" envDefault:"100"`

	OTELCollectorHost string `env:"OTEL_COLLECTOR_HOST"`

	Log LogConfig
}

// DeleteMaskStatuses is the status list for client.Options. It is empty, never nil,
// when masking is disabled so the client does not fall back to its default.
func (c ConsoleConfig) DeleteMaskStatuses() []int {
	if !c.MaskDeleteFailures || c.MaskedDeleteStatuses == nil {
		return []int{}
	}
	return c.MaskedDeleteStatuses
}

// CatalogConfig configures the reference catalog backend.
type CatalogConfig struct {
	Addr       string `env:"CATALOG_ADDR" envDefault:":8080"`
	DBType     string `env:"CATALOG_DB_TYPE" envDefault:"sqlite"`
	DSN        string `env:"CATALOG_DSN" envDefault:"./catalog.db"`
	StorageDir string `env:"CATALOG_STORAGE_DIR" envDefault:"./data/files"`
	PublicURL  string `env:"CATALOG_PUBLIC_URL" envDefault:"http://localhost:8080"`

	TokenSecret       string        `env:"CATALOG_TOKEN_SECRET"`
	DownloadSecret    string        `env:"CATALOG_DOWNLOAD_SECRET" envDefault:"change-this-download-url-secret"`
	DownloadURLExpiry time.Duration `env:"CATALOG_DOWNLOAD_URL_EXPIRY" envDefault:"1h"`
	MaxUploadMB       int64         `env:"CATALOG_MAX_UPLOAD_MB" envDefault:"100"`

	// DeleteFails makes product deletes answer 500, like the unfinished backend the console tolerates.
	DeleteFails bool   `env:"CATALOG_DELETE_FAILS" envDefault:"false"`
	SweepSpec   string `env:"CATALOG_SWEEP_SPEC" envDefault:"@hourly"`

	OTELCollectorHost string `env:"OTEL_COLLECTOR_HOST"`

	Log LogConfig
}

// LoadConsole reads .env (when present) and the environment into a ConsoleConfig.
func LoadConsole() (ConsoleConfig, error) {
	loadDotEnv()
	var cfg ConsoleConfig
	if err := env.Parse(&cfg); err != nil {
		return ConsoleConfig{}, fmt.Errorf("parse console env: %w", err)
	}
	return cfg, nil
}

// LoadCatalog reads .env (when present) and the environment into a CatalogConfig.
func LoadCatalog() (CatalogConfig, error) {
	loadDotEnv()
	var cfg CatalogConfig
	if err := env.Parse(&cfg); err != nil {
		return CatalogConfig{}, fmt.Errorf("parse catalog env: %w", err)
	}
	return cfg, nil
}

func loadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// Logger converts the env-level settings into logger.Config.
func (c LogConfig) Logger(fileName string) logger.Config {
	level, err := logger.ParseLevel(c.Level)
	if err != nil {
		level = logger.INFO
	}
	return logger.Config{
		Level:      level,
		LogDir:     c.Dir,
		FileName:   fileName,
		MaxSize:    c.MaxSizeMB,
		MaxAge:     c.MaxAgeDays,
		MaxBackups: c.MaxBackups,
		UseColor:   c.UseColor,
		ShowCaller: c.ShowCaller,
	}
}
