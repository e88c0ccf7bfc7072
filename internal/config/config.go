package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"idb-monitor/internal/source"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	defaultFieldURL = "https://zgypltdsqjhftnxadunu.supabase.co/storage/v1/object/public/dashboard-assets/converted_data_latest.json"
	defaultBOQURL   = "https://zgypltdsqjhftnxadunu.supabase.co/storage/v1/object/public/dashboard-assets/BOQ-IDB.json"
)

// Issue synthesis policies.
const (
	IssuePolicyRandom = "random"
	IssuePolicyGood   = "good"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sources             source.Sources `validate:"required"`
	FetchTimeout        time.Duration  `validate:"min=1s"`
	DataPath            string         `validate:"required"`
	LogDir              string
	CacheDir            string
	HTTPAddr            string `validate:"required,hostname_port"`
	RefreshCron         string
	IssueSeed           int64
	IssuePolicy         string `validate:"oneof=random good"`
	PageSize            int    `validate:"min=1,max=500"`
	EnableMermaidCharts bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))
	cacheDir := filepath.Join(dataPath, "cache")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", cacheDir).Msg("Failed to create cache directory")
	}

	cfg := &AppConfig{
		Sources: source.Sources{
			FieldURL:      getEnv("FIELD_DATA_URL", defaultFieldURL),
			FieldFallback: getEnv("FIELD_DATA_FALLBACK", ""),
			BOQURL:        getEnv("BOQ_DATA_URL", defaultBOQURL),
			BOQFallback:   getEnv("BOQ_DATA_FALLBACK", ""),
		},
		FetchTimeout:        time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
		DataPath:            dataPath,
		LogDir:              logDir,
		CacheDir:            cacheDir,
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		RefreshCron:         getEnv("REFRESH_CRON", ""),
		IssueSeed:           int64(getEnvInt("ISSUE_SEED", 0)),
		IssuePolicy:         getEnv("ISSUE_POLICY", IssuePolicyRandom),
		PageSize:            getEnvInt("PAGE_SIZE", 25),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the assembled configuration.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Sources.FieldURL == "" || c.Sources.BOQURL == "" {
		return fmt.Errorf("invalid configuration: FIELD_DATA_URL and BOQ_DATA_URL must be set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric configuration value")
	}
	return fallback
}
