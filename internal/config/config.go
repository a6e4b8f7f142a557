package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Dataset source. DatasetURL takes precedence over DatasetPath when set.
	DatasetPath string
	DatasetURL  string
	HTTPTimeout time.Duration

	// Filter criteria inputs.
	Region          string
	RegionGeoJSON   string
	StartYear       int
	EndYear         int
	RequireLandfall bool
	MinCategory     string

	// Report output.
	ReportDir       string
	RefreshInterval time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	RegionCacheSize int

	// Kafka publishing configuration.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaReportTopic string

	// Postgres persistence configuration.
	PostgresEnabled bool
	PostgresDSN     string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	httpTimeoutStr := sharedcfg.EnvOrDefault("HTTP_TIMEOUT", "30s")
	httpTimeout, err2 := time.ParseDuration(httpTimeoutStr)
	if err2 != nil || httpTimeout <= 0 {
		return nil, errors.New("invalid HTTP_TIMEOUT")
	}

	refreshStr := sharedcfg.EnvOrDefault("REFRESH_INTERVAL", "0")
	refreshInterval, err2 := time.ParseDuration(refreshStr)
	if err2 != nil || refreshInterval < 0 {
		return nil, errors.New("invalid REFRESH_INTERVAL")
	}

	startYear, err := parseYear("YEAR_START", 1851)
	if err != nil {
		return nil, err
	}
	endYear, err := parseYear("YEAR_END", 2021)
	if err != nil {
		return nil, err
	}

	kafkaEnabled := sharedcfg.EnvOrDefault("KAFKA_ENABLED", "false") == "true"
	postgresDSN := os.Getenv("POSTGRES_DSN")
	postgresEnabled := postgresDSN != ""
	if v := os.Getenv("POSTGRES_ENABLED"); v != "" {
		postgresEnabled = v == "true"
	}

	cfg := &Config{
		DatasetPath: sharedcfg.EnvOrDefault("DATASET_PATH", "./data/hurdat2-1851-2021-100522.txt"),
		DatasetURL:  os.Getenv("DATASET_URL"),
		HTTPTimeout: httpTimeout,

		Region:          sharedcfg.EnvOrDefault("REGION", "florida"),
		RegionGeoJSON:   os.Getenv("REGION_GEOJSON"),
		StartYear:       startYear,
		EndYear:         endYear,
		RequireLandfall: sharedcfg.EnvOrDefault("REQUIRE_LANDFALL", "true") == "true",
		MinCategory:     os.Getenv("MIN_CATEGORY"),

		ReportDir:       sharedcfg.EnvOrDefault("REPORT_DIR", "./reports"),
		RefreshInterval: refreshInterval,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		RegionCacheSize: parseRegionCacheSize(),

		KafkaEnabled:     kafkaEnabled,
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReportTopic: sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "hurdat2-landfall-reports"),

		PostgresEnabled: postgresEnabled,
		PostgresDSN:     postgresDSN,
	}

	if cfg.DatasetPath == "" && cfg.DatasetURL == "" {
		return nil, errors.New("one of DATASET_PATH or DATASET_URL is required")
	}
	if cfg.ReportDir == "" {
		return nil, errors.New("REPORT_DIR is required")
	}
	if cfg.Region == "" && cfg.RegionGeoJSON == "" {
		return nil, errors.New("one of REGION or REGION_GEOJSON is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.PostgresEnabled && cfg.PostgresDSN == "" {
		return nil, errors.New("POSTGRES_ENABLED is true but POSTGRES_DSN is not set")
	}

	return cfg, nil
}

func parseYear(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseRegionCacheSize() int {
	if s := os.Getenv("REGION_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 10000
}
