package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// MinChartDPI is the lowest resolution accepted for saved charts.
const MinChartDPI = 300

// Config holds all program settings, populated from environment variables.
// Defaults reproduce a plain run against 4150697.csv in the working directory.
type Config struct {
	InputPath  string
	OutputPath string
	Debug      bool

	LogLevel        string
	LogFormat       string
	HTTPAddr        string
	OpenBrowser     bool
	ShutdownTimeout time.Duration

	ChartDPI    float64
	ChartPeriod string

	// Kafka export of extracted observations.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	debug, err := parseBool("DEBUG", false)
	if err != nil {
		return nil, err
	}

	openBrowser, err := parseBool("VIEW_OPEN_BROWSER", true)
	if err != nil {
		return nil, err
	}

	dpi, err := parseChartDPI()
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		InputPath:       sharedcfg.EnvOrDefault("INPUT_PATH", "4150697.csv"),
		OutputPath:      sharedcfg.EnvOrDefault("OUTPUT_PATH", "weather_data.png"),
		Debug:           debug,
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", "127.0.0.1:8080"),
		OpenBrowser:     openBrowser,
		ShutdownTimeout: shutdownTimeout,
		ChartDPI:        dpi,
		ChartPeriod:     sharedcfg.EnvOrDefault("CHART_PERIOD", "2024/2025"),
		KafkaBrokers:    brokers,
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "daily-temperatures"),
		KafkaEnabled:    kafkaEnabled,
	}

	if cfg.InputPath == "" {
		return nil, errors.New("INPUT_PATH is required")
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("OUTPUT_PATH is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when Kafka export is enabled")
	}

	return cfg, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.New("invalid " + key)
	}
	return v, nil
}

func parseChartDPI() (float64, error) {
	s := os.Getenv("CHART_DPI")
	if s == "" {
		return MinChartDPI, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < MinChartDPI {
		return 0, errors.New("invalid CHART_DPI: must be a number >= 300")
	}
	return v, nil
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
