package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Weather provider chain configuration.
	NOAABaseURL       string
	AWCBaseURL        string
	WeatherTimeout    time.Duration
	SyntheticFallback bool

	// Airport reference data configuration.
	AirportDataURL   string
	AirportTimeout   time.Duration
	AirportCacheSize int

	// Generative narrator configuration.
	GenAIAPIKey  string
	GenAIEnabled bool
	GenAIModel   string

	// Severe-weather alert publishing configuration.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaAlertsTopic string

	MaxRouteAirports int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	weatherTimeout, err := parseDuration("WEATHER_TIMEOUT", "8s")
	if err != nil {
		return nil, err
	}
	airportTimeout, err := parseDuration("AIRPORT_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	airportCacheSize, err := parsePositiveInt("AIRPORT_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}
	maxRouteAirports, err := parsePositiveInt("MAX_ROUTE_AIRPORTS", 10)
	if err != nil {
		return nil, err
	}

	genAIKey := os.Getenv("GENAI_API_KEY")
	genAIEnabled := genAIKey != ""
	if v := os.Getenv("GENAI_ENABLED"); v != "" {
		genAIEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		NOAABaseURL:       envOrDefault("NOAA_BASE_URL", "https://tgftp.nws.noaa.gov/data/observations/metar/stations"),
		AWCBaseURL:        envOrDefault("AWC_BASE_URL", "https://aviationweather.gov/api/data"),
		WeatherTimeout:    weatherTimeout,
		SyntheticFallback: envOrDefault("SYNTHETIC_FALLBACK", "true") == "true",

		AirportDataURL:   envOrDefault("AIRPORT_DATA_URL", "https://raw.githubusercontent.com/jpatokal/openflights/master/data/airports.dat"),
		AirportTimeout:   airportTimeout,
		AirportCacheSize: airportCacheSize,

		GenAIAPIKey:  genAIKey,
		GenAIEnabled: genAIEnabled,
		GenAIModel:   envOrDefault("GENAI_MODEL", "gemini-2.0-flash"),

		KafkaEnabled:     os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAlertsTopic: envOrDefault("KAFKA_ALERTS_TOPIC", "route-weather-alerts"),

		MaxRouteAirports: maxRouteAirports,
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}
	if cfg.GenAIEnabled && cfg.GenAIAPIKey == "" {
		return nil, errors.New("GENAI_ENABLED is true but GENAI_API_KEY is not set")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaAlertsTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_ALERTS_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
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
