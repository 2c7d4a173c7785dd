package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGenAIKey = "test-genai-key"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://tgftp.nws.noaa.gov/data/observations/metar/stations", cfg.NOAABaseURL)
	assert.Equal(t, "https://aviationweather.gov/api/data", cfg.AWCBaseURL)
	assert.Equal(t, 8*time.Second, cfg.WeatherTimeout)
	assert.True(t, cfg.SyntheticFallback)
	assert.Equal(t, 10*time.Second, cfg.AirportTimeout)
	assert.Equal(t, 1000, cfg.AirportCacheSize)
	assert.False(t, cfg.GenAIEnabled)
	assert.Empty(t, cfg.GenAIAPIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.GenAIModel)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "route-weather-alerts", cfg.KafkaAlertsTopic)
	assert.Equal(t, 10, cfg.MaxRouteAirports)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("NOAA_BASE_URL", "http://noaa.test")
	t.Setenv("AWC_BASE_URL", "http://awc.test")
	t.Setenv("WEATHER_TIMEOUT", "3s")
	t.Setenv("SYNTHETIC_FALLBACK", "false")
	t.Setenv("AIRPORT_DATA_URL", "http://airports.test/airports.dat")
	t.Setenv("AIRPORT_TIMEOUT", "4s")
	t.Setenv("AIRPORT_CACHE_SIZE", "500")
	t.Setenv("GENAI_API_KEY", testGenAIKey)
	t.Setenv("GENAI_MODEL", "gemini-2.5-pro")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_ALERTS_TOPIC", "custom-alerts")
	t.Setenv("MAX_ROUTE_AIRPORTS", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://noaa.test", cfg.NOAABaseURL)
	assert.Equal(t, "http://awc.test", cfg.AWCBaseURL)
	assert.Equal(t, 3*time.Second, cfg.WeatherTimeout)
	assert.False(t, cfg.SyntheticFallback)
	assert.Equal(t, "http://airports.test/airports.dat", cfg.AirportDataURL)
	assert.Equal(t, 4*time.Second, cfg.AirportTimeout)
	assert.Equal(t, 500, cfg.AirportCacheSize)
	assert.True(t, cfg.GenAIEnabled)
	assert.Equal(t, testGenAIKey, cfg.GenAIAPIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.GenAIModel)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-alerts", cfg.KafkaAlertsTopic)
	assert.Equal(t, 25, cfg.MaxRouteAirports)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeWeatherTimeout(t *testing.T) {
	t.Setenv("WEATHER_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHER_TIMEOUT")
}

func TestLoad_InvalidAirportCacheSize(t *testing.T) {
	t.Setenv("AIRPORT_CACHE_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AIRPORT_CACHE_SIZE")
}

func TestLoad_InvalidMaxRouteAirports(t *testing.T) {
	t.Setenv("MAX_ROUTE_AIRPORTS", "many")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_ROUTE_AIRPORTS")
}

func TestLoad_GenAIEnabledWithoutKey(t *testing.T) {
	t.Setenv("GENAI_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GENAI_API_KEY")
}

func TestLoad_GenAIKeyImpliesEnabled(t *testing.T) {
	t.Setenv("GENAI_API_KEY", testGenAIKey)
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.GenAIEnabled)
}

func TestLoad_GenAIExplicitlyDisabled(t *testing.T) {
	t.Setenv("GENAI_API_KEY", testGenAIKey)
	t.Setenv("GENAI_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.GenAIEnabled)
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
