package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "train-station-api", cfg.App.Name)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "train_station", cfg.Postgres.DBName)
	assert.Equal(t, "booking-events", cfg.Kafka.Topic)
}

func TestNewEnvOverride(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("POSTGRES_DB", "bookings_test")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.HTTP.Port)
	assert.Equal(t, "bookings_test", cfg.Postgres.DBName)
}

func TestNewRejectsBadLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	_, err := New()
	assert.Error(t, err)
}
