package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	"github.com/m04kA/SMC-PetSittingService/pkg/types"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "Europe/Paris", cfg.Booking.Timezone)
	assert.Equal(t, 2, cfg.Booking.RetentionYears)
	assert.Equal(t, 30, cfg.Booking.DefaultStepMinutes)
	assert.False(t, cfg.Booking.PerServiceCapacity)
	assert.Equal(t, "0 3 * * *", cfg.Retention.Schedule)
	assert.Equal(t, time.Minute, cfg.Cache.TTL())

	settings, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", settings.Location.String())
	assert.False(t, settings.BusinessHours.IsConfigured())
}

func TestParse_BusinessHours(t *testing.T) {
	cfg, err := Parse(`
[booking]
timezone = "UTC"
retention_years = 3
per_service_capacity = true

[business_hours.monday]
open_time = "08:00"
close_time = "18:30"

[business_hours.Sunday]
closed = true
`)
	require.NoError(t, err)

	settings, err := cfg.Settings()
	require.NoError(t, err)

	assert.Equal(t, time.UTC, settings.Location)
	assert.Equal(t, 3, settings.RetentionYears)
	assert.True(t, settings.PerServiceCapacity)
	assert.Equal(t, domain.DayHours{OpenTime: types.TimeString("08:00"), CloseTime: types.TimeString("18:30")},
		settings.BusinessHours[time.Monday])
	assert.True(t, settings.BusinessHours[time.Sunday].Closed)
	_, hasTuesday := settings.BusinessHours[time.Tuesday]
	assert.False(t, hasTuesday)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "timezone", data: "[booking]\ntimezone = \"Mars/Olympus\""},
		{name: "weekday", data: "[business_hours.funday]\nclosed = true"},
		{name: "open after close", data: "[business_hours.monday]\nopen_time = \"18:00\"\nclose_time = \"08:00\""},
		{name: "bad time", data: "[business_hours.monday]\nopen_time = \"8am\"\nclose_time = \"18:00\""},
		{name: "events without brokers", data: "[events]\nenabled = true"},
		{name: "bad cron", data: "[retention]\nenabled = true\nschedule = \"every day\""},
		{name: "negative retention", data: "[booking]\nretention_years = -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
host = "db"
user = "petsitting"
password = "secret"
dbname = "petsitting"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=petsitting password=secret dbname=petsitting sslmode=disable", cfg.Database.DSN())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
