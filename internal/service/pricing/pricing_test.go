package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	"github.com/m04kA/SMC-PetSittingService/pkg/ptr"
)

var (
	dailyService  = &domain.Service{ID: 1, Type: domain.ServiceTypeDaily, MinDuration: 1, PriceCents: 5000}
	hourlyService = &domain.Service{ID: 2, Type: domain.ServiceTypeHourly, MinDuration: 60, StepMinutes: ptr.Ptr(30), PriceCents: 2000}
	minuteService = &domain.Service{ID: 3, Type: domain.ServiceTypeMinute, MinDuration: 30, StepMinutes: ptr.Ptr(15), PriceCents: 1500}
)

func TestPriceForInterval(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		service *domain.Service
		length  time.Duration
		want    int64
	}{
		{name: "minute 40m", service: minuteService, length: 40 * time.Minute, want: 4500},
		{name: "minute exact step", service: minuteService, length: 15 * time.Minute, want: 1500},
		{name: "minute 5m bills one step", service: minuteService, length: 5 * time.Minute, want: 1500},
		{name: "hourly 61m", service: hourlyService, length: 61 * time.Minute, want: 4000},
		{name: "hourly 60m", service: hourlyService, length: time.Hour, want: 2000},
		{name: "daily 2 days", service: dailyService, length: 48 * time.Hour, want: 10000},
		{name: "daily partial day", service: dailyService, length: 25 * time.Hour, want: 10000},
		{name: "daily full-day slot", service: dailyService, length: 24*time.Hour - time.Second, want: 5000},
		{name: "zero length bills minimum", service: hourlyService, length: 0, want: 2000},
	}

	engine := NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.PriceForInterval(tt.service, base, base.Add(tt.length))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceForInterval_MinuteFallbackStep(t *testing.T) {
	service := &domain.Service{Type: domain.ServiceTypeMinute, MinDuration: 15, PriceCents: 100}
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	got, err := NewEngine().PriceForInterval(service, start, start.Add(31*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(300), got)
}

func TestPriceForInterval_Monotonic(t *testing.T) {
	engine := NewEngine()
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	for _, service := range []*domain.Service{dailyService, hourlyService, minuteService} {
		var prev int64
		for minutes := 0; minutes <= 3*24*60; minutes += 7 {
			price, err := engine.PriceForInterval(service, start, start.Add(time.Duration(minutes)*time.Minute))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, price, prev)
			assert.Zero(t, price%service.PriceCents)
			prev = price
		}
	}
}

func TestPriceForInterval_DailyAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	start := time.Date(2024, 3, 30, 0, 0, 0, 0, loc)
	end := time.Date(2024, 4, 1, 0, 0, 0, 0, loc)

	got, err := NewEngine().PriceForInterval(dailyService, start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), got)
}

func TestPriceForInterval_Errors(t *testing.T) {
	engine := NewEngine()
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	_, err := engine.PriceForInterval(hourlyService, start, start.Add(-time.Minute))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = engine.PriceForInterval(&domain.Service{Type: "weekly", PriceCents: 1}, start, start.Add(time.Hour))
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}
