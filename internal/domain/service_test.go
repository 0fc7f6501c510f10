package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-PetSittingService/pkg/ptr"
)

func TestService_Validate(t *testing.T) {
	tests := []struct {
		name    string
		service Service
		wantErr bool
	}{
		{name: "daily", service: Service{Type: ServiceTypeDaily, MinDuration: 1, PriceCents: 5000}},
		{name: "hourly with step", service: Service{Type: ServiceTypeHourly, MinDuration: 60, StepMinutes: ptr.Ptr(30), PriceCents: 2000}},
		{name: "minute without step", service: Service{Type: ServiceTypeMinute, MinDuration: 30, PriceCents: 1500}},
		{name: "daily with step", service: Service{Type: ServiceTypeDaily, MinDuration: 1, StepMinutes: ptr.Ptr(30)}, wantErr: true},
		{name: "negative price", service: Service{Type: ServiceTypeHourly, MinDuration: 60, PriceCents: -1}, wantErr: true},
		{name: "zero duration", service: Service{Type: ServiceTypeMinute, MinDuration: 0}, wantErr: true},
		{name: "unknown type", service: Service{Type: "weekly", MinDuration: 1}, wantErr: true},
		{name: "zero step", service: Service{Type: ServiceTypeMinute, MinDuration: 15, StepMinutes: ptr.Ptr(0)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.service.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidService)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_StepOr(t *testing.T) {
	assert.Equal(t, 15, (&Service{}).StepOr(15))
	assert.Equal(t, 20, (&Service{StepMinutes: ptr.Ptr(20)}).StepOr(15))
}
