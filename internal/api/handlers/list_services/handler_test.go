package list_services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-PetSittingService/internal/service/catalog/models"
)

type fakeService struct {
	resp *models.ServiceListResponse
	err  error
}

func (f *fakeService) ListActive(_ context.Context) (*models.ServiceListResponse, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler(t *testing.T) {
	step := 30
	svc := &fakeService{resp: &models.ServiceListResponse{Services: []models.ServiceResponse{
		{ID: 2, Name: "Hourly visit", Type: "hourly", MinDuration: 60, StepMinutes: &step, PriceCents: 2000, Active: true},
	}}}

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"services":[{"id":2,"name":"Hourly visit","description":"","type":"hourly","minDuration":60,"stepMinutes":30,"priceCents":2000,"active":true}]}`,
		rec.Body.String())

	rec = httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("down")}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
