package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-PetSittingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PetSittingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований. notifier может быть nil.
func NewService(
	bookingRepo BookingRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID получает бронирование с интервалами и клиентом
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List возвращает бронирования с фильтрацией по статусу, периоду создания и email клиента
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.CreatedFrom != nil || req.CreatedTo != nil {
		logMsg += fmt.Sprintf(", period=%v to %v", req.CreatedFrom, req.CreatedTo)
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование. Строки не удаляются.
// Повторная отмена и несуществующий id не являются ошибкой: возвращается false.
func (s *Service) Cancel(ctx context.Context, bookingID int64) (bool, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	if bookingID <= 0 {
		return false, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	changed, err := s.bookingRepo.CancelConfirmed(ctx, bookingID)
	if err != nil {
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return false, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !changed {
		s.logger.Info("Cancel: booking id=%d was not confirmed, nothing changed", bookingID)
		return false, nil
	}

	if s.notifier != nil {
		s.notifier.BookingCancelled(ctx, bookingID)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return true, nil
}
