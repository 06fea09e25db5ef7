package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genetic-miniapp/backend/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService struct {
	bookings BookingStore
	notifier Notifier
	logger   *zap.Logger

	now func() time.Time
}

func NewBookingService(bookings BookingStore, notifier Notifier, logger *zap.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Create создаёт запись на консультацию по идентификатору слота.
// Возвращает model.ErrSlotTaken если слот уже занят,
// model.ErrInvalidSlotID если слот не из расписания клиники,
// model.ErrSlotInPast если слот в прошлом.
func (s *BookingService) Create(ctx context.Context, req model.BookingRequest) (*model.BookingResult, error) {
	start, format, err := model.ParseSlotID(req.AvailabilityID)
	if err != nil {
		return nil, err
	}

	if !IsClinicSlot(start, format) {
		return nil, fmt.Errorf("%w: %q is outside clinic hours", model.ErrInvalidSlotID, req.AvailabilityID)
	}

	if start.Before(s.now()) {
		return nil, model.ErrSlotInPast
	}

	booking := &model.Booking{
		AvailabilityID: req.AvailabilityID,
		StartUTC:       start,
		EndUTC:         start.Add(model.SlotDuration),
		Format:         format,
		Name:           req.Name,
		Note:           req.Note,
		Reference:      uuid.NewString(),
	}
	if req.Contact != nil {
		booking.Phone = req.Contact.Phone
		booking.Email = req.Contact.Email
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, model.ErrSlotTaken) {
			s.logger.Info("Booking conflict",
				zap.String("availability_id", req.AvailabilityID),
			)
			return nil, model.ErrSlotTaken
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("availability_id", booking.AvailabilityID),
		zap.String("format", string(booking.Format)),
		zap.Time("start_utc", booking.StartUTC),
	)

	if s.notifier != nil {
		// Уведомление не должно задерживать ответ пациенту
		go s.notifier.BookingCreated(context.WithoutCancel(ctx), booking)
	}

	return &model.BookingResult{
		BookingID: booking.ID,
		StartUTC:  booking.StartUTC,
		EndUTC:    booking.EndUTC,
	}, nil
}

// Get возвращает запись по ID
func (s *BookingService) Get(ctx context.Context, id int64) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return booking, nil
}
