package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/genetic-miniapp/backend/internal/model"
	"go.uber.org/zap"
)

// Часы приёма клиники (по московскому времени)
const (
	clinicOpenHour  = 10
	clinicCloseHour = 18 // не включительно
)

// Перерывы: обед и административный час
var clinicBlockedHours = map[int]bool{
	12: true,
	15: true,
}

// AvailabilityService генерирует слоты записи из фиксированного расписания
// клиники и помечает занятые по данным о бронированиях. Слоты не хранятся —
// расписание детерминировано, хранится только факт записи.
type AvailabilityService struct {
	bookings BookingStore
	logger   *zap.Logger
}

func NewAvailabilityService(bookings BookingStore, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		bookings: bookings,
		logger:   logger,
	}
}

// Slots возвращает слоты за календарные дни [fromDay, toDay] (включительно),
// отфильтрованные по формату и отсортированные по времени начала.
// fromDay/toDay — полночь UTC соответствующего дня.
func (s *AvailabilityService) Slots(ctx context.Context, fromDay, toDay time.Time, filter model.Format) ([]model.AvailabilitySlot, error) {
	if toDay.Before(fromDay) {
		return nil, fmt.Errorf("invalid date range: to before from")
	}

	booked, err := s.bookedSet(ctx, fromDay, toDay)
	if err != nil {
		return nil, err
	}

	var slots []model.AvailabilitySlot
	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		// Выходные — приёма нет
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		for hour := clinicOpenHour; hour < clinicCloseHour; hour++ {
			if clinicBlockedHours[hour] {
				continue
			}

			format := hourFormat(hour)
			if !format.Matches(filter) {
				continue
			}

			startUTC := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC).Add(-model.MSKOffset)
			id := model.SlotID(startUTC, format)
			slots = append(slots, model.AvailabilitySlot{
				ID:       id,
				StartUTC: startUTC,
				EndUTC:   startUTC.Add(model.SlotDuration),
				Format:   format,
				Booked:   booked[id],
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartUTC.Before(slots[j].StartUTC)
	})

	s.logger.Debug("Generated availability slots",
		zap.Time("from", fromDay),
		zap.Time("to", toDay),
		zap.String("format", string(filter)),
		zap.Int("count", len(slots)),
	)

	return slots, nil
}

// bookedSet собирает занятые слоты диапазона в множество идентификаторов
func (s *AvailabilityService) bookedSet(ctx context.Context, fromDay, toDay time.Time) (map[string]bool, error) {
	from := fromDay.Add(-model.MSKOffset)
	to := toDay.AddDate(0, 0, 1)

	ids, err := s.bookings.ListBookedSlotIDs(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load booked slots: %w", err)
	}

	booked := make(map[string]bool, len(ids))
	for _, id := range ids {
		booked[id] = true
	}
	return booked, nil
}

// hourFormat определяет формат слота по чётности московского часа
func hourFormat(mskHour int) model.Format {
	if mskHour%2 == 0 {
		return model.FormatOnline
	}
	return model.FormatOffline
}

// IsClinicSlot проверяет что время и формат соответствуют расписанию клиники
func IsClinicSlot(startUTC time.Time, format model.Format) bool {
	msk := startUTC.UTC().Add(model.MSKOffset)
	if wd := msk.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	if msk.Minute() != 0 || msk.Second() != 0 || msk.Nanosecond() != 0 {
		return false
	}
	hour := msk.Hour()
	if hour < clinicOpenHour || hour >= clinicCloseHour || clinicBlockedHours[hour] {
		return false
	}
	return format == hourFormat(hour)
}
