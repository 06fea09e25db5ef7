package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MSKOffset смещение Europe/Moscow относительно UTC (без перехода на летнее время)
const MSKOffset = 3 * time.Hour

// SlotDuration длительность одной консультации
const SlotDuration = time.Hour

// AvailabilitySlot представляет окно записи на консультацию.
// Слоты генерируются на лету из расписания клиники и не хранятся в БД,
// поэтому идентификатор кодирует время начала и формат.
type AvailabilitySlot struct {
	ID       string    `json:"id"`
	StartUTC time.Time `json:"start_utc"`
	EndUTC   time.Time `json:"end_utc"`
	Format   Format    `json:"format"`
	Booked   bool      `json:"booked,omitempty"`
}

// Day возвращает календарный день начала слота в формате YYYY-MM-DD (UTC)
func (s *AvailabilitySlot) Day() string {
	return s.StartUTC.UTC().Format("2006-01-02")
}

// SlotID кодирует идентификатор слота: YYYY-MM-DD-HH-<format>,
// где дата — календарный день, а HH — час начала по московскому времени
func SlotID(startUTC time.Time, format Format) string {
	msk := startUTC.UTC().Add(MSKOffset)
	return fmt.Sprintf("%s-%02d-%s", msk.Format("2006-01-02"), msk.Hour(), format)
}

// ParseSlotID разбирает идентификатор слота обратно во время начала (UTC) и формат
func ParseSlotID(id string) (time.Time, Format, error) {
	parts := strings.Split(id, "-")
	if len(parts) != 5 {
		return time.Time{}, FormatAny, fmt.Errorf("%w: %q", ErrInvalidSlotID, id)
	}

	day, err := time.Parse("2006-01-02", strings.Join(parts[:3], "-"))
	if err != nil {
		return time.Time{}, FormatAny, fmt.Errorf("%w: %q", ErrInvalidSlotID, id)
	}

	hour, err := strconv.Atoi(parts[3])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, FormatAny, fmt.Errorf("%w: %q", ErrInvalidSlotID, id)
	}

	format, ok := ParseFormat(parts[4])
	if !ok || format == FormatAny {
		return time.Time{}, FormatAny, fmt.Errorf("%w: %q", ErrInvalidSlotID, id)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC).Add(-MSKOffset)
	return start, format, nil
}
