package service

import (
	"context"
	"sync"
	"time"

	"github.com/genetic-miniapp/backend/internal/model"
)

// fakeBookingStore in-memory реализация BookingStore для тестов
type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*model.Booking
	listErr  error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[int64]*model.Booking)}
}

func (f *fakeBookingStore) Create(ctx context.Context, booking *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.bookings {
		if existing.AvailabilityID == booking.AvailabilityID {
			return model.ErrSlotTaken
		}
	}

	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now().UTC()
	clone := *booking
	f.bookings[booking.ID] = &clone
	return nil
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	clone := *booking
	return &clone, nil
}

func (f *fakeBookingStore) ListBookedSlotIDs(ctx context.Context, from, to time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	var ids []string
	for _, booking := range f.bookings {
		if !booking.StartUTC.Before(from) && booking.StartUTC.Before(to) {
			ids = append(ids, booking.AvailabilityID)
		}
	}
	return ids, nil
}
