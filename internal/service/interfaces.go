package service

import (
	"context"
	"time"

	"github.com/genetic-miniapp/backend/internal/model"
)

// BookingStore хранилище записей на консультации
type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	ListBookedSlotIDs(ctx context.Context, from, to time.Time) ([]string, error)
}

// Notifier уведомляет администратора о новых записях
type Notifier interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
}
