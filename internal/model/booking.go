package model

import "time"

// Booking представляет подтверждённую запись на консультацию
type Booking struct {
	ID             int64     `json:"id"`
	AvailabilityID string    `json:"availability_id"`
	StartUTC       time.Time `json:"start_utc"`
	EndUTC         time.Time `json:"end_utc"`
	Format         Format    `json:"format"`
	Name           string    `json:"name,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Note           string    `json:"note,omitempty"`
	Reference      string    `json:"reference"`
	CreatedAt      time.Time `json:"created_at"`
}

// Contact контактные данные пациента
type Contact struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// BookingRequest тело запроса на создание записи
type BookingRequest struct {
	AvailabilityID string   `json:"availability_id"`
	Name           string   `json:"name,omitempty"`
	Note           string   `json:"note,omitempty"`
	Contact        *Contact `json:"contact,omitempty"`
}

// BookingResult ответ сервера на успешную запись
type BookingResult struct {
	BookingID int64     `json:"booking_id"`
	StartUTC  time.Time `json:"start_utc"`
	EndUTC    time.Time `json:"end_utc"`
}
