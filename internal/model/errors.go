package model

import "errors"

var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("not found")
	// ErrSlotTaken слот уже занят другой записью
	ErrSlotTaken = errors.New("slot already booked")
	// ErrSlotInPast слот в прошлом
	ErrSlotInPast = errors.New("slot is in the past")
	// ErrInvalidSlotID идентификатор слота не соответствует расписанию клиники
	ErrInvalidSlotID = errors.New("invalid availability_id")
)
