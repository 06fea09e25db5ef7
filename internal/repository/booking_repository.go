package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genetic-miniapp/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения unique constraint
const pgUniqueViolation = "23505"

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// Create создаёт новую запись на консультацию.
// Двойное бронирование пресекается unique constraint по availability_id —
// в этом случае возвращается model.ErrSlotTaken.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (availability_id, start_utc, end_utc, format, name, phone, email, note, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		booking.AvailabilityID,
		booking.StartUTC,
		booking.EndUTC,
		booking.Format,
		booking.Name,
		booking.Phone,
		booking.Email,
		booking.Note,
		booking.Reference,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return model.ErrSlotTaken
		}
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `
		SELECT id, availability_id, start_utc, end_utc, format, name, phone, email, note, reference, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking model.Booking
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.AvailabilityID,
		&booking.StartUTC,
		&booking.EndUTC,
		&booking.Format,
		&booking.Name,
		&booking.Phone,
		&booking.Email,
		&booking.Note,
		&booking.Reference,
		&booking.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return &booking, nil
}

// ListBookedSlotIDs возвращает availability_id всех записей, начинающихся в диапазоне [from, to)
func (r *BookingRepository) ListBookedSlotIDs(ctx context.Context, from, to time.Time) ([]string, error) {
	query := `
		SELECT availability_id
		FROM bookings
		WHERE start_utc >= $1 AND start_utc < $2
		ORDER BY start_utc
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list booked slot ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan availability_id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
