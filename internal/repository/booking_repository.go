package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"bookline/api/internal/models"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Create(ctx context.Context, booking models.Booking) error {
	const query = `
		INSERT INTO bookings (
			id, user_id, date, time_slot, location, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.Date,
		booking.TimeSlot,
		booking.Location,
		booking.Status,
	)
	return err
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	const query = `
		SELECT id, user_id, date, time_slot, location, status, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY date DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.Date,
			&b.TimeSlot,
			&b.Location,
			&b.Status,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// DeleteOwned removes a booking only when it belongs to userID. A
// booking that exists but belongs to someone else is indistinguishable
// from a missing one.
func (r *BookingRepository) DeleteOwned(ctx context.Context, id string, userID string) error {
	const query = `DELETE FROM bookings WHERE id = $1 AND user_id = $2`

	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM bookings WHERE user_id = $1`

	_, err := r.pool.Exec(ctx, query, userID)
	return err
}
