package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"bookline/api/internal/ids"
	"bookline/api/internal/models"
)

var ErrInvalidDate = errors.New("date must be a valid date in the future")

// MissingFieldsError names exactly which required fields were absent.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

type BookingService struct {
	bookings BookingStore
	log      zerolog.Logger
}

func NewBookingService(bookings BookingStore, log zerolog.Logger) *BookingService {
	return &BookingService{bookings: bookings, log: log}
}

type CreateBookingInput struct {
	Date          string
	TimeSlot      string
	City          string
	Address       string
	PhoneNumber   string
	PaymentMethod string
}

// Create persists a confirmed booking for userID. PhoneNumber and
// PaymentMethod are validated as present but never stored; callers echo
// them back to the client once and they are gone.
func (s *BookingService) Create(ctx context.Context, userID string, input CreateBookingInput) (models.Booking, error) {
	if err := requireFields(input); err != nil {
		return models.Booking{}, err
	}

	date, err := parseBookingDate(input.Date)
	if err != nil {
		return models.Booking{}, ErrInvalidDate
	}
	if !date.After(time.Now()) {
		return models.Booking{}, ErrInvalidDate
	}

	booking := models.Booking{
		ID:        ids.New(),
		UserID:    userID,
		Date:      date,
		TimeSlot:  input.TimeSlot,
		Location:  DeriveLocation(input.Address, input.City),
		Status:    models.BookingStatusConfirmed,
		CreatedAt: time.Now(),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return models.Booking{}, err
	}

	s.log.Info().Str("booking_id", booking.ID).Str("user_id", userID).Msg("booking created")
	return booking, nil
}

func (s *BookingService) List(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) Delete(ctx context.Context, userID string, bookingID string) error {
	return s.bookings.DeleteOwned(ctx, bookingID, userID)
}

func requireFields(input CreateBookingInput) error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"date", input.Date},
		{"timeSlot", input.TimeSlot},
		{"city", input.City},
		{"address", input.Address},
		{"phoneNumber", input.PhoneNumber},
		{"paymentMethod", input.PaymentMethod},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

func parseBookingDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// DeriveLocation formats the stored location as "address, City" with
// only the first rune of the city upper-cased.
func DeriveLocation(address string, city string) string {
	return fmt.Sprintf("%s, %s", strings.TrimSpace(address), capitalizeFirst(strings.TrimSpace(city)))
}

func capitalizeFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
