package models

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusDraft     BookingStatus = "DRAFT"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID        string
	UserID    string
	Date      time.Time
	TimeSlot  string
	Location  string
	Status    BookingStatus
	CreatedAt time.Time
}
