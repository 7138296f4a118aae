package notifications

import (
	"time"
)

type EventType string

const (
	EventBookingConfirmed EventType = "BOOKING_CONFIRMED"
	EventBookingCancelled EventType = "BOOKING_CANCELLED"
)

// BookingEvent is the payload published to Kafka when seats change hands.
// The consumer side turns it into an SMS to the passenger's phone.
type BookingEvent struct {
	Type         EventType `json:"type"`
	BookingID    string    `json:"booking_id"`
	BookingRef   string    `json:"booking_ref"`
	UserID       string    `json:"user_id"`
	UserPhone    string    `json:"user_phone,omitempty"`
	TripID       string    `json:"trip_id"`
	FromCity     string    `json:"from_city"`
	ToCity       string    `json:"to_city"`
	DepartureAt  time.Time `json:"departure_at"`
	Seats        []int     `json:"seats"`
	TotalPrice   float64   `json:"total_price"`
	OccurredAt   time.Time `json:"occurred_at"`
}
