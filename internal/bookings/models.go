package bookings

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"taxibe/internal/reservation"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is a confirmed set of seats on a trip, paid as one unit.
type Booking struct {
	ID              uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingRef      string            `gorm:"uniqueIndex;not null" json:"booking_ref"`
	UserID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	TripID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"trip_id"`
	PlacesReserved  int               `gorm:"not null" json:"places_reserved"`
	TotalPrice      float64           `gorm:"not null" json:"total_price"`
	Status          BookingStatus     `gorm:"default:'CONFIRMED'" json:"status"`
	ClientRequestID string            `gorm:"default:''" json:"-"`
	Seats           []SeatReservation `gorm:"foreignKey:BookingID" json:"seats,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// SeatReservation pins one physical seat of a trip to a booking. The
// unique (trip_id, seat_number) constraint is what makes double selling
// impossible.
type SeatReservation struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID  uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`
	TripID     uuid.UUID `gorm:"type:uuid;not null" json:"trip_id"`
	SeatNumber int       `gorm:"not null" json:"seat_number"`
	Price      float64   `gorm:"not null" json:"price"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the table name for SeatReservation
func (SeatReservation) TableName() string {
	return "seat_reservations"
}

type CreateBookingRequest struct {
	SeatsReserved  []int `json:"seats_reserved" binding:"required,min=1,dive,min=2"`
	PlacesReserved int   `json:"places_reserved" binding:"omitempty,min=1"`
}

type BookingResponse struct {
	ID             string    `json:"id"`
	BookingRef     string    `json:"booking_ref"`
	TripID         string    `json:"trip_id"`
	SeatsReserved  []int     `json:"seats_reserved"`
	PlacesReserved int       `json:"places_reserved"`
	TotalPrice     float64   `json:"total_price"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func (b *Booking) ToResponse() BookingResponse {
	seats := make([]int, 0, len(b.Seats))
	for i := range b.Seats {
		seats = append(seats, b.Seats[i].SeatNumber)
	}
	sort.Ints(seats)
	return BookingResponse{
		ID:             b.ID.String(),
		BookingRef:     b.BookingRef,
		TripID:         b.TripID.String(),
		SeatsReserved:  seats,
		PlacesReserved: b.PlacesReserved,
		TotalPrice:     b.TotalPrice,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
	}
}

// SeatConflictError reports the seats that were already taken when a
// booking attempt landed. It unwraps to the reservation sentinel so
// callers can match on either form.
type SeatConflictError struct {
	Seats []int
}

func (e *SeatConflictError) Error() string {
	parts := make([]string, len(e.Seats))
	for i, seat := range e.Seats {
		parts[i] = fmt.Sprintf("%d", seat)
	}
	return fmt.Sprintf("seats already taken: %s", strings.Join(parts, ", "))
}

func (e *SeatConflictError) Unwrap() error {
	return reservation.ErrSeatsAlreadyTaken
}
