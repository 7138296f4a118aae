package tickets

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusValid     TicketStatus = "VALID"
	TicketStatusCancelled TicketStatus = "CANCELLED"
)

// Ticket is the travel document issued when a booking is confirmed. Trip
// details are denormalized so the ticket survives later trip edits.
type Ticket struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID   uuid.UUID    `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	TripID      uuid.UUID    `gorm:"type:uuid;not null" json:"trip_id"`
	BookingRef  string       `gorm:"not null" json:"booking_ref"`
	FromCity    string       `gorm:"not null" json:"from_city"`
	ToCity      string       `gorm:"not null" json:"to_city"`
	DepartureAt time.Time    `gorm:"not null" json:"departure_at"`
	Seats       string       `gorm:"not null" json:"seats"`
	TotalPrice  float64      `gorm:"not null" json:"total_price"`
	QRPayload   string       `gorm:"not null" json:"qr_payload"`
	Status      TicketStatus `gorm:"default:'VALID'" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TableName sets the table name for Ticket
func (Ticket) TableName() string {
	return "tickets"
}

type TicketResponse struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	BookingRef  string    `json:"booking_ref"`
	FromCity    string    `json:"from_city"`
	ToCity      string    `json:"to_city"`
	DepartureAt time.Time `json:"departure_at"`
	Seats       []int     `json:"seats"`
	TotalPrice  float64   `json:"total_price"`
	QRPayload   string    `json:"qr_payload"`
	Status      string    `json:"status"`
}

func (t *Ticket) ToResponse() TicketResponse {
	return TicketResponse{
		ID:          t.ID.String(),
		BookingID:   t.BookingID.String(),
		BookingRef:  t.BookingRef,
		FromCity:    t.FromCity,
		ToCity:      t.ToCity,
		DepartureAt: t.DepartureAt,
		Seats:       parseSeats(t.Seats),
		TotalPrice:  t.TotalPrice,
		QRPayload:   t.QRPayload,
		Status:      string(t.Status),
	}
}

func joinSeats(seats []int) string {
	parts := make([]string, len(seats))
	for i, seat := range seats {
		parts[i] = strconv.Itoa(seat)
	}
	return strings.Join(parts, ",")
}

func parseSeats(joined string) []int {
	if joined == "" {
		return []int{}
	}
	parts := strings.Split(joined, ",")
	seats := make([]int, 0, len(parts))
	for _, part := range parts {
		if seat, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			seats = append(seats, seat)
		}
	}
	return seats
}
