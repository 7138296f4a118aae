package trips

import (
	"time"

	"taxibe/internal/vehicles"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripStatusScheduled TripStatus = "SCHEDULED"
	TripStatusDeparted  TripStatus = "DEPARTED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

// Trip is a scheduled departure of a vehicle on an inter-city route.
type Trip struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	VehicleID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Vehicle      vehicles.Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	FromCity     string           `gorm:"not null;index:idx_trips_route" json:"from_city"`
	ToCity       string           `gorm:"not null;index:idx_trips_route" json:"to_city"`
	DepartureAt  time.Time        `gorm:"not null;index" json:"departure_at"`
	PricePerSeat float64          `gorm:"not null" json:"price_per_seat"`
	Status       TripStatus       `gorm:"default:'SCHEDULED'" json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// TableName sets the table name for Trip
func (Trip) TableName() string {
	return "trips"
}

type CreateTripRequest struct {
	VehicleID    string    `json:"vehicle_id" binding:"required,uuid"`
	FromCity     string    `json:"from_city" binding:"required,min=2,max=100"`
	ToCity       string    `json:"to_city" binding:"required,min=2,max=100"`
	DepartureAt  time.Time `json:"departure_at" binding:"required"`
	PricePerSeat float64   `json:"price_per_seat" binding:"required,gt=0"`
}

type SearchTripsRequest struct {
	From          string `form:"from" binding:"required,min=2"`
	To            string `form:"to" binding:"required,min=2"`
	Date          string `form:"date" binding:"required,datetime=2006-01-02"`
	CooperativeID string `form:"cooperative_id" binding:"omitempty,uuid"`
}

type UpdateTripStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=SCHEDULED DEPARTED CANCELLED"`
}

type TripResponse struct {
	ID              string                   `json:"id"`
	FromCity        string                   `json:"from_city"`
	ToCity          string                   `json:"to_city"`
	DepartureAt     time.Time                `json:"departure_at"`
	PricePerSeat    float64                  `json:"price_per_seat"`
	Status          string                   `json:"status"`
	Vehicle         vehicles.VehicleResponse `json:"vehicle"`
	AvailablePlaces int                      `json:"available_places"`
}

type TripDetailResponse struct {
	TripResponse
	TotalSeats    int   `json:"total_seats"`
	ReservedSeats []int `json:"reserved_seats"`
}

// Seat statuses on the seat map.
const (
	SeatStatusDriver    = "DRIVER"
	SeatStatusReserved  = "RESERVED"
	SeatStatusAvailable = "AVAILABLE"
)

type SeatMapSeat struct {
	Number int    `json:"number,omitempty"`
	Status string `json:"status,omitempty"`
}

type SeatMapResponse struct {
	TripID       string          `json:"trip_id"`
	TotalSeats   int             `json:"total_seats"`
	PricePerSeat float64         `json:"price_per_seat"`
	Rows         [][]SeatMapSeat `json:"rows"`
}

func (t *Trip) toResponse(availablePlaces int) TripResponse {
	return TripResponse{
		ID:              t.ID.String(),
		FromCity:        t.FromCity,
		ToCity:          t.ToCity,
		DepartureAt:     t.DepartureAt,
		PricePerSeat:    t.PricePerSeat,
		Status:          string(t.Status),
		Vehicle:         t.Vehicle.ToResponse(),
		AvailablePlaces: availablePlaces,
	}
}
