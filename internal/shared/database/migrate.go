package database

import (
	"taxibe/internal/bookings"
	"taxibe/internal/cooperatives"
	"taxibe/internal/tickets"
	"taxibe/internal/trips"
	"taxibe/internal/users"
	"taxibe/internal/vehicles"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&cooperatives.Cooperative{},
		&vehicles.Vehicle{},
		&trips.Trip{},
		&bookings.Booking{},
		&bookings.SeatReservation{},
		&tickets.Ticket{},
	)
}
