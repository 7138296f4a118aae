package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the constraints that make the server the sole
// arbiter of seat conflicts. Clients only detect races through the 409
// these constraints produce.
func MigrateConstraints(db *gorm.DB) error {
	// One reservation per physical seat per trip. This is what turns a
	// concurrent double submit into a conflict instead of a double booking.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_seat_per_trip
		ON seat_reservations (trip_id, seat_number);
	`).Error
	if err != nil {
		return err
	}

	// Replays of the same client submission attempt must resolve to the
	// original booking.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_idempotency
		ON bookings (trip_id, client_request_id)
		WHERE client_request_id <> '';
	`).Error
	if err != nil {
		return err
	}

	// Reserved-seat lookups run on every seat-map fetch.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seat_reservations_trip_id
		ON seat_reservations (trip_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
