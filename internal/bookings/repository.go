package bookings

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingCancelled = errors.New("booking is already cancelled")
)

type Repository interface {
	// CreateWithSeats stores the booking and its seat rows in one
	// transaction. When the idempotency key has been seen on this trip
	// before, the original booking is returned and created is false.
	CreateWithSeats(ctx context.Context, booking *Booking) (created bool, existing *Booking, err error)
	GetByIdempotencyKey(ctx context.Context, tripID uuid.UUID, key string) (*Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	ReservedSeats(ctx context.Context, tripID uuid.UUID) ([]int, error)
	ReservedCounts(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithSeats(ctx context.Context, booking *Booking) (bool, *Booking, error) {
	var existing *Booking
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if booking.ClientRequestID != "" {
			found, err := findByIdempotencyKey(tx, booking.TripID, booking.ClientRequestID)
			if err != nil {
				return err
			}
			if found != nil {
				existing = found
				return nil
			}
		}

		seatNumbers := make([]int, len(booking.Seats))
		for i := range booking.Seats {
			seatNumbers[i] = booking.Seats[i].SeatNumber
		}

		// Lock matching seat rows so two racing bookings serialize here.
		var conflicts []int
		err := tx.Model(&SeatReservation{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("trip_id = ? AND seat_number IN ?", booking.TripID, seatNumbers).
			Pluck("seat_number", &conflicts).Error
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			sort.Ints(conflicts)
			return &SeatConflictError{Seats: conflicts}
		}

		if err := tx.Create(booking).Error; err != nil {
			// The unique seat constraint catches the race the lock
			// cannot see (rows inserted after our SELECT planned).
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &SeatConflictError{Seats: seatNumbers}
			}
			return err
		}
		created = true
		return nil
	})

	if err != nil {
		return false, nil, err
	}
	return created, existing, nil
}

func findByIdempotencyKey(tx *gorm.DB, tripID uuid.UUID, key string) (*Booking, error) {
	var booking Booking
	err := tx.Preload("Seats").
		Where("trip_id = ? AND client_request_id = ?", tripID, key).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// GetByIdempotencyKey returns nil without error when the key is unseen.
func (r *repository) GetByIdempotencyKey(ctx context.Context, tripID uuid.UUID, key string) (*Booking, error) {
	if key == "" {
		return nil, nil
	}
	return findByIdempotencyKey(r.db.WithContext(ctx), tripID, key)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Preload("Seats").First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.Status == BookingStatusCancelled {
			return ErrBookingCancelled
		}

		if err := tx.Model(&Booking{}).Where("id = ?", id).
			Update("status", BookingStatusCancelled).Error; err != nil {
			return err
		}
		// Freeing the rows is what puts the seats back on sale.
		return tx.Where("booking_id = ?", id).Delete(&SeatReservation{}).Error
	})
}

func (r *repository) ReservedSeats(ctx context.Context, tripID uuid.UUID) ([]int, error) {
	var seats []int
	err := r.db.WithContext(ctx).Model(&SeatReservation{}).
		Where("trip_id = ?", tripID).
		Order("seat_number ASC").
		Pluck("seat_number", &seats).Error
	return seats, err
}

func (r *repository) ReservedCounts(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	type row struct {
		TripID uuid.UUID
		Count  int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&SeatReservation{}).
		Select("trip_id, COUNT(*) AS count").
		Where("trip_id IN ?", tripIDs).
		Group("trip_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		counts[r.TripID] = r.Count
	}
	return counts, nil
}
