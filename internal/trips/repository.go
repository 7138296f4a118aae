package trips

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTripNotFound = errors.New("trip not found")

type Repository interface {
	Create(ctx context.Context, trip *Trip) error
	GetByID(ctx context.Context, id uuid.UUID) (*Trip, error)
	Search(ctx context.Context, from, to string, dayStart, dayEnd time.Time, cooperativeID *uuid.UUID) ([]Trip, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status TripStatus) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, trip *Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Trip, error) {
	var trip Trip
	err := r.db.WithContext(ctx).Preload("Vehicle").First(&trip, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *repository) Search(ctx context.Context, from, to string, dayStart, dayEnd time.Time, cooperativeID *uuid.UUID) ([]Trip, error) {
	var trips []Trip
	query := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("LOWER(from_city) = LOWER(?)", from).
		Where("LOWER(to_city) = LOWER(?)", to).
		Where("departure_at >= ? AND departure_at < ?", dayStart, dayEnd).
		Where("status = ?", TripStatusScheduled)

	if cooperativeID != nil {
		query = query.
			Joins("JOIN vehicles ON vehicles.id = trips.vehicle_id").
			Where("vehicles.cooperative_id = ?", *cooperativeID)
	}

	err := query.Order("departure_at ASC").Find(&trips).Error
	return trips, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status TripStatus) error {
	result := r.db.WithContext(ctx).Model(&Trip{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTripNotFound
	}
	return nil
}
