package trips

import (
	"context"
	"fmt"
	"time"

	"taxibe/internal/layout"
	"taxibe/internal/shared/config"
	"taxibe/internal/vehicles"
	"taxibe/pkg/cache"

	"github.com/google/uuid"
)

var ErrTripNotBookable = fmt.Errorf("trip is not open for booking")

// ReservationReader exposes the seats already sold on a trip. The bookings
// package provides the implementation; the indirection keeps the import
// graph one-way.
type ReservationReader interface {
	ReservedSeats(ctx context.Context, tripID uuid.UUID) ([]int, error)
	ReservedCounts(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// SeatMapCacheKey is shared with the bookings service, which invalidates
// the entry whenever seats on the trip change hands.
func SeatMapCacheKey(tripID string) string {
	return "trips:seatmap:" + tripID
}

func searchCacheKey(from, to, date, cooperativeID string) string {
	return fmt.Sprintf("trips:search:%s:%s:%s:%s", from, to, date, cooperativeID)
}

type Service interface {
	Create(ctx context.Context, req CreateTripRequest) (*Trip, error)
	Search(ctx context.Context, req SearchTripsRequest) ([]TripResponse, error)
	Get(ctx context.Context, id string) (*TripDetailResponse, error)
	SeatMap(ctx context.Context, id string) (*SeatMapResponse, error)
	UpdateStatus(ctx context.Context, id string, status TripStatus) error
}

type service struct {
	repo         Repository
	vehicleRepo  vehicles.Repository
	reservations ReservationReader
	config       *config.Config
	cache        cache.Service
}

func NewService(repo Repository, vehicleRepo vehicles.Repository, reservations ReservationReader, cfg *config.Config, cacheService cache.Service) Service {
	return &service{
		repo:         repo,
		vehicleRepo:  vehicleRepo,
		reservations: reservations,
		config:       cfg,
		cache:        cacheService,
	}
}

func (s *service) Create(ctx context.Context, req CreateTripRequest) (*Trip, error) {
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID: %w", err)
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if req.PricePerSeat < s.config.Booking.PricePerSeatMin {
		return nil, fmt.Errorf("price per seat must be at least %.0f Ar", s.config.Booking.PricePerSeatMin)
	}
	if !req.DepartureAt.After(time.Now()) {
		return nil, fmt.Errorf("departure must be in the future")
	}

	trip := &Trip{
		VehicleID:    vehicle.ID,
		FromCity:     req.FromCity,
		ToCity:       req.ToCity,
		DepartureAt:  req.DepartureAt.UTC(),
		PricePerSeat: req.PricePerSeat,
		Status:       TripStatusScheduled,
	}
	if err := s.repo.Create(ctx, trip); err != nil {
		return nil, err
	}
	trip.Vehicle = *vehicle
	s.invalidateSearches(ctx)
	return trip, nil
}

func (s *service) Search(ctx context.Context, req SearchTripsRequest) ([]TripResponse, error) {
	key := searchCacheKey(req.From, req.To, req.Date, req.CooperativeID)
	var cached []TripResponse
	if s.cache != nil {
		err := s.cache.GetOrSet(ctx, key, s.config.Redis.TripSearchTTL, func() (interface{}, error) {
			return s.searchFromDB(ctx, req)
		}, &cached)
		if err == nil {
			return cached, nil
		}
	}
	return s.searchFromDB(ctx, req)
}

func (s *service) searchFromDB(ctx context.Context, req SearchTripsRequest) ([]TripResponse, error) {
	dayStart, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	var coopFilter *uuid.UUID
	if req.CooperativeID != "" {
		coopID, err := uuid.Parse(req.CooperativeID)
		if err != nil {
			return nil, fmt.Errorf("invalid cooperative ID: %w", err)
		}
		coopFilter = &coopID
	}

	trips, err := s.repo.Search(ctx, req.From, req.To, dayStart, dayEnd, coopFilter)
	if err != nil {
		return nil, err
	}

	tripIDs := make([]uuid.UUID, len(trips))
	for i := range trips {
		tripIDs[i] = trips[i].ID
	}
	reservedCounts := map[uuid.UUID]int{}
	if s.reservations != nil && len(tripIDs) > 0 {
		reservedCounts, err = s.reservations.ReservedCounts(ctx, tripIDs)
		if err != nil {
			return nil, err
		}
	}

	responses := make([]TripResponse, 0, len(trips))
	for i := range trips {
		trip := &trips[i]
		// One seat always belongs to the driver.
		available := trip.Vehicle.TotalSeats - 1 - reservedCounts[trip.ID]
		if available < 0 {
			available = 0
		}
		responses = append(responses, trip.toResponse(available))
	}
	return responses, nil
}

func (s *service) Get(ctx context.Context, id string) (*TripDetailResponse, error) {
	tripID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid trip ID: %w", err)
	}
	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	reserved := []int{}
	if s.reservations != nil {
		reserved, err = s.reservations.ReservedSeats(ctx, tripID)
		if err != nil {
			return nil, err
		}
	}

	available := trip.Vehicle.TotalSeats - 1 - len(reserved)
	if available < 0 {
		available = 0
	}
	return &TripDetailResponse{
		TripResponse:  trip.toResponse(available),
		TotalSeats:    trip.Vehicle.TotalSeats,
		ReservedSeats: reserved,
	}, nil
}

func (s *service) SeatMap(ctx context.Context, id string) (*SeatMapResponse, error) {
	key := SeatMapCacheKey(id)
	var cached SeatMapResponse
	if s.cache != nil {
		err := s.cache.GetOrSet(ctx, key, s.config.Redis.SeatMapTTL, func() (interface{}, error) {
			return s.seatMapFromDB(ctx, id)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
	}
	return s.seatMapFromDB(ctx, id)
}

func (s *service) seatMapFromDB(ctx context.Context, id string) (*SeatMapResponse, error) {
	tripID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid trip ID: %w", err)
	}
	trip, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	chart, err := layout.Generate(trip.Vehicle.TotalSeats, trip.Vehicle.Model)
	if err != nil {
		return nil, err
	}

	reservedSet := make(map[int]bool)
	if s.reservations != nil {
		reserved, err := s.reservations.ReservedSeats(ctx, tripID)
		if err != nil {
			return nil, err
		}
		for _, seat := range reserved {
			reservedSet[seat] = true
		}
	}

	rows := make([][]SeatMapSeat, len(chart))
	for i, row := range chart {
		rows[i] = make([]SeatMapSeat, len(row))
		for j, slot := range row {
			switch {
			case slot == layout.Empty:
				rows[i][j] = SeatMapSeat{}
			case slot == layout.DriverSeat:
				rows[i][j] = SeatMapSeat{Number: slot, Status: SeatStatusDriver}
			case reservedSet[slot]:
				rows[i][j] = SeatMapSeat{Number: slot, Status: SeatStatusReserved}
			default:
				rows[i][j] = SeatMapSeat{Number: slot, Status: SeatStatusAvailable}
			}
		}
	}

	return &SeatMapResponse{
		TripID:       trip.ID.String(),
		TotalSeats:   trip.Vehicle.TotalSeats,
		PricePerSeat: trip.PricePerSeat,
		Rows:         rows,
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status TripStatus) error {
	tripID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid trip ID: %w", err)
	}
	if err := s.repo.UpdateStatus(ctx, tripID, status); err != nil {
		return err
	}
	s.invalidateSearches(ctx)
	if s.cache != nil {
		_ = s.cache.Delete(ctx, SeatMapCacheKey(id))
	}
	return nil
}

func (s *service) invalidateSearches(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.DeletePattern(ctx, "trips:search:*")
	}
}
