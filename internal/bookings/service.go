package bookings

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"taxibe/internal/layout"
	"taxibe/internal/notifications"
	"taxibe/internal/reservation"
	"taxibe/internal/shared/config"
	"taxibe/internal/trips"
	"taxibe/pkg/cache"
	"taxibe/pkg/logger"

	"github.com/google/uuid"
)

var ErrPlacesMismatch = fmt.Errorf("places_reserved does not match the number of seats")

// TicketInput carries everything the ticketing side needs to issue a
// travel document without reaching back into this package's storage.
type TicketInput struct {
	BookingID   uuid.UUID
	UserID      uuid.UUID
	TripID      uuid.UUID
	BookingRef  string
	FromCity    string
	ToCity      string
	DepartureAt time.Time
	Seats       []int
	TotalPrice  float64
}

// TicketIssuer is implemented by the tickets service.
type TicketIssuer interface {
	IssueForBooking(ctx context.Context, input TicketInput) error
	CancelForBooking(ctx context.Context, bookingID uuid.UUID) error
}

// UserDirectory resolves the passenger's phone number for SMS delivery.
type UserDirectory interface {
	FindPhone(ctx context.Context, userID uuid.UUID) (string, error)
}

type Service interface {
	Create(ctx context.Context, userID string, tripID string, idempotencyKey string, req CreateBookingRequest) (*BookingResponse, error)
	Get(ctx context.Context, userID string, isAdmin bool, id string) (*BookingResponse, error)
	ListMine(ctx context.Context, userID string) ([]BookingResponse, error)
	Cancel(ctx context.Context, userID string, isAdmin bool, id string) error

	// trips.ReservationReader
	ReservedSeats(ctx context.Context, tripID uuid.UUID) ([]int, error)
	ReservedCounts(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type service struct {
	repo     Repository
	tripRepo trips.Repository
	tickets  TicketIssuer
	users    UserDirectory
	producer notifications.Producer
	config   *config.Config
	cache    cache.Service
	logger   *logger.Logger
}

func NewService(repo Repository, tripRepo trips.Repository, tickets TicketIssuer, users UserDirectory, producer notifications.Producer, cfg *config.Config, cacheService cache.Service) Service {
	return &service{
		repo:     repo,
		tripRepo: tripRepo,
		tickets:  tickets,
		users:    users,
		producer: producer,
		config:   cfg,
		cache:    cacheService,
		logger:   logger.GetDefault(),
	}
}

func (s *service) Create(ctx context.Context, userID, tripID, idempotencyKey string, req CreateBookingRequest) (*BookingResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}
	tid, err := uuid.Parse(tripID)
	if err != nil {
		return nil, fmt.Errorf("invalid trip ID: %w", err)
	}

	// A submission gets a bounded budget; a stuck transaction must not
	// hold seat row locks past it.
	if s.config.Booking.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Booking.SubmitTimeout)
		defer cancel()
	}

	// An honored key wins over everything else: the original booking is
	// returned untouched even though its own seats now read as taken.
	if idempotencyKey != "" {
		existing, err := s.repo.GetByIdempotencyKey(ctx, tid, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			resp := existing.ToResponse()
			return &resp, nil
		}
	}

	trip, err := s.tripRepo.GetByID(ctx, tid)
	if err != nil {
		return nil, err
	}
	if trip.Status != trips.TripStatusScheduled || !trip.DepartureAt.After(time.Now()) {
		return nil, trips.ErrTripNotBookable
	}

	if len(req.SeatsReserved) == 0 {
		return nil, reservation.ErrNothingSelected
	}
	if req.PlacesReserved != 0 && req.PlacesReserved != len(req.SeatsReserved) {
		return nil, ErrPlacesMismatch
	}

	chart, err := layout.Generate(trip.Vehicle.TotalSeats, trip.Vehicle.Model)
	if err != nil {
		return nil, err
	}
	for _, seat := range req.SeatsReserved {
		if !chart.Contains(seat) {
			return nil, fmt.Errorf("%w: seat %d does not exist on this vehicle", reservation.ErrSeatUnavailable, seat)
		}
	}

	reserved, err := s.repo.ReservedSeats(ctx, tid)
	if err != nil {
		return nil, err
	}

	// Replaying the selection against the authoritative reserved set
	// enforces the same rules the seat-selection screen does: taken
	// seats, duplicates and the per-booking limit all surface here.
	sel := reservation.NewSelection(reservation.Config{MaxSeatsPerBooking: s.config.Booking.MaxSeatsPerBooking}, reserved)
	var conflicts []int
	for _, seat := range req.SeatsReserved {
		if sel.IsSelected(seat) {
			return nil, fmt.Errorf("%w: seat %d listed twice", reservation.ErrSeatUnavailable, seat)
		}
		if err := sel.Toggle(seat); err != nil {
			if sel.IsReserved(seat) {
				conflicts = append(conflicts, seat)
				continue
			}
			return nil, err
		}
	}
	if len(conflicts) > 0 {
		return nil, &SeatConflictError{Seats: conflicts}
	}

	seats := sel.Seats()
	booking := &Booking{
		BookingRef:      newBookingRef(),
		UserID:          uid,
		TripID:          tid,
		PlacesReserved:  len(seats),
		TotalPrice:      sel.TotalPrice(trip.PricePerSeat),
		Status:          BookingStatusConfirmed,
		ClientRequestID: idempotencyKey,
	}
	for _, seat := range seats {
		booking.Seats = append(booking.Seats, SeatReservation{
			TripID:     tid,
			SeatNumber: seat,
			Price:      trip.PricePerSeat,
		})
	}

	created, existing, err := s.repo.CreateWithSeats(ctx, booking)
	if err != nil {
		if _, ok := err.(*SeatConflictError); ok {
			s.logger.LogBookingConflict(ctx, tripID, req.SeatsReserved)
		}
		return nil, err
	}
	if !created {
		// Idempotent replay: the key was already honored, return the
		// original booking untouched.
		resp := existing.ToResponse()
		return &resp, nil
	}

	s.invalidateSeatMap(ctx, tripID)
	s.logger.LogBookingCreated(ctx, booking.ID.String(), tripID, userID)

	if s.tickets != nil {
		err := s.tickets.IssueForBooking(ctx, TicketInput{
			BookingID:   booking.ID,
			UserID:      uid,
			TripID:      tid,
			BookingRef:  booking.BookingRef,
			FromCity:    trip.FromCity,
			ToCity:      trip.ToCity,
			DepartureAt: trip.DepartureAt,
			Seats:       seats,
			TotalPrice:  booking.TotalPrice,
		})
		if err != nil {
			s.logger.WithError(err).Error("failed to issue ticket", "booking_ref", booking.BookingRef)
		}
	}

	s.publishEvent(ctx, notifications.EventBookingConfirmed, booking, trip, seats)

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) Get(ctx context.Context, userID string, isAdmin bool, id string) (*BookingResponse, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID: %w", err)
	}
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID.String() != userID {
		return nil, ErrBookingNotFound
	}
	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]BookingResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}
	bookings, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}
	return responses, nil
}

func (s *service) Cancel(ctx context.Context, userID string, isAdmin bool, id string) error {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid booking ID: %w", err)
	}
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !isAdmin && booking.UserID.String() != userID {
		return ErrBookingNotFound
	}

	trip, err := s.tripRepo.GetByID(ctx, booking.TripID)
	if err != nil {
		return err
	}
	if !trip.DepartureAt.After(time.Now()) {
		return fmt.Errorf("cannot cancel after departure")
	}

	if err := s.repo.Cancel(ctx, bookingID); err != nil {
		return err
	}

	s.invalidateSeatMap(ctx, booking.TripID.String())
	s.logger.LogBookingCancelled(ctx, booking.ID.String(), booking.TripID.String(), userID)

	// The ticket dies with the booking, or its QR would still scan for
	// seats that are back on sale.
	if s.tickets != nil {
		if err := s.tickets.CancelForBooking(ctx, booking.ID); err != nil {
			s.logger.WithError(err).Error("failed to cancel ticket", "booking_ref", booking.BookingRef)
		}
	}

	seats := make([]int, 0, len(booking.Seats))
	for i := range booking.Seats {
		seats = append(seats, booking.Seats[i].SeatNumber)
	}
	s.publishEvent(ctx, notifications.EventBookingCancelled, booking, trip, seats)
	return nil
}

func (s *service) ReservedSeats(ctx context.Context, tripID uuid.UUID) ([]int, error) {
	return s.repo.ReservedSeats(ctx, tripID)
}

func (s *service) ReservedCounts(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	return s.repo.ReservedCounts(ctx, tripIDs)
}

func (s *service) invalidateSeatMap(ctx context.Context, tripID string) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, trips.SeatMapCacheKey(tripID))
	}
}

// publishEvent is best effort: losing an SMS never rolls back a booking.
func (s *service) publishEvent(ctx context.Context, eventType notifications.EventType, booking *Booking, trip *trips.Trip, seats []int) {
	if s.producer == nil {
		return
	}

	phone := ""
	if s.users != nil {
		p, err := s.users.FindPhone(ctx, booking.UserID)
		if err != nil {
			s.logger.WithError(err).WithUserID(booking.UserID.String()).Warn("failed to resolve passenger phone")
		} else {
			phone = p
		}
	}

	event := notifications.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID.String(),
		BookingRef:  booking.BookingRef,
		UserID:      booking.UserID.String(),
		UserPhone:   phone,
		TripID:      booking.TripID.String(),
		FromCity:    trip.FromCity,
		ToCity:      trip.ToCity,
		DepartureAt: trip.DepartureAt,
		Seats:       seats,
		TotalPrice:  booking.TotalPrice,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.producer.PublishBookingEvent(ctx, event); err != nil {
		s.logger.WithError(err).Error("failed to publish booking event", "booking_ref", booking.BookingRef)
	}
}

// newBookingRef builds a short human-readable reference like TB-7K2M9QX4.
// The alphabet drops ambiguous characters since refs are read out loud at
// the taxi station.
func newBookingRef() string {
	const alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in real trouble;
		// fall back to a UUID-derived ref rather than crash a booking.
		return "TB-" + uuid.NewString()[:8]
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return "TB-" + string(buf)
}
