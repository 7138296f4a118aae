package reservation

import (
	"context"

	"github.com/google/uuid"
)

// SubmitRequest is the payload sent to the booking API.
type SubmitRequest struct {
	TripID string `json:"trip_id"`
	// SeatsReserved lists the seat numbers, ascending.
	SeatsReserved []int `json:"seats_reserved"`
	// PlacesReserved must equal len(SeatsReserved); the API rejects the
	// request otherwise.
	PlacesReserved int `json:"places_reserved"`
	// IdempotencyKey is generated once per submission attempt so the API
	// can deduplicate an accidental resend of the same attempt.
	IdempotencyKey string `json:"idempotency_key"`
}

// Receipt is the authoritative confirmation returned by the booking API.
type Receipt struct {
	BookingID     string  `json:"booking_id"`
	BookingRef    string  `json:"booking_ref"`
	ReservedSeats []int   `json:"reserved_seats"`
	TotalPrice    float64 `json:"total_price"`
}

// BookingAPI is the collaborator that records a reservation. The HTTP
// client in pkg/bookingclient and the in-process bookings service both
// satisfy it. Implementations classify their failures into the submission
// error taxonomy of this package.
type BookingAPI interface {
	CreateBooking(ctx context.Context, req SubmitRequest) (*Receipt, error)
}

// TokenProvider supplies the bearer credential attached to booking
// requests. Injected so tests can run with a fake token and so the token
// source (secure storage, env, test stub) stays out of the workflow.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to the TokenProvider interface.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StaticToken returns a provider that always yields the given token.
func StaticToken(token string) TokenProvider {
	return TokenFunc(func(context.Context) (string, error) { return token, nil })
}

// Submitter posts a finalized seat selection to the booking API.
//
// It never retries on its own: a failed submission is reported once and any
// retry must be a fresh, user-initiated attempt with a new idempotency key.
type Submitter struct {
	api BookingAPI
}

// NewSubmitter creates a submitter backed by the given booking API.
func NewSubmitter(api BookingAPI) *Submitter {
	return &Submitter{api: api}
}

// Submit sends the selected seats for the trip and returns the receipt.
// An empty selection fails with ErrNothingSelected before any call to the
// collaborator. Failures from the collaborator arrive pre-classified as
// ErrSeatsAlreadyTaken, ErrAuthenticationRequired, ErrNetworkUnavailable
// or ErrServerRejected.
func (s *Submitter) Submit(ctx context.Context, tripID string, seats []int) (*Receipt, error) {
	if len(seats) == 0 {
		return nil, ErrNothingSelected
	}

	req := SubmitRequest{
		TripID:         tripID,
		SeatsReserved:  seats,
		PlacesReserved: len(seats),
		IdempotencyKey: uuid.NewString(),
	}

	return s.api.CreateBooking(ctx, req)
}
