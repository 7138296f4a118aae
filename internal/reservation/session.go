package reservation

import (
	"context"
	"sync"
)

// Session owns the selection state of one seat-selection screen instance
// and serializes every operation against it. While a submission is in
// flight, seat toggling and duplicate submissions are refused with
// ErrSubmitInFlight. After Close, a late submission result is discarded
// and never mutates the state.
type Session struct {
	mu        sync.Mutex
	selection *Selection
	submitter *Submitter
	tripID    string
	inFlight  bool
	closed    bool
}

// NewSession builds a session for a trip, seeded with the reserved seats
// fetched from the trip detail endpoint.
func NewSession(cfg Config, tripID string, reservedSeats []int, submitter *Submitter) *Session {
	return &Session{
		selection: NewSelection(cfg, reservedSeats),
		submitter: submitter,
		tripID:    tripID,
	}
}

// Toggle flips a seat in the selection. Refused while a submit is pending.
func (s *Session) Toggle(seat int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.inFlight {
		return ErrSubmitInFlight
	}
	return s.selection.Toggle(seat)
}

// Seats returns the current selection snapshot in ascending order.
func (s *Session) Seats() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Seats()
}

// Reserved returns the reserved seats snapshot in ascending order.
func (s *Session) Reserved() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Reserved()
}

// TotalPrice returns the fare for the current selection.
func (s *Session) TotalPrice(perSeatPrice float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.TotalPrice(perSeatPrice)
}

// Clear empties the selection. Refused while a submit is pending.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.inFlight {
		return ErrSubmitInFlight
	}
	s.selection.Clear()
	return nil
}

// MergeReserved refreshes the reserved set from a refetch, dropping any
// clashing seats from the selection.
func (s *Session) MergeReserved(seats []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.selection.MergeReserved(seats)
}

// Submit posts the current selection. On success the confirmed seats are
// merged into the reserved set and the selection is cleared. The call
// blocks for the duration of the network request; concurrent operations on
// the session are refused until it returns.
func (s *Session) Submit(ctx context.Context) (*Receipt, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	seats := s.selection.Seats()
	if len(seats) == 0 {
		s.mu.Unlock()
		return nil, ErrNothingSelected
	}
	s.inFlight = true
	s.mu.Unlock()

	receipt, err := s.submitter.Submit(ctx, s.tripID, seats)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if s.closed {
		// The screen was torn down mid-flight; the result is dropped.
		return nil, ErrSessionClosed
	}
	if err != nil {
		return nil, err
	}

	s.selection.MergeReserved(receipt.ReservedSeats)
	s.selection.Clear()
	return receipt, nil
}

// Close tears the session down. Any in-flight submission result arriving
// afterwards is discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
