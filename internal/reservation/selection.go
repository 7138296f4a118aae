// Package reservation implements the seat selection and booking submission
// workflow used by the seat-selection screen: a selection state holding the
// reserved and chosen seats for one trip, and a submitter that posts the
// final selection to the booking API and reconciles the result.
package reservation

import (
	"sort"

	"taxibe/internal/layout"
)

// Config carries the per-flow selection limits. MaxSeatsPerBooking differs
// between flows (the mobile flow caps at 4, counter sales at 15), so it is
// injected rather than fixed here.
type Config struct {
	MaxSeatsPerBooking int
}

// DefaultConfig returns the mobile booking flow limits.
func DefaultConfig() Config {
	return Config{MaxSeatsPerBooking: 4}
}

// Selection tracks the seats of a single trip-browsing session: the seats
// already booked by anyone (authoritative, from the server) and the seats
// the current user has picked but not yet submitted.
//
// A Selection has exactly one owner and is not safe for concurrent use;
// the owning session serializes access.
type Selection struct {
	cfg      Config
	reserved map[int]bool
	selected map[int]bool
}

// NewSelection seeds a selection with the reserved seats fetched from the
// trip detail endpoint. Driver and duplicate entries are tolerated in the
// input; the driver seat is unbookable regardless.
func NewSelection(cfg Config, reservedSeats []int) *Selection {
	if cfg.MaxSeatsPerBooking <= 0 {
		cfg = DefaultConfig()
	}
	s := &Selection{
		cfg:      cfg,
		reserved: make(map[int]bool, len(reservedSeats)),
		selected: make(map[int]bool),
	}
	for _, seat := range reservedSeats {
		if seat > layout.DriverSeat {
			s.reserved[seat] = true
		}
	}
	return s
}

// Toggle flips the membership of a seat in the current selection.
// Selecting a reserved seat or the driver seat fails with
// ErrSeatUnavailable; growing the selection past the configured limit
// fails with ErrSelectionLimitExceeded. Removal always succeeds.
func (s *Selection) Toggle(seat int) error {
	if seat <= layout.DriverSeat || s.reserved[seat] {
		return ErrSeatUnavailable
	}

	if s.selected[seat] {
		delete(s.selected, seat)
		return nil
	}

	if len(s.selected) >= s.cfg.MaxSeatsPerBooking {
		return ErrSelectionLimitExceeded
	}

	s.selected[seat] = true
	return nil
}

// Seats returns the current selection in ascending seat order.
func (s *Selection) Seats() []int {
	seats := make([]int, 0, len(s.selected))
	for seat := range s.selected {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	return seats
}

// Reserved returns the reserved set in ascending seat order.
func (s *Selection) Reserved() []int {
	seats := make([]int, 0, len(s.reserved))
	for seat := range s.reserved {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	return seats
}

// IsReserved reports whether a seat is already booked by anyone.
func (s *Selection) IsReserved(seat int) bool {
	return s.reserved[seat]
}

// IsSelected reports whether the user currently has a seat picked.
func (s *Selection) IsSelected(seat int) bool {
	return s.selected[seat]
}

// Count returns the number of seats currently selected.
func (s *Selection) Count() int {
	return len(s.selected)
}

// TotalPrice returns the fare for the current selection.
func (s *Selection) TotalPrice(perSeatPrice float64) float64 {
	return perSeatPrice * float64(len(s.selected))
}

// Clear empties the selection. Reserved seats are untouched.
func (s *Selection) Clear() {
	s.selected = make(map[int]bool)
}

// MergeReserved folds newly confirmed seats into the reserved set and
// drops them from the selection. Called with the server's authoritative
// seat list after a successful submission, or after a reserved-seats
// refetch following ErrSeatsAlreadyTaken.
func (s *Selection) MergeReserved(seats []int) {
	for _, seat := range seats {
		if seat <= layout.DriverSeat {
			continue
		}
		s.reserved[seat] = true
		delete(s.selected, seat)
	}
}
