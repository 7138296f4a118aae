package reservation

import (
	"errors"
	"reflect"
	"testing"
)

func TestToggleSelectsAndDeselects(t *testing.T) {
	sel := NewSelection(Config{MaxSeatsPerBooking: 4}, nil)

	if err := sel.Toggle(5); err != nil {
		t.Fatalf("Toggle(5) error: %v", err)
	}
	if !sel.IsSelected(5) {
		t.Fatal("seat 5 not selected after toggle")
	}

	if err := sel.Toggle(5); err != nil {
		t.Fatalf("second Toggle(5) error: %v", err)
	}
	if sel.IsSelected(5) || sel.Count() != 0 {
		t.Fatal("toggling the same seat twice must restore the original selection")
	}
}

func TestToggleDriverSeatAlwaysFails(t *testing.T) {
	sel := NewSelection(DefaultConfig(), []int{2, 5})

	if err := sel.Toggle(1); !errors.Is(err, ErrSeatUnavailable) {
		t.Errorf("Toggle(1) error = %v, want ErrSeatUnavailable", err)
	}
	// Still unavailable with a non-empty selection.
	if err := sel.Toggle(3); err != nil {
		t.Fatalf("Toggle(3) error: %v", err)
	}
	if err := sel.Toggle(1); !errors.Is(err, ErrSeatUnavailable) {
		t.Errorf("Toggle(1) error = %v, want ErrSeatUnavailable", err)
	}
}

func TestToggleReservedSeatFails(t *testing.T) {
	sel := NewSelection(DefaultConfig(), []int{2, 5, 8})

	if err := sel.Toggle(5); !errors.Is(err, ErrSeatUnavailable) {
		t.Errorf("Toggle(5) error = %v, want ErrSeatUnavailable", err)
	}
	if sel.Count() != 0 {
		t.Error("failed toggle must not mutate the selection")
	}
}

func TestToggleEnforcesSelectionLimit(t *testing.T) {
	sel := NewSelection(Config{MaxSeatsPerBooking: 4}, nil)
	for _, seat := range []int{2, 3, 4, 5} {
		if err := sel.Toggle(seat); err != nil {
			t.Fatalf("Toggle(%d) error: %v", seat, err)
		}
	}

	if err := sel.Toggle(6); !errors.Is(err, ErrSelectionLimitExceeded) {
		t.Fatalf("Toggle(6) error = %v, want ErrSelectionLimitExceeded", err)
	}
	if got := sel.Seats(); !reflect.DeepEqual(got, []int{2, 3, 4, 5}) {
		t.Errorf("selection after refused toggle = %v, want [2 3 4 5]", got)
	}

	// Removal is always allowed at the limit.
	if err := sel.Toggle(5); err != nil {
		t.Errorf("Toggle(5) removal at limit error: %v", err)
	}
}

func TestSeatsAreOrderedAscending(t *testing.T) {
	sel := NewSelection(Config{MaxSeatsPerBooking: 15}, nil)
	for _, seat := range []int{9, 2, 14, 7} {
		if err := sel.Toggle(seat); err != nil {
			t.Fatalf("Toggle(%d) error: %v", seat, err)
		}
	}
	if got := sel.Seats(); !reflect.DeepEqual(got, []int{2, 7, 9, 14}) {
		t.Errorf("Seats() = %v, want [2 7 9 14]", got)
	}
}

func TestTotalPrice(t *testing.T) {
	sel := NewSelection(DefaultConfig(), nil)
	for _, seat := range []int{2, 3, 4} {
		if err := sel.Toggle(seat); err != nil {
			t.Fatalf("Toggle(%d) error: %v", seat, err)
		}
	}
	if got := sel.TotalPrice(10000); got != 30000 {
		t.Errorf("TotalPrice(10000) = %v, want 30000", got)
	}
}

func TestClearSelection(t *testing.T) {
	sel := NewSelection(DefaultConfig(), []int{7})
	if err := sel.Toggle(4); err != nil {
		t.Fatalf("Toggle(4) error: %v", err)
	}

	sel.Clear()

	if sel.Count() != 0 {
		t.Error("Clear() left seats selected")
	}
	if !sel.IsReserved(7) {
		t.Error("Clear() must not touch the reserved set")
	}
}

func TestMergeReservedMovesSeatsOutOfSelection(t *testing.T) {
	sel := NewSelection(DefaultConfig(), []int{3, 7})
	for _, seat := range []int{4, 5} {
		if err := sel.Toggle(seat); err != nil {
			t.Fatalf("Toggle(%d) error: %v", seat, err)
		}
	}

	sel.MergeReserved([]int{4, 5})

	if got := sel.Reserved(); !reflect.DeepEqual(got, []int{3, 4, 5, 7}) {
		t.Errorf("Reserved() = %v, want [3 4 5 7]", got)
	}
	if sel.Count() != 0 {
		t.Errorf("selection after merge = %v, want empty", sel.Seats())
	}
	if err := sel.Toggle(4); !errors.Is(err, ErrSeatUnavailable) {
		t.Errorf("Toggle(4) after merge error = %v, want ErrSeatUnavailable", err)
	}
}

func TestNewSelectionIgnoresDriverSeatInReservedInput(t *testing.T) {
	sel := NewSelection(DefaultConfig(), []int{1, 2})
	if got := sel.Reserved(); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("Reserved() = %v, want [2]", got)
	}
}

func TestZeroConfigFallsBackToDefaultLimit(t *testing.T) {
	sel := NewSelection(Config{}, nil)
	for _, seat := range []int{2, 3, 4, 5} {
		if err := sel.Toggle(seat); err != nil {
			t.Fatalf("Toggle(%d) error: %v", seat, err)
		}
	}
	if err := sel.Toggle(6); !errors.Is(err, ErrSelectionLimitExceeded) {
		t.Errorf("Toggle(6) error = %v, want ErrSelectionLimitExceeded", err)
	}
}
