package reservation

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

// fakeBookingAPI records every call and replays a scripted response.
type fakeBookingAPI struct {
	mu       sync.Mutex
	calls    []SubmitRequest
	receipt  *Receipt
	err      error
	started  chan struct{}
	unblock  chan struct{}
	blocking bool
}

func (f *fakeBookingAPI) CreateBooking(ctx context.Context, req SubmitRequest) (*Receipt, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.blocking {
		close(f.started)
		<-f.unblock
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.receipt, nil
}

func (f *fakeBookingAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestSubmitEmptySelectionNeverHitsTheAPI(t *testing.T) {
	api := &fakeBookingAPI{}
	sub := NewSubmitter(api)

	_, err := sub.Submit(context.Background(), "trip-1", nil)
	if !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("Submit error = %v, want ErrNothingSelected", err)
	}
	if api.callCount() != 0 {
		t.Fatalf("booking API called %d times, want 0", api.callCount())
	}
}

func TestSubmitSendsSeatListAndCount(t *testing.T) {
	api := &fakeBookingAPI{receipt: &Receipt{BookingID: "b-1", ReservedSeats: []int{4, 5}}}
	sub := NewSubmitter(api)

	receipt, err := sub.Submit(context.Background(), "trip-1", []int{4, 5})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if receipt.BookingID != "b-1" {
		t.Errorf("BookingID = %q, want b-1", receipt.BookingID)
	}

	req := api.calls[0]
	if req.TripID != "trip-1" {
		t.Errorf("TripID = %q, want trip-1", req.TripID)
	}
	if !reflect.DeepEqual(req.SeatsReserved, []int{4, 5}) {
		t.Errorf("SeatsReserved = %v, want [4 5]", req.SeatsReserved)
	}
	if req.PlacesReserved != 2 {
		t.Errorf("PlacesReserved = %d, want 2", req.PlacesReserved)
	}
	if req.IdempotencyKey == "" {
		t.Error("IdempotencyKey is empty")
	}
}

func TestSubmitGeneratesFreshIdempotencyKeyPerAttempt(t *testing.T) {
	api := &fakeBookingAPI{err: ErrNetworkUnavailable}
	sub := NewSubmitter(api)

	for i := 0; i < 2; i++ {
		if _, err := sub.Submit(context.Background(), "trip-1", []int{2}); !errors.Is(err, ErrNetworkUnavailable) {
			t.Fatalf("Submit error = %v, want ErrNetworkUnavailable", err)
		}
	}
	if api.calls[0].IdempotencyKey == api.calls[1].IdempotencyKey {
		t.Error("two user-initiated attempts shared an idempotency key")
	}
}

func TestSessionSubmitMergesReservedAndClearsSelection(t *testing.T) {
	api := &fakeBookingAPI{receipt: &Receipt{BookingID: "b-7", ReservedSeats: []int{4, 5}}}
	sess := NewSession(DefaultConfig(), "trip-1", []int{3, 7}, NewSubmitter(api))

	for _, seat := range []int{4, 5} {
		if err := sess.Toggle(seat); err != nil {
			t.Fatalf("Toggle(%d) error: %v", seat, err)
		}
	}

	if _, err := sess.Submit(context.Background()); err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	if got := sess.Reserved(); !reflect.DeepEqual(got, []int{3, 4, 5, 7}) {
		t.Errorf("Reserved() = %v, want [3 4 5 7]", got)
	}
	if got := sess.Seats(); len(got) != 0 {
		t.Errorf("Seats() after submit = %v, want empty", got)
	}
}

func TestSessionSubmitFailureKeepsSelection(t *testing.T) {
	api := &fakeBookingAPI{err: ErrSeatsAlreadyTaken}
	sess := NewSession(DefaultConfig(), "trip-1", nil, NewSubmitter(api))

	if err := sess.Toggle(4); err != nil {
		t.Fatalf("Toggle(4) error: %v", err)
	}
	if _, err := sess.Submit(context.Background()); !errors.Is(err, ErrSeatsAlreadyTaken) {
		t.Fatalf("Submit error = %v, want ErrSeatsAlreadyTaken", err)
	}
	if got := sess.Seats(); !reflect.DeepEqual(got, []int{4}) {
		t.Errorf("Seats() after failed submit = %v, want [4]", got)
	}
}

func TestSessionRefusesOperationsWhileSubmitInFlight(t *testing.T) {
	api := &fakeBookingAPI{
		receipt:  &Receipt{ReservedSeats: []int{2}},
		blocking: true,
		started:  make(chan struct{}),
		unblock:  make(chan struct{}),
	}
	sess := NewSession(DefaultConfig(), "trip-1", nil, NewSubmitter(api))
	if err := sess.Toggle(2); err != nil {
		t.Fatalf("Toggle(2) error: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := sess.Submit(context.Background())
		done <- err
	}()

	<-api.started
	if err := sess.Toggle(3); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("Toggle during submit error = %v, want ErrSubmitInFlight", err)
	}
	if _, err := sess.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("duplicate Submit error = %v, want ErrSubmitInFlight", err)
	}

	close(api.unblock)
	if err := <-done; err != nil {
		t.Fatalf("first Submit error: %v", err)
	}
	if api.callCount() != 1 {
		t.Errorf("booking API called %d times, want 1", api.callCount())
	}
}

func TestSessionDiscardsResultAfterClose(t *testing.T) {
	api := &fakeBookingAPI{
		receipt:  &Receipt{ReservedSeats: []int{2}},
		blocking: true,
		started:  make(chan struct{}),
		unblock:  make(chan struct{}),
	}
	sess := NewSession(DefaultConfig(), "trip-1", nil, NewSubmitter(api))
	if err := sess.Toggle(2); err != nil {
		t.Fatalf("Toggle(2) error: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := sess.Submit(context.Background())
		done <- err
	}()

	<-api.started
	sess.Close()
	close(api.unblock)

	if err := <-done; !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Submit after Close error = %v, want ErrSessionClosed", err)
	}
	if err := sess.Toggle(3); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Toggle after Close error = %v, want ErrSessionClosed", err)
	}
}

func TestSessionSubmitEmptySelection(t *testing.T) {
	api := &fakeBookingAPI{}
	sess := NewSession(DefaultConfig(), "trip-1", nil, NewSubmitter(api))

	if _, err := sess.Submit(context.Background()); !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("Submit error = %v, want ErrNothingSelected", err)
	}
	if api.callCount() != 0 {
		t.Fatalf("booking API called %d times, want 0", api.callCount())
	}
}
