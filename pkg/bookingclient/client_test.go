package bookingclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taxibe/internal/reservation"
)

func TestCreateBookingSuccess(t *testing.T) {
	var gotAuth, gotIdempotencyKey, gotPath string
	var gotBody createBookingBody

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotIdempotencyKey = r.Header.Get("Idempotency-Key")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "success",
			"status_code": 201,
			"message":     "Booking confirmed successfully",
			"data": map[string]interface{}{
				"id":             "b1b2c3d4-0000-0000-0000-000000000000",
				"booking_ref":    "TB-7K2M9QX4",
				"trip_id":        "trip-1",
				"seats_reserved": []int{3, 4, 7},
				"total_price":    30000,
			},
		})
	}))
	defer server.Close()

	client := New(server.URL, reservation.StaticToken("test-token"))
	receipt, err := client.CreateBooking(context.Background(), reservation.SubmitRequest{
		TripID:         "trip-1",
		SeatsReserved:  []int{3, 4, 7},
		PlacesReserved: 3,
		IdempotencyKey: "attempt-key-1",
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want Bearer test-token", gotAuth)
	}
	if gotIdempotencyKey != "attempt-key-1" {
		t.Errorf("Idempotency-Key = %q, want attempt-key-1", gotIdempotencyKey)
	}
	if gotPath != "/api/v1/trips/trip-1/bookings" {
		t.Errorf("path = %q", gotPath)
	}
	if len(gotBody.SeatsReserved) != 3 || gotBody.PlacesReserved != 3 {
		t.Errorf("request body = %+v", gotBody)
	}

	if receipt.BookingRef != "TB-7K2M9QX4" {
		t.Errorf("BookingRef = %q", receipt.BookingRef)
	}
	if receipt.TotalPrice != 30000 {
		t.Errorf("TotalPrice = %v", receipt.TotalPrice)
	}
	if len(receipt.ReservedSeats) != 3 || receipt.ReservedSeats[0] != 3 {
		t.Errorf("ReservedSeats = %v", receipt.ReservedSeats)
	}
}

func TestCreateBookingConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "error",
			"message": "Seats already taken",
			"errors":  map[string]interface{}{"conflicting_seats": []int{4}},
		})
	}))
	defer server.Close()

	client := New(server.URL, reservation.StaticToken("test-token"))
	_, err := client.CreateBooking(context.Background(), reservation.SubmitRequest{
		TripID: "trip-1", SeatsReserved: []int{4}, PlacesReserved: 1, IdempotencyKey: "k",
	})
	if !errors.Is(err, reservation.ErrSeatsAlreadyTaken) {
		t.Fatalf("err = %v, want ErrSeatsAlreadyTaken", err)
	}
}

func TestCreateBookingUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(server.URL, reservation.StaticToken("expired"))
	_, err := client.CreateBooking(context.Background(), reservation.SubmitRequest{
		TripID: "trip-1", SeatsReserved: []int{2}, PlacesReserved: 1, IdempotencyKey: "k",
	})
	if !errors.Is(err, reservation.ErrAuthenticationRequired) {
		t.Fatalf("err = %v, want ErrAuthenticationRequired", err)
	}
}

func TestCreateBookingMissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server without a token")
	}))
	defer server.Close()

	client := New(server.URL, reservation.StaticToken(""))
	_, err := client.CreateBooking(context.Background(), reservation.SubmitRequest{
		TripID: "trip-1", SeatsReserved: []int{2}, PlacesReserved: 1, IdempotencyKey: "k",
	})
	if !errors.Is(err, reservation.ErrAuthenticationRequired) {
		t.Fatalf("err = %v, want ErrAuthenticationRequired", err)
	}
}

func TestCreateBookingNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections from here on

	client := New(server.URL, reservation.StaticToken("test-token"))
	_, err := client.CreateBooking(context.Background(), reservation.SubmitRequest{
		TripID: "trip-1", SeatsReserved: []int{2}, PlacesReserved: 1, IdempotencyKey: "k",
	})
	if !errors.Is(err, reservation.ErrNetworkUnavailable) {
		t.Fatalf("err = %v, want ErrNetworkUnavailable", err)
	}
}

func TestCreateBookingTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := New(server.URL, reservation.StaticToken("test-token"), WithTimeout(20*time.Millisecond))
	_, err := client.CreateBooking(context.Background(), reservation.SubmitRequest{
		TripID: "trip-1", SeatsReserved: []int{2}, PlacesReserved: 1, IdempotencyKey: "k",
	})
	if !errors.Is(err, reservation.ErrNetworkUnavailable) {
		t.Fatalf("err = %v, want ErrNetworkUnavailable", err)
	}
}

func TestCreateBookingServerRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, reservation.StaticToken("test-token"))
	_, err := client.CreateBooking(context.Background(), reservation.SubmitRequest{
		TripID: "trip-1", SeatsReserved: []int{2}, PlacesReserved: 1, IdempotencyKey: "k",
	})
	if !errors.Is(err, reservation.ErrServerRejected) {
		t.Fatalf("err = %v, want ErrServerRejected", err)
	}
}

func TestSubmitterOverHTTP(t *testing.T) {
	keys := make(map[string]bool)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys[r.Header.Get("Idempotency-Key")] = true
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data": map[string]interface{}{
				"id":             "b1",
				"booking_ref":    "TB-AAAA1111",
				"seats_reserved": []int{5},
				"total_price":    10000,
			},
		})
	}))
	defer server.Close()

	submitter := reservation.NewSubmitter(New(server.URL, reservation.StaticToken("tok")))

	for i := 0; i < 2; i++ {
		if _, err := submitter.Submit(context.Background(), "trip-1", []int{5}); err != nil {
			t.Fatalf("Submit attempt %d failed: %v", i, err)
		}
	}
	if len(keys) != 2 {
		t.Errorf("expected a fresh idempotency key per attempt, got %d distinct keys", len(keys))
	}
}
