// Package bookingclient is the HTTP implementation of the booking API
// used by the seat-selection workflow. It classifies transport and HTTP
// failures into the reservation error taxonomy so the workflow never has
// to inspect status codes itself.
package bookingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"taxibe/internal/reservation"
)

const defaultTimeout = 30 * time.Second

// Client posts bookings to a TaxiBe backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     reservation.TokenProvider
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Tests use this to
// point at an httptest server with a short timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every submission attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a booking client against the given base URL, e.g.
// "https://api.taxibe.mg". The token provider supplies the passenger's
// bearer credential per request.
func New(baseURL string, tokens reservation.TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createBookingBody struct {
	SeatsReserved  []int `json:"seats_reserved"`
	PlacesReserved int   `json:"places_reserved"`
}

type bookingEnvelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    bookingData `json:"data"`
}

type bookingData struct {
	ID            string  `json:"id"`
	BookingRef    string  `json:"booking_ref"`
	SeatsReserved []int   `json:"seats_reserved"`
	TotalPrice    float64 `json:"total_price"`
}

// CreateBooking implements reservation.BookingAPI.
func (c *Client) CreateBooking(ctx context.Context, req reservation.SubmitRequest) (*reservation.Receipt, error) {
	body, err := json.Marshal(createBookingBody{
		SeatsReserved:  req.SeatsReserved,
		PlacesReserved: req.PlacesReserved,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reservation.ErrServerRejected, err)
	}

	url := fmt.Sprintf("%s/api/v1/trips/%s/bookings", c.baseURL, req.TripID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", reservation.ErrServerRejected, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)

	token, err := c.tokens.Token(ctx)
	if err != nil || token == "" {
		return nil, reservation.ErrAuthenticationRequired
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Timeouts, refused connections and DNS failures all land here;
		// the workflow treats them uniformly as a connectivity problem.
		return nil, fmt.Errorf("%w: %v", reservation.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK:
		var envelope bookingEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return nil, fmt.Errorf("%w: malformed confirmation: %v", reservation.ErrServerRejected, err)
		}
		return &reservation.Receipt{
			BookingID:     envelope.Data.ID,
			BookingRef:    envelope.Data.BookingRef,
			ReservedSeats: envelope.Data.SeatsReserved,
			TotalPrice:    envelope.Data.TotalPrice,
		}, nil

	case resp.StatusCode == http.StatusConflict:
		return nil, reservation.ErrSeatsAlreadyTaken

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, reservation.ErrAuthenticationRequired

	default:
		return nil, fmt.Errorf("%w: status %d", reservation.ErrServerRejected, resp.StatusCode)
	}
}
