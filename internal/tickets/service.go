package tickets

import (
	"context"
	"fmt"
	"strings"

	"taxibe/internal/bookings"

	"github.com/google/uuid"
)

type Service interface {
	// IssueForBooking satisfies bookings.TicketIssuer.
	IssueForBooking(ctx context.Context, input bookings.TicketInput) error
	Get(ctx context.Context, userID string, isAdmin bool, id string) (*Ticket, error)
	ListMine(ctx context.Context, userID string) ([]TicketResponse, error)
	CancelForBooking(ctx context.Context, bookingID uuid.UUID) error
	ExportPDF(ctx context.Context, userID string, isAdmin bool, id string) ([]byte, string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) IssueForBooking(ctx context.Context, input bookings.TicketInput) error {
	ticket := &Ticket{
		BookingID:   input.BookingID,
		UserID:      input.UserID,
		TripID:      input.TripID,
		BookingRef:  input.BookingRef,
		FromCity:    input.FromCity,
		ToCity:      input.ToCity,
		DepartureAt: input.DepartureAt,
		Seats:       joinSeats(input.Seats),
		TotalPrice:  input.TotalPrice,
		QRPayload:   buildQRPayload(input),
		Status:      TicketStatusValid,
	}
	return s.repo.Create(ctx, ticket)
}

func (s *service) Get(ctx context.Context, userID string, isAdmin bool, id string) (*Ticket, error) {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket ID: %w", err)
	}
	ticket, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && ticket.UserID.String() != userID {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]TicketResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}
	tickets, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	responses := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		responses = append(responses, tickets[i].ToResponse())
	}
	return responses, nil
}

func (s *service) CancelForBooking(ctx context.Context, bookingID uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, bookingID, TicketStatusCancelled)
}

func (s *service) ExportPDF(ctx context.Context, userID string, isAdmin bool, id string) ([]byte, string, error) {
	ticket, err := s.Get(ctx, userID, isAdmin, id)
	if err != nil {
		return nil, "", err
	}
	return buildTicketPDF(ticket)
}

// buildQRPayload packs the fields the station agent scans at boarding.
// The format is opaque to clients; only the scanner parses it.
func buildQRPayload(input bookings.TicketInput) string {
	parts := []string{
		"TAXIBE",
		input.BookingRef,
		input.TripID.String(),
		joinSeats(input.Seats),
		input.DepartureAt.UTC().Format("2006-01-02T15:04"),
	}
	return strings.Join(parts, "|")
}
