package tickets

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"taxibe/internal/bookings"

	"github.com/google/uuid"
)

type fakeRepo struct {
	tickets map[uuid.UUID]*Ticket
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tickets: make(map[uuid.UUID]*Ticket)}
}

func (f *fakeRepo) Create(ctx context.Context, ticket *Ticket) error {
	ticket.ID = uuid.New()
	f.tickets[ticket.ID] = ticket
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

func (f *fakeRepo) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Ticket, error) {
	for _, ticket := range f.tickets {
		if ticket.BookingID == bookingID {
			return ticket, nil
		}
	}
	return nil, ErrTicketNotFound
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	var out []Ticket
	for _, ticket := range f.tickets {
		if ticket.UserID == userID {
			out = append(out, *ticket)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status TicketStatus) error {
	for _, ticket := range f.tickets {
		if ticket.BookingID == bookingID {
			ticket.Status = status
			return nil
		}
	}
	return ErrTicketNotFound
}

func sampleInput() bookings.TicketInput {
	return bookings.TicketInput{
		BookingID:   uuid.New(),
		UserID:      uuid.New(),
		TripID:      uuid.New(),
		BookingRef:  "TB-7K2M9QX4",
		FromCity:    "Antananarivo",
		ToCity:      "Antsirabe",
		DepartureAt: time.Date(2026, 9, 14, 7, 0, 0, 0, time.UTC),
		Seats:       []int{3, 4, 7},
		TotalPrice:  30000,
	}
}

func TestIssueForBooking(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	input := sampleInput()

	if err := svc.IssueForBooking(context.Background(), input); err != nil {
		t.Fatalf("IssueForBooking failed: %v", err)
	}

	ticket, err := repo.GetByBookingID(context.Background(), input.BookingID)
	if err != nil {
		t.Fatalf("ticket not stored: %v", err)
	}

	if ticket.Seats != "3,4,7" {
		t.Errorf("Seats = %q, want 3,4,7", ticket.Seats)
	}
	if ticket.Status != TicketStatusValid {
		t.Errorf("Status = %q", ticket.Status)
	}

	wantQR := "TAXIBE|TB-7K2M9QX4|" + input.TripID.String() + "|3,4,7|2026-09-14T07:00"
	if ticket.QRPayload != wantQR {
		t.Errorf("QRPayload = %q, want %q", ticket.QRPayload, wantQR)
	}
}

func TestTicketOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	input := sampleInput()
	if err := svc.IssueForBooking(context.Background(), input); err != nil {
		t.Fatalf("IssueForBooking failed: %v", err)
	}
	ticket, _ := repo.GetByBookingID(context.Background(), input.BookingID)

	if _, err := svc.Get(context.Background(), input.UserID.String(), false, ticket.ID.String()); err != nil {
		t.Errorf("owner Get failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), uuid.NewString(), false, ticket.ID.String()); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("stranger Get err = %v, want ErrTicketNotFound", err)
	}
	if _, err := svc.Get(context.Background(), uuid.NewString(), true, ticket.ID.String()); err != nil {
		t.Errorf("admin Get failed: %v", err)
	}
}

func TestExportPDF(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	input := sampleInput()
	if err := svc.IssueForBooking(context.Background(), input); err != nil {
		t.Fatalf("IssueForBooking failed: %v", err)
	}
	ticket, _ := repo.GetByBookingID(context.Background(), input.BookingID)

	data, filename, err := svc.ExportPDF(context.Background(), input.UserID.String(), false, ticket.ID.String())
	if err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
	if filename != "TAXIBE_TB-7K2M9QX4.pdf" {
		t.Errorf("filename = %q", filename)
	}
}

func TestCancelForBooking(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	input := sampleInput()
	if err := svc.IssueForBooking(context.Background(), input); err != nil {
		t.Fatalf("IssueForBooking failed: %v", err)
	}

	if err := svc.CancelForBooking(context.Background(), input.BookingID); err != nil {
		t.Fatalf("CancelForBooking failed: %v", err)
	}
	ticket, _ := repo.GetByBookingID(context.Background(), input.BookingID)
	if ticket.Status != TicketStatusCancelled {
		t.Errorf("Status = %q", ticket.Status)
	}
}

func TestSeatRoundTrip(t *testing.T) {
	joined := joinSeats([]int{3, 4, 7})
	if joined != "3,4,7" {
		t.Fatalf("joinSeats = %q", joined)
	}
	seats := parseSeats(joined)
	if len(seats) != 3 || seats[0] != 3 || seats[2] != 7 {
		t.Errorf("parseSeats = %v", seats)
	}
	if got := parseSeats(""); len(got) != 0 {
		t.Errorf("parseSeats(\"\") = %v", got)
	}
}

func TestFormatAriary(t *testing.T) {
	cases := map[float64]string{
		0:      "0 Ar",
		10000:  "10 000 Ar",
		250000: "250 000 Ar",
	}
	for in, want := range cases {
		if got := formatAriary(in); got != want {
			t.Errorf("formatAriary(%v) = %q, want %q", in, got, want)
		}
	}
	if !strings.HasSuffix(formatAriary(30000), " Ar") {
		t.Error("missing currency suffix")
	}
}
