package notifications

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/IBM/sarama"
)

type recordingSender struct {
	phones   []string
	messages []string
}

func (r *recordingSender) Send(ctx context.Context, phone, message string) error {
	r.phones = append(r.phones, phone)
	r.messages = append(r.messages, message)
	return nil
}

func sampleEvent() BookingEvent {
	return BookingEvent{
		Type:        EventBookingConfirmed,
		BookingID:   "b1",
		BookingRef:  "TB-7K2M9QX4",
		UserID:      "u1",
		UserPhone:   "0331112233",
		TripID:      "t1",
		FromCity:    "Antananarivo",
		ToCity:      "Antsirabe",
		DepartureAt: time.Date(2026, 9, 14, 7, 0, 0, 0, time.UTC),
		Seats:       []int{3, 4, 7},
		TotalPrice:  30000,
	}
}

func TestFormatSMSConfirmed(t *testing.T) {
	sms := FormatSMS(sampleEvent())

	for _, want := range []string{"TB-7K2M9QX4", "Antananarivo -> Antsirabe", "3,4,7", "30000 Ar", "14 Sep 07:00"} {
		if !strings.Contains(sms, want) {
			t.Errorf("sms %q missing %q", sms, want)
		}
	}
}

func TestFormatSMSCancelled(t *testing.T) {
	event := sampleEvent()
	event.Type = EventBookingCancelled

	sms := FormatSMS(event)
	if !strings.Contains(sms, "cancelled") {
		t.Errorf("sms %q should mention cancellation", sms)
	}
	if strings.Contains(sms, "30000") {
		t.Errorf("cancellation sms %q should not restate the price", sms)
	}
}

func TestProcessMessageSendsSMS(t *testing.T) {
	sender := &recordingSender{}
	handler := &bookingEventHandler{sender: sender}

	payload, err := json.Marshal(sampleEvent())
	if err != nil {
		t.Fatal(err)
	}

	err = handler.processMessage(context.Background(), &sarama.ConsumerMessage{Value: payload})
	if err != nil {
		t.Fatalf("processMessage failed: %v", err)
	}

	if len(sender.phones) != 1 || sender.phones[0] != "0331112233" {
		t.Errorf("phones = %v", sender.phones)
	}
}

func TestProcessMessageSkipsWithoutPhone(t *testing.T) {
	sender := &recordingSender{}
	handler := &bookingEventHandler{sender: sender}

	event := sampleEvent()
	event.UserPhone = ""
	payload, _ := json.Marshal(event)

	if err := handler.processMessage(context.Background(), &sarama.ConsumerMessage{Value: payload}); err != nil {
		t.Fatalf("processMessage failed: %v", err)
	}
	if len(sender.phones) != 0 {
		t.Errorf("expected no SMS, got %v", sender.phones)
	}
}

func TestProcessMessageRejectsGarbage(t *testing.T) {
	handler := &bookingEventHandler{sender: &recordingSender{}}
	err := handler.processMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte("not json")})
	if err == nil {
		t.Fatal("expected unmarshal error")
	}
}
