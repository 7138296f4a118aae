package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"taxibe/internal/shared/config"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
)

func testKafkaConfig() *config.KafkaConfig {
	return &config.KafkaConfig{
		BookingTopic:    "booking-confirmations",
		DeadLetterTopic: "booking-confirmations-dlq",
	}
}

func TestPublishBookingEvent(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event BookingEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.BookingRef != "TB-7K2M9QX4" {
			return fmt.Errorf("booking_ref = %q", event.BookingRef)
		}
		return nil
	})

	kp := &kafkaProducer{producer: mock, config: testKafkaConfig()}
	if err := kp.PublishBookingEvent(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("PublishBookingEvent failed: %v", err)
	}

	if err := mock.Close(); err != nil {
		t.Fatalf("unmet producer expectations: %v", err)
	}
}

func TestPublishBookingEventDivertsToDeadLetter(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	// Second send is the dead letter copy.
	mock.ExpectSendMessageAndSucceed()

	kp := &kafkaProducer{producer: mock, config: testKafkaConfig()}
	err := kp.PublishBookingEvent(context.Background(), sampleEvent())
	if err == nil {
		t.Fatal("the primary publish failure must surface to the caller")
	}

	if err := mock.Close(); err != nil {
		t.Fatalf("unmet producer expectations: %v", err)
	}
}

func TestPublishBookingEventWithoutDeadLetterTopic(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	cfg := testKafkaConfig()
	cfg.DeadLetterTopic = ""
	kp := &kafkaProducer{producer: mock, config: cfg}

	if err := kp.PublishBookingEvent(context.Background(), sampleEvent()); err == nil {
		t.Fatal("expected the publish failure")
	}

	// No DLQ configured means no second send; leftover or extra sends
	// would fail the expectation check.
	if err := mock.Close(); err != nil {
		t.Fatalf("unmet producer expectations: %v", err)
	}
}
