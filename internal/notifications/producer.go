package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"taxibe/internal/shared/config"

	"github.com/IBM/sarama"
)

// Producer publishes booking lifecycle events for the SMS workers.
type Producer interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent) error
	Close() error
	HealthCheck(ctx context.Context) error
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	config   *config.KafkaConfig
}

// NewProducer creates a Kafka producer for booking events.
func NewProducer(cfg *config.KafkaConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = cfg.ProducerRetryMax
	saramaConfig.Producer.Timeout = cfg.ProducerTimeout
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash by booking ID so events of one booking stay ordered.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka booking event producer created")
	return &kafkaProducer{producer: producer, config: cfg}, nil
}

func (kp *kafkaProducer) PublishBookingEvent(ctx context.Context, event BookingEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: kp.config.BookingTopic,
		Key:   sarama.StringEncoder(event.BookingID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("booking_ref"), Value: []byte(event.BookingRef)},
			{Key: []byte("producer"), Value: []byte("taxibe-bookings")},
			{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := kp.producer.SendMessage(message)
	if err != nil {
		kp.sendToDeadLetter(event, payload, err)
		return fmt.Errorf("failed to send booking event to Kafka: %w", err)
	}

	log.Printf("📤 Booking event published - Topic: %s, Partition: %d, Offset: %d, Type: %s, Ref: %s",
		kp.config.BookingTopic, partition, offset, event.Type, event.BookingRef)
	return nil
}

// sendToDeadLetter parks an undeliverable event on the DLQ topic so it
// can be replayed once the primary topic recovers. The original failure
// still propagates to the caller.
func (kp *kafkaProducer) sendToDeadLetter(event BookingEvent, payload []byte, cause error) {
	if kp.config.DeadLetterTopic == "" {
		return
	}

	message := &sarama.ProducerMessage{
		Topic: kp.config.DeadLetterTopic,
		Key:   sarama.StringEncoder(event.BookingID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("booking_ref"), Value: []byte(event.BookingRef)},
			{Key: []byte("producer"), Value: []byte("taxibe-bookings")},
			{Key: []byte("error"), Value: []byte(cause.Error())},
		},
		Timestamp: event.OccurredAt,
	}

	if _, _, err := kp.producer.SendMessage(message); err != nil {
		log.Printf("📤 Dead letter publish failed for %s: %v", event.BookingRef, err)
		return
	}
	log.Printf("📤 Booking event %s diverted to dead letter topic %s", event.BookingRef, kp.config.DeadLetterTopic)
}

func (kp *kafkaProducer) Close() error {
	if kp.producer != nil {
		if err := kp.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

func (kp *kafkaProducer) HealthCheck(ctx context.Context) error {
	if kp.producer == nil {
		return fmt.Errorf("producer is nil")
	}
	if kp.config.BookingTopic == "" {
		return fmt.Errorf("booking topic not configured")
	}
	return nil
}

// NoopProducer is used when Kafka notifications are disabled by config.
type NoopProducer struct{}

func (NoopProducer) PublishBookingEvent(ctx context.Context, event BookingEvent) error { return nil }
func (NoopProducer) Close() error                                                      { return nil }
func (NoopProducer) HealthCheck(ctx context.Context) error                             { return nil }
