package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"taxibe/internal/shared/config"

	"github.com/IBM/sarama"
)

// SMSSender delivers a text message to a Malagasy mobile number. The
// production implementation talks to the operator gateways; tests use a
// recording fake.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// Consumer drains booking events and turns them into passenger SMS.
type Consumer interface {
	Start(ctx context.Context) error
	Stop() error
}

type kafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *config.KafkaConfig
	sender        SMSSender
	cancel        context.CancelFunc
}

func NewConsumer(cfg *config.KafkaConfig, sender SMSSender) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaConsumer{
		consumerGroup: consumerGroup,
		config:        cfg,
		sender:        sender,
	}, nil
}

func (kc *kafkaConsumer) Start(ctx context.Context) error {
	ctx, kc.cancel = context.WithCancel(ctx)
	topics := []string{kc.config.BookingTopic}

	go kc.handleErrors()
	go func() {
		handler := &bookingEventHandler{sender: kc.sender}
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := kc.consumerGroup.Consume(ctx, topics, handler); err != nil {
					log.Printf("📥 Error consuming booking events: %v", err)
					time.Sleep(time.Second)
				}
			}
		}
	}()

	log.Printf("📥 Booking event consumer started for topic %s", kc.config.BookingTopic)
	return nil
}

func (kc *kafkaConsumer) handleErrors() {
	for err := range kc.consumerGroup.Errors() {
		log.Printf("📥 Consumer group error: %v", err)
	}
}

func (kc *kafkaConsumer) Stop() error {
	if kc.cancel != nil {
		kc.cancel()
	}
	if err := kc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type bookingEventHandler struct {
	sender SMSSender
}

func (h *bookingEventHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *bookingEventHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *bookingEventHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				log.Printf("📥 Error processing booking event: %v", err)
			} else {
				session.MarkMessage(message, "")
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *bookingEventHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event BookingEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal booking event: %w", err)
	}

	if event.UserPhone == "" {
		log.Printf("📥 Booking event %s has no phone number, skipping SMS", event.BookingRef)
		return nil
	}

	return h.sender.Send(ctx, event.UserPhone, FormatSMS(event))
}

// FormatSMS renders the passenger-facing confirmation text.
func FormatSMS(event BookingEvent) string {
	seats := make([]string, len(event.Seats))
	for i, seat := range event.Seats {
		seats[i] = fmt.Sprintf("%d", seat)
	}

	switch event.Type {
	case EventBookingCancelled:
		return fmt.Sprintf("TaxiBe: booking %s cancelled. %s -> %s on %s.",
			event.BookingRef, event.FromCity, event.ToCity,
			event.DepartureAt.Format("02 Jan 15:04"))
	default:
		return fmt.Sprintf("TaxiBe: booking %s confirmed. %s -> %s on %s, seats %s, total %.0f Ar.",
			event.BookingRef, event.FromCity, event.ToCity,
			event.DepartureAt.Format("02 Jan 15:04"),
			strings.Join(seats, ","), event.TotalPrice)
	}
}

// LogSMSSender writes the SMS to the application log. Used until the
// operator gateway integration lands.
type LogSMSSender struct{}

func (LogSMSSender) Send(ctx context.Context, phone, message string) error {
	log.Printf("📧 SMS to %s: %s", phone, message)
	return nil
}
