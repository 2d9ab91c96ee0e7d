package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
)

const maxConfirmAttempts = 3

// PaymentConfirmation is the message the payment provider bridge emits once a payment id settles.
type PaymentConfirmation struct {
	PaymentID string `json:"payment_id"`
}

type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, paymentID string) (*domain.Reservation, error)
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PaymentConsumer applies payment confirmations from Kafka. Messages that keep failing are forwarded to
// the dead letter topic and committed so the partition keeps moving.
type PaymentConsumer struct {
	reader     messageReader
	dlq        messageWriter
	payments   PaymentConfirmer
	retryDelay time.Duration
}

func NewPaymentConsumer(brokers []string, topic, groupID string, payments PaymentConfirmer) *PaymentConsumer {
	return &PaymentConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 10e3,
			MaxBytes: 10e6,
		}),
		dlq: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  DeadLetterTopic(topic),
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
		payments:   payments,
		retryDelay: 2 * time.Second,
	}
}

func DeadLetterTopic(topic string) string {
	return topic + ".dlq"
}

// Start consumes until ctx is cancelled.
func (c *PaymentConsumer) Start(ctx context.Context) {
	log.Println("Payment confirmation consumer started.")

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Payment confirmation consumer stopped.")
				return
			}
			log.Printf("Error reading payment confirmation: %v", err)
			continue
		}

		c.handle(ctx, m)

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			log.Printf("Error committing offset %d: %v", m.Offset, err)
		}
	}
}

func (c *PaymentConsumer) Close() error {
	return errors.Join(c.reader.Close(), c.dlq.Close())
}

func (c *PaymentConsumer) handle(ctx context.Context, m kafka.Message) {
	var msg PaymentConfirmation
	if err := json.Unmarshal(m.Value, &msg); err != nil || msg.PaymentID == "" {
		c.deadLetter(ctx, m, fmt.Sprintf("undecodable confirmation: %v", err))
		return
	}

	var lastErr error
	for attempt := 1; attempt <= maxConfirmAttempts; attempt++ {
		reservation, err := c.payments.ConfirmPayment(ctx, msg.PaymentID)
		if err == nil {
			log.Printf("Payment %s confirmed for reservation %s.", msg.PaymentID, reservation.ID)
			return
		}

		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			// The id is unknown or no longer payable; retrying cannot change that.
			log.Printf("Payment %s not applied: %v", msg.PaymentID, err)
			return
		}

		lastErr = err
		log.Printf("Confirming payment %s failed (attempt %d/%d): %v", msg.PaymentID, attempt, maxConfirmAttempts, err)

		if attempt < maxConfirmAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.retryDelay):
			}
		}
	}

	c.deadLetter(ctx, m, lastErr.Error())
}

func (c *PaymentConsumer) deadLetter(ctx context.Context, m kafka.Message, reason string) {
	log.Printf("Moving payment confirmation at offset %d to DLQ: %s", m.Offset, reason)

	err := c.dlq.WriteMessages(ctx, kafka.Message{
		Key:   m.Key,
		Value: m.Value,
		Headers: []kafka.Header{
			{Key: "error_reason", Value: []byte(reason)},
		},
	})
	if err != nil {
		log.Printf("Failed to write to DLQ: %v", err)
	}
}
