package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TypeUserRegistered = "user_registered"
	TypeCourseCreated  = "course_created"
	TypeCourseUpdated  = "course_updated"
	TypeCourseDeleted  = "course_deleted"
	TypeUserEnrolled   = "user_enrolled"
)

type envelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	At   int64  `json:"at"`
	Data any    `json:"data"`
}

// Producer publishes activity events. A nil Producer is a no-op so the core
// flows run without a broker.
type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, eventType, key string, data any) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(envelope{
		ID:   uuid.NewString(),
		Type: eventType,
		At:   time.Now().Unix(),
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("events: marshal %s: %w", eventType, err)
	}

	if err := p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: body,
	}); err != nil {
		return fmt.Errorf("events: publish %s: %w", eventType, err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.w.Close()
}
