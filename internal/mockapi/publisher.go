package mockapi

import (
	"context"
	"encoding/json"
	"fmt"

	"foodhub/internal/push"

	"github.com/segmentio/kafka-go"
)

// Publisher delivers push payloads to devices.
type Publisher interface {
	Publish(ctx context.Context, userID string, msg push.Message) error
}

// KafkaPublisher writes push payloads to the topic the client consumes,
// keyed by user so one user's messages stay ordered.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, userID string, msg push.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode push message: %w", err)
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(userID),
		Value: payload,
	})
}
