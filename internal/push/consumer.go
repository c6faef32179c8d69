package push

import (
	"context"
	"errors"
	"io"
	"time"

	"foodhub/internal/logging"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const defaultBackoff = time.Second

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Consumer feeds push payloads from a Kafka topic into a Router.
type Consumer struct {
	Reader MessageReader
	Router *Router
	// Recipient is the message key addressed to this device's user. Messages
	// keyed for anyone else are dropped.
	Recipient string
	// Backoff is the pause after a failed read.
	Backoff time.Duration
	// OnRouted, if set, sees every posted notification.
	OnRouted func(LocalNotification)
	log      *logrus.Entry
}

func NewConsumer(reader MessageReader, router *Router, recipient string) *Consumer {
	return &Consumer{
		Reader:    reader,
		Router:    router,
		Recipient: recipient,
		Backoff:   defaultBackoff,
		log:       logging.New("push-consumer"),
	}
}

// Start reads until ctx is done or the reader is closed.
func (c *Consumer) Start(ctx context.Context) {
	c.log.WithField("recipient", c.Recipient).Info("starting push consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.log.Info("push consumer stopped")
				return
			}
			c.log.WithError(err).Error("reading push message")
			select {
			case <-ctx.Done():
				c.log.Info("push consumer stopped")
				return
			case <-time.After(c.Backoff):
			}
			continue
		}
		if string(message.Key) != c.Recipient {
			c.log.WithField("key", string(message.Key)).Debug("skipping push message for another user")
			continue
		}
		c.Process(ctx, message.Value)
	}
}

// Process routes one payload. Undecodable payloads are logged and skipped.
func (c *Consumer) Process(ctx context.Context, payload []byte) {
	msg, err := Decode(payload)
	if err != nil {
		c.log.WithError(err).Warn("skipping push payload")
		return
	}
	n, err := c.Router.Route(ctx, msg)
	if err != nil {
		c.log.WithError(err).Error("routing push message")
		return
	}
	if c.OnRouted != nil {
		c.OnRouted(n)
	}
}
