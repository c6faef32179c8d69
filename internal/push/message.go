// Package push turns inbound push payloads into local notifications.
package push

import (
	"encoding/json"
	"fmt"
)

// Payload types.
const (
	TypeOrder   = "order"
	TypeGeneral = "general"
)

// ExtraOrderID is the notification extra carrying the order deep link.
const ExtraOrderID = "orderId"

type Channel string

const (
	ChannelOrder     Channel = "order"
	ChannelPromotion Channel = "promotion"
	ChannelAccount   Channel = "account"
)

type Message struct {
	Type    string `json:"type"`
	OrderID string `json:"orderId"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

// Decode parses a push payload. A missing type means general.
func Decode(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, fmt.Errorf("decode push payload: %w", err)
	}
	if msg.Type == "" {
		msg.Type = TypeGeneral
	}
	return msg, nil
}

func Classify(messageType string) Channel {
	switch messageType {
	case TypeOrder:
		return ChannelOrder
	case TypeGeneral, "":
		return ChannelPromotion
	default:
		return ChannelAccount
	}
}
