// Package utils holds the watermill message helpers shared by every module's
// handlers: payload unmarshalling and result message construction with
// correlation ID propagation.
package utils

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// Helpers is the message helper contract handlers depend on.
type Helpers interface {
	UnmarshalPayload(msg *message.Message, out any) error
	CreateResultMessage(triggering *message.Message, payload any, topic string) (*message.Message, error)
	CreateNewMessage(payload any, topic string) (*message.Message, error)
}

// MessageHelpers is the JSON implementation of Helpers.
type MessageHelpers struct{}

func NewMessageHelpers() *MessageHelpers {
	return &MessageHelpers{}
}

// UnmarshalPayload decodes a JSON message payload into out.
func (h *MessageHelpers) UnmarshalPayload(msg *message.Message, out any) error {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		return fmt.Errorf("failed to unmarshal message %s: %w", msg.UUID, err)
	}
	return nil
}

// CreateResultMessage builds a new message carrying payload, inheriting the
// correlation ID of the triggering message. The topic is stored in metadata so
// routers can publish without re-deriving it.
func (h *MessageHelpers) CreateResultMessage(triggering *message.Message, payload any, topic string) (*message.Message, error) {
	msg, err := h.CreateNewMessage(payload, topic)
	if err != nil {
		return nil, err
	}
	if triggering != nil {
		// SetCorrelationID refuses to overwrite, and CreateNewMessage already
		// assigned a fresh ID, so the inherited ID is written directly.
		if correlationID := middleware.MessageCorrelationID(triggering); correlationID != "" {
			msg.Metadata.Set(middleware.CorrelationIDMetadataKey, correlationID)
		}
		msg.SetContext(triggering.Context())
	}
	return msg, nil
}

// CreateNewMessage builds a fresh message with a new UUID and correlation ID.
func (h *MessageHelpers) CreateNewMessage(payload any, topic string) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for topic %s: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("topic", topic)
	middleware.SetCorrelationID(watermill.NewUUID(), msg)
	return msg, nil
}

// TopicFromMessage reads back the topic stored by CreateResultMessage.
func TopicFromMessage(msg *message.Message) string {
	return msg.Metadata.Get("topic")
}
