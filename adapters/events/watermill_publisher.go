package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/qlap/traingate/core"
	"github.com/qlap/traingate/ports"
)

// AuthEvent is the audit record published for every successful token
// issue, refresh and revocation.
type AuthEvent struct {
	Action    string    `json:"action"`
	Subject   string    `json:"subject"`
	TokenID   string    `json:"token_id"`
	Timestamp time.Time `json:"timestamp"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     "traingate.auth",
	}
}

// PublishAuthEvent publishes an auth lifecycle event
func (p *WatermillPublisher) PublishAuthEvent(ctx context.Context, action core.AuthAction, subject, tokenID string) error {
	event := AuthEvent{
		Action:    string(action),
		Subject:   subject,
		TokenID:   tokenID,
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(tokenID, payload)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
