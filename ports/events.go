package ports

import (
	"context"

	"github.com/qlap/traingate/core"
)

// EventPublisher emits auditable auth lifecycle events to other instances
type EventPublisher interface {
	PublishAuthEvent(ctx context.Context, action core.AuthAction, subject, tokenID string) error
}
