package ports

import (
	"context"

	"github.com/courseworks/peer-review-service/internal/contracts"
)

type EventPublisher interface {
	Publish(ctx context.Context, envelope contracts.EventEnvelope) error
}
