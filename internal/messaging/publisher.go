package messaging

import (
	"context"

	"github.com/rinkstats/stats-analyzer/internal/domain"
)

// Publisher defines the interface for publishing stats notifications to a
// message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishStatsEvent publishes a processed-snapshot notification
	PublishStatsEvent(ctx context.Context, event *domain.StatsEvent) error
	// Close closes the connection
	Close()
}
