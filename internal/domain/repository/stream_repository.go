package repository

import (
	"context"

	"github.com/route-estimation-service/internal/domain"
)

// StreamRepository is the Redis Streams transport for asynchronous jobs.
type StreamRepository interface {
	// ConsumeStream reads messages from a stream into a channel.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup creates the consumer group if it does not exist.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream publishes a message to a stream.
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
