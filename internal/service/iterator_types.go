package service

import (
	"context"

	"github.com/minio/minio-go/v7/pkg/notification"
	"github.com/segmentio/kafka-go"
)

// MessageIterator defines the contract for consuming messages from a Kafka
// topic. It lets the Iterator stay independent of the concrete consumer.
//
// Implementations are responsible for the lifecycle of the consumer
// connection.
type MessageIterator interface {
	// Messages returns a receive-only channel of Kafka messages. The channel
	// is closed by the implementation when the consumer is stopped or the
	// underlying source is exhausted.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges that a message has been successfully
	// processed. Implementations using auto-commit may make this a no-op.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// LoaderFunc loads and decodes an object of type T from an object store,
// given the bucket and key named in a notification event. Implementations
// should be read-only and honor the context for cancellation.
type LoaderFunc[T any] func(ctx context.Context, bucket, key string) (T, error)

// FetchedObject pairs an object loaded from the store with the notification
// event that triggered its retrieval.
type FetchedObject[T any] struct {
	// Data is the decoded object, loaded from the object store.
	Data T
	// Event is the original bucket notification that referenced the object.
	Event notification.Info
}
