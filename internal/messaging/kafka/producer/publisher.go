package producer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"leavetrack/internal/messaging/kafka"
)

// publishEvent keys the message by actor so per-person audit order is
// preserved within a partition.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.ActorID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "action", Value: []byte(event.Action)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
