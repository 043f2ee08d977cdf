package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Radpid/radGPT/pkg/common/logger"
	"github.com/Radpid/radGPT/pkg/common/models"
	"github.com/segmentio/kafka-go"
)

// Consumer reads audit events from one topic within a consumer group.
type Consumer struct {
	reader *kafka.Reader
}

// EventHandler processes one decoded event. Returning an error leaves the
// message uncommitted so it is redelivered.
type EventHandler func(ctx context.Context, event models.Event) error

func NewConsumer(brokers []string, topic string, groupID string) *Consumer {
	return &Consumer{reader: kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})}
}

// Consume fetches messages until the context is cancelled. Undecodable
// messages are committed and skipped; handler failures are retried via
// redelivery.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		message, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Log.WithError(err).Error("failed to fetch message")
			time.Sleep(time.Second)
			continue
		}

		var event models.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			logger.Log.WithError(err).Error("failed to unmarshal event, skipping")
			if err := c.reader.CommitMessages(ctx, message); err != nil {
				logger.Log.WithError(err).Error("failed to commit message")
			}
			continue
		}

		if err := handler(ctx, event); err != nil {
			logger.Log.WithError(err).WithField("event_id", event.ID).Error("failed to process event")
			continue
		}

		if err := c.reader.CommitMessages(ctx, message); err != nil {
			logger.Log.WithError(err).Error("failed to commit message")
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
