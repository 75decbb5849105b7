package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}

// ConsumeEvents decodes each message as a LedgerEvent. Undecodable
// messages are logged and skipped.
func (c *Consumer) ConsumeEvents(ctx context.Context, handler func(context.Context, LedgerEvent) error) error {
	return c.Consume(ctx, func(ctx context.Context, msg kafka.Message) error {
		event, ok := DecodeEvent(msg.Value)
		if !ok {
			return nil
		}
		return handler(ctx, event)
	})
}

func DecodeEvent(data []byte) (LedgerEvent, bool) {
	var event LedgerEvent
	if err := json.Unmarshal(data, &event); err != nil {
		log.Printf("decode event error: %v", err)
		return LedgerEvent{}, false
	}
	return event, true
}
