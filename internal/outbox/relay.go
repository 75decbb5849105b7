// Package outbox moves ledger events written inside booking transactions
// onto the event bus.
package outbox

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/gymbooking/internal/clock"
	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/Domenick1991/gymbooking/internal/kafka"
	"github.com/Domenick1991/gymbooking/internal/metrics"
)

type Store interface {
	PendingEvents(ctx context.Context, limit int) ([]domain.Event, error)
	MarkEventsPublished(ctx context.Context, ids []string, at time.Time) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, event kafka.LedgerEvent) error
}

type Relay struct {
	store     Store
	publisher Publisher
	clock     clock.Clock
	batchSize int
}

func NewRelay(store Store, publisher Publisher, clk clock.Clock, batchSize int) *Relay {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Relay{store: store, publisher: publisher, clock: clk, batchSize: batchSize}
}

// RunOnce publishes one batch of pending events, oldest first, and returns
// how many were marked published. Publishing stops at the first failure;
// the events published before it are still marked.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	events, err := r.store.PendingEvents(ctx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("load pending events: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	published := make([]string, 0, len(events))
	var publishErr error
	for _, e := range events {
		if err := r.publisher.PublishEvent(ctx, kafka.NewLedgerEvent(e)); err != nil {
			publishErr = fmt.Errorf("publish event %s: %w", e.ID, err)
			break
		}
		metrics.IncEventPublished(string(e.Type))
		published = append(published, e.ID)
	}

	if len(published) > 0 {
		if err := r.store.MarkEventsPublished(ctx, published, r.clock.Now()); err != nil {
			return 0, fmt.Errorf("mark events published: %w", err)
		}
	}
	return len(published), publishErr
}

// Run calls RunOnce every interval until ctx is done.
func (r *Relay) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.RunOnce(ctx)
			if err != nil {
				log.Printf("outbox relay error: %v", err)
			}
			if n > 0 {
				log.Printf("relayed %d events", n)
			}
		}
	}
}

type TopicProducer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ExchangePublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// KafkaPublisher sends events to one topic keyed by session id.
type KafkaPublisher struct {
	producer TopicProducer
	topic    string
}

func NewKafkaPublisher(producer TopicProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishEvent(ctx context.Context, event kafka.LedgerEvent) error {
	return p.producer.Publish(ctx, p.topic, event.SessionID, event)
}

// RabbitPublisher sends events to an exchange routed by event type.
type RabbitPublisher struct {
	publisher ExchangePublisher
}

func NewRabbitPublisher(publisher ExchangePublisher) *RabbitPublisher {
	return &RabbitPublisher{publisher: publisher}
}

func (p *RabbitPublisher) PublishEvent(ctx context.Context, event kafka.LedgerEvent) error {
	return p.publisher.PublishJSON(ctx, event.Type, event)
}
