package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/gymbooking/config"
	"github.com/Domenick1991/gymbooking/internal/kafka"
	"github.com/Domenick1991/gymbooking/internal/mq"
	"github.com/Domenick1991/gymbooking/internal/outbox"
)

// NewEventPublisher builds the outbox publisher for cfg.Events.Driver. It
// returns a nil publisher for the "none" driver. An unreachable kafka
// cluster is logged; the relay retries on its own schedule.
func NewEventPublisher(ctx context.Context, cfg *config.Config) (outbox.Publisher, func() error, error) {
	switch cfg.Events.Driver {
	case "kafka":
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := producer.CheckConnection(checkCtx); err != nil {
			log.Printf("kafka unavailable at %v, continuing: %v", cfg.Kafka.Brokers, err)
		}
		return outbox.NewKafkaPublisher(producer, cfg.Kafka.EventsTopic), producer.Close, nil
	case "rabbitmq":
		publisher, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return nil, nil, err
		}
		return outbox.NewRabbitPublisher(publisher), publisher.Close, nil
	case "none":
		return nil, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown events driver %q", cfg.Events.Driver)
	}
}
