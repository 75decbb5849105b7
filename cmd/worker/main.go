package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/gymbooking/config"
	"github.com/Domenick1991/gymbooking/internal/bootstrap"
	"github.com/Domenick1991/gymbooking/internal/clock"
	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/Domenick1991/gymbooking/internal/email"
	"github.com/Domenick1991/gymbooking/internal/kafka"
	"github.com/Domenick1991/gymbooking/internal/metrics"
	"github.com/Domenick1991/gymbooking/internal/mq"
	"github.com/Domenick1991/gymbooking/internal/outbox"
	"github.com/Domenick1991/gymbooking/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Driver != "postgres" {
		log.Fatalf("worker needs storage.driver=postgres, got %q", cfg.Storage.Driver)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics.Register()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	publisher, closePublisher, err := bootstrap.NewEventPublisher(ctx, cfg)
	if err != nil {
		log.Fatalf("event publisher: %v", err)
	}
	defer closePublisher()

	if publisher != nil {
		relay := outbox.NewRelay(repository.NewLedgerStore(pool), publisher, clock.NewSystem(), cfg.Worker.RelayBatchSize)
		go relay.Run(ctx, time.Duration(cfg.Worker.RelayIntervalSeconds)*time.Second)
	}

	emailSender := email.NewSender()

	switch cfg.Events.Driver {
	case "kafka":
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
		defer consumer.Close()

		go func() {
			if err := consumer.ConsumeEvents(ctx, emailSender.Notify); err != nil && ctx.Err() == nil {
				log.Printf("consumer stopped: %v", err)
			}
		}()
	case "rabbitmq":
		keys := []string{string(domain.EventBookingCreated), string(domain.EventBookingCancelled)}
		consumer, err := mq.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue, keys)
		if err != nil {
			log.Fatalf("rabbitmq consumer: %v", err)
		}
		defer consumer.Close()

		go func() {
			err := consumer.Run(ctx, func(ctx context.Context, _ string, body []byte) error {
				event, ok := kafka.DecodeEvent(body)
				if !ok {
					return nil
				}
				return emailSender.Notify(ctx, event)
			})
			if err != nil {
				log.Printf("consumer stopped: %v", err)
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	s := <-sig
	log.Printf("received signal %v, shutting down", s)
}
