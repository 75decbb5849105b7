package bootstrap

import (
	"context"
	"testing"

	"github.com/Domenick1991/gymbooking/config"
	"github.com/Domenick1991/gymbooking/internal/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventPublisher(t *testing.T) {
	cfg := &config.Config{
		Events: config.EventsConfig{Driver: "kafka"},
		Kafka:  config.KafkaConfig{Brokers: []string{"127.0.0.1:1"}, EventsTopic: "gym.events"},
	}
	pub, closeFn, err := NewEventPublisher(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &outbox.KafkaPublisher{}, pub)
	assert.NoError(t, closeFn())

	cfg.Events.Driver = "none"
	pub, closeFn, err = NewEventPublisher(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, pub)
	assert.NoError(t, closeFn())

	cfg.Events.Driver = "carrier-pigeon"
	_, _, err = NewEventPublisher(context.Background(), cfg)
	assert.Error(t, err)
}
