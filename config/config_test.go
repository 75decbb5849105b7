package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8081"
database:
  host: db
  port: 5432
  user: gym
  password: secret
  name: gym
  ssl_mode: disable
kafka:
  brokers: ["k1:9092", "k2:9092"]
  events_topic: ledger.events
auth:
  jwt_secret: s3cr3t
booking:
  sessions_cache_ttl_seconds: 10
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.HTTP.Address)
	assert.Equal(t, ":9090", cfg.GRPC.Address)
	assert.Equal(t, "host=db port=5432 user=gym password=secret dbname=gym sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, 10*time.Second, cfg.Booking.SessionsCacheTTLDuration())
	assert.Equal(t, 5*time.Second, cfg.Booking.LockTTLDuration())
	assert.Equal(t, 100, cfg.Worker.RelayBatchSize)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8081"
auth:
  jwt_secret: from-file
`)
	t.Setenv("GYM_HTTP_ADDRESS", ":9999")
	t.Setenv("GYM_STORAGE_DRIVER", "memory")
	t.Setenv("GYM_KAFKA_BROKERS", "a:1,b:2")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTP.Address)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.Kafka.Brokers)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "http: ["))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "storage:\n  driver: mongo\nauth:\n  jwt_secret: x\n"))
	assert.ErrorContains(t, err, "storage driver")

	_, err = LoadConfig(writeConfig(t, "http:\n  address: \":1\"\n"))
	assert.ErrorContains(t, err, "jwt_secret")
}
