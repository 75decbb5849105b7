package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Environment overrides are GYM_<SECTION>_<FIELD>, e.g. GYM_HTTP_ADDRESS or
// GYM_AUTH_JWT_SECRET.
const envPrefix = "GYM"

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Events   EventsConfig   `yaml:"events"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Auth     AuthConfig     `yaml:"auth"`
	Booking  BookingConfig  `yaml:"booking"`
	Worker   WorkerConfig   `yaml:"worker"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	SSLMode      string `yaml:"ssl_mode" split_words:"true"`
	ReportingDSN string `yaml:"reporting_dsn" split_words:"true"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type StorageConfig struct {
	// Driver is "postgres" or "memory".
	Driver string `yaml:"driver"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type EventsConfig struct {
	// Driver is "kafka", "rabbitmq" or "none".
	Driver string `yaml:"driver"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	EventsTopic        string   `yaml:"events_topic" split_words:"true"`
	NotificationsTopic string   `yaml:"notifications_topic" split_words:"true"`
	GroupID            string   `yaml:"group_id" split_words:"true"`
}

type RabbitMQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
	Queue    string `yaml:"queue"`
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret" split_words:"true"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes" split_words:"true"`
}

type BookingConfig struct {
	SessionsCacheTTL int `yaml:"sessions_cache_ttl_seconds" split_words:"true"`
	LockTTL          int `yaml:"lock_ttl_seconds" split_words:"true"`
}

func (b BookingConfig) SessionsCacheTTLDuration() time.Duration {
	return time.Duration(b.SessionsCacheTTL) * time.Second
}

func (b BookingConfig) LockTTLDuration() time.Duration {
	return time.Duration(b.LockTTL) * time.Second
}

type WorkerConfig struct {
	RelayIntervalSeconds int `yaml:"relay_interval_seconds" split_words:"true"`
	RelayBatchSize       int `yaml:"relay_batch_size" split_words:"true"`
}

type TracingConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name" split_words:"true"`
}

// LoadConfig reads the YAML file at path and applies GYM_* environment
// overrides on top. A .env file in the working directory is loaded first.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		HTTP:    HTTPConfig{Address: ":8080"},
		GRPC:    GRPCConfig{Address: ":9090"},
		Storage: StorageConfig{Driver: "postgres"},
		Events:  EventsConfig{Driver: "kafka"},
		Auth:    AuthConfig{TokenTTLMinutes: 60},
		Booking: BookingConfig{SessionsCacheTTL: 30, LockTTL: 5},
		Worker:  WorkerConfig{RelayIntervalSeconds: 5, RelayBatchSize: 100},
		Tracing: TracingConfig{ServiceName: "gymbooking"},
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Events.Driver {
	case "kafka", "rabbitmq", "none":
	default:
		return fmt.Errorf("unknown events driver %q", c.Events.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	return nil
}
