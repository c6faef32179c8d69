package config

import (
	"context"
	"os"
	"path/filepath"

	"foodhub/internal/logging"
	"foodhub/internal/session"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// Session backends.
const (
	SessionFile  = "file"
	SessionRedis = "redis"
)

type Config struct {
	APIURL         string
	SessionBackend string
	SessionDir     string
	RedisHost      string
	RedisPort      string
	KafkaBroker    string
	PushTopic      string
	PushGroup      string
	MockAPIAddr    string
	LogLevel       string
	LogFormat      string
}

// Load reads an optional .env file, then the environment. Missing values
// fall back to local development defaults.
func Load() Config {
	envErr := godotenv.Load()

	cfg := Config{
		APIURL:         getEnv("FOODHUB_API_URL", "http://localhost:8080"),
		SessionBackend: getEnv("FOODHUB_SESSION_BACKEND", SessionFile),
		SessionDir:     getEnv("FOODHUB_SESSION_DIR", session.DefaultDir()),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		KafkaBroker:    getEnv("KAFKA_BROKER", ""),
		PushTopic:      getEnv("FOODHUB_PUSH_TOPIC", "foodhub-push"),
		PushGroup:      getEnv("FOODHUB_PUSH_GROUP", "foodhub-client"),
		MockAPIAddr:    getEnv("MOCKAPI_ADDR", ":8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}
	logging.Configure(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil && !os.IsNotExist(envErr) {
		logging.New("config").WithError(envErr).Warn("ignoring unreadable .env file")
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SessionStore builds the token store selected by SessionBackend.
func (c Config) SessionStore() session.Store {
	if c.SessionBackend == SessionRedis {
		return &session.RedisStore{Client: c.MustInitRedis()}
	}
	return session.NewFileStore(filepath.Clean(c.SessionDir))
}

func (c Config) MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: c.RedisHost + ":" + c.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logging.New("config").WithError(err).Fatal("Failed to connect to Redis")
	}

	return client
}

// PushGroupFor is the consumer group of one device. Every device reads the
// whole topic and keeps only its user's messages.
func (c Config) PushGroupFor(deviceID string) string {
	return c.PushGroup + "-" + deviceID
}

func (c Config) NewKafkaReader(groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{c.KafkaBroker},
		Topic:       c.PushTopic,
		GroupID:     groupID,
		StartOffset: kafka.LastOffset,
	})
}

func (c Config) NewKafkaWriter() *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(c.KafkaBroker),
		Topic:    c.PushTopic,
		Balancer: &kafka.Hash{},
	}
}
