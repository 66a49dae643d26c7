package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Mongo  MongoConfig
	Kafka  KafkaConfig
	OTLP   OTLPConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ShutdownTimeout time.Duration
	// DurationMillis enables the extra millisecond request-duration histogram.
	DurationMillis bool
}

type StoreConfig struct {
	Driver string
}

type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether catalog events should be published to Kafka.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

type OTLPConfig struct {
	Endpoint      string
	ServiceName   string
	Environment   string
	ExportEnabled bool
	LogLevel      string
}

// LoadConfig loads configuration from environment variables.
// A .env file in the working directory is read first when present;
// variables already set in the environment win.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("SERVER_PORT", "8000"),
			ShutdownTimeout: getDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			DurationMillis:  getBool("METRICS_DURATION_MS", false),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMongo)),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "doggys"),
			Timeout:  getDuration("MONGODB_TIMEOUT", 10*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitCSV(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "catalog.products"),
		},
		OTLP: OTLPConfig{
			Endpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:   getEnv("OTEL_SERVICE_NAME", "doggys-api"),
			Environment:   getEnv("OTEL_ENVIRONMENT", "development"),
			ExportEnabled: getBool("OTEL_EXPORT_ENABLED", false),
			LogLevel:      getEnv("LOG_LEVEL", "debug"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getDuration accepts Go duration strings ("5s") or a plain number of seconds.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if sec, err := strconv.Atoi(v); err == nil {
		return time.Duration(sec) * time.Second
	}
	return defaultValue
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
