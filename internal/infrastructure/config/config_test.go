package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_SHUTDOWN_TIMEOUT", "STORE_DRIVER",
		"MONGODB_URI", "MONGODB_DATABASE", "MONGODB_TIMEOUT", "KAFKA_BROKERS", "OTEL_EXPORT_ENABLED",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	if cfg.Server.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Server.Port)
	}
	if cfg.Store.Driver != StoreDriverMongo {
		t.Errorf("expected mongo driver, got %s", cfg.Store.Driver)
	}
	if cfg.Mongo.Database != "doggys" {
		t.Errorf("expected doggys database, got %s", cfg.Mongo.Database)
	}
	if cfg.Mongo.Timeout != 10*time.Second {
		t.Errorf("expected 10s mongo timeout, got %v", cfg.Mongo.Timeout)
	}
	if cfg.Kafka.Enabled() {
		t.Errorf("kafka must be disabled without brokers")
	}
	if cfg.OTLP.ExportEnabled {
		t.Errorf("otlp export must be disabled by default")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("MONGODB_TIMEOUT", "3")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "250ms")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("OTEL_EXPORT_ENABLED", "true")

	cfg := LoadConfig()
	if cfg.Mongo.URI != "mongodb://db:27017" {
		t.Errorf("unexpected uri %s", cfg.Mongo.URI)
	}
	if cfg.Store.Driver != StoreDriverMemory {
		t.Errorf("expected memory driver, got %s", cfg.Store.Driver)
	}
	if cfg.Mongo.Timeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.Mongo.Timeout)
	}
	if cfg.Server.ShutdownTimeout != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.Server.ShutdownTimeout)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("unexpected brokers %v", cfg.Kafka.Brokers)
	}
	if !cfg.OTLP.ExportEnabled {
		t.Errorf("expected export enabled")
	}
}
