// Package kafka publishes catalog change events.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/lampara23/dise-o-web/internal/domain"
	"github.com/lampara23/dise-o-web/internal/infrastructure/telemetry"
	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrProducerClosed is returned by Publish after Close.
	ErrProducerClosed = errors.New("producer closed")
	// ErrInboxFull is returned when the event was dropped because the
	// writer has fallen behind.
	ErrInboxFull = errors.New("producer inbox full")
)

// messageWriter is the part of *kafkago.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Producer queues events in memory and writes them from one goroutine,
// so request handlers never wait on the brokers.
type Producer struct {
	w       messageWriter
	name    string
	logger  *slog.Logger
	inbox   chan kafkago.Message
	done    chan struct{}
	mu      sync.RWMutex
	closed  bool
	timeout time.Duration
}

// NewProducer creates a producer for topic. Start must be called before publishing.
func NewProducer(brokers []string, topic, name string, buf int, logger *slog.Logger) *Producer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return newProducer(w, name, buf, logger)
}

func newProducer(w messageWriter, name string, buf int, logger *slog.Logger) *Producer {
	return &Producer{
		w:       w,
		name:    name,
		logger:  logger,
		inbox:   make(chan kafkago.Message, buf),
		done:    make(chan struct{}),
		timeout: 5 * time.Second,
	}
}

// Start runs the write loop until Close drains the inbox.
func (p *Producer) Start() {
	go func() {
		defer close(p.done)
		for m := range p.inbox {
			p.write(m)
		}
		if err := p.w.Close(); err != nil {
			p.logger.Error("Failed to close kafka writer", telemetry.Err(err))
		}
	}()
}

func (p *Producer) write(m kafkago.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.w.WriteMessages(ctx, m); err != nil {
		p.logger.Error("Failed to publish catalog event",
			slog.String("key", string(m.Key)),
			telemetry.Err(err),
		)
	}
}

// Publish enqueues the event without waiting. When the inbox is full the
// event is dropped and ErrInboxFull returned.
func (p *Producer) Publish(ctx context.Context, event domain.ProductEvent) error {
	var traceID string
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		traceID = sc.TraceID().String()
	}

	env, err := newEnvelope(p.name, traceID, event, time.Now())
	if err != nil {
		return fmt.Errorf("building event envelope: %w", err)
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding event envelope: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.ProductID),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "x-event-type", Value: []byte(event.Type)},
			{Key: "x-event-version", Value: []byte(strconv.Itoa(envelopeVersion))},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrProducerClosed
	}
	select {
	case p.inbox <- msg:
		return nil
	default:
		p.logger.WarnContext(ctx, "Dropping catalog event, inbox full",
			slog.String("event_type", event.Type),
			slog.String("product_id", event.ProductID),
		)
		return ErrInboxFull
	}
}

// Close stops accepting events, flushes the inbox and waits for the writer.
func (p *Producer) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
	p.mu.Unlock()
	<-p.done
}
