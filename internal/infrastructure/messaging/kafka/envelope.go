package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lampara23/dise-o-web/internal/app/dto"
	"github.com/lampara23/dise-o-web/internal/domain"
)

const envelopeVersion = 1

// Envelope is the wire format of every catalog event.
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	TraceID      string          `json:"trace_id,omitempty"`
	ProductID    string          `json:"product_id"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

func newEnvelope(producer, traceID string, event domain.ProductEvent, now time.Time) (Envelope, error) {
	env := Envelope{
		EventID:      uuid.NewString(),
		EventType:    event.Type,
		EventVersion: envelopeVersion,
		OccurredAt:   now.UTC(),
		Producer:     producer,
		TraceID:      traceID,
		ProductID:    event.ProductID,
	}
	if event.Product != nil {
		payload, err := json.Marshal(dto.ToProductResponse(event.Product))
		if err != nil {
			return Envelope{}, err
		}
		env.Payload = payload
	}
	return env, nil
}
