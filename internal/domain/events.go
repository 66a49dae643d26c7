package domain

import "context"

// Product event types.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent describes a change to the catalog. Product is nil for deletions.
type ProductEvent struct {
	Type      string
	ProductID string
	Product   *Product
}

// EventPublisher delivers catalog change events. Implementations are best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, event ProductEvent) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ProductEvent) error { return nil }
