package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lampara23/dise-o-web/internal/app/dto"
	"github.com/lampara23/dise-o-web/internal/domain"
	"github.com/lampara23/dise-o-web/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService handles product use cases
type ProductService struct {
	repo                  domain.ProductRepository
	events                domain.EventPublisher
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	productOperations     metric.Int64Counter
}

// NewProductService creates a new product service. A nil publisher disables events.
func NewProductService(
	repo domain.ProductRepository,
	events domain.EventPublisher,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	if events == nil {
		events = domain.NopPublisher{}
	}

	return &ProductService{
		repo:                  repo,
		events:                events,
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		productOperations:     productOperations,
	}
}

func (s *ProductService) recordOperation(ctx context.Context, operation, result string) {
	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrProductNotFound):
		return "not_found"
	default:
		return "failure"
	}
}

// publish is best-effort: a failed publish is logged and never fails the operation.
func (s *ProductService) publish(ctx context.Context, event domain.ProductEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish catalog event",
			slog.String("event_type", event.Type),
			slog.String("product_id", event.ProductID),
			telemetry.Err(err),
		)
	}
}

// ListProducts retrieves products matching the filter
func (s *ProductService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()

	span.SetAttributes(
		attribute.String("filter.category", filter.Category),
		attribute.String("filter.search", filter.Search),
	)

	s.logger.InfoContext(ctx, "Listing products",
		slog.String("category", filter.Category),
		slog.String("search", filter.Search),
	)

	products, err := s.repo.FindAll(ctx, filter)
	s.recordOperation(ctx, "list", resultOf(err))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to retrieve products")
		s.logger.ErrorContext(ctx, "Failed to list products", telemetry.Err(err))
		return nil, fmt.Errorf("error fetching products: %w", err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToProductResponseList(products), nil
}

// CreateProduct inserts an unvalidated field-set and returns the stored product
func (s *ProductService) CreateProduct(ctx context.Context, fields domain.Fields) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	s.logger.InfoContext(ctx, "Creating product", slog.Int("field_count", len(fields)))

	product, err := s.repo.Create(ctx, fields)
	s.recordOperation(ctx, "create", resultOf(err))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store product")
		s.logger.ErrorContext(ctx, "Failed to store product", telemetry.Err(err))
		return nil, fmt.Errorf("error creating product: %w", err)
	}

	s.productCreatedCounter.Add(ctx, 1)
	span.SetAttributes(attribute.String("product.id", product.ID))

	s.logger.InfoContext(ctx, "Product created successfully",
		slog.String("product_id", product.ID),
	)
	s.publish(ctx, domain.ProductEvent{Type: domain.EventProductCreated, ProductID: product.ID, Product: product})

	span.SetStatus(codes.Ok, "Product created successfully")
	return dto.ToProductResponse(product), nil
}

// UpdateProduct merges fields into the product with the given id
func (s *ProductService) UpdateProduct(ctx context.Context, id string, fields domain.Fields) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.UpdateProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	s.logger.InfoContext(ctx, "Updating product",
		slog.String("product_id", id),
		slog.Int("field_count", len(fields)),
	)

	product, err := s.repo.Update(ctx, id, fields)
	s.recordOperation(ctx, "update", resultOf(err))
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrProductNotFound) {
			span.SetStatus(codes.Error, "Product not found")
			s.logger.WarnContext(ctx, "Product not found", slog.String("product_id", id))
			return nil, err
		}
		span.SetStatus(codes.Error, "Failed to update product")
		s.logger.ErrorContext(ctx, "Failed to update product", telemetry.Err(err))
		return nil, fmt.Errorf("error updating product: %w", err)
	}

	s.publish(ctx, domain.ProductEvent{Type: domain.EventProductUpdated, ProductID: product.ID, Product: product})

	span.SetStatus(codes.Ok, "Product updated successfully")
	return dto.ToProductResponse(product), nil
}

// DeleteProduct removes the product with the given id
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	err := s.repo.Delete(ctx, id)
	s.recordOperation(ctx, "delete", resultOf(err))
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrProductNotFound) {
			span.SetStatus(codes.Error, "Product not found")
			s.logger.WarnContext(ctx, "Product not found", slog.String("product_id", id))
			return err
		}
		span.SetStatus(codes.Error, "Failed to delete product")
		s.logger.ErrorContext(ctx, "Failed to delete product", telemetry.Err(err))
		return fmt.Errorf("error deleting product: %w", err)
	}

	s.logger.InfoContext(ctx, "Product deleted", slog.String("product_id", id))
	s.publish(ctx, domain.ProductEvent{Type: domain.EventProductDeleted, ProductID: id})

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}

// SeedProducts writes the initial catalog when, and only when, the store is empty.
// It returns how many products were inserted.
func (s *ProductService) SeedProducts(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.SeedProducts")
	defer span.End()

	count, err := s.repo.Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to count products")
		return 0, fmt.Errorf("counting products before seeding: %w", err)
	}

	s.logger.InfoContext(ctx, "Products in store", slog.Int64("count", count))
	if count > 0 {
		span.SetStatus(codes.Ok, "Store already seeded")
		return 0, nil
	}

	initial := domain.InitialProducts()
	if err := s.repo.InsertMany(ctx, initial); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to seed products")
		return 0, fmt.Errorf("seeding products: %w", err)
	}

	s.logger.InfoContext(ctx, "Initial products inserted", slog.Int("count", len(initial)))
	span.SetAttributes(attribute.Int("product.count", len(initial)))
	span.SetStatus(codes.Ok, "Store seeded")
	return len(initial), nil
}
