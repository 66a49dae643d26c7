package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/lampara23/dise-o-web/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductRepository is an in-memory implementation of domain.ProductRepository.
// Listing follows insertion order.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	order    []string
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*domain.Product),
		tracer:   tracer,
		logger:   logger,
	}
}

// FindAll retrieves every product that passes the filter
func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()

	span.SetAttributes(
		attribute.String("filter.category", filter.Category),
		attribute.String("filter.search", filter.Search),
	)

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		p := r.products[id]
		if filter.Matches(p) {
			products = append(products, p.Clone())
		}
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.logger.DebugContext(ctx, "Products retrieved from repository",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	_, span := r.tracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		span.SetStatus(codes.Error, "Product not found")
		return nil, domain.ErrProductNotFound
	}

	span.SetStatus(codes.Ok, "Product found")
	return product.Clone(), nil
}

// Create stores a new product built from fields
func (r *ProductRepository) Create(ctx context.Context, fields domain.Fields) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Create")
	defer span.End()

	product := domain.NewProduct("", fields)

	r.mu.Lock()
	product.ID = r.insertLocked(product)
	r.mu.Unlock()

	span.SetAttributes(attribute.String("product.id", product.ID))

	r.logger.DebugContext(ctx, "Product created in repository",
		slog.String("product_id", product.ID),
		slog.Int("field_count", len(product.Fields)),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return product.Clone(), nil
}

// Update merges fields into an existing product
func (r *ProductRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.Product, error) {
	_, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.products[id]
	if !exists {
		span.SetStatus(codes.Error, "Product not found")
		return nil, domain.ErrProductNotFound
	}

	updated := current.Clone()
	updated.Merge(fields)
	r.products[id] = updated

	span.SetStatus(codes.Ok, "Product updated successfully")
	return updated.Clone(), nil
}

// Delete removes a product by ID
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	_, span := r.tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		span.SetStatus(codes.Error, "Product not found")
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}

// Count returns the number of stored products
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

// InsertMany stores products as given, assigning fresh identifiers
func (r *ProductRepository) InsertMany(ctx context.Context, products []domain.Product) error {
	_, span := r.tracer.Start(ctx, "ProductRepository.InsertMany")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range products {
		r.insertLocked(products[i].Clone())
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products inserted successfully")
	return nil
}

func (r *ProductRepository) insertLocked(p *domain.Product) string {
	p.ID = uuid.NewString()
	r.products[p.ID] = p
	r.order = append(r.order, p.ID)
	return p.ID
}
