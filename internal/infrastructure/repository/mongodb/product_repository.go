package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lampara23/dise-o-web/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductRepository stores products in the products collection.
// Every mutation is a single-document operation.
type ProductRepository struct {
	coll   *mongo.Collection
	tracer trace.Tracer
	logger *slog.Logger
}

// NewProductRepository creates a product repository over the store's products collection
func NewProductRepository(store *Store, tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return newProductRepository(store.Products, tracer, logger)
}

func newProductRepository(coll *mongo.Collection, tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{coll: coll, tracer: tracer, logger: logger}
}

func (r *ProductRepository) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository."+op, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("db.system", "mongodb"),
		attribute.String("db.mongodb.collection", r.coll.Name()),
		attribute.String("db.operation", op),
	)
	return ctx, span
}

func fail(span trace.Span, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
}

// FindAll retrieves every product that passes the filter, in natural order
func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	ctx, span := r.startSpan(ctx, "FindAll")
	defer span.End()

	cur, err := r.coll.Find(ctx, buildFilter(filter))
	if err != nil {
		fail(span, err, "find failed")
		return nil, fmt.Errorf("finding products: %w", err)
	}

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		fail(span, err, "decode failed")
		return nil, fmt.Errorf("decoding products: %w", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, productFromDocument(d))
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := r.startSpan(ctx, "FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	oid, err := parseID(id)
	if err != nil {
		span.SetStatus(codes.Error, "Product not found")
		return nil, err
	}

	product, err := r.findOne(ctx, oid)
	if err != nil {
		fail(span, err, "find failed")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Product found")
	return product, nil
}

func (r *ProductRepository) findOne(ctx context.Context, oid primitive.ObjectID) (*domain.Product, error) {
	var doc bson.M
	err := r.coll.FindOne(ctx, bson.M{domain.FieldID: oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding product %s: %w", oid.Hex(), err)
	}
	return productFromDocument(doc), nil
}

// Create inserts fields as a new document and returns it as stored
func (r *ProductRepository) Create(ctx context.Context, fields domain.Fields) (*domain.Product, error) {
	ctx, span := r.startSpan(ctx, "Create")
	defer span.End()

	res, err := r.coll.InsertOne(ctx, bson.M(fields.WithoutID()))
	if err != nil {
		fail(span, err, "insert failed")
		return nil, fmt.Errorf("inserting product: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		err := fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
		fail(span, err, "insert failed")
		return nil, err
	}
	span.SetAttributes(attribute.String("product.id", oid.Hex()))

	product, err := r.findOne(ctx, oid)
	if err != nil {
		fail(span, err, "re-fetch failed")
		return nil, err
	}

	r.logger.DebugContext(ctx, "Product inserted",
		slog.String("product_id", product.ID),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return product, nil
}

// Update applies a partial $set and returns the document as stored afterwards.
// Not-found is decided on the matched count, so re-sending current values succeeds.
func (r *ProductRepository) Update(ctx context.Context, id string, fields domain.Fields) (*domain.Product, error) {
	ctx, span := r.startSpan(ctx, "Update")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	oid, err := parseID(id)
	if err != nil {
		span.SetStatus(codes.Error, "Product not found")
		return nil, err
	}

	set := fields.WithoutID()
	// An empty $set is rejected by the server; treat it as a read.
	if len(set) > 0 {
		res, err := r.coll.UpdateOne(ctx, bson.M{domain.FieldID: oid}, bson.M{"$set": bson.M(set)})
		if err != nil {
			fail(span, err, "update failed")
			return nil, fmt.Errorf("updating product %s: %w", id, err)
		}
		span.SetAttributes(
			attribute.Int64("db.matched_count", res.MatchedCount),
			attribute.Int64("db.modified_count", res.ModifiedCount),
		)
		if res.MatchedCount == 0 {
			span.SetStatus(codes.Error, "Product not found")
			return nil, domain.ErrProductNotFound
		}
	}

	product, err := r.findOne(ctx, oid)
	if err != nil {
		fail(span, err, "re-fetch failed")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Product updated successfully")
	return product, nil
}

// Delete removes a product by ID
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.startSpan(ctx, "Delete")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	oid, err := parseID(id)
	if err != nil {
		span.SetStatus(codes.Error, "Product not found")
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{domain.FieldID: oid})
	if err != nil {
		fail(span, err, "delete failed")
		return fmt.Errorf("deleting product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		span.SetStatus(codes.Error, "Product not found")
		return domain.ErrProductNotFound
	}

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}

// Count returns the number of stored products
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := r.startSpan(ctx, "Count")
	defer span.End()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		fail(span, err, "count failed")
		return 0, fmt.Errorf("counting products: %w", err)
	}

	span.SetAttributes(attribute.Int64("product.count", n))
	span.SetStatus(codes.Ok, "Products counted")
	return n, nil
}

// InsertMany writes products in one batch
func (r *ProductRepository) InsertMany(ctx context.Context, products []domain.Product) error {
	ctx, span := r.startSpan(ctx, "InsertMany")
	defer span.End()

	if len(products) == 0 {
		span.SetStatus(codes.Ok, "Nothing to insert")
		return nil
	}

	docs := make([]any, 0, len(products))
	for _, p := range products {
		docs = append(docs, newProductDocument(p))
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		fail(span, err, "insert failed")
		return fmt.Errorf("inserting products: %w", err)
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products inserted successfully")
	return nil
}
