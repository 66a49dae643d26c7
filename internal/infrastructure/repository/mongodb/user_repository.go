package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lampara23/dise-o-web/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// UserRepository reads the users collection. Documents are returned as stored.
type UserRepository struct {
	coll   *mongo.Collection
	tracer trace.Tracer
	logger *slog.Logger
}

func NewUserRepository(store *Store, tracer trace.Tracer, logger *slog.Logger) *UserRepository {
	return &UserRepository{coll: store.Users, tracer: tracer, logger: logger}
}

// FindAll retrieves all users
func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.FindAll", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("db.system", "mongodb"),
		attribute.String("db.mongodb.collection", r.coll.Name()),
	)

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		fail(span, err, "find failed")
		return nil, fmt.Errorf("finding users: %w", err)
	}

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		fail(span, err, "decode failed")
		return nil, fmt.Errorf("decoding users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for _, doc := range docs {
		id := idString(doc[domain.FieldID])
		delete(doc, domain.FieldID)
		users = append(users, &domain.User{ID: id, Fields: map[string]any(doc)})
	}

	span.SetAttributes(attribute.Int("user.count", len(users)))
	span.SetStatus(codes.Ok, "Users retrieved successfully")
	return users, nil
}
