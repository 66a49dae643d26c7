// Package mongodb is the document-database implementation of the catalog store.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lampara23/dise-o-web/internal/infrastructure/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	ProductsCollection = "products"
	UsersCollection    = "users"
	OrdersCollection   = "orders"
)

// Store owns the single client shared by every request and the catalog
// collections opened from it.
type Store struct {
	client   *mongo.Client
	Database *mongo.Database
	Products *mongo.Collection
	Users    *mongo.Collection
	// Orders is opened with the others but no catalog operation reads it yet.
	Orders *mongo.Collection
	logger *slog.Logger
}

// Connect dials the deployment and pings the primary. Any failure is returned
// so the caller can abort startup.
func Connect(ctx context.Context, cfg config.MongoConfig, logger *slog.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.Timeout).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	logger.Info("Connecting to MongoDB", slog.String("database", cfg.Database))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	logger.Info("MongoDB connection established", slog.String("database", cfg.Database))

	db := client.Database(cfg.Database)
	return &Store{
		client:   client,
		Database: db,
		Products: db.Collection(ProductsCollection),
		Users:    db.Collection(UsersCollection),
		Orders:   db.Collection(OrdersCollection),
		logger:   logger,
	}, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting mongodb: %w", err)
	}
	s.logger.Info("MongoDB connection closed")
	return nil
}
