package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the contract for product storage
type ProductRepository interface {
	FindAll(ctx context.Context, filter ProductFilter) ([]*Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, fields Fields) (*Product, error)
	Update(ctx context.Context, id string, fields Fields) (*Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, products []Product) error
}

// UserRepository defines the contract for user storage. Users are read-only here.
type UserRepository interface {
	FindAll(ctx context.Context) ([]*User, error)
}
