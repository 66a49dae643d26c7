package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lampara23/dise-o-web/internal/domain"
)

// UserRepository is an in-memory implementation of domain.UserRepository
type UserRepository struct {
	mu    sync.RWMutex
	users []*domain.User
}

// NewUserRepository creates a repository holding the given user documents.
// Each document gets a fresh identifier.
func NewUserRepository(docs ...map[string]any) *UserRepository {
	r := &UserRepository{}
	for _, doc := range docs {
		fields := make(map[string]any, len(doc))
		for k, v := range doc {
			if k != domain.FieldID {
				fields[k] = v
			}
		}
		r.users = append(r.users, &domain.User{ID: uuid.NewString(), Fields: fields})
	}
	return r
}

// FindAll retrieves all users
func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		c := &domain.User{ID: u.ID, Fields: make(map[string]any, len(u.Fields))}
		for k, v := range u.Fields {
			c.Fields[k] = v
		}
		users = append(users, c)
	}
	return users, nil
}
