package repository

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-backend/internal/domains/author"
)

// memoryRepository keeps authors in process. It enforces the same unique
// userName constraint as the Mongo index and hands out copies only.
type memoryRepository struct {
	mu      sync.RWMutex
	authors map[primitive.ObjectID]author.Author
	order   []primitive.ObjectID
}

func NewMemoryRepository() author.Repository {
	return &memoryRepository{
		authors: make(map[primitive.ObjectID]author.Author),
	}
}

// userNameTakenLocked must be called with mu held.
func (r *memoryRepository) userNameTakenLocked(userName string, excludeID primitive.ObjectID) *author.Author {
	for _, id := range r.order {
		a := r.authors[id]
		if a.UserName == userName && id != excludeID {
			return &a
		}
	}
	return nil
}

func (r *memoryRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.userNameTakenLocked(a.UserName, primitive.NilObjectID) != nil {
		return nil, fmt.Errorf("insert author: %w", author.ErrUsernameTaken)
	}

	created := *a
	created.ID = primitive.NewObjectID()
	r.authors[created.ID] = created
	r.order = append(r.order, created.ID)
	return &created, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*author.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &a, nil
}

func (r *memoryRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*author.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[primitive.ObjectID]*author.Author, len(ids))
	for _, id := range ids {
		if a, ok := r.authors[id]; ok {
			result[id] = &a
		}
	}
	return result, nil
}

func (r *memoryRepository) FindByUserName(ctx context.Context, userName string, excludeID primitive.ObjectID) (*author.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.userNameTakenLocked(userName, excludeID), nil
}

func (r *memoryRepository) List(ctx context.Context) ([]author.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	authors := make([]author.Author, 0, len(r.order))
	for _, id := range r.order {
		authors = append(authors, r.authors[id])
	}
	return authors, nil
}

func (r *memoryRepository) Update(ctx context.Context, id primitive.ObjectID, patch author.Patch) (*author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}

	if patch.UserName != nil && r.userNameTakenLocked(*patch.UserName, id) != nil {
		return nil, fmt.Errorf("update author: %w", author.ErrUsernameTaken)
	}

	patch.Apply(&a)
	r.authors[id] = a
	return &a, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.authors[id]; !ok {
		return nil
	}
	delete(r.authors, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.authors)), nil
}
