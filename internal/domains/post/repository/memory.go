package repository

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-backend/internal/domains/post/model"
)

type memoryRepository struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]model.Post
	order []primitive.ObjectID
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		posts: make(map[primitive.ObjectID]model.Post),
	}
}

// clone copies the comments slice so callers never share backing arrays
// with the store.
func clone(p model.Post) *model.Post {
	p.Comments = append([]model.Comment{}, p.Comments...)
	return &p
}

func (r *memoryRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := clone(*post)
	created.ID = primitive.NewObjectID()
	r.posts[created.ID] = *created
	r.order = append(r.order, created.ID)
	return clone(*created), nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	return clone(post), nil
}

func (r *memoryRepository) List(ctx context.Context) ([]model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]model.Post, 0, len(r.order))
	for _, id := range r.order {
		posts = append(posts, *clone(r.posts[id]))
	}
	return posts, nil
}

func (r *memoryRepository) Update(ctx context.Context, id primitive.ObjectID, patch model.Patch) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}

	patch.Apply(&post)
	r.posts[id] = post
	return clone(post), nil
}

func (r *memoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleteLocked(id)
	return nil
}

func (r *memoryRepository) DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var victims []primitive.ObjectID
	for _, id := range r.order {
		if r.posts[id].AuthorID == authorID {
			victims = append(victims, id)
		}
	}
	for _, id := range victims {
		r.deleteLocked(id)
	}
	return int64(len(victims)), nil
}

func (r *memoryRepository) deleteLocked(id primitive.ObjectID) {
	if _, ok := r.posts[id]; !ok {
		return
	}
	delete(r.posts, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

func (r *memoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.posts)), nil
}
