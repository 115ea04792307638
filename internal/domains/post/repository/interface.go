package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-backend/internal/domains/post/model"
)

// RepositoryInterface - data access for blog posts. Author references are
// returned unresolved; population happens in the service.
type RepositoryInterface interface {
	// Create assigns ID and keeps the caller's Created timestamp.
	Create(ctx context.Context, post *model.Post) (*model.Post, error)

	// GetByID returns model.ErrPostNotFound if not exists.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)

	List(ctx context.Context) ([]model.Post, error)

	// Update returns model.ErrPostNotFound if not exists. An empty patch
	// returns the current record.
	Update(ctx context.Context, id primitive.ObjectID, patch model.Patch) (*model.Post, error)

	// Delete is a no-op for a missing post.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// DeleteByAuthor removes every post referencing authorID and returns how many.
	DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error)

	Count(ctx context.Context) (int64, error)
}
