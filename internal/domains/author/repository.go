package author

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository defines the data access operations for authors.
type Repository interface {
	// Create assigns a new ID and inserts the author.
	// Errors: ErrUsernameTaken if the store's unique index rejects it.
	Create(ctx context.Context, author *Author) (*Author, error)

	// GetByID returns ErrAuthorNotFound if not exists.
	GetByID(ctx context.Context, id primitive.ObjectID) (*Author, error)

	// GetByIDs resolves many ids at once; missing ids are simply absent
	// from the result.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*Author, error)

	// FindByUserName returns the author owning userName, ignoring excludeID
	// (pass primitive.NilObjectID to ignore nobody). Returns nil, nil when free.
	FindByUserName(ctx context.Context, userName string, excludeID primitive.ObjectID) (*Author, error)

	List(ctx context.Context) ([]Author, error)

	// Update applies patch and returns the updated author. An empty patch
	// returns the current record.
	// Errors: ErrAuthorNotFound, ErrUsernameTaken
	Update(ctx context.Context, id primitive.ObjectID, patch Patch) (*Author, error)

	// Delete removes the author. Deleting a missing author is not an error.
	Delete(ctx context.Context, id primitive.ObjectID) error

	Count(ctx context.Context) (int64, error)
}

// PostCascader removes the blog posts owned by an author.
// Implemented by the post repository.
type PostCascader interface {
	DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error)
}
