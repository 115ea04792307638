package author

import "context"

// Service defines the author operations exposed over HTTP.
type Service interface {
	// List returns every author.
	List(ctx context.Context) ([]Author, error)

	// Create validates required fields, checks userName is free, then inserts.
	// Errors: validation error naming the missing field, ErrUsernameTaken
	Create(ctx context.Context, req *CreateAuthorRequest) (*Author, error)

	// Update requires req.ID == pathID, re-checks userName against every
	// other author and applies the sparse patch.
	// Errors: ErrIDMismatch, ErrInvalidID, ErrUsernameTaken, ErrAuthorNotFound
	Update(ctx context.Context, pathID string, req *UpdateAuthorRequest) (*Author, error)

	// Delete removes the author's posts, then the author. Not atomic: if the
	// second step fails the posts stay deleted.
	// Returns the number of posts removed.
	Delete(ctx context.Context, id string) (int64, error)
}
