package author

import "blog-backend/internal/shared/apperror"

var (
	// Validation Errors
	ErrIDMismatch = apperror.Validation("Request path id and request body id must match")
	ErrInvalidID  = apperror.Validation("Invalid id")

	// Business Rule Errors
	ErrAuthorNotFound = apperror.NotFound("Author not found")
	ErrUsernameTaken  = apperror.Conflict("Username already in use")
)
