package model

import "blog-backend/internal/shared/apperror"

var (
	ErrIDMismatch = apperror.Validation("Request path id and request body id must match")
	ErrInvalidID  = apperror.Validation("Invalid id")

	// A referenced author that does not exist is a client input problem (400).
	ErrAuthorNotFound = apperror.Validation("Author not found")

	// A directly requested post that does not exist is a 404.
	ErrPostNotFound = apperror.NotFound("Blog post not found")
)
