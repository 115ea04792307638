package service

import (
	"context"

	"blog-backend/internal/domains/post/model"
)

// ServiceInterface - blog post operations. Every read returns posts with
// the author reference resolved.
type ServiceInterface interface {
	List(ctx context.Context) ([]model.PopulatedPost, error)
	GetByID(ctx context.Context, id string) (*model.PopulatedPost, error)
	Create(ctx context.Context, req *model.CreatePostRequest) (*model.PopulatedPost, error)
	Update(ctx context.Context, pathID string, req *model.UpdatePostRequest) (*model.PopulatedPost, error)
	Delete(ctx context.Context, id string) error
}
