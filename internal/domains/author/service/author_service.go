// internal/domains/author/service/author_service.go
package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/shared/apperror"
	"blog-backend/pkg/lock"
	"blog-backend/pkg/logger"
)

// authorService implements author.Service
type authorService struct {
	repo   author.Repository
	posts  author.PostCascader
	locker lock.Locker
}

// NewAuthorService wires the author repository, the cascade target for
// owned posts and the locker guarding check-then-act sequences.
// A nil locker means no locking.
func NewAuthorService(repo author.Repository, posts author.PostCascader, locker lock.Locker) author.Service {
	if locker == nil {
		locker = lock.Nop{}
	}
	return &authorService{
		repo:   repo,
		posts:  posts,
		locker: locker,
	}
}

func (s *authorService) List(ctx context.Context) ([]author.Author, error) {
	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Wrap("list authors", err)
	}
	return authors, nil
}

func (s *authorService) Create(ctx context.Context, req *author.CreateAuthorRequest) (*author.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	entity := req.ToEntity()

	var created *author.Author
	err := s.withLock(ctx, lock.UsernameKey(entity.UserName), func() error {
		// Pre-check. The unique index still catches a concurrent insert
		// that lands between this query and the insert below.
		existing, err := s.repo.FindByUserName(ctx, entity.UserName, primitive.NilObjectID)
		if err != nil {
			return apperror.Wrap("check username", err)
		}
		if existing != nil {
			return author.ErrUsernameTaken
		}

		created, err = s.repo.Create(ctx, entity)
		if err != nil {
			return apperror.Wrap("create author", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *authorService) Update(ctx context.Context, pathID string, req *author.UpdateAuthorRequest) (*author.Author, error) {
	if !req.MatchesPath(pathID) {
		return nil, author.ErrIDMismatch
	}
	id, ok := database.ParseID(pathID)
	if !ok {
		return nil, author.ErrInvalidID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	patch := req.ToPatch()
	if patch.UserName == nil {
		return s.applyUpdate(ctx, id, patch)
	}

	var updated *author.Author
	err := s.withLock(ctx, lock.UsernameKey(*patch.UserName), func() error {
		existing, err := s.repo.FindByUserName(ctx, *patch.UserName, id)
		if err != nil {
			return apperror.Wrap("check username", err)
		}
		if existing != nil {
			return author.ErrUsernameTaken
		}

		updated, err = s.applyUpdate(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *authorService) applyUpdate(ctx context.Context, id primitive.ObjectID, patch author.Patch) (*author.Author, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, apperror.Wrap("update author", err)
	}
	return updated, nil
}

func (s *authorService) Delete(ctx context.Context, idStr string) (int64, error) {
	id, ok := database.ParseID(idStr)
	if !ok {
		return 0, author.ErrInvalidID
	}

	var removed int64
	err := s.withLock(ctx, lock.AuthorKey(id.Hex()), func() error {
		var err error
		removed, err = s.posts.DeleteByAuthor(ctx, id)
		if err != nil {
			return apperror.Wrap("delete posts of author", err)
		}

		if err := s.repo.Delete(ctx, id); err != nil {
			return apperror.Wrap("delete author", err)
		}
		return nil
	})
	if err != nil {
		return removed, err
	}

	logger.Info("Deleted author and owned blog posts", map[string]interface{}{
		"author_id":     id.Hex(),
		"posts_deleted": removed,
	})
	return removed, nil
}

// withLock runs fn under key. A lock failure becomes a store error; fn's
// errors are already application errors and pass through.
func (s *authorService) withLock(ctx context.Context, key string, fn func() error) error {
	return apperror.Wrap("acquire lock", lock.Do(ctx, s.locker, key, fn))
}
