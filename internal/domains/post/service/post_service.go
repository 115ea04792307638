package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/domains/post/repository"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/shared/apperror"
	"blog-backend/pkg/lock"
)

// AuthorReader is the slice of author.Repository needed to resolve
// references.
type AuthorReader interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*author.Author, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*author.Author, error)
}

type postService struct {
	repo    repository.RepositoryInterface
	authors AuthorReader
	locker  lock.Locker
	now     func() time.Time
}

// NewPostService takes the same locker as the author service: writes that
// attach a post to an author hold lock.AuthorKey so they cannot interleave
// with that author's cascade delete. A nil locker means no locking.
func NewPostService(repo repository.RepositoryInterface, authors AuthorReader, locker lock.Locker) ServiceInterface {
	if locker == nil {
		locker = lock.Nop{}
	}
	return &postService{
		repo:    repo,
		authors: authors,
		locker:  locker,
		now:     time.Now,
	}
}

func (s *postService) List(ctx context.Context) ([]model.PopulatedPost, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Wrap("list blog posts", err)
	}

	// One lookup for all distinct authors instead of one per post.
	seen := make(map[primitive.ObjectID]struct{}, len(posts))
	ids := make([]primitive.ObjectID, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; !ok {
			seen[p.AuthorID] = struct{}{}
			ids = append(ids, p.AuthorID)
		}
	}

	authors, err := s.authors.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Wrap("resolve authors", err)
	}

	populated := make([]model.PopulatedPost, len(posts))
	for i, p := range posts {
		populated[i] = model.PopulatedPost{Post: p, Author: authors[p.AuthorID]}
	}
	return populated, nil
}

func (s *postService) GetByID(ctx context.Context, idStr string) (*model.PopulatedPost, error) {
	// A malformed id can never name a stored post.
	id, ok := database.ParseID(idStr)
	if !ok {
		return nil, model.ErrPostNotFound
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Wrap("get blog post", err)
	}
	return s.populate(ctx, post)
}

func (s *postService) Create(ctx context.Context, req *model.CreatePostRequest) (*model.PopulatedPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	authorID, ok := database.ParseID(*req.AuthorID)
	if !ok {
		return nil, model.ErrAuthorNotFound
	}

	var result *model.PopulatedPost
	err := s.withAuthorLock(ctx, authorID, func() error {
		owner, err := s.resolveAuthor(ctx, authorID)
		if err != nil {
			return err
		}

		created, err := s.repo.Create(ctx, &model.Post{
			Title:    *req.Title,
			Content:  *req.Content,
			AuthorID: owner.ID,
			Comments: []model.Comment{},
			Created:  s.now().UTC().Truncate(time.Millisecond),
		})
		if err != nil {
			return apperror.Wrap("create blog post", err)
		}

		result = &model.PopulatedPost{Post: *created, Author: owner}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *postService) Update(ctx context.Context, pathID string, req *model.UpdatePostRequest) (*model.PopulatedPost, error) {
	if !req.MatchesPath(pathID) {
		return nil, model.ErrIDMismatch
	}
	id, ok := database.ParseID(pathID)
	if !ok {
		return nil, model.ErrInvalidID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	patch := model.Patch{
		Title:   req.Title,
		Content: req.Content,
	}
	if req.AuthorID == nil {
		return s.applyUpdate(ctx, id, patch)
	}

	authorID, ok := database.ParseID(*req.AuthorID)
	if !ok {
		return nil, model.ErrAuthorNotFound
	}

	var result *model.PopulatedPost
	err := s.withAuthorLock(ctx, authorID, func() error {
		owner, err := s.resolveAuthor(ctx, authorID)
		if err != nil {
			return err
		}
		patch.AuthorID = &owner.ID

		result, err = s.applyUpdate(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *postService) applyUpdate(ctx context.Context, id primitive.ObjectID, patch model.Patch) (*model.PopulatedPost, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, apperror.Wrap("update blog post", err)
	}
	return s.populate(ctx, updated)
}

func (s *postService) Delete(ctx context.Context, idStr string) error {
	id, ok := database.ParseID(idStr)
	if !ok {
		return model.ErrInvalidID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Wrap("delete blog post", err)
	}
	return nil
}

// withAuthorLock holds the author's lock around fn, the same key the
// cascade delete takes.
func (s *postService) withAuthorLock(ctx context.Context, authorID primitive.ObjectID, fn func() error) error {
	return apperror.Wrap("acquire lock", lock.Do(ctx, s.locker, lock.AuthorKey(authorID.Hex()), fn))
}

// resolveAuthor loads a referenced author; absence is model.ErrAuthorNotFound.
func (s *postService) resolveAuthor(ctx context.Context, id primitive.ObjectID) (*author.Author, error) {
	owner, err := s.authors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, apperror.Wrap("find author", err)
	}
	return owner, nil
}

// populate resolves post.AuthorID. A dangling reference leaves Author nil.
func (s *postService) populate(ctx context.Context, post *model.Post) (*model.PopulatedPost, error) {
	owner, err := s.authors.GetByID(ctx, post.AuthorID)
	if err != nil {
		if !errors.Is(err, author.ErrAuthorNotFound) {
			return nil, apperror.Wrap("resolve author", err)
		}
		owner = nil
	}
	return &model.PopulatedPost{Post: *post, Author: owner}, nil
}
