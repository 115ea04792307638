package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-backend/internal/domains/author"
	authorRepo "blog-backend/internal/domains/author/repository"
	"blog-backend/internal/domains/post/model"
	postRepo "blog-backend/internal/domains/post/repository"
	"blog-backend/internal/shared/apperror"
)

func strPtr(s string) *string { return &s }

// recordingLocker records acquired keys and can be told to fail.
type recordingLocker struct {
	mu       sync.Mutex
	acquired []string
	released int
	err      error
}

func (l *recordingLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return nil, l.err
	}
	l.acquired = append(l.acquired, key)
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
		return nil
	}, nil
}

// failingCascader fails every cascade.
type failingCascader struct{}

func (failingCascader) DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	return 0, errors.New("connection reset")
}

type fixture struct {
	authors author.Repository
	posts   postRepo.RepositoryInterface
	locker  *recordingLocker
	svc     author.Service
}

func newFixture() *fixture {
	f := &fixture{
		authors: authorRepo.NewMemoryRepository(),
		posts:   postRepo.NewMemoryRepository(),
		locker:  &recordingLocker{},
	}
	f.svc = NewAuthorService(f.authors, f.posts, f.locker)
	return f
}

func (f *fixture) createAuthor(t *testing.T, first, last, userName string) *author.Author {
	t.Helper()
	a, err := f.svc.Create(context.Background(), &author.CreateAuthorRequest{
		FirstName: strPtr(first),
		LastName:  strPtr(last),
		UserName:  strPtr(userName),
	})
	require.NoError(t, err)
	return a
}

func TestAuthorService_Create(t *testing.T) {
	t.Run("creates author with all required fields", func(t *testing.T) {
		f := newFixture()

		a := f.createAuthor(t, "Ada", "Lovelace", "ada")

		assert.False(t, a.ID.IsZero())
		assert.Equal(t, "ada", a.UserName)
		assert.Equal(t, "Ada Lovelace", a.DisplayName())
		assert.Equal(t, []string{"lock:username:ada"}, f.locker.acquired)
		assert.Equal(t, 1, f.locker.released)
	})

	missing := []struct {
		name    string
		req     author.CreateAuthorRequest
		message string
	}{
		{
			name:    "missing firstName",
			req:     author.CreateAuthorRequest{LastName: strPtr("L"), UserName: strPtr("u")},
			message: "Missing `firstName` in request body",
		},
		{
			name:    "missing lastName",
			req:     author.CreateAuthorRequest{FirstName: strPtr("F"), UserName: strPtr("u")},
			message: "Missing `lastName` in request body",
		},
		{
			name:    "missing userName",
			req:     author.CreateAuthorRequest{FirstName: strPtr("F"), LastName: strPtr("L")},
			message: "Missing `userName` in request body",
		},
		{
			name:    "blank userName",
			req:     author.CreateAuthorRequest{FirstName: strPtr("F"), LastName: strPtr("L"), UserName: strPtr("")},
			message: "Missing `userName` in request body",
		},
	}
	for _, tc := range missing {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.svc.Create(context.Background(), &tc.req)

			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.Equal(t, tc.message, apperror.MessageOf(err))
			assert.Empty(t, f.locker.acquired, "validation runs before any lock or store call")
		})
	}

	t.Run("duplicate userName is rejected and store count unchanged", func(t *testing.T) {
		f := newFixture()
		f.createAuthor(t, "Ada", "Lovelace", "ada")

		_, err := f.svc.Create(context.Background(), &author.CreateAuthorRequest{
			FirstName: strPtr("Other"),
			LastName:  strPtr("Person"),
			UserName:  strPtr("ada"),
		})

		assert.ErrorIs(t, err, author.ErrUsernameTaken)
		n, err := f.authors.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("lock failure is a store error", func(t *testing.T) {
		f := newFixture()
		f.locker.err = errors.New("redis down")

		_, err := f.svc.Create(context.Background(), &author.CreateAuthorRequest{
			FirstName: strPtr("Ada"),
			LastName:  strPtr("Lovelace"),
			UserName:  strPtr("ada"),
		})

		assert.Equal(t, apperror.KindStore, apperror.KindOf(err))
		n, _ := f.authors.Count(context.Background())
		assert.Zero(t, n)
	})
}

func TestAuthorService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("path and body id mismatch leaves record unchanged", func(t *testing.T) {
		f := newFixture()
		a := f.createAuthor(t, "Ada", "Lovelace", "ada")

		_, err := f.svc.Update(ctx, a.ID.Hex(), &author.UpdateAuthorRequest{
			ID:        strPtr(primitive.NewObjectID().Hex()),
			FirstName: strPtr("Changed"),
		})

		assert.ErrorIs(t, err, author.ErrIDMismatch)
		stored, err := f.authors.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", stored.FirstName)
	})

	t.Run("missing body id is a mismatch", func(t *testing.T) {
		f := newFixture()
		a := f.createAuthor(t, "Ada", "Lovelace", "ada")

		_, err := f.svc.Update(ctx, a.ID.Hex(), &author.UpdateAuthorRequest{FirstName: strPtr("X")})

		assert.ErrorIs(t, err, author.ErrIDMismatch)
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Update(ctx, "not-an-id", &author.UpdateAuthorRequest{ID: strPtr("not-an-id")})

		assert.ErrorIs(t, err, author.ErrInvalidID)
	})

	t.Run("sparse update keeps untouched fields", func(t *testing.T) {
		f := newFixture()
		a := f.createAuthor(t, "Ada", "Lovelace", "ada")

		updated, err := f.svc.Update(ctx, a.ID.Hex(), &author.UpdateAuthorRequest{
			ID:       strPtr(a.ID.Hex()),
			LastName: strPtr("King"),
		})

		require.NoError(t, err)
		assert.Equal(t, a.ID, updated.ID)
		assert.Equal(t, "Ada", updated.FirstName)
		assert.Equal(t, "King", updated.LastName)
		assert.Equal(t, "ada", updated.UserName)
		assert.Len(t, f.locker.acquired, 1, "no username lock without a userName change")
	})

	t.Run("empty patch returns current record", func(t *testing.T) {
		f := newFixture()
		a := f.createAuthor(t, "Ada", "Lovelace", "ada")

		updated, err := f.svc.Update(ctx, a.ID.Hex(), &author.UpdateAuthorRequest{ID: strPtr(a.ID.Hex())})

		require.NoError(t, err)
		assert.Equal(t, *a, *updated)
	})

	t.Run("keeping own userName is allowed", func(t *testing.T) {
		f := newFixture()
		a := f.createAuthor(t, "Ada", "Lovelace", "ada")

		updated, err := f.svc.Update(ctx, a.ID.Hex(), &author.UpdateAuthorRequest{
			ID:       strPtr(a.ID.Hex()),
			UserName: strPtr("ada"),
		})

		require.NoError(t, err)
		assert.Equal(t, "ada", updated.UserName)
	})

	t.Run("userName owned by another author", func(t *testing.T) {
		f := newFixture()
		a := f.createAuthor(t, "Ada", "Lovelace", "ada")
		f.createAuthor(t, "Grace", "Hopper", "grace")

		_, err := f.svc.Update(ctx, a.ID.Hex(), &author.UpdateAuthorRequest{
			ID:       strPtr(a.ID.Hex()),
			UserName: strPtr("grace"),
		})

		assert.ErrorIs(t, err, author.ErrUsernameTaken)
		stored, _ := f.authors.GetByID(ctx, a.ID)
		assert.Equal(t, "ada", stored.UserName)
	})

	t.Run("blank userName in patch", func(t *testing.T) {
		f := newFixture()
		a := f.createAuthor(t, "Ada", "Lovelace", "ada")

		_, err := f.svc.Update(ctx, a.ID.Hex(), &author.UpdateAuthorRequest{
			ID:       strPtr(a.ID.Hex()),
			UserName: strPtr(""),
		})

		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Equal(t, "`userName` must not be empty", apperror.MessageOf(err))
	})

	t.Run("unknown author", func(t *testing.T) {
		f := newFixture()
		id := primitive.NewObjectID().Hex()

		_, err := f.svc.Update(ctx, id, &author.UpdateAuthorRequest{ID: strPtr(id), FirstName: strPtr("X")})

		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})
}

func TestAuthorService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades to every post of the author and nothing else", func(t *testing.T) {
		f := newFixture()
		ada := f.createAuthor(t, "Ada", "Lovelace", "ada")
		grace := f.createAuthor(t, "Grace", "Hopper", "grace")

		for _, owner := range []primitive.ObjectID{ada.ID, ada.ID, grace.ID} {
			_, err := f.posts.Create(ctx, &model.Post{Title: "t", AuthorID: owner, Created: time.Now()})
			require.NoError(t, err)
		}

		removed, err := f.svc.Delete(ctx, ada.ID.Hex())

		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		posts, err := f.posts.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, grace.ID, posts[0].AuthorID)

		_, err = f.authors.GetByID(ctx, ada.ID)
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
		assert.Contains(t, f.locker.acquired, "lock:author:"+ada.ID.Hex())
	})

	t.Run("missing author is not an error", func(t *testing.T) {
		f := newFixture()

		removed, err := f.svc.Delete(ctx, primitive.NewObjectID().Hex())

		require.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Delete(ctx, "xyz")

		assert.ErrorIs(t, err, author.ErrInvalidID)
	})

	t.Run("cascade failure keeps the author and surfaces a store error", func(t *testing.T) {
		authors := authorRepo.NewMemoryRepository()
		svc := NewAuthorService(authors, failingCascader{}, nil)
		a, err := svc.Create(ctx, &author.CreateAuthorRequest{
			FirstName: strPtr("Ada"), LastName: strPtr("Lovelace"), UserName: strPtr("ada"),
		})
		require.NoError(t, err)

		_, err = svc.Delete(ctx, a.ID.Hex())

		assert.Equal(t, apperror.KindStore, apperror.KindOf(err))
		assert.Equal(t, "Internal server error", apperror.MessageOf(err))
		_, err = authors.GetByID(ctx, a.ID)
		assert.NoError(t, err)
	})
}

func TestAuthorService_List(t *testing.T) {
	f := newFixture()
	f.createAuthor(t, "Ada", "Lovelace", "ada")
	f.createAuthor(t, "Grace", "Hopper", "grace")

	authors, err := f.svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "ada", authors[0].UserName)
	assert.Equal(t, "grace", authors[1].UserName)
}
