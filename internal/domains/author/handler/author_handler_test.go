package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-backend/internal/domains/author"
	authorRepo "blog-backend/internal/domains/author/repository"
	authorService "blog-backend/internal/domains/author/service"
	postRepo "blog-backend/internal/domains/post/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) (*gin.Engine, author.Repository) {
	t.Helper()

	repo := authorRepo.NewMemoryRepository()
	svc := authorService.NewAuthorService(repo, postRepo.NewMemoryRepository(), nil)

	router := gin.New()
	NewAuthorHandler(svc).RegisterRoutes(router)
	return router, repo
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestAuthorHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "created",
			body:           map[string]string{"firstName": "Ada", "lastName": "Lovelace", "userName": "ada"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_last_name",
			body:           map[string]string{"firstName": "Ada", "userName": "ada"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Missing `lastName` in request body",
		},
		{
			name:           "empty_body",
			body:           nil,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Missing `firstName` in request body",
		},
		{
			name:           "userName_only_reports_firstName",
			body:           map[string]string{"userName": "ada"},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Missing `firstName` in request body",
		},
		{
			name:           "malformed_json",
			body:           `{"firstName":`,
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Malformed JSON body",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := setupRouter(t)

			w := doJSON(t, router, http.MethodPost, "/authors", tc.body)

			require.Equal(t, tc.expectedStatus, w.Code, w.Body.String())
			if tc.expectedMsg != "" {
				assert.Equal(t, tc.expectedMsg, decode[map[string]string](t, w)["message"])
				return
			}

			got := decode[author.AuthorResponse](t, w)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "Ada Lovelace", got.Name)
			assert.Equal(t, "ada", got.UserName)
		})
	}
}

func TestAuthorHandler_CreateDuplicateUserName(t *testing.T) {
	router, repo := setupRouter(t)
	body := map[string]string{"firstName": "Ada", "lastName": "Lovelace", "userName": "ada"}

	first := doJSON(t, router, http.MethodPost, "/authors", body)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, router, http.MethodPost, "/authors", body)

	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Equal(t, "Username already in use", decode[map[string]string](t, second)["message"])
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAuthorHandler_List(t *testing.T) {
	router, _ := setupRouter(t)
	doJSON(t, router, http.MethodPost, "/authors", map[string]string{"firstName": "Ada", "lastName": "Lovelace", "userName": "ada"})
	doJSON(t, router, http.MethodPost, "/authors", map[string]string{"firstName": "Grace", "lastName": "", "userName": "grace"})

	w := doJSON(t, router, http.MethodGet, "/authors", nil)

	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]author.AuthorResponse](t, w)
	require.Len(t, got, 2)
	assert.Equal(t, "Ada Lovelace", got[0].Name)
	assert.Equal(t, "Grace", got[1].Name, "display name is trimmed")
}

func TestAuthorHandler_ListEmpty(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/authors", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAuthorHandler_Update(t *testing.T) {
	router, repo := setupRouter(t)
	created := decode[author.AuthorResponse](t, doJSON(t, router, http.MethodPost, "/authors",
		map[string]string{"firstName": "Ada", "lastName": "Lovelace", "userName": "ada"}))

	t.Run("id_mismatch", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/authors/"+created.ID,
			map[string]string{"id": primitive.NewObjectID().Hex(), "firstName": "Changed"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Request path id and request body id must match", decode[map[string]string](t, w)["message"])

		id, _ := primitive.ObjectIDFromHex(created.ID)
		stored, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Ada", stored.FirstName)
	})

	t.Run("ok", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/authors/"+created.ID,
			map[string]string{"id": created.ID, "firstName": "Augusta", "userName": "augusta"})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decode[author.AuthorResponse](t, w)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Augusta Lovelace", got.Name)
		assert.Equal(t, "augusta", got.UserName)
	})

	t.Run("not_found", func(t *testing.T) {
		id := primitive.NewObjectID().Hex()
		w := doJSON(t, router, http.MethodPut, "/authors/"+id, map[string]string{"id": id, "lastName": "X"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthorHandler_Delete(t *testing.T) {
	router, repo := setupRouter(t)
	created := decode[author.AuthorResponse](t, doJSON(t, router, http.MethodPost, "/authors",
		map[string]string{"firstName": "Ada", "lastName": "Lovelace", "userName": "ada"}))

	w := doJSON(t, router, http.MethodDelete, "/authors/"+created.ID, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	n, _ := repo.Count(context.Background())
	assert.Zero(t, n)

	bad := doJSON(t, router, http.MethodDelete, "/authors/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}
