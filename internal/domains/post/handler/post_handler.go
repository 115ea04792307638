package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/post/model"
	service "blog-backend/internal/domains/post/service"
	"blog-backend/internal/shared/response"
)

// Handler - HTTP handler for /blog-posts
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListPosts - GET /blog-posts
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, model.ToSummaries(posts))
}

// GetPost - GET /blog-posts/:id
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, post.ToDetailResponse())
}

// CreatePost - POST /blog-posts
// Body: title, content, author_id. An empty body binds as {}.
func (h *Handler) CreatePost(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Malformed JSON body")
		return
	}

	post, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, post.ToCreatedResponse())
}

// UpdatePost - PUT /blog-posts/:id
// Responds 200 with the updated post.
func (h *Handler) UpdatePost(c *gin.Context) {
	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Malformed JSON body")
		return
	}

	post, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, post.ToDetailResponse())
}

// DeletePost - DELETE /blog-posts/:id
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	posts := r.Group("/blog-posts")
	{
		posts.GET("", h.ListPosts)
		posts.GET("/:id", h.GetPost)
		posts.POST("", h.CreatePost)
		posts.PUT("/:id", h.UpdatePost)
		posts.DELETE("/:id", h.DeletePost)
	}
}
