package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/shared/response"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// READ: List - GET /authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, author.ToResponses(authors))
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /authors (an empty body binds as {})
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Malformed JSON body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, created.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	var req author.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Malformed JSON body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, updated.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /authors/:id (cascades to the author's blog posts)
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	if _, err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// ROUTES REGISTRATION
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) RegisterRoutes(r gin.IRouter) {
	authors := r.Group("/authors")
	{
		authors.GET("", h.List)
		authors.POST("", h.Create)
		authors.PUT("/:id", h.Update)
		authors.DELETE("/:id", h.Delete)
	}
}
