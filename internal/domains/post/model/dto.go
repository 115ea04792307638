package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/shared/apperror"
)

// CreatePostRequest - POST /blog-posts
type CreatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	AuthorID *string `json:"author_id"`
}

// Validate requires all three fields. content may be empty but must be present.
func (r CreatePostRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error(apperror.MissingField("title"))),
		validation.Field(&r.Content, validation.NotNil.Error(apperror.MissingField("content"))),
		validation.Field(&r.AuthorID, validation.Required.Error(apperror.MissingField("author_id"))),
	), "title", "content", "author_id")
}

// UpdatePostRequest - PUT /blog-posts/:id
type UpdatePostRequest struct {
	ID       *string `json:"id"`
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	AuthorID *string `json:"author"`
}

func (r UpdatePostRequest) MatchesPath(pathID string) bool {
	return pathID != "" && r.ID != nil && *r.ID == pathID
}

func (r UpdatePostRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty.Error("`title` must not be empty")),
		validation.Field(&r.AuthorID, validation.NilOrNotEmpty.Error("`author` must not be empty")),
	), "title", "author")
}

type CommentResponse struct {
	Content string `json:"content"`
}

// PostSummary - list view, author as display name, no comments
type PostSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// PostCreatedResponse - POST response, author as display name
type PostCreatedResponse struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Author   string            `json:"author"`
	Content  string            `json:"content"`
	Comments []CommentResponse `json:"comments"`
	Created  time.Time         `json:"created"`
}

// PostDetailResponse - GET by id and PUT response, author as full record
type PostDetailResponse struct {
	ID       string               `json:"id"`
	Title    string               `json:"title"`
	Author   *author.AuthorRecord `json:"author"`
	Content  string               `json:"content"`
	Comments []CommentResponse    `json:"comments"`
	Created  time.Time            `json:"created"`
}

// Conversion methods

func toCommentResponses(comments []Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = CommentResponse{Content: c.Content}
	}
	return out
}

func (p *PopulatedPost) ToSummary() PostSummary {
	return PostSummary{
		ID:      p.ID.Hex(),
		Title:   p.Title,
		Author:  p.AuthorName(),
		Content: p.Content,
	}
}

func (p *PopulatedPost) ToCreatedResponse() PostCreatedResponse {
	return PostCreatedResponse{
		ID:       p.ID.Hex(),
		Title:    p.Title,
		Author:   p.AuthorName(),
		Content:  p.Content,
		Comments: toCommentResponses(p.Comments),
		Created:  p.Created,
	}
}

func (p *PopulatedPost) ToDetailResponse() PostDetailResponse {
	var record *author.AuthorRecord
	if p.Author != nil {
		record = p.Author.ToRecord()
	}
	return PostDetailResponse{
		ID:       p.ID.Hex(),
		Title:    p.Title,
		Author:   record,
		Content:  p.Content,
		Comments: toCommentResponses(p.Comments),
		Created:  p.Created,
	}
}

func ToSummaries(posts []PopulatedPost) []PostSummary {
	out := make([]PostSummary, len(posts))
	for i := range posts {
		out[i] = posts[i].ToSummary()
	}
	return out
}
