package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-backend/internal/domains/author"
)

// Comment is embedded in its post and has no lifecycle of its own.
type Comment struct {
	Content string `bson:"content"`
}

// Post is the stored blog post. AuthorID references authors._id.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Title    string             `bson:"title"`
	Content  string             `bson:"content"`
	AuthorID primitive.ObjectID `bson:"author"`
	Comments []Comment          `bson:"comments"`
	Created  time.Time          `bson:"created"`
}

// Patch is a sparse update of the updatable post fields.
type Patch struct {
	Title    *string
	Content  *string
	AuthorID *primitive.ObjectID
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.AuthorID == nil
}

func (p Patch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.AuthorID != nil {
		post.AuthorID = *p.AuthorID
	}
}

// PopulatedPost is a post with its author reference resolved.
// Author is nil when the reference dangles.
type PopulatedPost struct {
	Post
	Author *author.Author
}

// AuthorName is the author's display name, or "" for a dangling reference.
func (p *PopulatedPost) AuthorName() string {
	if p.Author == nil {
		return ""
	}
	return p.Author.DisplayName()
}
