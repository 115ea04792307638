package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/shared/apperror"
)

// CreateAuthorRequest - POST /authors
// Pointer fields distinguish an absent field from an empty one. Names only
// need to be present, userName must also be non-empty.
type CreateAuthorRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	UserName  *string `json:"userName"`
}

func (r CreateAuthorRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.NotNil.Error(apperror.MissingField("firstName"))),
		validation.Field(&r.LastName, validation.NotNil.Error(apperror.MissingField("lastName"))),
		validation.Field(&r.UserName, validation.Required.Error(apperror.MissingField("userName"))),
	), "firstName", "lastName", "userName")
}

// ToEntity must only be called after Validate.
func (r CreateAuthorRequest) ToEntity() *Author {
	return &Author{
		FirstName: *r.FirstName,
		LastName:  *r.LastName,
		UserName:  *r.UserName,
	}
}

// UpdateAuthorRequest - PUT /authors/:id
// ID must repeat the path id. Every other field is optional.
type UpdateAuthorRequest struct {
	ID        *string `json:"id"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	UserName  *string `json:"userName"`
}

// MatchesPath reports whether the body id is present and equal to pathID.
func (r UpdateAuthorRequest) MatchesPath(pathID string) bool {
	return pathID != "" && r.ID != nil && *r.ID == pathID
}

func (r UpdateAuthorRequest) Validate() error {
	return apperror.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.NilOrNotEmpty.Error("`userName` must not be empty")),
	))
}

// ToPatch builds the sparse update from the updatable fields only.
func (r UpdateAuthorRequest) ToPatch() Patch {
	return Patch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		UserName:  r.UserName,
	}
}

// AuthorResponse - list, create and update views
type AuthorResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	UserName string `json:"userName"`
}

// AuthorRecord - the full author embedded in a blog post detail view
type AuthorRecord struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"userName"`
}

// Conversion methods

func (a *Author) ToResponse() AuthorResponse {
	return AuthorResponse{
		ID:       a.ID.Hex(),
		Name:     a.DisplayName(),
		UserName: a.UserName,
	}
}

func (a *Author) ToRecord() *AuthorRecord {
	return &AuthorRecord{
		ID:        a.ID.Hex(),
		FirstName: a.FirstName,
		LastName:  a.LastName,
		UserName:  a.UserName,
	}
}

func ToResponses(authors []Author) []AuthorResponse {
	out := make([]AuthorResponse, len(authors))
	for i := range authors {
		out[i] = authors[i].ToResponse()
	}
	return out
}
