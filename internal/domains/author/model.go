package author

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author represents the core Author entity as stored in the authors collection.
type Author struct {
	ID primitive.ObjectID `bson:"_id,omitempty"` // store-assigned, immutable

	FirstName string `bson:"firstName"`
	LastName  string `bson:"lastName"`
	UserName  string `bson:"userName"` // unique across authors
}

// DisplayName is first and last name joined and trimmed.
func (a *Author) DisplayName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Patch is a sparse update. Nil fields are left untouched.
type Patch struct {
	FirstName *string
	LastName  *string
	UserName  *string
}

func (p Patch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.UserName == nil
}

// Apply copies the set fields onto a.
func (p Patch) Apply(a *Author) {
	if p.FirstName != nil {
		a.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		a.LastName = *p.LastName
	}
	if p.UserName != nil {
		a.UserName = *p.UserName
	}
}
