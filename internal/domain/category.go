package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a user-defined exercise category. The lower-cased label becomes
// the category value stored on exercises. There is no referential integrity:
// deleting a Category does not cascade to existing exercises.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Label     string             `bson:"label" json:"label"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Value returns the category value exercises store for this label.
func (c Category) Value() string {
	return strings.ToLower(c.Label)
}
