package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag is a flat label referenced by exercises by name (not by id).
type Tag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
