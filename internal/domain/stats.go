package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stats holds the usage counters for one exercise. The document shares the
// exercise id (one-to-one) and is created zero-valued alongside the exercise
// shell. Counters are caller-managed; no atomic increment semantics.
type Stats struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"` // same id as the exercise
	Views       int64              `bson:"views" json:"views"`
	Starts      int64              `bson:"starts" json:"starts"`
	Completions int64              `bson:"completions" json:"completions"`
	Favorites   int64              `bson:"favorites" json:"favorites"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
