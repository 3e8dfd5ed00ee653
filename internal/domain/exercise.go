// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category values. The three built-in categories drive form branching;
// user-defined categories (see Category) are stored as their lower-cased label.
const (
	CategoryMeditation = "meditation"
	CategoryBreathe    = "breathe"
	CategoryMove       = "move"
)

// ImageType selects which image shape on an Exercise is authoritative.
type ImageType string

const (
	ImageTypeSingle   ImageType = "Single"
	ImageTypeMultiple ImageType = "Multiple"
)

// MediaType selects which of the audio/video/slideshow fields is active.
// Only meaningful for the meditation and move categories.
type MediaType string

const (
	MediaTypeAudio     MediaType = "audio"
	MediaTypeVideo     MediaType = "video"
	MediaTypeSlideshow MediaType = "slideshow"
)

// MaxSlideshowSlides caps the slideshow length regardless of how many files
// were selected in one input event.
const MaxSlideshowSlides = 5

// MultipleImages holds the three image variants used when ImageType is
// Multiple. All three are required together.
type MultipleImages struct {
	Vertical   string `bson:"vertical,omitempty" json:"vertical,omitempty"`
	Horizontal string `bson:"horizontal,omitempty" json:"horizontal,omitempty"`
	Fullscreen string `bson:"fullscreen,omitempty" json:"fullscreen,omitempty"`
}

// Slide is a single slideshow entry. Caption must be non-empty before the
// exercise is persisted.
type Slide struct {
	Image   string `bson:"image" json:"image"`
	Caption string `bson:"caption" json:"caption"`
}

// BreatheTiming holds the breathing-pattern timings, each in [0,100].
// Required (and only meaningful) when the category is "breathe".
type BreatheTiming struct {
	Inhale float64 `bson:"inhale" json:"inhale"`
	Hold   float64 `bson:"hold" json:"hold"`
	Exhale float64 `bson:"exhale" json:"exhale"`
}

// Exercise is a single content item in the wellness library.
//
// The document is created as an empty shell (id + createdAt only) before any
// media is uploaded, so uploads can be namespaced under a stable id; the first
// successful submission fills it in and later edits mutate it in place.
type Exercise struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Visible bool               `bson:"visible" json:"visible"`

	Name            string   `bson:"name" json:"name"`
	SummDescription string   `bson:"summDescription" json:"summDescription"`
	FullDescription string   `bson:"fullDescription,omitempty" json:"fullDescription,omitempty"`
	Category        string   `bson:"category" json:"category"`
	Tags            []string `bson:"tags,omitempty" json:"tags,omitempty"` // tag names, not ids

	ImageType      ImageType      `bson:"imageType" json:"imageType"`
	Image          string         `bson:"image,omitempty" json:"image,omitempty"` // ImageType == Single
	MultipleImages MultipleImages `bson:"multipleImages,omitempty" json:"multipleImages,omitempty"`

	MediaType      MediaType `bson:"mediaType,omitempty" json:"mediaType,omitempty"`
	AudioFile      string    `bson:"audioFile,omitempty" json:"audioFile,omitempty"`
	VideoFile      string    `bson:"videoFile,omitempty" json:"videoFile,omitempty"`
	SlideshowFiles []Slide   `bson:"slideshowFiles,omitempty" json:"slideshowFiles,omitempty"`

	Breathe  *BreatheTiming `bson:"breathe,omitempty" json:"breathe,omitempty"`
	Duration *float64       `bson:"duration,omitempty" json:"duration,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// MediaTypeApplies reports whether the category uses the mediaType
// discriminant at all.
func MediaTypeApplies(category string) bool {
	return category == CategoryMeditation || category == CategoryMove
}
