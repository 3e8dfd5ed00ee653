// internal/form/input.go
package form

import (
	"strconv"

	"wellness-admin/internal/domain"
)

// Upload carries the bytes of a freshly submitted file, not yet persisted.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FileField holds either a pending upload or an already-persisted URL.
// On edit, fields the user did not touch come back as plain URLs and must
// pass through unchanged (no re-upload).
type FileField struct {
	URL    string
	Upload *Upload
}

// IsZero reports whether the field holds neither a URL nor pending bytes.
func (f FileField) IsZero() bool {
	return f.URL == "" && f.Upload == nil
}

// Number is a numeric form value where the empty string is a valid "unset"
// sentinel distinct from zero.
type Number struct {
	Set   bool
	Value float64
}

// ParseNumber parses a numeric form value, clamping it to [0,100].
// An empty string yields an unset Number; a malformed value is treated the
// same way.
func ParseNumber(s string) Number {
	if s == "" {
		return Number{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}
	}
	if v < 0 {
		v = 0
	} else if v > 100 {
		v = 100
	}
	return Number{Set: true, Value: v}
}

// SlideInput is one slideshow entry as submitted.
type SlideInput struct {
	Image   FileField
	Caption string
}

// MultipleImagesInput holds the three image variants submitted when the
// image type is Multiple.
type MultipleImagesInput struct {
	Vertical   FileField
	Horizontal FileField
	Fullscreen FileField
}

// BreatheInput holds the breathing-pattern timing values.
type BreatheInput struct {
	Inhale Number
	Hold   Number
	Exhale Number
}

// ExerciseInput is the full set of exercise form values for one submission.
type ExerciseInput struct {
	Visible         bool
	Name            string
	SummDescription string
	FullDescription string
	Category        string
	Tags            []string

	ImageType      domain.ImageType
	Image          FileField
	MultipleImages MultipleImagesInput

	MediaType      domain.MediaType
	AudioFile      FileField
	VideoFile      FileField
	SlideshowFiles []SlideInput

	Breathe  BreatheInput
	Duration Number
}

// ClampSlides truncates a slideshow to the maximum allowed length. Applied at
// input time so a single multi-file selection cannot exceed the cap.
func ClampSlides(slides []SlideInput) []SlideInput {
	if len(slides) > domain.MaxSlideshowSlides {
		return slides[:domain.MaxSlideshowSlides]
	}
	return slides
}
