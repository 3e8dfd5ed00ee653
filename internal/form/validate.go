// internal/form/validate.go
package form

import (
	"fmt"

	"wellness-admin/internal/domain"
)

// ErrorKind classifies a single field-level validation failure.
type ErrorKind string

const (
	ErrRequired       ErrorKind = "required"
	ErrCaptionMissing ErrorKind = "caption_required"
)

// Errors maps a field name to the kind of validation failure it has.
// An empty map means the input is valid.
type Errors map[string]ErrorKind

// Validate applies the full conditional rule table to the current field
// values. It is a pure function: rules read sibling values at evaluation time
// and nothing is cached between calls.
//
// Rule table:
//
//	name, summDescription, category, imageType   always required
//	image                                        required when imageType = Single
//	multipleImages.{vertical,horizontal,fullscreen}
//	                                             each required when imageType = Multiple
//	mediaType                                    required when category is meditation or move
//	audioFile / videoFile / slideshowFiles       required per selected mediaType
//	breathe.{inhale,hold,exhale}                 each required nonzero when category = breathe
func Validate(in ExerciseInput) Errors {
	errs := Errors{}

	if in.Name == "" {
		errs["name"] = ErrRequired
	}
	if in.SummDescription == "" {
		errs["summDescription"] = ErrRequired
	}
	if in.Category == "" {
		errs["category"] = ErrRequired
	}
	if in.ImageType == "" {
		errs["imageType"] = ErrRequired
	}

	switch in.ImageType {
	case domain.ImageTypeSingle:
		if in.Image.IsZero() {
			errs["image"] = ErrRequired
		}
	case domain.ImageTypeMultiple:
		if in.MultipleImages.Vertical.IsZero() {
			errs["multipleImages.vertical"] = ErrRequired
		}
		if in.MultipleImages.Horizontal.IsZero() {
			errs["multipleImages.horizontal"] = ErrRequired
		}
		if in.MultipleImages.Fullscreen.IsZero() {
			errs["multipleImages.fullscreen"] = ErrRequired
		}
	}

	// Media fields only matter for categories that carry media. For any other
	// category they are ignored even if populated (stale form state).
	if domain.MediaTypeApplies(in.Category) {
		if in.MediaType == "" {
			errs["mediaType"] = ErrRequired
		}
		switch in.MediaType {
		case domain.MediaTypeAudio:
			if in.AudioFile.IsZero() {
				errs["audioFile"] = ErrRequired
			}
		case domain.MediaTypeVideo:
			if in.VideoFile.IsZero() {
				errs["videoFile"] = ErrRequired
			}
		case domain.MediaTypeSlideshow:
			if len(in.SlideshowFiles) == 0 {
				errs["slideshowFiles"] = ErrRequired
			}
		}
	}

	// Truthy check: a zero timing fails, matching the original behavior.
	if in.Category == domain.CategoryBreathe {
		if !in.Breathe.Inhale.Set || in.Breathe.Inhale.Value == 0 {
			errs["breathe.inhale"] = ErrRequired
		}
		if !in.Breathe.Hold.Set || in.Breathe.Hold.Value == 0 {
			errs["breathe.hold"] = ErrRequired
		}
		if !in.Breathe.Exhale.Set || in.Breathe.Exhale.Value == 0 {
			errs["breathe.exhale"] = ErrRequired
		}
	}

	return errs
}

// CaptionErrors flags every slideshow entry with an empty caption, not just
// the first. Keys are indexed field names (slideshowFiles.2.caption).
func CaptionErrors(slides []SlideInput) Errors {
	errs := Errors{}
	for i, slide := range slides {
		if slide.Caption == "" {
			errs[fmt.Sprintf("slideshowFiles.%d.caption", i)] = ErrCaptionMissing
		}
	}
	return errs
}
