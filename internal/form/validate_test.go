package form

import (
	"testing"
	"wellness-admin/internal/domain"

	"github.com/stretchr/testify/assert"
)

func pendingFile(name string) FileField {
	return FileField{Upload: &Upload{Filename: name, ContentType: "image/png", Data: []byte("bytes")}}
}

func validBaseInput() ExerciseInput {
	return ExerciseInput{
		Name:            "Morning Calm",
		SummDescription: "A short reset",
		Category:        domain.CategoryMeditation,
		ImageType:       domain.ImageTypeSingle,
		Image:           pendingFile("cover.png"),
		MediaType:       domain.MediaTypeAudio,
		AudioFile:       pendingFile("calm.mp3"),
	}
}

func TestValidate_ValidInput(t *testing.T) {
	assert.Empty(t, Validate(validBaseInput()))
}

func TestValidate_AlwaysRequiredFields(t *testing.T) {
	in := validBaseInput()
	in.Name = ""
	in.SummDescription = ""
	in.Category = ""
	in.ImageType = ""

	errs := Validate(in)
	assert.Equal(t, ErrRequired, errs["name"])
	assert.Equal(t, ErrRequired, errs["summDescription"])
	assert.Equal(t, ErrRequired, errs["category"])
	assert.Equal(t, ErrRequired, errs["imageType"])
}

func TestValidate_SingleImageRequired(t *testing.T) {
	in := validBaseInput()
	in.Image = FileField{}

	errs := Validate(in)
	assert.Equal(t, ErrRequired, errs["image"])
	assert.NotContains(t, errs, "multipleImages.vertical")
}

func TestValidate_MultipleImagesEachRequired(t *testing.T) {
	in := validBaseInput()
	in.ImageType = domain.ImageTypeMultiple
	in.Image = FileField{}
	in.MultipleImages.Horizontal = pendingFile("wide.png")

	errs := Validate(in)
	assert.Equal(t, ErrRequired, errs["multipleImages.vertical"])
	assert.Equal(t, ErrRequired, errs["multipleImages.fullscreen"])
	assert.NotContains(t, errs, "multipleImages.horizontal")
	// Single-image rule must not fire when the Multiple shape is selected.
	assert.NotContains(t, errs, "image")
}

func TestValidate_MediaTypeRequiredPerCategory(t *testing.T) {
	tests := []struct {
		category string
		required bool
	}{
		{domain.CategoryMeditation, true},
		{domain.CategoryMove, true},
		{domain.CategoryBreathe, false},
		{"sleep", false}, // custom category
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			in := validBaseInput()
			in.Category = tt.category
			in.MediaType = ""
			in.AudioFile = FileField{}
			if tt.category == domain.CategoryBreathe {
				in.Breathe = BreatheInput{
					Inhale: Number{Set: true, Value: 4},
					Hold:   Number{Set: true, Value: 7},
					Exhale: Number{Set: true, Value: 8},
				}
			}

			errs := Validate(in)
			if tt.required {
				assert.Equal(t, ErrRequired, errs["mediaType"])
			} else {
				assert.NotContains(t, errs, "mediaType")
			}
		})
	}
}

func TestValidate_MediaFieldsIgnoredForOtherCategories(t *testing.T) {
	// Populated media fields from a previous category selection are ignored:
	// no media rule may fire for a category outside meditation/move.
	in := validBaseInput()
	in.Category = domain.CategoryBreathe
	in.MediaType = domain.MediaTypeVideo
	in.VideoFile = FileField{}
	in.Breathe = BreatheInput{
		Inhale: Number{Set: true, Value: 4},
		Hold:   Number{Set: true, Value: 7},
		Exhale: Number{Set: true, Value: 8},
	}

	errs := Validate(in)
	assert.NotContains(t, errs, "videoFile")
	assert.NotContains(t, errs, "mediaType")
}

func TestValidate_MediaFilePerSelectedType(t *testing.T) {
	tests := []struct {
		name      string
		mediaType domain.MediaType
		field     string
	}{
		{"audio", domain.MediaTypeAudio, "audioFile"},
		{"video", domain.MediaTypeVideo, "videoFile"},
		{"slideshow", domain.MediaTypeSlideshow, "slideshowFiles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validBaseInput()
			in.MediaType = tt.mediaType
			in.AudioFile = FileField{}
			in.VideoFile = FileField{}
			in.SlideshowFiles = nil

			errs := Validate(in)
			assert.Equal(t, ErrRequired, errs[tt.field])
		})
	}
}

func TestValidate_BreatheTimingsTruthy(t *testing.T) {
	in := validBaseInput()
	in.Category = domain.CategoryBreathe
	in.Breathe = BreatheInput{
		Inhale: Number{Set: true, Value: 0}, // zero fails the truthy check
		Hold:   Number{Set: true, Value: 40},
		Exhale: Number{Set: true, Value: 40},
	}

	errs := Validate(in)
	assert.Equal(t, ErrRequired, errs["breathe.inhale"])
	assert.NotContains(t, errs, "breathe.hold")
	assert.NotContains(t, errs, "breathe.exhale")
}

func TestValidate_BreatheUnsetAllFlagged(t *testing.T) {
	in := validBaseInput()
	in.Category = domain.CategoryBreathe

	errs := Validate(in)
	assert.Equal(t, ErrRequired, errs["breathe.inhale"])
	assert.Equal(t, ErrRequired, errs["breathe.hold"])
	assert.Equal(t, ErrRequired, errs["breathe.exhale"])
}

func TestCaptionErrors_FlagsEveryOffendingIndex(t *testing.T) {
	slides := []SlideInput{
		{Image: pendingFile("a.png"), Caption: ""},
		{Image: pendingFile("b.png"), Caption: "step two"},
		{Image: pendingFile("c.png"), Caption: ""},
	}

	errs := CaptionErrors(slides)
	assert.Len(t, errs, 2)
	assert.Equal(t, ErrCaptionMissing, errs["slideshowFiles.0.caption"])
	assert.Equal(t, ErrCaptionMissing, errs["slideshowFiles.2.caption"])
}

func TestClampSlides(t *testing.T) {
	slides := make([]SlideInput, 7)
	for i := range slides {
		slides[i].Caption = "c"
	}

	assert.Len(t, ClampSlides(slides), domain.MaxSlideshowSlides)
	assert.Len(t, ClampSlides(slides[:3]), 3)
	assert.Nil(t, ClampSlides(nil))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want Number
	}{
		{"", Number{}},                            // empty string is unset, not zero
		{"0", Number{Set: true, Value: 0}},        // zero is a set value
		{"42.5", Number{Set: true, Value: 42.5}},
		{"-3", Number{Set: true, Value: 0}},       // clamped low
		{"250", Number{Set: true, Value: 100}},    // clamped high
		{"abc", Number{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseNumber(tt.in), "input %q", tt.in)
	}
}
