package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectURLRoundTrip(t *testing.T) {
	s := &s3Storage{bucketName: "wellness-media", baseURL: "https://minio.local:9000"}

	tests := []struct {
		name string
		key  string
	}{
		{"plain key", "661f0c2a9d3e4b0001a1b2c3/1714056000000-cover.png"},
		{"spaces in filename", "661f0c2a9d3e4b0001a1b2c3/1714056000000-my photo.png"},
		{"plus and parens", "661f0c2a9d3e4b0001a1b2c3/1714056000000-clip (1)+final.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rawURL := s.objectURL(tt.key)
			key, err := objectKeyFromURL(s.bucketName, rawURL)
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestObjectURLIsPathStyle(t *testing.T) {
	s := &s3Storage{bucketName: "wellness-media", baseURL: "https://minio.local:9000"}

	rawURL := s.objectURL("abc123/1714056000000-calm.mp3")
	assert.Equal(t, "https://minio.local:9000/wellness-media/abc123/1714056000000-calm.mp3", rawURL)
}

func TestObjectKeyFromURL_Errors(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
	}{
		{"different bucket", "https://minio.local:9000/other-bucket/abc/file.png"},
		{"no object key", "https://minio.local:9000/wellness-media/"},
		{"not an object URL", "https://example.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := objectKeyFromURL("wellness-media", tt.rawURL)
			assert.Error(t, err)
		})
	}
}
