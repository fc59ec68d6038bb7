package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		id   string
		isOK bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/pacific-tide/products/barrel-1.jpg", "pacific-tide/products/barrel-1", true},
		{"https://res.cloudinary.com/demo/image/upload/c_fill,w_300/v1712345678/heaters/drop.png", "heaters/drop", true},
		{"https://res.cloudinary.com/demo/image/upload/sample.jpg", "sample", true},
		{"https://cdn.shopify.com/s/files/barrel.jpg", "", false},
		{"https://res.cloudinary.com/demo/video/upload/v1/clip.mp4", "", false},
	}
	for _, tt := range tests {
		id, ok := PublicIDFromURL(tt.url)
		assert.Equal(t, tt.isOK, ok, tt.url)
		assert.Equal(t, tt.id, id, tt.url)
	}
}

func TestThumbnailURL(t *testing.T) {
	var disabled *CloudinaryService
	src := "https://res.cloudinary.com/demo/image/upload/v1/products/barrel.jpg"
	assert.Equal(t, src, disabled.ThumbnailURL(src))

	svc, err := NewCloudinaryService("demo", "key", "secret")
	require.NoError(t, err)

	other := "https://cdn.example.com/barrel.jpg"
	assert.Equal(t, other, svc.ThumbnailURL(other))
	assert.Equal(t, "", svc.ThumbnailURL(""))

	thumb := svc.ThumbnailURL(src)
	assert.Contains(t, thumb, "https://res.cloudinary.com/demo/image/upload/")
	assert.Contains(t, thumb, "c_fill,g_auto,w_640,h_480/f_auto/q_auto")
	assert.Contains(t, thumb, "products/barrel")
}
