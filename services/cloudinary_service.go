package services

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const thumbnailTransformation = "c_fill,g_auto,w_640,h_480/f_auto/q_auto"

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	cld.Config.URL.Secure = true
	return &CloudinaryService{cld: cld}, nil
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// PublicIDFromURL extracts the public id of an image delivered from res.cloudinary.com.
func PublicIDFromURL(rawURL string) (string, bool) {
	if !strings.Contains(rawURL, "res.cloudinary.com/") {
		return "", false
	}
	_, rest, ok := strings.Cut(rawURL, "/image/upload/")
	if !ok || rest == "" {
		return "", false
	}

	segments := strings.Split(rest, "/")
	// Skip transformations and the version: the public id starts after "v<digits>" when present.
	for i, seg := range segments {
		if versionSegment.MatchString(seg) {
			segments = segments[i+1:]
			break
		}
	}
	if len(segments) == 0 {
		return "", false
	}
	id := strings.Join(segments, "/")
	return strings.TrimSuffix(id, path.Ext(id)), true
}

// ThumbnailURL rewrites a Cloudinary image URL into a cropped, auto-format thumbnail. Other URLs
// come back unchanged.
func (s *CloudinaryService) ThumbnailURL(src string) string {
	if s == nil || src == "" {
		return src
	}
	publicID, ok := PublicIDFromURL(src)
	if !ok {
		return src
	}
	img, err := s.cld.Image(publicID)
	if err != nil {
		return src
	}
	img.Transformation = thumbnailTransformation
	url, err := img.String()
	if err != nil {
		return src
	}
	return url
}

// UploadRemoteImage copies an image from sourceURL into folder and returns the secure URL
func (s *CloudinaryService) UploadRemoteImage(ctx context.Context, sourceURL, publicID, folder string) (string, error) {
	overwrite := true
	result, err := s.cld.Upload.Upload(ctx, sourceURL, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "image",
		Overwrite:    &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	if result.SecureURL == "" {
		return "", fmt.Errorf("upload successful but no URL returned")
	}

	return result.SecureURL, nil
}
