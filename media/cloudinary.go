package media

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploader uploads image payloads to Cloudinary. A single attempt
// per call, no retry; the caller surfaces the failure.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryFromEnv builds an uploader from CLOUDINARY_URL, falling back
// to the individual CLOUDINARY_CLOUD_NAME / CLOUDINARY_API_KEY /
// CLOUDINARY_API_SECRET variables.
func NewCloudinaryFromEnv() (*CloudinaryUploader, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)

	if url := os.Getenv("CLOUDINARY_URL"); url != "" {
		cld, err = cloudinary.NewFromURL(url)
	} else {
		cld, err = cloudinary.NewFromParams(
			os.Getenv("CLOUDINARY_CLOUD_NAME"),
			os.Getenv("CLOUDINARY_API_KEY"),
			os.Getenv("CLOUDINARY_API_SECRET"),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary configuration: %w", err)
	}

	return &CloudinaryUploader{cld: cld, folder: "promptgallery/posts"}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, payload string) (string, error) {
	if payload == "" {
		return "", fmt.Errorf("%w: empty payload", ErrUpload)
	}

	result, err := u.cld.Upload.Upload(ctx, payload, uploader.UploadParams{
		Folder: u.folder,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	// The SDK reports API-level rejections on the result, not as an error.
	if result.Error.Message != "" {
		return "", classifyRejection(result.Error.Message)
	}

	return result.SecureURL, nil
}
