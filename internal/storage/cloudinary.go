package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore uploads images to Cloudinary and returns their secure URL.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore configures the client from a
// cloudinary://<key>:<secret>@<cloud> URL.
func NewCloudinaryStore(url string) (*CloudinaryStore, error) {
	const op = "storage.NewCloudinaryStore"

	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	const op = "storage.CloudinaryStore.Save"

	publicID := strings.TrimSuffix(path.Base(key), path.Ext(key))

	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       path.Dir(key),
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	if res.Error.Message != "" {
		return "", fmt.Errorf("%s: %s", op, res.Error.Message)
	}

	return res.SecureURL, nil
}
