// Package storage saves uploaded play images and returns an opaque
// reference to store on the play.
package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ImageStore interface {
	// Save writes the content under key and returns the reference clients
	// use to fetch it.
	Save(ctx context.Context, key string, r io.Reader) (string, error)
}

// PlayImageKey builds a unique key for a play image:
// uploads/plays/<slug(title)>-<uuid><ext>.
func PlayImageKey(title, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("uploads", "plays", slug.Make(title)+"-"+uuid.NewString()+ext)
}
