package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps files under a directory served at baseURL.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	const op = "storage.LocalStore.Save"

	dst := filepath.Join(s.root, filepath.FromSlash(key))
	if !strings.HasPrefix(dst, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%s: key %q escapes media root", op, key)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("%s:%w", op, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	return s.baseURL + "/" + key, nil
}
