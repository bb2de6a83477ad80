package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FSStore persists uploaded objects under a root directory and serves
// them by URL. Object names may contain forward slashes, which map to
// subdirectories under the root.
type FSStore struct {
	root    string
	baseURL string
}

// NewFSStore returns a store rooted at dir. Returned URLs are
// baseURL + "/" + name.
func NewFSStore(dir, baseURL string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("NewFSStore: %w", err)
	}
	return &FSStore{root: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put writes the object and returns its public URL. Names are cleaned
// so an object can never escape the store root.
func (s *FSStore) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := path.Clean("/" + name)[1:]
	if clean == "" {
		return "", fmt.Errorf("Put: empty object name")
	}
	dst := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("Put: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("Put: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("Put: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("Put: %w", err)
	}
	return s.baseURL + "/" + clean, nil
}
