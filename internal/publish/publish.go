// Package publish hands finished artifacts (rendered videos, timeline dumps)
// to the place they are served from. The engine never calls it.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidKey is returned for keys that would escape the publish root.
var ErrInvalidKey = errors.New("invalid publish key")

// Publisher stores a local file under key and returns its public URL.
type Publisher interface {
	Publish(ctx context.Context, localPath, key string) (string, error)
}

// DirPublisher publishes by copying into a directory, typically one served
// by a static file server at BaseURL.
type DirPublisher struct {
	Dir     string
	BaseURL string
}

// NewDirPublisher creates a publisher rooted at dir.
func NewDirPublisher(dir, baseURL string) *DirPublisher {
	return &DirPublisher{Dir: dir, BaseURL: baseURL}
}

// Publish copies localPath to Dir/key. An empty key becomes a random
// name that keeps the source extension.
func (p *DirPublisher) Publish(ctx context.Context, localPath, key string) (string, error) {
	if key == "" {
		key = uuid.NewString() + filepath.Ext(localPath)
	}
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(p.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("failed to create publish dir: %w", err)
	}
	if err := copyFile(localPath, dst); err != nil {
		return "", err
	}

	return p.URL(key), nil
}

// URL returns the public location of key. Without a base URL it is the
// absolute file path.
func (p *DirPublisher) URL(key string) string {
	if p.BaseURL == "" {
		abs, err := filepath.Abs(filepath.Join(p.Dir, filepath.FromSlash(key)))
		if err != nil {
			return filepath.Join(p.Dir, filepath.FromSlash(key))
		}
		return abs
	}
	return strings.TrimRight(p.BaseURL, "/") + "/" + key
}

func cleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: %q is absolute", ErrInvalidKey, key)
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return cleaned, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy artifact: %w", err)
	}
	return out.Close()
}
