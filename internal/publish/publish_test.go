package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestPublishWithKey(t *testing.T) {
	root := t.TempDir()
	pub := NewDirPublisher(root, "https://cdn.example.com/videos/")
	src := writeArtifact(t, "render.mp4", "video-bytes")

	url, err := pub.Publish(context.Background(), src, "2024/final.mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/videos/2024/final.mp4", url)

	data, err := os.ReadFile(filepath.Join(root, "2024", "final.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(data))
}

func TestPublishDefaultKey(t *testing.T) {
	root := t.TempDir()
	pub := NewDirPublisher(root, "https://cdn.example.com")
	src := writeArtifact(t, "timeline.yaml", "version: 1.0")

	url, err := pub.Publish(context.Background(), src, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/"))
	assert.True(t, strings.HasSuffix(url, ".yaml"))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Name(), 36+len(".yaml"))
}

func TestPublishWithoutBaseURL(t *testing.T) {
	root := t.TempDir()
	pub := NewDirPublisher(root, "")
	src := writeArtifact(t, "a.mp4", "x")

	url, err := pub.Publish(context.Background(), src, "a.mp4")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(url))
	assert.Equal(t, "a.mp4", filepath.Base(url))
}

func TestPublishRejectsEscapingKeys(t *testing.T) {
	pub := NewDirPublisher(t.TempDir(), "")
	src := writeArtifact(t, "a.mp4", "x")

	for _, key := range []string{"../a.mp4", "/etc/a.mp4", "x/../../a.mp4", ".."} {
		_, err := pub.Publish(context.Background(), src, key)
		assert.True(t, errors.Is(err, ErrInvalidKey), key)
	}
}

func TestPublishErrors(t *testing.T) {
	pub := NewDirPublisher(t.TempDir(), "")

	_, err := pub.Publish(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"), "a.mp4")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = pub.Publish(ctx, writeArtifact(t, "a.mp4", "x"), "a.mp4")
	assert.ErrorIs(t, err, context.Canceled)
}

var _ Publisher = (*DirPublisher)(nil)
