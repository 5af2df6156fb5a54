package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string, mod time.Time) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(p, mod, mod))
	return p
}

func TestFindLatestProject(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	touch(t, dir, "old.json", base)
	newest := touch(t, dir, "new.YAML", base.Add(10*time.Minute))
	touch(t, dir, "newer.txt", base.Add(20*time.Minute))

	got, err := FindLatestProject(dir)
	require.NoError(t, err)
	assert.Equal(t, newest, got)
}

func TestFindLatestAudio(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	touch(t, dir, "voice.mp3", base)
	newest := touch(t, dir, "voice.wav", base.Add(time.Minute))

	got, err := FindLatestAudio(dir)
	require.NoError(t, err)
	assert.Equal(t, newest, got)

	_, err = FindLatestAudio(t.TempDir())
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("12.480000\n")
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 1e-9)

	_, err = parseDuration("N/A")
	assert.Error(t, err)
}

func TestWorkers(t *testing.T) {
	assert.GreaterOrEqual(t, Workers(), 1)
}

func TestBufferPool(t *testing.T) {
	p := NewBufferPool()
	b := p.Get()
	b.WriteString("frame")
	p.Put(b)

	again := p.Get()
	assert.Equal(t, 0, again.Len())

	big := GetBuffer()
	big.Grow(maxPooledBuffer + 1)
	PutBuffer(big)
	PutBuffer(nil)
}
