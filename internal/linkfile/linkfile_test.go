package linkfile

import (
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"b2mirror/pkg/b2"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriteAllCreatesOneFilePerPair(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, testLogger())
	pairs := []b2.LinkPair{
		{URL: "https://f003.backblazeb2.com/file/bkt/cat.jpg", Path: "cat.jpg"},
		{URL: "https://f003.backblazeb2.com/file/bkt/dog.png", Path: "dog.png"},
	}

	created := w.WriteAll("out", pairs)

	assert.Equal(t, 2, created)

	content, err := afero.ReadFile(fs, "out/cat.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://f003.backblazeb2.com/file/bkt/cat.jpg", string(content))
}

func TestWriteAllMirrorsDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, testLogger())
	pairs := []b2.LinkPair{
		{URL: "https://f003.backblazeb2.com/file/bkt/photos/2024/cat.jpg", Path: "photos/2024/cat.jpg"},
	}

	created := w.WriteAll("out", pairs)

	assert.Equal(t, 1, created)

	content, err := afero.ReadFile(fs, "out/photos/2024/cat.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://f003.backblazeb2.com/file/bkt/photos/2024/cat.jpg", string(content))
}

func TestWriteAllHasNoTrailingNewline(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, testLogger())

	w.WriteAll("out", []b2.LinkPair{{URL: "https://example.test/u", Path: "a.jpg"}})

	content, err := afero.ReadFile(fs, "out/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/u", string(content))
	assert.NotContains(t, string(content), "\n")
}

func TestWriteAllStemCollisionLastWriteWins(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, testLogger())
	pairs := []b2.LinkPair{
		{URL: "url-for-jpg", Path: "a.jpg"},
		{URL: "url-for-png", Path: "a.png"},
	}

	created := w.WriteAll("out", pairs)

	// Both writes succeed even though they land on the same artifact.
	assert.Equal(t, 2, created)

	content, err := afero.ReadFile(fs, "out/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "url-for-png", string(content))
}

func TestWriteAllContinuesPastFailures(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	w := NewWriter(fs, testLogger())
	pairs := []b2.LinkPair{
		{URL: "u1", Path: "a.jpg"},
		{URL: "u2", Path: "b.jpg"},
	}

	created := w.WriteAll("out", pairs)

	assert.Equal(t, 0, created)
}

func TestFallbackPairsOnlyUploadsAndUpdates(t *testing.T) {
	records := []b2.Record{
		{LocalPath: "/in/a.jpg", RemoteKey: "a.jpg", Action: b2.ActionUpload},
		{LocalPath: "/in/b.jpg", RemoteKey: "b.jpg", Action: b2.ActionUpdate},
		{RemoteKey: "gone.jpg", Action: b2.ActionDelete},
		{LocalPath: "/in/c.jpg", RemoteKey: "c.jpg", Action: b2.ActionSkip},
		{LocalPath: "/in/empty.jpg", Action: b2.ActionUpload},
	}

	pairs := FallbackPairs(records, "bkt")

	require.Len(t, pairs, 2)
	assert.Equal(t, b2.LinkPair{
		URL:  "https://f003.backblazeb2.com/file/bkt/a.jpg",
		Path: "a.jpg",
	}, pairs[0])
	assert.Equal(t, "b.jpg", pairs[1].Path)
}

func TestFallbackPairsEmptyRecords(t *testing.T) {
	assert.Empty(t, FallbackPairs(nil, "bkt"))
}
