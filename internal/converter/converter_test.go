package converter_test

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xwebp "golang.org/x/image/webp"

	"github.com/growdashtech/webpconvert/internal/converter"
	"github.com/growdashtech/webpconvert/internal/finder"
	"github.com/growdashtech/webpconvert/internal/logger"
	"github.com/growdashtech/webpconvert/pkg/webpenc"
)

func TestMain(m *testing.M) {
	pterm.DisableOutput() // keep the test output clean

	os.Exit(m.Run())
}

func writePNG(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f, err := os.Create(path)
	require.NoError(t, err)

	defer func() { require.NoError(t, f.Close()) }()

	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8))))
}

func writeJPEG(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f, err := os.Create(path)
	require.NoError(t, err)

	defer func() { require.NoError(t, f.Close()) }()

	require.NoError(t, jpeg.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil))
}

func requireWebP(t *testing.T, path string) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = xwebp.Decode(bytes.NewReader(data))
	require.NoErrorf(t, err, "%s is not a valid webp file", path)
}

func TestConverter_Run(t *testing.T) {
	t.Parallel()

	var srcDir, dstDir = t.TempDir(), t.TempDir()

	writePNG(t, filepath.Join(srcDir, "cat.png"))
	writePNG(t, filepath.Join(srcDir, "sub", "deep", "flower.PNG"))
	writeJPEG(t, filepath.Join(srcDir, "sub", "dog.jpg"))

	var (
		stats    = converter.NewStatsStorage()
		conv     = converter.New(logger.NewNop(), webpenc.NewEncoder(), stats, converter.WithThreads(4))
		png, jpg = finder.BuildSets(srcDir)
	)

	require.NoError(t, conv.Run(context.Background(), png, dstDir))
	require.NoError(t, conv.Run(context.Background(), jpg, dstDir))

	requireWebP(t, filepath.Join(dstDir, "cat.webp"))
	requireWebP(t, filepath.Join(dstDir, "sub", "deep", "flower.webp"))
	requireWebP(t, filepath.Join(dstDir, "sub", "dog.webp"))

	require.Equal(t, 3, stats.TotalFiles())

	history := stats.History()

	assert.Equal(t, "cat.png", history[0].Path)
	assert.Equal(t, "png", history[0].Format)
	assert.Equal(t, filepath.Join("sub", "deep", "flower.PNG"), history[1].Path)
	assert.Equal(t, filepath.Join("sub", "dog.jpg"), history[2].Path)
	assert.Equal(t, "jpeg", history[2].Format)
}

func TestConverter_Run_Renaming(t *testing.T) {
	t.Parallel()

	var srcDir, dstDir = t.TempDir(), t.TempDir()

	writePNG(t, filepath.Join(srcDir, "cat.png"))

	var (
		stats  = converter.NewStatsStorage()
		conv   = converter.New(logger.NewNop(), webpenc.NewEncoder(), stats, converter.WithRename("webp_", "_converted"))
		png, _ = finder.BuildSets(srcDir)
	)

	require.NoError(t, conv.Run(context.Background(), png, dstDir))

	requireWebP(t, filepath.Join(dstDir, "webp_cat_converted.webp"))
}

func TestConverter_Run_SingleFile(t *testing.T) {
	t.Parallel()

	var srcDir, dstDir = t.TempDir(), t.TempDir()

	writePNG(t, filepath.Join(srcDir, "cat.png"))
	writePNG(t, filepath.Join(srcDir, "other.png")) // must be left alone

	var (
		stats  = converter.NewStatsStorage()
		conv   = converter.New(logger.NewNop(), webpenc.NewEncoder(), stats)
		png, _ = finder.BuildSets(filepath.Join(srcDir, "cat.png"))
	)

	require.NoError(t, conv.Run(context.Background(), png, dstDir))

	requireWebP(t, filepath.Join(dstDir, "cat.webp"))
	assert.NoFileExists(t, filepath.Join(dstDir, "other.webp"))
	assert.Equal(t, 1, stats.TotalFiles())
}

func TestConverter_Run_FakeImage(t *testing.T) {
	t.Parallel()

	var srcDir, dstDir = t.TempDir(), t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "fake.png"), []byte("just a text"), 0o644))

	var (
		stats  = converter.NewStatsStorage()
		conv   = converter.New(logger.NewNop(), webpenc.NewEncoder(), stats)
		png, _ = finder.BuildSets(srcDir)
	)

	err := conv.Run(context.Background(), png, dstDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not an image")
	assert.NoFileExists(t, filepath.Join(dstDir, "fake.webp"))
	assert.Zero(t, stats.TotalFiles())
}

func TestConverter_Run_CorruptImage(t *testing.T) {
	t.Parallel()

	var srcDir, dstDir = t.TempDir(), t.TempDir()

	// a valid PNG signature followed by garbage passes the content sniffing but fails to decode
	corrupt := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0xde, 0xad}, 64)...)
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "broken.png"), corrupt, 0o644))

	var (
		stats  = converter.NewStatsStorage()
		conv   = converter.New(logger.NewNop(), webpenc.NewEncoder(), stats)
		png, _ = finder.BuildSets(srcDir)
	)

	err := conv.Run(context.Background(), png, dstDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "converting failed")
	assert.NoFileExists(t, filepath.Join(dstDir, "broken.webp"))

	// no leftover temporary files
	entries, readErr := os.ReadDir(dstDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestConverter_Run_NothingToDo(t *testing.T) {
	t.Parallel()

	var (
		stats  = converter.NewStatsStorage()
		conv   = converter.New(logger.NewNop(), webpenc.NewEncoder(), stats)
		png, _ = finder.BuildSets(t.TempDir())
	)

	require.NoError(t, conv.Run(context.Background(), png, t.TempDir()))
	assert.Zero(t, stats.TotalFiles())
}

func TestConverter_Run_CanceledContext(t *testing.T) {
	t.Parallel()

	var srcDir = t.TempDir()

	writePNG(t, filepath.Join(srcDir, "cat.png"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var (
		stats  = converter.NewStatsStorage()
		conv   = converter.New(logger.NewNop(), webpenc.NewEncoder(), stats)
		png, _ = finder.BuildSets(srcDir)
	)

	assert.ErrorIs(t, conv.Run(ctx, png, t.TempDir()), context.Canceled)
}
