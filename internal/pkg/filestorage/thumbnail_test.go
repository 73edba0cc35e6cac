package filestorage

import (
	"image/jpeg"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnailName(t *testing.T) {
	assert.Equal(t, "thumb_abc123.jpg", ThumbnailName("abc123.pdf"))
	assert.Equal(t, "thumb_abc123.jpg", ThumbnailName("abc123.png"))
}

func TestCreateThumbnailFromImage(t *testing.T) {
	ls := newTestStorage(t)

	stored, err := ls.Save(makeFileHeader(t, "big.png", pngBytes(t, 600, 900)))
	require.NoError(t, err)

	name := ls.CreateThumbnail(stored.StoredName, "png")
	require.NotEmpty(t, name)
	assert.Equal(t, ThumbnailName(stored.StoredName), name)

	f, err := os.Open(ls.ThumbnailPath(name))
	require.NoError(t, err)
	defer f.Close()

	img, err := jpeg.Decode(f)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 300)
	assert.LessOrEqual(t, bounds.Dy(), 400)

	// Aspect ratio 600x900 fit into 300x400 lands at 267x400.
	assert.Equal(t, 400, bounds.Dy())
}

func TestCreateThumbnailSmallImageNotUpscaled(t *testing.T) {
	ls := newTestStorage(t)

	stored, err := ls.Save(makeFileHeader(t, "small.png", pngBytes(t, 60, 40)))
	require.NoError(t, err)

	name := ls.CreateThumbnail(stored.StoredName, "png")
	require.NotEmpty(t, name)

	f, err := os.Open(ls.ThumbnailPath(name))
	require.NoError(t, err)
	defer f.Close()

	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
}

func TestCreateThumbnailCorruptInputIsNonFatal(t *testing.T) {
	ls := newTestStorage(t)

	stored, err := ls.Save(makeFileHeader(t, "broken.png", []byte("not a png at all")))
	require.NoError(t, err)

	name := ls.CreateThumbnail(stored.StoredName, "png")
	assert.Empty(t, name)
}

func TestCreateThumbnailCorruptPDFIsNonFatal(t *testing.T) {
	ls := newTestStorage(t)

	stored, err := ls.Save(makeFileHeader(t, "broken.pdf", []byte("%PDF-1.4 truncated")))
	require.NoError(t, err)

	name := ls.CreateThumbnail(stored.StoredName, "pdf")
	assert.Empty(t, name)
}
