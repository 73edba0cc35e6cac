package filestorage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derin/notehub/internal/pkg/apperrors"
)

// makeFileHeader builds a *multipart.FileHeader the same way gin receives
// one, by round-tripping a multipart form.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	base := t.TempDir()
	ls, err := NewLocalStorage(filepath.Join(base, "uploads"), filepath.Join(base, "uploads", "thumbnails"))
	require.NoError(t, err)
	return ls
}

// pngBytes encodes a small solid-color PNG.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "pdf", FileExtension("lecture.PDF"))
	assert.Equal(t, "jpeg", FileExtension("photo.jpeg"))
	assert.Equal(t, "", FileExtension("noext"))
	assert.Equal(t, "jpg", FileExtension("a.b.jpg"))
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("notes.pdf"))
	assert.True(t, Allowed("scan.JPG"))
	assert.False(t, Allowed("malware.exe"))
	assert.False(t, Allowed("archive.zip"))
	assert.False(t, Allowed("README"))
}

func TestSaveAndRemove(t *testing.T) {
	ls := newTestStorage(t)

	content := pngBytes(t, 10, 10)
	fh := makeFileHeader(t, "diagram.png", content)

	stored, err := ls.Save(fh)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), stored.Size)
	assert.Equal(t, "png", FileExtension(stored.StoredName))
	assert.NotEqual(t, "diagram.png", stored.StoredName)

	onDisk, err := os.ReadFile(ls.FilePath(stored.StoredName))
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)

	ls.Remove(stored.StoredName)
	_, err = os.Stat(ls.FilePath(stored.StoredName))
	assert.True(t, os.IsNotExist(err))

	// Idempotent: removing again must not panic or error.
	ls.Remove(stored.StoredName)
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	ls := newTestStorage(t)

	fh := makeFileHeader(t, "virus.exe", []byte("MZ"))
	stored, err := ls.Save(fh)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
	assert.Nil(t, stored)

	// Nothing may be written to the storage area on rejection.
	entries, err := os.ReadDir(ls.uploadDir)
	require.NoError(t, err)
	files := 0
	for _, e := range entries {
		if !e.IsDir() {
			files++
		}
	}
	assert.Zero(t, files)
}

func TestSaveRejectsMissingFile(t *testing.T) {
	ls := newTestStorage(t)

	_, err := ls.Save(nil)
	assert.ErrorIs(t, err, apperrors.ErrMissingUploadedFile)
}

func TestSaveUniqueNames(t *testing.T) {
	ls := newTestStorage(t)
	content := pngBytes(t, 4, 4)

	first, err := ls.Save(makeFileHeader(t, "same.png", content))
	require.NoError(t, err)
	second, err := ls.Save(makeFileHeader(t, "same.png", content))
	require.NoError(t, err)

	assert.NotEqual(t, first.StoredName, second.StoredName)
}

func TestRemoveThumbnailMissingIsSilent(t *testing.T) {
	ls := newTestStorage(t)
	ls.RemoveThumbnail("thumb_does-not-exist.jpg")
	ls.RemoveThumbnail("")
}
