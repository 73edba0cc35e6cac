package filestorage

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"

	"github.com/derin/notehub/internal/pkg/logger"
)

// Thumbnail bounding box and encoding quality.
const (
	thumbnailWidth   = 300
	thumbnailHeight  = 400
	thumbnailQuality = 85
)

// ThumbnailName derives the thumbnail filename for a stored file.
func ThumbnailName(storedName string) string {
	base := strings.TrimSuffix(storedName, filepath.Ext(storedName))
	return fmt.Sprintf("thumb_%s.jpg", base)
}

// CreateThumbnail renders a preview for a stored file: the first page for a
// PDF, the decoded image otherwise, downsized to fit 300x400 and saved as a
// quality-85 JPEG. Best-effort: every failure is logged and reported as ""
// so the caller proceeds without a thumbnail.
func (ls *LocalStorage) CreateThumbnail(storedName, fileType string) string {
	src := ls.FilePath(storedName)

	var (
		img image.Image
		err error
	)
	if fileType == "pdf" {
		img, err = renderFirstPage(src)
	} else {
		img, err = imaging.Open(src)
	}
	if err != nil {
		logger.Warn().Err(err).Str("file", storedName).Str("type", fileType).Msg("Thumbnail source could not be decoded")
		return ""
	}

	thumb := imaging.Fit(img, thumbnailWidth, thumbnailHeight, imaging.Lanczos)

	name := ThumbnailName(storedName)
	if err := imaging.Save(thumb, ls.ThumbnailPath(name), imaging.JPEGQuality(thumbnailQuality)); err != nil {
		logger.Warn().Err(err).Str("file", storedName).Msg("Failed to save thumbnail")
		return ""
	}

	logger.Debug().Str("file", storedName).Str("thumbnail", name).Msg("Thumbnail created")
	return name
}

// renderFirstPage rasterizes page 0 of a PDF document.
func renderFirstPage(path string) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer doc.Close()

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("failed to render pdf page: %w", err)
	}
	return img, nil
}
