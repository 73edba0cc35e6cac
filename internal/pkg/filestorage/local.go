package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/derin/notehub/internal/pkg/apperrors"
	"github.com/derin/notehub/internal/pkg/logger"
)

// allowedExtensions is the fixed upload allow-list.
var allowedExtensions = map[string]bool{
	"pdf":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
}

// FileExtension returns the lowercased extension of a filename without the
// leading dot, or "" when there is none.
func FileExtension(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Allowed reports whether the filename carries an allow-listed extension.
func Allowed(filename string) bool {
	return allowedExtensions[FileExtension(filename)]
}

// LocalStorage persists uploads and thumbnails on the local filesystem.
type LocalStorage struct {
	uploadDir string
	thumbDir  string
}

// NewLocalStorage creates a LocalStorage rooted at uploadDir, with
// thumbnails under thumbDir. Both directories are created if missing.
func NewLocalStorage(uploadDir, thumbDir string) (*LocalStorage, error) {
	for _, dir := range []string{uploadDir, thumbDir} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", dir).Msg("Failed to create storage directory")
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}
	logger.Info().Str("uploads", uploadDir).Str("thumbnails", thumbDir).Msg("Local storage directories ensured")

	return &LocalStorage{
		uploadDir: uploadDir,
		thumbDir:  thumbDir,
	}, nil
}

// Save writes the uploaded file to the storage area under a unique name.
// The extension is validated against the allow-list before anything is
// written; a partially written file is removed on copy failure.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader) (*StoredFile, error) {
	if fileHeader == nil || fileHeader.Filename == "" {
		return nil, apperrors.ErrMissingUploadedFile
	}
	if !Allowed(fileHeader.Filename) {
		return nil, apperrors.ErrInvalidFileType
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailed, err)
	}
	defer file.Close()

	storedName := uuid.New().String() + "." + FileExtension(fileHeader.Filename)
	dstPath := filepath.Join(ls.uploadDir, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailed, err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailed, err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", storedName).Int64("size", size).Msg("File saved")
	return &StoredFile{StoredName: storedName, Size: size}, nil
}

// Remove deletes a stored upload. Missing files are treated as success and
// OS failures are logged and swallowed so cleanup never blocks record
// deletion.
func (ls *LocalStorage) Remove(storedName string) {
	ls.remove(ls.uploadDir, storedName)
}

// RemoveThumbnail deletes a thumbnail with the same best-effort semantics
// as Remove.
func (ls *LocalStorage) RemoveThumbnail(thumbnailName string) {
	ls.remove(ls.thumbDir, thumbnailName)
}

func (ls *LocalStorage) remove(dir, name string) {
	if name == "" {
		return
	}

	// Only the filename portion; stored names never contain path separators.
	path := filepath.Join(dir, filepath.Base(name))

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn().Str("path", path).Msg("File to delete does not exist")
		return
	}

	if err := os.Remove(path); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to delete file")
		return
	}

	logger.Info().Str("path", path).Msg("File deleted")
}

// FilePath returns the full filesystem path of a stored upload.
func (ls *LocalStorage) FilePath(storedName string) string {
	return filepath.Join(ls.uploadDir, filepath.Base(storedName))
}

// ThumbnailPath returns the full filesystem path of a thumbnail.
func (ls *LocalStorage) ThumbnailPath(thumbnailName string) string {
	return filepath.Join(ls.thumbDir, filepath.Base(thumbnailName))
}
