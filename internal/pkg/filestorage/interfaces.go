package filestorage

import "mime/multipart"

// StoredFile describes a file persisted to the storage area.
type StoredFile struct {
	StoredName string // collision-free name on disk (uuid + original extension)
	Size       int64  // size in bytes
}

// Storage defines the interface for upload storage and thumbnail operations.
type Storage interface {
	// Save validates the extension and writes the upload to the storage area
	// under a collision-free name.
	Save(fileHeader *multipart.FileHeader) (*StoredFile, error)

	// CreateThumbnail derives a preview image for a stored file. It is
	// best-effort: any failure returns "" and the upload proceeds without
	// a thumbnail.
	CreateThumbnail(storedName, fileType string) string

	// Remove deletes a stored file. Idempotent; failures are logged, never
	// returned.
	Remove(storedName string)

	// RemoveThumbnail deletes a thumbnail. Same semantics as Remove.
	RemoveThumbnail(thumbnailName string)

	// FilePath returns the full filesystem path for a stored file.
	FilePath(storedName string) string
}
