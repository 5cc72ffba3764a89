// Package photostore persists & serves the single current photo of a contact.
//
// A photo is stored under '<contactID><ext>' where ext is derived from the
// uploaded file's original name. Uploading again with the same extension
// overwrites the previous photo; nothing is versioned.
package photostore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	DEFAULT_EXTENSION = ".png"

	// IMAGE_PATH_PREFIX is appended to the server's base address to build photo urls
	IMAGE_PATH_PREFIX = "/contacts/images/"

	PNG_CONTENT_TYPE  = "image/png"
	JPEG_CONTENT_TYPE = "image/jpeg"
)

var ErrNotFound = errors.New("photo not found")

// StorageError wraps any failure to persist a photo
type StorageError struct {
	Op   string
	Name string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("photostore: %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Bucket is where photo bytes live
type Bucket interface {
	// Write stores data under name, replacing any existing content
	Write(ctx context.Context, name string, data []byte) error

	// Read returns the content stored under name or ErrNotFound
	Read(ctx context.Context, name string) ([]byte, error)
}

type PhotoStore struct {
	bucket Bucket
}

func New(bucket Bucket) *PhotoStore {
	return &PhotoStore{bucket: bucket}
}

// Store writes photo for contact 'id' & returns the url it can be retrieved from.
func (ps *PhotoStore) Store(ctx context.Context, baseURL, id string, photo []byte, originalFilename string) (string, error) {
	fileName := FileName(id, originalFilename)

	err := ps.bucket.Write(ctx, fileName, photo)
	if err != nil {
		var storageErr *StorageError
		if errors.As(err, &storageErr) {
			return "", err
		}
		return "", &StorageError{Op: "write", Name: fileName, Err: err}
	}

	return strings.TrimSuffix(baseURL, "/") + IMAGE_PATH_PREFIX + fileName, nil
}

// Retrieve returns the stored bytes for filename verbatim
func (ps *PhotoStore) Retrieve(ctx context.Context, filename string) ([]byte, error) {
	if !isPlainFileName(filename) {
		return nil, ErrNotFound
	}

	return ps.bucket.Read(ctx, filename)
}

// ExtensionOf returns everything from the last '.' in name, or DEFAULT_EXTENSION
// when name has no '.' at all. "dotfile." yields "." and ".hidden" yields ".hidden".
func ExtensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return DEFAULT_EXTENSION
	}

	return name[idx:]
}

// FileName is the name a contact's photo is stored under
func FileName(id, originalFilename string) string {
	return id + ExtensionOf(originalFilename)
}

// ContentTypeOf picks one of the two supported image content types for filename
func ContentTypeOf(filename string) string {
	switch strings.ToLower(ExtensionOf(filename)) {
	case ".jpg", ".jpeg":
		return JPEG_CONTENT_TYPE
	default:
		return PNG_CONTENT_TYPE
	}
}

func isPlainFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
