package photostore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Daskott/rolodex/utils"
)

// DiskBucket keeps photos as flat files in a single directory
type DiskBucket struct {
	dir string
}

func NewDiskBucket(dir string) *DiskBucket {
	return &DiskBucket{dir: dir}
}

// Write creates the bucket directory if need be, then replaces
// the content at name with data.
func (b *DiskBucket) Write(ctx context.Context, name string, data []byte) error {
	dir, err := filepath.Abs(b.dir)
	if err != nil {
		return &StorageError{Op: "resolve dir", Name: b.dir, Err: err}
	}

	err = utils.CreateDirIfNotExist(dir)
	if err != nil {
		return &StorageError{Op: "create dir", Name: dir, Err: err}
	}

	err = os.WriteFile(filepath.Join(dir, name), data, 0644)
	if err != nil {
		return &StorageError{Op: "write", Name: name, Err: err}
	}

	return nil
}

func (b *DiskBucket) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(b.dir, name))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, &StorageError{Op: "read", Name: name, Err: err}
	}

	return data, nil
}
