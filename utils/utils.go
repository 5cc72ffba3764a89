package utils

import (
	"os"
)

// FileExist reports whether filePath exists. Any error other than
// 'not exist' is returned to the caller.
func FileExist(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// CreateDirIfNotExist creates dir along with any missing parents.
// It's a no-op when dir already exists.
func CreateDirIfNotExist(dir string) error {
	return os.MkdirAll(dir, 0755)
}
