package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateDirIfNotExist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	err := CreateDirIfNotExist(dir)
	assert.Nil(t, err, "Should create nested directories")

	// Calling it again on an existing dir is fine
	err = CreateDirIfNotExist(dir)
	assert.Nil(t, err)

	info, err := os.Stat(dir)
	assert.Nil(t, err)
	assert.True(t, info.IsDir())
}

func TestFileExist(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "exists.txt")
	assert.Nil(t, os.WriteFile(filePath, []byte("hi"), 0644))

	exists, err := FileExist(filePath)
	assert.Nil(t, err)
	assert.True(t, exists)

	exists, err = FileExist(filepath.Join(dir, "missing.txt"))
	assert.Nil(t, err)
	assert.False(t, exists)
}
