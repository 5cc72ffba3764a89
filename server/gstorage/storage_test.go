package gstorage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Daskott/rolodex/server/photostore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoBucketObjectName(t *testing.T) {
	gs := &GStorage{bucket: "rolodex"}

	testCases := []struct {
		prefix   string
		name     string
		expected string
	}{
		{"photos", "I1.png", "photos/I1.png"},
		{"rolodex-dev/photos/", "I1.jpg", "rolodex-dev/photos/I1.jpg"},
		{"", "I1.png", "I1.png"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, gs.PhotoBucket(tc.prefix).object(tc.name))
		})
	}
}

// newEmulatedGStorage points the storage client at a server that has no
// objects and refuses every upload.
func newEmulatedGStorage(t *testing.T) *GStorage {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": {"code": 404, "message": "No such object"}}`))
			return
		}

		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": 403, "message": "Access denied"}}`))
	}))
	t.Cleanup(server.Close)

	t.Setenv("STORAGE_EMULATOR_HOST", strings.TrimPrefix(server.URL, "http://"))

	gs, err := NewGStorage("", "rolodex")
	require.Nil(t, err)
	t.Cleanup(func() { gs.Close() })

	return gs
}

func TestPhotoBucketReadMissingObject(t *testing.T) {
	bucket := newEmulatedGStorage(t).PhotoBucket("photos")

	data, err := bucket.Read(context.Background(), "I1.png")
	assert.True(t, errors.Is(err, photostore.ErrNotFound))
	assert.Nil(t, data)
}

func TestPhotoBucketWriteFailure(t *testing.T) {
	bucket := newEmulatedGStorage(t).PhotoBucket("photos")

	err := bucket.Write(context.Background(), "I1.png", []byte("data"))

	var storageErr *photostore.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "upload", storageErr.Op)
	assert.Equal(t, "I1.png", storageErr.Name)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestDownloadFileMissingObject(t *testing.T) {
	gs := newEmulatedGStorage(t)

	err := gs.DownloadFile("backups", filepath.Join(t.TempDir(), "rolodex.db"))
	assert.True(t, errors.Is(err, ErrObjectNotExist))
}
