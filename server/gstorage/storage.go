package gstorage

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/Daskott/rolodex/server/logger"
	"github.com/Daskott/rolodex/server/photostore"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

const OPERATION_TIMEOUT = 50 * time.Second

var ErrObjectNotExist = storage.ErrObjectNotExist

var logg = logger.NewLogger("gstorage")

var _ photostore.Bucket = (*PhotoBucket)(nil)

type GStorage struct {
	storageClient *storage.Client
	bucket        string
}

func NewGStorage(credentialsFilePath, bucket string) (*GStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFilePath != "" {
		client, err = storage.NewClient(context.Background(), option.WithCredentialsFile(credentialsFilePath))
	} else {
		client, err = storage.NewClient(context.Background())
	}

	if err != nil {
		return nil, errors.Wrap(err, "NewGStorage")
	}

	return &GStorage{storageClient: client, bucket: bucket}, nil
}

func (gs *GStorage) Close() error {
	return gs.storageClient.Close()
}

// UploadFile uploads the local file at filePath as object 'prefix/<file name>'.
func (gs *GStorage) UploadFile(prefix, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return errors.Wrap(err, "os.Open")
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), OPERATION_TIMEOUT)
	defer cancel()

	object := path.Join(prefix, filepath.Base(filePath))
	err = gs.writeObject(ctx, object, "application/octet-stream", f)
	if err != nil {
		return err
	}

	logg.Infof("Blob %v uploaded", object)
	return nil
}

// DownloadFile downloads 'prefix/<file name>' to the local file at destFilePath.
// ErrObjectNotExist is returned as is when there's nothing to download.
func (gs *GStorage) DownloadFile(prefix, destFilePath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), OPERATION_TIMEOUT)
	defer cancel()

	object := path.Join(prefix, filepath.Base(destFilePath))
	rc, err := gs.storageClient.Bucket(gs.bucket).Object(object).NewReader(ctx)
	if err == storage.ErrObjectNotExist {
		return err
	}
	if err != nil {
		return errors.Wrapf(err, "Object(%q).NewReader", object)
	}
	defer rc.Close()

	f, err := os.OpenFile(destFilePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(err, "os.OpenFile")
	}

	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		return errors.Wrap(err, "io.Copy")
	}

	if err = f.Close(); err != nil {
		return errors.Wrap(err, "f.Close")
	}

	logg.Infof("Blob %v downloaded to local file %v", object, destFilePath)
	return nil
}

// PhotoBucket returns a photostore.Bucket keeping photos under 'prefix/'
func (gs *GStorage) PhotoBucket(prefix string) *PhotoBucket {
	return &PhotoBucket{gs: gs, prefix: prefix}
}

func (gs *GStorage) writeObject(ctx context.Context, object, contentType string, r io.Reader) error {
	wc := gs.storageClient.Bucket(gs.bucket).Object(object).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := io.Copy(wc, r); err != nil {
		wc.Close()
		return errors.Wrap(err, "io.Copy")
	}

	if err := wc.Close(); err != nil {
		return errors.Wrap(err, "Writer.Close")
	}

	return nil
}

// PhotoBucket stores photos as objects in a google storage bucket.
// Writing an existing object replaces it.
type PhotoBucket struct {
	gs     *GStorage
	prefix string
}

func (pb *PhotoBucket) Write(ctx context.Context, name string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, OPERATION_TIMEOUT)
	defer cancel()

	err := pb.gs.writeObject(ctx, pb.object(name), photostore.ContentTypeOf(name), bytes.NewReader(data))
	if err != nil {
		return &photostore.StorageError{Op: "upload", Name: name, Err: err}
	}

	return nil
}

func (pb *PhotoBucket) Read(ctx context.Context, name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, OPERATION_TIMEOUT)
	defer cancel()

	rc, err := pb.gs.storageClient.Bucket(pb.gs.bucket).Object(pb.object(name)).NewReader(ctx)
	if err == storage.ErrObjectNotExist {
		return nil, photostore.ErrNotFound
	}
	if err != nil {
		return nil, &photostore.StorageError{Op: "download", Name: name, Err: err}
	}
	defer rc.Close()

	data, err := ioutil.ReadAll(rc)
	if err != nil {
		return nil, &photostore.StorageError{Op: "download", Name: name, Err: err}
	}

	return data, nil
}

func (pb *PhotoBucket) object(name string) string {
	return path.Join(pb.prefix, name)
}
