package dummy

import (
	"context"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
	"github.com/karasai/karasai-be/src/shared/lib/filestore"
)

var _ filestore.FileStore = &FileStore{}

// FileStore keeps uploads in memory, keyed by URL
type FileStore struct {
	Unavailable bool
	// OnUpload runs after the upload is read and before it is stored
	OnUpload func(objectPath string)

	lock          sync.Mutex
	files         map[string][]byte
	pathGenerator filestore.PathGenerator
}

func NewFileStore() *FileStore {
	return &FileStore{
		files: map[string][]byte{},
		pathGenerator: filestore.PathGenerator{
			Host:   "https://storage.test",
			Bucket: "karasai-test",
		},
	}
}

func (f *FileStore) Upload(_ context.Context, objectPath string, _ string, contents io.Reader) (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.Unavailable {
		return "", errors.Wrap(NetworkFailure, "Failed to upload")
	}

	data, err := io.ReadAll(contents)
	if err != nil {
		return "", errors.Wrap(err, "Failed to read upload")
	}

	if f.OnUpload != nil {
		f.OnUpload(objectPath)
	}

	url := f.pathGenerator.URL(objectPath)
	f.files[url] = data
	return url, nil
}

func (f *FileStore) Delete(_ context.Context, fileURL string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.Unavailable {
		return errors.Wrap(NetworkFailure, "Failed to delete")
	}

	if _, err := f.pathGenerator.ObjectPath(fileURL); err != nil {
		return err
	}

	if _, ok := f.files[fileURL]; !ok {
		return mark.Message(filestore.ObjectNotFoundMark, "Object is not found")
	}

	delete(f.files, fileURL)
	return nil
}

// Put seeds a file without going through Upload
func (f *FileStore) Put(objectPath string, contents []byte) string {
	f.lock.Lock()
	defer f.lock.Unlock()

	url := f.pathGenerator.URL(objectPath)
	f.files[url] = contents
	return url
}

func (f *FileStore) Has(fileURL string) bool {
	f.lock.Lock()
	defer f.lock.Unlock()

	_, ok := f.files[fileURL]
	return ok
}

func (f *FileStore) Count() int {
	f.lock.Lock()
	defer f.lock.Unlock()

	return len(f.files)
}
