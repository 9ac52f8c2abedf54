package imaging

import (
	"os"
	"path/filepath"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
)

// A Store keeps processed images on disk under a single directory.
// Stored names are opaque and safe to embed in URLs.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create uploads directory")
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes processed image data and returns the generated file name.
func (s *Store) Save(data []byte) (string, error) {
	name := uuid.Must(uuid.NewV4()).String() + ".jpg"
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", errors.Wrap(err, "could not write image")
	}
	return name, nil
}

// Remove deletes a stored image. A missing file is not an error.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "could not remove image")
	}
	return nil
}
