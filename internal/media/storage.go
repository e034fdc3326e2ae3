// Package media stores uploaded images and videos on local disk and hands
// back the public reference kept on the owning entity.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const publicPrefix = "/uploads"

type Storage struct {
	dir string
}

func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Storage{dir: dir}, nil
}

// Dir is the filesystem directory served under /uploads.
func (s *Storage) Dir() string { return s.dir }

// Save writes src under a fresh name and returns the public reference.
// The original filename contributes only its extension.
func (s *Storage) Save(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", publicPrefix, name), nil
}
