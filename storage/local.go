package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalTemplateStore keeps uploads as plain files in one directory.
// Writes are not locked: concurrent uploads to a slot race and the last one wins.
type LocalTemplateStore struct {
	Dir string
}

func NewLocalTemplateStore(dir string) (*LocalTemplateStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create template dir %s: %w", dir, err)
	}
	return &LocalTemplateStore{Dir: dir}, nil
}

func (s *LocalTemplateStore) path(slot Slot) (string, string, error) {
	name, err := slot.Filename()
	if err != nil {
		return "", "", err
	}
	return name, filepath.Join(s.Dir, name), nil
}

func (s *LocalTemplateStore) Save(slot Slot, src io.Reader) (string, error) {
	name, path, err := s.path(slot)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	return name, nil
}

func (s *LocalTemplateStore) Read(slot Slot) ([]byte, bool, error) {
	name, path, err := s.path(slot)
	if err != nil {
		return nil, false, err
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	return content, true, nil
}
