package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cv-generator/internal/model"
	"cv-generator/internal/slug"
)

// FilesystemStore keeps one <slug>.json file per CV under dir.
type FilesystemStore struct {
	dir string
}

func NewFilesystemStore(dir string) *FilesystemStore {
	return &FilesystemStore{dir: dir}
}

func (s *FilesystemStore) Dir() string { return s.dir }

func (s *FilesystemStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FilesystemStore) ensureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	return nil
}

// writeTemp writes b to a fresh temp file next to the records and returns
// its path. The caller owns removing it.
func (s *FilesystemStore) writeTemp(key string, b []byte) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return tmp.Name(), nil
}

// Put overwrites any existing record. The file is replaced by rename so a
// reader never sees a half-written document.
func (s *FilesystemStore) Put(_ context.Context, key string, cv model.CV) error {
	if err := checkWriteSlug(key); err != nil {
		return err
	}
	b, err := encodeCV(cv)
	if err != nil {
		return err
	}
	tmp, err := s.writeTemp(key, b)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// Create claims key by hard-linking a complete temp file into place. The
// link fails if the record exists, and readers only ever see full files.
func (s *FilesystemStore) Create(_ context.Context, key string, cv model.CV) error {
	if err := checkWriteSlug(key); err != nil {
		return err
	}
	b, err := encodeCV(cv)
	if err != nil {
		return err
	}
	tmp, err := s.writeTemp(key, b)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)
	if err := os.Link(tmp, s.path(key)); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return taken(key)
		}
		return fmt.Errorf("create %s: %w", key, err)
	}
	return nil
}

func (s *FilesystemStore) Get(_ context.Context, key string) (model.CV, error) {
	if !slug.Valid(key) {
		return model.CV{}, notFound(key, nil)
	}
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		return model.CV{}, notFound(key, err)
	}
	return decodeCV(key, b)
}

func (s *FilesystemStore) Exists(_ context.Context, key string) (bool, error) {
	if !slug.Valid(key) {
		return false, nil
	}
	_, err := os.Stat(s.path(key))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
